package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Rorical/NutriVision/internal/config"
)

var useCmd = &cobra.Command{
	Use:   "use [profile-name] [image]",
	Short: "Switch to a profile and start the app",
	Long:  `Switch to the specified profile and immediately start the application, optionally analyzing an image.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		if err := cfg.Use(args[0]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}

		var image string
		if len(args) > 1 {
			image = args[1]
		}
		return runApp(image)
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}
