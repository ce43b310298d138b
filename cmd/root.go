package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/apex/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Rorical/NutriVision/internal/analysis"
	"github.com/Rorical/NutriVision/internal/app"
	"github.com/Rorical/NutriVision/internal/config"
	"github.com/Rorical/NutriVision/internal/locale"
	"github.com/Rorical/NutriVision/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "nutrivision [image]",
	Short: "Estimate the calories of a meal from a photo",
	Long: `NutriVision sends a photo of a meal to a multimodal model and shows the
identified foods, their portions, calories and macronutrients.

Pass an image path to analyze it right away.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine; a broken one is not.
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var image string
		if len(args) > 0 {
			image = args[0]
		}
		return runApp(image)
	},
}

// session is what every command talking to the model needs.
type session struct {
	cfg      *config.Config
	log      *log.Logger
	analyzer analysis.Analyzer
	closeLog func() error
}

func openSession() (*session, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	dir, err := config.Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	logger, closeLog, err := logging.Setup(cfg.GetLogLevel(), filepath.Join(dir, "nutrivision.log"))
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, log: logger, closeLog: closeLog}
	if cfg.IsValid() {
		s.analyzer = newAnalyzer(cfg, logger)
	}
	logger.WithFields(log.Fields{
		"profile":  cfg.ActiveProfile,
		"model":    cfg.GetModel(),
		"language": cfg.GetLanguage(),
		"ready":    s.analyzer != nil,
	}).Debug("session opened")
	return s, nil
}

func (s *session) Close() {
	if err := s.closeLog(); err != nil {
		fmt.Fprintf(os.Stderr, "close log: %v\n", err)
	}
}

func newAnalyzer(cfg *config.Config, logger log.Interface) *analysis.Client {
	transport := analysis.NewOpenAITransport(cfg.GetAPIKey(), cfg.GetBaseURL(), cfg.GetModel(), cfg.GetTimeout())
	return analysis.NewClient(transport, logger,
		analysis.WithLanguage(locale.Lookup(cfg.GetLanguage()).Language),
		analysis.WithTemperature(cfg.GetTemperature()),
		analysis.WithClamping(cfg.ClampValues()),
	)
}

func runApp(image string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	application := app.NewApplication(s.cfg, s.analyzer, s.log, image)
	defer application.Stop()

	if err := application.Start(); err != nil {
		return fmt.Errorf("application error: %w", err)
	}
	return nil
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(profileCmd)
}
