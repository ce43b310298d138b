package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/NutriVision/internal/config"
	"github.com/Rorical/NutriVision/internal/locale"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage API profiles",
	Long:  `Manage API profiles: credentials, model, answer language and image settings.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Active Profile: %s\n\n", cfg.ActiveProfile)
		fmt.Fprintln(out, "Available Profiles:")
		for _, name := range cfg.ProfileNames() {
			profile := cfg.Profiles[name]
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			fmt.Fprintf(out, "  %s%s\n", name, marker)
			fmt.Fprintf(out, "    Model: %s\n", profile.Model)
			fmt.Fprintf(out, "    Language: %s\n", orDefault(profile.Language, locale.DefaultTag))
			if profile.BaseURL != "" {
				fmt.Fprintf(out, "    Base URL: %s\n", profile.BaseURL)
			}
			fmt.Fprintf(out, "    API Key: %s\n\n", yesNo(profile.APIKey != ""))
		}
		return nil
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		name := cfg.ActiveProfile
		if len(args) > 0 {
			name = args[0]
		}
		profile, exists := cfg.Profiles[name]
		if !exists {
			return fmt.Errorf("profile '%s' does not exist", name)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Profile: %s\n", name)
		fmt.Fprintf(out, "Model: %s\n", profile.Model)
		fmt.Fprintf(out, "Base URL: %s\n", orDefault(profile.BaseURL, "(OpenAI)"))
		fmt.Fprintf(out, "Language: %s\n", orDefault(profile.Language, locale.DefaultTag))
		fmt.Fprintf(out, "Temperature: %g\n", profile.Temperature)
		fmt.Fprintf(out, "Max image dimension: %d\n", profile.MaxDimension)
		fmt.Fprintf(out, "Timeout: %s\n", timeoutLabel(profile.TimeoutSeconds))
		fmt.Fprintf(out, "Clamp values: %s\n", yesNo(profile.ClampValues))
		hasKey := "Not set"
		if profile.APIKey != "" {
			hasKey = "Set (hidden for security)"
		}
		fmt.Fprintf(out, "API Key: %s\n", hasKey)
		return nil
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		var name string
		if len(args) > 0 {
			name = args[0]
		} else {
			prompt := promptui.Prompt{Label: "Profile name", Validate: validateName}
			if name, err = prompt.Run(); err != nil {
				return fmt.Errorf("prompt failed: %w", err)
			}
		}
		if _, exists := cfg.Profiles[name]; exists {
			return fmt.Errorf("profile '%s' already exists", name)
		}

		profile, err := promptProfile(config.DefaultProfile())
		if err != nil {
			return err
		}
		if err := cfg.AddProfile(name, profile); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Profile '%s' added successfully!\n", name)
		return nil
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		name, err := pickProfile(args, cfg.ProfileNames(), "Select profile to edit")
		if err != nil {
			return err
		}
		profile, exists := cfg.Profiles[name]
		if !exists {
			return fmt.Errorf("profile '%s' does not exist", name)
		}

		if profile, err = promptProfile(profile); err != nil {
			return err
		}
		cfg.Profiles[name] = profile
		if err := cfg.Save(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Profile '%s' updated successfully!\n", name)
		return nil
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		name, err := pickProfile(args, cfg.ProfileNames(), "Select profile to delete")
		if err != nil {
			return err
		}

		confirm := promptui.Prompt{
			Label:     fmt.Sprintf("Delete profile '%s'", name),
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled")
			return nil
		}

		if err := cfg.DeleteProfile(name); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Profile '%s' deleted successfully! Active profile: %s\n", name, cfg.ActiveProfile)
		return nil
	},
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		var others []string
		for _, name := range cfg.ProfileNames() {
			if name != cfg.ActiveProfile {
				others = append(others, name)
			}
		}
		if len(args) == 0 && len(others) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No other profiles available to switch to")
			return nil
		}

		name, err := pickProfile(args, others, "Select profile to switch to")
		if err != nil {
			return err
		}
		if err := cfg.Use(name); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Switched to profile '%s'\n", name)
		return nil
	},
}

// pickProfile returns the name given on the command line or asks for one.
func pickProfile(args, names []string, label string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if len(names) == 0 {
		return "", errors.New("no profiles available")
	}
	prompt := promptui.Select{Label: label, Items: names}
	_, name, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("selection failed: %w", err)
	}
	return name, nil
}

// promptProfile asks for every profile field, offering current values as
// defaults.
func promptProfile(current config.Profile) (config.Profile, error) {
	p := current
	var err error

	if p.APIKey, err = ask("API Key", p.APIKey, '*', nil); err != nil {
		return p, err
	}
	if p.Model, err = ask("Model", orDefault(p.Model, config.DefaultModel), 0, nil); err != nil {
		return p, err
	}
	if p.BaseURL, err = ask("Base URL (optional)", p.BaseURL, 0, nil); err != nil {
		return p, err
	}

	languages := locale.Supported()
	selectLang := promptui.Select{
		Label:     "Answer language",
		Items:     languages,
		CursorPos: max(0, indexOf(languages, orDefault(p.Language, locale.DefaultTag))),
	}
	if _, p.Language, err = selectLang.Run(); err != nil {
		return p, fmt.Errorf("selection failed: %w", err)
	}

	temperature, err := ask("Temperature", strconv.FormatFloat(float64(p.Temperature), 'g', -1, 32), 0, validateTemperature)
	if err != nil {
		return p, err
	}
	t, _ := strconv.ParseFloat(temperature, 32)
	p.Temperature = float32(t)

	if p.MaxDimension, err = askInt("Max image dimension in pixels (0 keeps the original size)", p.MaxDimension); err != nil {
		return p, err
	}
	if p.TimeoutSeconds, err = askInt("Timeout in seconds (0 for none)", p.TimeoutSeconds); err != nil {
		return p, err
	}

	clamp := promptui.Select{
		Label:     "Clamp out-of-range values in results",
		Items:     []string{"No", "Yes"},
		CursorPos: boolIndex(p.ClampValues),
	}
	_, answer, err := clamp.Run()
	if err != nil {
		return p, fmt.Errorf("selection failed: %w", err)
	}
	p.ClampValues = answer == "Yes"

	return p, nil
}

func ask(label, def string, mask rune, validate promptui.ValidateFunc) (string, error) {
	prompt := promptui.Prompt{Label: label, Default: def, Mask: mask, Validate: validate}
	value, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return strings.TrimSpace(value), nil
}

func askInt(label string, def int) (int, error) {
	value, err := ask(label, strconv.Itoa(def), 0, validateNonNegativeInt)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

func validateName(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("name must not be empty")
	}
	if strings.ContainsAny(input, " \t/") {
		return errors.New("name must not contain spaces or slashes")
	}
	return nil
}

func validateTemperature(input string) error {
	t, err := strconv.ParseFloat(strings.TrimSpace(input), 32)
	if err != nil {
		return errors.New("enter a number")
	}
	if t < 0 || t > 2 {
		return errors.New("temperature must be between 0 and 2")
	}
	return nil
}

func validateNonNegativeInt(input string) error {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return errors.New("enter a whole number")
	}
	if n < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}

func indexOf(items []string, want string) int {
	for i, item := range items {
		if strings.EqualFold(item, want) {
			return i
		}
	}
	return -1
}

func timeoutLabel(seconds int) string {
	if seconds <= 0 {
		return "none"
	}
	return fmt.Sprintf("%ds", seconds)
}

func init() {
	// Add subcommands to profile
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(switchProfileCmd)
}
