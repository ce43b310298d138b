package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/Rorical/NutriVision/internal/locale"
	"github.com/Rorical/NutriVision/internal/nutrition"
)

const (
	DefaultModel        = "gpt-4o-mini"
	DefaultMaxDimension = 1024
	DefaultProfileName  = "default"

	// EnvHome overrides the directory holding .nutrivision/.
	EnvHome = "NUTRIVISION_HOME"
	// EnvAPIKey overrides the API key of the active profile.
	EnvAPIKey = "NUTRIVISION_API_KEY"
	// EnvLogLevel overrides the log level ("debug", "info", "warn", "error").
	EnvLogLevel = "NUTRIVISION_LOG_LEVEL"
)

type Profile struct {
	APIKey       string  `json:"api_key"`
	BaseURL      string  `json:"base_url,omitempty"`
	Model        string  `json:"model"`
	Language     string  `json:"language,omitempty"`
	Temperature  float32 `json:"temperature,omitempty"`
	MaxDimension int     `json:"max_image_dimension,omitempty"`
	// TimeoutSeconds bounds the model call. Zero means no timeout.
	TimeoutSeconds int  `json:"timeout_seconds,omitempty"`
	ClampValues    bool `json:"clamp_values,omitempty"`
}

// DefaultProfile returns a profile with every optional field filled in.
func DefaultProfile() Profile {
	return Profile{
		Model:        DefaultModel,
		Language:     locale.DefaultTag,
		Temperature:  nutrition.DefaultTemperature,
		MaxDimension: DefaultMaxDimension,
	}
}

type Config struct {
	Profiles       map[string]Profile `json:"profiles"`
	ActiveProfile  string             `json:"active_profile"`
	LogLevel       string             `json:"log_level,omitempty"`
	currentProfile *Profile
}

func LoadConfig() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// Load existing config or create default
	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Validate and set current profile
	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	return config, nil
}

func (c *Config) IsValid() bool {
	return c.GetAPIKey() != ""
}

// GetAPIKey returns the key from the environment if set, else the active
// profile's.
func (c *Config) GetAPIKey() string {
	if key := os.Getenv(EnvAPIKey); key != "" {
		return key
	}
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.APIKey
}

func (c *Config) GetModel() string {
	if c.currentProfile == nil || c.currentProfile.Model == "" {
		return DefaultModel
	}
	return c.currentProfile.Model
}

func (c *Config) GetBaseURL() string {
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.BaseURL
}

func (c *Config) GetLanguage() string {
	if c.currentProfile == nil || c.currentProfile.Language == "" {
		return locale.DefaultTag
	}
	return c.currentProfile.Language
}

func (c *Config) GetTemperature() float32 {
	if c.currentProfile == nil || c.currentProfile.Temperature <= 0 {
		return nutrition.DefaultTemperature
	}
	return c.currentProfile.Temperature
}

func (c *Config) GetMaxDimension() int {
	if c.currentProfile == nil || c.currentProfile.MaxDimension == 0 {
		return DefaultMaxDimension
	}
	if c.currentProfile.MaxDimension < 0 {
		return 0
	}
	return c.currentProfile.MaxDimension
}

func (c *Config) GetTimeout() time.Duration {
	if c.currentProfile == nil || c.currentProfile.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.currentProfile.TimeoutSeconds) * time.Second
}

func (c *Config) ClampValues() bool {
	return c.currentProfile != nil && c.currentProfile.ClampValues
}

func (c *Config) GetLogLevel() string {
	if level := os.Getenv(EnvLogLevel); level != "" {
		return level
	}
	if c.LogLevel == "" {
		return "info"
	}
	return c.LogLevel
}

// Dir returns the directory holding the config file and logs.
func Dir() (string, error) {
	var baseDir string

	// Use NUTRIVISION_HOME if set, otherwise use user's home directory
	if home := os.Getenv(EnvHome); home != "" {
		baseDir = home
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = homeDir
	}

	return filepath.Join(baseDir, ".nutrivision"), nil
}

func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func ensureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func loadConfigFile(configPath string) (*Config, error) {
	// If config file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: map[string]Profile{
			DefaultProfileName: DefaultProfile(),
		},
		ActiveProfile: DefaultProfileName,
	}

	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}

	return config, nil
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	configPath, err := ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	return saveConfig(c, configPath)
}

// Use makes name the active profile.
func (c *Config) Use(name string) error {
	profile, exists := c.Profiles[name]
	if !exists {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	c.ActiveProfile = name
	c.currentProfile = &profile
	return nil
}

// ProfileNames returns the profile names in sorted order.
func (c *Config) ProfileNames() []string {
	var names []string
	for name := range c.Profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// AddProfile stores a new profile. It refuses to overwrite an existing one.
func (c *Config) AddProfile(name string, p Profile) error {
	if name == "" {
		return fmt.Errorf("profile name is empty")
	}
	if _, exists := c.Profiles[name]; exists {
		return fmt.Errorf("profile '%s' already exists", name)
	}
	if c.Profiles == nil {
		c.Profiles = make(map[string]Profile)
	}
	c.Profiles[name] = p
	return nil
}

// DeleteProfile removes name. When the active profile goes, the first
// remaining profile becomes active, or a fresh default profile when none
// remain.
func (c *Config) DeleteProfile(name string) error {
	if _, exists := c.Profiles[name]; !exists {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	delete(c.Profiles, name)

	if c.ActiveProfile != name {
		return nil
	}
	if len(c.Profiles) == 0 {
		c.Profiles[DefaultProfileName] = DefaultProfile()
	}
	return c.Use(c.ProfileNames()[0])
}

func (c *Config) setCurrentProfile() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// If active profile doesn't exist, try to use the first available profile
		for name, p := range c.Profiles {
			c.ActiveProfile = name
			profile = p
			exists = true
			break
		}
	}

	if !exists {
		return fmt.Errorf("no valid profiles found")
	}

	c.currentProfile = &profile
	return nil
}
