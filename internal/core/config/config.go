// Package config handles configuration loading and validation for redline.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAPIURL is the backend used when neither the config file nor the
// environment names one.
const DefaultAPIURL = "http://localhost:8000"

// Config holds the application configuration.
type Config struct {
	// APIURL is the base URL of the correction backend.
	APIURL string `yaml:"api_url"`
	// Timeout bounds individual backend requests.
	Timeout time.Duration `yaml:"timeout"`
	// TUI holds terminal UI options.
	TUI TUIConfig `yaml:"tui"`
	// Export holds export download options.
	Export ExportConfig `yaml:"export"`
	// DataDir is set by the caller, not from the config file. Tokens and
	// logs live under it.
	DataDir string `yaml:"-"`
}

// TUIConfig holds terminal UI options.
type TUIConfig struct {
	Theme string `yaml:"theme"`
	// RunPollInterval is how often the run watch view refreshes run status.
	RunPollInterval time.Duration `yaml:"run_poll_interval"`
	// ArtifactPollInterval is how often the run watch view refreshes the
	// artifact listing.
	ArtifactPollInterval time.Duration `yaml:"artifact_poll_interval"`
}

// ExportConfig holds export download options.
type ExportConfig struct {
	// Dir is where exported documents are written. Empty means the current
	// working directory.
	Dir string `yaml:"dir"`
	// Extension of exported documents, without the dot.
	Extension string `yaml:"extension"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		APIURL:  DefaultAPIURL,
		Timeout: 20 * time.Second,
		TUI: TUIConfig{
			Theme:                "tokyo-night",
			RunPollInterval:      2 * time.Second,
			ArtifactPollInterval: 3 * time.Second,
		},
		Export: ExportConfig{
			Extension: "docx",
		},
	}
}

// Load reads the config file if it exists, applies defaults, and validates.
// A missing file is not an error; defaults apply.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.APIURL == "" {
		c.APIURL = defaults.APIURL
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.RunPollInterval == 0 {
		c.TUI.RunPollInterval = defaults.TUI.RunPollInterval
	}
	if c.TUI.ArtifactPollInterval == 0 {
		c.TUI.ArtifactPollInterval = defaults.TUI.ArtifactPollInterval
	}
	if c.Export.Extension == "" {
		c.Export.Extension = defaults.Export.Extension
	}
}
