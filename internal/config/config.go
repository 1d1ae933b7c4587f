package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/gerunddev/flashmigrate/internal/migrate"
)

// Config represents the flashmigrate configuration
type Config struct {
	LogFile    string   `yaml:"log_file,omitempty"`
	LogLevel   string   `yaml:"log_level"`
	StateFile  string   `yaml:"state_file"`
	Extensions []string `yaml:"extensions"`

	// Markup vocabulary
	CardTag   string `yaml:"card_tag"`
	DeckKey   string `yaml:"deck_key"`
	TagsKey   string `yaml:"tags_key"`
	TagPrefix string `yaml:"tag_prefix"`
	Separator string `yaml:"separator"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	opts := migrate.DefaultOptions()
	return &Config{
		LogLevel:   "warn",
		StateFile:  StateFilePath(),
		Extensions: []string{".md"},
		CardTag:    opts.CardTag,
		DeckKey:    opts.DeckKey,
		TagsKey:    opts.TagsKey,
		TagPrefix:  opts.TagPrefix,
		Separator:  opts.Separator,
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to XDG if home dir unavailable
		return filepath.Join(xdg.ConfigHome, "flashmigrate", "config.yaml")
	}
	return filepath.Join(home, ".config", "flashmigrate", "config.yaml")
}

// StateFilePath returns the path to the batch state file
// Uses platform-specific XDG data directory
// Can be overridden for testing
var StateFilePath = func() string {
	return filepath.Join(xdg.DataHome, "flashmigrate", "state.json")
}

// Load reads configuration from path, or from ConfigPath() when path is empty.
// A missing file yields the default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	// Fields absent from the file keep their defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to ConfigPath()
func (c *Config) Save() error {
	configPath := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.StateFile == "" {
		return fmt.Errorf("state_file cannot be empty")
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level '%s': must be one of: debug, info, warn, error", c.LogLevel)
	}

	vocabulary := map[string]string{
		"card_tag":   c.CardTag,
		"deck_key":   c.DeckKey,
		"tags_key":   c.TagsKey,
		"tag_prefix": c.TagPrefix,
		"separator":  c.Separator,
	}
	for key, value := range vocabulary {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s cannot be empty", key)
		}
	}

	if strings.ContainsAny(c.CardTag, " \t#") {
		return fmt.Errorf("invalid card_tag '%s': must not contain whitespace or '#'", c.CardTag)
	}

	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions cannot be empty")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("invalid extension '%s': must start with '.'", ext)
		}
	}

	return nil
}

// MigrateOptions returns the markup vocabulary for the migrate package
func (c *Config) MigrateOptions() migrate.Options {
	return migrate.Options{
		CardTag:   c.CardTag,
		DeckKey:   c.DeckKey,
		TagsKey:   c.TagsKey,
		TagPrefix: c.TagPrefix,
		Separator: c.Separator,
	}
}

// HasExtension reports whether path has one of the configured extensions
func (c *Config) HasExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range c.Extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	c.StateFile, err = expandPath(c.StateFile)
	if err != nil {
		return fmt.Errorf("failed to expand state_file: %w", err)
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
