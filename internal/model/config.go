package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultEndpoint is the read-only snapshot endpoint used when no URL is
// configured.
const DefaultEndpoint = "https://api.quicksell.co/v1/internal/frontend-assignment"

// envPrefix namespaces environment overrides, e.g. TICKETBOARD_SOURCE_URL.
const envPrefix = "TICKETBOARD"

// SourceConfig selects and configures the snapshot source.
type SourceConfig struct {
	// Type is one of "api", "file" or "sqlite".
	Type string `mapstructure:"type" yaml:"type"`

	// URL is the endpoint fetched by the api source.
	URL string `mapstructure:"url" yaml:"url"`

	// File is the JSON payload read by the file source.
	File string `mapstructure:"file" yaml:"file"`

	// DB is the SQLite snapshot read by the sqlite source and written by
	// export.
	DB string `mapstructure:"db" yaml:"db"`

	// FetchTimeoutSec bounds a single snapshot fetch.
	FetchTimeoutSec int `mapstructure:"fetch_timeout_sec" yaml:"fetch_timeout_sec"`

	// MaxRetries is how many times a rate-limited (429) request is retried.
	// Zero means fire once.
	MaxRetries int `mapstructure:"max_retries" yaml:"max_retries"`

	// TokenKey names an optional bearer token in the system keyring.
	TokenKey string `mapstructure:"token_key" yaml:"token_key"`
}

// DisplayConfig holds the initial board options.
type DisplayConfig struct {
	GroupBy string `mapstructure:"group_by" yaml:"group_by"`
	SortBy  string `mapstructure:"sort_by" yaml:"sort_by"`
	Theme   string `mapstructure:"theme" yaml:"theme"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Source  SourceConfig  `mapstructure:"source" yaml:"source"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/ticketboard/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultLogPath returns ~/.config/ticketboard/ticketboard.log.
func DefaultLogPath() string {
	return filepath.Join(configDir(), "ticketboard.log")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "ticketboard")
}

// DefaultAppConfig returns the configuration used when no file exists.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Source: SourceConfig{
			Type:            "api",
			URL:             DefaultEndpoint,
			FetchTimeoutSec: 30,
			MaxRetries:      0,
		},
		Display: DisplayConfig{
			GroupBy: "status",
			SortBy:  "priority",
			Theme:   "default",
		},
		Log: LogConfig{
			Level: "info",
			File:  DefaultLogPath(),
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultAppConfig()
	v.SetDefault("source.type", d.Source.Type)
	v.SetDefault("source.url", d.Source.URL)
	v.SetDefault("source.file", d.Source.File)
	v.SetDefault("source.db", d.Source.DB)
	v.SetDefault("source.fetch_timeout_sec", d.Source.FetchTimeoutSec)
	v.SetDefault("source.max_retries", d.Source.MaxRetries)
	v.SetDefault("source.token_key", d.Source.TokenKey)
	v.SetDefault("display.group_by", d.Display.GroupBy)
	v.SetDefault("display.sort_by", d.Display.SortBy)
	v.SetDefault("display.theme", d.Display.Theme)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Environment variables prefixed with TICKETBOARD_ override file values.
// If the file does not exist, defaults (plus overrides) are returned.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := DefaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Source.FetchTimeoutSec <= 0 {
		cfg.Source.FetchTimeoutSec = 30
	}
	if cfg.Source.MaxRetries < 0 {
		cfg.Source.MaxRetries = 0
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("source", cfg.Source)
	v.Set("display", cfg.Display)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
