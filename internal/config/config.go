// Package config provides configuration management for the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/encoding/ini"
	"github.com/spf13/viper"
)

// Config holds the global configuration.
type Config struct {
	// MaxMatches caps the matches reported per pattern.
	MaxMatches int `mapstructure:"max_matches"`

	// MatchTimeoutMS bounds a single backtracking match attempt, in
	// milliseconds.
	MatchTimeoutMS int `mapstructure:"match_timeout_ms"`

	// RiskDetection toggles static ReDoS analysis.
	RiskDetection bool `mapstructure:"risk_detection"`

	// Scoring toggles complexity and performance scoring.
	Scoring bool `mapstructure:"scoring"`

	// Extensions lists the file extensions scanned by default.
	Extensions []string `mapstructure:"extensions"`

	// Workers is the number of concurrent analysis workers.
	Workers int `mapstructure:"workers"`

	// MaxFileSize is the largest file, in bytes, the scanner will read.
	MaxFileSize int64 `mapstructure:"max_file_size"`

	// CacheDirectory is the path to the report cache directory.
	CacheDirectory string `mapstructure:"cache_directory"`

	// CacheEnabled enables or disables report caching.
	CacheEnabled bool `mapstructure:"cache"`

	// Debug enables debug output.
	Debug bool `mapstructure:"debug"`

	// Verbose enables verbose output.
	Verbose bool `mapstructure:"verbose"`

	// Quiet suppresses non-error output.
	Quiet bool `mapstructure:"quiet"`

	// NoColor disables colored output.
	NoColor bool `mapstructure:"no_color"`

	// ConfigFile is the path to the configuration file (set at runtime).
	ConfigFile string `mapstructure:"-"`
}

// MatchTimeout returns the match timeout as a duration.
func (c *Config) MatchTimeout() time.Duration {
	return time.Duration(c.MatchTimeoutMS) * time.Millisecond
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	cacheDir := filepath.Join(homeDir, ".cache", "regexle")

	return &Config{
		MaxMatches:     100,
		MatchTimeoutMS: 1000,
		RiskDetection:  true,
		Scoring:        true,
		Workers:        4,
		MaxFileSize:    10 << 20,
		CacheDirectory: cacheDir,
		CacheEnabled:   true,
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "regexle", "regexle.ini")
}

// Load loads configuration from all sources in priority order:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (REGEXLE_*)
// 3. Config file
// 4. Defaults
func Load(configFile string) (*Config, error) {
	codecRegistry := viper.NewCodecRegistry()
	if err := codecRegistry.RegisterCodec("ini", ini.Codec{}); err != nil {
		return nil, fmt.Errorf("registering INI codec: %w", err)
	}

	v := viper.NewWithOptions(
		viper.WithCodecRegistry(codecRegistry),
	)

	defaults := DefaultConfig()
	v.SetDefault("max_matches", defaults.MaxMatches)
	v.SetDefault("match_timeout_ms", defaults.MatchTimeoutMS)
	v.SetDefault("risk_detection", defaults.RiskDetection)
	v.SetDefault("scoring", defaults.Scoring)
	v.SetDefault("extensions", defaults.Extensions)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("max_file_size", defaults.MaxFileSize)
	v.SetDefault("cache_directory", defaults.CacheDirectory)
	v.SetDefault("cache", defaults.CacheEnabled)
	v.SetDefault("debug", defaults.Debug)
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("quiet", defaults.Quiet)
	v.SetDefault("no_color", defaults.NoColor)

	v.SetEnvPrefix("REGEXLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	// NO_COLOR is the cross-tool convention and wins over config.
	if os.Getenv("NO_COLOR") != "" {
		v.Set("no_color", true)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".config", "regexle"))
		v.AddConfigPath(".")
		v.SetConfigName("regexle")
		v.SetConfigType("ini")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && configFile != "" {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// The INI codec nests a [DEFAULT] section under its own key. Merge it
	// back into the root at config-file precedence, so environment
	// variables still win and defaults still lose.
	if section := v.GetStringMap("DEFAULT"); len(section) > 0 {
		if err := v.MergeConfigMap(section); err != nil {
			return nil, fmt.Errorf("merging config defaults: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects values the pipeline cannot work with.
func (c *Config) Validate() error {
	if c.MaxMatches < 0 {
		return fmt.Errorf("max_matches must not be negative, got %d", c.MaxMatches)
	}
	if c.MatchTimeoutMS <= 0 {
		return fmt.Errorf("match_timeout_ms must be positive, got %d", c.MatchTimeoutMS)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}

// ExpandPath expands ~ in paths to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
