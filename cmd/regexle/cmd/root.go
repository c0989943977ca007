// Package cmd contains the CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/regexle/regexle-go/internal/config"
	"github.com/regexle/regexle-go/internal/logging"
)

var (
	cfgFile        string
	cfg            *config.Config
	debugFlag      bool
	verboseFlag    bool
	quietFlag      bool
	noColorFlag    bool
	cacheDirFlag   string
	noCacheFlag    bool
	maxMatchesFlag int
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "regexle",
	Short: "regexle - regex literal explorer and ReDoS analyzer",
	Long: `regexle discovers regular-expression literals embedded in source
files, executes them safely against the surrounding text, statically
estimates their risk of catastrophic backtracking, and scores their
structural complexity and runtime performance.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Command-line flags win over every other source.
		if cmd.Flags().Changed("debug") {
			cfg.Debug = debugFlag
		}
		if cmd.Flags().Changed("verbose") {
			cfg.Verbose = verboseFlag
		}
		if cmd.Flags().Changed("quiet") {
			cfg.Quiet = quietFlag
		}
		if cmd.Flags().Changed("no-color") {
			cfg.NoColor = noColorFlag
		}
		if cmd.Flags().Changed("cache-dir") {
			cfg.CacheDirectory = cacheDirFlag
		}
		if cmd.Flags().Changed("no-cache") {
			cfg.CacheEnabled = !noCacheFlag
		}
		if cmd.Flags().Changed("max-matches") {
			if maxMatchesFlag < 0 {
				return fmt.Errorf("--max-matches must not be negative")
			}
			cfg.MaxMatches = maxMatchesFlag
		}

		configureLogging(cfg)

		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/regexle/regexle.ini)")
	rootCmd.PersistentFlags().StringVar(&cacheDirFlag, "cache-dir", "", "report cache directory (default: ~/.cache/regexle)")
	rootCmd.PersistentFlags().BoolVar(&noCacheFlag, "no-cache", false, "disable report caching")
	rootCmd.PersistentFlags().IntVar(&maxMatchesFlag, "max-matches", 0, "maximum matches reported per pattern")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}

func configureLogging(cfg *config.Config) {
	var level logging.Level
	switch {
	case cfg.Quiet:
		level = logging.LevelError
	case cfg.Debug:
		level = logging.LevelDebug
	case cfg.Verbose:
		level = logging.LevelVerbose
	default:
		level = logging.LevelInfo
	}
	logging.SetDefaultLevel(level)
	logging.SetDefaultColored(!cfg.NoColor)
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	return cfg
}
