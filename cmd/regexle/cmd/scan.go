package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/regexle/regexle-go/internal/cache"
	"github.com/regexle/regexle-go/internal/logging"
	"github.com/regexle/regexle-go/internal/report"
	"github.com/regexle/regexle-go/internal/scanner"
)

var (
	scanOutputFile   string
	scanOutputFormat string
	scanWorkers      int
	scanNoRisk       bool
	scanNoScore      bool
	scanAllFiles     bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Scan files or directories for regex patterns and analyze them",
	Long: `Scan walks the given files and directories, extracts regular-expression
literals and RegExp constructor calls from each source file, and reports
the matches each pattern produces against its own file together with a
static ReDoS risk assessment and a complexity/performance score.

With no paths, the current directory is scanned.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanOutputFile, "output", "o", "", "write the report to a file instead of stdout")
	scanCmd.Flags().StringVar(&scanOutputFormat, "output-format", "human", "report format: human, json, or yaml")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "number of concurrent scan workers")
	scanCmd.Flags().BoolVar(&scanNoRisk, "no-risk", false, "skip static ReDoS risk analysis")
	scanCmd.Flags().BoolVar(&scanNoScore, "no-score", false, "skip complexity and performance scoring")
	scanCmd.Flags().BoolVar(&scanAllFiles, "all-files", false, "scan every regular file regardless of extension")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	log := logging.Default()

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	format, err := report.ParseFormat(scanOutputFormat)
	if err != nil {
		return err
	}

	opts := scanner.AnalysisOptions{
		MaxMatches:    cfg.MaxMatches,
		MatchTimeout:  cfg.MatchTimeout(),
		RiskDetection: cfg.RiskDetection && !scanNoRisk,
		Scoring:       cfg.Scoring && !scanNoScore,
	}

	workers := cfg.Workers
	if cmd.Flags().Changed("workers") {
		if scanWorkers < 1 {
			return fmt.Errorf("--workers must be at least 1")
		}
		workers = scanWorkers
	}

	filter := scanner.DefaultFilter()
	if scanAllFiles {
		filter = scanner.AllFilesFilter()
	} else if len(cfg.Extensions) > 0 {
		filter = scanner.NewFileFilter()
		filter.Allow(scanner.FilterExtensions(cfg.Extensions...))
	}

	s := scanner.New(opts,
		scanner.WithWorkers(workers),
		scanner.WithMaxFileSize(cfg.MaxFileSize),
		scanner.WithFilter(filter),
		scanner.WithCache(buildCache(cfg.CacheEnabled, cfg.CacheDirectory, log)),
		scanner.WithLogger(log),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := s.Scan(ctx, paths...)
	if err != nil {
		return err
	}

	out := os.Stdout
	if scanOutputFile != "" {
		f, err := os.Create(scanOutputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := report.Render(out, rep, format); err != nil {
		return err
	}

	if rep.Stats.HighRiskCount > 0 {
		log.Warning("Found %d high-risk pattern(s)", rep.Stats.HighRiskCount)
	}
	return nil
}

func buildCache(enabled bool, dir string, log *logging.Logger) cache.Cache {
	if !enabled {
		return cache.NoOpCache{}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		log.Warning("Cache unavailable, continuing without it: %v", err)
		return cache.NoOpCache{}
	}
	return fc
}
