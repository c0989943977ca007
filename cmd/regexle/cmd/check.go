package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/regexle/regexle-go/internal/analyze"
	"github.com/regexle/regexle-go/internal/engine"
	"github.com/regexle/regexle-go/internal/extract"
	"github.com/regexle/regexle-go/internal/report"
)

var (
	checkFlags        string
	checkText         string
	checkTextFile     string
	checkOutputFormat string
)

var checkCmd = &cobra.Command{
	Use:   "check <pattern>",
	Short: "Analyze a single regex pattern",
	Long: `Check analyzes one pattern without scanning any files: it reports the
static ReDoS risk and structural complexity, and, when --text or
--text-file supplies an input, executes the pattern against it and
scores the resulting performance.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkFlags, "flags", "f", "", "regex flags (any of gimsuvy)")
	checkCmd.Flags().StringVar(&checkText, "text", "", "input text to execute the pattern against")
	checkCmd.Flags().StringVar(&checkTextFile, "text-file", "", "file whose contents to execute the pattern against")
	checkCmd.Flags().StringVar(&checkOutputFormat, "output-format", "human", "report format: human, json, or yaml")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, args []string) error {
	cfg := GetConfig()
	pattern := args[0]

	format, err := report.ParseFormat(checkOutputFormat)
	if err != nil {
		return err
	}

	if _, err := engine.ParseFlags(checkFlags); err != nil {
		return err
	}

	text := checkText
	if checkTextFile != "" {
		if checkText != "" {
			return fmt.Errorf("--text and --text-file are mutually exclusive")
		}
		data, err := os.ReadFile(checkTextFile)
		if err != nil {
			return fmt.Errorf("failed to read text file: %w", err)
		}
		text = string(data)
	}

	pr := report.PatternReport{
		Pattern: extract.Pattern{
			Pattern: pattern,
			Flags:   checkFlags,
			Line:    1,
			Column:  1,
			Raw:     "/" + pattern + "/" + checkFlags,
		},
		Risk:       analyze.AnalyzeRisk(pattern, checkFlags),
		Complexity: analyze.EstimateComplexity(pattern),
	}
	// Execution and performance stay unset for a static-only check; an
	// absent outcome is not a failed one.
	if text != "" {
		out := engine.ExecuteTimeout(pattern, checkFlags, text, cfg.MaxMatches, cfg.MatchTimeout())
		pr.Execution = &out
		if out.Success {
			perf := analyze.ScorePerformance(out.Metrics, pr.Complexity.Score)
			pr.Performance = &perf
		}
	}

	rep := &report.Report{
		Files: []report.FileReport{{
			Path:     "(inline)",
			Patterns: []report.PatternReport{pr},
		}},
		Stats: report.Stats{
			FilesScanned:  1,
			PatternsFound: 1,
		},
	}
	if pr.Risk.Detected {
		switch pr.Risk.Severity {
		case analyze.SeverityHigh:
			rep.Stats.HighRiskCount = 1
		case analyze.SeverityMedium:
			rep.Stats.MediumRiskCount = 1
		}
	}

	return report.Render(os.Stdout, rep, format)
}
