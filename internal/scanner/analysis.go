package scanner

import (
	"time"

	"github.com/regexle/regexle-go/internal/analyze"
	"github.com/regexle/regexle-go/internal/engine"
	"github.com/regexle/regexle-go/internal/extract"
	"github.com/regexle/regexle-go/internal/report"
)

// AnalysisOptions controls the per-pattern analysis pass.
type AnalysisOptions struct {
	// MaxMatches caps the matches returned per pattern. Zero means the
	// executor's own iteration ceiling is the only bound.
	MaxMatches int

	// MatchTimeout bounds a single backtracking match attempt.
	MatchTimeout time.Duration

	// RiskDetection toggles the static ReDoS analyzer.
	RiskDetection bool

	// Scoring toggles complexity estimation and performance scoring.
	Scoring bool
}

// DefaultAnalysisOptions returns the options used when the configuration
// does not override them.
func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{
		MaxMatches:    100,
		MatchTimeout:  engine.DefaultMatchTimeout,
		RiskDetection: true,
		Scoring:       true,
	}
}

// AnalyzeText composes the four core components over one body of text:
// extract candidate patterns, then per pattern run the static risk analyzer
// and the bounded executor, and finally score complexity and performance
// from the collected metrics. Pure: no state survives the call.
func AnalyzeText(text string, opts AnalysisOptions) []report.PatternReport {
	patterns := extract.Extract(text)
	if len(patterns) == 0 {
		return nil
	}

	out := make([]report.PatternReport, 0, len(patterns))
	for _, p := range patterns {
		pr := report.PatternReport{Pattern: p}

		if opts.RiskDetection {
			pr.Risk = analyze.AnalyzeRisk(p.Pattern, p.Flags)
		} else {
			pr.Risk = analyze.Risk{Severity: analyze.SeverityLow, Rationale: "risk detection disabled"}
		}

		exec := engine.ExecuteTimeout(p.Pattern, p.Flags, text, opts.MaxMatches, opts.MatchTimeout)
		pr.Execution = &exec

		if opts.Scoring {
			pr.Complexity = analyze.EstimateComplexity(p.Pattern)
			if exec.Success {
				perf := analyze.ScorePerformance(exec.Metrics, pr.Complexity.Score)
				pr.Performance = &perf
			}
		}

		out = append(out, pr)
	}
	return out
}
