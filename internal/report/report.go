// Package report defines the immutable analysis report types and their
// renderers. A report is built once per analysis request and read-only
// afterwards.
package report

import (
	"github.com/regexle/regexle-go/internal/analyze"
	"github.com/regexle/regexle-go/internal/engine"
	"github.com/regexle/regexle-go/internal/extract"
)

// PatternReport is the full analysis of one discovered pattern: where it was
// found, its static risk and complexity, the bounded execution outcome, and
// the combined performance scoring. Execution and Performance are nil when
// the pattern was analyzed statically without being executed, which is
// distinct from an execution that failed.
type PatternReport struct {
	Pattern     extract.Pattern      `json:"pattern" yaml:"pattern"`
	Risk        analyze.Risk         `json:"risk" yaml:"risk"`
	Complexity  analyze.Complexity   `json:"complexity" yaml:"complexity"`
	Execution   *engine.Outcome      `json:"execution,omitempty" yaml:"execution,omitempty"`
	Performance *analyze.Performance `json:"performance,omitempty" yaml:"performance,omitempty"`
}

// FileReport collects the pattern reports for one file. NoPatterns marks the
// valid empty-extraction terminal state; it is not an error. Error carries a
// file-level failure (unreadable, oversized) as data.
type FileReport struct {
	Path       string          `json:"path" yaml:"path"`
	Bytes      int64           `json:"bytes,omitempty" yaml:"bytes,omitempty"`
	Patterns   []PatternReport `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	NoPatterns bool            `json:"noPatterns,omitempty" yaml:"noPatterns,omitempty"`
	Error      string          `json:"error,omitempty" yaml:"error,omitempty"`
	Cached     bool            `json:"cached,omitempty" yaml:"cached,omitempty"`
}

// Report is the result of one scan invocation.
type Report struct {
	Files []FileReport `json:"files" yaml:"files"`
	Stats Stats        `json:"stats" yaml:"stats"`
}

// Stats summarizes a scan run.
type Stats struct {
	FilesScanned    int   `json:"filesScanned" yaml:"filesScanned"`
	FilesSkipped    int   `json:"filesSkipped" yaml:"filesSkipped"`
	FilesErrored    int   `json:"filesErrored" yaml:"filesErrored"`
	FilesFromCache  int   `json:"filesFromCache" yaml:"filesFromCache"`
	PatternsFound   int   `json:"patternsFound" yaml:"patternsFound"`
	HighRiskCount   int   `json:"highRiskCount" yaml:"highRiskCount"`
	MediumRiskCount int   `json:"mediumRiskCount" yaml:"mediumRiskCount"`
	BytesScanned    int64 `json:"bytesScanned" yaml:"bytesScanned"`
	DurationMS      int64 `json:"durationMs" yaml:"durationMs"`
}

// HighestSeverity returns the most severe risk classification in a file
// report, or low when nothing was detected.
func (fr *FileReport) HighestSeverity() analyze.Severity {
	worst := analyze.SeverityLow
	for _, p := range fr.Patterns {
		if !p.Risk.Detected {
			continue
		}
		switch p.Risk.Severity {
		case analyze.SeverityHigh:
			return analyze.SeverityHigh
		case analyze.SeverityMedium:
			worst = analyze.SeverityMedium
		}
	}
	return worst
}
