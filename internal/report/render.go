package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/regexle/regexle-go/internal/analyze"
)

// Format selects a report renderer.
type Format string

// Supported output formats.
const (
	FormatHuman Format = "human"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format name from the CLI.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatHuman, FormatJSON, FormatYAML:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want human, json or yaml)", name)
	}
}

// Render writes the report to w in the requested format.
func Render(w io.Writer, r *Report, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(r)
	default:
		return renderHuman(w, r)
	}
}

func renderHuman(w io.Writer, r *Report) error {
	for _, fr := range r.Files {
		if _, err := fmt.Fprintf(w, "%s\n", color.New(color.Bold).Sprint(fr.Path)); err != nil {
			return err
		}
		switch {
		case fr.Error != "":
			fmt.Fprintf(w, "  %s %s\n", color.RedString("error:"), fr.Error)
		case fr.NoPatterns:
			fmt.Fprintf(w, "  no patterns found\n")
		default:
			for _, p := range fr.Patterns {
				renderPattern(w, &p)
			}
		}
		fmt.Fprintln(w)
	}

	s := r.Stats
	fmt.Fprintf(w, "%d file(s) scanned, %d skipped, %d errored, %d from cache\n",
		s.FilesScanned, s.FilesSkipped, s.FilesErrored, s.FilesFromCache)
	fmt.Fprintf(w, "%d pattern(s) found: %s high risk, %s medium risk\n",
		s.PatternsFound,
		color.RedString("%d", s.HighRiskCount),
		color.YellowString("%d", s.MediumRiskCount))
	_, err := fmt.Fprintf(w, "%d byte(s) in %dms\n", s.BytesScanned, s.DurationMS)
	return err
}

func renderPattern(w io.Writer, p *PatternReport) {
	fmt.Fprintf(w, "  %s:%d:%d  /%s/%s\n",
		"line", p.Pattern.Line, p.Pattern.Column, p.Pattern.Pattern, p.Pattern.Flags)

	fmt.Fprintf(w, "    risk:        %s  %s\n", severityString(p.Risk.Severity), p.Risk.Rationale)
	fmt.Fprintf(w, "    complexity:  %d/100\n", p.Complexity.Score)

	switch {
	case p.Execution == nil:
		// static-only analysis; nothing was executed
	case !p.Execution.Success:
		msg := "pattern failed to compile"
		if len(p.Execution.Errors) > 0 {
			msg = p.Execution.Errors[0].Message
		}
		fmt.Fprintf(w, "    execution:   %s %s\n", color.RedString("invalid pattern:"), msg)
	case p.Execution.LimitHit:
		fmt.Fprintf(w, "    execution:   %d match(es), truncated\n", len(p.Execution.Matches))
	default:
		fmt.Fprintf(w, "    execution:   %d match(es)\n", len(p.Execution.Matches))
	}

	if p.Performance != nil {
		fmt.Fprintf(w, "    performance: %d/100 (%s)\n", p.Performance.Overall, p.Performance.Label)
	}
}

func severityString(s analyze.Severity) string {
	switch s {
	case analyze.SeverityHigh:
		return color.RedString("high")
	case analyze.SeverityMedium:
		return color.YellowString("medium")
	default:
		return color.GreenString("low")
	}
}
