package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeRiskHighSeverity(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"nested plus", `(a+)+`},
		{"classic evil", `(x+)+y`},
		{"nested star over dot", `(.*)*`},
		{"nested over class", `([a-z]+)*`},
		{"nested over escape class", `(\d+)+`},
		{"identical alternation branches", `(a|a)*`},
		{"prefix-overlapping branches", `(ab|a)+`},
		{"single atom tail", `(ab+)+`},
		{"dot overlaps literal branch", `(.|a)*`},
		{"backreference with nested quantifier", `(a+)+\1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			risk := AnalyzeRisk(tt.pattern, "")
			assert.True(t, risk.Detected)
			assert.Equal(t, SeverityHigh, risk.Severity)
			assert.NotEmpty(t, risk.Rationale)
		})
	}
}

func TestAnalyzeRiskMediumSeverity(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"nested over grouped body", `((ab)+)*`},
		{"nesting behind lookahead", `(a+b)+(?=c)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			risk := AnalyzeRisk(tt.pattern, "")
			assert.True(t, risk.Detected)
			assert.Equal(t, SeverityMedium, risk.Severity)
		})
	}
}

func TestAnalyzeRiskUndetected(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"simple literal", `abc`},
		{"single quantifier", `a+`},
		{"sequential quantifiers", `a+b+`},
		{"disjoint alternation", `(a|b)*`},
		{"quantified group no inner quantifier", `(ab)+c`},
		{"bounded nested repeat of one", `(a{1})+`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			risk := AnalyzeRisk(tt.pattern, "")
			assert.False(t, risk.Detected, "rationale: %s", risk.Rationale)
			assert.Equal(t, SeverityLow, risk.Severity)
		})
	}
}

func TestAnalyzeRiskInvalidPattern(t *testing.T) {
	risk := AnalyzeRisk("(", "")
	assert.False(t, risk.Detected)
	assert.Equal(t, SeverityLow, risk.Severity)
	assert.Contains(t, risk.Rationale, "does not compile")
}

func TestAnalyzeRiskSeverityImpliesDetected(t *testing.T) {
	patterns := []string{`(a+)+`, `(ab+)+`, `a+`, `(`, `(a|a)*`, `x{2,}`}
	for _, p := range patterns {
		risk := AnalyzeRisk(p, "")
		if risk.Severity == SeverityHigh || risk.Severity == SeverityMedium {
			require.True(t, risk.Detected, "pattern %q", p)
		}
	}
}
