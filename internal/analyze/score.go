package analyze

import (
	"time"

	"github.com/regexle/regexle-go/internal/engine"
)

// Performance is the combined 0..100 scoring of one pattern execution.
type Performance struct {
	Overall       int    `json:"overall"`
	Complexity    int    `json:"complexity"`
	ExecutionTime int    `json:"executionTime"`
	MemoryUsage   int    `json:"memoryUsage"`
	Label         string `json:"label"`
}

// Scoring reference points. referenceThroughput maps to a throughput
// sub-score of 100; slowNsPerChar maps to a time-per-char sub-score of 0;
// memoryBudgetMB maps a measured footprint of that size to 0.
const (
	referenceThroughput = 100_000_000 // chars/sec
	slowNsPerChar       = 1000.0
	memoryBudgetMB      = 20.0
)

// Sub-score blend weights for the overall score.
const (
	complexityShare = 0.40
	timeShare       = 0.35
	memoryShare     = 0.25
)

// ScorePerformance combines a complexity score with execution metrics
// already collected by the executor into normalized 0..100 sub-scores and a
// human-readable label. It performs no new execution.
func ScorePerformance(metrics engine.Metrics, complexityScore int) Performance {
	complexity := clampScore(100 - complexityScore)
	execTime := timeScore(metrics)
	memory := memoryScore(metrics.MemoryBytes)

	overall := clampScore(int(
		complexityShare*float64(complexity) +
			timeShare*float64(execTime) +
			memoryShare*float64(memory) + 0.5))

	return Performance{
		Overall:       overall,
		Complexity:    complexity,
		ExecutionTime: execTime,
		MemoryUsage:   memory,
		Label:         scoreLabel(overall),
	}
}

// timeScore averages two views of the same measurement: throughput relative
// to the reference, and time-per-character relative to the slow threshold.
func timeScore(m engine.Metrics) int {
	if m.Duration <= 0 || m.InputChars <= 0 {
		return 100 // nothing measured, or effectively instant
	}
	seconds := m.Duration.Seconds()
	throughput := float64(m.InputChars) / seconds
	throughputScore := clampScore(int(100 * throughput / referenceThroughput))

	nsPerChar := float64(m.Duration) / float64(time.Nanosecond) / float64(m.InputChars)
	perCharScore := clampScore(int(100 * (1 - nsPerChar/slowNsPerChar)))

	return (throughputScore + perCharScore) / 2
}

// memoryScore is a proxy: 100 when no measurement is available, else
// inverse-scaled by the estimated megabytes.
func memoryScore(bytes int64) int {
	if bytes <= 0 {
		return 100
	}
	mb := float64(bytes) / (1 << 20)
	return clampScore(int(100 * (1 - mb/memoryBudgetMB)))
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// scoreLabel buckets an overall score into the report vocabulary.
func scoreLabel(overall int) string {
	switch {
	case overall >= 80:
		return "excellent"
	case overall >= 60:
		return "good"
	case overall >= 40:
		return "fair"
	case overall >= 20:
		return "poor"
	default:
		return "very poor"
	}
}
