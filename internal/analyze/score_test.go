package analyze

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/regexle/regexle-go/internal/engine"
)

func TestScorePerformanceUnmeasured(t *testing.T) {
	got := ScorePerformance(engine.Metrics{}, 0)

	assert.Equal(t, 100, got.Overall)
	assert.Equal(t, 100, got.Complexity)
	assert.Equal(t, 100, got.ExecutionTime)
	assert.Equal(t, 100, got.MemoryUsage)
	assert.Equal(t, "excellent", got.Label)
}

func TestScorePerformanceComplexityWeight(t *testing.T) {
	got := ScorePerformance(engine.Metrics{}, 100)

	assert.Equal(t, 0, got.Complexity)
	// 0.40*0 + 0.35*100 + 0.25*100
	assert.Equal(t, 60, got.Overall)
	assert.Equal(t, "good", got.Label)
}

func TestScorePerformanceSlowExecution(t *testing.T) {
	// 1000 ns per char: per-char sub-score bottoms out and throughput is
	// three decades under the reference.
	m := engine.Metrics{
		Duration:   time.Millisecond,
		InputChars: 1000,
		MatchCount: 1,
	}
	got := ScorePerformance(m, 0)

	assert.Equal(t, 0, got.ExecutionTime)
	assert.Equal(t, 65, got.Overall)
}

func TestScorePerformanceFastExecution(t *testing.T) {
	// 1 ns per char meets the reference throughput.
	m := engine.Metrics{
		Duration:   time.Microsecond,
		InputChars: 1000,
	}
	got := ScorePerformance(m, 0)

	assert.GreaterOrEqual(t, got.ExecutionTime, 90)
	assert.Equal(t, "excellent", got.Label)
}

func TestScorePerformanceMemory(t *testing.T) {
	m := engine.Metrics{MemoryBytes: 10 << 20}
	got := ScorePerformance(m, 0)
	assert.Equal(t, 50, got.MemoryUsage)

	m.MemoryBytes = 40 << 20
	got = ScorePerformance(m, 0)
	assert.Equal(t, 0, got.MemoryUsage)
}

func TestScorePerformanceBounds(t *testing.T) {
	metrics := []engine.Metrics{
		{},
		{Duration: time.Second, InputChars: 10},
		{Duration: time.Nanosecond, InputChars: 1 << 20},
		{MemoryBytes: 1 << 40},
	}
	for _, m := range metrics {
		for _, cs := range []int{0, 50, 100, 150} {
			got := ScorePerformance(m, cs)
			assert.GreaterOrEqual(t, got.Overall, 0)
			assert.LessOrEqual(t, got.Overall, 100)
			assert.NotEmpty(t, got.Label)
		}
	}
}

func TestScoreLabels(t *testing.T) {
	tests := []struct {
		overall int
		label   string
	}{
		{100, "excellent"}, {80, "excellent"},
		{79, "good"}, {60, "good"},
		{59, "fair"}, {40, "fair"},
		{39, "poor"}, {20, "poor"},
		{19, "very poor"}, {0, "very poor"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.label, scoreLabel(tt.overall), "overall %d", tt.overall)
	}
}
