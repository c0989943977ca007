package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteGlobal(t *testing.T) {
	out := Execute(`\d+`, "g", "a1 b22 c333", 100)

	require.True(t, out.Success)
	require.Len(t, out.Matches, 3)
	assert.False(t, out.LimitHit)

	assert.Equal(t, "1", out.Matches[0].Text)
	assert.Equal(t, 1, out.Matches[0].StartOffset)
	assert.Equal(t, "22", out.Matches[1].Text)
	assert.Equal(t, 4, out.Matches[1].StartOffset)
	assert.Equal(t, "333", out.Matches[2].Text)
	assert.Equal(t, 8, out.Matches[2].StartOffset)

	assert.Equal(t, 3, out.Metrics.MatchCount)
	assert.Equal(t, len("a1 b22 c333"), out.Metrics.InputChars)
}

func TestExecuteNonGlobalStopsAtFirst(t *testing.T) {
	out := Execute(`\d+`, "", "a1 b22 c333", 100)

	require.True(t, out.Success)
	require.Len(t, out.Matches, 1)
	assert.Equal(t, "1", out.Matches[0].Text)
}

func TestExecuteMaxMatchesTruncates(t *testing.T) {
	out := Execute(`\d+`, "g", "1 2 3 4 5", 2)

	require.True(t, out.Success)
	assert.Len(t, out.Matches, 2)
	assert.True(t, out.LimitHit)
	assert.Empty(t, out.Errors)
}

func TestExecuteSyntaxError(t *testing.T) {
	out := Execute("(", "", "anything", 100)

	assert.False(t, out.Success)
	assert.Empty(t, out.Matches)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, PatternSyntaxError, out.Errors[0].Kind)
	assert.NotEmpty(t, out.Errors[0].Message)
}

func TestExecuteBadFlags(t *testing.T) {
	for _, flags := range []string{"x", "gg"} {
		out := Execute("a", flags, "a", 100)
		assert.False(t, out.Success, "flags %q", flags)
		require.Len(t, out.Errors, 1)
		assert.Equal(t, PatternSyntaxError, out.Errors[0].Kind)
	}
}

func TestExecuteZeroWidthTerminates(t *testing.T) {
	out := Execute("x*", "g", "abc", 0)

	require.True(t, out.Success)
	// One empty match at each position, including end of input.
	assert.Len(t, out.Matches, 4)
	for _, m := range out.Matches {
		assert.Equal(t, m.StartOffset, m.EndOffset)
	}
}

func TestExecuteCaptureGroups(t *testing.T) {
	out := Execute(`(\w)(\d)`, "", "a1", 100)

	require.True(t, out.Success)
	require.Len(t, out.Matches, 1)
	groups := out.Matches[0].Groups
	require.Len(t, groups, 2)

	assert.Equal(t, 1, groups[0].Index)
	assert.Equal(t, "a", groups[0].Value)
	assert.Equal(t, 0, groups[0].Start)
	assert.Equal(t, 2, groups[1].Index)
	assert.Equal(t, "1", groups[1].Value)
	assert.Equal(t, 1, groups[1].Start)
}

func TestExecuteNonParticipatingGroupOmitted(t *testing.T) {
	out := Execute(`(a)|(b)`, "", "b", 100)

	require.True(t, out.Success)
	require.Len(t, out.Matches, 1)
	require.Len(t, out.Matches[0].Groups, 1)
	assert.Equal(t, 2, out.Matches[0].Groups[0].Index)
	assert.Equal(t, "b", out.Matches[0].Groups[0].Value)
}

func TestExecuteLineColumn(t *testing.T) {
	out := Execute("cd", "", "ab\ncd", 100)

	require.True(t, out.Success)
	require.Len(t, out.Matches, 1)
	assert.Equal(t, 2, out.Matches[0].Line)
	assert.Equal(t, 0, out.Matches[0].Column)
	assert.Equal(t, 3, out.Matches[0].StartOffset)
}

func TestExecuteIgnoreCase(t *testing.T) {
	out := Execute("abc", "i", "xABCx", 100)

	require.True(t, out.Success)
	require.Len(t, out.Matches, 1)
	assert.Equal(t, "ABC", out.Matches[0].Text)
}

func TestExecuteSticky(t *testing.T) {
	t.Run("chain from start", func(t *testing.T) {
		out := Execute(`\d`, "gy", "12a34", 100)
		require.True(t, out.Success)
		require.Len(t, out.Matches, 2)
		assert.Equal(t, "1", out.Matches[0].Text)
		assert.Equal(t, "2", out.Matches[1].Text)
	})

	t.Run("no match at cursor", func(t *testing.T) {
		out := Execute(`\d`, "y", "a12", 100)
		require.True(t, out.Success)
		assert.Empty(t, out.Matches)
	})
}

func TestExecuteLookaheadFallback(t *testing.T) {
	// Lookaround forces the backtracking engine.
	out := Execute(`a(?=b)`, "g", "ab ac ab", 100)

	require.True(t, out.Success)
	require.Len(t, out.Matches, 2)
	assert.Equal(t, 0, out.Matches[0].StartOffset)
	assert.Equal(t, 6, out.Matches[1].StartOffset)
}

func TestExecuteLookbehindByteOffsets(t *testing.T) {
	// The backtracking engine reports rune offsets; the outcome must carry
	// byte offsets even for multi-byte input.
	out := Execute(`(?<=é)x`, "", "éx", 100)

	require.True(t, out.Success)
	require.Len(t, out.Matches, 1)
	assert.Equal(t, 2, out.Matches[0].StartOffset)
	assert.Equal(t, 3, out.Matches[0].EndOffset)
}

func TestExecuteDegenerateGlobalHitsCeiling(t *testing.T) {
	text := make([]byte, MaxIterations+100)
	for i := range text {
		text[i] = 'a'
	}
	out := Execute("a?", "g", string(text), 0)

	require.True(t, out.Success)
	assert.True(t, out.LimitHit)
	assert.LessOrEqual(t, len(out.Matches), MaxIterations)
}

func TestParseFlags(t *testing.T) {
	f, err := ParseFlags("gimsy")
	require.NoError(t, err)
	assert.True(t, f.Global)
	assert.True(t, f.IgnoreCase)
	assert.True(t, f.Multiline)
	assert.True(t, f.DotAll)
	assert.True(t, f.Sticky)
	assert.False(t, f.Unicode)

	for _, u := range []string{"u", "v"} {
		f, err := ParseFlags(u)
		require.NoError(t, err)
		assert.True(t, f.Unicode)
	}

	_, err = ParseFlags("q")
	assert.Error(t, err)
	_, err = ParseFlags("gig")
	assert.Error(t, err)
}

func TestCompileEngineSelection(t *testing.T) {
	c, err := Compile(`\d+`, Flags{}, time.Second)
	require.NoError(t, err)
	assert.True(t, c.UsesRE2())

	c, err = Compile(`a(?=b)`, Flags{}, time.Second)
	require.NoError(t, err)
	assert.False(t, c.UsesRE2())

	_, err = Compile("(", Flags{}, time.Second)
	assert.Error(t, err)
}

func TestMetricsDuration(t *testing.T) {
	out := Execute("a", "g", "aaa", 100)
	assert.Greater(t, out.Metrics.Duration, time.Duration(0))
	assert.Equal(t, 3, out.Metrics.MatchCount)
}
