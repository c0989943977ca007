package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSlashLiteral(t *testing.T) {
	got := Extract(`const re = /\d+/g;`)
	require.Len(t, got, 1)

	p := got[0]
	assert.Equal(t, `\d+`, p.Pattern)
	assert.Equal(t, "g", p.Flags)
	assert.Equal(t, 1, p.Line)
	assert.Equal(t, 12, p.Column)
	assert.Equal(t, `/\d+/g`, p.Raw)
}

func TestExtractEscapedSlashInBody(t *testing.T) {
	got := Extract(`var r = /a\/b/g;`)
	require.Len(t, got, 1)
	assert.Equal(t, `a\/b`, got[0].Pattern)
	assert.Equal(t, "g", got[0].Flags)
}

func TestExtractMultiplePerLine(t *testing.T) {
	got := Extract(`/a+/.test(s) && /b+/i.test(s)`)
	require.Len(t, got, 2)
	assert.Equal(t, "a+", got[0].Pattern)
	assert.Equal(t, "b+", got[1].Pattern)
	assert.Equal(t, "i", got[1].Flags)
	assert.Less(t, got[0].Column, got[1].Column)
}

func TestExtractConstructor(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		pattern string
		flags   string
	}{
		{"new with flags", `const r = new RegExp("a+b", "gi");`, "a+b", "gi"},
		{"bare call", `RegExp('x\d', 'g')`, `x\d`, "g"},
		{"no flags", `new RegExp("abc")`, "abc", ""},
		{"backtick quotes", "new RegExp(`c{2,3}`)", "c{2,3}", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.line)
			require.Len(t, got, 1)
			assert.Equal(t, tt.pattern, got[0].Pattern)
			assert.Equal(t, tt.flags, got[0].Flags)
		})
	}
}

func TestExtractConstructorColumn(t *testing.T) {
	got := Extract(`const r = new RegExp("a", "g");`)
	require.Len(t, got, 1)
	assert.Equal(t, 11, got[0].Column)
}

func TestExtractNothing(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty input", ""},
		{"plain code", "let x = a + b;"},
		{"unterminated slash", "x = a / b"},
		{"empty body", "// just a comment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, Extract(tt.text))
		})
	}
}

func TestExtractDedup(t *testing.T) {
	got := Extract("if (/a+/g.test(x)) {}\nif (/a+/g.test(y)) {}\n")
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Line)
}

func TestExtractDedupTreatsFlagsAsSet(t *testing.T) {
	got := Extract("/b/gi\n/b/ig\n")
	require.Len(t, got, 1)
	assert.Equal(t, "gi", got[0].Flags)
}

func TestExtractLineNumbers(t *testing.T) {
	got := Extract("first\n/y+/\nnew RegExp(\"z\")\n")
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Line)
	assert.Equal(t, 1, got[0].Column)
	assert.Equal(t, 3, got[1].Line)
}

func TestExtractNoValidation(t *testing.T) {
	// Malformed patterns pass through; validation is the executor's job.
	got := Extract(`/(a/g`)
	require.Len(t, got, 1)
	assert.Equal(t, "(a", got[0].Pattern)
}

func TestExtractDeterministic(t *testing.T) {
	text := "/a+/g\nnew RegExp(\"b|c\", \"i\")\n/d{2}/m\n"
	first := Extract(text)
	second := Extract(text)
	assert.Equal(t, first, second)
}
