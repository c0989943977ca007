// Package engine executes extracted regex patterns against subject text.
//
// Compilation uses a two-layer strategy: wasilibs/go-re2 when the pattern is
// RE2-compatible, falling back to dlclark/regexp2 for backtracking-only
// constructs (lookaround, backreferences). Engine selection happens at
// compile time, not match time.
package engine

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	re2 "github.com/wasilibs/go-re2"
)

// DefaultMatchTimeout bounds a single backtracking match attempt.
const DefaultMatchTimeout = 1 * time.Second

// Flags is the decoded form of a JavaScript flag string.
type Flags struct {
	Global     bool // g: find all non-overlapping matches
	IgnoreCase bool // i
	Multiline  bool // m
	DotAll     bool // s
	Unicode    bool // u or v
	Sticky     bool // y: each match must start at the scan cursor
}

// ParseFlags decodes a flag string. Unknown or repeated letters are an
// error, mirroring RegExp constructor behavior.
func ParseFlags(flags string) (Flags, error) {
	var f Flags
	seen := make(map[rune]bool, len(flags))
	for _, r := range flags {
		if seen[r] {
			return Flags{}, fmt.Errorf("duplicate flag %q", r)
		}
		seen[r] = true
		switch r {
		case 'g':
			f.Global = true
		case 'i':
			f.IgnoreCase = true
		case 'm':
			f.Multiline = true
		case 's':
			f.DotAll = true
		case 'u', 'v':
			f.Unicode = true
		case 'y':
			f.Sticky = true
		default:
			return Flags{}, fmt.Errorf("unknown flag %q", r)
		}
	}
	return f, nil
}

// Compiled is a pattern compiled under one of the two engines.
type Compiled struct {
	re2Pattern  *re2.Regexp
	pcrePattern *regexp2.Regexp
	original    string
	flags       Flags
	useRE2      bool
}

// Compile compiles pattern with the given decoded flags. The RE2 engine is
// preferred; regexp2 is always compiled as the fallback so that a pattern
// valid in either engine is usable. An error means the pattern is invalid in
// both engines.
func Compile(pattern string, flags Flags, timeout time.Duration) (*Compiled, error) {
	c := &Compiled{original: pattern, flags: flags}

	if p, err := re2.Compile(inlinePrefix(flags) + pattern); err == nil {
		c.re2Pattern = p
		c.useRE2 = true
	}

	opts := regexp2.None
	if flags.IgnoreCase {
		opts |= regexp2.IgnoreCase
	}
	if flags.Multiline {
		opts |= regexp2.Multiline
	}
	if flags.DotAll {
		opts |= regexp2.Singleline
	}
	if flags.Unicode {
		opts |= regexp2.Unicode
	}
	p, err := regexp2.Compile(pattern, opts)
	if err != nil {
		if c.useRE2 {
			// RE2 accepted what regexp2 rejected; keep the working engine.
			return c, nil
		}
		return nil, err
	}
	p.MatchTimeout = timeout
	c.pcrePattern = p

	return c, nil
}

// inlinePrefix translates flags into RE2 inline options. Unicode is a no-op:
// RE2 is Unicode-native.
func inlinePrefix(f Flags) string {
	var b strings.Builder
	if f.IgnoreCase {
		b.WriteString("(?i)")
	}
	if f.Multiline {
		b.WriteString("(?m)")
	}
	if f.DotAll {
		b.WriteString("(?s)")
	}
	return b.String()
}

// UsesRE2 reports whether the fast linear engine was selected.
func (c *Compiled) UsesRE2() bool { return c.useRE2 }

// Original returns the source pattern text.
func (c *Compiled) Original() string { return c.original }

// span is a raw engine match: byte offsets into the subject plus capture
// group spans (start<0 for a group that did not participate).
type span struct {
	start, end int
	groups     []groupSpan
}

type groupSpan struct {
	start, end int
}

// findAll collects up to limit non-overlapping matches in byte-offset form,
// enforcing forward progress after zero-width matches. The bool result
// reports whether the scan stopped early (engine timeout).
func (c *Compiled) findAll(text string, limit int) ([]span, bool) {
	if c.useRE2 {
		return c.findAllRE2(text, limit), false
	}
	return c.findAllPCRE(text, limit)
}

func (c *Compiled) findAllRE2(text string, limit int) []span {
	idx := c.re2Pattern.FindAllStringSubmatchIndex(text, limit)
	spans := make([]span, 0, len(idx))
	for _, m := range idx {
		s := span{start: m[0], end: m[1]}
		for g := 1; g*2+1 < len(m); g++ {
			s.groups = append(s.groups, groupSpan{start: m[g*2], end: m[g*2+1]})
		}
		spans = append(spans, s)
	}
	return spans
}

func (c *Compiled) findAllPCRE(text string, limit int) ([]span, bool) {
	var spans []span
	conv := newRuneToByte(text)

	m, err := c.pcrePattern.FindStringMatch(text)
	for err == nil && m != nil && len(spans) < limit {
		spans = append(spans, pcreSpan(m, conv))
		m, err = c.pcrePattern.FindNextMatch(m)
	}
	// A timeout surfaces as an error mid-scan; matches found so far stand.
	return spans, err != nil
}

// pcreSpan converts a regexp2 match (rune offsets) to byte offsets. Group
// offsets are converted with their own mapper because capture spans are not
// monotonic relative to one another.
func pcreSpan(m *regexp2.Match, conv *runeToByte) span {
	s := span{
		start: conv.byteOffset(m.Index),
		end:   conv.byteOffset(m.Index + m.Length),
	}
	groups := m.Groups()
	for i := 1; i < len(groups); i++ {
		g := groups[i]
		if len(g.Captures) == 0 {
			s.groups = append(s.groups, groupSpan{start: -1, end: -1})
			continue
		}
		last := g.Captures[len(g.Captures)-1]
		s.groups = append(s.groups, groupSpan{
			start: conv.byteAt(last.Index),
			end:   conv.byteAt(last.Index + last.Length),
		})
	}
	return s
}

// runeToByte converts ascending rune offsets to byte offsets with a single
// forward pass, plus a random-access fallback for capture spans. regexp2
// reports rune offsets; the rest of the system speaks byte offsets.
type runeToByte struct {
	text    string
	runePos int
	bytePos int
	index   []int // lazily built full index for random access
}

func newRuneToByte(text string) *runeToByte {
	return &runeToByte{text: text}
}

// byteOffset advances the forward cursor; offsets must be non-decreasing.
func (c *runeToByte) byteOffset(runeOff int) int {
	for c.runePos < runeOff && c.bytePos < len(c.text) {
		_, size := utf8.DecodeRuneInString(c.text[c.bytePos:])
		c.bytePos += size
		c.runePos++
	}
	return c.bytePos
}

// byteAt handles arbitrary offsets by building the full index on first use.
func (c *runeToByte) byteAt(runeOff int) int {
	if c.index == nil {
		c.index = make([]int, 0, len(c.text)+1)
		for i := range c.text {
			c.index = append(c.index, i)
		}
		c.index = append(c.index, len(c.text))
	}
	if runeOff >= len(c.index) {
		return len(c.text)
	}
	return c.index[runeOff]
}
