// Package extract discovers regular-expression literals embedded in source text.
package extract

import (
	"sort"
	"strings"

	"github.com/dlclark/regexp2"
)

// Pattern is a regex literal discovered in source text. Line and Column are
// 1-based and point at the first character of the literal. Flags holds the
// flag letters exactly as written. Values are never mutated after extraction.
type Pattern struct {
	Pattern string `json:"pattern"`
	Flags   string `json:"flags,omitempty"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Raw     string `json:"raw"`
}

// flagLetters is the set of recognized JavaScript regex flags.
const flagLetters = "gimsuvy"

// ctorPattern matches RegExp constructor calls with a string-literal pattern
// and an optional string-literal flags argument, in any of the three
// JavaScript quote styles. The backreferences keep the opening and closing
// quotes paired, which stdlib regexp cannot express.
var ctorPattern = regexp2.MustCompile(
	"(?:new\\s+)?\\bRegExp\\s*\\(\\s*([\"'`])((?:\\\\.|(?!\\1).)*)\\1\\s*(?:,\\s*([\"'`])(["+flagLetters+"]*)\\3)?\\s*\\)",
	regexp2.None)

// Extract scans text line by line and returns every candidate regex literal
// in discovery order (top to bottom, left to right). Entries are deduplicated
// by (pattern, flag set); the first occurrence keeps its position. The scan
// performs no pattern validation: malformed patterns pass through unchanged.
//
// The function is pure. Identical input yields identical, identically-ordered
// output.
func Extract(text string) []Pattern {
	var out []Pattern
	seen := make(map[string]struct{})

	lineNo := 0
	for line := range strings.Lines(text) {
		lineNo++
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		candidates := scanSlashLiterals(line, lineNo)
		candidates = append(candidates, scanConstructors(line, lineNo)...)
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Column < candidates[j].Column
		})

		for _, c := range candidates {
			key := c.Pattern + "\x00" + sortFlags(c.Flags)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, c)
		}
	}

	return out
}

// scanSlashLiterals finds slash-delimited literals on a single line. A slash
// opens a literal only when it is at an odd unescaped-slash ordinal, the body
// is non-empty, and a closing unescaped slash exists on the same line. This
// is the documented heuristic for telling `/\d+/g` apart from division; both
// `a / b / c` misfires and template-string misses are accepted behavior.
func scanSlashLiterals(line string, lineNo int) []Pattern {
	var out []Pattern
	runes := []rune(line)

	ordinal := 0
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '\\':
			i++ // skip escaped rune
		case '/':
			ordinal++
			if ordinal%2 == 0 {
				continue
			}
			end := closingSlash(runes, i+1)
			if end < 0 || end == i+1 {
				continue // no closer, or empty body such as //
			}
			flagsEnd := end + 1
			for flagsEnd < len(runes) && strings.ContainsRune(flagLetters, runes[flagsEnd]) {
				flagsEnd++
			}
			out = append(out, Pattern{
				Pattern: string(runes[i+1 : end]),
				Flags:   string(runes[end+1 : flagsEnd]),
				Line:    lineNo,
				Column:  i + 1,
				Raw:     string(runes[i : flagsEnd]),
			})
			ordinal++ // the closing slash
			i = flagsEnd - 1
		}
	}
	return out
}

// closingSlash returns the index of the next unescaped slash at or after
// start, or -1 if the line ends first.
func closingSlash(runes []rune, start int) int {
	for i := start; i < len(runes); i++ {
		switch runes[i] {
		case '\\':
			i++
		case '/':
			return i
		}
	}
	return -1
}

// scanConstructors finds new RegExp(...) and bare RegExp(...) calls on a
// single line. The quoted pattern body is taken verbatim, without
// escape-sequence decoding.
func scanConstructors(line string, lineNo int) []Pattern {
	var out []Pattern

	m, err := ctorPattern.FindStringMatch(line)
	for err == nil && m != nil {
		groups := m.Groups()
		out = append(out, Pattern{
			Pattern: groups[2].String(),
			Flags:   groups[4].String(),
			Line:    lineNo,
			Column:  m.Index + 1,
			Raw:     m.String(),
		})
		m, err = ctorPattern.FindNextMatch(m)
	}
	return out
}

// sortFlags canonicalizes a flag string so that dedup treats flags as a set.
func sortFlags(flags string) string {
	b := []byte(flags)
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	return string(b)
}
