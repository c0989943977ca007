// Package analyze provides static pattern analysis: catastrophic-backtracking
// risk classification, structural complexity estimation, and performance
// scoring over already-collected execution metrics. Nothing in this package
// ever executes a pattern, so analysis cost depends only on pattern length.
package analyze

import (
	"regexp/syntax"
	"strings"

	"github.com/dlclark/regexp2"
)

// Severity grades a risk assessment.
type Severity string

// Severity levels, lowest to highest.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Risk is the static backtracking-risk classification of a pattern.
// Severity high always implies Detected.
type Risk struct {
	Detected  bool     `json:"detected"`
	Severity  Severity `json:"severity"`
	Rationale string   `json:"rationale"`
}

// AnalyzeRisk inspects pattern text alone and classifies its catastrophic
// backtracking risk. The classification is a heuristic over-approximation:
// false positives and false negatives are both documented behavior.
//
// Priority order: known evil shapes (a quantified group whose body is itself
// quantified over overlapping character sets, e.g. (x+)+, (.*)+, (a|a)*) are
// high; other nested quantifiers are medium; everything else is undetected.
// A pattern the host engine rejects is reported as no risk, since it can
// never be executed.
func AnalyzeRisk(pattern, flags string) Risk {
	if !compiles(pattern, flags) {
		return Risk{
			Detected:  false,
			Severity:  SeverityLow,
			Rationale: "pattern does not compile; it can never be executed, so it carries no backtracking risk",
		}
	}

	// Overlapping alternation under a quantifier is checked textually in
	// both paths: the stdlib parser factors alternations during parsing,
	// which can erase the (a|a)* shape from the AST.
	if overlappingAlternation(pattern) {
		return Risk{
			Detected:  true,
			Severity:  SeverityHigh,
			Rationale: "quantified alternation with overlapping branches forces the engine to retry equivalent paths, creating exponential backtracking",
		}
	}

	var nested, evil bool
	if re, err := syntax.Parse(pattern, syntax.Perl); err == nil {
		nested, evil = walkQuantifiers(re)
	} else {
		// Lookaround/backreference patterns only the backtracking engine
		// accepts: fall back to a textual paren/quantifier scan.
		nested, evil = textualNesting(pattern)
	}

	switch {
	case evil:
		return Risk{
			Detected:  true,
			Severity:  SeverityHigh,
			Rationale: "a quantified group whose body is itself quantified over overlapping characters creates exponential backtracking paths",
		}
	case nested:
		return Risk{
			Detected:  true,
			Severity:  SeverityMedium,
			Rationale: "nested quantifiers can multiply backtracking states on non-matching input",
		}
	default:
		return Risk{
			Detected:  false,
			Severity:  SeverityLow,
			Rationale: "no nested quantifiers or overlapping quantified alternations found",
		}
	}
}

// compiles checks validity using the same engines the executor uses.
func compiles(pattern, flags string) bool {
	var opts regexp2.RegexOptions
	for _, r := range flags {
		switch r {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'u', 'v':
			opts |= regexp2.Unicode
		}
	}
	_, err := regexp2.Compile(pattern, opts)
	return err == nil
}

// unbounded reports whether op repeats its body an unbounded or large number
// of times. Quest alone cannot multiply states.
func unbounded(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpStar, syntax.OpPlus:
		return true
	case syntax.OpRepeat:
		return re.Max < 0 || re.Max > 1
	default:
		return false
	}
}

// walkQuantifiers walks the AST looking for a quantified node whose subtree
// contains another unbounded quantifier. The shape is evil when the inner
// quantified body is a single broad atom (any-char, character class, or a
// one-rune literal): the classic (x+)+ family.
func walkQuantifiers(re *syntax.Regexp) (nested, evil bool) {
	if unbounded(re) {
		inner := findInnerQuantifier(re.Sub[0])
		if inner != nil {
			nested = true
			if broadAtom(inner.Sub[0]) {
				evil = true
			}
		}
	}
	for _, sub := range re.Sub {
		n, e := walkQuantifiers(sub)
		nested = nested || n
		evil = evil || e
	}
	return nested, evil
}

// findInnerQuantifier returns the first unbounded quantifier in the subtree,
// or nil.
func findInnerQuantifier(re *syntax.Regexp) *syntax.Regexp {
	if unbounded(re) {
		return re
	}
	for _, sub := range re.Sub {
		if q := findInnerQuantifier(sub); q != nil {
			return q
		}
	}
	return nil
}

// broadAtom reports whether re matches a single input rune drawn from a set,
// the kind of body that makes nested repetition ambiguous.
func broadAtom(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpAnyChar, syntax.OpAnyCharNotNL, syntax.OpCharClass:
		return true
	case syntax.OpLiteral:
		return len(re.Rune) == 1
	default:
		return false
	}
}

// overlappingAlternation scans for a parenthesized top-level alternation
// followed by an unbounded quantifier where two branches can start with the
// same character, e.g. (a|a)* or (ab|a)+.
func overlappingAlternation(pattern string) bool {
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '\\':
			i++
		case '(':
			end := matchingParen(runes, i)
			if end < 0 || end+1 >= len(runes) {
				continue
			}
			if q := runes[end+1]; q != '*' && q != '+' && q != '{' {
				continue
			}
			body := runes[i+1 : end]
			body = stripGroupPrefix(body)
			if branchesOverlap(splitTopLevel(body)) {
				return true
			}
		}
	}
	return false
}

// matchingParen returns the index of the parenthesis closing the one at
// open, skipping escapes and character classes, or -1.
func matchingParen(runes []rune, open int) int {
	depth := 0
	inClass := false
	for i := open; i < len(runes); i++ {
		switch runes[i] {
		case '\\':
			i++
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '(':
			if !inClass {
				depth++
			}
		case ')':
			if !inClass {
				depth--
				if depth == 0 {
					return i
				}
			}
		}
	}
	return -1
}

// stripGroupPrefix removes non-capturing and named-group markers from a
// group body so branch splitting sees only the alternation.
func stripGroupPrefix(body []rune) []rune {
	s := string(body)
	switch {
	case strings.HasPrefix(s, "?:"):
		return body[2:]
	case strings.HasPrefix(s, "?<") && !strings.HasPrefix(s, "?<=") && !strings.HasPrefix(s, "?<!"):
		if end := strings.IndexRune(s, '>'); end >= 0 {
			return body[end+1:]
		}
	}
	return body
}

// splitTopLevel splits a group body on alternation bars that are not nested
// inside parentheses or character classes.
func splitTopLevel(body []rune) []string {
	var branches []string
	depth := 0
	inClass := false
	start := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\\':
			i++
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '(':
			if !inClass {
				depth++
			}
		case ')':
			if !inClass {
				depth--
			}
		case '|':
			if depth == 0 && !inClass {
				branches = append(branches, string(body[start:i]))
				start = i + 1
			}
		}
	}
	branches = append(branches, string(body[start:]))
	return branches
}

// branchesOverlap reports whether two alternation branches can begin with
// the same character. Only leading literals and the any-char dot are
// compared; anything more exotic is treated as non-overlapping, keeping the
// check conservative.
func branchesOverlap(branches []string) bool {
	if len(branches) < 2 {
		return false
	}
	leads := make([]rune, 0, len(branches))
	dots := 0
	for _, b := range branches {
		r, dot, ok := leadingRune(b)
		if !ok {
			continue
		}
		if dot {
			dots++
			continue
		}
		leads = append(leads, r)
	}
	if dots >= 2 || (dots == 1 && len(leads) > 0) {
		return true
	}
	seen := make(map[rune]bool, len(leads))
	for _, r := range leads {
		if seen[r] {
			return true
		}
		seen[r] = true
	}
	return false
}

// leadingRune extracts the first concrete rune a branch must match, or
// reports that the branch starts with the any-char dot.
func leadingRune(branch string) (r rune, dot, ok bool) {
	runes := []rune(branch)
	if len(runes) == 0 {
		return 0, false, false
	}
	switch runes[0] {
	case '.':
		return 0, true, true
	case '\\':
		if len(runes) > 1 {
			switch runes[1] {
			case 'n':
				return '\n', false, true
			case 't':
				return '\t', false, true
			case 'd', 'w', 's', 'D', 'W', 'S', 'b', 'B':
				return 0, false, false
			default:
				return runes[1], false, true
			}
		}
		return 0, false, false
	case '(', '[', '^', '$':
		return 0, false, false
	default:
		return runes[0], false, true
	}
}

// textualNesting is the fallback nesting detector for patterns the stdlib
// parser rejects. It tracks group frames and reports a quantifier applied to
// a group that itself contains an unbounded quantifier; the shape is evil
// when the group body is a single quantified atom.
func textualNesting(pattern string) (nested, evil bool) {
	runes := []rune(pattern)
	type frame struct {
		start         int
		hasQuantifier bool
	}
	var stack []frame
	inClass := false

	quantAt := func(i int) bool {
		if i >= len(runes) {
			return false
		}
		switch runes[i] {
		case '*', '+':
			return true
		case '{':
			// Only a bounded-repeat brace with an open upper end or count
			// above one multiplies states.
			for j := i + 1; j < len(runes) && j < i+12; j++ {
				if runes[j] == '}' {
					spec := string(runes[i+1 : j])
					return spec != "1" && spec != "0,1" && spec != "1,1"
				}
			}
			return false
		}
		return false
	}

	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '\\':
			i++
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '(':
			if !inClass {
				stack = append(stack, frame{start: i})
			}
		case ')':
			if inClass || len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.hasQuantifier && quantAt(i+1) {
				nested = true
				body := stripGroupPrefix(runes[top.start+1 : i])
				if singleQuantifiedAtom(body) {
					evil = true
				}
			}
			if top.hasQuantifier && len(stack) > 0 {
				stack[len(stack)-1].hasQuantifier = true
			}
		case '*', '+':
			if !inClass && len(stack) > 0 {
				stack[len(stack)-1].hasQuantifier = true
			}
		case '{':
			if !inClass && len(stack) > 0 && quantAt(i) {
				stack[len(stack)-1].hasQuantifier = true
			}
		}
	}
	return nested, evil
}

// singleQuantifiedAtom reports whether a group body is exactly one atom
// followed by * or +, such as x+, .*, [a-z]+ or \d*.
func singleQuantifiedAtom(body []rune) bool {
	if len(body) < 2 {
		return false
	}
	last := body[len(body)-1]
	if last != '*' && last != '+' {
		return false
	}
	atom := body[:len(body)-1]
	switch {
	case len(atom) == 1:
		return atom[0] != ')' && atom[0] != ']'
	case len(atom) == 2 && atom[0] == '\\':
		return true
	case atom[0] == '[' && atom[len(atom)-1] == ']':
		return matchingBracketSpansAll(atom)
	default:
		return false
	}
}

func matchingBracketSpansAll(atom []rune) bool {
	for i := 1; i < len(atom)-1; i++ {
		if atom[i] == '\\' {
			i++
			continue
		}
		if atom[i] == ']' {
			return false
		}
	}
	return true
}
