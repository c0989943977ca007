package analyze

import "fmt"

// Complexity is a 0..100 heuristic rating of a pattern's structural cost,
// derived from its text alone. Factors name each contributing feature.
type Complexity struct {
	Score   int      `json:"score"`
	Factors []string `json:"factors,omitempty"`
}

// Additive penalty weights. The total is clamped to [0,100].
const (
	quantifierWeight  = 8
	alternationWeight = 6
	nestingWeight     = 10
	lookaroundWeight  = 15
)

// EstimateComplexity scores the structural complexity of a pattern: weighted
// counts of quantifier and alternation tokens, maximum nesting depth of
// unescaped parentheses, and presence of lookaround assertions. Pure
// function of the pattern text; it never compiles or executes anything.
func EstimateComplexity(pattern string) Complexity {
	quantifiers := 0
	alternations := 0
	maxDepth := 0
	lookaround := false

	runes := []rune(pattern)
	depth := 0
	inClass := false
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '\\':
			i++
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '*', '+', '?', '{':
			// A ? directly after ( is a group modifier, not a quantifier.
			if !inClass && !(runes[i] == '?' && i > 0 && runes[i-1] == '(') {
				quantifiers++
			}
		case '|':
			if !inClass {
				alternations++
			}
		case '(':
			if inClass {
				continue
			}
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
			if isLookaround(runes[i:]) {
				lookaround = true
			}
		case ')':
			if !inClass && depth > 0 {
				depth--
			}
		}
	}

	score := 0
	var factors []string
	if quantifiers > 0 {
		score += quantifiers * quantifierWeight
		factors = append(factors, fmt.Sprintf("%d quantifiers", quantifiers))
	}
	if alternations > 0 {
		score += alternations * alternationWeight
		factors = append(factors, fmt.Sprintf("%d alternations", alternations))
	}
	if maxDepth > 0 {
		score += maxDepth * nestingWeight
		factors = append(factors, fmt.Sprintf("nesting depth %d", maxDepth))
	}
	if lookaround {
		score += lookaroundWeight
		factors = append(factors, "lookaround assertions")
	}
	if score > 100 {
		score = 100
	}

	return Complexity{Score: score, Factors: factors}
}

// isLookaround reports whether the group opening at runes[0] is a lookahead
// or lookbehind assertion.
func isLookaround(runes []rune) bool {
	if len(runes) < 3 || runes[1] != '?' {
		return false
	}
	switch runes[2] {
	case '=', '!':
		return true
	case '<':
		return len(runes) > 3 && (runes[3] == '=' || runes[3] == '!')
	}
	return false
}
