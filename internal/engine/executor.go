package engine

import (
	"time"
)

// MaxIterations is the hard ceiling on attempted match operations for one
// execution. It is a fixed constant, independent of the caller's maxMatches,
// and guarantees termination even for degenerate zero-width patterns.
const MaxIterations = 10000

// ErrorKind classifies executor failures.
type ErrorKind string

// PatternSyntaxError is the only failure kind: the pattern did not compile.
const PatternSyntaxError ErrorKind = "PatternSyntaxError"

// ExecError is a structured, returned-not-thrown executor error.
type ExecError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// CaptureGroup is one participating capture group of a match. Groups are
// positional; Name stays empty (named-group resolution is out of scope).
type CaptureGroup struct {
	Index int    `json:"index"`
	Name  string `json:"name,omitempty"`
	Value string `json:"value"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Match is one pattern occurrence in the subject text. Offsets are byte
// offsets; Line is 1-based and Column is the 0-based offset within the line,
// both derived by counting newlines before StartOffset.
type Match struct {
	Text        string         `json:"text"`
	StartOffset int            `json:"startOffset"`
	EndOffset   int            `json:"endOffset"`
	Line        int            `json:"line"`
	Column      int            `json:"column"`
	Groups      []CaptureGroup `json:"groups,omitempty"`
}

// Metrics holds the measurements the performance scorer consumes. The scorer
// never re-runs the pattern; everything it needs is collected here.
type Metrics struct {
	Duration    time.Duration `json:"duration"`
	InputChars  int           `json:"inputChars"`
	MatchCount  int           `json:"matchCount"`
	Iterations  int           `json:"iterations"`
	MemoryBytes int64         `json:"memoryBytes"` // 0 means unmeasured
}

// Outcome is the immutable result of one execution. Success=false implies
// exactly one PatternSyntaxError; Success=true implies Errors is empty.
// LimitHit marks truncation by maxMatches, the iteration ceiling, or an
// engine-level match timeout; truncation is not a failure.
type Outcome struct {
	Success  bool        `json:"success"`
	Matches  []Match     `json:"matches"`
	Errors   []ExecError `json:"errors,omitempty"`
	LimitHit bool        `json:"limitHit,omitempty"`
	Metrics  Metrics     `json:"metrics"`
}

// Execute runs one pattern/flags pair against text, returning at most
// maxMatches matches in ascending start-offset order. Compilation failure is
// captured in the outcome, never raised. Without the g flag at most one
// match is returned. Matches never overlap and the cursor always advances
// past zero-width matches, so Execute terminates on every input.
func Execute(pattern, flags, text string, maxMatches int) Outcome {
	return ExecuteTimeout(pattern, flags, text, maxMatches, DefaultMatchTimeout)
}

// ExecuteTimeout is Execute with an explicit backtracking-engine timeout.
func ExecuteTimeout(pattern, flags, text string, maxMatches int, timeout time.Duration) Outcome {
	start := time.Now()

	fail := func(err error) Outcome {
		return Outcome{
			Success: false,
			Errors:  []ExecError{{Kind: PatternSyntaxError, Message: err.Error()}},
			Metrics: Metrics{Duration: time.Since(start), InputChars: len(text)},
		}
	}

	f, err := ParseFlags(flags)
	if err != nil {
		return fail(err)
	}
	compiled, err := Compile(pattern, f, timeout)
	if err != nil {
		return fail(err)
	}

	limit := MaxIterations
	if !f.Global {
		limit = 1
	} else if maxMatches > 0 && maxMatches < limit {
		limit = maxMatches
	}

	spans, timedOut := compiled.findAll(text, limit)

	if f.Sticky {
		spans = stickyChain(spans)
	}

	lines := newLineIndex(text)
	matches := make([]Match, 0, len(spans))
	for _, s := range spans {
		line, col := lines.locate(s.start)
		m := Match{
			Text:        text[s.start:s.end],
			StartOffset: s.start,
			EndOffset:   s.end,
			Line:        line,
			Column:      col,
		}
		for gi, g := range s.groups {
			if g.start < 0 {
				continue
			}
			m.Groups = append(m.Groups, CaptureGroup{
				Index: gi + 1,
				Value: text[g.start:g.end],
				Start: g.start,
				End:   g.end,
			})
		}
		matches = append(matches, m)
	}

	return Outcome{
		Success:  true,
		Matches:  matches,
		LimitHit: timedOut || (f.Global && len(matches) >= limit),
		Metrics: Metrics{
			Duration:   time.Since(start),
			InputChars: len(text),
			MatchCount: len(matches),
			Iterations: len(spans),
		},
	}
}

// stickyChain keeps the leading run of matches in which each match starts
// exactly where the previous one ended, anchored at offset 0 — the y flag's
// cursor discipline.
func stickyChain(spans []span) []span {
	cursor := 0
	for i, s := range spans {
		if s.start != cursor {
			return spans[:i]
		}
		cursor = s.end
		if s.end == s.start {
			cursor++
		}
	}
	return spans
}

// lineIndex precomputes line-start offsets so locating many matches does not
// rescan the text per match.
type lineIndex struct {
	starts []int
}

func newLineIndex(text string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts}
}

// locate returns the 1-based line and 0-based column for a byte offset.
func (ix *lineIndex) locate(offset int) (line, column int) {
	lo, hi := 0, len(ix.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if ix.starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1, offset - ix.starts[lo]
}
