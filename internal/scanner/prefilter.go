package scanner

import (
	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// candidateMarkers are the substrings at least one of which must appear in a
// file for the extractor to possibly find anything: a slash literal needs a
// slash, a constructor call needs the RegExp identifier.
var candidateMarkers = []string{"/", "RegExp"}

// Prefilter skips files that cannot contain a regex literal without running
// the extractor on them, the same narrowing role common-string prescans play
// in signature scanners.
type Prefilter struct {
	ac ahocorasick.AhoCorasick
}

// NewPrefilter builds the marker automaton once per scanner.
func NewPrefilter() *Prefilter {
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		MatchKind: ahocorasick.LeftMostLongestMatch,
		DFA:       true,
	})
	return &Prefilter{ac: builder.Build(candidateMarkers)}
}

// HasCandidates reports whether content contains at least one marker. A true
// result proves nothing; a false result proves extraction would return empty.
func (p *Prefilter) HasCandidates(content string) bool {
	iter := p.ac.Iter(content)
	return iter.Next() != nil
}
