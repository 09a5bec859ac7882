// Package match scores candidate strings against a query.
//
// A Matcher is a pure function: it keeps no state between calls, never
// mutates its inputs, and returns the same Result for the same pair of
// strings. Callers must not pass an empty query; an empty query has no
// meaningful score and is handled by the caller as a pass-through.
package match

import (
	"fmt"
	"sort"
	"strings"
)

// Score orders matches. Higher is better.
type Score int

// Result describes a successful match.
type Result struct {
	Score Score
	// Positions holds the byte offsets of matched characters within the
	// candidate, in ascending order. Nil when the algorithm cannot report them.
	Positions []int
}

// Matcher scores a candidate against a query. ok is false when the query does
// not match the candidate at all.
type Matcher interface {
	Match(candidate, query string) (res Result, ok bool)
}

// Algorithm names accepted by New.
const (
	AlgorithmSmart   = "smart"
	AlgorithmLiteral = "literal"
	AlgorithmFold    = "fold"
)

var algorithms = map[string]func() Matcher{
	AlgorithmSmart:   func() Matcher { return Smart{} },
	AlgorithmLiteral: func() Matcher { return Literal{} },
	AlgorithmFold:    func() Matcher { return Fold{} },
}

// New resolves a matcher by algorithm name. The empty name selects the
// default smart matcher.
func New(name string) (Matcher, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = AlgorithmSmart
	}
	ctor, ok := algorithms[key]
	if !ok {
		return nil, fmt.Errorf("unknown match algorithm %q (want one of %s)", name, strings.Join(Algorithms(), ", "))
	}
	return ctor(), nil
}

// Algorithms lists the supported algorithm names in sorted order.
func Algorithms() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
