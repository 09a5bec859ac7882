package match

import "github.com/sahilm/fuzzy"

// Smart ranks subsequence matches the way editor file finders do: bonuses for
// a matching first character, matches right after a separator or at a
// camelCase boundary, and runs of adjacent matches; penalties for leading and
// unmatched characters. Comparison is case-insensitive (simple Unicode
// folding); no normalisation is applied.
type Smart struct{}

// Match implements Matcher.
func (Smart) Match(candidate, query string) (Result, bool) {
	if query == "" {
		return Result{}, false
	}
	matches := fuzzy.Find(query, []string{candidate})
	if len(matches) == 0 {
		return Result{}, false
	}
	best := matches[0]
	positions := make([]int, len(best.MatchedIndexes))
	copy(positions, best.MatchedIndexes)
	return Result{Score: Score(best.Score), Positions: positions}, true
}
