package match

import "github.com/lithammer/fuzzysearch/fuzzy"

// Literal matches the query as a codepoint-exact, case-sensitive subsequence
// of the candidate. The score is the negated Levenshtein distance, so
// candidates with fewer unmatched characters rank higher.
type Literal struct{}

// Match implements Matcher.
func (Literal) Match(candidate, query string) (Result, bool) {
	if query == "" {
		return Result{}, false
	}
	return fromDistance(fuzzy.RankMatch(query, candidate))
}

// Fold is Literal with case folding and Unicode normalisation, so "cafe"
// matches "Café.md".
type Fold struct{}

// Match implements Matcher.
func (Fold) Match(candidate, query string) (Result, bool) {
	if query == "" {
		return Result{}, false
	}
	return fromDistance(fuzzy.RankMatchNormalizedFold(query, candidate))
}

func fromDistance(distance int) (Result, bool) {
	if distance < 0 {
		return Result{}, false
	}
	return Result{Score: Score(-distance)}, true
}
