package rank

import (
	"sort"
	"strings"

	"github.com/nullspace/nullspace/pkg/types"
)

// MatchesQuery reports whether the query occurs as a case-insensitive
// substring in the study's title, summary, description, organism, or
// any keyword. Token boundaries are ignored, so "rat" matches
// "strategy".
func MatchesQuery(s types.Study, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(s.Title), q) ||
		strings.Contains(strings.ToLower(s.Summary), q) ||
		strings.Contains(strings.ToLower(s.Description), q) ||
		strings.Contains(strings.ToLower(s.Organism), q) {
		return true
	}
	for _, kw := range s.Keywords {
		if strings.Contains(strings.ToLower(kw), q) {
			return true
		}
	}
	return false
}

// Filter returns the studies matching query, preserving input order.
// An empty query matches everything.
func Filter(studies []types.Study, query string) []types.Study {
	if strings.TrimSpace(query) == "" {
		return studies
	}
	out := make([]types.Study, 0, len(studies))
	for _, s := range studies {
		if MatchesQuery(s, query) {
			out = append(out, s)
		}
	}
	return out
}

// Relevance scores a study against a query as the fraction of distinct
// query terms found in the study's descriptive text. The result is in
// [0, 1]; an empty or whitespace query scores 0.
func Relevance(query string, s types.Study) float64 {
	return termFraction(query, relevanceText(s))
}

// relevanceText joins the fields the per-study relevance score searches.
// Keywords are deliberately excluded; they participate only in the
// batch search path.
func relevanceText(s types.Study) string {
	return strings.ToLower(strings.Join([]string{
		s.Title, s.Description, s.Organism, s.Mission,
	}, " "))
}

// SearchAll scores every study against the query over its full
// searchable text, keywords included, and returns up to limit matches
// ordered by descending score. Studies with no matching term are
// dropped. A limit of zero or less means no cap.
func SearchAll(query string, studies []types.Study, limit int) []types.ScoredStudy {
	scored := make([]types.ScoredStudy, 0, len(studies))
	for _, s := range studies {
		text := strings.ToLower(strings.Join([]string{
			s.Title, s.Description, s.Organism, strings.Join(s.Keywords, " "),
		}, " "))
		score := termFraction(query, text)
		if score > 0 {
			scored = append(scored, types.ScoredStudy{Study: s, Score: score})
		}
	}
	sortScored(scored)
	return capped(scored, limit)
}

// RelatedScore measures how related two studies are: the count of
// shared keywords, case-insensitive, plus one when the organisms match.
func RelatedScore(base, other types.Study) float64 {
	baseKw := make(map[string]struct{}, len(base.Keywords))
	for _, kw := range base.Keywords {
		baseKw[strings.ToLower(kw)] = struct{}{}
	}

	score := 0.0
	for _, kw := range other.Keywords {
		if _, ok := baseKw[strings.ToLower(kw)]; ok {
			score++
		}
	}
	if base.Organism != "" && strings.EqualFold(base.Organism, other.Organism) {
		score++
	}
	return score
}

// Related returns up to limit studies related to base, ordered by
// descending RelatedScore. The base study itself and studies scoring
// zero are excluded.
func Related(base types.Study, studies []types.Study, limit int) []types.ScoredStudy {
	scored := make([]types.ScoredStudy, 0, len(studies))
	for _, s := range studies {
		if s.ID == base.ID {
			continue
		}
		if score := RelatedScore(base, s); score > 0 {
			scored = append(scored, types.ScoredStudy{Study: s, Score: score})
		}
	}
	sortScored(scored)
	return capped(scored, limit)
}

// termFraction computes the fraction of distinct lowercased query terms
// occurring as substrings of text. text must already be lowercased.
func termFraction(query, text string) float64 {
	terms := distinctTerms(query)
	if len(terms) == 0 {
		return 0
	}
	matches := 0
	for term := range terms {
		if strings.Contains(text, term) {
			matches++
		}
	}
	score := float64(matches) / float64(len(terms))
	if score > 1 {
		score = 1
	}
	return score
}

func distinctTerms(query string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(query))
	terms := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		terms[f] = struct{}{}
	}
	return terms
}

// sortScored orders by descending score, stable so equal-score studies
// keep their input order.
func sortScored(scored []types.ScoredStudy) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
}

func capped(scored []types.ScoredStudy, limit int) []types.ScoredStudy {
	if limit > 0 && len(scored) > limit {
		return scored[:limit]
	}
	return scored
}
