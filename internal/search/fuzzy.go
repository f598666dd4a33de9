package search

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Matching thresholds are fixed policy, not configuration: 80 for fuzzy
// term candidates, 75 for resolving a phrase to a system.
const (
	fuzzyTermThreshold   = 80.0
	systemMatchThreshold = 75.0
)

// fuzzyMatcher wraps a ratio-based string similarity: symmetric, range
// [0,100], tolerant of substitutions and transpositions. Recomputed per
// call; the catalog vocabulary is bounded by configuration size.
type fuzzyMatcher struct {
	lev *metrics.Levenshtein
}

func newFuzzyMatcher() *fuzzyMatcher {
	lev := metrics.NewLevenshtein()
	lev.CaseSensitive = false
	return &fuzzyMatcher{lev: lev}
}

// Ratio returns the similarity of a and b in [0,100].
func (m *fuzzyMatcher) Ratio(a, b string) float64 {
	return strutil.Similarity(a, b, m.lev) * 100
}

// candidate is one vocabulary term scored against a query term.
type candidate struct {
	term  string
	score float64
}

// bestCandidates scores term against every vocabulary entry and returns the
// top limit candidates, ordered by score descending with vocabulary order
// breaking ties.
func (m *fuzzyMatcher) bestCandidates(term string, vocabulary []string, limit int) []candidate {
	if limit <= 0 || len(vocabulary) == 0 {
		return nil
	}

	best := make([]candidate, 0, limit)
	for _, v := range vocabulary {
		score := m.Ratio(term, v)
		inserted := false
		for i := range best {
			if score > best[i].score {
				best = append(best[:i], append([]candidate{{v, score}}, best[i:]...)...)
				inserted = true
				break
			}
		}
		if !inserted && len(best) < limit {
			best = append(best, candidate{v, score})
		}
		if len(best) > limit {
			best = best[:limit]
		}
	}
	return best
}

// ResolveSystem maps a free-text phrase to a catalog system. An exact
// case-insensitive substring match in either direction short-circuits;
// otherwise the single best fuzzy match wins if it clears the threshold.
// Returns "" when nothing qualifies.
func (s *Searcher) ResolveSystem(term string) string {
	if term == "" {
		return ""
	}
	lower := strings.ToLower(term)

	for _, system := range s.catalog.Systems {
		ls := strings.ToLower(system)
		if strings.Contains(ls, lower) || strings.Contains(lower, ls) {
			return system
		}
	}

	var bestSystem string
	bestScore := 0.0
	for _, system := range s.catalog.Systems {
		if score := s.fuzzy.Ratio(term, system); score > bestScore {
			bestSystem, bestScore = system, score
		}
	}
	if bestScore >= systemMatchThreshold {
		return bestSystem
	}
	return ""
}
