package search

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/gridwerk/flowsearch/internal/domain"
)

// DefaultMaxResults bounds the direct result list when the caller does not.
const DefaultMaxResults = 20

// Searcher answers free-text queries against one immutable catalog
// snapshot. All derived state (indices, synonym table) is built in
// NewSearcher and read-only afterwards, so independent queries may run
// concurrently against the same instance. A catalog refresh means building
// a new Searcher and atomically swapping the reference, never mutating
// this one.
type Searcher struct {
	catalog  domain.Catalog
	index    *catalogIndex
	synonyms synonymTable
	fuzzy    *fuzzyMatcher

	fuzzyVocabLimit int
	logger          *zap.Logger
}

// NewSearcher validates the catalog and builds all derived state. A
// malformed catalog is the only failure class; afterwards no query can
// fail.
func NewSearcher(catalog domain.Catalog, logger *zap.Logger) (*Searcher, error) {
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("build searcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Searcher{
		catalog:  catalog,
		index:    buildIndex(catalog),
		synonyms: buildSynonyms(catalog),
		fuzzy:    newFuzzyMatcher(),
		logger:   logger,
	}

	logger.Info("searcher built",
		zap.Int("flows", len(catalog.Flows)),
		zap.Int("systems", len(catalog.Systems)),
		zap.Int("formats", len(catalog.Formats)),
		zap.Int("transmission_methods", len(catalog.TransmissionMethods)),
		zap.Int("interfaces", len(catalog.Interfaces)),
	)
	return s, nil
}

// WithFuzzyVocabLimit caps how many name-vocabulary terms the fuzzy pass
// scans per query term; 0 means unbounded. Fuzzy cost is vocabulary size
// times query tokens, the dominant cost on large catalogs.
func (s *Searcher) WithFuzzyVocabLimit(limit int) *Searcher {
	s.fuzzyVocabLimit = limit
	return s
}

// Catalog returns the snapshot this searcher was built from.
func (s *Searcher) Catalog() domain.Catalog {
	return s.catalog
}

// Search runs the full pipeline for one query: tokenize, extract entities,
// run the four scoring passes, rank, expand related flows, synthesize the
// response. Never fails; an unanswerable query yields an empty result with
// a "nothing found" sentence.
func (s *Searcher) Search(query string, maxResults int) domain.SearchResult {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	query = strings.ToLower(query)
	tokens := Tokenize(query)

	entities := s.extractEntities(query)
	s.logger.Debug("entities extracted",
		zap.String("query", query),
		zap.Strings("systems", entities.Systems),
		zap.Strings("formats", entities.Formats),
		zap.Strings("methods", entities.TransmissionMethods),
		zap.Strings("interfaces", entities.Interfaces),
		zap.String("direction", string(entities.Direction)),
		zap.Strings("unknown_terms", entities.UnknownTerms),
	)

	scores := make(scoreMap)
	s.scoreEntities(entities, scores)

	fuzzyTerms := entities.UnknownTerms
	if entities.Empty() {
		fuzzyTerms = tokens
	}
	s.scoreFuzzyTerms(fuzzyTerms, scores)
	s.scoreFullText(tokens, scores)
	s.scoreDirectional(query, scores)

	direct := s.rank(scores, maxResults)
	systems := matchingSystems(direct)
	related := s.relatedFlows(direct, systems)

	response := synthesizeResponse(query, direct, related, entities)

	if len(related) > maxRelatedFlows {
		related = related[:maxRelatedFlows]
	}
	if related == nil {
		related = []domain.Flow{}
	}

	s.logger.Info("search completed",
		zap.String("query", query),
		zap.Int("direct_results", len(direct)),
		zap.Int("related_flows", len(related)),
	)

	return domain.SearchResult{
		DirectResults:   direct,
		RelatedFlows:    related,
		MatchingSystems: systems,
		QueryEntities:   entities,
		NaturalResponse: response,
	}
}

// rank filters out zero scores, sorts descending by score with catalog
// order breaking ties, and annotates the top maxResults flows with their
// score rounded to two decimals.
func (s *Searcher) rank(scores scoreMap, maxResults int) []domain.ScoredFlow {
	type ranked struct {
		flow  domain.Flow
		score float64
	}

	// Collect in catalog order so the stable sort preserves it on ties.
	hits := make([]ranked, 0, len(scores))
	for _, flow := range s.catalog.Flows {
		if score, ok := scores[flow.ID]; ok && score > 0 {
			hits = append(hits, ranked{flow, score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	if len(hits) > maxResults {
		hits = hits[:maxResults]
	}

	direct := make([]domain.ScoredFlow, 0, len(hits))
	for _, h := range hits {
		direct = append(direct, domain.ScoredFlow{
			Flow:        h.flow,
			SearchScore: math.Round(h.score*100) / 100,
		})
	}
	return direct
}
