// Package query orchestrates catalog searches: it owns the active searcher
// snapshot, swaps it atomically on reload, and layers the optional response
// cache and LLM phrasing around the core engine.
package query

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/gridwerk/flowsearch/internal/domain"
	"github.com/gridwerk/flowsearch/internal/metrics"
	"github.com/gridwerk/flowsearch/internal/search"
)

// Service answers queries against the current catalog snapshot. In-flight
// searches always observe one coherent searcher; Reload builds a complete
// replacement before swapping it in.
type Service struct {
	loader    CatalogLoader
	cache     Cache     // nil when caching is disabled
	responder Responder // nil when LLM phrasing is disabled
	logger    *zap.Logger

	maxResults      int
	fuzzyVocabLimit int

	current atomic.Pointer[search.Searcher]
}

// New creates the query service. Reload must succeed once before Search is
// usable.
func New(loader CatalogLoader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		loader:     loader,
		logger:     logger,
		maxResults: search.DefaultMaxResults,
	}
}

// WithCache attaches a response cache.
func (s *Service) WithCache(cache Cache) *Service {
	s.cache = cache
	return s
}

// WithResponder attaches an LLM response rephraser.
func (s *Service) WithResponder(responder Responder) *Service {
	s.responder = responder
	return s
}

// WithLimits overrides the default result cap and the fuzzy vocabulary
// bound (0 = unbounded).
func (s *Service) WithLimits(maxResults, fuzzyVocabLimit int) *Service {
	if maxResults > 0 {
		s.maxResults = maxResults
	}
	s.fuzzyVocabLimit = fuzzyVocabLimit
	return s
}

// Reload loads a fresh catalog, builds a new searcher, and atomically
// replaces the active one. On failure the previous snapshot stays in
// service.
func (s *Service) Reload(ctx context.Context) error {
	catalog, err := s.loader.Load()
	if err != nil {
		metrics.CatalogReloadsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("load catalog: %w", err)
	}

	searcher, err := search.NewSearcher(catalog, s.logger)
	if err != nil {
		metrics.CatalogReloadsTotal.WithLabelValues("error").Inc()
		return err
	}
	searcher.WithFuzzyVocabLimit(s.fuzzyVocabLimit)

	s.current.Store(searcher)
	metrics.CatalogReloadsTotal.WithLabelValues("success").Inc()
	metrics.CatalogFlows.Set(float64(len(catalog.Flows)))

	if s.cache != nil {
		if err := s.cache.Flush(ctx); err != nil {
			s.logger.Warn("flush query cache after reload", zap.Error(err))
		}
	}

	s.logger.Info("catalog reloaded", zap.Int("flows", len(catalog.Flows)))
	return nil
}

// Search answers one query. maxResults <= 0 uses the configured default.
func (s *Service) Search(ctx context.Context, query string, maxResults int) (domain.SearchResult, error) {
	searcher := s.current.Load()
	if searcher == nil {
		return domain.SearchResult{}, fmt.Errorf("%w: no catalog loaded", domain.ErrInvalidCatalog)
	}
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, query, maxResults); ok {
			return cached, nil
		}
	}

	start := time.Now()
	result := searcher.Search(query, maxResults)
	metrics.SearchDuration.Observe(time.Since(start).Seconds())

	outcome := "hit"
	if len(result.DirectResults) == 0 {
		outcome = "empty"
	}
	metrics.SearchesTotal.WithLabelValues(outcome).Inc()

	if s.responder != nil {
		if phrased, err := s.responder.Rephrase(ctx, query, result); err != nil {
			s.logger.Warn("responder failed, keeping template response", zap.Error(err))
		} else {
			result.NaturalResponse = phrased
		}
	}

	if s.cache != nil {
		s.cache.Put(ctx, query, maxResults, result)
	}

	return result, nil
}

// Catalog returns the active catalog snapshot (empty before the first
// successful Reload).
func (s *Service) Catalog() domain.Catalog {
	if searcher := s.current.Load(); searcher != nil {
		return searcher.Catalog()
	}
	return domain.Catalog{}
}
