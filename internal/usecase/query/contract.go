package query

import (
	"context"

	"github.com/gridwerk/flowsearch/internal/domain"
)

// CatalogLoader supplies a fresh catalog snapshot, typically by re-reading
// the source file.
type CatalogLoader interface {
	Load() (domain.Catalog, error)
}

// LoaderFunc adapts a function to CatalogLoader.
type LoaderFunc func() (domain.Catalog, error)

// Load implements CatalogLoader.
func (f LoaderFunc) Load() (domain.Catalog, error) { return f() }

// Cache stores complete search responses. Implementations degrade to
// misses on backend failure.
type Cache interface {
	Get(ctx context.Context, query string, maxResults int) (domain.SearchResult, bool)
	Put(ctx context.Context, query string, maxResults int, result domain.SearchResult)
	Flush(ctx context.Context) error
}

// Responder rewrites the deterministic natural response into friendlier
// wording. Failures fall back to the deterministic sentence.
type Responder interface {
	Rephrase(ctx context.Context, query string, result domain.SearchResult) (string, error)
}
