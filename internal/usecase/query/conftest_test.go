package query

import (
	"context"
	"errors"

	"github.com/gridwerk/flowsearch/internal/domain"
)

func testCatalog() domain.Catalog {
	return domain.NewCatalog([]domain.Flow{
		{
			ID: "F-001", Name: "Nominierung an MIRA",
			Format: "NOMINT", TransmissionMethod: "AS4",
			SourceSystem: "GRID", TargetSystem: "MIRA",
		},
		{
			ID: "F-002", Name: "Nominierungsantwort an GRID",
			Format: "NOMRES", TransmissionMethod: "AS4",
			SourceSystem: "MIRA", TargetSystem: "GRID",
		},
	})
}

type mockCache struct {
	stored  map[string]domain.SearchResult
	gets    int
	puts    int
	flushes int
}

func newMockCache() *mockCache {
	return &mockCache{stored: map[string]domain.SearchResult{}}
}

func (c *mockCache) Get(_ context.Context, query string, _ int) (domain.SearchResult, bool) {
	c.gets++
	result, ok := c.stored[query]
	return result, ok
}

func (c *mockCache) Put(_ context.Context, query string, _ int, result domain.SearchResult) {
	c.puts++
	c.stored[query] = result
}

func (c *mockCache) Flush(context.Context) error {
	c.flushes++
	c.stored = map[string]domain.SearchResult{}
	return nil
}

type mockResponder struct {
	response string
	err      error
	calls    int
}

func (r *mockResponder) Rephrase(context.Context, string, domain.SearchResult) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	return r.response, nil
}

var errLoader = errors.New("loader failed")
