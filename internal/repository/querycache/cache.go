// Package querycache is the optional Redis-backed cache of complete search
// responses. It caches responses only, never query history: entries expire
// by TTL and every catalog reload starts a fresh generation.
package querycache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/gridwerk/flowsearch/internal/db"
	"github.com/gridwerk/flowsearch/internal/domain"
)

const (
	keyPrefix     = "flowsearch:q:"
	generationKey = "flowsearch:q:gen"
)

// Cache stores search responses keyed by (normalized query, maxResults)
// within the current catalog generation. Backend failures degrade to cache
// misses, never to query failures.
type Cache struct {
	store    db.Store
	ttl      time.Duration
	hitsMiss *prometheus.CounterVec
	logger   *zap.Logger
}

// New creates a query response cache.
func New(store db.Store, ttl time.Duration, hitsMiss *prometheus.CounterVec, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{store: store, ttl: ttl, hitsMiss: hitsMiss, logger: logger}
}

// Get returns the cached response for the query, if any.
func (c *Cache) Get(ctx context.Context, query string, maxResults int) (domain.SearchResult, bool) {
	key, err := c.key(ctx, query, maxResults)
	if err != nil {
		c.logger.Warn("query cache key", zap.Error(err))
		return domain.SearchResult{}, false
	}

	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("query cache get", zap.Error(err))
		}
		c.count("miss")
		return domain.SearchResult{}, false
	}

	var result domain.SearchResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.Warn("query cache decode", zap.Error(err))
		c.count("miss")
		return domain.SearchResult{}, false
	}

	c.count("hit")
	return result, true
}

// Put stores a response under the current generation with the cache TTL.
func (c *Cache) Put(ctx context.Context, query string, maxResults int, result domain.SearchResult) {
	key, err := c.key(ctx, query, maxResults)
	if err != nil {
		c.logger.Warn("query cache key", zap.Error(err))
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("query cache encode", zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("query cache put", zap.Error(err))
	}
}

// Flush invalidates all cached responses by bumping the generation counter.
// Old-generation entries simply fall out via their TTL.
func (c *Cache) Flush(ctx context.Context) error {
	if _, err := c.store.Incr(ctx, generationKey); err != nil {
		return fmt.Errorf("bump cache generation: %w", err)
	}
	return nil
}

func (c *Cache) key(ctx context.Context, query string, maxResults int) (string, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(query))))
	return fmt.Sprintf("%s%s:%d:%s", keyPrefix, gen, maxResults, hex.EncodeToString(sum[:])), nil
}

func (c *Cache) generation(ctx context.Context) (string, error) {
	gen, err := c.store.Get(ctx, generationKey)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return "0", nil
		}
		return "", fmt.Errorf("read cache generation: %w", err)
	}
	return string(gen), nil
}

func (c *Cache) count(result string) {
	if c.hitsMiss != nil {
		c.hitsMiss.WithLabelValues(result).Inc()
	}
}
