package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/gridwerk/flowsearch/internal/config"
	dbRedis "github.com/gridwerk/flowsearch/internal/db/redis"
	"github.com/gridwerk/flowsearch/internal/domain"
	"github.com/gridwerk/flowsearch/internal/ingest"
	logpkg "github.com/gridwerk/flowsearch/internal/logger"
	"github.com/gridwerk/flowsearch/internal/metrics"
	"github.com/gridwerk/flowsearch/internal/repository/querycache"
	chiTransport "github.com/gridwerk/flowsearch/internal/transport/chi"
	openaiResp "github.com/gridwerk/flowsearch/internal/transport/openai"
	queryuc "github.com/gridwerk/flowsearch/internal/usecase/query"
	"github.com/gridwerk/flowsearch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting flowsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog_path", cfg.Catalog.Path),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("responder_enabled", cfg.Responder.Enabled),
	)

	metrics.RegisterSearchMetrics()

	loader := queryuc.LoaderFunc(func() (domain.Catalog, error) {
		return ingest.LoadFile(cfg.Catalog.Path)
	})
	svc := queryuc.New(loader, logger).
		WithLimits(cfg.Search.MaxResults, cfg.Search.FuzzyVocabLimit)

	ctx := context.Background()

	if cfg.Cache.Enabled {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		readiness := time.Duration(cfg.Cache.ReadinessTimeoutSec) * time.Second
		if err := store.WaitForReady(ctx, readiness); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}

		ttl := time.Duration(cfg.Cache.TTLSec) * time.Second
		svc.WithCache(querycache.New(store, ttl, metrics.QueryCacheTotal, logger))
		logger.Info("Query cache connected", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	if cfg.Responder.Enabled {
		svc.WithResponder(openaiResp.NewResponder(&openaiResp.Config{
			APIKey:  cfg.Responder.APIKey,
			BaseURL: cfg.Responder.BaseURL,
			Model:   cfg.Responder.Model,
			Timeout: time.Duration(cfg.Responder.TimeoutSec) * time.Second,
			Logger:  logger,
		}))
		logger.Info("LLM responder enabled", zap.String("model", cfg.Responder.Model))
	}

	// First load must succeed; a service with no catalog refuses to start.
	if err := svc.Reload(ctx); err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}

	if cfg.Catalog.Watch {
		stopWatch, err := watchCatalog(ctx, cfg.Catalog.Path, svc, logger)
		if err != nil {
			logger.Fatal("Failed to watch catalog file", zap.Error(err))
		}
		defer stopWatch()
	}

	server := chiTransport.NewServer(svc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// watchCatalog rebuilds the searcher when the catalog file changes. The
// directory is watched rather than the file itself because editors and
// deploy tooling replace files instead of writing in place. Events are
// debounced; a failed rebuild keeps the previous snapshot serving.
func watchCatalog(
	ctx context.Context, path string, svc *queryuc.Service, logger *zap.Logger,
) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	target := filepath.Clean(path)
	done := make(chan struct{})

	go func() {
		var debounce *time.Timer
		defer func() {
			if debounce != nil {
				debounce.Stop()
			}
		}()

		for {
			select {
			case <-done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(500*time.Millisecond, func() {
					if err := svc.Reload(ctx); err != nil {
						logger.Error("catalog reload from file watch failed", zap.Error(err))
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("catalog watcher error", zap.Error(err))
			}
		}
	}()

	return func() {
		close(done)
		_ = watcher.Close()
	}, nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
