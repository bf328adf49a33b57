// Package server assembles the HTTP surface of the books API.
package server

import (
	"context"
	"net/http"
	"time"

	"booksapi/internal/book"
	"booksapi/internal/config"
	"booksapi/internal/httpx"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// PingFunc reports whether the backing store is reachable.
type PingFunc func(ctx context.Context) error

// Deps are the collaborators the router needs.
type Deps struct {
	Repo     book.Repository
	Ping     PingFunc
	Logger   *zap.Logger
	Registry *prometheus.Registry
}

// NewRouter registers every route and wraps the mux in the middleware chain.
// ctx bounds background work owned by the middleware.
func NewRouter(ctx context.Context, cfg config.HTTP, deps Deps) http.Handler {
	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	metrics := httpx.NewMetrics(registry)

	bookHandler := book.NewHTTPHandler(book.NewService(deps.Repo), deps.Logger)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := deps.Ping(ctx); err != nil {
			deps.Logger.Warn("readiness check failed", zap.Error(err))
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.Handle("GET /metrics", metrics.Handler())

	router.HandleFunc("GET /books", bookHandler.List)
	router.HandleFunc("POST /books", bookHandler.Create)
	router.HandleFunc("GET /books/{isbn}", bookHandler.GetByISBN)
	router.HandleFunc("PUT /books/{isbn}", bookHandler.Update)
	router.HandleFunc("DELETE /books/{isbn}", bookHandler.Delete)

	// Request id, access log and metrics sit outside recovery so a recovered
	// panic is still identified, logged and counted.
	middlewares := []func(http.Handler) http.Handler{
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(deps.Logger),
		metrics.Middleware,
		httpx.RecoveryMiddleware(deps.Logger),
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORSOrigins),
	}
	if cfg.RateLimitRPS > 0 {
		middlewares = append(middlewares, httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware)
	}
	middlewares = append(middlewares, httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes))

	return httpx.Chain(router, middlewares...)
}

// New builds the http.Server for handler using the configured timeouts.
func New(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}
}
