// Package server wires the catalog gateway's HTTP surface: the GraphQL
// endpoint, playground, health check and prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/99designs/gqlgen/graphql/playground"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nucleus/catalog-api/graph"
	"github.com/nucleus/catalog-api/internal/config"
	"github.com/nucleus/catalog-api/internal/datasource"
	"github.com/nucleus/catalog-api/internal/requestid"
	"github.com/nucleus/catalog-api/internal/upstream"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

const shutdownTimeout = 10 * time.Second

// Server is the catalog gateway HTTP server.
type Server struct {
	cfg        *config.Config
	logger     *zap.Logger
	registry   *prometheus.Registry
	schema     *graphql.Schema
	catalog    datasource.Catalog
	handler    http.Handler
	httpServer *http.Server
}

// New builds the upstream client, the GraphQL schema and the HTTP routes.
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	registry := prometheus.NewRegistry()

	client := upstream.NewClient(upstream.ClientConfig{
		BaseURL:   cfg.UpstreamURL,
		Timeout:   cfg.UpstreamTimeout,
		RateLimit: cfg.UpstreamRateLimit,
		RateBurst: cfg.UpstreamRateBurst,
		Logger:    logger.Named("upstream"),
		Metrics:   upstream.NewMetrics(registry),
	})

	return newServer(cfg, logger, registry, upstream.NewCatalog(client))
}

func newServer(cfg *config.Config, logger *zap.Logger, registry *prometheus.Registry, catalog datasource.Catalog) (*Server, error) {
	schema, err := graph.NewSchema(graph.NewResolver(logger.Named("graph")), cfg.MaxParallelism)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		schema:   schema,
		catalog:  catalog,
	}
	s.handler = s.routes()
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	if s.cfg.Playground {
		mux.Handle("/", playground.Handler("Catalog API Playground", "/graphql"))
	}
	mux.Handle("/graphql", datasource.Middleware(s.catalog)(&relay.Handler{Schema: s.schema}))
	mux.HandleFunc("/health", healthHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	metrics := newHTTPMetrics(s.registry)
	return requestid.Middleware(accessLog(s.logger, metrics, mux))
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("catalog API listening",
			zap.String("addr", s.httpServer.Addr),
			zap.String("upstream", s.cfg.UpstreamURL),
			zap.Bool("playground", s.cfg.Playground))
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down server: %w", err)
		}
		return nil
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": Version,
	})
}
