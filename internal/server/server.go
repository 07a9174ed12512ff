// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the query pipeline as a read-only JSON API and
// keeps the published snapshot current by reloading the data directory.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/research-directory/internal/query"
	"github.com/pdiddy/research-directory/pkg/types"
)

// Source produces snapshots and names the files they are read from.
// *ingest.Loader satisfies it.
type Source interface {
	Load(ctx context.Context) (*types.Snapshot, error)
	Paths() []string
}

// Server serves the directory API.
type Server struct {
	holder   *query.Holder
	source   Source
	cfg      types.ServerConfig
	pageSize int
	logger   *zap.Logger
	metrics  *metrics
	now      func() time.Time

	// reloadMu serializes reloads; readers never take it.
	reloadMu sync.Mutex
}

// New returns a server publishing snapshots through holder. pageSize is the
// default window for list endpoints.
func New(holder *query.Holder, source Source, cfg types.ServerConfig, pageSize int, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pageSize <= 0 {
		pageSize = query.DefaultLimit
	}
	return &Server{
		holder:   holder,
		source:   source,
		cfg:      cfg,
		pageSize: pageSize,
		logger:   logger,
		metrics:  newMetrics(holder),
		now:      time.Now,
	}
}

// Handler returns the routed API with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(s.metrics.instrument)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/experts", func(r chi.Router) {
			r.Get("/", s.listExperts)
			r.Get("/facets", s.expertFacets)
			r.Get("/{id}", s.getExpert)
			r.Get("/{id}/publications", s.listPublications)
		})
		r.Route("/opportunities", func(r chi.Router) {
			r.Get("/", s.listOpportunities)
			r.Get("/facets", s.opportunityFacets)
			r.Get("/{id}", s.getOpportunity)
		})
		r.Get("/agencies", s.agencies)
		r.Post("/reload", s.reload)
	})

	return r
}

// Reload loads a fresh snapshot and publishes it. When any document fails
// to load, the current snapshot stays published and the error is returned.
func (s *Server) Reload(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()
	snap, err := s.source.Load(ctx)
	if err != nil {
		s.metrics.reloads.WithLabelValues("failed").Inc()
		s.logger.Warn("reload failed, keeping current snapshot", zap.Error(err))
		return fmt.Errorf("reloading snapshot: %w", err)
	}
	s.holder.Swap(snap)
	s.metrics.reloads.WithLabelValues("ok").Inc()
	s.logger.Info("snapshot published",
		zap.Int("experts", len(snap.Experts)),
		zap.Int("opportunities", len(snap.Opportunities)),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// Run serves on the configured address until ctx is canceled, then shuts
// down gracefully. When watching is enabled, file changes in the data
// directory trigger reloads.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	if s.cfg.Watch {
		w := NewWatcher(s.source.Paths(), s.cfg.ReloadDebounce, s.Reload, s.logger)
		g.Go(func() error {
			return w.Run(ctx)
		})
	}

	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	})

	return g.Wait()
}
