// Package server exposes the extraction and compliance pipeline over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/trusteehq/formscan/internal/compliance"
	"github.com/trusteehq/formscan/internal/config"
	"github.com/trusteehq/formscan/internal/extraction"
	"github.com/trusteehq/formscan/internal/forms"
	"github.com/trusteehq/formscan/internal/mapping"
	"github.com/trusteehq/formscan/internal/pdftext"
	"github.com/trusteehq/formscan/internal/store"
)

// Server wires the pipeline services behind a chi router.
type Server struct {
	cfg       *config.Config
	logger    *slog.Logger
	registry  *forms.Registry
	extractor *extraction.Extractor
	mapper    *mapping.Mapper
	analyzer  *compliance.Analyzer
	store     *store.Store
	documents *pdftext.Service

	httpServer *http.Server
}

// Deps carries the services the HTTP layer fronts. Documents may be nil
// when no document directory is configured.
type Deps struct {
	Registry  *forms.Registry
	Extractor *extraction.Extractor
	Mapper    *mapping.Mapper
	Analyzer  *compliance.Analyzer
	Store     *store.Store
	Documents *pdftext.Service
}

// NewServer creates an HTTP server around the given pipeline services.
func NewServer(cfg *config.Config, logger *slog.Logger, deps Deps) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:       cfg,
		logger:    logger,
		registry:  deps.Registry,
		extractor: deps.Extractor,
		mapper:    deps.Mapper,
		analyzer:  deps.Analyzer,
		store:     deps.Store,
		documents: deps.Documents,
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Address(),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Routes builds the router. Exposed separately so tests can drive the
// handlers through httptest without binding a port.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/documents/analyze", s.handleAnalyzeDocument)
		r.Get("/documents/{documentID}/compliance", s.handleGetCompliance)
		r.Post("/forms/map", s.handleMapForm)
		r.Post("/forms/validate", s.handleValidateForm)
		r.Get("/forms", s.handleListForms)
	})

	return r
}

// Start runs the HTTP server until the context is cancelled, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("http server listening", "addr", s.cfg.Address())
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("http server shutting down")
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	}
}

// requestLogger logs one line per request with the chi request ID.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"requestId", middleware.GetReqID(r.Context()),
		)
	})
}
