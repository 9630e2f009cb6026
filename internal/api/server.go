// Copyright (c) 2026 Inkwell Platform. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/inkwell-platform/contentcore/internal/core/airunner"
	"github.com/inkwell-platform/contentcore/internal/core/analytics"
	"github.com/inkwell-platform/contentcore/internal/core/article"
	"github.com/inkwell-platform/contentcore/internal/core/image"
	"github.com/inkwell-platform/contentcore/internal/core/publish"
	"github.com/inkwell-platform/contentcore/internal/core/search"
	"github.com/inkwell-platform/contentcore/internal/core/song"
	"github.com/inkwell-platform/contentcore/internal/core/task"
	"github.com/inkwell-platform/contentcore/internal/core/taxonomy"
	"github.com/inkwell-platform/contentcore/internal/platform/config"
	"github.com/inkwell-platform/contentcore/internal/platform/constants"
	"github.com/inkwell-platform/contentcore/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Article serves the article catalogue and CRUD surface.
	Article *article.Handler

	// Image serves the image catalogue, binary download, and ANN search.
	Image *image.Handler

	// Song serves the song catalogue.
	Song *song.Handler

	// Taxonomy serves the cached tag/category listings.
	Taxonomy *taxonomy.Handlers

	// Task handles public submission (comments, article requests, music
	// wishes) and admin moderation.
	Task *task.Handler

	// Publish serves the published-comment listing and its admin delete.
	Publish *publish.Handler

	// AiRunner exposes admin-only AI run diagnostics.
	AiRunner *airunner.Handler

	// Analytics handles view tracking, trends, and behavior stats.
	Analytics *analytics.Handler

	// Search serves keyword/semantic/hybrid search and related-articles.
	Search *search.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	rte := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	rte.Use(middleware.RequestID())
	rte.Use(middleware.StructuredLogger(log))
	rte.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	rte.Use(middleware.RateLimit(ctx))
	rte.Use(middleware.PanicRecovery(log))
	rte.Use(middleware.Authenticate(verifier))
	rte.Use(middleware.CORS(cfg))
	rte.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	rte.Get("/health", h.Liveness)
	rte.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	rte.Route("/api/v1", func(api chi.Router) {
		api.Route("/articles", func(r chi.Router) {
			h.Article.Routes(r)
			r.Route("/{article_id}/comments", func(cr chi.Router) {
				h.Publish.Routes(cr)
			})
		})
		api.Route("/images", h.Image.Routes)
		api.Route("/songs", h.Song.Routes)
		api.Get("/tags", h.Taxonomy.ListTags)
		api.Get("/categories", h.Taxonomy.ListCategories)

		h.Task.Routes(api)
		h.Analytics.Routes(api)
		h.Search.Routes(api)

		// # Admin Boundary
		// Mutating and moderation routes, gated by middleware.RequireAdmin
		// on top of the Authenticate pass already applied globally above.
		api.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireAdmin)

			admin.Route("/articles", h.Article.AdminRoutes)
			admin.Route("/images", h.Image.AdminRoutes)
			admin.Route("/songs", h.Song.AdminRoutes)
			admin.Route("/tags", h.Taxonomy.AdminRoutes)
			admin.Route("/categories", h.Taxonomy.AdminCategoryRoutes)
			admin.Route("/tasks", h.Task.AdminRoutes)
			admin.Route("/articles/{article_id}/comments", h.Publish.AdminRoutes)
			admin.Route("/ai-runs", h.AiRunner.AdminRoutes)
			admin.Route("/analytics", h.Analytics.AdminRoutes)
		})
	})

	return &Server{
		router: rte,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           rte,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
