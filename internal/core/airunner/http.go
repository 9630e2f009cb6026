// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package airunner

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/inkwell-platform/contentcore/internal/platform/request"
	"github.com/inkwell-platform/contentcore/internal/platform/respond"
)

// Handler exposes admin-only AI run diagnostics: a run's status/exit
// code/final reply, and its ordered chunk log.
type Handler struct {
	repo Repository
}

// NewHandler builds a Handler.
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// AdminRoutes registers the diagnostic endpoints under the admin boundary.
func (h *Handler) AdminRoutes(router chi.Router) {
	router.Get("/{run_id}", h.get)
	router.Get("/{run_id}/chunks", h.chunks)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	run, err := h.repo.FindRun(r.Context(), requestutil.ID(r, "run_id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, run)
}

func (h *Handler) chunks(w http.ResponseWriter, r *http.Request) {
	chunks, err := h.repo.ListChunks(r.Context(), requestutil.ID(r, "run_id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, chunks)
}
