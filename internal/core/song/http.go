// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package song

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/inkwell-platform/contentcore/internal/platform/request"
	"github.com/inkwell-platform/contentcore/internal/platform/respond"
	"github.com/inkwell-platform/contentcore/pkg/pagination"
)

// Handler exposes the song catalogue surface.
type Handler struct {
	service *Service
}

// NewHandler builds a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes registers the public song routes on router.
func (h *Handler) Routes(router chi.Router) {
	router.Get("/", h.list)
	router.Get("/search", h.search)
	router.Get("/{id}", h.get)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromRequest(r)
	rows, total, err := h.service.List(r.Context(), page.Limit, page.Offset())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Paginated(w, rows, pagination.NewMeta(page.Page, page.Limit, int(total)))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := requestutil.ID(r, "id")
	s, err := h.service.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, s)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromRequest(r)
	rows, err := h.service.Search(r.Context(), r.URL.Query().Get("q"), page.Limit)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, rows)
}

// AdminRoutes registers mutating routes for the admin boundary.
func (h *Handler) AdminRoutes(router chi.Router) {
	router.Post("/", h.upsert)
	router.Delete("/{id}", h.delete)
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request) {
	var s Song
	if err := requestutil.DecodeJSON(r, &s); err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := h.service.Upsert(r.Context(), &s); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Created(w, &s)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := requestutil.ID(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.NoContent(w)
}
