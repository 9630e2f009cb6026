// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package article

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/inkwell-platform/contentcore/internal/platform/request"
	"github.com/inkwell-platform/contentcore/internal/platform/respond"
	"github.com/inkwell-platform/contentcore/pkg/pagination"
)

// Handler exposes the read-only article catalogue surface. Mutating routes
// (upsert/delete) are mounted separately, under the admin boundary.
type Handler struct {
	service *Service
}

// NewHandler builds a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes registers the public article routes on router.
func (h *Handler) Routes(router chi.Router) {
	router.Get("/", h.list)
	router.Get("/{id}", h.get)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := pagination.FromRequest(r)

	f := Filter{
		Tag:      q.Get("tag"),
		Category: q.Get("category"),
		Limit:    page.Limit,
		Offset:   page.Offset(),
	}

	rows, total, err := h.service.List(r.Context(), f)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Paginated(w, rows, pagination.NewMeta(page.Page, page.Limit, int(total)))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := requestutil.ID(r, "id")
	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, a)
}

// AdminRoutes registers mutating routes for the admin boundary.
func (h *Handler) AdminRoutes(router chi.Router) {
	router.Post("/", h.upsert)
	router.Put("/{id}", h.upsert)
	router.Delete("/{id}", h.delete)
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request) {
	var a Article
	if err := requestutil.DecodeJSON(r, &a); err != nil {
		respond.Error(w, r, err)
		return
	}
	if id := requestutil.ID(r, "id"); id != "" {
		a.ID = id
	}
	if err := h.service.Upsert(r.Context(), &a); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Created(w, &a)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := requestutil.ID(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.NoContent(w)
}
