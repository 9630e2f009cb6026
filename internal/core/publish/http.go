// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package publish

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/inkwell-platform/contentcore/internal/platform/request"
	"github.com/inkwell-platform/contentcore/internal/platform/respond"
	"github.com/inkwell-platform/contentcore/pkg/pagination"
)

// Handler exposes the read-only published-comment listing. Deletion is an
// admin moderation action, mounted separately.
type Handler struct {
	service *Service
}

// NewHandler builds a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes registers the public listing route on router, expected to be
// mounted under an article's comments path.
func (h *Handler) Routes(router chi.Router) {
	router.Get("/", h.list)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromRequest(r)
	f := Filter{
		ArticleID: requestutil.ID(r, "article_id"),
		Limit:     page.Limit,
		Offset:    page.Offset(),
	}

	rows, total, err := h.service.List(r.Context(), f)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Paginated(w, rows, pagination.NewMeta(page.Page, page.Limit, int(total)))
}

// AdminRoutes registers the moderation delete route.
func (h *Handler) AdminRoutes(router chi.Router) {
	router.Delete("/{comment_id}", h.delete)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), requestutil.ID(r, "comment_id")); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.NoContent(w)
}
