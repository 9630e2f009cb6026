// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package image

import (
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/inkwell-platform/contentcore/internal/platform/request"
	"github.com/inkwell-platform/contentcore/internal/platform/respond"
	"github.com/inkwell-platform/contentcore/pkg/convert"
	"github.com/inkwell-platform/contentcore/pkg/pagination"
)

// Handler exposes the image catalogue, binary download, and ANN search
// surface.
type Handler struct {
	service *Service
}

// NewHandler builds a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes registers the public image routes on router.
func (h *Handler) Routes(router chi.Router) {
	router.Get("/", h.list)
	router.Get("/search", h.searchByImage)
	router.Get("/search_by_text", h.searchByText)
	router.Get("/{filename}", h.download)
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

func (h *Handler) searchByImage(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	limit := convert.ToIntD(r.URL.Query().Get("limit"), pagination.DefaultLimit)

	matches, err := h.service.SearchByImage(r.Context(), id, limit)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, matches)
}

func (h *Handler) searchByText(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit := convert.ToIntD(r.URL.Query().Get("limit"), pagination.DefaultLimit)

	matches, err := h.service.SearchByText(r.Context(), q, limit)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, matches)
}

// download serves the raw image bytes (or its thumbnail, with
// ?thumb=true), with a one-year public cache-control header.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	filename := requestutil.Param(r, "filename")
	img, err := h.service.GetByFilename(r.Context(), filename)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	body := img.Data
	if convert.ToBool(r.URL.Query().Get("thumb")) && len(img.Thumbnail) > 0 {
		body = img.Thumbnail
	}

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// AdminRoutes registers mutating routes for the admin boundary.
func (h *Handler) AdminRoutes(router chi.Router) {
	router.Post("/", h.upsert)
	router.Delete("/{id}", h.delete)
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request) {
	var img Image
	if err := requestutil.DecodeJSON(r, &img); err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := h.service.Upsert(r.Context(), &img); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Created(w, &img)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := requestutil.ID(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.NoContent(w)
}
