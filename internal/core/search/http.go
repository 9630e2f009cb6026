// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package search

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-platform/contentcore/internal/platform/apperr"
	requestutil "github.com/inkwell-platform/contentcore/internal/platform/request"
	"github.com/inkwell-platform/contentcore/internal/platform/respond"
)

// Handler is the thin HTTP translation layer over Engine: parse query
// params, validate, delegate, map errors.
type Handler struct {
	engine *Engine
}

// NewHandler builds a Handler.
func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// Routes registers the public search endpoints.
func (h *Handler) Routes(router chi.Router) {
	router.Get("/search", h.search)
	router.Get("/search/images", h.imageSearch)
	router.Get("/search/images/text", h.textToImageSearch)
	router.Get("/articles/{id}/related", h.related)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("q")
	if text == "" {
		respond.Error(w, r, apperr.ValidationError("q must not be empty", apperr.FieldError{Field: "q", Message: "required"}))
		return
	}

	q := Query{
		Text:     text,
		Mode:     Mode(orDefault(r.URL.Query().Get("mode"), string(ModeKeyword))),
		Limit:    atoiOr(r.URL.Query().Get("limit"), 0),
		Offset:   atoiOr(r.URL.Query().Get("offset"), 0),
		Enhanced: r.URL.Query().Get("highlight") == "enhanced",
		RRFK:     atoiOr(r.URL.Query().Get("rrf_k"), 0),
	}

	var hits []Hit
	var err error
	switch q.Mode {
	case ModeSemantic:
		hits, err = h.engine.SemanticSearch(r.Context(), q)
	case ModeHybrid:
		hits, err = h.engine.HybridSearch(r.Context(), q)
	default:
		hits, err = h.engine.KeywordSearch(r.Context(), q)
	}
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, hits)
}

func (h *Handler) imageSearch(w http.ResponseWriter, r *http.Request) {
	imageID := r.URL.Query().Get("image_id")
	if imageID == "" {
		respond.Error(w, r, apperr.ValidationError("image_id must not be empty", apperr.FieldError{Field: "image_id", Message: "required"}))
		return
	}
	limit := atoiOr(r.URL.Query().Get("limit"), 0)

	hits, err := h.engine.ImageSearch(r.Context(), imageID, limit)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, hits)
}

func (h *Handler) textToImageSearch(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("q")
	if text == "" {
		respond.Error(w, r, apperr.ValidationError("q must not be empty", apperr.FieldError{Field: "q", Message: "required"}))
		return
	}
	limit := atoiOr(r.URL.Query().Get("limit"), 0)

	hits, err := h.engine.TextToImageSearch(r.Context(), text, limit)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, hits)
}

func (h *Handler) related(w http.ResponseWriter, r *http.Request) {
	articleID := requestutil.ID(r, "id")
	limit := atoiOr(r.URL.Query().Get("limit"), 0)

	hits, err := h.engine.RelatedArticles(r.Context(), articleID, limit)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, hits)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func atoiOr(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
