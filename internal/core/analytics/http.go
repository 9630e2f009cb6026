// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package analytics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-platform/contentcore/internal/platform/apperr"
	requestutil "github.com/inkwell-platform/contentcore/internal/platform/request"
	"github.com/inkwell-platform/contentcore/internal/platform/respond"
)

func timeNow() time.Time { return time.Now().UTC() }

func validationError(field, message string) error {
	return apperr.ValidationError(message, apperr.FieldError{Field: field, Message: message})
}

// Handler exposes the public view-tracking/stats surface and the admin
// overview/cleanup surface.
type Handler struct {
	service *Service
}

// NewHandler builds a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes registers the public endpoints.
func (h *Handler) Routes(router chi.Router) {
	router.Post("/articles/{id}/views", h.trackView)
	router.Get("/articles/{id}/views", h.dayTrend)
	router.Get("/articles/{id}/views/hourly", h.hourTrend)
	router.Get("/stats", h.stats)
}

// AdminRoutes registers the admin-only maintenance endpoints.
func (h *Handler) AdminRoutes(router chi.Router) {
	router.Post("/cleanup", h.cleanup)
}

func (h *Handler) trackView(w http.ResponseWriter, r *http.Request) {
	articleID := requestutil.ID(r, "id")
	days := parseDays(r.URL.Query().Get("trend_days"))

	result, err := h.service.TrackView(r.Context(), articleID, r, days, timeNow())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, result)
}

func (h *Handler) dayTrend(w http.ResponseWriter, r *http.Request) {
	articleID := requestutil.ID(r, "id")
	days := parseDays(r.URL.Query().Get("days"))

	points, err := h.service.DayTrend(r.Context(), articleID, days)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, points)
}

func (h *Handler) hourTrend(w http.ResponseWriter, r *http.Request) {
	articleID := requestutil.ID(r, "id")
	day := r.URL.Query().Get("day")
	if day == "" {
		respond.Error(w, r, validationError("day", "required, format YYYY-MM-DD"))
		return
	}

	points, err := h.service.HourTrend(r.Context(), articleID, day)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, points)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	days := parseDays(r.URL.Query().Get("days"))
	summary, err := h.service.Stats(r.Context(), days)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, summary)
}

func (h *Handler) cleanup(w http.ResponseWriter, r *http.Request) {
	viewsRemoved, eventsRemoved, err := h.service.Cleanup(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, map[string]int64{
		"views_removed":  viewsRemoved,
		"events_removed": eventsRemoved,
	})
}
