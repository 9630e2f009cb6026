// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package task

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-platform/contentcore/internal/platform/clientid"
	requestutil "github.com/inkwell-platform/contentcore/internal/platform/request"
	"github.com/inkwell-platform/contentcore/internal/platform/respond"
	"github.com/inkwell-platform/contentcore/pkg/pagination"
)

// Handler exposes the reader-facing submit surface. Moderation (approve,
// reject, patch, delete, audit) is mounted separately under the admin
// boundary.
type Handler struct {
	service *Service
}

// NewHandler builds a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// submitBody is the shared public request shape; fields outside the
// submitting kind are ignored rather than rejected.
type submitBody struct {
	ArticleID    string `json:"article_id,omitempty"`
	ArticleURL   string `json:"article_url,omitempty"`
	SongName     string `json:"song_name,omitempty"`
	ParentTaskID string `json:"parent_task_id,omitempty"`
	BodyText     string `json:"body_text"`
	ClientName   string `json:"client_name,omitempty"`
}

// Routes registers the public submission endpoints. They are limited only by
// the global per-IP middleware.RateLimit; no per-fingerprint submit limit is
// applied.
func (h *Handler) Routes(router chi.Router) {
	router.Post("/comments", h.submit(KindComment))
	router.Post("/article-requests", h.submit(KindRequest))
	router.Post("/music-wishes", h.submit(KindWish))
}

func (h *Handler) submit(kind Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body submitBody
		if err := requestutil.DecodeJSON(r, &body); err != nil {
			respond.Error(w, r, err)
			return
		}

		ip := clientid.RealIP(r)
		in := SubmitInput{
			Kind:         kind,
			ArticleID:    requestutil.ID(r, "article_id"),
			ArticleURL:   body.ArticleURL,
			SongName:     body.SongName,
			ParentTaskID: body.ParentTaskID,
			BodyText:     body.BodyText,
			ClientName:   body.ClientName,
			Fingerprint:  clientid.Fingerprint(ip, r.UserAgent()),
			ClientIP:     ip,
		}
		if in.ArticleID == "" {
			in.ArticleID = body.ArticleID
		}

		t, err := h.service.Submit(r.Context(), in)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.Created(w, t)
	}
}

// AdminRoutes registers moderation endpoints behind the admin boundary.
func (h *Handler) AdminRoutes(router chi.Router) {
	router.Get("/", h.list)
	router.Get("/{id}", h.get)
	router.Get("/{id}/audit", h.audit)
	router.Patch("/{id}", h.patch)
	router.Delete("/{id}", h.delete)
	router.Post("/{id}/approve", h.approve)
	router.Post("/{id}/reject", h.reject)
	router.Post("/{id}/retry", h.retry)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := pagination.FromRequest(r)

	f := ListFilter{
		Kind:   Kind(q.Get("kind")),
		Status: Status(q.Get("status")),
		Limit:  page.Limit,
		Offset: page.Offset(),
	}

	rows, total, err := h.service.List(r.Context(), f)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Paginated(w, rows, pagination.NewMeta(page.Page, page.Limit, int(total)))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.Get(r.Context(), requestutil.ID(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, t)
}

func (h *Handler) audit(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Audit(r.Context(), requestutil.ID(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, entries)
}

type patchBody struct {
	BodyText  string `json:"body_text"`
	AdminNote string `json:"admin_note,omitempty"`
}

func (h *Handler) patch(w http.ResponseWriter, r *http.Request) {
	var body patchBody
	if err := requestutil.DecodeJSON(r, &body); err != nil {
		respond.Error(w, r, err)
		return
	}
	t, err := h.service.Patch(r.Context(), requestutil.ID(r, "id"), body.BodyText, body.AdminNote)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, t)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), requestutil.ID(r, "id")); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.NoContent(w)
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	claims, err := requestutil.RequiredClaims(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	t, err := h.service.Approve(r.Context(), requestutil.ID(r, "id"), claims.Subject)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, t)
}

type rejectBody struct {
	Note string `json:"note,omitempty"`
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	claims, err := requestutil.RequiredClaims(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	var body rejectBody
	_ = requestutil.DecodeJSON(r, &body)

	t, err := h.service.Reject(r.Context(), requestutil.ID(r, "id"), claims.Subject, body.Note)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, t)
}

func (h *Handler) retry(w http.ResponseWriter, r *http.Request) {
	claims, err := requestutil.RequiredClaims(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	t, err := h.service.Retry(r.Context(), requestutil.ID(r, "id"), claims.Subject)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, t)
}
