// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package taxonomy

import (
	"net/http"

	"github.com/inkwell-platform/contentcore/internal/platform/respond"
)

// Handlers exposes the taxonomy listing endpoints.
type Handlers struct {
	service *Service
}

// NewHandlers builds taxonomy Handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// ListTags handles GET /api/tags.
func (h *Handlers) ListTags(writer http.ResponseWriter, request *http.Request) {
	tags, err := h.service.Tags(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}

// ListCategories handles GET /api/categories.
func (h *Handlers) ListCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := h.service.Categories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}
