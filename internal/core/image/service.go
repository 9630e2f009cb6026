// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package image

import (
	"context"
	"log/slog"

	"github.com/inkwell-platform/contentcore/internal/platform/apperr"
	"github.com/inkwell-platform/contentcore/pkg/uuidv7"
)

// TextEncoder embeds free text into the same vector space as [Image.Vector],
// when a joint text/image encoder is configured. It is a pure function from
// the platform's perspective — the actual model lives outside this module.
type TextEncoder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Service orchestrates image CRUD and ANN search.
type Service struct {
	repo    Repository
	encoder TextEncoder // optional; nil disables text-to-image search
	logger  *slog.Logger
}

// NewService constructs a Service. encoder may be nil.
func NewService(repo Repository, encoder TextEncoder, logger *slog.Logger) *Service {
	return &Service{repo: repo, encoder: encoder, logger: logger}
}

// Get fetches one image by id.
func (s *Service) Get(ctx context.Context, id string) (*Image, error) {
	return s.repo.FindByID(ctx, id)
}

// GetByFilename fetches one image by its served filename, used by the binary
// download route.
func (s *Service) GetByFilename(ctx context.Context, filename string) (*Image, error) {
	return s.repo.FindByFilename(ctx, filename)
}

// List pages through the image catalogue.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Image, int64, error) {
	rows, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Upsert creates or replaces an image, assigning an id when absent.
func (s *Service) Upsert(ctx context.Context, img *Image) error {
	if img.ID == "" {
		img.ID = uuidv7.New()
	}
	if err := s.repo.Upsert(ctx, img); err != nil {
		return err
	}
	s.logger.Info("image_upserted", slog.String("image_id", img.ID))
	return nil
}

// Delete removes an image.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// SearchByImage runs an ANN lookup using id's own vector (related-images),
// excluding id itself. Per §4.2, an image with no vector yields an empty
// result rather than an error.
func (s *Service) SearchByImage(ctx context.Context, id string, limit int) ([]Match, error) {
	source, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(source.Vector) == 0 {
		return []Match{}, nil
	}
	return s.repo.SearchByVector(ctx, source.Vector, id, limit)
}

// SearchByText embeds text with the joint encoder and runs an ANN lookup
// against the image vector space.
func (s *Service) SearchByText(ctx context.Context, text string, limit int) ([]Match, error) {
	if s.encoder == nil {
		return nil, apperr.ValidationError("text-to-image search is not configured")
	}
	vec, err := s.encoder.EmbedText(ctx, text)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return s.repo.SearchByVector(ctx, vec, "", limit)
}
