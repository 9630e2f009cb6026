// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package song

import (
	"context"
	"log/slog"

	"github.com/inkwell-platform/contentcore/internal/platform/validate"
	"github.com/inkwell-platform/contentcore/pkg/uuidv7"
)

const FieldTitle = "title"

// Service orchestrates song CRUD and keyword search.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Get fetches one song by id.
func (s *Service) Get(ctx context.Context, id string) (*Song, error) {
	return s.repo.FindByID(ctx, id)
}

// List pages through the catalogue.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Song, int64, error) {
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

// Upsert creates or replaces a song, assigning an id when absent.
func (s *Service) Upsert(ctx context.Context, song *Song) error {
	if song.ID == "" {
		song.ID = uuidv7.New()
	}

	v := &validate.Validator{}
	v.Required(FieldTitle, song.Title)
	if err := v.Err(); err != nil {
		return err
	}

	if err := s.repo.Upsert(ctx, song); err != nil {
		return err
	}
	s.logger.Info("song_upserted", slog.String("song_id", song.ID))
	return nil
}

// Delete removes a song.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Search runs FTS keyword search over title/artist/album.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]*Song, error) {
	return s.repo.SearchKeyword(ctx, query, limit)
}
