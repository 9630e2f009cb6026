// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package article

import (
	"context"
	"log/slog"

	"github.com/inkwell-platform/contentcore/internal/core/taxonomy"
	"github.com/inkwell-platform/contentcore/internal/platform/validate"
	"github.com/inkwell-platform/contentcore/pkg/uuidv7"
)

const (
	FieldTitle = "title"
)

// Service orchestrates article CRUD and vector backfill.
type Service struct {
	repo      Repository
	taxonomy  *taxonomy.Store
	logger    *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, taxonomyStore *taxonomy.Store, logger *slog.Logger) *Service {
	return &Service{repo: repo, taxonomy: taxonomyStore, logger: logger}
}

// Get fetches a single article by id.
func (s *Service) Get(ctx context.Context, id string) (*Article, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns a filtered page of articles.
func (s *Service) List(ctx context.Context, f Filter) ([]*Article, int64, error) {
	rows, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Upsert creates or replaces an article, assigning an id when absent.
func (s *Service) Upsert(ctx context.Context, a *Article) error {
	if a.ID == "" {
		a.ID = uuidv7.New()
	}

	v := &validate.Validator{}
	v.Required(FieldTitle, a.Title)
	if err := v.Err(); err != nil {
		return err
	}

	if err := s.repo.Upsert(ctx, a); err != nil {
		return err
	}
	s.logger.Info("article_upserted", slog.String("article_id", a.ID))
	return nil
}

// Delete removes an article.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// BackfillVector stores a computed embedding for one language column. The
// embedding itself is produced by an external pure-function encoder (see
// internal/platform/embedding); this method only persists the result.
func (s *Service) BackfillVector(ctx context.Context, id, lang string, vec []float32) error {
	return s.repo.BackfillVector(ctx, id, lang, vec)
}

// Tags returns every tag in use, enriched with any taxonomy description.
func (s *Service) Tags(ctx context.Context) ([]taxonomy.Entry, error) {
	return s.enrichedList(ctx, taxonomy.KindTag, s.repo.ListTags)
}

// Categories returns every category in use, enriched with any taxonomy
// description.
func (s *Service) Categories(ctx context.Context) ([]taxonomy.Entry, error) {
	return s.enrichedList(ctx, taxonomy.KindCategory, s.repo.ListCategories)
}

func (s *Service) enrichedList(ctx context.Context, kind taxonomy.Kind, source func(context.Context) ([]string, error)) ([]taxonomy.Entry, error) {
	keys, err := source(ctx)
	if err != nil {
		return nil, err
	}

	descriptions := map[string]string{}
	if entries, err := s.taxonomy.ListByKind(ctx, kind); err == nil {
		for _, e := range entries {
			descriptions[e.Key] = e.Description
		}
	}

	out := make([]taxonomy.Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, taxonomy.Entry{Kind: kind, Key: k, Description: descriptions[k]})
	}
	return out, nil
}
