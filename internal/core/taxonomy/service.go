// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package taxonomy

import (
	"context"

	"github.com/inkwell-platform/contentcore/internal/platform/cache"
	"github.com/inkwell-platform/contentcore/internal/platform/constants"
)

// Service exposes taxonomy reads through the 60s listing cache, and admin
// writes that invalidate it.
type Service struct {
	store *Store
	cache *cache.Cache
}

// NewService builds a Service.
func NewService(store *Store, c *cache.Cache) *Service {
	return &Service{store: store, cache: c}
}

// Tags returns every tag entry, cached.
func (s *Service) Tags(ctx context.Context) ([]Entry, error) {
	return cache.GetOrLoad(ctx, s.cache, constants.RedisPrefixTaxonomy+"tags", func(ctx context.Context) ([]Entry, error) {
		return s.store.ListByKind(ctx, KindTag)
	})
}

// Categories returns every category entry, cached.
func (s *Service) Categories(ctx context.Context) ([]Entry, error) {
	return cache.GetOrLoad(ctx, s.cache, constants.RedisPrefixTaxonomy+"categories", func(ctx context.Context) ([]Entry, error) {
		return s.store.ListByKind(ctx, KindCategory)
	})
}

// Upsert creates or replaces a taxonomy entry and invalidates its listing cache.
func (s *Service) Upsert(ctx context.Context, e Entry) error {
	if err := s.store.Upsert(ctx, e); err != nil {
		return err
	}
	return s.cache.Invalidate(ctx, listingKey(e.Kind))
}

// Delete removes a taxonomy entry and invalidates its listing cache.
func (s *Service) Delete(ctx context.Context, kind Kind, key string) error {
	if err := s.store.Delete(ctx, kind, key); err != nil {
		return err
	}
	return s.cache.Invalidate(ctx, listingKey(kind))
}

// listingKey is the cache key that Tags or Categories reads through for kind.
func listingKey(kind Kind) string {
	if kind == KindCategory {
		return constants.RedisPrefixTaxonomy + "categories"
	}
	return constants.RedisPrefixTaxonomy + "tags"
}
