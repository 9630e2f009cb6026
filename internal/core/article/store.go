// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package article

import "context"

// Repository is the persistence boundary the service depends on.
type Repository interface {
	Upsert(ctx context.Context, a *Article) error
	FindByID(ctx context.Context, id string) (*Article, error)
	List(ctx context.Context, f Filter) ([]*Article, error)
	Count(ctx context.Context, f Filter) (int64, error)
	Delete(ctx context.Context, id string) error
	BackfillVector(ctx context.Context, id, lang string, vec []float32) error
	ListTags(ctx context.Context) ([]string, error)
	ListCategories(ctx context.Context) ([]string, error)
}
