// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package song

import "context"

// Repository is the persistence boundary the service depends on.
type Repository interface {
	Upsert(ctx context.Context, s *Song) error
	FindByID(ctx context.Context, id string) (*Song, error)
	List(ctx context.Context, limit, offset int) ([]*Song, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
	SearchKeyword(ctx context.Context, query string, limit int) ([]*Song, error)
}
