// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package image

import "context"

// Repository is the persistence boundary the service depends on.
type Repository interface {
	Upsert(ctx context.Context, img *Image) error
	FindByID(ctx context.Context, id string) (*Image, error)
	FindByFilename(ctx context.Context, filename string) (*Image, error)
	List(ctx context.Context, limit, offset int) ([]*Image, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error

	// SearchByVector runs an ANN lookup against the image vector column,
	// excluding excludeID (the query image itself, when searching by image).
	SearchByVector(ctx context.Context, query []float32, excludeID string, limit int) ([]Match, error)
}

// Match is one ANN search hit, carrying the observed cosine distance.
type Match struct {
	Image    *Image
	Distance float64
}
