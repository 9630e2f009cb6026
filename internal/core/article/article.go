// Copyright (c) 2026 Inkwell Platform. All rights reserved.

// Package article stores the long-form reading content served by the
// platform: title, body, ordered tags, and the two bilingual embedding
// vectors the search engine queries against.
package article

import "time"

// Article is one content.article row.
//
// VectorEN and VectorZH may each independently be nil — the search engine
// backfills them asynchronously, and a zero-vector article is still a valid
// article for keyword search.
type Article struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Summary       string    `json:"summary"`
	Content       string    `json:"content"`
	Tags          []string  `json:"tags"`
	Category      string    `json:"category"`
	Author        string    `json:"author"`
	Date          time.Time `json:"date"`
	FeaturedImage string    `json:"featured_image,omitempty"`
	ReadTime      int       `json:"read_time"`
	VectorEN      []float32 `json:"-"`
	VectorZH      []float32 `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasVector reports whether the article carries an embedding for the given
// language column ("en" or "zh").
func (a *Article) HasVector(lang string) bool {
	switch lang {
	case "zh":
		return len(a.VectorZH) > 0
	default:
		return len(a.VectorEN) > 0
	}
}

// Filter narrows a listing query by optional tag/category.
type Filter struct {
	Tag      string
	Category string
	Limit    int
	Offset   int
}
