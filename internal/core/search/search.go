// Copyright (c) 2026 Inkwell Platform. All rights reserved.

// Package search implements keyword, semantic, and hybrid retrieval over
// the article and song catalogues, plus ANN image search. It sits above
// the column store adapter and the index planner, and never mutates
// content — it is a pure read path.
package search

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-platform/contentcore/internal/core/search/planner"
	"github.com/inkwell-platform/contentcore/internal/platform/embedding"
)

// Mode selects the retrieval strategy.
type Mode string

const (
	ModeKeyword  Mode = "keyword"
	ModeSemantic Mode = "semantic"
	ModeHybrid   Mode = "hybrid"
)

// Query is one article search request.
type Query struct {
	Text     string
	Mode     Mode
	Limit    int
	Offset   int
	Enhanced bool // enhanced (embedding-reranked) highlight vs fast excerpt
	RRFK     int  // hybrid fusion constant; 0 means default (60)
}

// Hit is one scored, highlighted article result.
type Hit struct {
	ArticleID string  `json:"article_id"`
	Title     string  `json:"title"`
	Score     float64 `json:"score"`
	Distance  float64 `json:"distance,omitempty"`
	Highlight string  `json:"highlight"`
}

// defaultRRFK is the Reciprocal Rank Fusion constant per spec §4.3.
const defaultRRFK = 60

const (
	defaultLimit = 20
	maxLimit     = 100
)

func clampLimit(n int) int {
	if n <= 0 {
		return defaultLimit
	}
	if n > maxLimit {
		return maxLimit
	}
	return n
}

// Engine is the top-level search entry point, wired with direct pool access
// for the custom FTS/ANN SQL the generic column store scan doesn't express,
// an embedding backend, and the index planner for telemetry.
type Engine struct {
	db       *pgxpool.Pool
	text     embedding.TextEmbedder
	image    embedding.ImageEmbedder
	planner  *planner.Planner
	logger   *slog.Logger
	hybridK  int
}

// NewEngine builds an Engine.
func NewEngine(db *pgxpool.Pool, text embedding.TextEmbedder, image embedding.ImageEmbedder, pl *planner.Planner, logger *slog.Logger) *Engine {
	return &Engine{db: db, text: text, image: image, planner: pl, logger: logger, hybridK: defaultRRFK}
}
