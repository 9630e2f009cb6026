// Copyright (c) 2026 Inkwell Platform. All rights reserved.

// Package planner classifies which index path a query took and records the
// decision. It never changes query semantics — a search still executes the
// same way regardless of what the planner reports — it only narrates the
// choice for telemetry and exposes the fallback table a caller should
// follow when a specialized index comes up empty or errors.
package planner

import (
	"context"
	"log/slog"
	"time"
)

// PathKind names the physical access path a query took.
type PathKind string

const (
	PathFTSIndex      PathKind = "fts_index"
	PathVectorIndex   PathKind = "vector_index"
	PathScanFallback  PathKind = "scan_fallback"
	PathIDFilterScan  PathKind = "id_filter_scan"
	PathAggregateScan PathKind = "aggregate_scan"
)

// Decision records one query's classification plus its observed cost.
type Decision struct {
	Query      string
	Table      string
	Path       PathKind
	RowCount   int
	Elapsed    time.Duration
	FellBack   bool
	FallbackOf PathKind
}

// Planner logs index-path decisions for search telemetry.
type Planner struct {
	logger *slog.Logger
}

// New builds a Planner.
func New(logger *slog.Logger) *Planner {
	return &Planner{logger: logger}
}

// Observe times fn, classifies the result under the given primary path, and
// logs the decision. fn returns the row count it produced; Observe returns
// that count, the elapsed time and fn's error. Retrying under a fallback
// path is left to the caller.
func (p *Planner) Observe(ctx context.Context, table string, query string, path PathKind, fn func() (int, error)) (int, time.Duration, error) {
	start := time.Now()
	n, err := fn()
	elapsed := time.Since(start)

	p.log(Decision{Query: query, Table: table, Path: path, RowCount: n, Elapsed: elapsed}, err)
	return n, elapsed, err
}

// RecordFallback logs a decision that fell back from primary to a secondary
// path, e.g. FTS yielding zero rows and the engine retrying with a weighted
// scan.
func (p *Planner) RecordFallback(table, query string, from, to PathKind, rowCount int, elapsed time.Duration) {
	p.log(Decision{Query: query, Table: table, Path: to, RowCount: rowCount, Elapsed: elapsed, FellBack: true, FallbackOf: from}, nil)
}

func (p *Planner) log(d Decision, err error) {
	attrs := []any{
		slog.String("table", d.Table),
		slog.String("path", string(d.Path)),
		slog.Int("row_count", d.RowCount),
		slog.Duration("elapsed", d.Elapsed),
	}
	if d.FellBack {
		attrs = append(attrs, slog.String("fallback_of", string(d.FallbackOf)))
	}
	if d.Query != "" {
		attrs = append(attrs, slog.String("query", d.Query))
	}
	if err != nil {
		p.logger.Warn("search_index_path_error", append(attrs, slog.Any("error", err))...)
		return
	}
	p.logger.Info("search_index_path", attrs...)
}

// FallbackFor reports the documented fallback path for a given primary
// path and query family, per the fixed fallback table:
//
//	keyword search:   fts_index       -> scan_fallback
//	semantic search:  vector_index    -> vector_index (other language)
//	related articles: vector_index    -> (none; empty result)
func FallbackFor(primary PathKind) (PathKind, bool) {
	switch primary {
	case PathFTSIndex:
		return PathScanFallback, true
	case PathVectorIndex:
		return PathVectorIndex, true
	default:
		return "", false
	}
}
