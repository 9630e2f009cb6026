// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package cmd

import "fmt"

// allowedTables is the fixed set of qualified table names sf-cli is allowed
// to touch. Table names are checked against this list before they are
// interpolated into SQL; column identifiers (reindex/re-embed columns,
// --columns, upsert JSON keys) and the filter/set fragments passed by the
// operator are interpolated as given (this is a trusted single-operator
// admin surface over the column store, per spec §4.1/§4.8, not a
// multi-tenant query endpoint).
var allowedTables = map[string]bool{
	"content.article":              true,
	"content.image":                true,
	"content.taxonomy":             true,
	"content.song":                 true,
	"moderation.task":              true,
	"moderation.published":         true,
	"moderation.ai_run":            true,
	"moderation.ai_run_chunk":      true,
	"moderation.audit_log":         true,
	"analytics.article_view":       true,
	"analytics.api_behavior_event": true,
}

func validateTable(table string) error {
	if !allowedTables[table] {
		return fmt.Errorf("unknown table %q (see `sf-cli describe` with no args for the allowed list)", table)
	}
	return nil
}

func sortedTableNames() []string {
	names := make([]string, 0, len(allowedTables))
	for name := range allowedTables {
		names = append(names, name)
	}
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
	return names
}
