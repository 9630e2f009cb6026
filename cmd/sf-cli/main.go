// Copyright (c) 2026 Inkwell Platform. All rights reserved.

/*
Sf-cli is the administrative command-line surface over the column store
adapter, index planner, and search engine (C1-C3): table lifecycle
(init, describe), read paths (count, query), write paths (update,
delete, upsert), and maintenance (reindex, re-embed, backfill-vectors).

It talks to the same Postgres database the API server uses and takes no
locks the server does not already take — it is meant to be run against a
live deployment by the single trusted operator this system assumes.

Usage:

	sf-cli <command> [flags]

Run `sf-cli --help` for the full command list.
*/
package main

import (
	"fmt"
	"os"

	"github.com/inkwell-platform/contentcore/cmd/sf-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sf-cli:", err)
		os.Exit(1)
	}
}
