package sqlite

import (
	_ "embed"
)

// Embedded client-side SQL migrations (SQLite).
//
//go:embed migrations/001_init.sql
var initDDL string

func initialDDL() string { return initDDL }
