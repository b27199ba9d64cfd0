package migrations

import "embed"

// MigrationFiles holds the embedded tern migrations applied at startup.
//
//go:embed *.sql
var MigrationFiles embed.FS
