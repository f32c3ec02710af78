package migrations

import "embed"

// FS contains embedded SQLite migrations for booking storage.
//
//go:embed *.sql
var FS embed.FS
