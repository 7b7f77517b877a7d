// Package migrations embeds the engine's database schema migrations so the
// server binary can apply them at startup without shipping loose SQL files.
package migrations

import "embed"

// FS holds the goose migration files, ordered by their timestamp prefix.
//
//go:embed *.sql
var FS embed.FS
