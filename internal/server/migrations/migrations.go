// Package migrations embeds the goose SQL migrations, one directory per
// dialect: postgres/ for pgx and sqlite/ for modernc.org/sqlite.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

const (
	PostgresDir = "postgres"
	SQLiteDir   = "sqlite"
)
