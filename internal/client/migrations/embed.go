// Package migrations embeds the goose SQL migrations for the SQL key-value
// backends. Each dialect has its own directory.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// Directories inside Migrations, per goose dialect.
const (
	SQLiteDir   = "sqlite"
	PostgresDir = "postgres"
)
