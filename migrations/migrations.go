// Package migrations embeds the schema files for each supported database.
package migrations

import (
	"embed"
	"io/fs"
)

// Directory names inside FS.
const (
	SQLiteDir   = "sqlite"
	PostgresDir = "postgres"
)

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

// Sub returns the migrations for one database.
func Sub(dir string) (fs.FS, error) {
	return fs.Sub(FS, dir)
}
