// Package migrations holds the schema of the import history database.
// Files are applied in name order; *.down.sql files are never run automatically.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
