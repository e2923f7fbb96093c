// Package migrations carries the SQL schema migrations applied by the migration runner.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
