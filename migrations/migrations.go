// Package migrations — SQL-миграции схемы справочника (goose), встроенные в бинарник.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
