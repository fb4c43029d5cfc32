// Package migrations встраивает SQL-миграции в бинарник, чтобы migrate
// можно было запускать из любого рабочего каталога.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
