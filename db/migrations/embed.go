// Package migrations embeds the goose schema so the binary can apply it
// without the source tree.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
