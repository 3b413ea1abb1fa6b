// Package schemas содержит JSON-схемы форм, встроенные в бинарник.
package schemas

import "embed"

//go:embed forms
var SchemasFS embed.FS
