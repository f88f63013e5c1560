// Package assets provides the embedded mobile web page.
package assets

import (
	"embed"
)

// EmbeddedFiles contains the embedded web UI assets.
//
//go:embed web
var EmbeddedFiles embed.FS
