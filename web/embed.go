// Package web embeds the API documentation and provides an HTTP handler
// that serves it under /docs.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed docs
var docsFS embed.FS

// DocsHandler returns an http.Handler that serves the embedded docs.
// Mount it under /docs: GET /docs serves the HTML overview and
// GET /docs/openapi.json serves the machine-readable description.
func DocsHandler() http.Handler {
	subFS, err := fs.Sub(docsFS, "docs")
	if err != nil {
		panic("web: failed to create sub filesystem: " + err.Error())
	}
	return http.StripPrefix("/docs", http.FileServer(http.FS(subFS)))
}
