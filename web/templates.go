// Package web holds the embedded HTML for the public pages and the admin
// panel. Templates receive plain data maps from the handlers and own no
// logic of their own.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses every embedded template. Called once at startup.
func Templates() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/*.html")
}
