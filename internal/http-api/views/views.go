// Package views embeds the server rendered HTML pages.
package views

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses every page; templates are addressed by file name.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"yesno": func(v int) string {
			if v != 0 {
				return "yes"
			}
			return "no"
		},
	}).ParseFS(files, "templates/*.html")
}
