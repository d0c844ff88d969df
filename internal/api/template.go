package api

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template renders the embedded page templates for echo.
type Template struct {
	templates *template.Template
}

func NewTemplate() *Template {
	return &Template{templates: template.Must(template.ParseFS(templateFS, "templates/*.html"))}
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}
