// Package web provides HTTP handlers and templates for the Castcard embed pages.
// A cast is rendered server-side into a self-contained HTML card that can be
// dropped into an iframe.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/rivo/uniseg"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates holds the parsed HTML templates for the embed pages.
type Templates struct {
	templates *template.Template
}

// NewTemplates creates a new Templates instance by parsing all embedded templates.
// webBaseURL is the provider origin used when linking mentions and channels.
func NewTemplates(webBaseURL string) (*Templates, error) {
	funcs := template.FuncMap{
		"linkify": func(text string) template.HTML {
			return Linkify(text, webBaseURL)
		},
		"truncate": Truncate,
	}

	tmpl, err := template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Templates{templates: tmpl}, nil
}

// Render renders a named template with a 200 status.
func (t *Templates) Render(w http.ResponseWriter, name string, data interface{}) error {
	return t.RenderStatus(w, http.StatusOK, name, data)
}

// RenderStatus renders a named template with the given status code.
// Output is buffered so a failed execution never leaves a half-written page.
func (t *Templates) RenderStatus(w http.ResponseWriter, status int, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := t.Execute(&buf, name, data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Execute writes a named template to w without any HTTP framing.
func (t *Templates) Execute(w io.Writer, name string, data interface{}) error {
	tmpl := t.templates.Lookup(name)
	if tmpl == nil {
		return fmt.Errorf("template %q not found", name)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to execute template %q: %w", name, err)
	}
	return nil
}

// Truncate shortens s to at most max user-perceived characters, appending an ellipsis
// when anything was cut. Emoji and combining sequences are never split.
func Truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 {
		return ""
	}
	if uniseg.GraphemeClusterCount(s) <= max {
		return s
	}

	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for n := 0; n < max && g.Next(); n++ {
		b.WriteString(g.Str())
	}
	return strings.TrimSpace(b.String()) + "…"
}
