// Package handler contains the HTTP request handlers. They are thin: parse
// the form, call a service, translate the outcome into a redirect-with-flash
// or a rendered page. Business rules live in internal/service.
package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
)

// pages are the content templates; each one is parsed together with
// base.html so {{define "content"}} blocks can fill the base layout.
var pages = []string{
	"index.html",
	"edit.html",
	"login.html",
	"register.html",
	"groups.html",
	"group.html",
}

// Renderer holds the parsed templates. Parsing happens once at startup —
// a bad template fails the boot, not the first request.
type Renderer struct {
	templates map[string]*template.Template
	logger    *slog.Logger
}

// NewRenderer parses every page template against the shared base layout.
func NewRenderer(templateDir string, logger *slog.Logger) (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pages))
	base := filepath.Join(templateDir, "base.html")

	for _, page := range pages {
		tmpl, err := template.ParseFiles(base, filepath.Join(templateDir, page))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		templates[page] = tmpl
	}

	return &Renderer{templates: templates, logger: logger}, nil
}

// Render executes a page template into the response.
//
// The template runs against a buffer first: once any body byte reaches the
// ResponseWriter the status is locked in, so rendering directly would turn a
// half-failed template into a mangled 200. With the buffer, a failure is a
// clean 500.
func (rd *Renderer) Render(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := rd.templates[page]
	if !ok {
		rd.logger.Error("unknown template", slog.String("page", page))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		rd.logger.Error("failed to render template",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
