// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public site.
// Every page template is paired with the base layout, which carries the
// sidebar, flash messages, and the language switcher.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"habari/internal/flash"
	"habari/internal/i18n"
	"habari/internal/middleware"
	"habari/internal/models"
	"habari/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData holds all data passed to page templates.
type PageData struct {
	Title     string          // Page title for the <title> tag
	Lang      string          // Active language code ("en" or "sw")
	Path      string          // Request path, used as the language-switch "next" target
	Session   *session.Data   // Current session (nil for guests)
	CSRFToken string          // CSRF token for forms
	Flashes   []flash.Message // One-time notification messages
	Sidebar   *models.Sidebar // Category summaries + popular posts (nil on auth pages)
	Data      map[string]any  // Page-specific data
}

// Renderer handles template parsing and execution for site pages.
type Renderer struct {
	templates map[string]*template.Template
}

// funcMap holds the helpers available inside every template.
var funcMap = template.FuncMap{
	// t translates a message key into the given language.
	"t": i18n.T,
	// ctaLabel returns the localized call-to-action button label.
	"ctaLabel": i18n.CTALabel,
	// locales lists the supported language codes for the switcher.
	"locales": func() []string { return i18n.Supported },
	// langURL builds a locale-prefixed site path.
	"langURL": func(lang, path string) string { return "/" + lang + path },
	// deref safely dereferences a string pointer for use in templates.
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	// derefFloat safely dereferences a float pointer for use in templates.
	"derefFloat": func(f *float64) float64 {
		if f == nil {
			return 0
		}
		return *f
	},
	// safeHTML marks pre-rendered HTML (markdown output) as safe.
	"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	// fmtDate formats a timestamp for display.
	"fmtDate": func(t time.Time) string { return t.Format("Jan 2, 2006") },
}

// New creates a Renderer by parsing all page templates from the embedded
// filesystem. Each page template is paired with the base layout.
func New() (*Renderer, error) {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	r := &Renderer{templates: make(map[string]*template.Template)}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" {
			continue
		}

		// Strip .html extension for the template name.
		tmplName := name[:len(name)-len(".html")]

		tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(
			templateFS, "templates/base.html", "templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}

		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Page renders a full site page. Session, CSRF token, and pending flash
// messages are injected from the request so handlers only supply the
// page-specific fields.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.render(w, r, name, http.StatusOK, data)
}

// NotFound renders the localized 404 page with the correct status code.
func (rn *Renderer) NotFound(w http.ResponseWriter, r *http.Request) {
	rn.render(w, r, "not_found", http.StatusNotFound, &PageData{Title: "Not Found"})
}

// render executes the named page template into a buffer before writing
// the response, so a mid-template error never produces a half-written
// page and cookies are always set before the status line.
func (rn *Renderer) render(w http.ResponseWriter, r *http.Request, name string, status int, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	if data.Lang == "" {
		data.Lang = middleware.LangFromCtx(r.Context())
	}
	if data.Path == "" {
		data.Path = r.URL.Path
	}
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}
	data.CSRFToken = middleware.GetCSRFToken(r)
	data.Flashes = flash.Pop(w, r)

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
