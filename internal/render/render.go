// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render executes the embedded html/template sets for the admin
// back-office and the public site. Admin pages render the whole layout for
// normal navigation and only the "content" block for HTMX requests.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"surafit/internal/handoff"
	"surafit/internal/middleware"
	"surafit/internal/session"
)

//go:embed templates
var templateFS embed.FS

// PageData holds everything passed to a template.
type PageData struct {
	Title     string
	Section   string        // active navigation entry
	Session   *session.Data // principal, nil when anonymous
	CSRFToken string
	Site      Site
	Data      map[string]any
	Flashes   []Flash
}

// Flash is a one-time notification shown above the page content.
type Flash struct {
	Type    string // success, error, warning, info
	Message string
}

// Site carries the business identity shown in layouts and links.
type Site struct {
	Name     string
	WhatsApp handoff.Linker
}

// LeadForm is the state of the public lead form.
type LeadForm struct {
	Name    string
	Phone   string
	Message string
	Error   string
	Success bool
}

// Renderer owns the parsed template sets.
type Renderer struct {
	admin  map[string]*template.Template
	public map[string]*template.Template
	site   Site
}

// standalone admin pages carry their own <html> and skip base.html.
var standalone = map[string]bool{
	"login":      true,
	"2fa_setup":  true,
	"2fa_verify": true,
}

// New parses every page paired with its layout. devMode switches asset
// links between the CDNs and the compiled files under /static.
func New(devMode bool, site Site) (*Renderer, error) {
	funcs := funcMap(devMode)

	admin, err := parseSet(funcs, "templates/admin", nil, standalone)
	if err != nil {
		return nil, err
	}
	public, err := parseSet(funcs, "templates/public", []string{"partials.html"}, nil)
	if err != nil {
		return nil, err
	}
	return &Renderer{admin: admin, public: public, site: site}, nil
}

// parseSet pairs each page in dir with base.html and the shared files.
func parseSet(funcs template.FuncMap, dir string, shared []string, alone map[string]bool) (map[string]*template.Template, error) {
	entries, err := fs.ReadDir(templateFS, dir)
	if err != nil {
		return nil, fmt.Errorf("read templates %s: %w", dir, err)
	}

	skip := map[string]bool{"base.html": true}
	for _, s := range shared {
		skip[s] = true
	}

	set := make(map[string]*template.Template)
	for _, e := range entries {
		file := e.Name()
		if e.IsDir() || skip[file] || path.Ext(file) != ".html" {
			continue
		}
		name := strings.TrimSuffix(file, ".html")

		files := []string{path.Join(dir, file)}
		root := file
		if !alone[name] {
			files = []string{path.Join(dir, "base.html")}
			for _, s := range shared {
				files = append(files, path.Join(dir, s))
			}
			files = append(files, path.Join(dir, file))
			root = "base.html"
		}

		tmpl, err := template.New(root).Funcs(funcs).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parse template %s/%s: %w", dir, file, err)
		}
		set[name] = tmpl
	}
	return set, nil
}

// Page renders an admin page with status 200.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.PageStatus(w, r, http.StatusOK, name, data)
}

// PageStatus renders an admin page. HTMX requests receive only the
// "content" block.
func (rn *Renderer) PageStatus(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	tmpl, ok := rn.admin[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}
	rn.inject(r, data)

	block := "base.html"
	switch {
	case middleware.IsHTMX(r):
		block = "content"
	case standalone[name]:
		block = name + ".html"
	}
	write(w, r, status, tmpl, block, data)
}

// Fragment renders one named block of an admin template, used for HTMX
// swaps smaller than the page content.
func (rn *Renderer) Fragment(w http.ResponseWriter, r *http.Request, status int, name, block string, data *PageData) {
	tmpl, ok := rn.admin[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}
	rn.inject(r, data)
	write(w, r, status, tmpl, block, data)
}

// Public renders a full public page into memory so the caller can cache it.
func (rn *Renderer) Public(r *http.Request, name string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.public[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}
	rn.inject(r, data)

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return nil, fmt.Errorf("execute %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// PublicFragment renders one block of a public template, e.g. the lead form
// after an HTMX submit.
func (rn *Renderer) PublicFragment(w http.ResponseWriter, r *http.Request, status int, name, block string, data *PageData) {
	tmpl, ok := rn.public[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}
	rn.inject(r, data)
	write(w, r, status, tmpl, block, data)
}

func (rn *Renderer) inject(r *http.Request, data *PageData) {
	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}
	if data.Site.Name == "" {
		data.Site = rn.site
	}
	if data.Data == nil {
		data.Data = map[string]any{}
	}
}

// write buffers the output so a template error still yields a clean 500.
func write(w http.ResponseWriter, r *http.Request, status int, tmpl *template.Template, block string, data *PageData) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, block, data); err != nil {
		slog.Error("template execution failed",
			"template", tmpl.Name(), "block", block, "error", err,
			"request_id", middleware.RequestIDFromCtx(r.Context()))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
