package tmpl

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
)

//go:embed templates
var files embed.FS

// Templates holds all page templates, keyed by page name.
type Templates struct {
	pages map[string]*template.Template
}

// ExecuteTemplate renders a page template by name.
func (t *Templates) ExecuteTemplate(w io.Writer, name string, data any) error {
	tmpl, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	// Partials are rendered by their define name, pages via layout
	if strings.HasPrefix(name, "partials/") {
		inner := strings.TrimSuffix(path.Base(name), ".html")
		if tmpl.Lookup(inner) != nil {
			return tmpl.ExecuteTemplate(w, inner, data)
		}
		return tmpl.Execute(w, data)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

// Load parses the embedded templates. Each page gets its own clone of the
// shared templates (layout + partials) so {{define "content"}} doesn't collide.
func Load(assetVer string) (*Templates, error) {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub, assetVer)
}

// LoadFS parses templates from fsys, laid out as layout.html, pages at the
// top level and partials under partials/.
func LoadFS(fsys fs.FS, assetVer string) (*Templates, error) {
	funcMap := template.FuncMap{
		// Cache-busting version string for static assets
		"assetVer": func() string { return assetVer },
	}

	base, err := template.New("base").Funcs(funcMap).ParseFS(fsys, "layout.html", "partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse shared templates: %w", err)
	}

	pages := map[string]*template.Template{}
	pageFiles, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("glob page templates: %w", err)
	}
	for _, f := range pageFiles {
		if f == "layout.html" {
			continue
		}
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone base template: %w", err)
		}
		if _, err := clone.ParseFS(fsys, f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		pages[f] = clone
	}

	// Partials can be rendered on their own
	partialFiles, err := fs.Glob(fsys, "partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob partials: %w", err)
	}
	for _, f := range partialFiles {
		t, err := template.New("").Funcs(funcMap).ParseFS(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		pages[f] = t
	}

	return &Templates{pages: pages}, nil
}
