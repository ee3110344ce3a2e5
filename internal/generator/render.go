package generator

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"text/template"
)

// Renderer handles template parsing and rendering with caching.
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex // Protect cache for concurrent access
}

// NewRenderer creates a renderer with the built-in helper functions.
func NewRenderer() *Renderer {
	return &Renderer{
		funcMap: defaultFuncMap(),
		cache:   make(map[string]*template.Template),
	}
}

// RenderFS renders a template from a filesystem, usually an embed.FS.
func (r *Renderer) RenderFS(fsys fs.FS, path string, data any) ([]byte, error) {
	return r.render("fs:"+path, data, func() (string, error) {
		b, err := fs.ReadFile(fsys, path)
		if err != nil {
			return "", fmt.Errorf("failed to read template from fs '%s': %w", path, err)
		}
		return string(b), nil
	})
}

// RenderFile renders a template from a file path (template overrides).
func (r *Renderer) RenderFile(path string, data any) ([]byte, error) {
	return r.render("file:"+path, data, func() (string, error) {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read template file '%s': %w", path, err)
		}
		return string(b), nil
	})
}

func (r *Renderer) render(key string, data any, load func() (string, error)) ([]byte, error) {
	r.mu.RLock()
	tmpl, ok := r.cache[key]
	r.mu.RUnlock()

	if !ok {
		text, err := load()
		if err != nil {
			return nil, err
		}
		name := key[strings.IndexByte(key, ':')+1:]
		tmpl, err = template.New(name).Funcs(r.funcMap).Option("missingkey=error").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
		}

		r.mu.Lock()
		r.cache[key] = tmpl
		r.mu.Unlock()
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"join": strings.Join,
	}
}
