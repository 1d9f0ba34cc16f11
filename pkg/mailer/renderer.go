package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer turns markdown templates into HTML and plain text. Parsed
// templates and layouts are cached; rendered output is not.
type Renderer struct {
	fs        fs.FS
	md        goldmark.Markdown
	templates map[string]*parsedTemplate
	layouts   map[string]*template.Template
	layoutDir string
	mu        sync.RWMutex
}

type parsedTemplate struct {
	meta *Template
	body *texttemplate.Template
}

// RenderResult is the output of Render.
type RenderResult struct {
	Metadata map[string]any
	HTML     string
	Text     string
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithLayoutDir sets the directory holding HTML layouts. Default "layouts".
func WithLayoutDir(dir string) RendererOption {
	return func(r *Renderer) {
		r.layoutDir = dir
	}
}

// NewRenderer creates a Renderer reading from fsys.
func NewRenderer(fsys fs.FS, opts ...RendererOption) *Renderer {
	r := &Renderer{
		fs:        fsys,
		layoutDir: "layouts",
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify, extension.Table),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		templates: make(map[string]*parsedTemplate),
		layouts:   make(map[string]*template.Template),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render executes the named template for lang, converts it to HTML and wraps
// it in layout. The language specific file wins over the unprefixed one.
func (r *Renderer) Render(lang, layout, name string, data any) (*RenderResult, error) {
	tmpl, err := r.template(lang, name)
	if err != nil {
		return nil, err
	}

	var text bytes.Buffer
	if err := tmpl.body.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	var body bytes.Buffer
	if err := r.md.Convert(text.Bytes(), &body); err != nil {
		return nil, fmt.Errorf("%w: markdown: %v", ErrRenderFailed, err)
	}

	lt, err := r.layout(layout)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := lt.Execute(&out, map[string]any{
		"Content":  template.HTML(body.String()), //nolint:gosec // goldmark output, raw HTML disabled
		"Metadata": tmpl.meta.Metadata,
		"Lang":     lang,
	}); err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, layout, err)
	}

	return &RenderResult{
		Metadata: tmpl.meta.Metadata,
		HTML:     out.String(),
		Text:     text.String(),
	}, nil
}

func (r *Renderer) template(lang, name string) (*parsedTemplate, error) {
	candidates := []string{name}
	if lang != "" {
		candidates = []string{path.Join(lang, name), name}
	}

	for _, p := range candidates {
		r.mu.RLock()
		t, ok := r.templates[p]
		r.mu.RUnlock()
		if ok {
			return t, nil
		}

		t, err := r.parseTemplate(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		if cached, ok := r.templates[p]; ok {
			t = cached
		} else {
			r.templates[p] = t
		}
		r.mu.Unlock()
		return t, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, strings.Join(candidates, ", "))
}

func (r *Renderer) parseTemplate(p string) (*parsedTemplate, error) {
	content, err := fs.ReadFile(r.fs, p)
	if err != nil {
		return nil, err
	}

	meta, err := ParseTemplate(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRenderFailed, p, err)
	}

	body, err := texttemplate.New(p).Funcs(funcs).Parse(meta.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, p, err)
	}

	return &parsedTemplate{meta: meta, body: body}, nil
}

func (r *Renderer) layout(name string) (*template.Template, error) {
	r.mu.RLock()
	lt, ok := r.layouts[name]
	r.mu.RUnlock()
	if ok {
		return lt, nil
	}

	p := path.Join(r.layoutDir, name)
	content, err := fs.ReadFile(r.fs, p)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}

	lt, err = template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, name, err)
	}

	r.mu.Lock()
	if cached, ok := r.layouts[name]; ok {
		lt = cached
	} else {
		r.layouts[name] = lt
	}
	r.mu.Unlock()
	return lt, nil
}
