package template_engine

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
	"text/template"

	"github.com/tristendillon/easyroutes/core/logger"
	"github.com/tristendillon/easyroutes/core/writer"
)

//go:embed templates
var TemplateFS embed.FS

// JSX uses {{ }} for inline style objects, so templates use [[ ]].
const (
	LeftDelim  = "[["
	RightDelim = "]]"
)

type TemplateRef struct {
	Path string
}

var TEMPLATES = struct {
	REACT struct {
		COMPONENT TemplateRef
		APP       TemplateRef
		MAIN      TemplateRef
	}
	SCAFFOLD struct {
		INDEX_HTML  TemplateRef
		VITE_CONFIG TemplateRef
		ROUTES_YAML TemplateRef
	}
}{}

func init() {
	TEMPLATES.REACT.COMPONENT = TemplateRef{Path: "react/component.jsx.tmpl"}
	TEMPLATES.REACT.APP = TemplateRef{Path: "react/app.jsx.tmpl"}
	TEMPLATES.REACT.MAIN = TemplateRef{Path: "react/main.jsx.tmpl"}
	TEMPLATES.SCAFFOLD.INDEX_HTML = TemplateRef{Path: "scaffold/index.html.tmpl"}
	TEMPLATES.SCAFFOLD.VITE_CONFIG = TemplateRef{Path: "scaffold/vite.config.js.tmpl"}
	TEMPLATES.SCAFFOLD.ROUTES_YAML = TemplateRef{Path: "scaffold/routes.yaml.tmpl"}
}

// TemplateEngine parses each embedded template once and reuses it.
type TemplateEngine struct {
	mu     sync.Mutex
	parsed map[string]*template.Template
}

func NewTemplateEngine() *TemplateEngine {
	return &TemplateEngine{parsed: make(map[string]*template.Template)}
}

func (te *TemplateEngine) lookup(templateRef TemplateRef) (*template.Template, error) {
	te.mu.Lock()
	defer te.mu.Unlock()

	if tmpl, ok := te.parsed[templateRef.Path]; ok {
		return tmpl, nil
	}

	templatePath := path.Join("templates", templateRef.Path)
	content, err := TemplateFS.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file %s: %w", templatePath, err)
	}

	tmpl, err := template.New(path.Base(templateRef.Path)).
		Delims(LeftDelim, RightDelim).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", templateRef.Path, err)
	}
	te.parsed[templateRef.Path] = tmpl
	return tmpl, nil
}

// Render executes an embedded template and returns its output.
func (te *TemplateEngine) Render(templateRef TemplateRef, data interface{}) ([]byte, error) {
	tmpl, err := te.lookup(templateRef)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", templateRef.Path, err)
	}
	return buf.Bytes(), nil
}

// GenerateFile renders templateRef into outputPath on fsys, replacing any
// existing content.
func (te *TemplateEngine) GenerateFile(fsys writer.FileSystem, templateRef TemplateRef, outputPath string, data interface{}) error {
	content, err := te.Render(templateRef, data)
	if err != nil {
		return err
	}

	if err := fsys.WriteFile(outputPath, content); err != nil {
		return fmt.Errorf("failed to create output file %s: %w", outputPath, err)
	}

	logger.Debug("Rendered %s -> %s", templateRef.Path, outputPath)
	return nil
}

// ListTemplates returns every embedded template path, relative to templates/.
func ListTemplates() ([]string, error) {
	var paths []string
	err := fs.WalkDir(TemplateFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".tmpl") {
			return nil
		}
		paths = append(paths, strings.TrimPrefix(p, "templates/"))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk templates: %w", err)
	}
	return paths, nil
}
