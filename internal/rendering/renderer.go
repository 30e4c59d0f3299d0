// Package rendering fills the markdown templates of an application with static and generated fields.
//
// Templates are Go text/template files. Bare placeholders such as {{ ABSENDER_VORNAME }}
// are accepted and rewritten to {{.ABSENDER_VORNAME}} before parsing. Missing keys render empty.
package rendering

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"text/template"

	"github.com/jonathan/bewerbung-generator/internal/config"
)

// Document templates
const (
	Anschreiben = "anschreiben.md"
	Lebenslauf  = "lebenslauf.md"
	Anlagen     = "anlagen.md"
)

// Documents lists the templates rendered for every provider folder
var Documents = []string{Anschreiben, Lebenslauf, Anlagen}

// Template sources
const (
	SourceCustom   = "custom"
	SourceEmbedded = "embedded"
)

//go:embed templates/*.md
var embedded embed.FS

var (
	barePlaceholder = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)
	fieldRef        = regexp.MustCompile(`\.([A-Za-z_][A-Za-z0-9_]*)`)
)

// keywords of text/template that look like bare variables
var keywords = map[string]bool{
	"end": true, "else": true, "break": true, "continue": true,
	"nil": true, "true": true, "false": true,
}

type source struct {
	name string
	fsys fs.FS
}

// Renderer looks templates up in the user template directory first, then in the embedded defaults.
type Renderer struct {
	sources []source
}

// TemplateInfo describes one available template
type TemplateInfo struct {
	Name      string   `json:"name"`
	Source    string   `json:"source"`
	Variables []string `json:"variables"`
	Global    []string `json:"global_variables"`
	Dynamic   []string `json:"dynamic_variables"`
	Missing   []string `json:"missing"`
}

// NewRenderer creates a renderer for templateDir. The directory does not need to exist.
func NewRenderer(templateDir string) *Renderer {
	return NewRendererFS(os.DirFS(templateDir))
}

// NewRendererFS creates a renderer reading custom templates from fsys
func NewRendererFS(fsys fs.FS) *Renderer {
	defaults, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(fmt.Sprintf("embedded templates: %v", err))
	}
	return &Renderer{sources: []source{
		{name: SourceCustom, fsys: fsys},
		{name: SourceEmbedded, fsys: defaults},
	}}
}

// Render executes the named template with vars
func (r *Renderer) Render(name string, vars map[string]string) (string, error) {
	text, _, err := r.load(name)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(name).
		Option("missingkey=zero").
		Funcs(template.FuncMap{"escape": EscapeMarkdown}).
		Parse(normalize(text))
	if err != nil {
		return "", &TemplateError{
			Message: fmt.Sprintf("failed to parse template: %s", name),
			Cause:   err,
		}
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, vars); err != nil {
		return "", &RenderError{
			Message: fmt.Sprintf("failed to render %s", name),
			Cause:   err,
		}
	}
	return result.String(), nil
}

// RenderDocument renders one of the document templates for ctx
func (r *Renderer) RenderDocument(name string, ctx RenderContext) (string, error) {
	return r.Render(name, ctx.Vars())
}

// RenderAll renders every document template, keyed by file name
func (r *Renderer) RenderAll(ctx RenderContext) (map[string]string, error) {
	vars := ctx.Vars()
	out := make(map[string]string, len(Documents))
	for _, name := range Documents {
		doc, err := r.Render(name, vars)
		if err != nil {
			return nil, err
		}
		out[name] = doc
	}
	return out, nil
}

// load returns the template text and the source it came from
func (r *Renderer) load(name string) (string, string, error) {
	for _, src := range r.sources {
		data, err := fs.ReadFile(src.fsys, name)
		if err == nil {
			return string(data), src.name, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", "", &TemplateError{
				Message: fmt.Sprintf("failed to read template file: %s", name),
				Cause:   err,
			}
		}
	}
	return "", "", &TemplateError{
		Message: fmt.Sprintf("template file not found: %s", name),
		Cause:   fs.ErrNotExist,
	}
}

// List returns the names of all templates, custom ones shadowing the defaults
func (r *Renderer) List() []string {
	seen := make(map[string]bool)
	var names []string
	for _, src := range r.sources {
		matches, err := fs.Glob(src.fsys, "*.md")
		if err != nil {
			continue
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				names = append(names, m)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Info describes a template and reports global variables that static does not provide
func (r *Renderer) Info(name string, static config.StaticFields) (TemplateInfo, error) {
	text, src, err := r.load(name)
	if err != nil {
		return TemplateInfo{}, err
	}

	info := TemplateInfo{Name: name, Source: src, Variables: Variables(text)}
	for _, v := range info.Variables {
		if strings.ToUpper(v) != v {
			info.Dynamic = append(info.Dynamic, v)
			continue
		}
		info.Global = append(info.Global, v)
		if _, ok := static[v]; !ok && !filledKeys[v] {
			info.Missing = append(info.Missing, v)
		}
	}
	return info, nil
}

// Variables returns the sorted set of variable names used in template text
func Variables(text string) []string {
	set := make(map[string]bool)
	for _, action := range actions(normalize(text)) {
		for _, m := range fieldRef.FindAllStringSubmatch(action, -1) {
			set[m[1]] = true
		}
	}
	vars := make([]string, 0, len(set))
	for v := range set {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	return vars
}

// actions returns the {{ ... }} blocks of text
func actions(text string) []string {
	var out []string
	for {
		start := strings.Index(text, "{{")
		if start < 0 {
			return out
		}
		end := strings.Index(text[start:], "}}")
		if end < 0 {
			return out
		}
		out = append(out, text[start:start+end+2])
		text = text[start+end+2:]
	}
}

// normalize rewrites bare {{ NAME }} placeholders to {{.NAME}}
func normalize(text string) string {
	return barePlaceholder.ReplaceAllStringFunc(text, func(m string) string {
		name := barePlaceholder.FindStringSubmatch(m)[1]
		if keywords[name] {
			return m
		}
		return "{{." + name + "}}"
	})
}

// WriteDefaults copies the embedded templates into dir. Existing files are kept unless overwrite is set.
func WriteDefaults(dir string, overwrite bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create template directory: %w", err)
	}
	names, err := fs.Glob(embedded, "templates/*.md")
	if err != nil {
		return nil, err
	}

	var written []string
	for _, name := range names {
		target := filepath.Join(dir, path.Base(name))
		if _, err := os.Stat(target); err == nil && !overwrite {
			continue
		}
		data, err := embedded.ReadFile(name)
		if err != nil {
			return written, err
		}
		if err := os.WriteFile(target, data, 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", target, err)
		}
		written = append(written, target)
	}
	return written, nil
}
