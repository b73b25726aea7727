// Package golang renders abstract registry declarations into Go source.
//
// Generated containers delegate to the runtime package, so the emitted
// code stays small and the registry invariants live in one place.
package golang

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"
	"unicode"

	"github.com/reglet-dev/capsys/decl"
	"github.com/reglet-dev/capsys/emit"
)

// DefaultRuntimeImport is the import path of the registry runtime the
// generated code delegates to.
const DefaultRuntimeImport = "github.com/reglet-dev/capsys/runtime"

type emitterConfig struct {
	pkg           string
	runtimeImport string
}

// Option configures an Emitter.
type Option func(*emitterConfig)

// WithPackage sets the package name of the generated files. Defaults to
// the lowercased system name.
func WithPackage(pkg string) Option {
	return func(c *emitterConfig) {
		c.pkg = pkg
	}
}

// WithRuntimeImport overrides the runtime import path.
func WithRuntimeImport(path string) Option {
	return func(c *emitterConfig) {
		c.runtimeImport = path
	}
}

// Emitter implements emit.Emitter for Go.
type Emitter struct {
	config emitterConfig
}

// New creates a Go emitter.
func New(opts ...Option) *Emitter {
	cfg := emitterConfig{
		runtimeImport: DefaultRuntimeImport,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Emitter{config: cfg}
}

// Emit renders the system declaration file and, when bindings are
// present, one bindings file. All output is gofmt-formatted.
func (e *Emitter) Emit(system *decl.System, bindings []*decl.Binding) ([]emit.File, error) {
	if system == nil {
		return nil, fmt.Errorf("system declarations are required")
	}

	pkg := e.config.pkg
	if pkg == "" {
		pkg = strings.ToLower(system.Name)
	}

	files := make([]emit.File, 0, 2)

	src, err := render(systemTemplate, newSystemView(system, pkg, e.config.runtimeImport))
	if err != nil {
		return nil, fmt.Errorf("rendering system %s: %w", system.Name, err)
	}
	files = append(files, emit.File{
		Path:    fileName(system.Name, ""),
		Content: src,
	})

	if len(bindings) > 0 {
		view, err := newBindingsView(system, bindings, pkg)
		if err != nil {
			return nil, err
		}
		src, err := render(bindingsTemplate, view)
		if err != nil {
			return nil, fmt.Errorf("rendering bindings for %s: %w", system.Name, err)
		}
		files = append(files, emit.File{
			Path:    fileName(system.Name, "_bindings"),
			Content: src,
		})
	}

	return files, nil
}

func render(tmpl *template.Template, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return src, nil
}

func fileName(system, suffix string) string {
	return snake(system) + suffix + "_gen.go"
}

// ExportName derives a Go exported identifier from an abstract name:
// underscores split words, each word is capitalized.
func ExportName(name string) string {
	parts := strings.Split(name, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		r := []rune(p)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}

// AccessorName derives the Go accessor names from an abstract accessor.
func AccessorName(a decl.Accessor) string {
	name := "As" + ExportName(a.Handler)
	if a.Mutable {
		name += "Mut"
	}
	return name
}

func snake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func receiverName(typeName string) string {
	r := []rune(typeName)
	return string(unicode.ToLower(r[0]))
}

func paramList(params []decl.Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, p.Name+" "+p.Type)
	}
	return strings.Join(parts, ", ")
}

func argList(params []decl.Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, p.Name)
	}
	return strings.Join(parts, ", ")
}
