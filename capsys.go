// Package capsys turns declarative system manifests into generated
// capability-registry source code.
//
// A manifest describes a system: a set of named handlers (capabilities),
// the functions each handler exposes, and the concrete object types bound
// to a subset of those handlers. The generator validates the manifest
// against its JSON Schema, converts it into a schema description,
// synthesizes the abstract registry declarations and renders them with a
// backend emitter.
package capsys

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/reglet-dev/capsys/decl"
	"github.com/reglet-dev/capsys/emit"
	"github.com/reglet-dev/capsys/emit/golang"
	"github.com/reglet-dev/capsys/manifest"
	"github.com/reglet-dev/capsys/registry"
	"github.com/reglet-dev/capsys/synth"
	"github.com/reglet-dev/capsys/validation"
)

// Generator orchestrates the manifest-to-source pipeline.
// Coordinates validation, schema conversion, synthesis and emission.
type Generator struct {
	parser    manifest.Parser
	validator validation.ManifestValidator
	emitter   emit.Emitter
	logger    *slog.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithParser sets the manifest parser.
func WithParser(p manifest.Parser) GeneratorOption {
	return func(g *Generator) { g.parser = p }
}

// WithValidator sets the manifest validator.
func WithValidator(v validation.ManifestValidator) GeneratorOption {
	return func(g *Generator) { g.validator = v }
}

// WithEmitter sets the backend emitter.
func WithEmitter(e emit.Emitter) GeneratorOption {
	return func(g *Generator) { g.emitter = e }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) GeneratorOption {
	return func(g *Generator) { g.logger = l }
}

// NewGenerator creates a generator with the given options. Defaults:
// YAML parser, schema validation against the built-in manifest schema,
// and the Go emitter.
func NewGenerator(opts ...GeneratorOption) (*Generator, error) {
	g := &Generator{
		parser:  manifest.NewYamlParser(),
		emitter: golang.New(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.validator == nil {
		reg, err := registry.NewManifestRegistry()
		if err != nil {
			return nil, fmt.Errorf("building manifest schema registry: %w", err)
		}
		g.validator = validation.NewSchemaValidator(reg)
	}

	return g, nil
}

// Result is the outcome of generating one manifest.
type Result struct {
	// System is the name of the generated system.
	System string

	// Files are the rendered source files.
	Files []emit.File
}

// InvalidManifestError reports manifest schema violations.
type InvalidManifestError struct {
	Errors []string
}

func (e *InvalidManifestError) Error() string {
	return fmt.Sprintf("manifest is invalid: %s", strings.Join(e.Errors, "; "))
}

// Generate is the main use case: it validates, parses and converts one
// manifest document, synthesizes the declaration set and renders it.
func (g *Generator) Generate(ctx context.Context, data []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := g.validator.Validate(data)
	if err != nil {
		return nil, fmt.Errorf("manifest validation failed: %w", err)
	}
	if !res.Valid {
		return nil, &InvalidManifestError{Errors: res.Errors}
	}

	doc, err := g.parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("manifest parsing failed: %w", err)
	}

	sys, err := doc.ToSystem()
	if err != nil {
		return nil, fmt.Errorf("invalid system description: %w", err)
	}

	declSet, err := synth.System(sys)
	if err != nil {
		return nil, fmt.Errorf("synthesis failed: %w", err)
	}

	bindings, err := g.bind(declSet, sys.HandlerNames(), doc.Bindings)
	if err != nil {
		return nil, err
	}

	files, err := g.emitter.Emit(declSet, bindings)
	if err != nil {
		return nil, fmt.Errorf("emission failed: %w", err)
	}

	g.logger.Info("generated system",
		"system", declSet.Name,
		"handlers", len(declSet.Handlers),
		"bindings", len(bindings),
		"files", len(files))

	return &Result{System: declSet.Name, Files: files}, nil
}

func (g *Generator) bind(declSet *decl.System, vocabulary []string, docs []manifest.BindingDoc) ([]*decl.Binding, error) {
	bindings := make([]*decl.Binding, 0, len(docs))
	for _, b := range docs {
		binding, err := synth.Bind(declSet.Object.Name, vocabulary, b.Type, b.Implements)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", b.Type, err)
		}
		bindings = append(bindings, binding)
	}
	return bindings, nil
}
