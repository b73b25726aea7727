// Package validation validates manifest documents against their JSON
// Schemas before they are parsed into schema descriptions.
package validation

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/reglet-dev/capsys/registry"
)

// SchemaValidator implements ManifestValidator using the schemas from a
// registry. Compiled schemas are cached per document kind.
type SchemaValidator struct {
	registry registry.SchemaRegistry
	kind     string

	mu       sync.Mutex
	compiled *jsonschema.Schema
}

// NewSchemaValidator creates a validator for system manifest documents.
func NewSchemaValidator(reg registry.SchemaRegistry) *SchemaValidator {
	return &SchemaValidator{
		registry: reg,
		kind:     registry.KindSystem,
	}
}

// Validate checks raw manifest YAML against the registered schema.
// Schema violations are reported in the result; only infrastructure
// failures (unreadable document, missing or broken schema) return an
// error.
func (v *SchemaValidator) Validate(data []byte) (*ValidationResult, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding manifest YAML: %w", err)
	}

	// Round-trip through JSON so the instance uses the value shapes the
	// schema validator expects.
	normalized, err := normalize(doc)
	if err != nil {
		return nil, err
	}

	sch, err := v.schema()
	if err != nil {
		return nil, err
	}

	if err := sch.Validate(normalized); err != nil {
		var ve *jsonschema.ValidationError
		if ok := asValidationError(err, &ve); ok {
			return &ValidationResult{Valid: false, Errors: flatten(ve)}, nil
		}
		return &ValidationResult{Valid: false, Errors: []string{err.Error()}}, nil
	}

	return &ValidationResult{Valid: true}, nil
}

func (v *SchemaValidator) schema() (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.compiled != nil {
		return v.compiled, nil
	}

	raw, ok := v.registry.GetSchema(v.kind)
	if !ok {
		return nil, fmt.Errorf("no schema registered for document kind %q", v.kind)
	}

	compiler := jsonschema.NewCompiler()
	resource := v.kind + ".schema.json"
	if err := compiler.AddResource(resource, strings.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("loading schema for %q: %w", v.kind, err)
	}

	sch, err := compiler.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("compiling schema for %q: %w", v.kind, err)
	}

	v.compiled = sch
	return sch, nil
}

func normalize(doc interface{}) (interface{}, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("normalizing manifest document: %w", err)
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("normalizing manifest document: %w", err)
	}
	return out, nil
}

func asValidationError(err error, target **jsonschema.ValidationError) bool {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return false
	}
	*target = ve
	return true
}

// flatten collects the leaf causes of a validation error as readable
// "location: message" strings.
func flatten(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return []string{fmt.Sprintf("%s: %s", loc, ve.Message)}
	}

	var out []string
	for _, cause := range ve.Causes {
		out = append(out, flatten(cause)...)
	}
	return out
}
