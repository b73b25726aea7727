// Package manifest defines the declarative document format describing a
// system and the concrete types bound to it, and the tooling to discover,
// parse and convert manifests into schema descriptions.
package manifest

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/reglet-dev/capsys/schema"
)

// SupportedSchemaVersions is the constraint manifest schema_version values
// are checked against.
const SupportedSchemaVersions = "^1.0"

// Document is the root of a system manifest.
type Document struct {
	// SchemaVersion declares the manifest format version (semver).
	SchemaVersion string `yaml:"schema_version" json:"schema_version" jsonschema:"required"`

	// System is the registry name.
	System string `yaml:"system" json:"system" jsonschema:"required"`

	// Requirements lists capability interfaces every stored object must
	// already satisfy.
	Requirements []string `yaml:"requirements,omitempty" json:"requirements,omitempty"`

	// Handlers declares the system's capabilities. Order is significant.
	Handlers []HandlerDoc `yaml:"handlers,omitempty" json:"handlers,omitempty"`

	// Bindings declares concrete object types and the handler subset each
	// one implements.
	Bindings []BindingDoc `yaml:"bindings,omitempty" json:"bindings,omitempty"`
}

// HandlerDoc declares one capability.
type HandlerDoc struct {
	Name      string        `yaml:"name" json:"name" jsonschema:"required"`
	Functions []FunctionDoc `yaml:"functions,omitempty" json:"functions,omitempty"`
}

// FunctionDoc declares one handler function.
type FunctionDoc struct {
	// Signal is the broadcast method name on the generated container.
	Signal string `yaml:"signal" json:"signal" jsonschema:"required"`

	// Method is the per-object method the signal fans out to. Defaults to
	// the signal name.
	Method string `yaml:"method,omitempty" json:"method,omitempty"`

	Params []ParamDoc `yaml:"params,omitempty" json:"params,omitempty"`
}

// ParamDoc declares one function parameter.
type ParamDoc struct {
	Name string `yaml:"name" json:"name" jsonschema:"required"`
	Type string `yaml:"type" json:"type" jsonschema:"required"`
}

// BindingDoc declares one concrete object type.
type BindingDoc struct {
	Type       string   `yaml:"type" json:"type" jsonschema:"required"`
	Implements []string `yaml:"implements,omitempty" json:"implements,omitempty"`
}

// CheckSchemaVersion verifies the document's schema_version parses as
// semver and satisfies SupportedSchemaVersions.
func (d *Document) CheckSchemaVersion() error {
	if d.SchemaVersion == "" {
		return fmt.Errorf("schema_version is required")
	}

	v, err := semver.NewVersion(d.SchemaVersion)
	if err != nil {
		return fmt.Errorf("invalid schema_version %q: %w", d.SchemaVersion, err)
	}

	c, err := semver.NewConstraint(SupportedSchemaVersions)
	if err != nil {
		return fmt.Errorf("invalid version constraint: %w", err)
	}

	if !c.Check(v) {
		return fmt.Errorf("unsupported schema_version %q (supported: %s)", d.SchemaVersion, SupportedSchemaVersions)
	}
	return nil
}

// ToSystem converts the document into a validated system description.
func (d *Document) ToSystem() (*schema.System, error) {
	if err := d.CheckSchemaVersion(); err != nil {
		return nil, err
	}

	name, err := schema.NewIdentifier(d.System)
	if err != nil {
		return nil, fmt.Errorf("invalid system name: %w", err)
	}
	sys := schema.NewSystem(name)

	for _, req := range d.Requirements {
		id, err := schema.NewIdentifier(req)
		if err != nil {
			return nil, fmt.Errorf("invalid requirement: %w", err)
		}
		sys.AddRequirement(id)
	}

	for _, hd := range d.Handlers {
		h, err := hd.toHandler()
		if err != nil {
			return nil, err
		}
		sys.AddHandler(h)
	}

	if err := sys.Validate(); err != nil {
		return nil, err
	}
	return sys, nil
}

func (hd HandlerDoc) toHandler() (*schema.Handler, error) {
	name, err := schema.NewIdentifier(hd.Name)
	if err != nil {
		return nil, fmt.Errorf("invalid handler name: %w", err)
	}
	h := schema.NewHandler(name)

	for _, fd := range hd.Functions {
		source, err := schema.NewIdentifier(fd.Signal)
		if err != nil {
			return nil, fmt.Errorf("handler %q: invalid signal name: %w", hd.Name, err)
		}

		method := fd.Method
		if method == "" {
			method = fd.Signal
		}
		dest, err := schema.NewIdentifier(method)
		if err != nil {
			return nil, fmt.Errorf("handler %q: invalid method name: %w", hd.Name, err)
		}

		params := make([]schema.Parameter, 0, len(fd.Params))
		for _, pd := range fd.Params {
			pname, err := schema.NewIdentifier(pd.Name)
			if err != nil {
				return nil, fmt.Errorf("handler %q: invalid parameter name: %w", hd.Name, err)
			}
			ptype, err := schema.NewIdentifier(pd.Type)
			if err != nil {
				return nil, fmt.Errorf("handler %q: invalid parameter type: %w", hd.Name, err)
			}
			params = append(params, schema.Parameter{Name: pname, Type: ptype})
		}

		h.AddFunction(schema.NewFunction(source, dest, params...))
	}

	return h, nil
}
