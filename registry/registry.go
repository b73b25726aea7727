// Package registry implements a schema registry for manifest documents.
package registry

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/invopop/jsonschema"

	"github.com/reglet-dev/capsys/manifest"
)

// KindSystem is the document kind for system manifests.
const KindSystem = "system"

// Registry implements SchemaRegistry using in-memory storage.
type Registry struct {
	schemas   map[string]string
	mu        sync.RWMutex
	reflector *jsonschema.Reflector
}

// NewRegistry creates a new schema registry.
func NewRegistry() SchemaRegistry {
	r := &Registry{
		schemas:   make(map[string]string),
		reflector: new(jsonschema.Reflector),
	}

	r.reflector.ExpandedStruct = true

	return r
}

// NewManifestRegistry creates a registry preloaded with the schemas of the
// manifest document kinds the generator understands.
func NewManifestRegistry() (SchemaRegistry, error) {
	r := NewRegistry()
	if err := r.Register(KindSystem, &manifest.Document{}); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds a schema for a document kind.
// model can be a Go struct (to generate schema) or a raw JSON schema string/map.
func (r *Registry) Register(kind string, model interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if kind == "" {
		return fmt.Errorf("document kind cannot be empty")
	}
	if _, exists := r.schemas[kind]; exists {
		return fmt.Errorf("document kind already registered: %s", kind)
	}

	var schemaStr string

	switch v := model.(type) {
	case string:
		schemaStr = v
	case []byte:
		schemaStr = string(v)
	case map[string]interface{}:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal schema map: %w", err)
		}
		schemaStr = string(b)
	default:
		s := r.reflector.Reflect(model)
		b, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal generated schema: %w", err)
		}
		schemaStr = string(b)
	}

	r.schemas[kind] = schemaStr
	return nil
}

// GetSchema retrieves the JSON Schema for a document kind.
func (r *Registry) GetSchema(kind string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[kind]
	return s, ok
}

// List returns all registered document kinds, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.schemas))
	for k := range r.schemas {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
