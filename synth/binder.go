package synth

import (
	"fmt"

	"github.com/reglet-dev/capsys/decl"
	"github.com/reglet-dev/capsys/schema"
)

// Bind synthesizes the capability-query implementation for one concrete
// object type. vocabulary is the full handler name list of the system, in
// declaration order; implemented is the subset the type actually supports.
//
// For every handler in the vocabulary the binding emits a read and a write
// accessor: present re-typed views when the handler is implemented, absent
// otherwise. The mapping is fixed per type and resolved before any object
// is stored.
func Bind(object string, vocabulary []string, typeName string, implemented []string) (*decl.Binding, error) {
	if object == "" {
		return nil, fmt.Errorf("object interface name is required")
	}
	if _, err := schema.NewIdentifier(typeName); err != nil {
		return nil, fmt.Errorf("invalid type name: %w", err)
	}

	vocab := make(map[string]struct{}, len(vocabulary))
	for _, h := range vocabulary {
		if _, ok := vocab[h]; ok {
			return nil, &schema.DuplicateNameError{Kind: "handler", Name: h, Scope: object}
		}
		vocab[h] = struct{}{}
	}

	supported := make(map[string]struct{}, len(implemented))
	for _, h := range implemented {
		if _, ok := vocab[h]; !ok {
			return nil, fmt.Errorf("type %s implements unknown handler %q", typeName, h)
		}
		supported[h] = struct{}{}
	}

	binding := &decl.Binding{
		TypeName: typeName,
		Object:   object,
	}

	for _, h := range vocabulary {
		_, ok := supported[h]
		binding.Accessors = append(binding.Accessors,
			decl.BoundAccessor{
				Accessor:    decl.Accessor{Name: decl.AccessorName(h, false), Handler: h},
				Implemented: ok,
			},
			decl.BoundAccessor{
				Accessor:    decl.Accessor{Name: decl.AccessorName(h, true), Handler: h, Mutable: true},
				Implemented: ok,
			},
		)
	}

	return binding, nil
}
