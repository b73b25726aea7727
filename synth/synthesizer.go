// Package synth derives abstract registry declarations from a system
// description.
//
// Synthesis is pure and deterministic: the same description always yields
// a structurally identical declaration set, and nothing outside the inputs
// influences the output.
package synth

import (
	"fmt"

	"github.com/reglet-dev/capsys/decl"
	"github.com/reglet-dev/capsys/schema"
)

// ObjectInterfaceName derives the object interface name for a system.
func ObjectInterfaceName(system string) string {
	return system + "Object"
}

// System synthesizes the declaration set for one system description:
// the object interface, one handler interface per handler, and the
// container with its operation set.
//
// A description with duplicate handler or function names is ill-formed
// and fails synthesis rather than producing ambiguous declarations.
func System(spec *schema.System) (*decl.System, error) {
	if spec == nil {
		return nil, fmt.Errorf("system description is required")
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("schema error: %w", err)
	}

	out := &decl.System{
		Name:   spec.Name.String(),
		Object: objectInterface(spec),
	}

	for _, h := range spec.Handlers {
		out.Handlers = append(out.Handlers, handlerInterface(h))
	}

	out.Container = container(spec)
	return out, nil
}

func objectInterface(spec *schema.System) decl.ObjectInterface {
	obj := decl.ObjectInterface{
		Name: ObjectInterfaceName(spec.Name.String()),
	}

	for _, req := range spec.Requirements {
		obj.Embeds = append(obj.Embeds, req.String())
	}

	// Two accessors per handler: read view first, write view second.
	for _, h := range spec.Handlers {
		name := h.Name.String()
		obj.Accessors = append(obj.Accessors,
			decl.Accessor{Name: decl.AccessorName(name, false), Handler: name},
			decl.Accessor{Name: decl.AccessorName(name, true), Handler: name, Mutable: true},
		)
	}

	return obj
}

func handlerInterface(h *schema.Handler) decl.HandlerInterface {
	out := decl.HandlerInterface{Name: h.Name.String()}
	for _, fn := range h.Functions {
		out.Methods = append(out.Methods, decl.Method{
			Name:   fn.Dest.String(),
			Params: params(fn.Params),
		})
	}
	return out
}

func container(spec *schema.System) decl.Container {
	c := decl.Container{
		Name:   spec.Name.String(),
		Object: ObjectInterfaceName(spec.Name.String()),
	}

	// One index cache per handler, declaration order. The cache order is
	// also the probe order used by the add operation.
	for _, h := range spec.Handlers {
		c.Caches = append(c.Caches, decl.IndexCache{Handler: h.Name.String()})
	}

	c.Ops = append(c.Ops,
		decl.NewOp{},
		decl.AddOp{},
		decl.IterateOp{},
		decl.IterateOp{Mutable: true},
	)

	for _, h := range spec.Handlers {
		for _, fn := range h.Functions {
			c.Ops = append(c.Ops, decl.DispatchOp{
				Name:    fn.Source.String(),
				Handler: h.Name.String(),
				Dest:    fn.Dest.String(),
				Params:  params(fn.Params),
			})
		}
	}

	return c
}

func params(in []schema.Parameter) []decl.Param {
	out := make([]decl.Param, 0, len(in))
	for _, p := range in {
		out = append(out, decl.Param{Name: p.Name.String(), Type: p.Type.String()})
	}
	return out
}
