package schema

import (
	"fmt"
)

// Parameter describes one argument of a handler function.
type Parameter struct {
	// Name is the argument name as it appears in generated signatures.
	Name Identifier

	// Type is the semantic type of the argument.
	Type Identifier
}

// Function describes one operation a handler exposes.
//
// Source is the name of the broadcast method on the generated container;
// Dest is the name the handler interface declares and concrete objects
// implement. They may differ, so the container-level method can be named
// independently of the per-object method it fans out to.
type Function struct {
	Source Identifier
	Dest   Identifier
	Params []Parameter
}

// NewFunction creates a function with the given source and dest names.
func NewFunction(source, dest Identifier, params ...Parameter) *Function {
	return &Function{
		Source: source,
		Dest:   dest,
		Params: params,
	}
}

// Handler describes one capability: a named, ordered set of functions.
// Order is significant for declaration order, not dispatch semantics.
type Handler struct {
	Name      Identifier
	Functions []*Function
}

// NewHandler creates an empty handler.
func NewHandler(name Identifier) *Handler {
	return &Handler{Name: name}
}

// AddFunction appends a function to the handler.
func (h *Handler) AddFunction(fn *Function) {
	h.Functions = append(h.Functions, fn)
}

// Validate checks handler invariants: function dest names must be unique
// within the handler.
func (h *Handler) Validate() error {
	if h.Name.IsEmpty() {
		return fmt.Errorf("handler name cannot be empty")
	}
	seen := make(map[string]struct{}, len(h.Functions))
	for _, fn := range h.Functions {
		if fn.Source.IsEmpty() || fn.Dest.IsEmpty() {
			return fmt.Errorf("handler %q: function names cannot be empty", h.Name)
		}
		if _, ok := seen[fn.Dest.String()]; ok {
			return &DuplicateNameError{Kind: "function", Name: fn.Dest.String(), Scope: h.Name.String()}
		}
		seen[fn.Dest.String()] = struct{}{}
	}
	return nil
}

// System is the whole registry description: a name, the prerequisite
// capabilities every stored object must already satisfy, and an ordered
// list of handlers.
//
// A System is accumulated incrementally and is expected to be immutable
// once handed to synthesis.
type System struct {
	Name         Identifier
	Requirements []Identifier
	Handlers     []*Handler
}

// NewSystem creates an empty system description.
func NewSystem(name Identifier) *System {
	return &System{Name: name}
}

// AddRequirement appends a prerequisite capability name. Adding the same
// requirement twice is a no-op (set semantics, insertion order preserved).
func (s *System) AddRequirement(req Identifier) {
	for _, r := range s.Requirements {
		if r.Equals(req) {
			return
		}
	}
	s.Requirements = append(s.Requirements, req)
}

// AddHandler appends a handler to the system.
func (s *System) AddHandler(h *Handler) {
	s.Handlers = append(s.Handlers, h)
}

// Handler returns the handler with the given name, or nil.
func (s *System) Handler(name string) *Handler {
	for _, h := range s.Handlers {
		if h.Name.String() == name {
			return h
		}
	}
	return nil
}

// HandlerNames returns the handler names in declaration order.
func (s *System) HandlerNames() []string {
	names := make([]string, 0, len(s.Handlers))
	for _, h := range s.Handlers {
		names = append(names, h.Name.String())
	}
	return names
}

// Validate checks system invariants: a non-empty name, unique handler
// names, and valid handlers. A description failing validation is
// ill-formed and must be rejected by synthesis.
func (s *System) Validate() error {
	if s.Name.IsEmpty() {
		return fmt.Errorf("system name cannot be empty")
	}
	seen := make(map[string]struct{}, len(s.Handlers))
	for _, h := range s.Handlers {
		if _, ok := seen[h.Name.String()]; ok {
			return &DuplicateNameError{Kind: "handler", Name: h.Name.String(), Scope: s.Name.String()}
		}
		seen[h.Name.String()] = struct{}{}

		if err := h.Validate(); err != nil {
			return fmt.Errorf("system %q: %w", s.Name, err)
		}
	}
	return nil
}

// DuplicateNameError reports a duplicate handler or function name.
type DuplicateNameError struct {
	Kind  string // "handler" or "function"
	Name  string
	Scope string // enclosing system or handler name
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate %s name %q in %q", e.Kind, e.Name, e.Scope)
}
