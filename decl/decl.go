// Package decl defines the abstract declaration set produced by synthesis.
//
// Declarations are language neutral: they describe the shape and behavior
// of a generated registry without committing to concrete source text. A
// backend (see the emit package) renders them into a target language.
package decl

// Param is one parameter of a generated method.
type Param struct {
	Name string
	Type string
}

// Method is one operation a handler interface declares. Handler methods
// are mutating and return nothing.
type Method struct {
	Name   string
	Params []Param
}

// Accessor is one capability-query method on the object interface. Every
// handler contributes exactly two accessors: a read view and a write view.
type Accessor struct {
	// Name is the mechanically derived accessor name, see AccessorName.
	Name string

	// Handler is the handler interface the accessor re-types the object to.
	Handler string

	// Mutable marks the write-view accessor.
	Mutable bool
}

// AccessorName derives the accessor name for a handler. The derivation is
// mechanical: "as_<handler>" for the read view, "as_<handler>_mut" for the
// write view. Backends may re-case the result for their target language.
func AccessorName(handler string, mutable bool) string {
	if mutable {
		return "as_" + handler + "_mut"
	}
	return "as_" + handler
}

// HandlerInterface declares the operations of one capability.
type HandlerInterface struct {
	Name    string
	Methods []Method
}

// ObjectInterface is the polymorphic surface every stored object must
// satisfy: it embeds the system's prerequisite interfaces and offers the
// optional per-handler views.
type ObjectInterface struct {
	Name      string
	Embeds    []string
	Accessors []Accessor
}

// IndexCache declares the per-handler list of object positions known to
// support that handler. Caches appear in handler declaration order.
type IndexCache struct {
	Handler string
}

// Op is one generated container operation.
type Op interface {
	op()
}

// NewOp constructs an empty container.
type NewOp struct{}

// AddOp appends an owned object to the container, probing every handler's
// read view once and recording the object's position in each cache whose
// view is present. This is the only operation that grows the object
// sequence or any index cache.
type AddOp struct{}

// IterateOp walks the object sequence in insertion order, ignoring
// capability information. The sequence is lazy, finite and restartable.
type IterateOp struct {
	Mutable bool
}

// DispatchOp broadcasts one handler function to every cached object, in
// cache order. The object's write view is obtained per visit; its absence
// is an unrecoverable invariant violation.
type DispatchOp struct {
	// Name is the function's source name, exposed on the container.
	Name string

	// Handler is the capability whose index cache drives the fan-out.
	Handler string

	// Dest is the handler interface method invoked on each write view.
	Dest string

	Params []Param
}

func (NewOp) op()      {}
func (AddOp) op()      {}
func (IterateOp) op()  {}
func (DispatchOp) op() {}

// Container declares the generated registry type: the object sequence,
// one index cache per handler, and the operation set.
type Container struct {
	Name   string
	Object string
	Caches []IndexCache
	Ops    []Op
}

// System is the full declaration set synthesized from one system
// description.
type System struct {
	Name      string
	Object    ObjectInterface
	Handlers  []HandlerInterface
	Container Container
}

// BoundAccessor is one accessor implementation emitted for a concrete
// type: present re-typed view when the type implements the handler,
// absent otherwise.
type BoundAccessor struct {
	Accessor
	Implemented bool
}

// Binding is the capability-query implementation for one concrete object
// type. The implemented subset is fixed per type and never changes at
// runtime.
type Binding struct {
	// TypeName is the concrete type the accessors are emitted for.
	TypeName string

	// Object is the object interface the binding satisfies.
	Object string

	Accessors []BoundAccessor
}
