// Package runtime implements the registry contract generated containers
// delegate to.
//
// A Registry owns an append-only sequence of heterogeneous objects and,
// per handler, an index cache: the positions of the objects that reported
// support for that handler at the moment they were added. Broadcast
// dispatch walks a cache instead of the whole population, so its cost is
// proportional to the number of capable objects.
//
// The registry is a single-threaded resource: callers must serialize Add
// and dispatch calls. No operation blocks, suspends or retries.
package runtime

import (
	"fmt"
)

// Handler describes one capability over stored objects of type O. Has is
// the registration-time probe: it reports whether an object's read view
// for the capability is present.
type Handler[O any] struct {
	Name string
	Has  func(O) bool
}

type slot[O any] struct {
	handler Handler[O]
	idxs    []int
}

// Registry owns an insertion-ordered object sequence and one index cache
// per handler. Objects are never removed or reordered; once assigned, a
// position never changes.
type Registry[O any] struct {
	slots   []slot[O]
	byName  map[string]int
	objects []O
}

// New creates an empty registry over the given handlers. Handler order is
// the declaration order: it fixes the probe order used by Add. Duplicate
// handler names are rejected.
func New[O any](handlers ...Handler[O]) (*Registry[O], error) {
	r := &Registry[O]{
		byName: make(map[string]int, len(handlers)),
	}
	for _, h := range handlers {
		if h.Name == "" {
			return nil, fmt.Errorf("handler name cannot be empty")
		}
		if h.Has == nil {
			return nil, fmt.Errorf("handler %q: capability probe is required", h.Name)
		}
		if _, ok := r.byName[h.Name]; ok {
			return nil, fmt.Errorf("duplicate handler name %q", h.Name)
		}
		r.byName[h.Name] = len(r.slots)
		r.slots = append(r.slots, slot[O]{handler: h})
	}
	return r, nil
}

// MustNew creates a registry or panics
func MustNew[O any](handlers ...Handler[O]) *Registry[O] {
	r, err := New(handlers...)
	if err != nil {
		panic(err)
	}
	return r
}

// Add appends an object to the sequence and probes every handler once, in
// declaration order, recording the new position in each cache whose probe
// reports support. This is the only operation that grows the object
// sequence or any index cache.
//
// The cached fact is registration-time only: it is never revalidated, and
// the object's capability set is assumed fixed for its lifetime.
func (r *Registry[O]) Add(obj O) {
	idx := len(r.objects)
	r.objects = append(r.objects, obj)

	for i := range r.slots {
		if r.slots[i].handler.Has(obj) {
			r.slots[i].idxs = append(r.slots[i].idxs, idx)
		}
	}
}

// Len returns the number of stored objects.
func (r *Registry[O]) Len() int {
	return len(r.objects)
}

// Each visits every stored object in insertion order, ignoring capability
// information, until fn returns false. Each call restarts from the first
// object and never mutates the registry.
func (r *Registry[O]) Each(fn func(O) bool) {
	for _, obj := range r.objects {
		if !fn(obj) {
			return
		}
	}
}

// Handlers returns the handler names in declaration order.
func (r *Registry[O]) Handlers() []string {
	names := make([]string, 0, len(r.slots))
	for _, s := range r.slots {
		names = append(names, s.handler.Name)
	}
	return names
}

// Indices returns a copy of the index cache for a handler. The second
// result is false for an unknown handler name.
func (r *Registry[O]) Indices(handler string) ([]int, bool) {
	i, ok := r.byName[handler]
	if !ok {
		return nil, false
	}
	idxs := make([]int, len(r.slots[i].idxs))
	copy(idxs, r.slots[i].idxs)
	return idxs, true
}

// Dispatch broadcasts one handler function: for every cached position of
// the named handler, in stored order (the insertion order among capable
// objects), it obtains the object's write view and invokes call on it.
//
// Dispatching an unknown handler name panics; generated containers only
// dispatch handlers they were constructed with. An absent write view for
// a cached object also panics: the cache records registration-time
// support, so absence means the cache was corrupted, and skipping would
// silently break broadcast semantics. Position lookups stay bounds
// checked; only the capability assumption is unchecked.
func Dispatch[O, H any](r *Registry[O], handler string, view func(O) (H, bool), call func(H)) {
	i, ok := r.byName[handler]
	if !ok {
		panic(fmt.Sprintf("runtime: dispatch on unknown handler %q", handler))
	}

	for _, idx := range r.slots[i].idxs {
		h, ok := view(r.objects[idx])
		if !ok {
			panic(fmt.Sprintf("runtime: object %d lost handler %q after registration, index cache violated", idx, handler))
		}
		call(h)
	}
}
