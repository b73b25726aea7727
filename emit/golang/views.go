package golang

import (
	"fmt"

	"github.com/reglet-dev/capsys/decl"
)

// View models are precomputed so the templates stay declarative.

type systemView struct {
	Package       string
	RuntimeImport string
	System        string
	Object        objectView
	Handlers      []handlerView
	Probes        []probeView
	HasIterate    bool
	HasIterateMut bool
	Dispatches    []dispatchView
}

type objectView struct {
	Name      string
	Embeds    []string
	Accessors []accessorView
}

type accessorView struct {
	Name    string
	Handler string
}

type handlerView struct {
	Name    string
	Methods []methodView
}

type methodView struct {
	Name   string
	Params string
}

// probeView drives one handler registration in the generated constructor:
// the abstract handler name keys the index cache, the read accessor is
// the registration-time capability probe.
type probeView struct {
	Handler  string
	Accessor string
}

type dispatchView struct {
	Name     string
	Handler  string
	HandlerT string
	Accessor string
	Dest     string
	Params   string
	Args     string
}

func newSystemView(system *decl.System, pkg, runtimeImport string) systemView {
	view := systemView{
		Package:       pkg,
		RuntimeImport: runtimeImport,
		System:        ExportName(system.Name),
	}

	view.Object = objectView{
		Name:   ExportName(system.Object.Name),
		Embeds: system.Object.Embeds,
	}
	for _, acc := range system.Object.Accessors {
		view.Object.Accessors = append(view.Object.Accessors, accessorView{
			Name:    AccessorName(acc),
			Handler: ExportName(acc.Handler),
		})
	}

	for _, h := range system.Handlers {
		hv := handlerView{Name: ExportName(h.Name)}
		for _, m := range h.Methods {
			hv.Methods = append(hv.Methods, methodView{
				Name:   ExportName(m.Name),
				Params: paramList(m.Params),
			})
		}
		view.Handlers = append(view.Handlers, hv)
	}

	for _, cache := range system.Container.Caches {
		view.Probes = append(view.Probes, probeView{
			Handler:  cache.Handler,
			Accessor: AccessorName(decl.Accessor{Handler: cache.Handler}),
		})
	}

	for _, op := range system.Container.Ops {
		switch o := op.(type) {
		case decl.IterateOp:
			if o.Mutable {
				view.HasIterateMut = true
			} else {
				view.HasIterate = true
			}
		case decl.DispatchOp:
			view.Dispatches = append(view.Dispatches, dispatchView{
				Name:     ExportName(o.Name),
				Handler:  o.Handler,
				HandlerT: ExportName(o.Handler),
				Accessor: AccessorName(decl.Accessor{Handler: o.Handler, Mutable: true}),
				Dest:     ExportName(o.Dest),
				Params:   paramList(o.Params),
				Args:     argList(o.Params),
			})
		}
	}

	return view
}

type bindingsView struct {
	Package  string
	Bindings []bindingView
}

type bindingView struct {
	TypeName  string
	Receiver  string
	Accessors []boundAccessorView
}

type boundAccessorView struct {
	Name        string
	Handler     string
	Implemented bool
}

func newBindingsView(system *decl.System, bindings []*decl.Binding, pkg string) (bindingsView, error) {
	view := bindingsView{Package: pkg}

	for _, b := range bindings {
		if b.Object != system.Object.Name {
			return bindingsView{}, fmt.Errorf("binding %s targets object interface %q, system declares %q",
				b.TypeName, b.Object, system.Object.Name)
		}

		bv := bindingView{
			TypeName: b.TypeName,
			Receiver: receiverName(b.TypeName),
		}
		for _, acc := range b.Accessors {
			bv.Accessors = append(bv.Accessors, boundAccessorView{
				Name:        AccessorName(acc.Accessor),
				Handler:     ExportName(acc.Handler),
				Implemented: acc.Implemented,
			})
		}
		view.Bindings = append(view.Bindings, bv)
	}

	return view, nil
}
