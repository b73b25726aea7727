package golang

import (
	"text/template"
)

var systemTemplate = template.Must(template.New("system").Parse(`// Code generated by capsys. DO NOT EDIT.

package {{.Package}}

import (
	capruntime "{{.RuntimeImport}}"
)
{{range .Handlers}}
// {{.Name}} is a capability: objects implementing it receive the
// corresponding broadcasts.
type {{.Name}} interface {
{{- range .Methods}}
	{{.Name}}({{.Params}})
{{- end}}
}
{{end}}
// {{.Object.Name}} is the capability surface every object stored in a
// {{.System}} must satisfy. Accessors report handler support at
// registration time; the reported set must not change for the object's
// lifetime.
type {{.Object.Name}} interface {
{{- range .Object.Embeds}}
	{{.}}
{{- end}}
{{- range .Object.Accessors}}
	{{.Name}}() ({{.Handler}}, bool)
{{- end}}
}

// {{.System}} owns registered objects and broadcasts handler functions to
// the subset of objects that support each handler.
type {{.System}} struct {
	reg *capruntime.Registry[{{.Object.Name}}]
}

// New{{.System}} creates an empty {{.System}}.
func New{{.System}}() *{{.System}} {
{{- if .Probes}}
	return &{{.System}}{
		reg: capruntime.MustNew(
{{- range .Probes}}
			capruntime.Handler[{{$.Object.Name}}]{
				Name: {{printf "%q" .Handler}},
				Has: func(o {{$.Object.Name}}) bool {
					_, ok := o.{{.Accessor}}()
					return ok
				},
			},
{{- end}}
		),
	}
{{- else}}
	return &{{.System}}{
		reg: capruntime.MustNew[{{.Object.Name}}](),
	}
{{- end}}
}

// Add stores an object and records, per handler, whether it supports the
// handler at this moment. Objects are never removed.
func (s *{{.System}}) Add(obj {{.Object.Name}}) {
	s.reg.Add(obj)
}

// Len returns the number of stored objects.
func (s *{{.System}}) Len() int {
	return s.reg.Len()
}
{{if .HasIterate}}
// Iterate visits every stored object in insertion order until fn returns
// false.
func (s *{{.System}}) Iterate(fn func({{.Object.Name}}) bool) {
	s.reg.Each(fn)
}
{{end}}
{{- if .HasIterateMut}}
// IterateMut visits every stored object in insertion order until fn
// returns false.
func (s *{{.System}}) IterateMut(fn func({{.Object.Name}}) bool) {
	s.reg.Each(fn)
}
{{end}}
{{- range .Dispatches}}
// {{.Name}} invokes {{.Dest}} on every object that supported
// {{.HandlerT}} when it was added, in insertion order.
func (s *{{$.System}}) {{.Name}}({{.Params}}) {
	capruntime.Dispatch(s.reg, {{printf "%q" .Handler}}, {{$.Object.Name}}.{{.Accessor}}, func(h {{.HandlerT}}) {
		h.{{.Dest}}({{.Args}})
	})
}
{{end}}`))

var bindingsTemplate = template.Must(template.New("bindings").Parse(`// Code generated by capsys. DO NOT EDIT.

package {{.Package}}
{{range .Bindings}}
{{- $b := .}}
{{- range .Accessors}}
func ({{$b.Receiver}} *{{$b.TypeName}}) {{.Name}}() ({{.Handler}}, bool) {
{{- if .Implemented}}
	return {{$b.Receiver}}, true
{{- else}}
	return nil, false
{{- end}}
}
{{end}}
{{- end}}`))
