// Package emit defines the backend boundary: consumers that render
// abstract declaration sets into concrete source text.
package emit

import (
	"github.com/reglet-dev/capsys/decl"
)

// File is one rendered source file.
type File struct {
	// Path is the suggested file name, relative to the output directory.
	Path string

	Content []byte
}

// Emitter renders a synthesized system and its type bindings into
// target-language source files.
type Emitter interface {
	// Emit renders the declaration set and bindings. Output is
	// deterministic: the same inputs always yield identical files.
	Emit(system *decl.System, bindings []*decl.Binding) ([]File, error)
}
