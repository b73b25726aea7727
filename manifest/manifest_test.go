package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/capsys/manifest"
)

const sceneManifest = `
schema_version: "1.0.0"
system: Scene
requirements:
  - Named
handlers:
  - name: Drawable
    functions:
      - signal: draw_all
        method: draw
  - name: Updatable
    functions:
      - signal: update_all
        method: update
        params:
          - name: dt
            type: float64
bindings:
  - type: Player
    implements: [Drawable, Updatable]
  - type: Wall
    implements: [Drawable]
`

func TestYamlParser_Parse(t *testing.T) {
	t.Parallel()

	doc, err := manifest.NewYamlParser().Parse([]byte(sceneManifest))
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", doc.SchemaVersion)
	assert.Equal(t, "Scene", doc.System)
	assert.Equal(t, []string{"Named"}, doc.Requirements)

	require.Len(t, doc.Handlers, 2)
	assert.Equal(t, "Drawable", doc.Handlers[0].Name)
	require.Len(t, doc.Handlers[1].Functions, 1)
	assert.Equal(t, "update_all", doc.Handlers[1].Functions[0].Signal)
	assert.Equal(t, "update", doc.Handlers[1].Functions[0].Method)
	require.Len(t, doc.Handlers[1].Functions[0].Params, 1)
	assert.Equal(t, "dt", doc.Handlers[1].Functions[0].Params[0].Name)

	require.Len(t, doc.Bindings, 2)
	assert.Equal(t, "Player", doc.Bindings[0].Type)
	assert.Equal(t, []string{"Drawable"}, doc.Bindings[1].Implements)
}

func TestYamlParser_Invalid(t *testing.T) {
	t.Parallel()

	_, err := manifest.NewYamlParser().Parse([]byte("system: [unclosed"))
	require.Error(t, err)
}

func TestJSONParser_Parse(t *testing.T) {
	t.Parallel()

	doc, err := manifest.NewJSONParser().Parse([]byte(`{
		"schema_version": "1.0.0",
		"system": "Scene",
		"handlers": [
			{"name": "Drawable", "functions": [{"signal": "draw_all", "method": "draw"}]}
		],
		"bindings": [{"type": "Player", "implements": ["Drawable"]}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Scene", doc.System)
	require.Len(t, doc.Handlers, 1)
	assert.Equal(t, "draw", doc.Handlers[0].Functions[0].Method)
	require.Len(t, doc.Bindings, 1)
	assert.Equal(t, []string{"Drawable"}, doc.Bindings[0].Implements)
}

func TestJSONParser_Invalid(t *testing.T) {
	t.Parallel()

	_, err := manifest.NewJSONParser().Parse([]byte(`{"system":`))
	require.Error(t, err)
}

func TestDocument_CheckSchemaVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		version string
		wantErr bool
	}{
		{name: "exact", version: "1.0.0"},
		{name: "newer patch", version: "1.0.3"},
		{name: "newer minor", version: "1.2.0"},
		{name: "major bump", version: "2.0.0", wantErr: true},
		{name: "empty", version: "", wantErr: true},
		{name: "garbage", version: "not-a-version", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := &manifest.Document{SchemaVersion: tt.version}
			err := doc.CheckSchemaVersion()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDocument_ToSystem(t *testing.T) {
	t.Parallel()

	t.Run("well formed", func(t *testing.T) {
		t.Parallel()
		doc, err := manifest.NewYamlParser().Parse([]byte(sceneManifest))
		require.NoError(t, err)

		sys, err := doc.ToSystem()
		require.NoError(t, err)

		assert.Equal(t, "Scene", sys.Name.String())
		assert.Equal(t, []string{"Drawable", "Updatable"}, sys.HandlerNames())

		h := sys.Handler("Updatable")
		require.NotNil(t, h)
		require.Len(t, h.Functions, 1)
		assert.Equal(t, "update_all", h.Functions[0].Source.String())
		assert.Equal(t, "update", h.Functions[0].Dest.String())
	})

	t.Run("method defaults to signal", func(t *testing.T) {
		t.Parallel()
		doc := &manifest.Document{
			SchemaVersion: "1.0.0",
			System:        "Scene",
			Handlers: []manifest.HandlerDoc{{
				Name:      "Drawable",
				Functions: []manifest.FunctionDoc{{Signal: "draw"}},
			}},
		}

		sys, err := doc.ToSystem()
		require.NoError(t, err)

		fn := sys.Handler("Drawable").Functions[0]
		assert.Equal(t, "draw", fn.Source.String())
		assert.Equal(t, "draw", fn.Dest.String())
	})

	t.Run("duplicate handler rejected", func(t *testing.T) {
		t.Parallel()
		doc := &manifest.Document{
			SchemaVersion: "1.0.0",
			System:        "Scene",
			Handlers: []manifest.HandlerDoc{
				{Name: "Drawable"},
				{Name: "Drawable"},
			},
		}

		_, err := doc.ToSystem()
		require.Error(t, err)
	})

	t.Run("invalid identifier rejected", func(t *testing.T) {
		t.Parallel()
		doc := &manifest.Document{
			SchemaVersion: "1.0.0",
			System:        "2scene",
		}

		_, err := doc.ToSystem()
		require.Error(t, err)
	})

	t.Run("unsupported schema version rejected", func(t *testing.T) {
		t.Parallel()
		doc := &manifest.Document{
			SchemaVersion: "9.0.0",
			System:        "Scene",
		}

		_, err := doc.ToSystem()
		require.Error(t, err)
	})
}
