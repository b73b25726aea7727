package registry_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/capsys/registry"
)

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	t.Run("raw schema string", func(t *testing.T) {
		t.Parallel()
		r := registry.NewRegistry()
		require.NoError(t, r.Register("custom", `{"type": "object"}`))

		s, ok := r.GetSchema("custom")
		require.True(t, ok)
		assert.JSONEq(t, `{"type": "object"}`, s)
	})

	t.Run("schema map", func(t *testing.T) {
		t.Parallel()
		r := registry.NewRegistry()
		require.NoError(t, r.Register("custom", map[string]interface{}{"type": "object"}))

		s, ok := r.GetSchema("custom")
		require.True(t, ok)
		assert.JSONEq(t, `{"type": "object"}`, s)
	})

	t.Run("struct reflection", func(t *testing.T) {
		t.Parallel()
		type doc struct {
			Name string `json:"name"`
		}

		r := registry.NewRegistry()
		require.NoError(t, r.Register("doc", &doc{}))

		s, ok := r.GetSchema("doc")
		require.True(t, ok)

		var parsed map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(s), &parsed))
		assert.Contains(t, parsed, "properties")
	})

	t.Run("duplicate kind rejected", func(t *testing.T) {
		t.Parallel()
		r := registry.NewRegistry()
		require.NoError(t, r.Register("doc", `{}`))
		require.Error(t, r.Register("doc", `{}`))
	})

	t.Run("empty kind rejected", func(t *testing.T) {
		t.Parallel()
		r := registry.NewRegistry()
		require.Error(t, r.Register("", `{}`))
	})
}

func TestRegistry_List(t *testing.T) {
	t.Parallel()

	r := registry.NewRegistry()
	require.NoError(t, r.Register("b", `{}`))
	require.NoError(t, r.Register("a", `{}`))

	assert.Equal(t, []string{"a", "b"}, r.List())
}

func TestNewManifestRegistry(t *testing.T) {
	t.Parallel()

	r, err := registry.NewManifestRegistry()
	require.NoError(t, err)

	s, ok := r.GetSchema(registry.KindSystem)
	require.True(t, ok)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &parsed))

	props, ok := parsed["properties"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, props, "schema_version")
	assert.Contains(t, props, "system")
	assert.Contains(t, props, "handlers")
	assert.Contains(t, props, "bindings")
}
