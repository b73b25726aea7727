package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/capsys/decl"
	"github.com/reglet-dev/capsys/schema"
)

func sceneSpec(t *testing.T) *schema.System {
	t.Helper()

	sys := schema.NewSystem(schema.MustNewIdentifier("Scene"))
	sys.AddRequirement(schema.MustNewIdentifier("Named"))

	drawable := schema.NewHandler(schema.MustNewIdentifier("Drawable"))
	drawable.AddFunction(schema.NewFunction(
		schema.MustNewIdentifier("draw_all"),
		schema.MustNewIdentifier("draw"),
	))
	sys.AddHandler(drawable)

	updatable := schema.NewHandler(schema.MustNewIdentifier("Updatable"))
	updatable.AddFunction(schema.NewFunction(
		schema.MustNewIdentifier("update_all"),
		schema.MustNewIdentifier("update"),
		schema.Parameter{
			Name: schema.MustNewIdentifier("dt"),
			Type: schema.MustNewIdentifier("float64"),
		},
	))
	sys.AddHandler(updatable)

	return sys
}

func TestSystem_DeclarationSet(t *testing.T) {
	t.Parallel()

	out, err := System(sceneSpec(t))
	require.NoError(t, err)

	assert.Equal(t, "Scene", out.Name)

	t.Run("object interface", func(t *testing.T) {
		obj := out.Object
		assert.Equal(t, "SceneObject", obj.Name)
		assert.Equal(t, []string{"Named"}, obj.Embeds)

		// Exactly two accessors per handler, read view then write view.
		require.Len(t, obj.Accessors, 4)
		assert.Equal(t, decl.Accessor{Name: "as_Drawable", Handler: "Drawable"}, obj.Accessors[0])
		assert.Equal(t, decl.Accessor{Name: "as_Drawable_mut", Handler: "Drawable", Mutable: true}, obj.Accessors[1])
		assert.Equal(t, decl.Accessor{Name: "as_Updatable", Handler: "Updatable"}, obj.Accessors[2])
		assert.Equal(t, decl.Accessor{Name: "as_Updatable_mut", Handler: "Updatable", Mutable: true}, obj.Accessors[3])
	})

	t.Run("handler interfaces", func(t *testing.T) {
		require.Len(t, out.Handlers, 2)

		assert.Equal(t, "Drawable", out.Handlers[0].Name)
		require.Len(t, out.Handlers[0].Methods, 1)
		assert.Equal(t, "draw", out.Handlers[0].Methods[0].Name)
		assert.Empty(t, out.Handlers[0].Methods[0].Params)

		assert.Equal(t, "Updatable", out.Handlers[1].Name)
		require.Len(t, out.Handlers[1].Methods, 1)
		assert.Equal(t, "update", out.Handlers[1].Methods[0].Name)
		assert.Equal(t, []decl.Param{{Name: "dt", Type: "float64"}}, out.Handlers[1].Methods[0].Params)
	})

	t.Run("container", func(t *testing.T) {
		c := out.Container
		assert.Equal(t, "Scene", c.Name)
		assert.Equal(t, "SceneObject", c.Object)

		// One index cache per handler, declaration order.
		require.Len(t, c.Caches, 2)
		assert.Equal(t, "Drawable", c.Caches[0].Handler)
		assert.Equal(t, "Updatable", c.Caches[1].Handler)

		require.Len(t, c.Ops, 6)
		assert.IsType(t, decl.NewOp{}, c.Ops[0])
		assert.IsType(t, decl.AddOp{}, c.Ops[1])
		assert.Equal(t, decl.IterateOp{}, c.Ops[2])
		assert.Equal(t, decl.IterateOp{Mutable: true}, c.Ops[3])

		draw, ok := c.Ops[4].(decl.DispatchOp)
		require.True(t, ok)
		assert.Equal(t, "draw_all", draw.Name)
		assert.Equal(t, "Drawable", draw.Handler)
		assert.Equal(t, "draw", draw.Dest)
		assert.Empty(t, draw.Params)

		update, ok := c.Ops[5].(decl.DispatchOp)
		require.True(t, ok)
		assert.Equal(t, "update_all", update.Name)
		assert.Equal(t, "Updatable", update.Handler)
		assert.Equal(t, "update", update.Dest)
		assert.Equal(t, []decl.Param{{Name: "dt", Type: "float64"}}, update.Params)
	})
}

func TestSystem_Deterministic(t *testing.T) {
	t.Parallel()

	first, err := System(sceneSpec(t))
	require.NoError(t, err)
	second, err := System(sceneSpec(t))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSystem_SchemaErrors(t *testing.T) {
	t.Parallel()

	t.Run("nil spec", func(t *testing.T) {
		t.Parallel()
		_, err := System(nil)
		require.Error(t, err)
	})

	t.Run("duplicate handler name fails synthesis", func(t *testing.T) {
		t.Parallel()
		sys := sceneSpec(t)
		sys.AddHandler(schema.NewHandler(schema.MustNewIdentifier("Drawable")))

		_, err := System(sys)
		require.Error(t, err)

		var dup *schema.DuplicateNameError
		assert.ErrorAs(t, err, &dup)
	})

	t.Run("duplicate function name fails synthesis", func(t *testing.T) {
		t.Parallel()
		sys := sceneSpec(t)
		sys.Handler("Drawable").AddFunction(schema.NewFunction(
			schema.MustNewIdentifier("redraw_all"),
			schema.MustNewIdentifier("draw"),
		))

		_, err := System(sys)
		require.Error(t, err)
	})
}

func TestSystem_NoHandlers(t *testing.T) {
	t.Parallel()

	sys := schema.NewSystem(schema.MustNewIdentifier("Empty"))
	out, err := System(sys)
	require.NoError(t, err)

	assert.Empty(t, out.Handlers)
	assert.Empty(t, out.Object.Accessors)
	assert.Empty(t, out.Container.Caches)
	assert.Len(t, out.Container.Ops, 4)
}
