package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chromadepth-renderer/internal/mesh"
)

func namedDrawable(name string) *Drawable {
	return &Drawable{Name: name, Appearance: NewSurface(mesh.DefaultDiffuse, "")}
}

func TestWalkOrderDeterministic(t *testing.T) {
	s := New()
	s.Root.Children = []*Node{
		{Name: "a", Drawable: namedDrawable("a")},
		{
			Name:     "group",
			Drawable: namedDrawable("b"),
			Children: []*Node{
				{Name: "b1", Drawable: namedDrawable("b1")},
				{Name: "b2", Drawable: namedDrawable("b2")},
			},
		},
		{Name: "c", Drawable: namedDrawable("c")},
	}

	collect := func() []string {
		var names []string
		s.Walk(func(d *Drawable) { names = append(names, d.Name) })
		return names
	}

	want := []string{"a", "b", "b1", "b2", "c"}
	assert.Equal(t, want, collect())
	assert.Equal(t, want, collect(), "second walk yields the same order")
}

func TestWalkSkipsGroupingNodes(t *testing.T) {
	s := New()
	s.Root.Children = []*Node{
		{Name: "empty group", Children: []*Node{
			{Name: "leaf", Drawable: namedDrawable("leaf")},
		}},
	}
	assert.Equal(t, 1, s.DrawableCount())
}

func TestWalkNilScene(t *testing.T) {
	var s *Scene
	called := false
	s.Walk(func(*Drawable) { called = true })
	assert.False(t, called)
}

func TestSwapAppearance(t *testing.T) {
	orig := NewSurface([4]uint8{1, 2, 3, 255}, "skin.tga")
	d := &Drawable{Appearance: orig}

	depth := NewDepthEncoding()
	prev := d.SwapAppearance(depth)

	assert.Same(t, orig, prev)
	assert.Same(t, depth, d.Appearance)

	d.SwapAppearance(prev)
	assert.Same(t, orig, d.Appearance)
}

func TestFromMeshes(t *testing.T) {
	meshes := []mesh.Mesh{
		{Name: "hull", Diffuse: [4]uint8{10, 20, 30, 255}, TexPath: "hull.png"},
		{Name: "mast", Diffuse: mesh.DefaultDiffuse},
	}
	s := FromMeshes(meshes)

	require.Equal(t, 2, s.DrawableCount())

	var ds []*Drawable
	s.Walk(func(d *Drawable) { ds = append(ds, d) })

	assert.Equal(t, "hull", ds[0].Name)
	assert.Equal(t, ShaderSurface, ds[0].Appearance.Shader)
	assert.Equal(t, "hull.png", ds[0].Appearance.Texture)
	assert.Equal(t, [4]uint8{10, 20, 30, 255}, ds[0].Appearance.Diffuse)
	assert.Same(t, &meshes[1], ds[1].Mesh, "drawables reference the loaded meshes")
}

func TestNewDepthEncoding(t *testing.T) {
	assert.Equal(t, ShaderDepth, NewDepthEncoding().Shader)
}
