package raster

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chromadepth-renderer/internal/camera"
	"chromadepth-renderer/internal/mathutil"
	"chromadepth-renderer/internal/mesh"
	"chromadepth-renderer/internal/scene"
)

// quadAt builds two triangles spanning [-half,half]² in x,y at constant z.
func quadAt(z, half float32) *mesh.Mesh {
	return &mesh.Mesh{
		Verts: [][3]float32{
			{-half, -half, z}, {half, -half, z}, {half, half, z}, {-half, half, z},
		},
		Tris: []mesh.Triangle{
			{V: [3]int{0, 1, 2}, T: [3]int{-1, -1, -1}},
			{V: [3]int{0, 2, 3}, T: [3]int{-1, -1, -1}},
		},
		Diffuse: mesh.DefaultDiffuse,
	}
}

func depthScene(meshes ...*mesh.Mesh) *scene.Scene {
	s := scene.New()
	for _, m := range meshes {
		s.Root.Children = append(s.Root.Children, &scene.Node{
			Drawable: &scene.Drawable{Mesh: m, Appearance: scene.NewDepthEncoding()},
		})
	}
	return s
}

func frontal() *camera.Camera {
	return &camera.Camera{View: mathutil.Mat3Identity(), FillRatio: 1}
}

func TestRenderEmptyScene(t *testing.T) {
	fb := Render(scene.New(), camera.Default(), 8, 8, nil)
	require.Len(t, fb.Color, 8*8*4)
	for _, b := range fb.Color {
		assert.EqualValues(t, 0, b)
	}
}

func TestRenderDepthOrdering(t *testing.T) {
	// Big far quad behind a small near quad.
	far := quadAt(0, 1)
	near := quadAt(0.5, 0.25)
	fb := Render(depthScene(far, near), frontal(), 32, 32, nil)

	centerIdx := (16*32 + 16) * 4
	cornerIdx := (2*32 + 2) * 4
	centerDepth := fb.Color[centerIdx]
	cornerDepth := fb.Color[cornerIdx]

	assert.EqualValues(t, 255, centerDepth, "near surface gets the top depth byte")
	assert.EqualValues(t, 1, cornerDepth, "far surface gets the bottom depth byte")
	assert.EqualValues(t, 255, fb.Color[centerIdx+3], "alpha opaque on covered pixels")
}

func TestRenderDepthFlatScene(t *testing.T) {
	fb := Render(depthScene(quadAt(0, 1)), frontal(), 8, 8, nil)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			i := (y*8 + x) * 4
			assert.EqualValues(t, 255, fb.Color[i], "pixel (%d,%d)", x, y)
		}
	}
}

func TestRenderDepthChannelsMirrored(t *testing.T) {
	fb := Render(depthScene(quadAt(0, 1), quadAt(1, 0.5)), frontal(), 16, 16, nil)
	for i := 0; i < len(fb.Color); i += 4 {
		if fb.Color[i+3] == 0 {
			continue // background
		}
		assert.Equal(t, fb.Color[i], fb.Color[i+1])
		assert.Equal(t, fb.Color[i], fb.Color[i+2])
	}
}

func TestRenderDeterministic(t *testing.T) {
	s := depthScene(quadAt(0, 1), quadAt(0.3, 0.6), quadAt(0.7, 0.2))
	a := Render(s, camera.Default(), 24, 24, nil)
	b := Render(s, camera.Default(), 24, 24, nil)
	assert.True(t, bytes.Equal(a.Color, b.Color))
}

func TestRenderShadedWritesColor(t *testing.T) {
	s := scene.New()
	s.Root.Children = append(s.Root.Children, &scene.Node{
		Drawable: &scene.Drawable{
			Mesh:       quadAt(0, 1),
			Appearance: scene.NewSurface([4]uint8{200, 80, 40, 255}, ""),
		},
	})
	fb := Render(s, frontal(), 8, 8, nil)

	i := (4*8 + 4) * 4
	assert.NotEqualValues(t, 0, fb.Color[i+3], "covered pixel is opaque")
	// Flat shading holds one color across the flat quad.
	j := (2*8 + 5) * 4
	assert.Equal(t, fb.Color[i:i+4], fb.Color[j:j+4])
}

func TestDepthEncoder(t *testing.T) {
	enc := NewDepthEncoder(0, 10)
	assert.EqualValues(t, 1, enc.Encode(0), "farthest")
	assert.EqualValues(t, 255, enc.Encode(10), "nearest")

	mid := enc.Encode(5)
	assert.Greater(t, mid, uint8(1))
	assert.Less(t, mid, uint8(255))

	flat := NewDepthEncoder(3, 3)
	assert.EqualValues(t, 255, flat.Encode(3))
}

func TestFrameBufferInit(t *testing.T) {
	fb := NewFrameBuffer(3, 2)
	assert.Len(t, fb.Color, 24)
	assert.Len(t, fb.ZBuf, 6)
	for _, z := range fb.ZBuf {
		assert.True(t, math.IsInf(z, -1), "z-buffer starts at -inf")
	}
}
