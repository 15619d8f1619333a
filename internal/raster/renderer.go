package raster

import (
	"image"
	"math"

	"chromadepth-renderer/internal/camera"
	"chromadepth-renderer/internal/mesh"
	"chromadepth-renderer/internal/scene"
	"chromadepth-renderer/internal/texture"
)

// Render draws every drawable of s through cam into a width×height
// framebuffer. Each drawable's appearance selects the shaded or the
// depth-encoding path, so a depth-only pass is simply a render of a scene
// whose appearances have been swapped.
//
// An empty scene returns a cleared framebuffer (background everywhere).
func Render(s *scene.Scene, cam *camera.Camera, width, height int, resolver texture.Resolver) *FrameBuffer {
	fb := NewFrameBuffer(width, height)

	var drawables []*scene.Drawable
	s.Walk(func(d *scene.Drawable) {
		if d.Mesh != nil && !d.Mesh.IsEmpty() {
			drawables = append(drawables, d)
		}
	})
	if len(drawables) == 0 {
		return fb
	}

	if cam == nil {
		cam = camera.Default()
	}
	view := cam.View

	center, span, ok := fitBounds(drawables, view)
	if !ok {
		return fb
	}

	fill := cam.FillRatio
	if fill <= 0 {
		fill = camera.DefaultFillRatio
	}
	short := width
	if height < short {
		short = height
	}
	scale := fill * float64(short) / span

	// Project everything up front so depth quantization sees the full
	// z range of the scene, not just the mesh being rasterized.
	type projectedMesh struct {
		px, py, pz []float64
	}
	projected := make([]projectedMesh, len(drawables))
	zMin, zMax := math.Inf(1), math.Inf(-1)
	for i, d := range drawables {
		px, py, pz := projectVerts(d.Mesh.Verts, view, center, scale, width, height, cam)
		projected[i] = projectedMesh{px: px, py: py, pz: pz}
		for _, z := range pz {
			if z < zMin {
				zMin = z
			}
			if z > zMax {
				zMax = z
			}
		}
	}
	enc := NewDepthEncoder(zMin, zMax)

	lc := DefaultLightConfig()
	for i, d := range drawables {
		p := projected[i]
		app := d.Appearance
		if app == nil {
			app = scene.NewSurface(mesh.DefaultDiffuse, "")
		}

		switch app.Shader {
		case scene.ShaderDepth:
			for _, tri := range d.Mesh.Tris {
				RasterizeDepth(fb, p.px, p.py, p.pz, tri.V, enc)
			}
		default:
			var tex *image.NRGBA
			if resolver != nil && app.Texture != "" {
				tex = resolver.Resolve(app.Texture)
			}
			c := app.Diffuse
			for _, tri := range d.Mesh.Tris {
				RasterizeShaded(fb, p.px, p.py, p.pz, d.Mesh.UVs, tri.V, tri.T,
					tex, c[0], c[1], c[2], c[3], &lc)
			}
		}
	}

	return fb
}

// ToImage copies the framebuffer's color plane into an NRGBA image.
func (fb *FrameBuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}
