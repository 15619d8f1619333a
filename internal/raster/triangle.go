package raster

import (
	"image"
	"math"

	"chromadepth-renderer/internal/mathutil"
)

// triBounds clips a triangle's bounding box to the framebuffer and reports
// the barycentric setup. ok is false for degenerate or fully-clipped
// triangles.
type triSetup struct {
	minX, maxX, minY, maxY int
	invDet                 float64
	dy12, dx21, dy20, dx02 float64
}

func setupTriangle(fb *FrameBuffer, x0, y0, x1, y1, x2, y2 float64) (triSetup, bool) {
	var ts triSetup

	ts.minX = int(math.Min(math.Min(x0, x1), x2))
	ts.maxX = int(math.Max(math.Max(x0, x1), x2)) + 1
	ts.minY = int(math.Min(math.Min(y0, y1), y2))
	ts.maxY = int(math.Max(math.Max(y0, y1), y2)) + 1

	if ts.minX < 0 {
		ts.minX = 0
	}
	if ts.maxX >= fb.Width {
		ts.maxX = fb.Width - 1
	}
	if ts.minY < 0 {
		ts.minY = 0
	}
	if ts.maxY >= fb.Height {
		ts.maxY = fb.Height - 1
	}
	if ts.minX > ts.maxX || ts.minY > ts.maxY {
		return ts, false
	}

	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return ts, false
	}
	ts.invDet = 1.0 / det

	ts.dy12 = y1 - y2
	ts.dx21 = x2 - x1
	ts.dy20 = y2 - y0
	ts.dx02 = x0 - x2
	return ts, true
}

// RasterizeShaded rasterizes one triangle with texture mapping, z-buffer,
// flat shading, and ACES tone mapping.
//
// This is the HOT PATH — designed for zero allocation in the inner loop.
func RasterizeShaded(
	fb *FrameBuffer,
	px, py, pz []float64,
	uvs [][2]float32,
	vi [3]int, ti [3]int,
	tex *image.NRGBA,
	defaultR, defaultG, defaultB, defaultA uint8,
	lc *LightConfig,
) {
	nv := len(px)
	nuv := len(uvs)

	for _, i := range vi {
		if i < 0 || i >= nv {
			return
		}
	}

	x0, y0, z0 := px[vi[0]], py[vi[0]], pz[vi[0]]
	x1, y1, z1 := px[vi[1]], py[vi[1]], pz[vi[1]]
	x2, y2, z2 := px[vi[2]], py[vi[2]], pz[vi[2]]

	hasUV := tex != nil
	for _, i := range ti {
		if i < 0 || i >= nuv {
			hasUV = false
			break
		}
	}

	var u0, v0uv, u1, v1uv, u2, v2uv float64
	if hasUV {
		u0, v0uv = float64(uvs[ti[0]][0]), float64(uvs[ti[0]][1])
		u1, v1uv = float64(uvs[ti[1]][0]), float64(uvs[ti[1]][1])
		u2, v2uv = float64(uvs[ti[2]][0]), float64(uvs[ti[2]][1])
	}

	// Face normal for flat shading
	normal := mathutil.Vec3{x1 - x0, y1 - y0, z1 - z0}.
		Cross(mathutil.Vec3{x2 - x0, y2 - y0, z2 - z0})
	if normal.Len() < 1e-8 {
		return
	}
	shade := lc.ComputeShade(normal.Normalize())

	ts, ok := setupTriangle(fb, x0, y0, x1, y1, x2, y2)
	if !ok {
		return
	}

	exposure := lc.Exposure
	invGamma := lc.InvGamma

	// Pixel loop — zero allocations
	for sy := ts.minY; sy <= ts.maxY; sy++ {
		dsy := float64(sy) - y2
		rowOff := sy * fb.Width
		for sx := ts.minX; sx <= ts.maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := (ts.dy12*dsx + ts.dx21*dsy) * ts.invDet
			w1 := (ts.dy20*dsx + ts.dx02*dsy) * ts.invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			var cr, cg, cb, ca uint8
			if hasUV {
				u := w0*u0 + w1*u1 + w2*u2
				v := w0*v0uv + w1*v1uv + w2*v2uv
				cr, cg, cb, ca = SampleTexture(tex, u, v)
			} else {
				cr, cg, cb, ca = defaultR, defaultG, defaultB, defaultA
			}

			// Skip transparent texels
			if ca < 8 {
				continue
			}
			fb.ZBuf[zIdx] = z

			// sRGB decode → linear (LUT)
			lr := srgbToLinear[cr]
			lg := srgbToLinear[cg]
			lb := srgbToLinear[cb]

			// Shading + ACES tone mapping
			tr := ACESTonemap(lr * shade * exposure)
			tg := ACESTonemap(lg * shade * exposure)
			tb := ACESTonemap(lb * shade * exposure)

			// Linear → sRGB encode
			pxIdx := zIdx * 4
			fb.Color[pxIdx] = clamp255(math.Pow(tr, invGamma) * 255)
			fb.Color[pxIdx+1] = clamp255(math.Pow(tg, invGamma) * 255)
			fb.Color[pxIdx+2] = clamp255(math.Pow(tb, invGamma) * 255)
			fb.Color[pxIdx+3] = ca
		}
	}
}

// RasterizeDepth rasterizes one triangle writing quantized view depth into
// the red channel (green and blue mirror it for direct grayscale export,
// alpha is opaque). Same z-buffer rule as the shaded path.
func RasterizeDepth(
	fb *FrameBuffer,
	px, py, pz []float64,
	vi [3]int,
	enc DepthEncoder,
) {
	nv := len(px)
	for _, i := range vi {
		if i < 0 || i >= nv {
			return
		}
	}

	x0, y0, z0 := px[vi[0]], py[vi[0]], pz[vi[0]]
	x1, y1, z1 := px[vi[1]], py[vi[1]], pz[vi[1]]
	x2, y2, z2 := px[vi[2]], py[vi[2]], pz[vi[2]]

	ts, ok := setupTriangle(fb, x0, y0, x1, y1, x2, y2)
	if !ok {
		return
	}

	for sy := ts.minY; sy <= ts.maxY; sy++ {
		dsy := float64(sy) - y2
		rowOff := sy * fb.Width
		for sx := ts.minX; sx <= ts.maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := (ts.dy12*dsx + ts.dx21*dsy) * ts.invDet
			w1 := (ts.dy20*dsx + ts.dx02*dsy) * ts.invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}
			fb.ZBuf[zIdx] = z

			d := enc.Encode(z)
			pxIdx := zIdx * 4
			fb.Color[pxIdx] = d
			fb.Color[pxIdx+1] = d
			fb.Color[pxIdx+2] = d
			fb.Color[pxIdx+3] = 255
		}
	}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
