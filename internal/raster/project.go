package raster

import (
	"math"

	"chromadepth-renderer/internal/camera"
	"chromadepth-renderer/internal/mathutil"
	"chromadepth-renderer/internal/scene"
)

// DepthEncoder quantizes view-space z into the 8-bit depth convention:
// 255 = nearest surface, 1 = farthest surface, 0 reserved for background.
type DepthEncoder struct {
	zMin    float64
	invSpan float64
	flat    bool
}

// NewDepthEncoder builds an encoder for the scene's projected z range.
// A degenerate range (single depth plane) encodes everything as nearest.
func NewDepthEncoder(zMin, zMax float64) DepthEncoder {
	span := zMax - zMin
	if span < 1e-9 {
		return DepthEncoder{flat: true}
	}
	return DepthEncoder{zMin: zMin, invSpan: 1.0 / span}
}

// Encode maps z to a depth byte. Larger z (nearer, per the z-buffer
// convention) maps to larger bytes.
func (e DepthEncoder) Encode(z float64) uint8 {
	if e.flat {
		return 255
	}
	d := 1 + (z-e.zMin)*e.invSpan*254
	if d < 1 {
		d = 1
	}
	if d > 255 {
		d = 255
	}
	return uint8(d + 0.5)
}

// fitBounds computes the view-space bounding box center and the larger of
// the x/y spans across all drawables. ok is false when there is no geometry.
func fitBounds(drawables []*scene.Drawable, view mathutil.Mat3) (center [3]float64, span float64, ok bool) {
	allMin := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	allMax := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	seen := false

	for _, d := range drawables {
		for _, v := range d.Mesh.Verts {
			seen = true
			tv := view.MulVec3(mathutil.Vec3{float64(v[0]), float64(v[1]), float64(v[2])})
			for k := 0; k < 3; k++ {
				if tv[k] < allMin[k] {
					allMin[k] = tv[k]
				}
				if tv[k] > allMax[k] {
					allMax[k] = tv[k]
				}
			}
		}
	}
	if !seen {
		return center, 0, false
	}

	for k := 0; k < 3; k++ {
		center[k] = (allMin[k] + allMax[k]) / 2
	}
	span = allMax[0] - allMin[0]
	if s := allMax[1] - allMin[1]; s > span {
		span = s
	}
	if span < 0.001 {
		span = 0.001
	}
	return center, span, true
}

// projectVerts transforms mesh vertices to screen coordinates.
// Returns px, py, pz slices (screen X, screen Y, view depth).
func projectVerts(verts [][3]float32, view mathutil.Mat3, center [3]float64, scale float64, width, height int, cam *camera.Camera) ([]float64, []float64, []float64) {
	n := len(verts)
	px := make([]float64, n)
	py := make([]float64, n)
	pz := make([]float64, n)

	halfW := float64(width) / 2
	halfH := float64(height) / 2

	// Perspective setup
	usePersp := cam != nil && cam.Perspective
	var perspCamDist, perspZCenter float64
	if usePersp {
		fov := cam.FOV
		if fov <= 0 {
			fov = camera.DefaultFOV
		}
		halfFOV := mathutil.Deg2Rad(fov / 2)

		// z range and xy half-extent from this mesh's transformed verts
		var zMin, zMax, xyMax float64
		zMin = math.Inf(1)
		zMax = math.Inf(-1)
		for i := range verts {
			v := mathutil.Vec3{float64(verts[i][0]), float64(verts[i][1]), float64(verts[i][2])}
			t := view.MulVec3(v)
			if t[2] < zMin {
				zMin = t[2]
			}
			if t[2] > zMax {
				zMax = t[2]
			}
			for k := 0; k < 2; k++ {
				d := math.Abs(t[k] - center[k])
				if d > xyMax {
					xyMax = d
				}
			}
		}
		perspZCenter = (zMin + zMax) / 2
		if xyMax < 0.001 {
			xyMax = 0.001
		}
		perspCamDist = xyMax / math.Tan(halfFOV)
	}

	for i := range verts {
		v := mathutil.Vec3{float64(verts[i][0]), float64(verts[i][1]), float64(verts[i][2])}
		t := view.MulVec3(v)

		if usePersp {
			zOff := t[2] - perspZCenter
			depth := math.Max(perspCamDist-zOff, 0.1)
			factor := perspCamDist / depth
			t[0] *= factor
			t[1] *= factor
		}

		px[i] = (t[0]-center[0])*scale + halfW
		py[i] = -(t[1]-center[1])*scale + halfH
		pz[i] = t[2]
	}

	return px, py, pz
}
