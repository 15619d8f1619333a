// Package camera builds the fixed viewpoint used for both the shaded and
// depth-only render passes.
package camera

import "chromadepth-renderer/internal/mathutil"

// Default view angles: a three-quarter view slightly from above, so depth
// variation is visible on typical models.
const (
	DefaultYaw   = 30.0
	DefaultPitch = -20.0
	DefaultRoll  = 0.0

	DefaultFOV       = 75.0
	DefaultFillRatio = 0.85
)

// Camera holds the view rotation and projection settings for one render.
type Camera struct {
	View        mathutil.Mat3
	Perspective bool
	FOV         float64 // degrees, used when Perspective is set
	FillRatio   float64 // fraction of the short image axis the model spans
}

// Orbit returns the view rotation for yaw/pitch/roll in degrees:
// Rz(roll) · Rx(pitch) · Ry(yaw).
func Orbit(yaw, pitch, roll float64) mathutil.Mat3 {
	return mathutil.Mat3Mul(
		mathutil.Mat3Mul(
			mathutil.RotZ(mathutil.Deg2Rad(roll)),
			mathutil.RotX(mathutil.Deg2Rad(pitch)),
		),
		mathutil.RotY(mathutil.Deg2Rad(yaw)),
	)
}

// Default returns the reference orthographic camera.
func Default() *Camera {
	return &Camera{
		View:      Orbit(DefaultYaw, DefaultPitch, DefaultRoll),
		FOV:       DefaultFOV,
		FillRatio: DefaultFillRatio,
	}
}
