// Package target abstracts an offscreen render destination behind the
// narrow capability the capture pipeline needs: render a scene, read the
// raw pixels back, release. Keeping this surface small keeps the ramp and
// compositor testable without any real graphics backend.
package target

import (
	"errors"
	"fmt"

	"chromadepth-renderer/internal/camera"
	"chromadepth-renderer/internal/raster"
	"chromadepth-renderer/internal/scene"
	"chromadepth-renderer/internal/texture"
)

// Target is an offscreen render destination.
type Target interface {
	// Size returns the target's width and height in pixels.
	Size() (int, int)
	// Render draws the scene through cam into the target.
	Render(s *scene.Scene, cam *camera.Camera) error
	// ReadPixels returns the raw RGBA bytes (4 per pixel, row-major,
	// top-left origin) of the last render.
	ReadPixels() ([]byte, error)
	// Release frees the target's backing storage. The target is unusable
	// afterwards.
	Release()
}

var errReleased = errors.New("target: released")

// Software is a CPU-rasterized offscreen target.
type Software struct {
	width, height int
	resolver      texture.Resolver
	fb            *raster.FrameBuffer
	released      bool
}

// NewSoftware allocates a software target. The resolver may be nil when no
// textured appearances will be rendered (a depth-only pass never needs one).
func NewSoftware(width, height int, resolver texture.Resolver) (*Software, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("target: invalid size %dx%d", width, height)
	}
	return &Software{width: width, height: height, resolver: resolver}, nil
}

func (t *Software) Size() (int, int) { return t.width, t.height }

func (t *Software) Render(s *scene.Scene, cam *camera.Camera) error {
	if t.released {
		return errReleased
	}
	t.fb = raster.Render(s, cam, t.width, t.height, t.resolver)
	return nil
}

func (t *Software) ReadPixels() ([]byte, error) {
	if t.released {
		return nil, errReleased
	}
	if t.fb == nil {
		return nil, errors.New("target: nothing rendered")
	}
	pix := make([]byte, len(t.fb.Color))
	copy(pix, t.fb.Color)
	return pix, nil
}

// FrameBuffer exposes the last rendered framebuffer, for callers that want
// the shaded image without a byte-level readback.
func (t *Software) FrameBuffer() *raster.FrameBuffer { return t.fb }

func (t *Software) Release() {
	t.fb = nil
	t.released = true
}
