// Package capture runs the depth-only render pass: it swaps every
// drawable's appearance for a shared depth-encoding one, renders once to an
// offscreen target, reads the raw pixels back, and restores the original
// appearances before returning — on every exit path.
package capture

import (
	"errors"
	"fmt"
	"sync"

	"chromadepth-renderer/internal/camera"
	"chromadepth-renderer/internal/scene"
	"chromadepth-renderer/internal/target"
)

var (
	// ErrNoScene is returned when capture is attempted with nothing loaded.
	// A loaded scene with zero drawables is not an error: it captures as
	// all-background.
	ErrNoScene = errors.New("capture: no scene loaded")

	// ErrBackendUnavailable wraps render target and readback failures.
	ErrBackendUnavailable = errors.New("capture: rendering backend unavailable")
)

// RestoreMismatchError reports that the scene's drawable count changed
// between appearance substitution and restoration. The scene's appearance
// state must be assumed inconsistent; callers should reload the model.
type RestoreMismatchError struct {
	Substituted int
	Restored    int
}

func (e *RestoreMismatchError) Error() string {
	return fmt.Sprintf("capture: appearance restore mismatch: substituted %d, restored %d",
		e.Substituted, e.Restored)
}

// DepthBuffer is the raw readback of a depth-only pass: RGBA interleaved,
// row-major, top-left origin. Only the red channel carries depth; the
// other channels are preserved but ignored.
type DepthBuffer struct {
	Width  int
	Height int
	Pix    []byte // len = Width*Height*4
}

// At returns the depth sample at (x, y).
func (b *DepthBuffer) At(x, y int) uint8 {
	return b.Pix[(y*b.Width+x)*4]
}

// Capturer performs depth captures. Captures through one Capturer are
// serialized, so concurrent calls on the same scene cannot interleave the
// substitute/render/restore sequence.
type Capturer struct {
	mu    sync.Mutex
	depth *scene.Appearance // shared depth-encoding appearance
}

// New returns a ready Capturer.
func New() *Capturer {
	return &Capturer{depth: scene.NewDepthEncoding()}
}

// Capture renders s through cam into t as a depth-only pass and returns the
// raw depth buffer. Every drawable's appearance is restored before Capture
// returns, whether the render succeeds or fails.
func (c *Capturer) Capture(t target.Target, s *scene.Scene, cam *camera.Camera) (buf *DepthBuffer, err error) {
	if s == nil {
		return nil, ErrNoScene
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if t == nil {
		return nil, fmt.Errorf("%w: no render target", ErrBackendUnavailable)
	}

	// Record originals in traversal order, substituting as we go.
	var originals []*scene.Appearance
	s.Walk(func(d *scene.Drawable) {
		originals = append(originals, d.SwapAppearance(c.depth))
	})

	// Restoration replays the same traversal, index-aligned. A count
	// mismatch is a defect signal and overrides any render error.
	defer func() {
		restored := 0
		s.Walk(func(d *scene.Drawable) {
			if restored < len(originals) {
				d.Appearance = originals[restored]
			}
			restored++
		})
		if restored != len(originals) {
			buf = nil
			err = &RestoreMismatchError{Substituted: len(originals), Restored: restored}
		}
	}()

	if rerr := t.Render(s, cam); rerr != nil {
		return nil, fmt.Errorf("%w: render: %v", ErrBackendUnavailable, rerr)
	}

	pix, rerr := t.ReadPixels()
	if rerr != nil {
		return nil, fmt.Errorf("%w: readback: %v", ErrBackendUnavailable, rerr)
	}

	w, h := t.Size()
	if len(pix) != w*h*4 {
		return nil, fmt.Errorf("%w: readback returned %d bytes, want %d",
			ErrBackendUnavailable, len(pix), w*h*4)
	}

	return &DepthBuffer{Width: w, Height: h, Pix: pix}, nil
}
