package chroma

import (
	"image"
	"sync"

	"chromadepth-renderer/internal/capture"
)

// Compositor turns a raw depth buffer into a chromadepth image by applying
// the ramp per pixel. It has no rendering side effects and is deterministic
// for identical input.
type Compositor struct {
	Ramp    *Ramp
	Workers int // >1 splits rows across goroutines; output is identical
}

// Composite maps every depth sample through the ramp. The output has the
// buffer's dimensions and is fully opaque.
func (c *Compositor) Composite(buf *capture.DepthBuffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, buf.Width, buf.Height))

	workers := c.Workers
	if workers > buf.Height {
		workers = buf.Height
	}
	if workers <= 1 {
		c.compositeRows(buf, img, 0, buf.Height)
		return img
	}

	// Rows have no data dependency: split into bands.
	var wg sync.WaitGroup
	band := (buf.Height + workers - 1) / workers
	for y0 := 0; y0 < buf.Height; y0 += band {
		y1 := y0 + band
		if y1 > buf.Height {
			y1 = buf.Height
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			c.compositeRows(buf, img, y0, y1)
		}(y0, y1)
	}
	wg.Wait()

	return img
}

func (c *Compositor) compositeRows(buf *capture.DepthBuffer, img *image.NRGBA, y0, y1 int) {
	for y := y0; y < y1; y++ {
		src := y * buf.Width * 4
		dst := y * img.Stride
		for x := 0; x < buf.Width; x++ {
			col := c.Ramp.lut[buf.Pix[src]]
			img.Pix[dst] = col.R
			img.Pix[dst+1] = col.G
			img.Pix[dst+2] = col.B
			img.Pix[dst+3] = 255
			src += 4
			dst += 4
		}
	}
}
