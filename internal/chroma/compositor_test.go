package chroma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chromadepth-renderer/internal/capture"
)

// depthBuffer builds a W×H buffer with the given per-pixel depth bytes
// (red channel; green/blue/alpha mirror the raster depth pass layout).
func depthBuffer(w, h int, depths []uint8) *capture.DepthBuffer {
	buf := &capture.DepthBuffer{Width: w, Height: h, Pix: make([]byte, w*h*4)}
	for i, d := range depths {
		buf.Pix[i*4] = d
		buf.Pix[i*4+1] = d
		buf.Pix[i*4+2] = d
		buf.Pix[i*4+3] = 255
	}
	return buf
}

func TestCompositeDimensions(t *testing.T) {
	buf := depthBuffer(7, 3, make([]uint8, 21))
	img := (&Compositor{Ramp: NewRamp(NearWarm)}).Composite(buf)
	assert.Equal(t, 7, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())
}

func TestCompositeUniformBuffer(t *testing.T) {
	depths := make([]uint8, 16)
	for i := range depths {
		depths[i] = 200
	}
	buf := depthBuffer(4, 4, depths)

	ramp := NewRamp(NearWarm)
	img := (&Compositor{Ramp: ramp}).Composite(buf)

	want := ramp.Map(200)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, want, img.NRGBAAt(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestCompositePerPixel(t *testing.T) {
	buf := depthBuffer(2, 2, []uint8{0, 85, 170, 255})
	ramp := NewRamp(NearWarm)
	img := (&Compositor{Ramp: ramp}).Composite(buf)

	assert.Equal(t, ramp.Map(0), img.NRGBAAt(0, 0))
	assert.Equal(t, ramp.Map(85), img.NRGBAAt(1, 0))
	assert.Equal(t, ramp.Map(170), img.NRGBAAt(0, 1))
	assert.Equal(t, ramp.Map(255), img.NRGBAAt(1, 1))
}

func TestCompositeParallelMatchesSerial(t *testing.T) {
	w, h := 33, 29
	depths := make([]uint8, w*h)
	for i := range depths {
		depths[i] = uint8((i * 7) % 256)
	}
	buf := depthBuffer(w, h, depths)

	ramp := NewRamp(FarWarm)
	serial := (&Compositor{Ramp: ramp}).Composite(buf)
	parallel := (&Compositor{Ramp: ramp, Workers: 8}).Composite(buf)

	require.Equal(t, serial.Pix, parallel.Pix)
}

func TestCompositeOpaque(t *testing.T) {
	buf := depthBuffer(3, 3, make([]uint8, 9)) // background everywhere
	img := (&Compositor{Ramp: NewRamp(NearWarm)}).Composite(buf)
	for i := 3; i < len(img.Pix); i += 4 {
		assert.EqualValues(t, 255, img.Pix[i])
	}
}
