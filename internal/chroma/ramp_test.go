package chroma

import (
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRampExtremes(t *testing.T) {
	near := NewRamp(NearWarm)
	assert.Equal(t, color.NRGBA{R: 255, G: 0, B: 0, A: 255}, near.Map(255), "nearest = red")
	assert.Equal(t, color.NRGBA{R: 128, G: 0, B: 255, A: 255}, near.Map(0), "background = violet")

	far := NewRamp(FarWarm)
	assert.Equal(t, color.NRGBA{R: 255, G: 0, B: 0, A: 255}, far.Map(0))
	assert.Equal(t, color.NRGBA{R: 128, G: 0, B: 255, A: 255}, far.Map(255))
}

func TestRampOpaque(t *testing.T) {
	r := NewRamp(NearWarm)
	for d := 0; d < 256; d++ {
		assert.EqualValues(t, 255, r.Map(uint8(d)).A, "depth %d", d)
	}
}

func TestRampIdempotent(t *testing.T) {
	r := NewRamp(NearWarm)
	for d := 0; d < 256; d++ {
		assert.Equal(t, r.Map(uint8(d)), r.Map(uint8(d)))
	}
}

// hue returns the HSV hue angle of a ramp entry.
func hue(t *testing.T, c color.NRGBA) float64 {
	cc, ok := colorful.MakeColor(c)
	require.True(t, ok)
	h, _, _ := cc.Hsv()
	return h
}

func TestRampHueMonotonic(t *testing.T) {
	far := NewRamp(FarWarm) // hue grows with depth: red 0° → violet 270°
	prev := hue(t, far.Map(0))
	for d := 1; d < 256; d++ {
		h := hue(t, far.Map(uint8(d)))
		assert.GreaterOrEqual(t, h+1e-9, prev, "hue reversal at depth %d", d)
		prev = h
	}

	near := NewRamp(NearWarm)
	prev = hue(t, near.Map(0))
	for d := 1; d < 256; d++ {
		h := hue(t, near.Map(uint8(d)))
		assert.LessOrEqual(t, h-1e-9, prev, "hue reversal at depth %d", d)
		prev = h
	}
}

func TestRampPolarityMirror(t *testing.T) {
	near := NewRamp(NearWarm)
	far := NewRamp(FarWarm)
	for d := 0; d < 256; d++ {
		assert.Equal(t, near.Map(uint8(d)), far.Map(uint8(255-d)), "depth %d", d)
	}
}

func TestParsePolarity(t *testing.T) {
	p, err := ParsePolarity("")
	require.NoError(t, err)
	assert.Equal(t, NearWarm, p)

	p, err = ParsePolarity("far-warm")
	require.NoError(t, err)
	assert.Equal(t, FarWarm, p)

	_, err = ParsePolarity("sideways")
	assert.Error(t, err)
}
