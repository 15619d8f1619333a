// Package chroma maps 8-bit depth samples onto a spectral hue ramp and
// composites depth buffers into displayable images.
package chroma

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Polarity selects which end of the spectrum the nearest surfaces get.
type Polarity int

const (
	// NearWarm is the chromadepth convention: near = red, far = violet.
	NearWarm Polarity = iota
	// FarWarm reverses the ramp.
	FarWarm
)

// ParsePolarity converts the config/CLI spelling of a polarity.
func ParsePolarity(s string) (Polarity, error) {
	switch s {
	case "", "near-warm":
		return NearWarm, nil
	case "far-warm":
		return FarWarm, nil
	default:
		return NearWarm, fmt.Errorf("chroma: unknown polarity %q", s)
	}
}

// spectrum lists the ramp keyframes from the warm to the cool extreme,
// evenly spaced. Hue increases monotonically across the sequence
// (0° → 270°), so blending adjacent keyframes in HSV keeps the full ramp
// hue-monotonic.
var spectrum = []colorful.Color{
	{R: 1, G: 0, B: 0},   // red
	{R: 1, G: 0.5, B: 0}, // orange
	{R: 1, G: 1, B: 0},   // yellow
	{R: 0, G: 1, B: 0},   // green
	{R: 0, G: 1, B: 1},   // cyan
	{R: 0, G: 0, B: 1},   // blue
	{R: 0.5, G: 0, B: 1}, // violet
}

// Ramp maps a depth byte to an RGB color. Map is pure and total: the whole
// mapping is precomputed into a 256-entry LUT at construction.
type Ramp struct {
	lut [256]color.NRGBA
}

// NewRamp builds the ramp for the given polarity. Depth byte 255 means
// nearest, 0 means background/farthest.
func NewRamp(p Polarity) *Ramp {
	r := &Ramp{}
	for d := 0; d < 256; d++ {
		t := float64(d) / 255
		if p == NearWarm {
			// near (255) = warm end of the spectrum
			t = 1 - t
		}
		cr, cg, cb := blendSpectrum(t).RGB255()
		r.lut[d] = color.NRGBA{R: cr, G: cg, B: cb, A: 255}
	}
	return r
}

// Map returns the color for a depth sample.
func (r *Ramp) Map(d uint8) color.NRGBA {
	return r.lut[d]
}

// blendSpectrum interpolates along the keyframes: t=0 is the warm extreme,
// t=1 the cool extreme, both exact (no interpolation past the ends).
func blendSpectrum(t float64) colorful.Color {
	if t <= 0 {
		return spectrum[0]
	}
	if t >= 1 {
		return spectrum[len(spectrum)-1]
	}
	pos := t * float64(len(spectrum)-1)
	i := int(pos)
	frac := pos - float64(i)
	return spectrum[i].BlendHsv(spectrum[i+1], frac)
}
