package scene

// Shader selects which rasterization path draws a surface.
type Shader int

const (
	// ShaderSurface is the lit, textured path used for interactive display.
	ShaderSurface Shader = iota
	// ShaderDepth writes quantized view depth into the color channels
	// instead of surface color.
	ShaderDepth
)

// Appearance describes how a drawable's surface is shaded.
// Drawables hold appearances by reference so a capture pass can swap them
// wholesale and put the originals back.
type Appearance struct {
	Shader  Shader
	Diffuse [4]uint8 // flat RGBA used when Texture is empty or unresolved
	Texture string   // resolver key, relative to the model directory
}

// NewSurface returns a lit appearance with the given flat diffuse color.
func NewSurface(diffuse [4]uint8, texture string) *Appearance {
	return &Appearance{Shader: ShaderSurface, Diffuse: diffuse, Texture: texture}
}

// NewDepthEncoding returns the shared appearance substituted during a
// depth-only pass.
func NewDepthEncoding() *Appearance {
	return &Appearance{Shader: ShaderDepth}
}
