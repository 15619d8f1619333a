package scene

import "chromadepth-renderer/internal/mesh"

// Drawable is a scene-graph leaf: geometry plus a swappable appearance.
type Drawable struct {
	Name       string
	Mesh       *mesh.Mesh
	Appearance *Appearance
}

// SwapAppearance installs a and returns the previous appearance.
func (d *Drawable) SwapAppearance(a *Appearance) *Appearance {
	prev := d.Appearance
	d.Appearance = a
	return prev
}
