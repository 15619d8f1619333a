package mesh

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Triangle indexes into a Mesh's vertex and UV arrays.
// T entries are -1 when the face carries no texture coordinates.
type Triangle struct {
	V [3]int
	T [3]int
}

// Mesh is one renderable group of triangles sharing a material.
type Mesh struct {
	Name    string
	Verts   [][3]float32
	UVs     [][2]float32
	Tris    []Triangle
	TexPath string   // diffuse texture file, relative to the model; "" = flat color
	Diffuse [4]uint8 // flat diffuse RGBA used when TexPath is empty or missing
}

// DefaultDiffuse is the flat color applied when a material defines none.
var DefaultDiffuse = [4]uint8{160, 160, 170, 255}

func (m *Mesh) VertexCount() int   { return len(m.Verts) }
func (m *Mesh) TriangleCount() int { return len(m.Tris) }
func (m *Mesh) IsEmpty() bool      { return len(m.Tris) == 0 }

// Load reads a model file and returns its meshes.
// The format is chosen by file extension (.obj, .stl).
func Load(path string) ([]Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path)
	case ".stl":
		return LoadSTL(path)
	default:
		return nil, fmt.Errorf("mesh: unsupported format: %s", path)
	}
}
