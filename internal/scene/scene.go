// Package scene holds the renderable scene graph: a tree of nodes whose
// drawable leaves pair geometry with a swappable surface appearance.
package scene

import "chromadepth-renderer/internal/mesh"

// Node is one element of the scene tree. Drawable is nil for pure grouping
// nodes. Children render in slice order.
type Node struct {
	Name     string
	Drawable *Drawable
	Children []*Node
}

// Scene is a tree of nodes under a single root.
type Scene struct {
	Root *Node
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{Root: &Node{Name: "root"}}
}

// FromMeshes builds a scene with one drawable child per mesh, each carrying
// a surface appearance derived from the mesh's material.
func FromMeshes(meshes []mesh.Mesh) *Scene {
	s := New()
	for i := range meshes {
		m := &meshes[i]
		s.Root.Children = append(s.Root.Children, &Node{
			Name: m.Name,
			Drawable: &Drawable{
				Name:       m.Name,
				Mesh:       m,
				Appearance: NewSurface(m.Diffuse, m.TexPath),
			},
		})
	}
	return s
}

// Walk visits every drawable in deterministic depth-first pre-order.
// The same scene walked twice yields the same sequence, which the capture
// pass relies on for index-aligned appearance restoration.
func (s *Scene) Walk(fn func(*Drawable)) {
	if s == nil || s.Root == nil {
		return
	}
	walkNode(s.Root, fn)
}

func walkNode(n *Node, fn func(*Drawable)) {
	if n.Drawable != nil {
		fn(n.Drawable)
	}
	for _, c := range n.Children {
		walkNode(c, fn)
	}
}

// DrawableCount returns the number of drawables reachable from the root.
func (s *Scene) DrawableCount() int {
	n := 0
	s.Walk(func(*Drawable) { n++ })
	return n
}
