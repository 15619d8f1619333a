// Command inspect dumps mesh statistics for a model file, useful when a
// render comes out empty or misframed.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"chromadepth-renderer/internal/mesh"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: inspect <model.obj|model.stl>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	meshes, err := mesh.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s: %d mesh(es)\n", path, len(meshes))

	totalV, totalT := 0, 0
	for i := range meshes {
		m := &meshes[i]
		minB := [3]float32{float32(math.Inf(1)), float32(math.Inf(1)), float32(math.Inf(1))}
		maxB := [3]float32{float32(math.Inf(-1)), float32(math.Inf(-1)), float32(math.Inf(-1))}
		for _, v := range m.Verts {
			for k := 0; k < 3; k++ {
				if v[k] < minB[k] {
					minB[k] = v[k]
				}
				if v[k] > maxB[k] {
					maxB[k] = v[k]
				}
			}
		}

		name := m.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Printf("  [%d] %s: %d verts, %d tris", i, name, m.VertexCount(), m.TriangleCount())
		if m.TexPath != "" {
			fmt.Printf(", texture %s", m.TexPath)
		}
		fmt.Println()
		if len(m.Verts) > 0 {
			fmt.Printf("      bounds min(%.2f %.2f %.2f) max(%.2f %.2f %.2f)\n",
				minB[0], minB[1], minB[2], maxB[0], maxB[1], maxB[2])
		}

		totalV += m.VertexCount()
		totalT += m.TriangleCount()
	}

	fmt.Printf("Total: %d verts, %d tris\n", totalV, totalT)
}
