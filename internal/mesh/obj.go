package mesh

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// material holds the subset of MTL fields the renderer uses.
type material struct {
	diffuse [4]uint8
	mapKd   string
}

// LoadOBJ parses a Wavefront OBJ file. Faces are grouped into one Mesh per
// active material; polygons are fan-triangulated; negative indices resolve
// relative to the current vertex count.
func LoadOBJ(path string) ([]Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: open %s: %w", path, err)
	}
	defer f.Close()

	var (
		verts     [][3]float32
		uvs       [][2]float32
		materials = map[string]material{}
		meshes    []Mesh
		byMat     = map[string]int{} // material name -> meshes index
		current   = -1
		// per-mesh remap of global indices
		vmap map[[2]int]int
	)

	selectMesh := func(matName string) {
		if i, ok := byMat[matName]; ok {
			current = i
			vmap = nil // remap rebuilt lazily below
			return
		}
		m := Mesh{Name: matName, Diffuse: DefaultDiffuse}
		if mat, ok := materials[matName]; ok {
			m.Diffuse = mat.diffuse
			m.TexPath = mat.mapKd
		}
		meshes = append(meshes, m)
		byMat[matName] = len(meshes) - 1
		current = len(meshes) - 1
		vmap = nil
	}

	// localIndex copies a (vertex, uv) pair into the current mesh once and
	// returns its local index.
	localIndex := func(vi, ti int) int {
		if vmap == nil {
			vmap = map[[2]int]int{}
		}
		key := [2]int{vi, ti}
		if li, ok := vmap[key]; ok {
			return li
		}
		m := &meshes[current]
		m.Verts = append(m.Verts, verts[vi])
		li := len(m.Verts) - 1
		if ti >= 0 {
			for len(m.UVs) < li {
				m.UVs = append(m.UVs, [2]float32{})
			}
			m.UVs = append(m.UVs, uvs[ti])
		}
		vmap[key] = li
		return li
	}

	lineNo := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("mesh: %s:%d: short vertex", path, lineNo)
			}
			var p [3]float32
			for k := 0; k < 3; k++ {
				v, err := strconv.ParseFloat(fields[k+1], 32)
				if err != nil {
					return nil, fmt.Errorf("mesh: %s:%d: vertex: %w", path, lineNo, err)
				}
				p[k] = float32(v)
			}
			verts = append(verts, p)
		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("mesh: %s:%d: short texcoord", path, lineNo)
			}
			u, err1 := strconv.ParseFloat(fields[1], 32)
			v, err2 := strconv.ParseFloat(fields[2], 32)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("mesh: %s:%d: bad texcoord", path, lineNo)
			}
			// OBJ v runs bottom-up; images are top-down
			uvs = append(uvs, [2]float32{float32(u), 1 - float32(v)})
		case "f":
			if current < 0 {
				selectMesh("")
			}
			if len(fields) < 4 {
				return nil, fmt.Errorf("mesh: %s:%d: face with <3 vertices", path, lineNo)
			}
			corners := make([][2]int, 0, len(fields)-1)
			for _, fv := range fields[1:] {
				vi, ti, err := parseFaceVertex(fv, len(verts), len(uvs))
				if err != nil {
					return nil, fmt.Errorf("mesh: %s:%d: %w", path, lineNo, err)
				}
				corners = append(corners, [2]int{vi, ti})
			}
			m := &meshes[current]
			for k := 1; k+1 < len(corners); k++ {
				tri := Triangle{}
				for j, c := range [3][2]int{corners[0], corners[k], corners[k+1]} {
					tri.V[j] = localIndex(c[0], c[1])
					if c[1] >= 0 {
						tri.T[j] = tri.V[j]
					} else {
						tri.T[j] = -1
					}
				}
				m.Tris = append(m.Tris, tri)
			}
		case "usemtl":
			name := ""
			if len(fields) > 1 {
				name = fields[1]
			}
			selectMesh(name)
		case "mtllib":
			if len(fields) > 1 {
				libPath := filepath.Join(filepath.Dir(path), fields[1])
				if mats, err := loadMTL(libPath); err == nil {
					for k, v := range mats {
						materials[k] = v
					}
				}
				// missing material libraries degrade to flat shading
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mesh: read %s: %w", path, err)
	}

	var out []Mesh
	for _, m := range meshes {
		if !m.IsEmpty() {
			out = append(out, m)
		}
	}
	return out, nil
}

// parseFaceVertex decodes one "v", "v/vt", "v//vn" or "v/vt/vn" reference.
// Returns zero-based indices; ti is -1 when no texcoord is present.
func parseFaceVertex(s string, nv, nuv int) (vi, ti int, err error) {
	parts := strings.Split(s, "/")
	vi, err = resolveIndex(parts[0], nv)
	if err != nil {
		return 0, 0, fmt.Errorf("face vertex %q: %w", s, err)
	}
	ti = -1
	if len(parts) > 1 && parts[1] != "" {
		ti, err = resolveIndex(parts[1], nuv)
		if err != nil {
			return 0, 0, fmt.Errorf("face texcoord %q: %w", s, err)
		}
	}
	return vi, ti, nil
}

func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		i = n + i // negative indices count from the end
	} else {
		i-- // OBJ indices are 1-based
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("index %s out of range (have %d)", s, n)
	}
	return i, nil
}

// loadMTL parses the newmtl/Kd/map_Kd subset of a material library.
func loadMTL(path string) (map[string]material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: open %s: %w", path, err)
	}
	defer f.Close()

	mats := map[string]material{}
	var cur string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(strings.TrimSpace(sc.Text()))
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "newmtl":
			cur = fields[1]
			mats[cur] = material{diffuse: DefaultDiffuse}
		case "Kd":
			if cur == "" || len(fields) < 4 {
				continue
			}
			m := mats[cur]
			for k := 0; k < 3; k++ {
				v, err := strconv.ParseFloat(fields[k+1], 64)
				if err != nil {
					v = 0
				}
				m.diffuse[k] = clampChannel(v * 255)
			}
			m.diffuse[3] = 255
			mats[cur] = m
		case "map_Kd":
			if cur == "" {
				continue
			}
			m := mats[cur]
			m.mapKd = fields[len(fields)-1]
			mats[cur] = m
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mesh: read %s: %w", path, err)
	}
	return mats, nil
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
