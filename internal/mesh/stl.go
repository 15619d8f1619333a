package mesh

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadSTL parses an STL file, auto-detecting binary vs ASCII encoding.
// STL carries no texture coordinates, so the result is a single flat-colored mesh.
func LoadSTL(path string) ([]Mesh, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: read %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if isBinarySTL(raw) {
		return parseBinarySTL(raw, name, path)
	}
	return parseASCIISTL(raw, name, path)
}

// isBinarySTL checks the declared triangle count against the file size.
// The "solid" prefix alone is unreliable: some binary exporters write it too.
func isBinarySTL(raw []byte) bool {
	if len(raw) < 84 {
		return false
	}
	count := binary.LittleEndian.Uint32(raw[80:84])
	return len(raw) == 84+int(count)*50
}

func parseBinarySTL(raw []byte, name, path string) ([]Mesh, error) {
	count := int(binary.LittleEndian.Uint32(raw[80:84]))
	m := Mesh{Name: name, Diffuse: DefaultDiffuse}
	m.Verts = make([][3]float32, 0, count*3)
	m.Tris = make([]Triangle, 0, count)

	off := 84
	for i := 0; i < count; i++ {
		// 12 bytes facet normal (recomputed at raster time), then 3 vertices
		off += 12
		var tri Triangle
		for j := 0; j < 3; j++ {
			var p [3]float32
			for k := 0; k < 3; k++ {
				bits := binary.LittleEndian.Uint32(raw[off:])
				p[k] = math.Float32frombits(bits)
				off += 4
			}
			m.Verts = append(m.Verts, p)
			tri.V[j] = len(m.Verts) - 1
			tri.T[j] = -1
		}
		off += 2 // attribute byte count
		m.Tris = append(m.Tris, tri)
	}
	return []Mesh{m}, nil
}

func parseASCIISTL(raw []byte, name, path string) ([]Mesh, error) {
	m := Mesh{Name: name, Diffuse: DefaultDiffuse}
	var tri Triangle
	corner := 0

	lineNo := 0
	sc := bufio.NewScanner(bytes.NewReader(raw))
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(strings.TrimSpace(sc.Text()))
		if len(fields) == 0 || fields[0] != "vertex" {
			continue
		}
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
		m.Verts = append(m.Verts, p)
		tri.V[corner] = len(m.Verts) - 1
		tri.T[corner] = -1
		corner++
		if corner == 3 {
			m.Tris = append(m.Tris, tri)
			corner = 0
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mesh: read %s: %w", path, err)
	}
	if corner != 0 {
		return nil, fmt.Errorf("mesh: %s: truncated facet (%d dangling vertices)", path, corner)
	}
	if len(m.Tris) == 0 {
		return nil, fmt.Errorf("mesh: %s: no facets", path)
	}
	return []Mesh{m}, nil
}
