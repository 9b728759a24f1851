// Package objmesh loads a minimal subset of the Wavefront OBJ format into a
// bvh.MeshView, just enough to drive the demonstration commands: "v" vertex
// lines and "f" face lines with plain (or negative) vertex indices. Normals,
// texture coordinates, materials and every other record type are skipped.
package objmesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kjhurst/raybvh/types"
)

// Mesh is the parsed result: flat vertex positions and triangle indices,
// implementing bvh.MeshView directly.
type Mesh struct {
	Positions []float32
	Indices   []uint32
}

// VertexCount implements bvh.MeshView.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount implements bvh.MeshView.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Position implements bvh.MeshView.
func (m *Mesh) Position(i int) types.Vec3 {
	base := 3 * i
	return types.Vec3{m.Positions[base], m.Positions[base+1], m.Positions[base+2]}
}

// TriangleIndices implements bvh.MeshView.
func (m *Mesh) TriangleIndices(t int) [3]uint32 {
	base := 3 * t
	return [3]uint32{m.Indices[base], m.Indices[base+1], m.Indices[base+2]}
}

// Load reads an OBJ file from disk.
func Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f, path)
}

// Parse reads an OBJ document from r. name is used only to annotate parse
// errors and may be empty.
func Parse(r io.Reader, name string) (*Mesh, error) {
	var vertices []types.Vec3
	var positions []float32
	var indices []uint32

	lineNum := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNum++
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 || strings.HasPrefix(tokens[0], "#") {
			continue
		}

		switch tokens[0] {
		case "v":
			v, err := parseVertex(tokens)
			if err != nil {
				return nil, emitError(name, lineNum, err)
			}
			vertices = append(vertices, v)
			positions = append(positions, v[0], v[1], v[2])

		case "f":
			faceIndices, err := parseFace(tokens, len(vertices))
			if err != nil {
				return nil, emitError(name, lineNum, err)
			}
			// Fan-triangulate faces with more than three vertices, the
			// same convention the wavefront reader in the retrieval
			// pack's teacher codebase uses for polygons.
			for i := 1; i+1 < len(faceIndices); i++ {
				indices = append(indices, faceIndices[0], faceIndices[i], faceIndices[i+1])
			}

		default:
			// vn, vt, mtllib, g, o and anything else are not needed to
			// build a MeshView and are silently skipped.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &Mesh{Positions: positions, Indices: indices}, nil
}

func parseVertex(tokens []string) (types.Vec3, error) {
	if len(tokens) < 4 {
		return types.Vec3{}, fmt.Errorf("'v' expects 3 arguments; got %d", len(tokens)-1)
	}
	var v types.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(tokens[i+1], 32)
		if err != nil {
			return types.Vec3{}, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

func parseFace(tokens []string, vertexCount int) ([]uint32, error) {
	if len(tokens) < 4 {
		return nil, fmt.Errorf("'f' expects at least 3 arguments; got %d", len(tokens)-1)
	}

	indices := make([]uint32, len(tokens)-1)
	for i, tok := range tokens[1:] {
		// Only the vertex index (before any '/') is needed.
		vTok := tok
		if slash := strings.IndexByte(tok, '/'); slash >= 0 {
			vTok = tok[:slash]
		}

		idx, err := strconv.ParseInt(vTok, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("could not parse vertex index %q: %w", tok, err)
		}

		var resolved int
		if idx < 0 {
			resolved = vertexCount + int(idx)
		} else {
			resolved = int(idx) - 1
		}
		if resolved < 0 || resolved >= vertexCount {
			return nil, fmt.Errorf("vertex index %d out of range [1, %d]", idx, vertexCount)
		}
		indices[i] = uint32(resolved)
	}
	return indices, nil
}

func emitError(name string, line int, err error) error {
	if name == "" {
		return fmt.Errorf("line %d: %w", line, err)
	}
	return fmt.Errorf("%s:%d: %w", name, line, err)
}
