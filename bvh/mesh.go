package bvh

import "github.com/kjhurst/raybvh/types"

// MeshView is a read-only triangle mesh, borrowed by Build for the duration
// of the call and never retained afterwards. Implementations only need to
// answer positional queries; Build never mutates the mesh.
type MeshView interface {
	// VertexCount returns the number of vertices V.
	VertexCount() int

	// TriangleCount returns the number of triangles T.
	TriangleCount() int

	// Position returns the position of vertex i. i must be < VertexCount().
	Position(i int) types.Vec3

	// TriangleIndices returns the three vertex indices of triangle t. t must
	// be < TriangleCount(); every returned index must be < VertexCount().
	TriangleIndices(t int) [3]uint32
}

// Mesh is a MeshView backed by flat, contiguous slices: Positions holds 3*V
// floats (x,y,z per vertex) and Indices holds 3*T indices (one triangle per
// three consecutive entries).
type Mesh struct {
	Positions []float32
	Indices   []uint32
}

// VertexCount implements MeshView.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount implements MeshView.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Position implements MeshView.
func (m *Mesh) Position(i int) types.Vec3 {
	base := 3 * i
	return types.Vec3{m.Positions[base], m.Positions[base+1], m.Positions[base+2]}
}

// TriangleIndices implements MeshView.
func (m *Mesh) TriangleIndices(t int) [3]uint32 {
	base := 3 * t
	return [3]uint32{m.Indices[base], m.Indices[base+1], m.Indices[base+2]}
}

func trianglePositions(mesh MeshView, triangle int) (p0, p1, p2 types.Vec3) {
	idx := mesh.TriangleIndices(triangle)
	return mesh.Position(int(idx[0])), mesh.Position(int(idx[1])), mesh.Position(int(idx[2]))
}
