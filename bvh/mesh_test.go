package bvh

import (
	"testing"

	"github.com/kjhurst/raybvh/types"
)

func TestMeshAccessors(t *testing.T) {
	m := &Mesh{
		Positions: []float32{
			0, 0, 0,
			1, 0, 0,
			0, 1, 0,
			0, 0, 1,
		},
		Indices: []uint32{0, 1, 2, 1, 3, 2},
	}

	if got := m.VertexCount(); got != 4 {
		t.Fatalf("VertexCount() = %d, want 4", got)
	}
	if got := m.TriangleCount(); got != 2 {
		t.Fatalf("TriangleCount() = %d, want 2", got)
	}

	if got := m.Position(3); got != (types.Vec3{0, 0, 1}) {
		t.Fatalf("Position(3) = %v, want {0 0 1}", got)
	}

	if got := m.TriangleIndices(1); got != ([3]uint32{1, 3, 2}) {
		t.Fatalf("TriangleIndices(1) = %v, want [1 3 2]", got)
	}

	p0, p1, p2 := trianglePositions(m, 0)
	if p0 != (types.Vec3{0, 0, 0}) || p1 != (types.Vec3{1, 0, 0}) || p2 != (types.Vec3{0, 1, 0}) {
		t.Fatalf("trianglePositions(0) = %v, %v, %v; unexpected", p0, p1, p2)
	}
}
