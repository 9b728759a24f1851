package objmesh

import (
	"strings"
	"testing"

	"github.com/kjhurst/raybvh/types"
)

const sampleOBJ = `
# a unit square, split into two triangles, plus a stray quad face
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
f 1 2 3
f 1 3 4
f -4 -3 -2 -1
`

func TestParseTriangulatesAndResolvesIndices(t *testing.T) {
	mesh, err := Parse(strings.NewReader(sampleOBJ), "sample.obj")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := mesh.VertexCount(); got != 4 {
		t.Fatalf("VertexCount() = %d, want 4", got)
	}
	// Two explicit triangles plus a fan-triangulated quad (2 triangles).
	if got := mesh.TriangleCount(); got != 4 {
		t.Fatalf("TriangleCount() = %d, want 4", got)
	}

	if got := mesh.Position(0); got != (types.Vec3{0, 0, 0}) {
		t.Fatalf("Position(0) = %v, want {0 0 0}", got)
	}
	if got := mesh.Position(2); got != (types.Vec3{1, 1, 0}) {
		t.Fatalf("Position(2) = %v, want {1 1 0}", got)
	}

	if got := mesh.TriangleIndices(0); got != ([3]uint32{0, 1, 2}) {
		t.Fatalf("TriangleIndices(0) = %v, want [0 1 2]", got)
	}
	if got := mesh.TriangleIndices(1); got != ([3]uint32{0, 2, 3}) {
		t.Fatalf("TriangleIndices(1) = %v, want [0 2 3]", got)
	}

	// The negative-index quad face "-4 -3 -2 -1" resolves to the same four
	// vertices (0,1,2,3) and fan-triangulates the same way.
	if got := mesh.TriangleIndices(2); got != ([3]uint32{0, 1, 2}) {
		t.Fatalf("TriangleIndices(2) = %v, want [0 1 2]", got)
	}
	if got := mesh.TriangleIndices(3); got != ([3]uint32{0, 2, 3}) {
		t.Fatalf("TriangleIndices(3) = %v, want [0 2 3]", got)
	}
}

func TestParseRejectsOutOfRangeIndex(t *testing.T) {
	const bad = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 5\n"
	if _, err := Parse(strings.NewReader(bad), "bad.obj"); err == nil {
		t.Fatalf("expected an error for an out-of-range vertex index")
	}
}

func TestParseSkipsUnknownDirectives(t *testing.T) {
	const withExtras = "mtllib foo.mtl\ng group1\nv 0 0 0\nv 1 0 0\nv 0 1 0\nusemtl bar\nf 1 2 3\n"
	mesh, err := Parse(strings.NewReader(withExtras), "extras.obj")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if mesh.TriangleCount() != 1 {
		t.Fatalf("TriangleCount() = %d, want 1", mesh.TriangleCount())
	}
}
