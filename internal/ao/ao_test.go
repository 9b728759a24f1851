package ao

import (
	"testing"

	"github.com/kjhurst/raybvh/bvh"
	"github.com/kjhurst/raybvh/types"
)

func cubeMesh() *bvh.Mesh {
	positions := []float32{
		-1, -1, -1,
		1, -1, -1,
		1, 1, -1,
		-1, 1, -1,
		-1, -1, 1,
		1, -1, 1,
		1, 1, 1,
		-1, 1, 1,
	}
	indices := []uint32{
		0, 1, 2, 0, 2, 3,
		4, 6, 5, 4, 7, 6,
		0, 3, 7, 0, 7, 4,
		1, 5, 6, 1, 6, 2,
		0, 4, 5, 0, 5, 1,
		3, 2, 6, 3, 6, 7,
	}
	return &bvh.Mesh{Positions: positions, Indices: indices}
}

func TestRendererBeginRejectsInvalidInput(t *testing.T) {
	var r Renderer
	if err := r.Begin(nil, cubeMesh(), 4, 4, Camera{}); err != ErrNoBVH {
		t.Fatalf("Begin(nil bvh) = %v, want ErrNoBVH", err)
	}

	mesh := cubeMesh()
	tree, err := bvh.Build(mesh, bvh.SimpleBuilder{})
	if err != nil {
		t.Fatalf("bvh.Build: %v", err)
	}

	if err := r.Begin(tree, mesh, 0, 4, Camera{}); err != ErrZeroFrame {
		t.Fatalf("Begin(w=0) = %v, want ErrZeroFrame", err)
	}
}

func TestRendererRefineProducesBoundedOcclusion(t *testing.T) {
	mesh := cubeMesh()
	tree, err := bvh.Build(mesh, bvh.BinnedSAHBuilder{})
	if err != nil {
		t.Fatalf("bvh.Build: %v", err)
	}

	camera := Camera{
		From:       types.Vec3{0, 0, 5},
		To:         types.Vec3{0, 0, 0},
		Up:         types.Vec3{0, 1, 0},
		FOVRadians: 0.9,
	}

	var r Renderer
	if err := r.Begin(tree, mesh, 8, 8, camera); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	for i := 0; i < 4; i++ {
		if err := r.Refine(); err != nil {
			t.Fatalf("Refine: %v", err)
		}
	}

	sawHit := false
	for y := 0; y < r.Height(); y++ {
		for x := 0; x < r.Width(); x++ {
			v := r.Value(x, y)
			if v < 0 || v > 1 {
				t.Fatalf("Value(%d,%d) = %v, want in [0,1]", x, y, v)
			}
			if v > 0 {
				sawHit = true
			}
		}
	}
	if !sawHit {
		t.Fatalf("expected at least one pixel with nonzero ambient occlusion looking straight at the cube")
	}
}
