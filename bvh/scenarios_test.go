package bvh

import (
	"math"
	"testing"

	"github.com/kjhurst/raybvh/types"
)

func approxEqual(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

// S1: single triangle hit.
func TestScenarioSingleTriangleHit(t *testing.T) {
	for _, bld := range allBuilders {
		t.Run(bld.name, func(t *testing.T) {
			mesh := &Mesh{
				Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
				Indices:   []uint32{0, 1, 2},
			}
			tree, err := Build(mesh, bld.builder)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}

			ray := Ray{
				Origin:    types.Vec3{0.25, 0.25, 1},
				Direction: types.Vec3{0, 0, -1},
				MinT:      0,
				MaxT:      10,
			}
			hits := make([]Hit, 1)
			if err := tree.Trace([]Ray{ray}, hits, 0); err != nil {
				t.Fatalf("Trace: %v", err)
			}
			hit := hits[0]

			if hit.Triangle != 0 {
				t.Fatalf("triangle = %d, want 0", hit.Triangle)
			}
			if !approxEqual(hit.Barycentric[0], 0.25, 1e-4) || !approxEqual(hit.Barycentric[1], 0.25, 1e-4) {
				t.Fatalf("barycentric = %v, want (0.25, 0.25)", hit.Barycentric)
			}
		})
	}
}

// S2: miss.
func TestScenarioMiss(t *testing.T) {
	mesh := &Mesh{
		Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Indices:   []uint32{0, 1, 2},
	}
	tree, err := Build(mesh, BinnedSAHBuilder{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ray := Ray{
		Origin:    types.Vec3{2, 2, 1},
		Direction: types.Vec3{0, 0, -1},
		MinT:      0,
		MaxT:      10,
	}
	hits := make([]Hit, 1)
	if err := tree.Trace([]Ray{ray}, hits, 0); err != nil {
		t.Fatalf("Trace: %v", err)
	}

	if hits[0].Triangle != TriangleInvalid {
		t.Fatalf("triangle = %d, want TriangleInvalid", hits[0].Triangle)
	}
}

func twoTriangleMesh() *Mesh {
	return &Mesh{
		Positions: []float32{
			0, 0, 0, 1, 0, 0, 0, 1, 0,
			0, 0, -1, 1, 0, -1, 0, 1, -1,
		},
		Indices: []uint32{0, 1, 2, 3, 4, 5},
	}
}

// S3: closer of two.
func TestScenarioCloserOfTwo(t *testing.T) {
	for _, bld := range allBuilders {
		t.Run(bld.name, func(t *testing.T) {
			mesh := twoTriangleMesh()
			tree, err := Build(mesh, bld.builder)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}

			ray := Ray{
				Origin:    types.Vec3{0.25, 0.25, 2},
				Direction: types.Vec3{0, 0, -1},
				MinT:      0,
				MaxT:      10,
			}
			hits := make([]Hit, 1)
			if err := tree.Trace([]Ray{ray}, hits, 0); err != nil {
				t.Fatalf("Trace: %v", err)
			}

			if hits[0].Triangle != 0 {
				t.Fatalf("triangle = %d, want 0 (nearer)", hits[0].Triangle)
			}
		})
	}
}

// S4: shadow any-hit.
func TestScenarioShadowAnyHit(t *testing.T) {
	mesh := twoTriangleMesh()
	tree, err := Build(mesh, BinnedSAHBuilder{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ray := Ray{
		Origin:    types.Vec3{0.25, 0.25, 2},
		Direction: types.Vec3{0, 0, -1},
		MinT:      0,
		MaxT:      10,
	}
	hits := make([]Hit, 1)
	if err := tree.Trace([]Ray{ray}, hits, Shadow); err != nil {
		t.Fatalf("Trace: %v", err)
	}

	if hits[0].Triangle != 0 && hits[0].Triangle != 1 {
		t.Fatalf("triangle = %d, want 0 or 1", hits[0].Triangle)
	}
}

// S5: edge-share watertight.
func TestScenarioEdgeShareWatertight(t *testing.T) {
	mesh := &Mesh{
		Positions: []float32{
			0, 0, 0, 1, 0, 0, 0, 1, 0,
			1, 0, 0, 1, 1, 0, 0, 1, 0,
		},
		Indices: []uint32{0, 1, 2, 3, 4, 5},
	}
	tree, err := Build(mesh, BinnedSAHBuilder{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for _, eps := range []float32{-1e-4, 1e-4} {
		ray := Ray{
			Origin:    types.Vec3{0.5, 0.5 + eps, 1},
			Direction: types.Vec3{0, 0, -1},
			MinT:      0,
			MaxT:      10,
		}
		hits := make([]Hit, 1)
		if err := tree.Trace([]Ray{ray}, hits, 0); err != nil {
			t.Fatalf("Trace: %v", err)
		}
		if hits[0].Triangle == TriangleInvalid {
			t.Fatalf("eps=%v: ray through shared edge missed both triangles", eps)
		}
	}
}

// S6: empty partition / degenerate split fallback.
func TestScenarioEmptyPartition(t *testing.T) {
	const n = 5
	mesh := coincidentCentroidMesh(n)
	tree, err := Build(mesh, BinnedSAHBuilder{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for i := 0; i < mesh.TriangleCount(); i++ {
		tip := spokeTip(n, i)
		ray := Ray{
			Origin:    types.Vec3{tip[0], tip[1], 5},
			Direction: types.Vec3{0, 0, -1},
			MinT:      0,
			MaxT:      100,
		}
		hits := make([]Hit, 1)
		if err := tree.Trace([]Ray{ray}, hits, 0); err != nil {
			t.Fatalf("Trace: %v", err)
		}
		if hits[0].Triangle != uint32(i) {
			t.Fatalf("triangle %d not found (got %d)", i, hits[0].Triangle)
		}
	}
}
