package bvh

import "github.com/kjhurst/raybvh/types"

// TriangleInvalid is the sentinel Hit.Triangle value reported for a miss.
const TriangleInvalid uint32 = 0xFFFFFFFF

// MaxLeaf is the maximum number of primitives stored in a leaf node. A range
// the splitter cannot partition is split at its index midpoint (see the
// builder's degenerate-partition handling), so no leaf ever exceeds it.
const MaxLeaf = 4

// TraceFlags selects traversal behaviour for a batch passed to Trace.
type TraceFlags uint32

const (
	// Coherent is an advisory hint; it has no semantic effect on this
	// traverser but is accepted for interface compatibility with
	// implementations that do take advantage of ray coherence.
	Coherent TraceFlags = 0x0001

	// Shadow selects any-hit mode: traversal stops at the first
	// intersection found for a ray instead of searching for the closest one.
	Shadow TraceFlags = 0x0002
)

// Ray is a single traced ray. Direction must have no zero component and
// MinT must be <= MaxT; callers are responsible for nudging rays that would
// otherwise violate this.
type Ray struct {
	Origin    types.Vec3
	Direction types.Vec3
	MinT      float32
	MaxT      float32
}

// Hit is the result of tracing a single ray.
type Hit struct {
	// Triangle is the original mesh triangle index, or TriangleInvalid if
	// the ray missed.
	Triangle uint32

	// Barycentric holds the free (v, w) coordinates of the hit point
	// relative to the triangle's three vertices; u = 1 - v - w.
	Barycentric [2]float32
}
