package bvh

import (
	"runtime"
	"sync"
	"time"

	"github.com/kjhurst/raybvh/log"
)

// BVH is an immutable bounding volume hierarchy over a triangle mesh,
// together with a private copy of the mesh's triangle data.
type BVH struct {
	nodes     []Node
	triangles []Triangle
	stats     Stats
}

// Stats summarizes a completed build, for diagnostics and reporting.
type Stats struct {
	Nodes       int
	Leafs       int
	MaxDepth    int
	Triangles   int
	BuildMillis int64
}

// Build constructs a BVH over mesh using builder to select split planes.
// The returned tree owns its own copy of the mesh's triangle positions; mesh
// is not retained after Build returns.
func Build(mesh MeshView, builder Builder) (*BVH, error) {
	if builder == nil {
		return nil, ErrNoBuilder
	}
	if mesh.TriangleCount() == 0 {
		return nil, ErrEmptyMesh
	}

	logger := log.New("bvh")

	start := time.Now()
	prims := buildPrimitives(mesh)
	nodes, triangles := buildTree(mesh, prims, builder)
	elapsed := time.Since(start)

	leafs, maxDepth := treeStats(nodes)
	logger.Debugf(
		"build time: %d ms, nodes: %d, leafs: %d, maxDepth: %d, triangles: %d",
		elapsed.Nanoseconds()/1e6,
		len(nodes), leafs, maxDepth, len(triangles),
	)

	return &BVH{
		nodes:     nodes,
		triangles: triangles,
		stats: Stats{
			Nodes:       len(nodes),
			Leafs:       leafs,
			MaxDepth:    maxDepth,
			Triangles:   len(triangles),
			BuildMillis: elapsed.Nanoseconds() / 1e6,
		},
	}, nil
}

// treeStats walks the node array once to report the number of leaf nodes
// and the maximum depth of any leaf, for diagnostic logging only.
func treeStats(nodes []Node) (leafs, maxDepth int) {
	if len(nodes) == 0 {
		return 0, 0
	}

	type frame struct {
		index, depth int
	}
	stack := []frame{{0, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &nodes[f.index]
		if f.depth > maxDepth {
			maxDepth = f.depth
		}
		if n.isLeaf() {
			leafs++
			continue
		}
		stack = append(stack, frame{f.index + 1, f.depth + 1})
		stack = append(stack, frame{int(n.Offset), f.depth + 1})
	}
	return leafs, maxDepth
}

// Trace intersects every ray in rays against the tree and writes the
// result for ray i to hits[i]. len(hits) must equal len(rays). Rays are
// traced independently of one another and, when the batch is large enough
// to be worth the dispatch overhead, are distributed across a worker pool
// sized to runtime.GOMAXPROCS(0).
func (b *BVH) Trace(rays []Ray, hits []Hit, flags TraceFlags) error {
	if len(rays) != len(hits) {
		return ErrRayCount
	}

	shadow := flags&Shadow != 0

	const parallelThreshold = 512
	if len(rays) < parallelThreshold {
		for i, r := range rays {
			hits[i] = trace(b.nodes, b.triangles, r, shadow)
		}
		return nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(rays) {
		workers = len(rays)
	}
	if workers < 1 {
		workers = 1
	}

	chunk := (len(rays) + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		if lo >= len(rays) {
			break
		}
		hi := lo + chunk
		if hi > len(rays) {
			hi = len(rays)
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				hits[i] = trace(b.nodes, b.triangles, rays[i], shadow)
			}
		}(lo, hi)
	}
	wg.Wait()

	return nil
}

// NodeCount reports the number of nodes in the tree's depth-first array.
func (b *BVH) NodeCount() int {
	return len(b.nodes)
}

// TriangleCount reports the number of triangle records stored in leaves.
func (b *BVH) TriangleCount() int {
	return len(b.triangles)
}

// Stats reports the build-time statistics recorded when the tree was built.
func (b *BVH) Stats() Stats {
	return b.stats
}
