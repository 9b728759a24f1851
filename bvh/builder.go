package bvh

import "github.com/kjhurst/raybvh/types"

// Builder is implemented by the BVH split-selection strategies. Build
// consults a Builder only while constructing the tree (once per inner
// node) — never per ray — so the interface carries no cost during
// traversal, which is shared by every implementation of Builder.
//
// A Builder only ever needs to decide where to split a range of primitives;
// partitioning the range, detecting degenerate splits and propagating
// bounds is common machinery handled by Build itself (see buildTree).
type Builder interface {
	// selectSplit chooses a split axis (0, 1 or 2) and a split plane for
	// the given range of primitives. The common build loop then
	// partitions the range around that plane; if the partition turns out
	// to be degenerate (every primitive lands on one side), the build
	// loop falls back to an index-median split instead of re-invoking
	// selectSplit.
	selectSplit(prims []primitive, vol volume) (axis int, splitPoint float32)
}

// primitive is a builder-internal, transient record: the AABB of a
// triangle's three vertices, its centroid and the original triangle index.
type primitive struct {
	bbox   types.AABB
	center types.Vec3
	index  uint32
}

const noParent = -1

// volume is a half-open primitive range awaiting partitioning, together
// with a centroid-bounds AABB over that range and an optional parent node
// index used to back-patch the parent's right-child offset once this
// volume is emitted.
type volume struct {
	first, last int
	bounds      types.AABB
	parent      int
}

func centroidBounds(prims []primitive, first, last int) types.AABB {
	b := types.EmptyAABB()
	for i := first; i < last; i++ {
		b = types.Grow(b, prims[i].center)
	}
	return b
}

// buildPrimitives computes the per-triangle AABB, centroid and index for
// every triangle in mesh, in triangle order.
func buildPrimitives(mesh MeshView) []primitive {
	count := mesh.TriangleCount()
	prims := make([]primitive, count)
	for i := 0; i < count; i++ {
		p0, p1, p2 := trianglePositions(mesh, i)

		bbox := types.EmptyAABB()
		bbox = types.Grow(bbox, p0)
		bbox = types.Grow(bbox, p1)
		bbox = types.Grow(bbox, p2)

		center := p0.Add(p1).Add(p2).Mul(1.0 / 3.0)

		prims[i] = primitive{
			bbox:   bbox,
			center: center,
			index:  uint32(i),
		}
	}
	return prims
}

// buildTree runs the shared depth-first build framework described in the
// base specification: a pending-work stack of right-child volumes, one
// emitted node per iteration, leaves formed once a range holds at most
// MaxLeaf primitives (ranges the splitter could not partition are split at
// their index midpoint instead), and a final back-propagation pass
// that fills in inner node bounds from their children.
func buildTree(mesh MeshView, prims []primitive, builder Builder) ([]Node, []Triangle) {
	nodes := make([]Node, 0, 2*len(prims)+1)
	tris := make([]Triangle, 0, len(prims))

	vol := volume{
		first:  0,
		last:   len(prims),
		bounds: centroidBounds(prims, 0, len(prims)),
		parent: noParent,
	}

	var stack []volume

	for {
		empty := types.EmptyAABB()
		ni := len(nodes)
		nodes = append(nodes, Node{Min: empty.Min, Max: empty.Max})

		if vol.parent != noParent {
			nodes[vol.parent].Offset = uint32(ni)
		}

		count := vol.last - vol.first
		if count <= MaxLeaf {
			nodes[ni].Offset = uint32(len(tris))
			nodes[ni].Count = uint16(count)

			leafBounds := types.EmptyAABB()
			for i := vol.first; i < vol.last; i++ {
				p := prims[i]
				p0, p1, p2 := trianglePositions(mesh, int(p.index))

				tris = append(tris, Triangle{P0: p0, P1: p1, P2: p2, Index: p.index})

				leafBounds = types.Grow(leafBounds, p0)
				leafBounds = types.Grow(leafBounds, p1)
				leafBounds = types.Grow(leafBounds, p2)
			}
			nodes[ni].Min = leafBounds.Min
			nodes[ni].Max = leafBounds.Max

			if len(stack) == 0 {
				break
			}
			vol = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			continue
		}

		axis, splitPoint := builder.selectSplit(prims, vol)
		nodes[ni].Axis = uint16(axis)

		left, right := partition(prims, vol, axis, splitPoint)
		right.parent = ni

		stack = append(stack, right)
		vol = left
	}

	propagateBounds(nodes)

	return nodes, tris
}

// partition classifies prims[vol.first:vol.last] in place (Hoare-style
// two-pointer) around splitPoint on axis, accumulating each child's
// centroid bounds as primitives are classified. If the split turns out to
// be degenerate — every primitive landed on one side — it falls back to an
// index-median split and both children inherit the parent's centroid
// bounds, exactly as specified.
func partition(prims []primitive, vol volume, axis int, splitPoint float32) (left, right volume) {
	l, r := vol.first, vol.last

	leftBounds := types.EmptyAABB()
	rightBounds := types.EmptyAABB()

	for l < r {
		if prims[l].center[axis] < splitPoint {
			leftBounds = types.Grow(leftBounds, prims[l].center)
			l++
		} else {
			rightBounds = types.Grow(rightBounds, prims[l].center)
			r--
			prims[l], prims[r] = prims[r], prims[l]
		}
	}

	if l == vol.first || l == vol.last {
		l = (vol.first + vol.last) / 2
		leftBounds = vol.bounds
		rightBounds = vol.bounds
	}

	left = volume{first: vol.first, last: l, bounds: leftBounds, parent: noParent}
	right = volume{first: l, last: vol.last, bounds: rightBounds, parent: noParent}
	return left, right
}

// propagateBounds walks the node array from last to first; parents always
// precede their children in the depth-first array, so a single backward
// pass is enough to grow every inner node's AABB to contain its children.
func propagateBounds(nodes []Node) {
	for i := len(nodes) - 1; i >= 0; i-- {
		if nodes[i].Count != 0 {
			continue
		}
		left := i + 1
		right := int(nodes[i].Offset)
		nodes[i].Min = types.MinVec3(nodes[left].Min, nodes[right].Min)
		nodes[i].Max = types.MaxVec3(nodes[left].Max, nodes[right].Max)
	}
}
