package bvh

import "github.com/kjhurst/raybvh/types"

// trace runs a single ray against nodes/triangles using an explicit,
// per-ray node-index stack, descending front-to-back with respect to the
// ray's direction so that closest-hit queries can shrink maxT as they go
// and shadow queries can return as soon as anything is found.
func trace(nodes []Node, triangles []Triangle, ray Ray, shadow bool) Hit {
	hit := Hit{Triangle: TriangleInvalid}

	org := ray.Origin
	dir := ray.Direction
	minT := ray.MinT
	maxT := ray.MaxT

	invDir := types.Vec3{1 / dir[0], 1 / dir[1], 1 / dir[2]}
	wr := woopRayFrom(org, dir)

	stack := make([]uint32, 0, 64)

	nodeIndex := uint32(0)
	for {
		n := &nodes[nodeIndex]

		if rayVsBounds(org, invDir, minT, maxT, n.Min, n.Max) {
			if !n.isLeaf() {
				axis := n.Axis
				if dir[axis] > 0 {
					stack = append(stack, n.Offset)
					nodeIndex++
				} else {
					stack = append(stack, nodeIndex+1)
					nodeIndex = n.Offset
				}
				continue
			}

			offset := n.Offset
			count := n.Count
			found := false
			for j := uint16(0); j < count; j++ {
				tri := &triangles[offset+uint32(j)]

				t, v, w, ok := woopIntersectTriangle(wr, minT, maxT, tri.P0, tri.P1, tri.P2)
				if !ok {
					continue
				}

				maxT = t
				hit.Triangle = tri.Index
				hit.Barycentric[0] = v
				hit.Barycentric[1] = w
				found = true

				if shadow {
					break
				}
			}

			if shadow && found {
				break
			}
		}

		if len(stack) == 0 {
			break
		}
		nodeIndex = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
	}

	return hit
}
