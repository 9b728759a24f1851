package bvh

import "github.com/kjhurst/raybvh/types"

// Node is one entry of the BVH's depth-first node array.
//
// An inner node has Count == 0; Axis is the split axis (0, 1 or 2), the left
// child is at the node's own index + 1 and the right child is at Offset.
//
// A leaf node has Count > 0; Offset is the index of the first triangle the
// leaf owns inside the BVH's triangle array (it owns Count of them); Axis is
// unused.
type Node struct {
	Min    types.Vec3
	Max    types.Vec3
	Offset uint32
	Count  uint16
	Axis   uint16
}

func (n *Node) isLeaf() bool {
	return n.Count > 0
}

// Triangle is a persistent triangle record: the three vertex positions,
// duplicated into the BVH for cache locality during traversal, plus the
// original mesh triangle index reported back on hits.
type Triangle struct {
	P0, P1, P2 types.Vec3
	Index      uint32
}
