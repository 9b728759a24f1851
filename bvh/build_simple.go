package bvh

import "github.com/kjhurst/raybvh/types"

// SimpleBuilder splits each volume at the midpoint of its centroid bounds
// along the axis of largest centroid extent. It is cheap to run and
// produces a usable, if not especially well-balanced, tree — useful as a
// baseline to compare against BinnedSAHBuilder.
type SimpleBuilder struct{}

func (SimpleBuilder) selectSplit(prims []primitive, vol volume) (axis int, splitPoint float32) {
	axis = types.MaxDim(vol.bounds.Extent())
	splitPoint = 0.5 * (vol.bounds.Min[axis] + vol.bounds.Max[axis])
	return axis, splitPoint
}
