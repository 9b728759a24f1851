package bvh

import (
	"math"

	"github.com/kjhurst/raybvh/types"
)

// sahBins is the number of equal-width bins evaluated along the split axis.
const sahBins = 256

// BinnedSAHBuilder picks the split axis with the largest centroid extent
// (as SimpleBuilder does) but chooses the split plane by evaluating the
// surface area heuristic over a fixed number of bins instead of always
// splitting at the midpoint. The SAH cost of a candidate split is
// left_count * area(left_box) + right_count * area(right_box); the
// candidate with the lowest cost wins, ties going to the lowest-index
// candidate. Cost is intentionally not normalized by the parent's area and
// carries no per-intersection cost constants, since only the argmin matters
// for choosing a split.
type BinnedSAHBuilder struct{}

func (BinnedSAHBuilder) selectSplit(prims []primitive, vol volume) (axis int, splitPoint float32) {
	extent := vol.bounds.Extent()
	axis = types.MaxDim(extent)

	axisExtent := extent[axis]
	binMin := vol.bounds.Min[axis]

	// A zero-extent axis means every primitive in range shares the same
	// centroid on this axis; binning has nothing to distinguish, so fall
	// straight through to the shared degenerate-partition handling by
	// returning a split plane that cannot separate anything.
	if axisExtent <= 0 {
		return axis, binMin
	}

	var binCount [sahBins]int
	binBox := make([]types.AABB, sahBins)
	for i := range binBox {
		binBox[i] = types.EmptyAABB()
	}

	// Guarantees the maximum centroid on this axis falls into bin
	// sahBins-1 rather than one past the end.
	scale := float32(sahBins) / (axisExtent * 1.00001)

	for i := vol.first; i < vol.last; i++ {
		p := prims[i]
		b := int((p.center[axis] - binMin) * scale)
		if b < 0 {
			b = 0
		} else if b >= sahBins {
			b = sahBins - 1
		}
		binCount[b]++
		binBox[b] = types.Union(binBox[b], p.bbox)
	}

	// Right-side prefix sums, swept from the last bin down to the first.
	var rightCount [sahBins]int
	rightBox := make([]types.AABB, sahBins)
	runningBox := types.EmptyAABB()
	runningCount := 0
	for i := sahBins - 1; i >= 0; i-- {
		if binCount[i] > 0 {
			runningBox = types.Union(runningBox, binBox[i])
			runningCount += binCount[i]
		}
		rightCount[i] = runningCount
		rightBox[i] = runningBox
	}

	bestCost := float32(math.Inf(1))
	bestCandidate := -1

	leftBox := types.EmptyAABB()
	leftCount := 0
	for i := 0; i < sahBins-1; i++ {
		if binCount[i] > 0 {
			leftBox = types.Union(leftBox, binBox[i])
			leftCount += binCount[i]
		}

		rc := rightCount[i+1]
		if leftCount == 0 || rc == 0 {
			continue
		}

		cost := float32(leftCount)*leftBox.Area() + float32(rc)*rightBox[i+1].Area()
		if cost < bestCost {
			bestCost = cost
			bestCandidate = i
		}
	}

	if bestCandidate < 0 {
		// No candidate separates the range (e.g. every primitive falls
		// into the same bin); let the shared partition logic fall back
		// to an index-median split.
		return axis, binMin
	}

	splitPoint = binMin + float32(bestCandidate+1)/scale
	return axis, splitPoint
}
