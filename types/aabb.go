package types

import "math"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min Vec3
	Max Vec3
}

// EmptyAABB returns an AABB that is the neutral element under Union: any
// box unioned with it is unchanged.
func EmptyAABB() AABB {
	return AABB{
		Min: Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// Union returns the smallest AABB containing both a and b.
func Union(a, b AABB) AABB {
	return AABB{
		Min: MinVec3(a.Min, b.Min),
		Max: MaxVec3(a.Max, b.Max),
	}
}

// Grow returns the smallest AABB containing a and the point p.
func Grow(a AABB, p Vec3) AABB {
	return AABB{
		Min: MinVec3(a.Min, p),
		Max: MaxVec3(a.Max, p),
	}
}

// Area returns the surface area of the box, used as the SAH cost surrogate.
func (b AABB) Area() float32 {
	d := b.Max.Sub(b.Min)
	return 2 * (d[0]*d[1] + d[1]*d[2] + d[0]*d[2])
}

// Extent returns Max - Min.
func (b AABB) Extent() Vec3 {
	return b.Max.Sub(b.Min)
}
