package bvh

import "github.com/kjhurst/raybvh/types"

// rayVsBounds performs the standard slab test: it narrows [tmin, tmax] by
// the ray/box intersection interval on each axis and reports whether the
// resulting interval is non-empty. invDir is the componentwise reciprocal of
// the ray direction, precomputed once per ray. Callers guarantee direction
// has no zero component, so no NaN handling is required here.
func rayVsBounds(org, invDir types.Vec3, tmin, tmax float32, min, max types.Vec3) bool {
	t1 := (min[0] - org[0]) * invDir[0]
	t2 := (max[0] - org[0]) * invDir[0]
	tmin = fmax32(tmin, fmin32(t1, t2))
	tmax = fmin32(tmax, fmax32(t1, t2))

	t1 = (min[1] - org[1]) * invDir[1]
	t2 = (max[1] - org[1]) * invDir[1]
	tmin = fmax32(tmin, fmin32(t1, t2))
	tmax = fmin32(tmax, fmax32(t1, t2))

	t1 = (min[2] - org[2]) * invDir[2]
	t2 = (max[2] - org[2]) * invDir[2]
	tmin = fmax32(tmin, fmin32(t1, t2))
	tmax = fmin32(tmax, fmax32(t1, t2))

	return tmax >= tmin
}

func fmin32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func fmax32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
