package bvh

import "github.com/kjhurst/raybvh/types"

// woopRay is a precomputed, watertight ray form (Woop et al.): a dominant
// axis, two sheared transverse axes and one scale, computed once per ray and
// reused for every triangle test during traversal.
type woopRay struct {
	org          types.Vec3
	sx, sy, sz   float32
	kx, ky, kz   int
}

// woopRayFrom precomputes the Woop form of a ray with the given origin and
// direction. direction must have no zero component.
func woopRayFrom(origin, direction types.Vec3) woopRay {
	kz := types.MaxDim(direction)
	kx := (kz + 1) % 3
	ky := (kz + 2) % 3

	if direction[kz] < 0 {
		kx, ky = ky, kx
	}

	return woopRay{
		org: origin,
		sx:  direction[kx] / direction[kz],
		sy:  direction[ky] / direction[kz],
		sz:  1 / direction[kz],
		kx:  kx,
		ky:  ky,
		kz:  kz,
	}
}

// woopIntersectTriangle tests r against the triangle (p0, p1, p2) over the
// interval [minT, maxT]. On a hit it returns (t, v, w, true); otherwise the
// last return is false and the other values are undefined.
//
// A fallback to double precision is used whenever any of the three edge
// functions is exactly zero, which guards watertightness at edges shared by
// adjacent triangles: a ray passing exactly through a shared edge or vertex
// is never rejected by both neighbouring triangles. Edge functions of zero
// count as inside, so such a ray may be accepted by both; the traverser
// then reports only one of them.
func woopIntersectTriangle(r woopRay, minT, maxT float32, p0, p1, p2 types.Vec3) (t, v, w float32, hit bool) {
	a := p0.Sub(r.org)
	b := p1.Sub(r.org)
	c := p2.Sub(r.org)

	ax := a[r.kx] - r.sx*a[r.kz]
	ay := a[r.ky] - r.sy*a[r.kz]
	bx := b[r.kx] - r.sx*b[r.kz]
	by := b[r.ky] - r.sy*b[r.kz]
	cx := c[r.kx] - r.sx*c[r.kz]
	cy := c[r.ky] - r.sy*c[r.kz]

	u := cx*by - cy*bx
	vv := ax*cy - ay*cx
	ww := bx*ay - by*ax

	if u == 0 || vv == 0 || ww == 0 {
		u = float32(float64(cx)*float64(by) - float64(cy)*float64(bx))
		vv = float32(float64(ax)*float64(cy) - float64(ay)*float64(cx))
		ww = float32(float64(bx)*float64(ay) - float64(by)*float64(ax))
	}

	if (u < 0 || vv < 0 || ww < 0) && (u > 0 || vv > 0 || ww > 0) {
		return 0, 0, 0, false
	}

	det := u + vv + ww
	if det == 0 {
		return 0, 0, 0, false
	}

	az := r.sz * a[r.kz]
	bz := r.sz * b[r.kz]
	cz := r.sz * c[r.kz]

	rcpDet := 1 / det
	tt := (u*az + vv*bz + ww*cz) * rcpDet
	if tt < minT || tt > maxT {
		return 0, 0, 0, false
	}

	return tt, vv * rcpDet, ww * rcpDet, true
}
