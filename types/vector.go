// Package types provides the vector and bounding-box primitives shared by
// the BVH core and the demonstration packages built on top of it.
package types

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Vec3 is a three-component float32 vector.
type Vec3 f32.Vec3

// XYZ builds a Vec3 from its components.
func XYZ(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// Add returns v + v2.
func (v Vec3) Add(v2 Vec3) Vec3 {
	return Vec3{v[0] + v2[0], v[1] + v2[1], v[2] + v2[2]}
}

// Sub returns v - v2.
func (v Vec3) Sub(v2 Vec3) Vec3 {
	return Vec3{v[0] - v2[0], v[1] - v2[1], v[2] - v2[2]}
}

// Mul returns v scaled by s.
func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Dot returns the dot product of v and v2.
func (v Vec3) Dot(v2 Vec3) float32 {
	return v[0]*v2[0] + v[1]*v2[1] + v[2]*v2[2]
}

// Cross returns the cross product of v and v2.
func (v Vec3) Cross(v2 Vec3) Vec3 {
	return Vec3{
		v[1]*v2[2] - v[2]*v2[1],
		v[2]*v2[0] - v[0]*v2[2],
		v[0]*v2[1] - v[1]*v2[0],
	}
}

// Len returns the euclidean length of v.
func (v Vec3) Len() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

// Normalize returns v scaled to unit length. Returns the zero vector if v is
// (numerically) zero-length.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-8 {
		return Vec3{}
	}
	return v.Mul(1.0 / l)
}

// MinVec3 returns the componentwise minimum of v1 and v2.
func MinVec3(v1, v2 Vec3) Vec3 {
	out := v1
	if v2[0] < out[0] {
		out[0] = v2[0]
	}
	if v2[1] < out[1] {
		out[1] = v2[1]
	}
	if v2[2] < out[2] {
		out[2] = v2[2]
	}
	return out
}

// MaxVec3 returns the componentwise maximum of v1 and v2.
func MaxVec3(v1, v2 Vec3) Vec3 {
	out := v1
	if v2[0] > out[0] {
		out[0] = v2[0]
	}
	if v2[1] > out[1] {
		out[1] = v2[1]
	}
	if v2[2] > out[2] {
		out[2] = v2[2]
	}
	return out
}

// MaxDim returns the index of the component of v with the largest absolute
// value. Ties are broken towards the higher index.
func MaxDim(v Vec3) int {
	ax, ay, az := float32(math.Abs(float64(v[0]))), float32(math.Abs(float64(v[1]))), float32(math.Abs(float64(v[2])))
	if ax > ay {
		if ax > az {
			return 0
		}
		return 2
	}
	if ay > az {
		return 1
	}
	return 2
}
