// Package ao is a minimal ambient-occlusion renderer used to exercise a
// built bvh.BVH end to end: cast one primary ray per pixel, then one
// cosine-weighted hemisphere sample from the hit point, and accumulate the
// fraction of samples that escape without hitting anything.
package ao

import (
	"errors"
	"math"
	"math/rand"

	"github.com/kjhurst/raybvh/bvh"
	"github.com/kjhurst/raybvh/types"
)

var (
	ErrZeroFrame = errors.New("ao: width and height must both be > 0")
	ErrNoBVH     = errors.New("ao: bvh is nil")
)

// Camera is a pinhole camera looking from From towards To.
type Camera struct {
	From, To, Up types.Vec3
	// FOVRadians is the horizontal field of view; the vertical extent is
	// scaled by the frame's height/width ratio.
	FOVRadians float32
}

// Renderer accumulates ambient-occlusion samples into a grayscale buffer.
type Renderer struct {
	bvh  *bvh.BVH
	mesh bvh.MeshView

	width, height       int
	origin              types.Vec3
	viewX, viewY, viewZ types.Vec3

	accum  []float32
	sample int
}

// Begin resets the renderer for a fresh w x h image of tree, viewed through
// camera. mesh must be the same mesh tree was built from; its vertex
// positions are used to compute hit-point shading normals, which the core
// hit record does not carry.
func (r *Renderer) Begin(tree *bvh.BVH, mesh bvh.MeshView, w, h int, camera Camera) error {
	if w <= 0 || h <= 0 {
		return ErrZeroFrame
	}
	if tree == nil {
		return ErrNoBVH
	}

	r.bvh = tree
	r.mesh = mesh
	r.width = w
	r.height = h
	r.sample = 0
	r.accum = make([]float32, w*h)

	scale := float32(math.Tan(float64(0.5 * camera.FOVRadians)))
	aspect := float32(h) / float32(w)

	r.origin = camera.From
	r.viewZ = camera.To.Sub(camera.From).Normalize()
	r.viewX = r.viewZ.Cross(camera.Up).Normalize().Mul(scale)
	r.viewY = r.viewZ.Cross(r.viewX).Normalize().Mul(aspect * scale)

	return nil
}

// Refine traces one more jittered sample per pixel and folds it into the
// running ambient-occlusion estimate.
func (r *Renderer) Refine() error {
	s := r.sample
	r.sample++
	rnd := rand.New(rand.NewSource(int64(s) + 1))

	pixelCount := r.width * r.height
	rays := make([]bvh.Ray, pixelCount)

	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			fx, fy := rnd.Float32(), rnd.Float32()
			sx := 2*(float32(x)+fx)/float32(r.width) - 1
			sy := 2*(float32(y)+fy)/float32(r.height) - 1

			d := r.viewZ.Add(r.viewX.Mul(sx)).Add(r.viewY.Mul(sy)).Normalize()
			rays[y*r.width+x] = bvh.Ray{
				Origin:    r.origin,
				Direction: nudgeZero(d),
				MinT:      0,
				MaxT:      math.MaxFloat32,
			}
		}
	}

	primary := make([]bvh.Hit, pixelCount)
	if err := r.bvh.Trace(rays, primary, bvh.Coherent); err != nil {
		return err
	}

	shadowPixels := make([]int, 0, pixelCount)
	shadowRays := make([]bvh.Ray, 0, pixelCount)
	for i, hit := range primary {
		if hit.Triangle == bvh.TriangleInvalid {
			continue
		}

		idx := r.mesh.TriangleIndices(int(hit.Triangle))
		p0 := r.mesh.Position(int(idx[0]))
		p1 := r.mesh.Position(int(idx[1]))
		p2 := r.mesh.Position(int(idx[2]))

		v, w := hit.Barycentric[0], hit.Barycentric[1]
		u := 1 - v - w
		p := p0.Mul(u).Add(p1.Mul(v)).Add(p2.Mul(w))

		n := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
		if n.Dot(rays[i].Direction) > 0 {
			n = n.Mul(-1)
		}

		bx, by := orthonormalBasis(n)

		cosTheta := float32(math.Sqrt(float64(1 - rnd.Float32())))
		sinTheta := float32(math.Sqrt(float64(1 - cosTheta*cosTheta)))
		phi := 2 * math.Pi * rnd.Float64()
		cosPhi, sinPhi := float32(math.Cos(phi)), float32(math.Sin(phi))

		dir := bx.Mul(cosPhi * sinTheta).Add(by.Mul(sinPhi * sinTheta)).Add(n.Mul(cosTheta))

		shadowPixels = append(shadowPixels, i)
		shadowRays = append(shadowRays, bvh.Ray{
			Origin:    p.Add(n.Mul(1e-4)),
			Direction: nudgeZero(dir),
			MinT:      1e-4,
			MaxT:      math.MaxFloat32,
		})
	}

	shadowHits := make([]bvh.Hit, len(shadowRays))
	if err := r.bvh.Trace(shadowRays, shadowHits, bvh.Shadow); err != nil {
		return err
	}

	for i, hit := range shadowHits {
		if hit.Triangle == bvh.TriangleInvalid {
			r.accum[shadowPixels[i]]++
		}
	}

	return nil
}

// Value returns the current accumulated ambient-occlusion estimate for
// pixel (x, y), in [0, 1]. Pixels whose primary ray missed the mesh report 0.
func (r *Renderer) Value(x, y int) float32 {
	if r.sample == 0 {
		return 0
	}
	return r.accum[y*r.width+x] / float32(r.sample)
}

// Width and Height report the renderer's current frame dimensions.
func (r *Renderer) Width() int  { return r.width }
func (r *Renderer) Height() int { return r.height }

// orthonormalBasis builds two vectors perpendicular to n and to each other,
// completing a right-handed basis with n.
func orthonormalBasis(n types.Vec3) (x, y types.Vec3) {
	var v types.Vec3
	if float32(math.Abs(float64(n[0]))) > float32(math.Abs(float64(n[1]))) {
		v = n.Cross(types.Vec3{0, 1, 0})
	} else {
		v = n.Cross(types.Vec3{1, 0, 0})
	}
	x = v.Cross(n).Normalize()
	y = n.Cross(x).Normalize()
	return x, y
}

// nudgeZero replaces any exactly-zero component with a tiny positive
// epsilon, since bvh.Ray requires every direction component to be non-zero.
func nudgeZero(d types.Vec3) types.Vec3 {
	const eps = 1e-8
	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			d[i] = eps
		}
	}
	return d
}
