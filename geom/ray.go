// Package geom implements the primitive intersection tests, hit record
// and ray-differential machinery of spec.md §3/§4.2/§4.3: parallelogram,
// triangle and SDF intersection against a shared mutable-scratch hit
// record, plus the AABB slab test the BVH and SDF march both use.
//
// Grounded on the teacher's editor/raycast.go Ray/HitResult/AABB shapes,
// generalized to the dual global/local HitPlace frames and the
// parallelogram/SDF primitive types spec.md §3 adds.
package geom

import "pathforge/rmath"

// Ray is a world-space ray. Direction is always unit length; NewRay
// normalizes once at construction and no operator mutates it implicitly
// afterward, per spec.md §3's invariant.
type Ray struct {
	Origin    rmath.Vec3
	Direction rmath.Vec3
}

func NewRay(origin, direction rmath.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At evaluates the ray at parameter t.
func (r Ray) At(t float32) rmath.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Differential carries the two auxiliary ray directions spec.md §4.2
// produces by re-casting the camera ray offset by one pixel along each
// screen axis.
type Differential struct {
	Dx rmath.Vec3
	Dy rmath.Vec3
}

// SurfaceDerivatives computes dp/dx, dp/dy at a hit using the
// plane-tangent approximation spec.md §3 specifies: the hit surface is
// treated as locally planar with the hit normal, and the auxiliary rays
// are intersected against that plane from the same ray origin.
func SurfaceDerivatives(ray Ray, diff Differential, hit HitRecord) (dpdx, dpdy rmath.Vec3) {
	n := hit.Global.Normal
	p := hit.Global.Position
	d := -n.Dot(p)

	if denomX := n.Dot(diff.Dx); rmath.Abs32(denomX) >= 1e-8 {
		tx := -(n.Dot(ray.Origin) + d) / denomX
		px := ray.Origin.Add(diff.Dx.Mul(tx))
		dpdx = px.Sub(p)
	}
	if denomY := n.Dot(diff.Dy); rmath.Abs32(denomY) >= 1e-8 {
		ty := -(n.Dot(ray.Origin) + d) / denomY
		py := ray.Origin.Add(diff.Dy.Mul(ty))
		dpdy = py.Sub(p)
	}
	return dpdx, dpdy
}
