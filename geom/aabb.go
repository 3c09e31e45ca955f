package geom

import "pathforge/rmath"

// AABB is an axis-aligned bounding box, shared by BVH node bounds and
// the broad-phase test in front of every primitive intersection.
type AABB struct {
	Min, Max rmath.Vec3
}

// Contains reports whether p lies within the box, used by the
// containment traversal that drives shadow/AO SDF field sampling
// (spec.md §4.4).
func (b AABB) Contains(p rmath.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Inflate returns a copy of b expanded by margin on every axis, used to
// build the "inflated" companion BVH spec.md §3/§4.4 describe.
func (b AABB) Inflate(margin float32) AABB {
	m := rmath.Vec3{X: margin, Y: margin, Z: margin}
	return AABB{Min: b.Min.Sub(m), Max: b.Max.Add(m)}
}

func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: rmath.Vec3{X: rmath.Min32(b.Min.X, other.Min.X), Y: rmath.Min32(b.Min.Y, other.Min.Y), Z: rmath.Min32(b.Min.Z, other.Min.Z)},
		Max: rmath.Vec3{X: rmath.Max32(b.Max.X, other.Max.X), Y: rmath.Max32(b.Max.Y, other.Max.Y), Z: rmath.Max32(b.Max.Z, other.Max.Z)},
	}
}

func (b AABB) Centroid() rmath.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// IntersectSlab is the per-axis slab test spec.md §4.3 specifies. It
// returns the hit flag and t_enter, the latter reused as the SDF march
// lower bound.
func IntersectSlab(box AABB, ray Ray, tMin, tMax float32) (hit bool, tEnter float32) {
	enter, exit := tMin, tMax

	for axis := 0; axis < 3; axis++ {
		origin, dir := component(ray.Origin, axis), component(ray.Direction, axis)
		lo, hi := component(box.Min, axis), component(box.Max, axis)

		invD := 1.0 / dir
		t0 := (lo - origin) * invD
		t1 := (hi - origin) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		enter = rmath.Max32(enter, t0)
		exit = rmath.Min32(exit, t1)
		if exit <= enter {
			return false, enter
		}
	}
	return true, enter
}

func component(v rmath.Vec3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
