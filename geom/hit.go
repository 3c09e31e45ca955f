package geom

import "pathforge/rmath"

// HitPlace is a position+normal pair kept in a particular coordinate
// frame. spec.md §3 requires two simultaneous frames per hit: Global
// (world space, used to spawn secondary rays and shade) and Local
// (object/SDF frame, or the parallelogram's centered (u,v) plane, or
// the triangle's barycentric world position, used for texturing).
type HitPlace struct {
	Position rmath.Vec3
	Normal   rmath.Vec3
}

// HitRecord is the last-written intersection description. It is
// per-ray, transient scratch — design notes §9 call for wrapping the
// GPU's module-level scratch as an explicit struct threaded down the
// call chain rather than reintroduced as global mutable state; callers
// hold one HitRecord per traversal and pass it by pointer.
type HitRecord struct {
	Global     HitPlace
	Local      HitPlace
	T          float32
	MaterialID int
	FrontFace  bool
	// ObjectUID identifies the hit primitive for the object-id output
	// buffer (spec.md §4.9); 0 is reserved for "no hit".
	ObjectUID uint32
}

// SetFaceNormal orients Global.Normal so that it always points against
// the incoming ray, recording whether the outward geometric normal
// already satisfied that or had to be flipped. Local.Normal is left as
// the caller set it.
// frontFace ⇔ D·normal < 0, the sign convention spec.md §8 tests.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal rmath.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Global.Normal = outwardNormal
	} else {
		h.Global.Normal = outwardNormal.Negate()
	}
}

// Hittable is implemented by every primitive type the BVH stores.
// tMin/tMax bound the accepted ray-parameter interval; closestSoFar is
// the current best t across the whole traversal (spec.md §4.4's
// "closest_so_far"). Implementations must only write rec when they
// report hit=true and their candidate t strictly improves closestSoFar.
type Hittable interface {
	Hit(ray Ray, tMin, tMax, closestSoFar float32, rec *HitRecord) bool
}
