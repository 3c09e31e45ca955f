package geom

import "pathforge/rmath"

// Parallelogram implements spec.md §3/§4.3's quad primitive: origin Q,
// spanning vectors u, v, with the plane normal/constant and the w
// helper vector precomputed so every hit test only does a dot product
// and a barycentric recovery, not a re-derivation of the plane.
type Parallelogram struct {
	Q, U, V    rmath.Vec3
	Normal     rmath.Vec3 // n = normalize(u x v)
	PlaneConst float32    // D = n . Q
	W          rmath.Vec3 // (u x v) / |u x v|^2
	MaterialID int
	ObjectUID  uint32
}

// NewParallelogram precomputes the plane fields from Q, u, v.
func NewParallelogram(q, u, v rmath.Vec3, materialID int, objectUID uint32) Parallelogram {
	n := u.Cross(v)
	unitN := n.Normalize()
	return Parallelogram{
		Q: q, U: u, V: v,
		Normal:     unitN,
		PlaneConst: unitN.Dot(q),
		W:          n.Mul(1.0 / n.Dot(n)),
		MaterialID: materialID,
		ObjectUID:  objectUID,
	}
}

// Hit implements spec.md §4.3's parallelogram test: back-face cull,
// plane intersection, then planar-barycentric interior test.
func (p Parallelogram) Hit(ray Ray, tMin, tMax, closestSoFar float32, rec *HitRecord) bool {
	denom := ray.Direction.Dot(p.Normal)
	if denom > -1e-8 {
		return false // back-face cull (D.n >= 0) and grazing miss (|D.n| < 1e-8)
	}

	t := (p.PlaneConst - p.Normal.Dot(ray.Origin)) / denom
	if t <= tMin || t >= tMax || t >= closestSoFar {
		return false
	}

	hitPoint := ray.At(t)
	planar := hitPoint.Sub(p.Q)
	alpha := p.W.Dot(planar.Cross(p.V))
	beta := p.W.Dot(p.U.Cross(planar))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return false
	}

	rec.T = t
	rec.MaterialID = p.MaterialID
	rec.ObjectUID = p.ObjectUID
	rec.Global.Position = p.Q.Add(p.U.Mul(alpha)).Add(p.V.Mul(beta))
	rec.Local.Position = p.U.Mul(alpha).Add(p.V.Mul(beta)).Sub(p.U.Add(p.V).Mul(0.5))
	rec.Global.Normal = p.Normal
	rec.FrontFace = denom < 0
	rec.Local.Normal = rec.Global.Normal
	return true
}

// SampleUniform draws a uniformly distributed point on the quad, used
// by the Monte-Carlo loop's direct light sampling (spec.md §4.8.1).
func (p Parallelogram) SampleUniform(u1, u2 float32) rmath.Vec3 {
	return p.Q.Add(p.U.Mul(u1)).Add(p.V.Mul(u2))
}

// Area returns |u x v|, used by the quad-light PDF formula.
func (p Parallelogram) Area() float32 {
	return p.U.Cross(p.V).Length()
}
