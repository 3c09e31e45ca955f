package geom

import "pathforge/rmath"

// Triangle implements spec.md §3/§4.3's triangle primitive: three
// vertices with per-vertex normals, interpolated and re-normalized at
// the hit point.
type Triangle struct {
	A, B, C    rmath.Vec3
	NA, NB, NC rmath.Vec3
	MaterialID int
	ObjectUID  uint32
}

// Hit implements the Möller–Trumbore variant spec.md §4.3 specifies,
// using the ao/dao cross-product form rather than the classic
// edge/determinant-solve form (same result, fewer named temporaries).
func (tri Triangle) Hit(ray Ray, tMin, tMax, closestSoFar float32, rec *HitRecord) bool {
	ab := tri.B.Sub(tri.A)
	ac := tri.C.Sub(tri.A)
	normal := ab.Cross(ac)

	det := -ray.Direction.Dot(normal)
	if rmath.Abs32(det) < tMin {
		return false
	}
	invDet := 1.0 / det

	ao := ray.Origin.Sub(tri.A)
	dao := ao.Cross(ray.Direction)

	dst := ao.Dot(normal) * invDet
	u := ac.Dot(dao) * invDet
	v := -ab.Dot(dao) * invDet
	w := 1 - u - v

	if dst <= tMin || dst >= tMax || dst >= closestSoFar {
		return false
	}
	if u < tMin || v < tMin || w < tMin {
		return false
	}

	rec.T = dst
	rec.MaterialID = tri.MaterialID
	rec.ObjectUID = tri.ObjectUID

	position := tri.A.Mul(w).Add(tri.B.Mul(u)).Add(tri.C.Mul(v))
	normalInterp := tri.NA.Mul(w).Add(tri.NB.Mul(u)).Add(tri.NC.Mul(v)).Normalize()

	rec.Global.Position = position
	rec.Local.Position = position
	rec.SetFaceNormal(ray, normalInterp)
	rec.Local.Normal = rec.Global.Normal
	return true
}
