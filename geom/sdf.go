package geom

import "pathforge/rmath"

// SDFRegistry is the external callable collaborator spec.md §6 requires
// the scene to provide: the analytic signed-distance function and its
// "rest frame" animation-undo, selected by class index.
type SDFRegistry interface {
	SDFSelect(classIndex int, point rmath.Vec3, time float32) float32
	SDFApplyAnimation(classIndex int, point rmath.Vec3, time float32) rmath.Vec3
}

const (
	sdfMaxSteps  = 120
	sdfMinStep   = 1e-4
	sdfEpsilon   = 1e-4
	sdfNormalEps = 0.5773 * 5e-4
)

// SDFInstance implements spec.md §3's SDF primitive: an object→world /
// world→object transform pair, a per-instance march step scale (the
// Lipschitz safety factor), a registry class index and a material/uid
// pair. Time is the CPU-port stand-in for the GPU's parallel
// sdf_time[i] array — same per-instance animation clock, addressed by
// instance instead of by a side array since nothing else here needs the
// struct-of-arrays layout.
type SDFInstance struct {
	Location        rmath.Mat4
	InverseLocation rmath.Mat4
	StepScale       float32
	ClassIndex      int
	MaterialID      int
	ObjectUID       uint32
	Time            float32
}

// Hit sphere-traces the instance in local space per spec.md §4.3.
func (s SDFInstance) Hit(ray Ray, tMin, tMax, closestSoFar float32, reg SDFRegistry, rec *HitRecord) bool {
	localOrigin := s.InverseLocation.MulVec3(ray.Origin)
	localDir := s.InverseLocation.MulDir(ray.Direction).Normalize()

	worldNear := ray.At(tMin)
	worldFar := ray.At(rmath.Min32(tMax, closestSoFar))
	localNear := s.InverseLocation.MulVec3(worldNear)
	localFar := s.InverseLocation.MulVec3(worldFar)
	localTMin := localNear.Sub(localOrigin).Length()
	localTMax := localFar.Sub(localOrigin).Length()

	tLocal := localTMin
	var candidate rmath.Vec3
	hit := false
	for step := 0; step < sdfMaxSteps; step++ {
		p := localOrigin.Add(localDir.Mul(tLocal))
		d := reg.SDFSelect(s.ClassIndex, p, s.Time)
		if rmath.Abs32(d) < sdfEpsilon*tLocal {
			candidate = p
			hit = true
			break
		}
		tLocal += rmath.Max32(rmath.Abs32(d)*s.StepScale, sdfMinStep*tLocal)
		if tLocal > localTMax {
			break
		}
	}
	if !hit {
		return false
	}

	worldHit := s.Location.MulVec3(candidate)
	t := worldHit.Sub(ray.Origin).Length()
	if t <= tMin || t >= tMax || t >= closestSoFar {
		return false
	}

	localNormal := sdfGradient(reg, s.ClassIndex, candidate, s.Time)
	globalNormal := s.InverseLocation.Transpose().MulDir(localNormal).Normalize()

	frontFace := reg.SDFSelect(s.ClassIndex, localOrigin, s.Time) >= 0
	if !frontFace {
		localNormal = localNormal.Negate()
		globalNormal = globalNormal.Negate()
	}

	rec.T = t
	rec.MaterialID = s.MaterialID
	rec.ObjectUID = s.ObjectUID
	rec.FrontFace = frontFace
	rec.Global.Position = worldHit
	rec.Global.Normal = globalNormal
	rec.Local.Position = reg.SDFApplyAnimation(s.ClassIndex, candidate, s.Time)
	rec.Local.Normal = localNormal
	return true
}

// sdfGradient estimates the normal with Inigo Quilez's tetrahedral
// central-difference trick, the offset spec.md §4.3 names explicitly.
func sdfGradient(reg SDFRegistry, class int, p rmath.Vec3, time float32) rmath.Vec3 {
	h := float32(sdfNormalEps)
	e1 := rmath.Vec3{X: 1, Y: -1, Z: -1}
	e2 := rmath.Vec3{X: -1, Y: -1, Z: 1}
	e3 := rmath.Vec3{X: -1, Y: 1, Z: -1}
	e4 := rmath.Vec3{X: 1, Y: 1, Z: 1}

	sample := func(e rmath.Vec3) float32 {
		return reg.SDFSelect(class, p.Add(e.Mul(h)), time)
	}

	n := e1.Mul(sample(e1)).Add(e2.Mul(sample(e2))).Add(e3.Mul(sample(e3))).Add(e4.Mul(sample(e4)))
	return n.Normalize()
}

// DirectionalQuery implements spec.md §4.7's containment-traversal
// signed-distance estimate along a direction from a point, used by the
// shadow/AO field sampling pass. dir is rotated through
// InverseLocation's linear part before stepping in local space, the
// same world-to-local direction transform SDFInstance.Hit uses.
func (s SDFInstance) DirectionalQuery(reg SDFRegistry, p, dir rmath.Vec3, time float32) float32 {
	localP := s.InverseLocation.MulVec3(p)
	localDir := s.InverseLocation.MulDir(dir).Normalize()
	dLocal := reg.SDFSelect(s.ClassIndex, localP, time)

	localCandidate := localP.Add(localDir.Mul(dLocal))
	worldCandidate := s.Location.MulVec3(localCandidate)

	delta := worldCandidate.Sub(p)
	sign := float32(1)
	if delta.Dot(dir) < 0 {
		sign = -1
	}
	return delta.Length() * sign
}
