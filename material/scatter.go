package material

import (
	"math"

	"pathforge/geom"
	"pathforge/rmath"
	"pathforge/rng"
)

// ScatterRecord is the process-local scratch spec.md §4.5 names:
// carried from Scatter to the caller so the path tracer knows whether
// to skip the MIS/PDF machinery for this bounce.
type ScatterRecord struct {
	SkipPDF    bool
	SkipPDFRay geom.Ray
	DoSpecular float32 // 0 or 1; selects albedo vs specular in the mix
}

// onb builds an orthonormal basis with w aligned to n, the
// "orthonormal basis {u,v,w} aligned with the hit normal" spec.md
// §4.5 calls for.
func onb(n rmath.Vec3) (u, v, w rmath.Vec3) {
	w = n.Normalize()
	a := rmath.Vec3{X: 0, Y: 1, Z: 0}
	if rmath.Abs32(w.X) > 0.9 {
		a = rmath.Vec3{X: 0, Y: 0, Z: 1}
	}
	v = w.Cross(a).Normalize()
	u = w.Cross(v)
	return u, v, w
}

func cosineSampleHemisphere(r1, r2 float32) rmath.Vec3 {
	phi := 2 * math.Pi * float64(r1)
	sr2 := float32(math.Sqrt(float64(r2)))
	return rmath.Vec3{
		X: float32(math.Cos(phi)) * sr2,
		Y: float32(math.Sin(phi)) * sr2,
		Z: rmath.Min32(1, float32(math.Sqrt(float64(1-r2)))),
	}
}

// Scatter dispatches on m.MaterialClass, implementing spec.md §4.5's
// four BRDF models. rayDir is the incoming ray direction (not
// negated); hit is the last-written intersection.
func Scatter(m Material, rayDir rmath.Vec3, hit geom.HitRecord, state *rng.State) ScatterRecord {
	switch m.MaterialClass {
	case Mirror:
		return scatterMirror(m, rayDir, hit, state)
	case Glass:
		return scatterGlass(m, rayDir, hit, state, true)
	case Isotropic:
		return scatterIsotropic(m, rayDir, hit, state)
	default:
		return scatterLambertian(m, rayDir, hit, state)
	}
}

func scatterLambertian(m Material, rayDir rmath.Vec3, hit geom.HitRecord, state *rng.State) ScatterRecord {
	n := hit.Global.Normal
	u, v, w := onb(n)

	r1, r2 := state.Float32Pair()
	local := cosineSampleHemisphere(r1, r2)
	diffuseDir := u.Mul(local.X).Add(v.Mul(local.Y)).Add(w.Mul(local.Z)).Normalize()

	doSpecular := float32(0)
	dir := diffuseDir
	if state.Float32() < m.SpecularStrength {
		doSpecular = 1
		reflected := rayDir.Reflect(n)
		dir = reflected.Lerp(diffuseDir, m.Roughness).Normalize()
	}

	return ScatterRecord{
		SkipPDF:    doSpecular > 0,
		SkipPDFRay: offsetRay(hit, dir),
		DoSpecular: doSpecular,
	}
}

func scatterMirror(m Material, rayDir rmath.Vec3, hit geom.HitRecord, state *rng.State) ScatterRecord {
	reflected := rayDir.Reflect(hit.Global.Normal)
	dir := reflected.Add(uniformInUnitSphere(state).Mul(m.Roughness)).Normalize()
	return ScatterRecord{SkipPDF: true, SkipPDFRay: offsetRay(hit, dir), DoSpecular: 1}
}

// ScatterDeterministicGlass implements the deterministic tracer's
// always-refract glass path (spec.md §4.8.2: "no Russian sampling"),
// sharing the Schlick/TIR math with the stochastic Scatter path.
func ScatterDeterministicGlass(m Material, rayDir rmath.Vec3, hit geom.HitRecord) ScatterRecord {
	return scatterGlass(m, rayDir, hit, nil, false)
}

// scatterGlass implements spec.md §4.5's Schlick-Fresnel dielectric.
// stochastic selects between the Monte-Carlo reflect/refract coin-flip
// and the deterministic tracer's always-refract rule.
func scatterGlass(m Material, rayDir rmath.Vec3, hit geom.HitRecord, state *rng.State, stochastic bool) ScatterRecord {
	n := hit.Global.Normal
	eta := m.RefractiveIndex
	if hit.FrontFace {
		eta = 1.0 / eta
	}

	unitDir := rayDir.Normalize()
	cosTheta := rmath.Min32(-unitDir.Dot(n), 1.0)
	sinTheta := float32(math.Sqrt(float64(1 - cosTheta*cosTheta)))

	cannotRefract := eta*sinTheta > 1.0
	reflectance := schlick(cosTheta, eta)

	var dir rmath.Vec3
	switch {
	case cannotRefract:
		dir = unitDir.Reflect(n)
	case stochastic && state.Float32() < reflectance:
		dir = unitDir.Reflect(n)
	default:
		refracted, ok := unitDir.Refract(n, eta)
		if !ok {
			dir = unitDir.Reflect(n)
		} else {
			dir = refracted
		}
	}

	if dir.NearZero() {
		dir = n
	}
	return ScatterRecord{SkipPDF: true, SkipPDFRay: offsetRay(hit, dir.Normalize()), DoSpecular: 1}
}

// schlick computes Schlick's approximation R0 + (1-R0)(1-cosTheta)^5.
func schlick(cosTheta, eta float32) float32 {
	r0 := (1 - eta) / (1 + eta)
	r0 = r0 * r0
	return r0 + (1-r0)*float32(math.Pow(float64(1-cosTheta), 5))
}

// scatterIsotropic implements the Henyey-Greenstein phase function with
// g = SpecularStrength, sampling cos(theta) relative to the incoming
// direction per spec.md §4.5.
func scatterIsotropic(m Material, rayDir rmath.Vec3, hit geom.HitRecord, state *rng.State) ScatterRecord {
	g := m.SpecularStrength
	r, rp := state.Float32Pair()

	var cosTheta float32
	if rmath.Abs32(g) < 1e-3 {
		cosTheta = 1 - 2*r
	} else {
		sqr := (1 - g*g) / (1 - g + 2*g*r)
		cosTheta = (1 + g*g - sqr*sqr) / (2 * g)
	}
	cosTheta = rmath.Clamp32(cosTheta, -1, 1)
	sinTheta := float32(math.Sqrt(float64(1 - cosTheta*cosTheta)))
	phi := 2 * math.Pi * float64(rp)

	incoming := rayDir.Normalize()
	u, v, w := onb(incoming)
	dir := u.Mul(sinTheta * float32(math.Cos(phi))).
		Add(v.Mul(sinTheta * float32(math.Sin(phi)))).
		Add(w.Mul(cosTheta)).Normalize()

	return ScatterRecord{SkipPDF: true, SkipPDFRay: offsetRay(hit, dir), DoSpecular: 1}
}

func uniformInUnitSphere(state *rng.State) rmath.Vec3 {
	for {
		p := rmath.Vec3{
			X: 2*state.Float32() - 1,
			Y: 2*state.Float32() - 1,
			Z: 2*state.Float32() - 1,
		}
		if p.LengthSqr() < 1 {
			return p
		}
	}
}

// offsetRay nudges the scatter ray origin along its direction to avoid
// immediate self-intersection, the "origin += dir*5e-4" bias spec.md
// §4.8.1 specifies.
func offsetRay(hit geom.HitRecord, dir rmath.Vec3) geom.Ray {
	const bias = 5e-4
	origin := hit.Global.Position.Add(dir.Mul(bias))
	return geom.NewRay(origin, dir)
}
