package pathtrace

import (
	"math"

	"pathforge/geom"
	"pathforge/material"
	"pathforge/rmath"
	"pathforge/rng"
)

const deterministicMaxBounces = 8

// RayColorDeterministic implements spec.md §4.8.2: analytic direct
// lighting on the first Lambert hit, roughness-jittered mirror
// continuation, a deterministic (always-refract) glass path, and a
// flat return for anything else. It never touches the PCG stream —
// only rng.LowQualityHash2, seeded by hit position, for the mirror
// jitter, preserving the two-RNG split the design notes require.
func (s *Scene) RayColorDeterministic(ray geom.Ray, diff geom.Differential, uniforms Uniforms) rmath.Vec3 {
	currentRay := ray

	for bounce := 0; bounce < deterministicMaxBounces; bounce++ {
		var rec geom.HitRecord
		if !s.Hit(currentRay, rayTMin, rayTMax, &rec) {
			return s.Background
		}

		mat := s.Materials.Lookup(rec.MaterialID)

		var dpdx, dpdy rmath.Vec3
		if bounce == 0 {
			dpdx, dpdy = geom.SurfaceDerivatives(currentRay, diff, rec)
		}
		albedo := mat.Albedo
		if s.Textures != nil {
			albedo = s.Textures.ResolveAlbedo(mat.AlbedoTextureUID, mat.Albedo, rec.Local.Position, rec.Local.Normal, uniforms.GlobalTimeSeconds, dpdx, dpdy)
		}

		switch mat.MaterialClass {
		case material.Lambertian:
			return s.directLight(mat, rec, currentRay, albedo)
		case material.Mirror:
			currentRay = deterministicMirrorBounce(mat, rec, currentRay)
		case material.Glass:
			scatter := material.ScatterDeterministicGlass(mat, currentRay.Direction, rec)
			currentRay = scatter.SkipPDFRay
		default:
			return albedo
		}
	}
	return rmath.Vec3Zero
}

// directLight implements spec.md §4.8.2's analytic Lambert/Phong term,
// hard shadow test, and SDF ambient occlusion.
func (s *Scene) directLight(mat material.Material, rec geom.HitRecord, ray geom.Ray, albedo rmath.Vec3) rmath.Vec3 {
	light, hasLight := s.firstLight()
	if !hasLight {
		return mat.Emission.Add(s.Background.MulVec(albedo))
	}

	p := rec.Global.Position
	n := rec.Global.Normal
	lightCenter := light.SampleUniform(0.5, 0.5)
	toLight := lightCenter.Sub(p)
	lightDir := toLight.Normalize()
	viewDir := ray.Direction.Negate().Normalize()

	diffuse := rmath.Max32(0, n.Dot(lightDir))
	specAngle := rmath.Max32(0, lightDir.Negate().Reflect(n).Dot(viewDir))
	specular := specAngle * specAngle * specAngle * specAngle * diffuse

	shadow := s.hardShadow(p, lightDir, toLight.Length())
	occlusion := s.ambientOcclusion(p, n)
	lightEmission := s.Materials.Lookup(light.MaterialID).Emission

	color := mix(albedo.Mul(diffuse*occlusion), mat.Specular.Mul(specular), mat.SpecularStrength)
	color = color.MulVec(lightEmission).Mul(shadow*0.4 + 0.6)
	color = color.Add(s.Background.MulVec(albedo).Mul(occlusion))
	color = color.Add(mat.Emission)
	return color
}

// hardShadow casts a ray from p toward the light; a blocker that is
// itself emissive still counts as unblocked, per spec.md §4.8.2.
func (s *Scene) hardShadow(p, lightDir rmath.Vec3, lightDist float32) float32 {
	const bias = 5e-4
	origin := p.Add(lightDir.Mul(bias))
	shadowRay := geom.NewRay(origin, lightDir)

	var rec geom.HitRecord
	if !s.Hit(shadowRay, rayTMin, lightDist-bias, &rec) {
		return 1
	}
	blocker := s.Materials.Lookup(rec.MaterialID)
	if blocker.Emission.MaxComponent() > 0 {
		return 1
	}
	return 0
}

// ambientOcclusion implements spec.md §4.8.2's 5-sample SDF height
// march: acc accumulates max(0, h - d_sdf(P+h*n, n))*decay, decaying
// by 0.95 per sample, breaking early once acc exceeds 0.35.
func (s *Scene) ambientOcclusion(p, n rmath.Vec3) float32 {
	acc := float32(0)
	decay := float32(1)
	for i := 0; i < 5; i++ {
		h := float32(0.01) + 0.12*float32(i)/4
		sample := p.Add(n.Mul(h))
		d, ok := s.Tree.ContainmentQuery(sample, n, 0, s.SDF)
		if !ok {
			d = h // no containing SDF leaf: treat as unoccluded at this height
		}
		acc += rmath.Max32(0, h-d) * decay
		decay *= 0.95
		if acc > 0.35 {
			break
		}
	}
	return rmath.Clamp32(2.5-7*acc, 0, 1)
}

// deterministicMirrorBounce reflects with a roughness-jittered
// direction seeded from the hit position via the low-quality hash,
// per design notes §9's required two-RNG split.
func deterministicMirrorBounce(mat material.Material, rec geom.HitRecord, ray geom.Ray) geom.Ray {
	reflected := ray.Direction.Reflect(rec.Global.Normal)
	jitter := lowQualityUnitSphere(rec.Global.Position)
	dir := reflected.Add(jitter.Mul(mat.Roughness)).Normalize()
	const bias = 5e-4
	return geom.NewRay(rec.Global.Position.Add(dir.Mul(bias)), dir)
}

func lowQualityUnitSphere(seed rmath.Vec3) rmath.Vec3 {
	h1 := rng.LowQualityHash2(seed.X, seed.Y)
	h2 := rng.LowQualityHash2(seed.Y, seed.Z)
	theta := 2 * math.Pi * float64(h1)
	z := 2*h2 - 1
	r := float32(math.Sqrt(float64(1 - z*z)))
	return rmath.Vec3{X: r * float32(math.Cos(theta)), Y: r * float32(math.Sin(theta)), Z: z}
}
