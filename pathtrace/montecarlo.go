package pathtrace

import (
	"pathforge/geom"
	"pathforge/material"
	"pathforge/rmath"
	"pathforge/rng"
)

const monteCarloMaxBounces = 50

// RayColorMonteCarlo implements spec.md §4.8.1: per-bounce intersect,
// albedo fetch, specular-vs-MIS scatter, and Russian roulette survival
// from bounce 3. diff is only used to compute surface derivatives at
// the very first hit, per the design-notes limitation that ray
// differentials are never re-derived at later bounces.
func (s *Scene) RayColorMonteCarlo(ray geom.Ray, diff geom.Differential, uniforms Uniforms, state *rng.State) rmath.Vec3 {
	throughput := rmath.Vec3One
	accumulated := rmath.Vec3Zero
	currentRay := ray

	for bounce := 0; bounce < monteCarloMaxBounces; bounce++ {
		var rec geom.HitRecord
		if !s.Hit(currentRay, rayTMin, rayTMax, &rec) {
			accumulated = accumulated.Add(s.Background.MulVec(throughput))
			break
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

		emission := rmath.Vec3Zero
		if rec.FrontFace {
			emission = mat.Emission
		}

		scatter := material.Scatter(mat, currentRay.Direction, rec, state)

		if scatter.SkipPDF {
			accumulated = accumulated.Add(emission.MulVec(throughput))
			throughput = throughput.MulVec(mix(albedo, mat.Specular, scatter.DoSpecular))
			currentRay = scatter.SkipPDFRay
		} else {
			nextRay, pdf, ok := s.sampleLambertMIS(rec, scatter, state)
			if !ok {
				accumulated = accumulated.Add(emission.MulVec(throughput))
				break
			}
			lambertPDF := material.LambertPDF(rec.Global.Normal, nextRay.Direction)
			accumulated = accumulated.Add(emission.MulVec(throughput))
			throughput = throughput.MulVec(mix(albedo, mat.Specular, scatter.DoSpecular)).Mul(lambertPDF / pdf)
			currentRay = nextRay
		}

		if bounce > 2 {
			p := throughput.MaxComponent()
			if state.Float32() > p {
				break
			}
			if p > 0 {
				throughput = throughput.Mul(1 / p)
			}
		}
	}

	return accumulated
}

// sampleLambertMIS implements the 0.2-light / 0.8-Lambert mixture and
// combined PDF of spec.md §4.8.1. ok is false on PDF underflow
// (<=1e-5), the bounded-energy early-out.
func (s *Scene) sampleLambertMIS(rec geom.HitRecord, scatter material.ScatterRecord, state *rng.State) (geom.Ray, float32, bool) {
	const lightWeight = 0.2
	const lambertWeight = 0.8
	const minPDF = 1e-5

	light, hasLight := s.firstLight()

	candidate := scatter.SkipPDFRay
	if hasLight && state.Float32() < lightWeight {
		candidate = material.SampleLight(light, rec.Global.Position, state)
	}

	lambertPDF := material.LambertPDF(rec.Global.Normal, candidate.Direction)
	pdf := lambertWeight * lambertPDF
	if hasLight {
		var lightHit geom.HitRecord
		if light.Hit(candidate, rayTMin, rayTMax, rayTMax, &lightHit) {
			pdf += lightWeight * material.QuadLightPDF(light, rec.Global.Position, candidate.Direction, lightHit.T)
		}
	}

	if pdf <= minPDF {
		return geom.Ray{}, 0, false
	}
	return candidate, pdf, true
}
