package material

import (
	"math"

	"pathforge/geom"
	"pathforge/rmath"
	"pathforge/rng"
)

// quadLightMinPDF is the MIN_FLOAT sentinel spec.md §4.8.1 names for
// the parallel-or-outside case: a PDF too small to meaningfully
// contribute to the MIS denominator, as opposed to the true-zero
// back-face case.
const quadLightMinPDF = math.SmallestNonzeroFloat32

// QuadLightPDF evaluates the solid-angle PDF of hitting quad along dir
// from origin, given the already-computed ray parameter t along dir
// (dir need not be unit length; t*|dir| is the distance), per spec.md §4.8.1's
// light-sampling formula: zero on back-face, MIN_FLOAT when parallel
// or degenerate, else t^2*|D|^2 / (|D.n|/|D| * area).
//
// Grounded on other_examples' df07-go-progressive-raytracer
// CalculateLightPDF/PowerHeuristic shape, rewritten against the
// Parallelogram primitive's precomputed normal/area fields instead of
// a generic Hittable.PDFValue method.
func QuadLightPDF(quad geom.Parallelogram, origin rmath.Vec3, dir rmath.Vec3, t float32) float32 {
	denom := dir.Dot(quad.Normal)
	if denom >= 0 {
		return 0 // back-face: the light only emits from its front side.
	}

	distSqr := t * t * dir.LengthSqr()
	cosine := rmath.Abs32(denom) / dir.Length()
	if cosine < 1e-8 {
		return quadLightMinPDF
	}

	area := quad.Area()
	if area < 1e-8 {
		return quadLightMinPDF
	}

	return distSqr / (cosine * area)
}

// SampleLight draws a uniform point on quad and returns the ray from
// origin toward it, the "sample a point uniformly on the first
// emissive quad" step of spec.md §4.8.1.
func SampleLight(quad geom.Parallelogram, origin rmath.Vec3, state *rng.State) geom.Ray {
	r1, r2 := state.Float32Pair()
	target := quad.SampleUniform(r1, r2)
	return geom.NewRay(origin, target.Sub(origin))
}

// LambertPDF is the cosine-weighted diffuse PDF cos(theta)/pi used in
// the 0.2/0.8 MIS blend.
func LambertPDF(normal, dir rmath.Vec3) float32 {
	cosine := normal.Dot(dir.Normalize())
	if cosine <= 0 {
		return 0
	}
	return cosine / math.Pi
}
