// Package pathtrace implements spec.md §4.8/§4.9's two rendering
// loops — a stochastic Monte-Carlo path tracer with multiple-
// importance sampling and Russian roulette, and a deterministic
// direct-lighting tracer — plus the first-hit surface-attribute pass
// and the goroutine-per-row-band host dispatch that stands in for the
// GPU's per-pixel invocations.
//
// Grounded on the teacher's renderer package for the per-frame
// dispatch shape and other_examples' gazed-vu/eg/rt.go for the
// channel-fed row-worker pool (CPU stand-in for 8x8 GPU workgroups).
package pathtrace

import (
	"pathforge/bvh"
	"pathforge/geom"
	"pathforge/material"
	"pathforge/rmath"
	"pathforge/texture"
)

// Scene bundles the read-only resource groups spec.md §5 names:
// geometry/BVH, materials, and the texture atlas group, plus the
// light list and background the loops sample against. Quads is the
// full flat parallelogram array spec.md §1's "mixed scene of
// parallelograms, triangles, and SDF primitives" names — every quad
// the scene file defines, not only the emissive ones in Lights.
type Scene struct {
	Tree       *bvh.Tree
	Materials  material.Table
	Textures   *texture.Registry
	Quads      []geom.Parallelogram
	Lights     []geom.Parallelogram
	Background rmath.Vec3
	SDF        geom.SDFRegistry
}

// Hit intersects ray against the whole scene: the BVH (triangles and
// SDF instances) plus the flat parallelogram array, which is never a
// BVH member (spec.md §4.3/§4.4 — only Triangle and SDF are BVH leaf
// types). closestSoFar shrinks across both passes so the reported hit
// is the nearest across the mixed geometry, the same combining rule
// bvh.Tree.Hit already uses internally across its own leaf types.
func (s *Scene) Hit(ray geom.Ray, tMin, tMax float32, rec *geom.HitRecord) bool {
	closest := tMax
	anyHit := s.Tree.Hit(ray, tMin, closest, s.SDF, rec)
	if anyHit {
		closest = rec.T
	}
	for i := range s.Quads {
		if s.Quads[i].Hit(ray, tMin, tMax, closest, rec) {
			closest = rec.T
			anyHit = true
		}
	}
	return anyHit
}

// Uniforms is the per-frame uniform group spec.md §5 describes.
type Uniforms struct {
	FrameNumber          uint32
	GlobalTimeSeconds    float32
	PixelSideSubdivision int
}

const (
	rayTMin = 1e-3
	rayTMax = 1e30
)

// firstLight returns the scene's first emissive quad, the "first
// emissive quad (lights)" spec.md §4.8.1 samples toward. ok is false
// when the scene has no lights, in which case callers skip MIS light
// sampling entirely.
func (s *Scene) firstLight() (geom.Parallelogram, bool) {
	if len(s.Lights) == 0 {
		return geom.Parallelogram{}, false
	}
	return s.Lights[0], true
}

// mix linearly interpolates a toward b by t, the "mix(albedo,
// specular, doSpecular)" helper spec.md §4.8.1 calls throughout.
func mix(a, b rmath.Vec3, t float32) rmath.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}
