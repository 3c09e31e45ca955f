package texture

import (
	"fmt"

	"pathforge/rmath"
)

// ProceduralRegistry is the external callable collaborator spec.md
// §4.6 requires for procedural albedo: an analytic function of a
// snapped local position, the surface normal, render time, and the
// two footprint derivatives, selected by a registry class id.
type ProceduralRegistry interface {
	ProceduralSelect(id int, point, normal rmath.Vec3, timeSeconds float32, dpdx, dpdy rmath.Vec3) rmath.Vec3
}

// snapToGrid rounds each component to the nearest multiple of step,
// the "grid snapping removes edge-case flicker" measure spec.md §4.6
// specifies for procedural dispatch.
func snapToGrid(p rmath.Vec3, step float32) rmath.Vec3 {
	round := func(x float32) float32 {
		return float32(int64(x/step+sign(x)*0.5)) * step
	}
	return rmath.Vec3{X: round(p.X), Y: round(p.Y), Z: round(p.Z)}
}

func sign(x float32) float32 {
	if x < 0 {
		return -1
	}
	return 1
}

const proceduralSnapEpsilon = 1e-4

func (r *Registry) proceduralColor(id int, point, normal rmath.Vec3, timeSeconds float32, dpdx, dpdy rmath.Vec3) rmath.Vec3 {
	snapped := snapToGrid(point, proceduralSnapEpsilon)
	key := fmt.Sprintf("%d|%.4f,%.4f,%.4f|%.3f,%.3f,%.3f|%.3f",
		id, snapped.X, snapped.Y, snapped.Z, normal.X, normal.Y, normal.Z, timeSeconds)

	if r.cache != nil {
		if cached, ok := r.cache.Get(key); ok {
			return cached.(rmath.Vec3)
		}
	}

	result := r.Procedural.ProceduralSelect(id, snapped, normal, timeSeconds, dpdx, dpdy)
	if r.cache != nil {
		r.cache.Add(key, result)
	}
	return result
}

// CheckerRegistry is a minimal ProceduralRegistry: class 0 is a
// checkerboard over the local-space position it is given (the canonical procedural test pattern this
// family of path tracers ships), every other id falls back to a flat
// mid-gray so an unrecognized uid degrades instead of panicking.
type CheckerRegistry struct {
	Odd, Even rmath.Vec3
	Scale     float32
}

// NewCheckerRegistry returns a CheckerRegistry with the conventional
// dark-gray (0.1) / light-gray (0.9) squares at unit scale.
func NewCheckerRegistry() CheckerRegistry {
	return CheckerRegistry{
		Odd:   rmath.Vec3{X: 0.1, Y: 0.1, Z: 0.1},
		Even:  rmath.Vec3{X: 0.9, Y: 0.9, Z: 0.9},
		Scale: 1.0,
	}
}

func (c CheckerRegistry) ProceduralSelect(id int, point, normal rmath.Vec3, timeSeconds float32, dpdx, dpdy rmath.Vec3) rmath.Vec3 {
	if id != 0 {
		return rmath.Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	}
	scale := c.Scale
	if scale == 0 {
		scale = 1
	}
	cell := int64(floorDiv(point.X, scale)) + int64(floorDiv(point.Y, scale)) + int64(floorDiv(point.Z, scale))
	if cell%2 == 0 {
		return c.Even
	}
	return c.Odd
}

func floorDiv(x, scale float32) float32 {
	v := x / scale
	f := float32(int64(v))
	if v < 0 && f != v {
		f--
	}
	return f
}
