// Package sdfshapes implements geom.SDFRegistry with a small fixed set
// of analytic signed-distance functions, the "sdf_select" callable
// spec.md's core leaves pluggable. Grounded on spec.md §4.3/§4.7's
// interface contract directly — the example pack's own ray-marching
// code (other_examples' onuse-worldgenerator GLSL atmosphere shader)
// implements only a planetary sphere, not the general primitive set a
// scene author needs, so this registry supplies the standard sphere/
// box/torus distance functions instead of porting a narrower one.
package sdfshapes

import (
	"math"

	"pathforge/rmath"
)

// Class indexes a fixed analytic shape; the SDF instance's Location
// matrix provides translation/scale, so every class here is evaluated
// as if centered at the origin.
const (
	Sphere Class = iota
	Box
	Torus
	RoundedBox
)

type Class int

// Registry implements geom.SDFRegistry over the Class set above.
// Non-deforming: SDFApplyAnimation is the identity, since none of the
// four classes currently uses the animation clock.
type Registry struct{}

func (Registry) SDFSelect(classIndex int, point rmath.Vec3, time float32) float32 {
	switch Class(classIndex) {
	case Box:
		return boxSDF(point, rmath.Vec3{X: 0.5, Y: 0.5, Z: 0.5})
	case Torus:
		return torusSDF(point, 0.5, 0.18)
	case RoundedBox:
		return roundedBoxSDF(point, rmath.Vec3{X: 0.4, Y: 0.4, Z: 0.4}, 0.1)
	default:
		return sphereSDF(point, 0.5)
	}
}

func (Registry) SDFApplyAnimation(classIndex int, point rmath.Vec3, time float32) rmath.Vec3 {
	return point
}

func sphereSDF(p rmath.Vec3, radius float32) float32 {
	return p.Length() - radius
}

func boxSDF(p, half rmath.Vec3) float32 {
	qx := rmath.Abs32(p.X) - half.X
	qy := rmath.Abs32(p.Y) - half.Y
	qz := rmath.Abs32(p.Z) - half.Z
	outside := rmath.Vec3{X: rmath.Max32(qx, 0), Y: rmath.Max32(qy, 0), Z: rmath.Max32(qz, 0)}.Length()
	inside := rmath.Min32(rmath.Max32(qx, rmath.Max32(qy, qz)), 0)
	return outside + inside
}

func roundedBoxSDF(p, half rmath.Vec3, radius float32) float32 {
	return boxSDF(p, half.Sub(rmath.Vec3{X: radius, Y: radius, Z: radius})) - radius
}

func torusSDF(p rmath.Vec3, majorRadius, minorRadius float32) float32 {
	qx := float32(math.Sqrt(float64(p.X*p.X+p.Z*p.Z))) - majorRadius
	qy := p.Y
	return float32(math.Sqrt(float64(qx*qx+qy*qy))) - minorRadius
}
