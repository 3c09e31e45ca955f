package sdfshapes

import (
	"math"
	"testing"

	"pathforge/rmath"
)

func TestSphereSDFSurfaceIsZero(t *testing.T) {
	reg := Registry{}
	p := rmath.Vec3{X: 0.5, Y: 0, Z: 0}
	d := reg.SDFSelect(int(Sphere), p, 0)
	if math.Abs(float64(d)) > 1e-6 {
		t.Errorf("expected zero distance on the sphere's surface, got %v", d)
	}
}

func TestSphereSDFInsideIsNegative(t *testing.T) {
	reg := Registry{}
	d := reg.SDFSelect(int(Sphere), rmath.Vec3{}, 0)
	if d >= 0 {
		t.Errorf("expected a negative distance at the sphere's center, got %v", d)
	}
}

func TestBoxSDFCornerMatchesEuclideanDistance(t *testing.T) {
	reg := Registry{}
	// Box half-extent is (0.5,0.5,0.5); a point well outside every face
	// measures Euclidean distance to the nearest corner.
	p := rmath.Vec3{X: 1.5, Y: 1.5, Z: 1.5}
	d := reg.SDFSelect(int(Box), p, 0)
	want := float32(math.Sqrt(3 * (1.0) * (1.0)))
	if math.Abs(float64(d-want)) > 1e-4 {
		t.Errorf("expected corner distance %v, got %v", want, d)
	}
}

func TestTorusSDFSurfaceIsZero(t *testing.T) {
	reg := Registry{}
	// Major radius 0.5, minor radius 0.18: the point at
	// (majorRadius+minorRadius, 0, 0) sits exactly on the tube surface.
	p := rmath.Vec3{X: 0.5 + 0.18, Y: 0, Z: 0}
	d := reg.SDFSelect(int(Torus), p, 0)
	if math.Abs(float64(d)) > 1e-5 {
		t.Errorf("expected zero distance on the torus surface, got %v", d)
	}
}

func TestSDFApplyAnimationIsIdentity(t *testing.T) {
	reg := Registry{}
	p := rmath.Vec3{X: 1, Y: 2, Z: 3}
	got := reg.SDFApplyAnimation(int(Sphere), p, 5)
	if got != p {
		t.Errorf("expected identity passthrough, got %v", got)
	}
}
