package geom_test

import (
	"math"
	"testing"

	"pathforge/geom"
	"pathforge/rmath"
	"pathforge/sdfshapes"
)

func TestSDFInstanceSphereTracingRoundTrip(t *testing.T) {
	identity := rmath.Mat4Identity()
	instance := geom.SDFInstance{
		Location:        identity,
		InverseLocation: identity,
		StepScale:       1,
		ClassIndex:      int(sdfshapes.Sphere),
		ObjectUID:       1,
	}

	origin := rmath.Vec3{X: 0, Y: 0, Z: 3}
	ray := geom.NewRay(origin, rmath.Vec3{X: 0, Y: 0, Z: -1})

	var rec geom.HitRecord
	if !instance.Hit(ray, 1e-3, 1e30, 1e30, sdfshapes.Registry{}, &rec) {
		t.Fatal("expected the ray to hit the unit-radius-0.5 sphere")
	}

	// Re-sampling the SDF at the returned hit point must be within
	// 1e-4*t of zero, the sphere-tracing round-trip property.
	d := sdfshapes.Registry{}.SDFSelect(int(sdfshapes.Sphere), rec.Global.Position, 0)
	if math.Abs(float64(d)) >= 1e-4*float64(rec.T) {
		t.Errorf("sphere-trace residual too large: |d|=%v, tolerance=%v", d, 1e-4*rec.T)
	}

	wantT := float32(3 - 0.5)
	if math.Abs(float64(rec.T-wantT)) > 1e-3 {
		t.Errorf("T: expected close to %v, got %v", wantT, rec.T)
	}
}

func TestSDFInstanceMissesWhenPastFarPlane(t *testing.T) {
	identity := rmath.Mat4Identity()
	instance := geom.SDFInstance{
		Location:        identity,
		InverseLocation: identity,
		StepScale:       1,
		ClassIndex:      int(sdfshapes.Sphere),
		ObjectUID:       1,
	}

	// Ray pointed away from the sphere entirely.
	ray := geom.NewRay(rmath.Vec3{X: 0, Y: 0, Z: 3}, rmath.Vec3{X: 0, Y: 0, Z: 1})

	var rec geom.HitRecord
	if instance.Hit(ray, 1e-3, 1e30, 1e30, sdfshapes.Registry{}, &rec) {
		t.Error("expected a miss for a ray pointed away from the sphere")
	}
}
