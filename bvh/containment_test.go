package bvh

import (
	"testing"

	"pathforge/geom"
	"pathforge/rmath"
	"pathforge/sdfshapes"
)

func TestContainmentQueryFindsEnclosingSDF(t *testing.T) {
	identity := rmath.Mat4Identity()
	sdf := geom.SDFInstance{
		Location:        identity,
		InverseLocation: identity,
		StepScale:       1,
		ClassIndex:      int(sdfshapes.Sphere),
		ObjectUID:       1,
	}
	tree := Build(nil, []geom.SDFInstance{sdf})

	d, ok := tree.ContainmentQuery(rmath.Vec3{X: 0, Y: 0, Z: 0}, rmath.Vec3{X: 0, Y: 1, Z: 0}, 0, sdfshapes.Registry{})
	if !ok {
		t.Fatal("expected the origin to fall within the sphere's inflated AABB")
	}
	if d >= 0 {
		t.Errorf("expected a negative signed distance from inside the sphere, got %v", d)
	}
}

func TestContainmentQueryMissesFarOutsidePoint(t *testing.T) {
	identity := rmath.Mat4Identity()
	sdf := geom.SDFInstance{
		Location:        identity,
		InverseLocation: identity,
		StepScale:       1,
		ClassIndex:      int(sdfshapes.Sphere),
		ObjectUID:       1,
	}
	tree := Build(nil, []geom.SDFInstance{sdf})

	_, ok := tree.ContainmentQuery(rmath.Vec3{X: 100, Y: 100, Z: 100}, rmath.Vec3{X: 0, Y: 1, Z: 0}, 0, sdfshapes.Registry{})
	if ok {
		t.Error("expected no containing SDF leaf for a point far outside every inflated AABB")
	}
}
