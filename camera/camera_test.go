package camera

import (
	"math"
	"testing"

	"pathforge/rmath"
)

func TestGenerateRayCenterPixelPointsForward(t *testing.T) {
	eye := rmath.Vec3{X: 0, Y: 0, Z: 0}
	target := rmath.Vec3{X: 0, Y: 0, Z: -1}
	cam := NewPerspective(eye, target, rmath.Vec3{X: 0, Y: 1, Z: 0}, 30, 100, 100)

	ray := cam.GenerateRay(50, 50, 0.5, 0.5)

	if ray.Direction.Dot(rmath.Vec3{X: 0, Y: 0, Z: -1}) < 0.999 {
		t.Errorf("expected the center pixel's ray to point straight forward, got %v", ray.Direction)
	}
	if ray.Origin != eye {
		t.Errorf("perspective camera: expected ray origin %v, got %v", eye, ray.Origin)
	}
}

func TestGenerateRayIsUnitLength(t *testing.T) {
	cam := NewPerspective(
		rmath.Vec3{X: 1, Y: 2, Z: 3},
		rmath.Vec3{X: 0, Y: 0, Z: 0},
		rmath.Vec3{X: 0, Y: 1, Z: 0},
		60, 64, 48,
	)

	ray := cam.GenerateRay(10, 20, 0.3, 0.7)
	length := ray.Direction.Length()
	if math.Abs(float64(length-1)) > 1e-5 {
		t.Errorf("expected a unit-length ray direction, got length %v", length)
	}
}

func TestDifferentialsDivergeAcrossPixels(t *testing.T) {
	cam := NewPerspective(
		rmath.Vec3{X: 0, Y: 0, Z: 0},
		rmath.Vec3{X: 0, Y: 0, Z: -1},
		rmath.Vec3{X: 0, Y: 1, Z: 0},
		30, 100, 100,
	)

	diff := cam.Differentials(50, 50, 0.5, 0.5)
	primary := cam.GenerateRay(50, 50, 0.5, 0.5)

	if diff.Dx == primary.Direction {
		t.Error("expected the +x differential ray to differ from the primary ray")
	}
	if diff.Dy == primary.Direction {
		t.Error("expected the +y differential ray to differ from the primary ray")
	}
}
