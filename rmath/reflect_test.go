package rmath

import (
	"math"
	"testing"
)

func TestReflectIsInvolution(t *testing.T) {
	d := NewVec3(0.6, -0.8, 0).Normalize()
	n := NewVec3(0, 1, 0).Normalize()

	once := d.Reflect(n)
	twice := once.Reflect(n)

	if math.Abs(float64(twice.X-d.X)) > 1e-5 ||
		math.Abs(float64(twice.Y-d.Y)) > 1e-5 ||
		math.Abs(float64(twice.Z-d.Z)) > 1e-5 {
		t.Errorf("reflect(reflect(d,n),n): expected %v, got %v", d, twice)
	}
}

func TestRefractTotalInternalReflection(t *testing.T) {
	// Glass-to-air (eta = 1.5, going from the dense medium out) at an
	// angle well past the critical angle (~41.8 degrees) must report ok=false.
	n := NewVec3(0, 1, 0)
	angle := 70.0 * math.Pi / 180.0
	d := NewVec3(float32(math.Sin(angle)), float32(-math.Cos(angle)), 0).Normalize()

	_, ok := d.Refract(n, 1.5)
	if ok {
		t.Error("expected total internal reflection past the critical angle")
	}
}

func TestRefractBelowCriticalAngleRefracts(t *testing.T) {
	n := NewVec3(0, 1, 0)
	angle := 10.0 * math.Pi / 180.0
	d := NewVec3(float32(math.Sin(angle)), float32(-math.Cos(angle)), 0).Normalize()

	_, ok := d.Refract(n, 1.5)
	if !ok {
		t.Error("expected a shallow-angle ray to refract rather than TIR")
	}
}
