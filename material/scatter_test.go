package material

import (
	"math"
	"testing"

	"pathforge/geom"
	"pathforge/rmath"
	"pathforge/rng"
)

func glassHit(frontFace bool) geom.HitRecord {
	var rec geom.HitRecord
	rec.Global.Position = rmath.Vec3{X: 0, Y: 0, Z: 0}
	rec.Global.Normal = rmath.Vec3{X: 0, Y: 1, Z: 0}
	rec.FrontFace = frontFace
	return rec
}

func incidentAt(angleDegrees float64) rmath.Vec3 {
	angle := angleDegrees * math.Pi / 180
	return rmath.Vec3{X: float32(math.Sin(angle)), Y: float32(-math.Cos(angle)), Z: 0}.Normalize()
}

func TestGlassAirToGlassRefractsAt70Degrees(t *testing.T) {
	m := Material{RefractiveIndex: 1.5, MaterialClass: Glass}
	hit := glassHit(true) // entering: air -> glass
	rayDir := incidentAt(70)

	rec := ScatterDeterministicGlass(m, rayDir, hit)

	reflected := rayDir.Reflect(hit.Global.Normal)
	if rec.SkipPDFRay.Direction.Dot(reflected) > 0.999 {
		t.Error("expected air-to-glass at 70 degrees to refract, not reflect")
	}
	// A refracted ray must keep pointing into the lower half-space.
	if rec.SkipPDFRay.Direction.Y >= 0 {
		t.Errorf("expected the refracted ray to continue downward, got %v", rec.SkipPDFRay.Direction)
	}
}

func TestGlassTotalInternalReflectionAt50Degrees(t *testing.T) {
	m := Material{RefractiveIndex: 1.5, MaterialClass: Glass}
	hit := glassHit(false) // exiting: glass -> air, past the ~41.8 degree critical angle
	rayDir := incidentAt(50)

	rec := ScatterDeterministicGlass(m, rayDir, hit)

	reflected := rayDir.Reflect(hit.Global.Normal)
	if rec.SkipPDFRay.Direction.Dot(reflected) < 0.999 {
		t.Errorf("expected TIR at 50 degrees past the critical angle, got direction %v", rec.SkipPDFRay.Direction)
	}
}

func TestMirrorReflectsTowardExpectedDirection(t *testing.T) {
	m := Material{MaterialClass: Mirror, Roughness: 0}
	var hit geom.HitRecord
	hit.Global.Position = rmath.Vec3{}
	hit.Global.Normal = rmath.Vec3{X: 0, Y: 1, Z: 0}

	rayDir := rmath.Vec3{X: 1, Y: -1, Z: 0}.Normalize()
	state := rng.NewFromSeed(1)

	rec := scatterMirror(m, rayDir, hit, state)

	want := rayDir.Reflect(hit.Global.Normal)
	got := rec.SkipPDFRay.Direction
	if got.Dot(want) < 0.999999 {
		t.Errorf("zero-roughness mirror: expected direction %v, got %v", want, got)
	}
}
