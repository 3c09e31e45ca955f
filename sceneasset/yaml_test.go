package sceneasset

import (
	"math"
	"testing"

	"pathforge/material"
	"pathforge/rmath"
)

const minimalScene = `
background: [0.1, 0.1, 0.1]
materials:
  - class: lambertian
    albedo: [0.8, 0.2, 0.2]
  - class: mirror
    albedo: [0.9, 0.9, 0.9]
quads:
  - q: [-1, -1, -5]
    u: [2, 0, 0]
    v: [0, 2, 0]
    material: 0
    object_uid: 1
  - q: [-1, 2, -5]
    u: [2, 0, 0]
    v: [0, 0.01, 0]
    material: 1
    object_uid: 2
    is_light: true
`

func TestLoadYAMLParsesMaterialsAndLights(t *testing.T) {
	scene, quads, err := LoadYAML([]byte(minimalScene), nil)
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}

	if len(scene.Materials) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(scene.Materials))
	}
	if scene.Materials[0].MaterialClass != material.Lambertian {
		t.Errorf("expected material 0 to be Lambertian, got %v", scene.Materials[0].MaterialClass)
	}
	if scene.Materials[1].MaterialClass != material.Mirror {
		t.Errorf("expected material 1 to be Mirror, got %v", scene.Materials[1].MaterialClass)
	}

	if len(quads) != 2 {
		t.Fatalf("expected 2 quads total, got %d", len(quads))
	}
	if len(scene.Lights) != 1 {
		t.Fatalf("expected exactly 1 light quad, got %d", len(scene.Lights))
	}
	if scene.Lights[0].ObjectUID != 2 {
		t.Errorf("expected the light quad to carry object_uid=2, got %d", scene.Lights[0].ObjectUID)
	}
}

func TestLoadYAMLRejectsUnknownMaterialClass(t *testing.T) {
	const bad = `
materials:
  - class: plasma
    albedo: [1, 1, 1]
`
	_, _, err := LoadYAML([]byte(bad), nil)
	if err == nil {
		t.Fatal("expected an error for an unsupported material class")
	}
}

// TestLoadYAMLAppliesSDFRotation confirms a nonzero rotation_angle_degrees
// actually rotates the instance's location transform (rather than being
// silently dropped) and that InverseLocation still round-trips it, the
// same property geom's SDF sphere-tracing round trip test checks.
func TestLoadYAMLAppliesSDFRotation(t *testing.T) {
	const rotated = `
materials:
  - class: lambertian
    albedo: [1, 1, 1]
sdfs:
  - location: [0, 0, 0]
    rotation_axis: [0, 1, 0]
    rotation_angle_degrees: 90
    class_index: 0
    material: 0
`
	scene, _, err := LoadYAML([]byte(rotated), nil)
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}

	if len(scene.Tree.SDFs) != 1 {
		t.Fatalf("expected 1 SDF instance, got %d", len(scene.Tree.SDFs))
	}
	inst := scene.Tree.SDFs[0]

	localAxis := rmath.Vec3{X: 1, Y: 0, Z: 0}
	worldAxis := inst.Location.MulDir(localAxis)
	if math.Abs(float64(worldAxis.X)) > 1e-4 {
		t.Errorf("expected a 90-degree yaw about Y to rotate +X off the X axis, got %v", worldAxis)
	}

	p := rmath.Vec3{X: 1.5, Y: 2.5, Z: -3.5}
	roundTrip := inst.InverseLocation.MulVec3(inst.Location.MulVec3(p))
	if roundTrip.Sub(p).Length() > 1e-4 {
		t.Errorf("InverseLocation did not invert the rotated Location: got %v want %v", roundTrip, p)
	}
}

func TestLoadYAMLRejectsOutOfRangeMaterialIndex(t *testing.T) {
	const bad = `
materials:
  - class: lambertian
    albedo: [1, 1, 1]
quads:
  - q: [0, 0, 0]
    u: [1, 0, 0]
    v: [0, 1, 0]
    material: 5
`
	_, _, err := LoadYAML([]byte(bad), nil)
	if err == nil {
		t.Fatal("expected an error for an out-of-range material index")
	}
}
