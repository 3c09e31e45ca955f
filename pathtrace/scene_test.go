package pathtrace

import (
	"math"
	"testing"

	"pathforge/bvh"
	"pathforge/camera"
	"pathforge/geom"
	"pathforge/material"
	"pathforge/rmath"
)

// noopSDFRegistry stands in for geom.SDFRegistry in scenes with no SDF
// instances, where it is never actually invoked.
type noopSDFRegistry struct{}

func (noopSDFRegistry) SDFSelect(classIndex int, point rmath.Vec3, time float32) float32 {
	return 1e30
}
func (noopSDFRegistry) SDFApplyAnimation(classIndex int, point rmath.Vec3, time float32) rmath.Vec3 {
	return point
}

// missOnlyScene builds the concrete scenario 1 scene: a single quad far
// outside the camera's view frustum, wired into the scene's flat
// parallelogram array and tested on every ray like any other quad, but
// never actually struck since it sits behind the camera's field of view.
func missOnlyScene() *Scene {
	quad := geom.NewParallelogram(
		rmath.Vec3{X: 10, Y: 10, Z: 10},
		rmath.Vec3{X: 1, Y: 0, Z: 0},
		rmath.Vec3{X: 0, Y: 1, Z: 0},
		0, 1,
	)
	tree := bvh.Build(nil, nil)

	return &Scene{
		Tree:       tree,
		Materials:  material.Table{{MaterialClass: material.Lambertian}},
		Quads:      []geom.Parallelogram{quad},
		Lights:     nil,
		Background: rmath.Vec3{X: 0.1, Y: 0.1, Z: 0.1},
		SDF:        noopSDFRegistry{},
	}
}

func TestMissOnlyFrameFillsBackgroundAndZeroObjectUID(t *testing.T) {
	scene := missOnlyScene()
	cam := camera.NewPerspective(
		rmath.Vec3{X: 0, Y: 0, Z: 0},
		rmath.Vec3{X: 0, Y: 0, Z: -1},
		rmath.Vec3{X: 0, Y: 1, Z: 0},
		30, 8, 8,
	)

	fb := NewFrameBuffer(8, 8)
	uniforms := Uniforms{FrameNumber: 1, PixelSideSubdivision: 1}
	scene.RenderFrame(cam, fb, uniforms, ModeMonteCarlo)

	for i, c := range fb.Color {
		if math.Abs(float64(c.X-0.1)) > 1e-5 || math.Abs(float64(c.Y-0.1)) > 1e-5 || math.Abs(float64(c.Z-0.1)) > 1e-5 {
			t.Fatalf("pixel %d: expected background (0.1,0.1,0.1), got %v", i, c)
		}
	}
	for i, uid := range fb.ObjectID {
		if uid != 0 {
			t.Fatalf("pixel %d: expected object_uid=0 on a miss, got %d", i, uid)
		}
	}
}

// TestSceneHitsParallelogramDirectly exercises scenario 2's requirement
// that a camera ray can hit a Lambertian quad directly: a back wall
// facing the camera, with no BVH geometry at all, must register as a
// hit with the wall's object uid and material.
func TestSceneHitsParallelogramDirectly(t *testing.T) {
	backWall := geom.NewParallelogram(
		rmath.Vec3{X: -2, Y: -2, Z: -5},
		rmath.Vec3{X: 4, Y: 0, Z: 0},
		rmath.Vec3{X: 0, Y: 4, Z: 0},
		0, 7,
	)
	scene := &Scene{
		Tree:       bvh.Build(nil, nil),
		Materials:  material.Table{{MaterialClass: material.Lambertian, Albedo: rmath.Vec3{X: 0.8, Y: 0, Z: 0}}},
		Quads:      []geom.Parallelogram{backWall},
		Background: rmath.Vec3{X: 0.1, Y: 0.1, Z: 0.1},
		SDF:        noopSDFRegistry{},
	}

	ray := geom.NewRay(rmath.Vec3{}, rmath.Vec3{X: 0, Y: 0, Z: -1})
	var rec geom.HitRecord
	if !scene.Hit(ray, rayTMin, rayTMax, &rec) {
		t.Fatal("expected a camera ray straight down -z to hit the back wall parallelogram")
	}
	if rec.ObjectUID != 7 {
		t.Errorf("expected object_uid=7 for the back wall, got %d", rec.ObjectUID)
	}
}

// TestHardShadowOccludedByParallelogram confirms a quad wall between a
// shaded point and the light blocks the deterministic hard-shadow test,
// per spec.md §4.8.2 — previously only BVH geometry could occlude.
func TestHardShadowOccludedByParallelogram(t *testing.T) {
	occluder := geom.NewParallelogram(
		rmath.Vec3{X: -2, Y: -2, Z: -2},
		rmath.Vec3{X: 4, Y: 0, Z: 0},
		rmath.Vec3{X: 0, Y: 4, Z: 0},
		0, 1,
	)
	scene := &Scene{
		Tree:      bvh.Build(nil, nil),
		Materials: material.Table{{MaterialClass: material.Lambertian}},
		Quads:     []geom.Parallelogram{occluder},
		SDF:       noopSDFRegistry{},
	}

	p := rmath.Vec3{X: 0, Y: 0, Z: 0}
	lightDir := rmath.Vec3{X: 0, Y: 0, Z: -1}
	shadow := scene.hardShadow(p, lightDir, 10)
	if shadow != 0 {
		t.Errorf("expected the quad occluder to fully shadow the point, got %v", shadow)
	}
}
