package geom

import (
	"math"
	"testing"

	"pathforge/rmath"
)

func TestTriangleHitCentroid(t *testing.T) {
	tri := Triangle{
		A: rmath.Vec3{X: -1, Y: -1, Z: -5},
		B: rmath.Vec3{X: 1, Y: -1, Z: -5},
		C: rmath.Vec3{X: 0, Y: 1, Z: -5},
	}
	n := rmath.Vec3{X: 0, Y: 0, Z: 1}
	tri.NA, tri.NB, tri.NC = n, n, n

	centroid := tri.A.Add(tri.B).Add(tri.C).Mul(1.0 / 3.0)
	origin := rmath.Vec3{}
	ray := NewRay(origin, centroid.Sub(origin))

	var rec HitRecord
	if !tri.Hit(ray, 1e-3, 1e30, 1e30, &rec) {
		t.Fatal("expected hit through the triangle's centroid")
	}

	wantT := centroid.Sub(origin).Length()
	if math.Abs(float64(rec.T-wantT)) > 1e-4 {
		t.Errorf("T: expected %v, got %v", wantT, rec.T)
	}
	if rec.Global.Normal.Dot(n) < 0.999 {
		t.Errorf("normal: expected close to %v, got %v", n, rec.Global.Normal)
	}
	if !rec.FrontFace {
		t.Error("expected front-face hit for a ray opposing the geometric normal")
	}
}

func TestTriangleMissesOutsideEdges(t *testing.T) {
	tri := Triangle{
		A: rmath.Vec3{X: -1, Y: -1, Z: -5},
		B: rmath.Vec3{X: 1, Y: -1, Z: -5},
		C: rmath.Vec3{X: 0, Y: 1, Z: -5},
	}
	n := rmath.Vec3{X: 0, Y: 0, Z: 1}
	tri.NA, tri.NB, tri.NC = n, n, n

	target := rmath.Vec3{X: 5, Y: 5, Z: -5}
	ray := NewRay(rmath.Vec3{}, target)

	var rec HitRecord
	if tri.Hit(ray, 1e-3, 1e30, 1e30, &rec) {
		t.Error("expected miss for a ray well outside the triangle's footprint")
	}
}
