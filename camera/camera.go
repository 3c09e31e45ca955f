// Package camera implements spec.md §4.2's ray generation and
// differential construction: a single code path that produces either
// a perspective or an orthographic ray by varying only how the ray
// origin is derived from the "world-space pixel point".
//
// Grounded on the teacher's scene/camera.go (Position/Rotation fields,
// FOV-driven projection setup), replaced the view/projection-matrix
// rasterizer pipeline with per-pixel ray construction since nothing in
// this tree rasterizes; kept the rotation-as-basis idea but expressed
// it as a plain orthonormal Mat4 instead of a Quaternion, since the
// hit loop never needs to interpolate camera orientation.
package camera

import (
	"math"

	"pathforge/geom"
	"pathforge/rmath"
)

// Camera holds the orthonormal view basis and lens parameters spec.md
// §4.2's pixel-to-ray formula consumes.
type Camera struct {
	Eye          rmath.Vec3
	View         rmath.Mat4 // rows: right, up, -forward (camera-to-world rotation under MulDir's row-vector convention)
	FovFactor    float32    // 1/tan(fov/2); spec.md's concrete value is 1/tan(30deg)
	Orthographic bool
	Width        int
	Height       int
}

// NewPerspective builds a camera looking from eye toward target with
// the given vertical half-angle fovDegrees, matching the "1/tan(30
// deg)" constant spec.md's Monte-Carlo scenario names when fovDegrees
// is 30 (a 60-degree full vertical field of view).
func NewPerspective(eye, target, up rmath.Vec3, fovDegrees float32, width, height int) Camera {
	forward := target.Sub(eye).Normalize()
	right := forward.Cross(up).Normalize()
	trueUp := right.Cross(forward)

	view := rmath.Mat4{
		{right.X, right.Y, right.Z, 0},
		{trueUp.X, trueUp.Y, trueUp.Z, 0},
		{-forward.X, -forward.Y, -forward.Z, 0},
		{0, 0, 0, 1},
	}

	fov := float64(fovDegrees) * math.Pi / 180
	return Camera{
		Eye:       eye,
		View:      view,
		FovFactor: float32(1.0 / math.Tan(fov)),
		Width:     width,
		Height:    height,
	}
}

// pixelPoint implements spec.md §4.2's NDC mapping and world-space
// pixel point for a pixel (x,y) with sub-pixel offset (sx,sy).
func (c Camera) pixelPoint(x, y int, sx, sy float32) rmath.Vec3 {
	aspect := float32(c.Width) / float32(c.Height)
	s := aspect * (2*(float32(x)+sx)/float32(c.Width) - 1)
	t := -(2*(float32(y)+sy)/float32(c.Height) - 1)

	dir := c.View.MulDir(rmath.Vec3{X: s, Y: t, Z: -c.FovFactor})
	return c.Eye.Add(dir)
}

// rayOrigin implements view_ray_origin_matrix: constant eye for
// perspective, lens-plane offset (no forward displacement) for
// orthographic, per spec.md §4.2's "supports both perspective... and
// orthographic" note.
func (c Camera) rayOrigin(x, y int, sx, sy float32) rmath.Vec3 {
	if !c.Orthographic {
		return c.Eye
	}
	aspect := float32(c.Width) / float32(c.Height)
	s := aspect * (2*(float32(x)+sx)/float32(c.Width) - 1)
	t := -(2*(float32(y)+sy)/float32(c.Height) - 1)
	lensOffset := c.View.MulDir(rmath.Vec3{X: s, Y: t, Z: 0})
	return c.Eye.Add(lensOffset)
}

// GenerateRay builds the primary ray through pixel (x,y) with sub-pixel
// offset (sx,sy), used both for the single-sample deterministic pass
// and each Monte-Carlo sample.
func (c Camera) GenerateRay(x, y int, sx, sy float32) geom.Ray {
	point := c.pixelPoint(x, y, sx, sy)
	origin := c.rayOrigin(x, y, sx, sy)
	return geom.NewRay(origin, point.Sub(origin))
}

// Differentials re-runs ray generation at the (+1,0) and (0,+1) pixel
// offsets with the same sub-pixel jitter, producing the auxiliary
// directions geom.SurfaceDerivatives needs. Only meaningful at the
// first hit of a path, per spec.md §3's design-notes limitation.
func (c Camera) Differentials(x, y int, sx, sy float32) geom.Differential {
	dx := c.GenerateRay(x+1, y, sx, sy)
	dy := c.GenerateRay(x, y+1, sx, sy)
	return geom.Differential{Dx: dx.Direction, Dy: dy.Direction}
}
