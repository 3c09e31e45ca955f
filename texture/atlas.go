package texture

import (
	"image/color"

	"pathforge/rmath"
)

// transparentAlpha is the sentinel spec.md §4.6 calls "transparent
// color" for Discard wrap mode's out-of-region fallthrough.
var transparentAlpha = rmath.Vec3{}

// Sample implements spec.md §4.6's atlas path: map local.position
// through the region's 2x4 matrix, carry dp/dx, dp/dy into
// texture-space ddx/ddy to pick a mip level and inset, apply the
// per-axis wrap policy, and blend toward flat albedo for Discard
// texels that fall outside the sampling inset.
func (a AtlasMapping) Sample(localPosition, dpdx, dpdy, flatAlbedo rmath.Vec3) rmath.Vec3 {
	uv := a.mapCoord(localPosition)
	ddx := a.mapVector(dpdx)
	ddy := a.mapVector(dpdy)

	level := a.MipLevel(ddx, ddy)
	insetU := halfTexelInset(a.RegionSize[0], level)
	insetV := halfTexelInset(a.RegionSize[1], level)

	wrappedU, alphaU := wrapAxis(uv.X, insetU, a.Wrap[0])
	wrappedV, alphaV := wrapAxis(uv.Y, insetV, a.Wrap[1])
	alpha := rmath.Min32(alphaU, alphaV)

	sampleRGB := a.fetch(rmath.Vec2{X: wrappedU, Y: wrappedV}, level)
	if alpha >= 1 {
		return sampleRGB
	}
	// result = (1-alpha)*flat + alpha*sample.rgb, spec.md §4.6.
	return flatAlbedo.Mul(1 - alpha).Add(sampleRGB.Mul(alpha))
}

// halfTexelInset is pixel_half_size/region_size at the given mip
// level, the Clamp/Discard boundary spec.md §4.6 names.
func halfTexelInset(baseSize, level int) float32 {
	size := baseSize >> uint(level)
	if size < 1 {
		size = 1
	}
	return 0.5 / float32(size)
}

// wrapAxis applies the per-axis wrap policy. alpha is 1 everywhere
// except for Discard texels outside [inset, 1-inset], where it is 0
// (fully transparent, triggering the flat-albedo fallthrough).
func wrapAxis(coord, inset float32, mode WrapMode) (wrapped, alpha float32) {
	switch mode {
	case Repeat:
		return fract(coord), 1
	case Clamp:
		return rmath.Clamp32(coord, inset, 1-inset), 1
	default: // Discard
		if coord < inset || coord > 1-inset {
			return coord, 0
		}
		return coord, 1
	}
}

func fract(x float32) float32 {
	return x - floor32(x)
}

func floor32(x float32) float32 {
	i := float32(int64(x))
	if x < 0 && i != x {
		i -= 1
	}
	return i
}

// fetch samples the nearest texel of the requested mip level. The
// core's spec names textureSampleGrad/anisotropic filtering as a host
// API responsibility; this CPU port does a direct nearest-neighbor
// fetch against the precomputed mip chain, the filtering the chain
// itself already performed at BuildMipChain time.
func (a AtlasMapping) fetch(uv rmath.Vec2, level int) rmath.Vec3 {
	img := a.Image
	if level > 0 && level < len(a.MipChain) {
		img = a.MipChain[level]
	}
	if img == nil {
		return transparentAlpha
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return transparentAlpha
	}
	px := clampIndex(int(uv.X*float32(w)), w)
	py := clampIndex(int(uv.Y*float32(h)), h)
	return colorToVec3(img.At(bounds.Min.X+px, bounds.Min.Y+py))
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func colorToVec3(c color.Color) rmath.Vec3 {
	r, g, b, _ := c.RGBA()
	const scale = 1.0 / 65535.0
	return rmath.Vec3{X: float32(r) * scale, Y: float32(g) * scale, Z: float32(b) * scale}
}
