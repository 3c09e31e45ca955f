// Package resolve implements spec.md §4.10's boundary pass: divide
// the linear accumulator by the frame number, apply the ACES filmic
// approximation, gamma-correct, and dither with Jimenez-style gradient
// noise before writing 8-bit display pixels. This is the only
// component in the tree that touches a final display attachment — the
// core produces and consumes linear radiance exclusively.
//
// Grounded on the teacher's renderer package for "boundary pass reads
// the accumulator and writes a display attachment" framing; no direct
// teacher tonemap code exists (its pipeline is a rasterizer with no
// HDR resolve stage), so the ACES/dither formulas themselves are
// grounded on spec.md §4.10 directly.
package resolve

import (
	"image"
	"image/color"
	"math"

	"pathforge/rmath"
)

const gamma = 2.2

// acesApprox is Krzysztof Narkowicz's fitted ACES filmic curve, the
// standard "ACES-approximated" tonemap referenced by name in spec.md
// §4.10.
func acesApprox(x float32) float32 {
	const a, b, c, d, e = 2.51, 0.03, 2.43, 0.59, 0.14
	return rmath.Clamp32((x*(a*x+b))/(x*(c*x+d)+e), 0, 1)
}

func tonemap(c rmath.Vec3) rmath.Vec3 {
	return rmath.Vec3{X: acesApprox(c.X), Y: acesApprox(c.Y), Z: acesApprox(c.Z)}
}

func gammaCorrect(c rmath.Vec3) rmath.Vec3 {
	inv := float32(1.0 / gamma)
	pow := func(v float32) float32 {
		if v <= 0 {
			return 0
		}
		return float32(math.Pow(float64(v), float64(inv)))
	}
	return rmath.Vec3{X: pow(c.X), Y: pow(c.Y), Z: pow(c.Z)}
}

// ditherNoise is the Jimenez interleaved-gradient-noise function,
// screen-space, producing the ~0.5/255 perturbation spec.md §4.10
// calls for.
func ditherNoise(x, y int) float32 {
	const magic0, magic1, magic2 = 0.06711056, 0.00583715, 52.9829189
	v := magic2 * float32(math.Mod(float64(magic0*float32(x)+magic1*float32(y)), 1.0))
	return v - float32(math.Floor(float64(v)))
}

// Pixel resolves one accumulator sample (already divided by frame
// number by the caller) to an 8-bit sRGB-ish display pixel.
func Pixel(linear rmath.Vec3, x, y int) color.NRGBA {
	toned := tonemap(linear)
	corrected := gammaCorrect(toned)

	const ditherScale = 0.5 / 255.0
	dither := (ditherNoise(x, y) - 0.5) * ditherScale

	clampByte := func(v float32) uint8 {
		v = rmath.Clamp32(v+dither, 0, 1)
		return uint8(v*255 + 0.5)
	}

	return color.NRGBA{
		R: clampByte(corrected.X),
		G: clampByte(corrected.Y),
		B: clampByte(corrected.Z),
		A: 255,
	}
}

// Image resolves an entire linear accumulator buffer (spec.md §3's
// pixel_color_buffer, a running sum over frameNumber frames) into a
// displayable image, dividing each pixel by frameNumber (treated as 1
// when zero) before Pixel; the host-side boundary operation that
// consumes the core's output.
func Image(accumulator []rmath.Vec3, frameNumber uint32, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	divisor := float32(1)
	if frameNumber > 0 {
		divisor = float32(frameNumber)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			linear := accumulator[idx].Mul(1 / divisor)
			img.SetNRGBA(x, y, Pixel(linear, x, y))
		}
	}
	return img
}
