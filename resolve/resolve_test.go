package resolve

import (
	"testing"

	"pathforge/rmath"
)

func TestPixelClampsBlackToNearZero(t *testing.T) {
	c := Pixel(rmath.Vec3{X: 0, Y: 0, Z: 0}, 0, 0)
	// Dither can push a zero input up by at most half a code unit.
	if c.R > 1 || c.G > 1 || c.B > 1 {
		t.Errorf("expected near-black output for zero input, got %v", c)
	}
	if c.A != 255 {
		t.Errorf("expected full alpha, got %v", c.A)
	}
}

func TestPixelSaturatesBrightInputToWhite(t *testing.T) {
	c := Pixel(rmath.Vec3{X: 1000, Y: 1000, Z: 1000}, 3, 7)
	if c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("expected saturated white for a very bright input, got %v", c)
	}
}

func TestImageDividesByFrameNumber(t *testing.T) {
	accum := []rmath.Vec3{{X: 4, Y: 4, Z: 4}}
	img := Image(accum, 4, 1, 1)

	// 4/4 = 1.0 in linear space; ACES gives 0.804, gamma 2.2 gives 0.905,
	// i.e. code 231 (dither moves it by at most one code).
	c := img.NRGBAAt(0, 0)
	if c.R < 230 || c.R > 232 || c.G < 230 || c.G > 232 || c.B < 230 || c.B > 232 {
		t.Errorf("expected an averaged accumulator of 1.0 to resolve to code 231, got %v", c)
	}
}
