package texture

import (
	"math"
	"testing"

	"pathforge/rmath"
)

func TestWrapAxisRepeatIsPeriodic(t *testing.T) {
	wrapped1, alpha1 := wrapAxis(0.3, 0.01, Repeat)
	wrapped2, alpha2 := wrapAxis(1.3, 0.01, Repeat)
	wrapped3, alpha3 := wrapAxis(-0.7, 0.01, Repeat)

	if alpha1 != 1 || alpha2 != 1 || alpha3 != 1 {
		t.Fatal("Repeat must never produce transparency")
	}
	if math.Abs(float64(wrapped1-wrapped2)) > 1e-5 {
		t.Errorf("Repeat: expected period-1 match, got %v vs %v", wrapped1, wrapped2)
	}
	if math.Abs(float64(wrapped1-wrapped3)) > 1e-5 {
		t.Errorf("Repeat: expected period-1 match, got %v vs %v", wrapped1, wrapped3)
	}
}

func TestWrapAxisClampSaturatesAtInset(t *testing.T) {
	inset := float32(0.02)
	below, alphaBelow := wrapAxis(-0.5, inset, Clamp)
	above, alphaAbove := wrapAxis(1.5, inset, Clamp)

	if alphaBelow != 1 || alphaAbove != 1 {
		t.Fatal("Clamp must never produce transparency")
	}
	if below != inset {
		t.Errorf("Clamp below range: expected %v, got %v", inset, below)
	}
	if above != 1-inset {
		t.Errorf("Clamp above range: expected %v, got %v", 1-inset, above)
	}
}

func TestWrapAxisDiscardFallsThroughOutsideInset(t *testing.T) {
	inset := float32(0.05)

	_, alphaInside := wrapAxis(0.5, inset, Discard)
	if alphaInside != 1 {
		t.Errorf("Discard inside [inset, 1-inset]: expected alpha 1, got %v", alphaInside)
	}

	_, alphaBelow := wrapAxis(0.01, inset, Discard)
	if alphaBelow != 0 {
		t.Errorf("Discard below inset: expected alpha 0, got %v", alphaBelow)
	}

	_, alphaAbove := wrapAxis(0.99, inset, Discard)
	if alphaAbove != 0 {
		t.Errorf("Discard above 1-inset: expected alpha 0, got %v", alphaAbove)
	}
}

func TestSampleBlendsTowardFlatAlbedoOnDiscard(t *testing.T) {
	a := AtlasMapping{
		Matrix:     [2][4]float32{{1, 0, 0, 0}, {0, 1, 0, 0}},
		RegionSize: [2]int{4, 4},
		Levels:     1,
		Wrap:       [2]WrapMode{Discard, Discard},
		Image:      nil,
	}

	flat := rmath.Vec3{X: 0.2, Y: 0.4, Z: 0.6}
	// Sampling far outside [0,1] on both axes triggers Discard on both,
	// so alpha=0 and the result must equal flatAlbedo exactly.
	got := a.Sample(rmath.Vec3{X: 5, Y: 5, Z: 0}, rmath.Vec3{}, rmath.Vec3{}, flat)

	if got != flat {
		t.Errorf("expected full fallthrough to flat albedo, got %v want %v", got, flat)
	}
}
