package rng

import "math"

// LowQualityHash is the fract(sin(x)*43758.5) hash spec.md §9 calls out
// for the deterministic renderer's roughness-jittered mirror reflection:
// the main PCG stream produces too uniform a "roughness look" for the
// analytic pass, so the deterministic mirror path seeds on the hit
// position instead of advancing a PCG stream. Kept as a second,
// independent hash rather than folded into State per that design note.
func LowQualityHash(x float32) float32 {
	v := math.Sin(float64(x)) * 43758.5453123
	return float32(v - math.Floor(v))
}

// LowQualityHash2 combines two coordinates into one hash input, used to
// seed the deterministic mirror jitter from a world-space hit position.
func LowQualityHash2(x, y float32) float32 {
	return LowQualityHash(x*12.9898 + y*78.233)
}
