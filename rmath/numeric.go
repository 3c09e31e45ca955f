package rmath

import "golang.org/x/exp/constraints"

// Generic numeric helpers shared by the float32 renderer math and the
// integer mip-level clamp in texture. Replaces the teacher's
// hand-rolled min32/max32 pair (editor/raycast.go) with one
// implementation both call sites reuse.

type ordered = constraints.Ordered

func Min[T ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func Max[T ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func Clamp[T ordered](v, lo, hi T) T {
	return Min(Max(v, lo), hi)
}

// Min32/Max32/Abs32/Clamp32 are float32-specific aliases kept around for
// call sites that predate the generic helpers (vec3.go) and for
// readability next to other float32 renderer math.
func Min32(a, b float32) float32 { return Min(a, b) }
func Max32(a, b float32) float32 { return Max(a, b) }

func Abs32(a float32) float32 {
	if a < 0 {
		return -a
	}
	return a
}

func Clamp32(v, lo, hi float32) float32 { return Clamp(v, lo, hi) }
