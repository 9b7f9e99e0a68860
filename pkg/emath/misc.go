package emath

import "math"

// Some functions that only operate on basic types, that are useful

func Clamp(f, min, max float64) float64 {
	if f < min { return min }
	if f > max { return max }
	return f
}

// IsFinite is false for NaN and both infinities
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// GammaDecode undoes a simple power-law display gamma; `f` is assumed to be in [0,1]
func GammaDecode(f, gamma float64) float64 {
	return math.Pow(f, gamma)
}

// GammaEncode applies one. Negative input is floored at zero first.
func GammaEncode(f, gamma float64) float64 {
	if f <= 0 {
		return 0
	}
	return math.Pow(f, 1.0/gamma)
}

// reflect101 maps an out-of-range index back into [0,n) by mirroring about
// the edge samples, without repeating them (OpenCV's BORDER_REFLECT_101).
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*n - 2 - i
		}
	}
	return i
}

func clampIndex(i, n int) int {
	if i < 0 { return 0 }
	if i >= n { return n-1 }
	return i
}
