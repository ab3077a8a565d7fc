package schema

// IsPowerOfTwo reports whether n is 2^k for some k >= 0. Zero and negative
// values are never powers of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// LargestPowerOfTwo returns the largest power of two <= n, with a floor of 1.
func LargestPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	pot := 1
	for pot*2 <= n {
		pot *= 2
	}
	return pot
}

// FitPowerOfTwoSize computes the resized (width, height) for an image so
// that it fits within limit while preserving aspect ratio. The largest
// dimension scales to the largest power of two <= limit; the other
// dimension scales proportionally and then rounds down to its own nearest
// power of two. Images already within limit are returned unchanged by the
// caller; this function assumes max(w, h) > limit.
func FitPowerOfTwoSize(w, h, limit int) (int, int) {
	maxDim := w
	if h > maxDim {
		maxDim = h
	}
	target := LargestPowerOfTwo(limit)
	scale := float64(target) / float64(maxDim)
	return LargestPowerOfTwo(int(float64(w) * scale)), LargestPowerOfTwo(int(float64(h) * scale))
}
