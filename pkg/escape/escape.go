// Package escape counts how many iterations of a transform it takes for a
// point to leave a disc around the origin.
package escape

import (
	"math/cmplx"

	"github.com/willbeason/escapetime/pkg/transforms"
)

const (
	// DefaultRadius is the modulus beyond which an iterate is divergent.
	// It is exact for z^2 + c and used for every exponent.
	DefaultRadius = 2.0

	// DefaultMaxIterations bounds the escape test.
	DefaultMaxIterations = 250
)

// Count iterates t from seed and returns the index of the first iterate whose
// modulus exceeds radius, or maxIterations if none does.
//
// The seed is passed through t once before testing begins, so the first
// tested value is the second iterate and the result is always in
// [1, maxIterations]. A maxIterations below 1 is treated as 1.
func Count(t transforms.Transform, seed complex128, maxIterations int, radius float64) int {
	maxIterations = max(maxIterations, 1)

	z := t.Next(seed)

	for i := 1; i < maxIterations; i++ {
		z = t.Next(z)

		if Escaped(z, radius) {
			return i
		}
	}

	return maxIterations
}

// Escaped reports whether z lies outside the disc of the given radius.
// NaN and infinite moduli count as escaped.
func Escaped(z complex128, radius float64) bool {
	return !(cmplx.Abs(z) <= radius)
}
