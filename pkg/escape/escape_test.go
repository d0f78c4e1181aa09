package escape

import (
	"math"
	"testing"

	"github.com/willbeason/escapetime/pkg/transforms"
)

func TestCount_Range(t *testing.T) {
	for _, maxIter := range []int{1, 2, 50, 250} {
		p := transforms.Polynomial{N: 2, C: complex(-0.8, 0.156)}
		for y := -2.0; y <= 2.0; y += 0.25 {
			for x := -2.0; x <= 2.0; x += 0.25 {
				got := Count(p, complex(x, y), maxIter, DefaultRadius)
				if got < 1 || got > maxIter {
					t.Fatalf("Count(%v, max=%d) = %d, want in [1, %d]", complex(x, y), maxIter, got, maxIter)
				}
			}
		}
	}
}

func TestCount_ClampsMaxIterations(t *testing.T) {
	p := transforms.Polynomial{N: 2}

	for _, maxIter := range []int{0, -3} {
		if got := Count(p, 0.5, maxIter, DefaultRadius); got != 1 {
			t.Errorf("Count(max=%d) = %d, want 1", maxIter, got)
		}
	}
}

func TestCount_SeedNotTested(t *testing.T) {
	// The seed and first iterate are far outside the radius, but only the
	// second iterate onward is tested.
	p := transforms.Polynomial{N: 2}

	if got := Count(p, 10, 50, DefaultRadius); got != 1 {
		t.Errorf("Count = %d, want 1", got)
	}
}

func TestCount_Bounded(t *testing.T) {
	// z -> z^2 keeps the unit circle fixed.
	p := transforms.Polynomial{N: 2}

	if got := Count(p, 0.5, 100, DefaultRadius); got != 100 {
		t.Errorf("Count = %d, want 100", got)
	}
}

func TestCount_KnownEscape(t *testing.T) {
	// Seed 0, c = 1: iterates 1, 2, 5. The third iterate is tested at i = 2.
	p := transforms.Polynomial{N: 2, C: 1}

	if got := Count(p, 0, 50, DefaultRadius); got != 2 {
		t.Errorf("Count = %d, want 2", got)
	}
}

type constTransform complex128

func (c constTransform) Next(complex128) complex128 { return complex128(c) }

func TestCount_NonFinite(t *testing.T) {
	tests := []struct {
		name string
		z    complex128
	}{
		{"nan", complex(math.NaN(), 0)},
		{"inf", complex(math.Inf(1), 0)},
		{"nan imaginary", complex(0, math.NaN())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(constTransform(tt.z), 0, 250, DefaultRadius); got != 1 {
				t.Errorf("Count = %d, want 1", got)
			}
		})
	}
}

func TestCount_LargeExponent(t *testing.T) {
	p := transforms.Polynomial{N: 1000, C: 0.5}

	got := Count(p, 1.5, 250, DefaultRadius)
	if got != 1 {
		t.Errorf("Count = %d, want 1", got)
	}
}

func TestCount_RadiusMonotonic(t *testing.T) {
	radii := []float64{0.5, 1, 2, 4, 16, 1e6}

	for _, c := range []complex128{complex(-0.8, 0.156), complex(0.285, 0.01), complex(-0.4, 0.6)} {
		p := transforms.Polynomial{N: 2, C: c}
		for y := -1.5; y <= 1.5; y += 0.1 {
			for x := -1.5; x <= 1.5; x += 0.1 {
				prev := 0
				for _, r := range radii {
					got := Count(p, complex(x, y), 250, r)
					if got < prev {
						t.Fatalf("Count(%v) with radius %v = %d, less than %d at a smaller radius",
							complex(x, y), r, got, prev)
					}
					prev = got
				}
			}
		}
	}
}

func TestEscaped(t *testing.T) {
	tests := []struct {
		z    complex128
		want bool
	}{
		{0, false},
		{2, false},
		{complex(2, 0.001), true},
		{complex(math.Inf(-1), 0), true},
		{complex(math.NaN(), math.NaN()), true},
	}

	for _, tt := range tests {
		if got := Escaped(tt.z, 2); got != tt.want {
			t.Errorf("Escaped(%v) = %t, want %t", tt.z, got, tt.want)
		}
	}
}
