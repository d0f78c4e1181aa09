package escape

import (
	"errors"
	"fmt"
	"math"

	"github.com/willbeason/escapetime/pkg/transforms"
)

// Params are the fractal parameters fixed for a whole render.
type Params struct {
	Mode Mode

	// Exponent is n in z^n + c.
	Exponent complex128

	// Constant is c in z^n + c. Mandelbrot mode ignores it.
	Constant complex128

	MaxIterations int
	Radius        float64
}

// DefaultParams returns the classic quadratic parameters with the mode unset.
func DefaultParams() Params {
	return Params{
		Exponent:      2,
		MaxIterations: DefaultMaxIterations,
		Radius:        DefaultRadius,
	}
}

// Validate checks that p describes a renderable fractal.
func (p Params) Validate() error {
	var errs []error

	if !p.Mode.Valid() {
		errs = append(errs, fmt.Errorf("%w: %v", ErrUnknownMode, p.Mode))
	}
	if p.MaxIterations < 1 {
		errs = append(errs, fmt.Errorf("max iterations must be at least 1, got %d", p.MaxIterations))
	}
	if !(p.Radius > 0) || math.IsInf(p.Radius, 0) {
		errs = append(errs, fmt.Errorf("escape radius must be positive and finite, got %v", p.Radius))
	}

	return errors.Join(errs...)
}

// A Counter computes escape counts for sample points under fixed Params.
// Both modes share Count; they differ only in which operand the sample fills.
type Counter struct {
	params Params
}

// NewCounter validates p and returns a Counter for it.
func NewCounter(p Params) (Counter, error) {
	if err := p.Validate(); err != nil {
		return Counter{}, err
	}
	return Counter{params: p}, nil
}

// Iterations returns the escape count for the sample point.
func (c Counter) Iterations(sample complex128) int {
	p := c.params

	switch p.Mode {
	case Julia:
		return Count(transforms.Polynomial{N: p.Exponent, C: p.Constant}, sample, p.MaxIterations, p.Radius)
	case Mandelbrot:
		return Count(transforms.Polynomial{N: p.Exponent, C: sample}, 0, p.MaxIterations, p.Radius)
	}

	// NewCounter rejects every other mode.
	panic(fmt.Sprintf("escape: counter with invalid mode %v", p.Mode))
}
