// Package plane maps pixel positions onto a rectangular window of the
// complex plane.
package plane

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidWindow is returned for windows with empty or non-finite extent.
var ErrInvalidWindow = errors.New("invalid plane window")

// Window is the region of the complex plane an image covers.
type Window struct {
	XMin, XMax float64
	YMin, YMax float64
}

// DefaultWindow is the square [-2, 2] x [-2, 2].
var DefaultWindow = Window{XMin: -2, XMax: 2, YMin: -2, YMax: 2}

func (w Window) Validate() error {
	for _, v := range []float64{w.XMin, w.XMax, w.YMin, w.YMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: bound %v is not finite", ErrInvalidWindow, v)
		}
	}
	if !(w.XMax > w.XMin) {
		return fmt.Errorf("%w: x range [%v, %v] is empty", ErrInvalidWindow, w.XMin, w.XMax)
	}
	if !(w.YMax > w.YMin) {
		return fmt.Errorf("%w: y range [%v, %v] is empty", ErrInvalidWindow, w.YMin, w.YMax)
	}
	return nil
}

// Mapping is the linear map from a width x height pixel grid onto a Window.
// Row 0 is the top of the image and maps to YMax.
type Mapping struct {
	Window
	Width, Height int

	// dx and dy are the real size of each pixel along each axis.
	dx, dy float64
}

// NewMapping returns the Mapping of a width x height grid onto w.
func NewMapping(w Window, width, height int) (Mapping, error) {
	if err := w.Validate(); err != nil {
		return Mapping{}, err
	}
	if width <= 0 || height <= 0 {
		return Mapping{}, fmt.Errorf("%w: image size %dx%d", ErrInvalidWindow, width, height)
	}

	return Mapping{
		Window: w,
		Width:  width,
		Height: height,
		dx:     (w.XMax - w.XMin) / float64(width),
		dy:     (w.YMax - w.YMin) / float64(height),
	}, nil
}

// Step returns the size of one pixel along each axis.
func (m Mapping) Step() (dx, dy float64) {
	return m.dx, m.dy
}

// Point returns the sample point of the pixel at (col, row).
func (m Mapping) Point(col, row int) complex128 {
	// The explicit conversions keep the products from being fused into the
	// additions, which would change the low bits on some architectures.
	x := m.XMin + float64(float64(col)*m.dx)
	y := m.YMax - float64(float64(row)*m.dy)

	return complex(x, y)
}
