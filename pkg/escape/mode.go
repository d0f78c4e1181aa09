package escape

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// ErrUnknownMode is returned for mode names other than "julia" and "mandelbrot".
var ErrUnknownMode = errors.New("unrecognized fractal mode")

// Mode selects which operand of the shared iteration varies per pixel.
type Mode int

const (
	// Unset is the zero Mode. It is never valid for rendering.
	Unset Mode = iota

	// Julia iterates from the pixel's point with a fixed constant.
	Julia

	// Mandelbrot iterates from zero with the pixel's point as the constant.
	Mandelbrot
)

var modeNames = map[Mode]string{
	Julia:      "julia",
	Mandelbrot: "mandelbrot",
}

// ParseMode returns the Mode named by s. Surrounding space and case are ignored.
func ParseMode(s string) (Mode, error) {
	name := cases.Fold().String(strings.TrimSpace(s))

	for m, n := range modeNames {
		if n == name {
			return m, nil
		}
	}

	return Unset, fmt.Errorf("%w: %q (want julia or mandelbrot)", ErrUnknownMode, s)
}

func (m Mode) String() string {
	if n, ok := modeNames[m]; ok {
		return n
	}
	if m == Unset {
		return ""
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Valid reports whether m is Julia or Mandelbrot.
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// Set implements pflag.Value.
func (m *Mode) Set(s string) error {
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value.
func (m *Mode) Type() string {
	return "mode"
}
