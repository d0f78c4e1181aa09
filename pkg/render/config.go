package render

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/pflag"

	"github.com/willbeason/escapetime/pkg/escape"
	"github.com/willbeason/escapetime/pkg/plane"
)

const (
	DefaultWidth  = 1600
	DefaultHeight = 1600

	// MaxPixels bounds Width*Height so the raster size cannot overflow.
	MaxPixels = 1 << 28
)

// ErrInvalidConfig wraps every Config validation failure.
var ErrInvalidConfig = errors.New("invalid render config")

// Config is everything a render needs. It is fixed for the whole render.
type Config struct {
	Width, Height int

	Window plane.Window
	escape.Params

	// Workers is the number of goroutines computing rows.
	// Zero or negative means runtime.NumCPU().
	Workers int
}

// DefaultConfig returns a 1600x1600 render of [-2, 2] x [-2, 2] with z^2,
// 250 iterations and escape radius 2. The mode is left unset.
func DefaultConfig() Config {
	return Config{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Window: plane.DefaultWindow,
		Params: escape.DefaultParams(),
	}
}

func (c Config) Validate() error {
	var errs []error

	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height))
	} else if c.Width > MaxPixels/c.Height {
		errs = append(errs, fmt.Errorf("image size %dx%d exceeds %d pixels", c.Width, c.Height, MaxPixels))
	}
	if err := c.Window.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Params.Validate(); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) workers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// complexFlag binds a complex128 to two float flags.
type complexFlag struct {
	re, im float64
	target *complex128
}

func (f *complexFlag) apply() {
	*f.target = complex(f.re, f.im)
}

// Flags binds c's fields to flags on fs. Call Apply after parsing to copy
// the complex-valued flags back into c.
type Flags struct {
	exponent, constant complexFlag
}

// AddFlags registers every Config field on fs, using c's current values as
// defaults.
func (c *Config) AddFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{
		exponent: complexFlag{re: real(c.Exponent), im: imag(c.Exponent), target: &c.Exponent},
		constant: complexFlag{re: real(c.Constant), im: imag(c.Constant), target: &c.Constant},
	}

	fs.VarP(&c.Mode, "mode", "m", "fractal mode: julia or mandelbrot")
	fs.Float64VarP(&f.exponent.re, "exponent", "n", f.exponent.re, "exponent n in z^n + c")
	fs.Float64Var(&f.exponent.im, "exponent-imag", f.exponent.im, "imaginary part of the exponent")
	fs.Float64Var(&f.constant.re, "c-real", f.constant.re, "real part of the julia constant c")
	fs.Float64Var(&f.constant.im, "c-imag", f.constant.im, "imaginary part of the julia constant c")

	fs.IntVar(&c.Width, "width", c.Width, "image width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "image height in pixels")
	fs.IntVar(&c.MaxIterations, "max-iterations", c.MaxIterations, "escape test bound")
	fs.Float64Var(&c.Radius, "escape-radius", c.Radius, "modulus beyond which a point has escaped")

	fs.Float64Var(&c.Window.XMin, "x-min", c.Window.XMin, "left edge of the plane window")
	fs.Float64Var(&c.Window.XMax, "x-max", c.Window.XMax, "right edge of the plane window")
	fs.Float64Var(&c.Window.YMin, "y-min", c.Window.YMin, "bottom edge of the plane window")
	fs.Float64Var(&c.Window.YMax, "y-max", c.Window.YMax, "top edge of the plane window")

	fs.IntVar(&c.Workers, "workers", c.Workers, "rendering goroutines (0 for one per CPU)")

	return f
}

// Apply copies parsed complex-valued flags into the Config they were bound to.
func (f *Flags) Apply() {
	f.exponent.apply()
	f.constant.apply()
}
