package render

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/spf13/pflag"

	"github.com/willbeason/escapetime/pkg/escape"
	"github.com/willbeason/escapetime/pkg/plane"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Width != 1600 || cfg.Height != 1600 {
		t.Errorf("size = %dx%d, want 1600x1600", cfg.Width, cfg.Height)
	}
	if cfg.MaxIterations != 250 {
		t.Errorf("MaxIterations = %d, want 250", cfg.MaxIterations)
	}
	if cfg.Radius != 2 {
		t.Errorf("Radius = %v, want 2", cfg.Radius)
	}
	if cfg.Window != plane.DefaultWindow {
		t.Errorf("Window = %+v, want %+v", cfg.Window, plane.DefaultWindow)
	}

	// The mode has to be chosen.
	if err := cfg.Validate(); !errors.Is(err, escape.ErrUnknownMode) {
		t.Errorf("Validate() = %v, want ErrUnknownMode", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -4 }},
		{"no iterations", func(c *Config) { c.MaxIterations = 0 }},
		{"negative radius", func(c *Config) { c.Radius = -1 }},
		{"nan radius", func(c *Config) { c.Radius = math.NaN() }},
		{"empty window", func(c *Config) { c.Window.XMax = c.Window.XMin }},
		{"too many pixels", func(c *Config) { c.Width, c.Height = math.MaxInt32, math.MaxInt32 }},
		{"just over max pixels", func(c *Config) { c.Width, c.Height = MaxPixels/2+1, 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Mode = escape.Julia
			tt.modify(&cfg)

			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
			if _, err := New(cfg); err == nil {
				t.Error("New accepted an invalid config")
			}
		})
	}
}

func TestConfig_ValidateMaxPixels(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = escape.Mandelbrot
	cfg.Width, cfg.Height = MaxPixels/2, 2

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() at MaxPixels = %v", err)
	}
}

func TestConfig_AddFlags(t *testing.T) {
	cfg := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := cfg.AddFlags(fs)

	err := fs.Parse([]string{
		"--mode", "julia",
		"-n", "3",
		"--c-real=-0.4",
		"--c-imag=0.6",
		"--width=320",
		"--height=200",
		"--max-iterations=80",
		"--escape-radius=4",
		"--x-min=-1.5",
		"--workers=2",
	})
	if err != nil {
		t.Fatal(err)
	}
	flags.Apply()

	if cfg.Mode != escape.Julia {
		t.Errorf("Mode = %v, want julia", cfg.Mode)
	}
	if cfg.Exponent != 3 {
		t.Errorf("Exponent = %v, want 3", cfg.Exponent)
	}
	if cfg.Constant != complex(-0.4, 0.6) {
		t.Errorf("Constant = %v, want (-0.4+0.6i)", cfg.Constant)
	}
	if cfg.Width != 320 || cfg.Height != 200 {
		t.Errorf("size = %dx%d, want 320x200", cfg.Width, cfg.Height)
	}
	if cfg.MaxIterations != 80 || cfg.Radius != 4 {
		t.Errorf("MaxIterations, Radius = %d, %v", cfg.MaxIterations, cfg.Radius)
	}
	if cfg.Window.XMin != -1.5 || cfg.Window.XMax != 2 {
		t.Errorf("Window = %+v", cfg.Window)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestConfig_AddFlagsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Exponent = complex(2, 0.5)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := cfg.AddFlags(fs)

	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	flags.Apply()

	if cfg.Exponent != complex(2, 0.5) {
		t.Errorf("Exponent = %v, want (2+0.5i)", cfg.Exponent)
	}
	if cfg.Mode != escape.Unset {
		t.Errorf("Mode = %v, want unset", cfg.Mode)
	}
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	l := slog.Default()
	SetLogger(l)
	if Logger() != l {
		t.Error("Logger() did not return the logger passed to SetLogger")
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger is enabled")
	}
}
