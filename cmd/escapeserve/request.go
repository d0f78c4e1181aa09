package main

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/willbeason/escapetime/pkg/escape"
	"github.com/willbeason/escapetime/pkg/imageio"
	"github.com/willbeason/escapetime/pkg/plane"
	"github.com/willbeason/escapetime/pkg/render"
)

const (
	defaultMaxSize       = 8192
	defaultMaxIterations = 10000
)

var errTooLarge = errors.New("requested render is too large")

// limits bound the work a single request may ask for.
type limits struct {
	size       int
	iterations int
}

var defaultLimits = limits{size: defaultMaxSize, iterations: defaultMaxIterations}

// request is what a client asks for. Fields it leaves out keep the server's
// defaults.
type request struct {
	Mode          string  `json:"mode"`
	Exponent      float64 `json:"exponent"`
	ExponentImag  float64 `json:"exponentImag"`
	CReal         float64 `json:"cReal"`
	CImag         float64 `json:"cImag"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	MaxIterations int     `json:"maxIterations"`
	Radius        float64 `json:"escapeRadius"`
	XMin          float64 `json:"xMin"`
	XMax          float64 `json:"xMax"`
	YMin          float64 `json:"yMin"`
	YMax          float64 `json:"yMax"`
	Format        string  `json:"format,omitempty"`
}

// header is sent ahead of the rows on a websocket.
type header struct {
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Mode          string `json:"mode"`
	MaxIterations int    `json:"maxIterations"`
}

func newRequest(cfg render.Config) request {
	return request{
		Mode:          cfg.Mode.String(),
		Exponent:      real(cfg.Exponent),
		ExponentImag:  imag(cfg.Exponent),
		CReal:         real(cfg.Constant),
		CImag:         imag(cfg.Constant),
		Width:         cfg.Width,
		Height:        cfg.Height,
		MaxIterations: cfg.MaxIterations,
		Radius:        cfg.Radius,
		XMin:          cfg.Window.XMin,
		XMax:          cfg.Window.XMax,
		YMin:          cfg.Window.YMin,
		YMax:          cfg.Window.YMax,
		Format:        string(imageio.PNG),
	}
}

// config turns the request into a validated render.Config.
func (q request) config(workers int, lim limits) (render.Config, error) {
	mode, err := escape.ParseMode(q.Mode)
	if err != nil {
		return render.Config{}, err
	}
	if q.Width > lim.size || q.Height > lim.size {
		return render.Config{}, fmt.Errorf("%w: %dx%d exceeds %d", errTooLarge, q.Width, q.Height, lim.size)
	}
	if q.MaxIterations > lim.iterations {
		return render.Config{}, fmt.Errorf("%w: %d iterations exceeds %d", errTooLarge, q.MaxIterations, lim.iterations)
	}

	cfg := render.Config{
		Width:  q.Width,
		Height: q.Height,
		Window: plane.Window{XMin: q.XMin, XMax: q.XMax, YMin: q.YMin, YMax: q.YMax},
		Params: escape.Params{
			Mode:          mode,
			Exponent:      complex(q.Exponent, q.ExponentImag),
			Constant:      complex(q.CReal, q.CImag),
			MaxIterations: q.MaxIterations,
			Radius:        q.Radius,
		},
		Workers: workers,
	}
	return cfg, cfg.Validate()
}

// queryFloats and queryInts map short query parameter names onto request fields.
var (
	queryFloats = map[string]func(*request) *float64{
		"n":  func(q *request) *float64 { return &q.Exponent },
		"ni": func(q *request) *float64 { return &q.ExponentImag },
		"cr": func(q *request) *float64 { return &q.CReal },
		"ci": func(q *request) *float64 { return &q.CImag },
		"r":  func(q *request) *float64 { return &q.Radius },
		"x0": func(q *request) *float64 { return &q.XMin },
		"x1": func(q *request) *float64 { return &q.XMax },
		"y0": func(q *request) *float64 { return &q.YMin },
		"y1": func(q *request) *float64 { return &q.YMax },
	}
	queryInts = map[string]func(*request) *int{
		"w":    func(q *request) *int { return &q.Width },
		"h":    func(q *request) *int { return &q.Height },
		"iter": func(q *request) *int { return &q.MaxIterations },
	}
)

// applyQuery overwrites the fields of q named in v.
func (q *request) applyQuery(v url.Values) error {
	if v.Has("mode") {
		q.Mode = v.Get("mode")
	}
	if v.Has("format") {
		q.Format = v.Get("format")
	}

	for name, field := range queryFloats {
		if !v.Has(name) {
			continue
		}
		f, err := strconv.ParseFloat(v.Get(name), 64)
		if err != nil {
			return fmt.Errorf("parameter %s: %w", name, err)
		}
		*field(q) = f
	}

	for name, field := range queryInts {
		if !v.Has(name) {
			continue
		}
		i, err := strconv.Atoi(v.Get(name))
		if err != nil {
			return fmt.Errorf("parameter %s: %w", name, err)
		}
		*field(q) = i
	}

	return nil
}
