// Package render drives the escape-time pipeline over every pixel of an image.
package render

import (
	"context"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/willbeason/escapetime/pkg/escape"
	"github.com/willbeason/escapetime/pkg/palette"
	"github.com/willbeason/escapetime/pkg/plane"
	"github.com/willbeason/escapetime/pkg/raster"
)

// A Renderer computes images for one validated Config. It holds no mutable
// state and may be used from several goroutines.
type Renderer struct {
	cfg     Config
	mapping plane.Mapping
	counter escape.Counter
}

// New validates cfg and returns a Renderer for it.
func New(cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mapping, err := plane.NewMapping(cfg.Window, cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	counter, err := escape.NewCounter(cfg.Params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &Renderer{
		cfg:     cfg,
		mapping: mapping,
		counter: counter,
	}, nil
}

// Config returns the validated configuration r renders.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Pixel returns the escape count and color of the pixel at (col, row).
func (r *Renderer) Pixel(col, row int) (int, color.RGBA) {
	iterations := r.counter.Iterations(r.mapping.Point(col, row))
	return iterations, palette.Color(iterations, r.cfg.MaxIterations)
}

// renderRow fills row y of img.
func (r *Renderer) renderRow(y int, img *raster.Raster) {
	for x := 0; x < r.cfg.Width; x++ {
		iterations := r.counter.Iterations(r.mapping.Point(x, y))

		red, green, blue := palette.RGB(iterations, r.cfg.MaxIterations)
		img.SetRGB(x, y, red, green, blue)
	}
}

// Render computes the whole image.
func (r *Renderer) Render(ctx context.Context) (*raster.Raster, error) {
	return r.Stream(ctx, nil)
}

// A RowFunc receives a finished row. The slice belongs to the raster being
// rendered and must not be modified or retained past the call.
type RowFunc func(y int, row []uint8) error

// Stream computes the image and calls emit with every row in order, top to
// bottom, as soon as that row and all rows above it are done. emit may be nil.
//
// Rows are computed by Config.Workers goroutines. Each row is written by
// exactly one worker, so the result does not depend on the worker count.
// If emit returns an error or ctx is done, the remaining work is abandoned and
// that error is returned.
func (r *Renderer) Stream(ctx context.Context, emit RowFunc) (*raster.Raster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	width, height := r.cfg.Width, r.cfg.Height

	parallel := min(r.cfg.workers(), height)

	log := Logger().With(
		"mode", r.cfg.Mode.String(),
		"width", width,
		"height", height,
	)
	dx, dy := r.mapping.Step()
	log.Info("render started", "workers", parallel, "max_iterations", r.cfg.MaxIterations, "dx", dx, "dy", dy)

	img := raster.New(width, height)

	// done[y] is closed once row y is written.
	done := make([]chan struct{}, height)
	for y := range done {
		done[y] = make(chan struct{})
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	yChannel := make(chan int)
	go func() {
		defer close(yChannel)
		for y := 0; y < height; y++ {
			select {
			case yChannel <- y:
			case <-ctx.Done():
				return
			}
		}
	}()

	ywg := sync.WaitGroup{}
	ywg.Add(parallel)
	for i := 0; i < parallel; i++ {
		go func() {
			defer ywg.Done()
			for y := range yChannel {
				r.renderRow(y, img)
				close(done[y])
			}
		}()
	}

	var err error
	for y := 0; y < height && err == nil; y++ {
		select {
		case <-done[y]:
		case <-ctx.Done():
			err = ctx.Err()
			continue
		}

		log.Debug("row finished", "row", y)

		if emit != nil {
			err = emit(y, img.Row(y))
		}
	}

	cancel()
	ywg.Wait()

	if err != nil {
		log.Info("render abandoned", "error", err)
		return nil, err
	}

	log.Info("render finished", "duration", time.Since(start))
	return img, nil
}
