// Package palette turns escape counts into colors.
package palette

import "image/color"

// Inside is the color of points that never escaped.
var Inside = color.RGBA{A: 0xff}

// Color returns the color for a point that took iteration steps to escape.
// Points that reached maxIterations are Inside; the rest ramp with
// scale = iteration / maxIterations.
func Color(iteration, maxIterations int) color.RGBA {
	r, g, b := RGB(iteration, maxIterations)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// RGB is Color without the alpha channel.
func RGB(iteration, maxIterations int) (r, g, b uint8) {
	if iteration == maxIterations {
		return 0, 0, 0
	}

	scale := float64(iteration) / float64(maxIterations)

	// Conversion truncates, which is floor for these non-negative values.
	r = uint8(255 * (1 - scale) * scale)
	g = uint8(255 * 0.5 * scale)
	b = uint8(255 * scale)

	return r, g, b
}
