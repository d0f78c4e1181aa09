// Package raster holds a rendered pixel grid as packed 8-bit RGB triples.
package raster

import (
	"image"
	"image/color"
)

// BytesPerPixel is the number of channel bytes per pixel.
const BytesPerPixel = 3

// A Raster is a Width x Height grid of RGB pixels stored row-major,
// top-to-bottom and left-to-right with no padding. Pix is exactly the byte
// stream a binary PPM carries after its header.
//
// Raster implements image.Image so it can be handed to any encoder.
type Raster struct {
	Width, Height int
	Pix           []uint8
}

// New allocates a black raster.
func New(width, height int) *Raster {
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*BytesPerPixel),
	}
}

// Stride is the number of bytes in one row.
func (r *Raster) Stride() int {
	return r.Width * BytesPerPixel
}

// Row returns the bytes of row y. Writes through the slice modify the raster.
func (r *Raster) Row(y int) []uint8 {
	s := r.Stride()
	return r.Pix[y*s : (y+1)*s : (y+1)*s]
}

// SetRGB sets the pixel at (x, y).
func (r *Raster) SetRGB(x, y int, red, green, blue uint8) {
	i := y*r.Stride() + x*BytesPerPixel
	p := r.Pix[i : i+BytesPerPixel : i+BytesPerPixel]
	p[0], p[1], p[2] = red, green, blue
}

// RGBAt returns the channels of the pixel at (x, y).
func (r *Raster) RGBAt(x, y int) (red, green, blue uint8) {
	i := y*r.Stride() + x*BytesPerPixel
	return r.Pix[i], r.Pix[i+1], r.Pix[i+2]
}

func (r *Raster) ColorModel() color.Model {
	return color.RGBAModel
}

func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width, r.Height)
}

func (r *Raster) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(r.Bounds())) {
		return color.RGBA{}
	}
	red, green, blue := r.RGBAt(x, y)
	return color.RGBA{R: red, G: green, B: blue, A: 0xff}
}

// RGBA copies the raster into a new opaque *image.RGBA.
func (r *Raster) RGBA() *image.RGBA {
	img := image.NewRGBA(r.Bounds())
	for y := 0; y < r.Height; y++ {
		src := r.Row(y)
		dst := img.Pix[y*img.Stride : y*img.Stride+r.Width*4]
		for x := 0; x < r.Width; x++ {
			copy(dst[x*4:x*4+3], src[x*3:x*3+3])
			dst[x*4+3] = 0xff
		}
	}
	return img
}

var _ image.Image = (*Raster)(nil)
