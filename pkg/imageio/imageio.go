// Package imageio writes rasters to image files, choosing the container from
// the file extension.
package imageio

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spakin/netpbm"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/willbeason/escapetime/pkg/raster"
)

// ErrUnknownFormat is returned for formats and extensions that are not supported.
var ErrUnknownFormat = errors.New("unknown image format")

type Format string

const (
	PPM  Format = "ppm"
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

var extensions = map[string]Format{
	".ppm":  PPM,
	".png":  PNG,
	".bmp":  BMP,
	".tif":  TIFF,
	".tiff": TIFF,
}

// ParseFormat returns the Format with the given name, such as "png".
func ParseFormat(name string) (Format, error) {
	f, ok := extensions["."+strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return f, nil
}

// FormatFromPath returns the Format implied by path's extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := extensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: extension %q of %s", ErrUnknownFormat, ext, path)
	}
	return f, nil
}

// ContentType is the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case PPM:
		return "image/x-portable-pixmap"
	case PNG:
		return "image/png"
	case BMP:
		return "image/bmp"
	case TIFF:
		return "image/tiff"
	}
	return "application/octet-stream"
}

// Encode writes r to w in format f.
func Encode(w io.Writer, f Format, r *raster.Raster) error {
	switch f {
	case PPM:
		return netpbm.Encode(w, r, &netpbm.EncodeOptions{Format: netpbm.PPM, MaxValue: 255})
	case PNG:
		return png.Encode(w, r.RGBA())
	case BMP:
		return bmp.Encode(w, r.RGBA())
	case TIFF:
		return tiff.Encode(w, r.RGBA(), &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Save writes r to path in the format its extension names.
func Save(path string, r *raster.Raster) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := Encode(f, format, r); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
