// Package raster provides the pixel pipeline for frame conversion: a
// reusable RGBA surface that decoders render into, in-place flattening of
// transparency onto an opaque background, supersample downscaling, and
// single-frame PNG encoding.
package raster

import (
	"errors"
	"image"
)

// Surface errors.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("raster: invalid dimensions")

	// ErrInvalidStride is returned when stride is less than 4*width bytes.
	ErrInvalidStride = errors.New("raster: stride too small for width")

	// ErrBufferTooSmall is returned when provided pixel data is smaller
	// than stride*height bytes.
	ErrBufferTooSmall = errors.New("raster: pixel buffer too small")
)

// bytesPerPixel is the size of one RGBA pixel.
const bytesPerPixel = 4

// Surface is a caller-owned RGBA8 pixel buffer with explicit dimensions
// and row stride. Pixels are non-premultiplied, row-major, top-to-bottom,
// 4 bytes per pixel.
//
// A Surface is rendered into in place by a decoder and then flattened and
// encoded by this package. It is designed for reuse: one surface per
// worker, cleared or overwritten between frames.
//
// Thread safety: a Surface must not be shared across goroutines while
// being written. The conversion engine gives each worker its own surface.
type Surface struct {
	pix    []byte
	width  int
	height int
	stride int
}

// NewSurface allocates a surface of the given dimensions with a packed
// stride of 4*width bytes.
func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}

	stride := width * bytesPerPixel
	return &Surface{
		pix:    make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
	}, nil
}

// FromRaw wraps existing pixel data without copying. The caller must keep
// data valid for the lifetime of the surface. Stride must be at least
// 4*width bytes and data must hold at least stride*height bytes.
func FromRaw(data []byte, width, height, stride int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if stride < width*bytesPerPixel {
		return nil, ErrInvalidStride
	}
	if len(data) < stride*height {
		return nil, ErrBufferTooSmall
	}

	return &Surface{
		pix:    data[:stride*height],
		width:  width,
		height: height,
		stride: stride,
	}, nil
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.height }

// Stride returns the number of bytes per row.
func (s *Surface) Stride() int { return s.stride }

// Pix returns the raw pixel data. Modifying it modifies the surface.
func (s *Surface) Pix() []byte { return s.pix }

// Row returns the pixel bytes for row y, without any stride padding.
// Returns nil if y is out of bounds.
func (s *Surface) Row(y int) []byte {
	if y < 0 || y >= s.height {
		return nil
	}
	start := y * s.stride
	return s.pix[start : start+s.width*bytesPerPixel]
}

// SetRGBA sets the pixel at (x, y). Out-of-bounds coordinates are ignored.
func (s *Surface) SetRGBA(x, y int, r, g, b, a uint8) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	off := y*s.stride + x*bytesPerPixel
	s.pix[off] = r
	s.pix[off+1] = g
	s.pix[off+2] = b
	s.pix[off+3] = a
}

// RGBA returns the pixel at (x, y), or zeros if out of bounds.
func (s *Surface) RGBA(x, y int) (r, g, b, a uint8) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0, 0, 0, 0
	}
	off := y*s.stride + x*bytesPerPixel
	return s.pix[off], s.pix[off+1], s.pix[off+2], s.pix[off+3]
}

// Clear sets all pixels to transparent black.
func (s *Surface) Clear() {
	clear(s.pix)
}

// NRGBA returns a standard library view over the surface's pixels.
// The view shares the underlying data; no copy is made.
func (s *Surface) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    s.pix,
		Stride: s.stride,
		Rect:   image.Rect(0, 0, s.width, s.height),
	}
}
