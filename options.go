package lottieconv

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vleushin/lottie-converter/raster"
)

// Option validation errors.
var (
	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("lottieconv: width and height must be positive")

	// ErrInvalidFPS is returned for a negative output frame rate.
	ErrInvalidFPS = errors.New("lottieconv: fps must not be negative")

	// ErrInvalidWorkers is returned for a negative worker count.
	ErrInvalidWorkers = errors.New("lottieconv: workers must not be negative")

	// ErrInvalidSupersample is returned for a negative supersample factor.
	ErrInvalidSupersample = errors.New("lottieconv: supersample must not be negative")

	// ErrNoOutputDir is returned when no output directory is set.
	ErrNoOutputDir = errors.New("lottieconv: output directory must be set")
)

// Options configures one conversion.
type Options struct {
	// Width and Height are the output frame dimensions in pixels.
	Width  int
	Height int

	// OutputDir is the directory frame files are written into. It must
	// exist and be writable.
	OutputDir string

	// FPS is the requested output frame rate. 0 selects the animation's
	// native rate (one output frame per source frame).
	FPS float64

	// Workers is the number of render workers. 0 selects the host's
	// available hardware parallelism.
	Workers int

	// CacheKey is the decoder cache key shared by the probe and every
	// worker handle of this conversion. When empty a random key is
	// generated, so distinct conversions never collide in the decoder's
	// cache. Callers that convert the same bytes repeatedly can pass a
	// stable key to reuse the decoder's parsed state.
	CacheKey string

	// Background is the opaque color transparency is flattened onto,
	// as a hex string ("#rrggbb"). Empty selects white, matching the
	// GIF-oriented behavior of the original converter.
	Background string

	// Supersample renders at a multiple of the output dimensions and
	// downscales for smoother edges. 0 and 1 both mean no supersampling.
	Supersample int

	// Decoder selects a named decoder backend. Empty selects the best
	// available backend by priority.
	Decoder string
}

// normalized is an Options with defaults resolved and the background
// parsed, ready to drive a conversion.
type normalized struct {
	Options
	bg color.NRGBA
}

// normalize validates opts and resolves defaults. The returned value is a
// copy; the caller's Options is never modified.
func (o Options) normalize() (normalized, error) {
	if o.Width <= 0 || o.Height <= 0 {
		return normalized{}, ErrInvalidDimensions
	}
	if o.FPS < 0 {
		return normalized{}, ErrInvalidFPS
	}
	if o.Workers < 0 {
		return normalized{}, ErrInvalidWorkers
	}
	if o.Supersample < 0 {
		return normalized{}, ErrInvalidSupersample
	}
	if o.OutputDir == "" {
		return normalized{}, ErrNoOutputDir
	}

	if o.Supersample == 0 {
		o.Supersample = 1
	}
	if o.CacheKey == "" {
		o.CacheKey = uuid.NewString()
	}

	bg := raster.White
	if o.Background != "" {
		c, err := colorful.Hex(o.Background)
		if err != nil {
			return normalized{}, fmt.Errorf("lottieconv: parse background %q: %w", o.Background, err)
		}
		r, g, b := c.RGB255()
		bg = color.NRGBA{R: r, G: g, B: b, A: 255}
	}

	return normalized{Options: o, bg: bg}, nil
}
