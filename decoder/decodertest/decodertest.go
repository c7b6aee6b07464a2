// Package decodertest provides a synthetic in-memory decoder backend for
// exercising the conversion pipeline without a real Lottie engine.
//
// Rendered frames are deterministic and self-describing: the right half
// of every frame is opaque with the frame index stored in the red
// channel, the left half is fully transparent. Tests can read back which
// source frame was sampled and verify that transparency was flattened.
package decodertest

import (
	"errors"
	"math"
	"sync"

	"github.com/vleushin/lottie-converter/decoder"
	"github.com/vleushin/lottie-converter/raster"
)

// ErrLoad is returned by Open when the backend is configured to fail or
// the source bytes are empty, standing in for a malformed animation.
var ErrLoad = errors.New("decodertest: cannot load animation")

// Backend is a synthetic decoder. The zero value is not usable; set
// Frames and Rate before registering.
//
// Backend records every Open call, so tests can assert how many handles a
// conversion created and which cache keys they carried.
type Backend struct {
	// Frames is the frame count reported by opened animations.
	Frames int

	// Rate is the frame rate reported by opened animations.
	Rate float64

	// FailLoad makes every Open call fail, simulating malformed input.
	FailLoad bool

	mu     sync.Mutex
	opened []string
}

// Open implements decoder.Factory.
func (b *Backend) Open(data []byte, cacheKey string) (decoder.Animation, error) {
	if b.FailLoad || len(data) == 0 {
		return nil, ErrLoad
	}

	b.mu.Lock()
	b.opened = append(b.opened, cacheKey)
	b.mu.Unlock()

	return &animation{frames: b.Frames, rate: b.Rate}, nil
}

// OpenedKeys returns the cache keys of every Open call so far, in call
// order.
func (b *Backend) OpenedKeys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	keys := make([]string, len(b.opened))
	copy(keys, b.opened)
	return keys
}

// OpenCount returns the number of Open calls so far.
func (b *Backend) OpenCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.opened)
}

// animation is a handle onto the synthetic frame source.
type animation struct {
	frames int
	rate   float64
}

func (a *animation) TotalFrames() int   { return a.frames }
func (a *animation) FrameRate() float64 { return a.rate }
func (a *animation) Close() error       { return nil }

// RenderSync paints the synthetic test pattern for the given frame.
func (a *animation) RenderSync(frame float64, target *raster.Surface) error {
	idx := uint8(math.Round(frame))
	w, h := target.Width(), target.Height()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				target.SetRGBA(x, y, 0, 0, 0, 0)
			} else {
				target.SetRGBA(x, y, idx, 200, 100, 255)
			}
		}
	}
	return nil
}
