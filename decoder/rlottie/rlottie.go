//go:build rlottie

// Package rlottie binds the rlottie C engine as a decoder backend.
//
// The backend is compiled only with the "rlottie" build tag and requires
// librlottie development headers (pkg-config: rlottie). On import it
// registers itself as backend "rlottie" with priority 100.
//
//	import _ "github.com/vleushin/lottie-converter/decoder/rlottie"
package rlottie

/*
#cgo pkg-config: rlottie
#include <stdlib.h>
#include <rlottie_capi.h>
*/
import "C"

import (
	"errors"
	"math"
	"unsafe"

	"github.com/vleushin/lottie-converter/decoder"
	"github.com/vleushin/lottie-converter/raster"
)

// Binding errors.
var (
	// ErrLoad is returned when rlottie rejects the animation data.
	ErrLoad = errors.New("rlottie: cannot load animation")

	// ErrClosed is returned when rendering through a closed handle.
	ErrClosed = errors.New("rlottie: animation is closed")
)

// init registers the rlottie backend on package import.
func init() {
	decoder.Register("rlottie", 100, open, nil)
}

// animation wraps one Lottie_Animation handle. Handles are not safe for
// concurrent use; the conversion engine opens one per worker.
type animation struct {
	anim *C.Lottie_Animation
}

// open implements decoder.Factory. The cache key is passed through to
// rlottie, which shares parsed animation data between handles opened with
// the same key.
func open(data []byte, cacheKey string) (decoder.Animation, error) {
	cData := C.CString(string(data))
	defer C.free(unsafe.Pointer(cData))
	cKey := C.CString(cacheKey)
	defer C.free(unsafe.Pointer(cKey))
	cResource := C.CString("")
	defer C.free(unsafe.Pointer(cResource))

	anim := C.lottie_animation_from_data(cData, cKey, cResource)
	if anim == nil {
		return nil, ErrLoad
	}
	return &animation{anim: anim}, nil
}

func (a *animation) TotalFrames() int {
	return int(C.lottie_animation_get_totalframe(a.anim))
}

func (a *animation) FrameRate() float64 {
	return float64(C.lottie_animation_get_framerate(a.anim))
}

// RenderSync renders the given source frame into the surface.
//
// rlottie produces premultiplied BGRA; the pixels are converted to the
// straight-alpha RGBA the rest of the pipeline expects before returning.
func (a *animation) RenderSync(frame float64, target *raster.Surface) error {
	if a.anim == nil {
		return ErrClosed
	}

	pix := target.Pix()
	C.lottie_animation_render(
		a.anim,
		C.size_t(math.Round(frame)),
		(*C.uint32_t)(unsafe.Pointer(&pix[0])),
		C.size_t(target.Width()),
		C.size_t(target.Height()),
		C.size_t(target.Stride()),
	)

	unpremultiplyBGRA(target)
	return nil
}

func (a *animation) Close() error {
	if a.anim != nil {
		C.lottie_animation_destroy(a.anim)
		a.anim = nil
	}
	return nil
}

// unpremultiplyBGRA converts the surface from rlottie's premultiplied
// BGRA to straight-alpha RGBA in place.
func unpremultiplyBGRA(s *raster.Surface) {
	for y := 0; y < s.Height(); y++ {
		row := s.Row(y)
		for i := 0; i < len(row); i += 4 {
			b, g, r, a := row[i], row[i+1], row[i+2], row[i+3]
			if a != 0 && a != 255 {
				r = unmul(r, a)
				g = unmul(g, a)
				b = unmul(b, a)
			}
			row[i], row[i+1], row[i+2], row[i+3] = r, g, b, a
		}
	}
}

// unmul divides a premultiplied channel by its alpha, clamped to 255.
func unmul(c, a uint8) uint8 {
	v := uint16(c) * 255 / uint16(a)
	if v > 255 {
		return 255
	}
	return uint8(v)
}
