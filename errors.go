package lottieconv

import "errors"

// Conversion errors. Every failure is fatal for the whole conversion: the
// engine does not retry and does not skip frames, so the caller sees a
// single pass/fail outcome per input animation.
var (
	// ErrAnimationLoad is returned when the animation source cannot be
	// decoded, either during the initial probe or when a worker re-opens
	// its own handle.
	ErrAnimationLoad = errors.New("lottieconv: cannot load animation")

	// ErrSurfaceAlloc is returned when a worker's render surface cannot
	// be allocated.
	ErrSurfaceAlloc = errors.New("lottieconv: cannot allocate render surface")

	// ErrEncode is returned when a frame cannot be written to disk.
	ErrEncode = errors.New("lottieconv: cannot encode frame")
)
