// Package lottieconv converts a vector (Lottie) animation into a sequence
// of raster PNG frames.
//
// # Overview
//
// The package is the parallel frame-rendering and compositing engine of
// the converter. Given in-memory animation bytes it resamples the source
// timeline to a requested output frame rate, renders the sampled frames
// across a pool of workers, flattens per-pixel transparency onto an opaque
// background, and writes one PNG file per output frame. Assembly of the
// frame sequence into an animated format (GIF, WebP, APNG) is left to an
// external encoder invoked afterward.
//
// # Quick Start
//
//	import (
//		"github.com/vleushin/lottie-converter"
//		_ "github.com/vleushin/lottie-converter/decoder/rlottie"
//	)
//
//	data, _ := os.ReadFile("sticker.json")
//	err := lottieconv.Convert(context.Background(), data, lottieconv.Options{
//		Width:     512,
//		Height:    512,
//		OutputDir: "frames",
//	})
//
// # Decoders
//
// Lottie decoding itself is delegated to pluggable backends registered in
// the decoder package. The rlottie subpackage binds the rlottie C engine
// behind the "rlottie" build tag; other bindings can register themselves
// the same way.
//
// # Concurrency
//
// Output frames are partitioned across workers by stride: worker i of N
// renders frames i, i+N, i+2N and so on. Each worker owns its own decoder
// handle and pixel surface, so workers never share mutable state. Convert
// returns only after every frame is on disk, or fails as a whole on the
// first error; there is no partial success.
package lottieconv
