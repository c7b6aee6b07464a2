// Package sample maps an output frame rate onto a source animation's
// native timeline.
//
// A Lottie animation carries a fixed frame count at a fixed frame rate.
// To produce output at a different rate, each output frame index is mapped
// to the nearest source frame (no interpolation or frame blending). All of
// the derived quantities are computed once, up front, and never change for
// the lifetime of a conversion.
package sample

import (
	"errors"
	"math"
)

// Sampling errors.
var (
	// ErrNoFrames is returned when the source animation has no frames.
	ErrNoFrames = errors.New("sample: source has no frames")

	// ErrInvalidRate is returned for a non-positive source frame rate or a
	// negative output frame rate.
	ErrInvalidRate = errors.New("sample: invalid frame rate")
)

// Params holds the derived sampling parameters for one conversion.
//
// Params is immutable after New returns; it is safe to share across
// goroutines by value.
type Params struct {
	// SourceFrames is the total number of frames in the source animation.
	SourceFrames int

	// SourceRate is the source animation's native frame rate in frames
	// per second.
	SourceRate float64

	// OutputRate is the effective output frame rate. When the requested
	// rate is zero this equals SourceRate (pass-through sampling).
	OutputRate float64

	// Step is the number of source frames advanced per output frame
	// (SourceRate / OutputRate). Pass-through sampling has Step == 1.
	Step float64

	// Duration is the animation length in seconds.
	Duration float64

	// FrameCount is the number of output frames to produce. Pass-through
	// sampling produces exactly SourceFrames; otherwise it is the floored
	// product OutputRate * Duration, so a fractional remainder never
	// yields an extra frame.
	FrameCount int
}

// New computes sampling parameters from the source animation's frame count
// and rate and the requested output rate.
//
// A requested rate of 0 selects the source's native rate, which reduces to
// pass-through sampling: one output frame per source frame, in order.
func New(sourceFrames int, sourceRate, outputRate float64) (Params, error) {
	if sourceFrames <= 0 {
		return Params{}, ErrNoFrames
	}
	if sourceRate <= 0 || outputRate < 0 || math.IsNaN(outputRate) || math.IsInf(outputRate, 0) {
		return Params{}, ErrInvalidRate
	}
	if outputRate == 0 {
		outputRate = sourceRate
	}

	duration := float64(sourceFrames) / sourceRate

	p := Params{
		SourceFrames: sourceFrames,
		SourceRate:   sourceRate,
		OutputRate:   outputRate,
		Step:         sourceRate / outputRate,
		Duration:     duration,
	}

	// Pass-through is computed exactly. Recovering the frame count from
	// outputRate*duration divides and re-multiplies by the rate, and for
	// non-dyadic rates (23.976, 12.5) the product can land just below the
	// integer and the floor would drop the last frame.
	if outputRate == sourceRate {
		p.Step = 1
		p.FrameCount = sourceFrames
		return p, nil
	}

	p.FrameCount = int(math.Floor(outputRate * duration))
	return p, nil
}

// SourceFrame returns the source frame sampled for output frame j, rounded
// to the nearest integer frame index and clamped to the source's valid
// range 0..SourceFrames-1. Without the clamp, upsampling can round the
// last index one past the final source frame. The result is returned as a
// float64 because decoders accept fractional frame positions; the value
// itself is always integral.
func (p Params) SourceFrame(j int) float64 {
	f := math.Round(float64(j) * p.Step)
	if last := float64(p.SourceFrames - 1); f > last {
		return last
	}
	return f
}

// PassThrough reports whether sampling is one-to-one with the source.
func (p Params) PassThrough() bool {
	return p.Step == 1
}
