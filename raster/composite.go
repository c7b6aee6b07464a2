package raster

import "image/color"

// White is the default background for flattening, matching the behavior of
// the original converter: transparency is replaced with solid white.
var White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Flatten composites every pixel of the surface onto the opaque background
// color bg, in place. After Flatten the alpha channel is 255 everywhere.
//
// This is a standard "over" operation against a constant opaque background:
//
//	out = src*a/255 + bg*(255-a)/255
//
// Fully transparent pixels become exactly bg; fully opaque pixels keep
// their color with only the (redundant) alpha write. Flatten is idempotent
// on an already-opaque buffer.
//
// Flatten must run before encoding: the encoder emits 3-channel output and
// drops alpha, so any remaining transparency would otherwise be lost
// rather than blended.
func Flatten(s *Surface, bg color.NRGBA) {
	for y := 0; y < s.height; y++ {
		row := s.Row(y)
		for i := 0; i < len(row); i += bytesPerPixel {
			switch a := row[i+3]; a {
			case 0:
				row[i] = bg.R
				row[i+1] = bg.G
				row[i+2] = bg.B
				row[i+3] = 255
			case 255:
				// Already opaque, nothing to blend.
			default:
				inv := 255 - a
				row[i] = mulDiv255(row[i], a) + mulDiv255(bg.R, inv)
				row[i+1] = mulDiv255(row[i+1], a) + mulDiv255(bg.G, inv)
				row[i+2] = mulDiv255(row[i+2], a) + mulDiv255(bg.B, inv)
				row[i+3] = 255
			}
		}
	}
}

// div255 divides x by 255 exactly without using division.
//
// Formula: ((x + 1) + ((x + 1) >> 8)) >> 8
//
// This is Alvy Ray Smith's formula, which gives exact results for all
// uint16 values and is about 3x faster than integer division. mulDiv255 is
// called for every pixel of every frame, so this matters.
func div255(x uint16) uint16 {
	t := x + 1
	return (t + (t >> 8)) >> 8
}

// mulDiv255 multiplies two bytes and divides by 255 exactly.
func mulDiv255(a, b byte) byte {
	return byte(div255(uint16(a) * uint16(b)))
}
