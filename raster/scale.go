package raster

import (
	"golang.org/x/image/draw"
)

// Downscale scales src into dst using Catmull-Rom resampling.
//
// This backs supersampled rendering: the decoder renders at a multiple of
// the target dimensions and the result is reduced to the output size for
// smoother edges. Both surfaces must already be flattened — resampling
// non-premultiplied RGBA bleeds transparent-pixel colors into their
// neighbors, so scaling happens after the alpha channel is constant.
func Downscale(dst, src *Surface) {
	draw.CatmullRom.Scale(dst.NRGBA(), dst.NRGBA().Rect, src.NRGBA(), src.NRGBA().Rect, draw.Src, nil)
}
