package raster

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
)

// EncodePNG encodes the surface as a single still-image PNG to w.
//
// The surface must have been flattened first: with every alpha byte at
// 255 the PNG encoder stores true-color rows of 3 bytes per pixel, so the
// written file carries no alpha channel. Encoding a non-flattened surface
// would silently reintroduce an alpha channel, which downstream assembly
// does not accept; the conversion engine always flattens before encoding.
func EncodePNG(w io.Writer, s *Surface) error {
	if err := png.Encode(w, s.NRGBA()); err != nil {
		return fmt.Errorf("raster: encode PNG: %w", err)
	}
	return nil
}

// SavePNG writes the surface as a PNG file at path.
//
// File creation is checked and reported: an unwritable output directory
// fails the frame (and with it the conversion) instead of proceeding with
// an invalid handle. The file is closed on all paths and close errors are
// reported, so a reported success means the frame is fully on disk.
func SavePNG(path string, s *Surface) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("raster: create file: %w", err)
	}

	if err := EncodePNG(f, s); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("raster: close file: %w", err)
	}
	return nil
}
