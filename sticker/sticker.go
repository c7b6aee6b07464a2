// Package sticker handles Telegram animated-sticker input. A .tgs file is
// a gzip-compressed Lottie JSON document; decoders only accept the
// uncompressed JSON, so sticker input is unwrapped before conversion.
package sticker

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// gzipMagic is the two-byte gzip member header.
var gzipMagic = []byte{0x1f, 0x8b}

// IsCompressed reports whether data starts with a gzip header.
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, gzipMagic)
}

// Unwrap returns the Lottie JSON contained in data. Gzip-compressed input
// (.tgs) is decompressed; anything else is returned unchanged, so plain
// .json animations pass through.
func Unwrap(data []byte) ([]byte, error) {
	if !IsCompressed(data) {
		return data, nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("sticker: open gzip stream: %w", err)
	}
	defer func() { _ = zr.Close() }()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("sticker: decompress: %w", err)
	}
	return raw, nil
}
