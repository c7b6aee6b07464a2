package lottieconv

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/vleushin/lottie-converter/decoder"
	"github.com/vleushin/lottie-converter/decoder/decodertest"
)

// registerBackend registers a synthetic backend under a per-test name and
// removes it when the test finishes.
func registerBackend(t *testing.T, b *decodertest.Backend) string {
	t.Helper()

	name := "convert-test-" + strings.ReplaceAll(t.Name(), "/", "-")
	decoder.Register(name, 10, b.Open, nil)
	t.Cleanup(func() { decoder.Unregister(name) })
	return name
}

func decodeFrame(t *testing.T, path string) image.Image {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open frame %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode frame %s: %v", path, err)
	}
	return img
}

func frameFiles(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

// =============================================================================
// End-to-End Tests
// =============================================================================

func TestConvert_Downsamples(t *testing.T) {
	b := &decodertest.Backend{Frames: 30, Rate: 30}
	dir := t.TempDir()

	err := Convert(context.Background(), []byte("{}"), Options{
		Width:     16,
		Height:    16,
		OutputDir: dir,
		FPS:       10,
		Workers:   3,
		Decoder:   registerBackend(t, b),
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	names := frameFiles(t, dir)
	if len(names) != 10 {
		t.Fatalf("got %d frame files, want 10: %v", len(names), names)
	}
	for j := 0; j < 10; j++ {
		want := fmt.Sprintf("%03d.png", j)
		found := false
		for _, n := range names {
			if n == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing frame file %s", want)
		}
	}

	// Sampled source frames are 0,3,6,…,27; the synthetic backend stores
	// the rendered source frame in the red channel of the right half.
	for j, wantSrc := range []uint8{0, 3, 6, 9, 12, 15, 18, 21, 24, 27} {
		img := decodeFrame(t, filepath.Join(dir, fmt.Sprintf("%03d.png", j)))
		r, _, _, _ := img.At(12, 8).RGBA()
		if uint8(r>>8) != wantSrc {
			t.Errorf("frame %d sampled source frame %d, want %d", j, r>>8, wantSrc)
		}
	}
}

func TestConvert_FlattensTransparency(t *testing.T) {
	b := &decodertest.Backend{Frames: 1, Rate: 30}
	dir := t.TempDir()

	err := Convert(context.Background(), []byte("{}"), Options{
		Width:     16,
		Height:    16,
		OutputDir: dir,
		Workers:   1,
		Decoder:   registerBackend(t, b),
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	// The left half of every synthetic frame is fully transparent and
	// must come out as the white background.
	img := decodeFrame(t, filepath.Join(dir, "000.png"))
	r, g, bl, _ := img.At(2, 8).RGBA()
	if r>>8 != 255 || g>>8 != 255 || bl>>8 != 255 {
		t.Errorf("transparent region = (%d,%d,%d), want white", r>>8, g>>8, bl>>8)
	}
}

func TestConvert_PassThroughProducesAllFrames(t *testing.T) {
	b := &decodertest.Backend{Frames: 12, Rate: 24}
	dir := t.TempDir()

	err := Convert(context.Background(), []byte("{}"), Options{
		Width:     8,
		Height:    8,
		OutputDir: dir,
		Workers:   4,
		Decoder:   registerBackend(t, b),
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if names := frameFiles(t, dir); len(names) != 12 {
		t.Errorf("got %d frame files, want 12 (pass-through)", len(names))
	}
}

func TestConvert_Supersample(t *testing.T) {
	b := &decodertest.Backend{Frames: 2, Rate: 30}
	dir := t.TempDir()

	err := Convert(context.Background(), []byte("{}"), Options{
		Width:       16,
		Height:      16,
		OutputDir:   dir,
		Workers:     1,
		Supersample: 2,
		Decoder:     registerBackend(t, b),
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	// Output frames keep the requested dimensions regardless of the
	// supersampled render size.
	img := decodeFrame(t, filepath.Join(dir, "000.png"))
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 16 {
		t.Errorf("frame size = %v, want 16x16", img.Bounds())
	}
}

// =============================================================================
// Worker and Handle Tests
// =============================================================================

func TestConvert_ZeroWorkersUsesHardwareParallelism(t *testing.T) {
	b := &decodertest.Backend{Frames: 4, Rate: 30}
	dir := t.TempDir()

	err := Convert(context.Background(), []byte("{}"), Options{
		Width:     8,
		Height:    8,
		OutputDir: dir,
		Decoder:   registerBackend(t, b),
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	// One handle for the probe plus one per worker, workers idle or not.
	want := runtime.NumCPU() + 1
	if got := b.OpenCount(); got != want {
		t.Errorf("OpenCount() = %d, want %d (probe + NumCPU workers)", got, want)
	}
}

func TestConvert_SharesCacheKeyAcrossHandles(t *testing.T) {
	b := &decodertest.Backend{Frames: 4, Rate: 30}
	dir := t.TempDir()

	err := Convert(context.Background(), []byte("{}"), Options{
		Width:     8,
		Height:    8,
		OutputDir: dir,
		Workers:   3,
		CacheKey:  "conversion-42",
		Decoder:   registerBackend(t, b),
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	keys := b.OpenedKeys()
	if len(keys) != 4 {
		t.Fatalf("got %d handles, want 4 (probe + 3 workers)", len(keys))
	}
	for _, k := range keys {
		if k != "conversion-42" {
			t.Errorf("handle opened with key %q, want conversion-42", k)
		}
	}
}

func TestConvert_GeneratedCacheKeyShared(t *testing.T) {
	b := &decodertest.Backend{Frames: 2, Rate: 30}
	dir := t.TempDir()

	err := Convert(context.Background(), []byte("{}"), Options{
		Width:     8,
		Height:    8,
		OutputDir: dir,
		Workers:   2,
		Decoder:   registerBackend(t, b),
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	keys := b.OpenedKeys()
	if len(keys) == 0 {
		t.Fatal("no handles opened")
	}
	for _, k := range keys[1:] {
		if k != keys[0] {
			t.Error("probe and workers must share one generated cache key")
		}
	}
}

// =============================================================================
// Failure Tests
// =============================================================================

func TestConvert_LoadFailureAborts(t *testing.T) {
	b := &decodertest.Backend{Frames: 4, Rate: 30, FailLoad: true}
	dir := t.TempDir()

	err := Convert(context.Background(), []byte("{}"), Options{
		Width:     8,
		Height:    8,
		OutputDir: dir,
		Workers:   2,
		Decoder:   registerBackend(t, b),
	})
	if !errors.Is(err, ErrAnimationLoad) {
		t.Fatalf("Convert() error = %v, want ErrAnimationLoad", err)
	}

	if names := frameFiles(t, dir); len(names) != 0 {
		t.Errorf("failed conversion left %d frame files: %v", len(names), names)
	}
}

func TestConvert_UnwritableOutputDir(t *testing.T) {
	b := &decodertest.Backend{Frames: 2, Rate: 30}
	dir := filepath.Join(t.TempDir(), "does", "not", "exist")

	err := Convert(context.Background(), []byte("{}"), Options{
		Width:     8,
		Height:    8,
		OutputDir: dir,
		Workers:   1,
		Decoder:   registerBackend(t, b),
	})
	if !errors.Is(err, ErrEncode) {
		t.Errorf("Convert() error = %v, want ErrEncode", err)
	}
}

func TestConvert_InvalidOptions(t *testing.T) {
	err := Convert(context.Background(), []byte("{}"), Options{
		Width:     0,
		Height:    8,
		OutputDir: t.TempDir(),
	})
	if !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Convert() error = %v, want ErrInvalidDimensions", err)
	}
}

func TestConvert_NoBackend(t *testing.T) {
	err := Convert(context.Background(), []byte("{}"), Options{
		Width:     8,
		Height:    8,
		OutputDir: t.TempDir(),
		Decoder:   "never-registered",
	})
	if !errors.Is(err, ErrAnimationLoad) {
		t.Errorf("Convert() error = %v, want ErrAnimationLoad", err)
	}
}

func TestConvert_CanceledContext(t *testing.T) {
	b := &decodertest.Backend{Frames: 8, Rate: 30}
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Convert(ctx, []byte("{}"), Options{
		Width:     8,
		Height:    8,
		OutputDir: dir,
		Workers:   2,
		Decoder:   registerBackend(t, b),
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}

// =============================================================================
// Frame Naming Tests
// =============================================================================

func TestFrameName(t *testing.T) {
	cases := []struct {
		j    int
		want string
	}{
		{0, "000.png"},
		{7, "007.png"},
		{42, "042.png"},
		{999, "999.png"},
		// Past the nominal 3-digit width the name grows instead of
		// truncating, so long sequences keep unique file names.
		{1000, "1000.png"},
		{12345, "12345.png"},
	}
	for _, tc := range cases {
		if got := frameName(tc.j); got != tc.want {
			t.Errorf("frameName(%d) = %q, want %q", tc.j, got, tc.want)
		}
	}
}
