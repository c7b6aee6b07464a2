package lottieconv

import (
	"errors"
	"image/color"
	"testing"
)

func validOptions() Options {
	return Options{Width: 16, Height: 16, OutputDir: "frames"}
}

func TestOptions_NormalizeDefaults(t *testing.T) {
	norm, err := validOptions().normalize()
	if err != nil {
		t.Fatalf("normalize() error = %v", err)
	}

	if norm.Supersample != 1 {
		t.Errorf("Supersample = %d, want 1", norm.Supersample)
	}
	if norm.CacheKey == "" {
		t.Error("CacheKey should be generated when empty")
	}
	if norm.bg != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("bg = %+v, want white", norm.bg)
	}
}

func TestOptions_NormalizeGeneratedKeysUnique(t *testing.T) {
	a, err := validOptions().normalize()
	if err != nil {
		t.Fatalf("normalize() error = %v", err)
	}
	b, err := validOptions().normalize()
	if err != nil {
		t.Fatalf("normalize() error = %v", err)
	}

	if a.CacheKey == b.CacheKey {
		t.Error("two conversions received the same generated cache key")
	}
}

func TestOptions_NormalizeKeepsExplicitKey(t *testing.T) {
	opts := validOptions()
	opts.CacheKey = "stable-key"

	norm, err := opts.normalize()
	if err != nil {
		t.Fatalf("normalize() error = %v", err)
	}
	if norm.CacheKey != "stable-key" {
		t.Errorf("CacheKey = %q, want stable-key", norm.CacheKey)
	}
}

func TestOptions_NormalizeBackground(t *testing.T) {
	opts := validOptions()
	opts.Background = "#336699"

	norm, err := opts.normalize()
	if err != nil {
		t.Fatalf("normalize() error = %v", err)
	}
	want := color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 255}
	if norm.bg != want {
		t.Errorf("bg = %+v, want %+v", norm.bg, want)
	}
}

func TestOptions_NormalizeBadBackground(t *testing.T) {
	opts := validOptions()
	opts.Background = "not-a-color"

	if _, err := opts.normalize(); err == nil {
		t.Error("normalize() with a malformed background should fail")
	}
}

func TestOptions_NormalizeInvalid(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Options)
		wantErr error
	}{
		{"zero width", func(o *Options) { o.Width = 0 }, ErrInvalidDimensions},
		{"zero height", func(o *Options) { o.Height = 0 }, ErrInvalidDimensions},
		{"negative fps", func(o *Options) { o.FPS = -1 }, ErrInvalidFPS},
		{"negative workers", func(o *Options) { o.Workers = -1 }, ErrInvalidWorkers},
		{"negative supersample", func(o *Options) { o.Supersample = -2 }, ErrInvalidSupersample},
		{"no output dir", func(o *Options) { o.OutputDir = "" }, ErrNoOutputDir},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := validOptions()
			tc.mutate(&opts)
			if _, err := opts.normalize(); !errors.Is(err, tc.wantErr) {
				t.Errorf("normalize() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
