package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the tool's settings. Every field can be overridden per
// invocation by a command flag; the file only provides defaults.
type Config struct {
	// Width and Height are the output frame dimensions in pixels.
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// FPS is the output frame rate; 0 keeps each animation's native rate.
	FPS float64 `toml:"fps"`

	// Workers is the render worker count; 0 auto-detects.
	Workers int `toml:"workers"`

	// Background is the hex color transparency is flattened onto;
	// empty means white.
	Background string `toml:"background"`

	// Supersample is the supersampling factor; 0 and 1 disable it.
	Supersample int `toml:"supersample"`

	// Decoder selects a named decoder backend; empty auto-selects.
	Decoder string `toml:"decoder"`

	// OutputDir is the base directory conversions write into. Each input
	// gets its own frame subdirectory named after the input file.
	OutputDir string `toml:"output_dir"`

	// FFmpegPath is the ffmpeg binary used for sequence assembly.
	FFmpegPath string `toml:"ffmpeg_path"`

	// Assemble selects the container the frame sequence is assembled
	// into after conversion: "gif", "webp", "apng" or "" for frames only.
	Assemble string `toml:"assemble"`
}

// assembleFormats maps the assemble setting to an output file extension.
var assembleFormats = map[string]string{
	"gif":  ".gif",
	"webp": ".webp",
	"apng": ".apng",
}

func defaultConfig() Config {
	return Config{
		Width:      512,
		Height:     512,
		OutputDir:  ".",
		FFmpegPath: "ffmpeg",
	}
}

// configFileName is the default config location under the user config
// directory.
const configFileName = "lottie-converter/config.toml"

// loadConfig reads path over the defaults. An empty path falls back to
// the per-user config file, which is allowed to be absent.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		base, err := os.UserConfigDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(base, configFileName)
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New("width and height must be positive")
	}
	if c.FPS < 0 {
		return errors.New("fps must not be negative")
	}
	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	if c.Assemble != "" {
		if _, ok := assembleFormats[c.Assemble]; !ok {
			return fmt.Errorf("unknown assemble format %q", c.Assemble)
		}
	}
	return nil
}
