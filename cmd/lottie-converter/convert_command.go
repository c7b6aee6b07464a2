package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	lottieconv "github.com/vleushin/lottie-converter"
	"github.com/vleushin/lottie-converter/decoder"
	"github.com/vleushin/lottie-converter/sticker"
)

func newConvertCommand(cfg *Config) *cobra.Command {
	var flags Config
	var keepFrames bool

	cmd := &cobra.Command{
		Use:   "convert <file|dir>...",
		Short: "Render animations to PNG frame sequences",
		Long: `Render each input animation (.json or .tgs) to a directory of PNG
frames. Directories are searched recursively. With --assemble the frame
sequence is additionally encoded into an animated file with ffmpeg.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := *cfg
			applyOverrides(cmd, &c, flags)
			if err := c.validate(); err != nil {
				return err
			}

			inputs, err := discoverInputs(args)
			if err != nil {
				return err
			}
			if len(inputs) == 0 {
				return fmt.Errorf("no animation files found")
			}

			failed := 0
			rows := make([][]string, 0, len(inputs))
			for _, input := range inputs {
				row := convertOne(cmd, c, input, keepFrames)
				if row[3] != "ok" {
					failed++
				}
				rows = append(rows, row)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderSummary(rows))
			if failed > 0 {
				return fmt.Errorf("%d of %d conversions failed", failed, len(inputs))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&flags.Width, "width", 512, "Frame width in pixels")
	cmd.Flags().IntVar(&flags.Height, "height", 512, "Frame height in pixels")
	cmd.Flags().Float64Var(&flags.FPS, "fps", 0, "Output frame rate (0 = native)")
	cmd.Flags().IntVar(&flags.Workers, "workers", 0, "Render workers (0 = auto)")
	cmd.Flags().StringVar(&flags.Background, "background", "", "Background hex color (default white)")
	cmd.Flags().IntVar(&flags.Supersample, "supersample", 0, "Supersampling factor (0 = off)")
	cmd.Flags().StringVar(&flags.Decoder, "decoder", "", "Decoder backend (default auto)")
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", ".", "Base output directory")
	cmd.Flags().StringVar(&flags.Assemble, "assemble", "", "Assemble frames into gif, webp or apng")
	cmd.Flags().BoolVar(&keepFrames, "keep-frames", false, "Keep the frame directory after assembly")

	return cmd
}

// applyOverrides copies every flag the user set on the command line over
// the loaded config, so flags win over the config file.
func applyOverrides(cmd *cobra.Command, c *Config, flags Config) {
	set := map[string]func(){
		"width":       func() { c.Width = flags.Width },
		"height":      func() { c.Height = flags.Height },
		"fps":         func() { c.FPS = flags.FPS },
		"workers":     func() { c.Workers = flags.Workers },
		"background":  func() { c.Background = flags.Background },
		"supersample": func() { c.Supersample = flags.Supersample },
		"decoder":     func() { c.Decoder = flags.Decoder },
		"output":      func() { c.OutputDir = flags.OutputDir },
		"assemble":    func() { c.Assemble = flags.Assemble },
	}
	for name, apply := range set {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
}

// convertOne converts a single input file and returns its summary row:
// input, frame count, output path, status.
func convertOne(cmd *cobra.Command, cfg Config, input string, keepFrames bool) []string {
	fail := func(err error) []string {
		return []string{input, "-", "-", err.Error()}
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return fail(err)
	}
	raw, err := sticker.Unwrap(data)
	if err != nil {
		return fail(err)
	}

	framesDir := frameDirFor(cfg.OutputDir, input)
	if err := os.MkdirAll(framesDir, 0o755); err != nil {
		return fail(err)
	}

	// The cache key is generated here and shared with the conversion's
	// probe and workers, and with the rate probe below.
	key := uuid.NewString()

	err = lottieconv.Convert(cmd.Context(), raw, lottieconv.Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		OutputDir:   framesDir,
		FPS:         cfg.FPS,
		Workers:     cfg.Workers,
		CacheKey:    key,
		Background:  cfg.Background,
		Supersample: cfg.Supersample,
		Decoder:     cfg.Decoder,
	})
	if err != nil {
		return fail(err)
	}

	frames, err := countFrames(framesDir)
	if err != nil {
		return fail(err)
	}

	output := framesDir
	if cfg.Assemble != "" {
		rate, err := outputRate(cfg, raw, key)
		if err != nil {
			return fail(err)
		}

		outFile := framesDir + assembleFormats[cfg.Assemble]
		if err := assembleSequence(cmd.Context(), cfg.FFmpegPath, framesDir, outFile, rate); err != nil {
			return fail(err)
		}
		output = outFile

		if !keepFrames {
			if err := os.RemoveAll(framesDir); err != nil {
				return fail(err)
			}
		}
	}

	return []string{input, strconv.Itoa(frames), output, "ok"}
}

// outputRate resolves the frame rate the assembled file should play at:
// the requested rate, or the animation's native rate when none was
// requested.
func outputRate(cfg Config, raw []byte, key string) (float64, error) {
	if cfg.FPS != 0 {
		return cfg.FPS, nil
	}

	anim, err := openDecoder(cfg.Decoder, raw, key)
	if err != nil {
		return 0, err
	}
	defer func() { _ = anim.Close() }()
	return anim.FrameRate(), nil
}

func openDecoder(name string, raw []byte, key string) (decoder.Animation, error) {
	if name != "" {
		return decoder.OpenWith(name, raw, key)
	}
	return decoder.Open(raw, key)
}

// countFrames counts the PNG frame files in dir. A reused frame directory
// can hold unrelated entries, which must not inflate the count.
func countFrames(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".png" {
			n++
		}
	}
	return n, nil
}
