package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vleushin/lottie-converter/decoder"
	"github.com/vleushin/lottie-converter/sticker"
)

func newProbeCommand(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <file>...",
		Short: "Show animation metadata",
		Long: `Open each animation file and print its frame count, native frame
rate and duration, along with the decoder backends available in this
build.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			backends := decoder.Available()
			if len(backends) == 0 {
				return fmt.Errorf("no decoder backends available")
			}
			fmt.Fprintf(out, "decoders: %s\n\n", strings.Join(backends, ", "))

			for _, input := range args {
				if err := probeOne(out, cfg, input); err != nil {
					return fmt.Errorf("%s: %w", input, err)
				}
			}
			return nil
		},
	}
}

func probeOne(out io.Writer, cfg *Config, input string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	raw, err := sticker.Unwrap(data)
	if err != nil {
		return err
	}

	anim, err := openDecoder(cfg.Decoder, raw, uuid.NewString())
	if err != nil {
		return err
	}
	defer func() { _ = anim.Close() }()

	frames := anim.TotalFrames()
	rate := anim.FrameRate()
	var duration float64
	if rate > 0 {
		duration = float64(frames) / rate
	}

	fmt.Fprintf(out, "%s\n", input)
	fmt.Fprintf(out, "  frames:   %d\n", frames)
	fmt.Fprintf(out, "  rate:     %.3g fps\n", rate)
	fmt.Fprintf(out, "  duration: %.3gs\n", duration)
	if sticker.IsCompressed(data) {
		fmt.Fprintf(out, "  format:   tgs (gzip)\n")
	} else {
		fmt.Fprintf(out, "  format:   json\n")
	}
	return nil
}
