package main

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// assembleSequence invokes ffmpeg to assemble the PNG frame sequence in
// framesDir into outFile at the given frame rate. The frame files follow
// the converter's zero-padded naming, which ffmpeg's image2 demuxer reads
// with a %03d pattern.
func assembleSequence(ctx context.Context, ffmpegPath, framesDir, outFile string, fps float64) error {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-framerate", strconv.FormatFloat(fps, 'f', -1, 64),
		"-i", filepath.Join(framesDir, "%03d.png"),
	}
	if filepath.Ext(outFile) == ".apng" {
		args = append(args, "-f", "apng", "-plays", "0")
	}
	args = append(args, outFile)

	cmd := exec.CommandContext(ctx, ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("ffmpeg: %w: %s", err, msg)
		}
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return nil
}
