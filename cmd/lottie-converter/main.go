// Command lottie-converter renders Lottie animations and Telegram
// stickers to PNG frame sequences, optionally assembling them into an
// animated file with ffmpeg.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
