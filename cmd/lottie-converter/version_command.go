package main

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vleushin/lottie-converter/decoder"
)

// version is stamped by the release build; module builds fall back to the
// version recorded in build info.
var version = "dev"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version and available decoders",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			v := version
			if v == "dev" {
				if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
					v = info.Main.Version
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "lottie-converter %s\n", v)
			if backends := decoder.Available(); len(backends) > 0 {
				fmt.Fprintf(out, "decoders: %s\n", strings.Join(backends, ", "))
			} else {
				fmt.Fprintln(out, "decoders: none")
			}
		},
	}
}
