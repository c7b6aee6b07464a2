package main

import (
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	lottieconv "github.com/vleushin/lottie-converter"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var verboseFlag bool

	cfg := defaultConfig()

	rootCmd := &cobra.Command{
		Use:           "lottie-converter",
		Short:         "Convert Lottie animations to PNG frame sequences",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig(configFlag)
			if err != nil {
				return err
			}
			cfg = loaded
			lottieconv.SetLogger(newLogger(verboseFlag))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newConvertCommand(&cfg))
	rootCmd.AddCommand(newProbeCommand(&cfg))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// newLogger builds the CLI logger: human-readable text on a terminal,
// JSON lines when output is redirected. Without --verbose the library
// stays silent.
func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return nil
	}

	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
