package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:     "capsys",
	Short:   "Generate capability registries from system manifests",
	Long: `capsys turns declarative system manifests into generated registry code.

A manifest names a system, its handler capabilities and the concrete
object types bound to them. capsys validates the manifest, synthesizes
the registry declarations and renders Go source that delegates to the
capsys runtime.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
