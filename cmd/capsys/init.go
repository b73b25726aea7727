package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reglet-dev/capsys/manifest"
	"github.com/reglet-dev/capsys/schema"
)

var initOut string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively scaffold a system manifest",
	Long: `Walk through a short form and write a starter manifest.

Requires an interactive terminal. Each handler gets one starter signal
named after it, edit the manifest afterwards to fill in the real
functions and bindings.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initOut, "out", "o", "",
		"manifest path (default: <system>.capsys.yaml)")
	rootCmd.AddCommand(initCmd)
}

func isInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

func runInit(cmd *cobra.Command, args []string) error {
	if !isInteractive() {
		return fmt.Errorf("init needs an interactive terminal; write the manifest by hand or run 'capsys schema' for the format")
	}

	var (
		systemName  string
		handlerList string
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("System name").
				Description("Identifier for the generated registry, e.g. scene").
				Validate(func(s string) error {
					_, err := schema.NewIdentifier(s)
					return err
				}).
				Value(&systemName),
			huh.NewInput().
				Title("Handlers").
				Description("Comma-separated capability names, e.g. drawable, updatable").
				Validate(func(s string) error {
					for _, h := range splitList(s) {
						if _, err := schema.NewIdentifier(h); err != nil {
							return err
						}
					}
					return nil
				}).
				Value(&handlerList),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	doc := manifest.Document{
		SchemaVersion: "1.0.0",
		System:        systemName,
	}
	for _, h := range splitList(handlerList) {
		doc.Handlers = append(doc.Handlers, manifest.HandlerDoc{
			Name: h,
			Functions: []manifest.FunctionDoc{
				{Signal: h + "_all", Method: h},
			},
		})
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	path := initOut
	if path == "" {
		path = systemName + ".capsys.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%q already exists, refusing to overwrite", path)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	fmt.Fprintln(cmd.OutOrStdout(), "next: add bindings, then run 'capsys generate'")
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
