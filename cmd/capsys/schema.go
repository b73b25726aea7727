package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/capsys/registry"
)

var schemaList bool

var schemaCmd = &cobra.Command{
	Use:   "schema [kind]",
	Short: "Print the JSON Schema for a document kind",
	Long: `Print the JSON Schema manifests are validated against.

Without arguments, prints the system manifest schema. Use --list to see
all registered document kinds.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().BoolVarP(&schemaList, "list", "l", false,
		"list registered document kinds")
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	reg, err := registry.NewManifestRegistry()
	if err != nil {
		return err
	}

	if schemaList {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(reg.List(), "\n"))
		return nil
	}

	kind := registry.KindSystem
	if len(args) == 1 {
		kind = args[0]
	}

	schema, ok := reg.GetSchema(kind)
	if !ok {
		return fmt.Errorf("unknown document kind %q (registered: %s)",
			kind, strings.Join(reg.List(), ", "))
	}

	fmt.Fprintln(cmd.OutOrStdout(), schema)
	return nil
}
