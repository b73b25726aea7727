package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/capsys/registry"
	"github.com/reglet-dev/capsys/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest>...",
	Short: "Validate manifests against the schema",
	Long: `Check that manifest files match the built-in manifest schema.

Exits non-zero when any manifest is invalid, listing every violation.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	reg, err := registry.NewManifestRegistry()
	if err != nil {
		return err
	}
	validator := validation.NewSchemaValidator(reg)

	failed := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading manifest %q: %w", path, err)
		}

		res, err := validator.Validate(data)
		if err != nil {
			return fmt.Errorf("manifest %q: %w", path, err)
		}

		if res.Valid {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			continue
		}

		failed++
		fmt.Fprintf(cmd.OutOrStdout(), "%s: invalid\n", path)
		for _, msg := range res.Errors {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", msg)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d manifests are invalid", failed, len(args))
	}
	return nil
}
