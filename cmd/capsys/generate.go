package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	capsys "github.com/reglet-dev/capsys"
	"github.com/reglet-dev/capsys/emit/golang"
	"github.com/reglet-dev/capsys/lockfile"
	"github.com/reglet-dev/capsys/manifest"
)

var (
	genRoot     string
	genPatterns []string
	genOut      string
	genPackage  string
	genLockPath string
	genForce    bool
	genCheck    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate registry code from manifests",
	Long: `Discover system manifests, validate them and render registry code.

Manifests are located with glob patterns relative to the root directory.
A lockfile pins each manifest's content digest, so unchanged manifests
are skipped on repeated runs. Use --force to regenerate everything and
--check to verify freshness without writing anything.

Examples:
  # Generate from all manifests under the current directory
  capsys generate

  # Custom patterns and output directory
  capsys generate -m "systems/**/*.yaml" -o internal/gen

  # CI freshness gate: fail when generated code is out of date
  capsys generate --check`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genRoot, "root", ".",
		"directory manifests are discovered under")
	generateCmd.Flags().StringSliceVarP(&genPatterns, "manifest", "m",
		[]string{"**/*.capsys.yaml"},
		"manifest glob pattern (repeatable)")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", ".",
		"output directory for generated files")
	generateCmd.Flags().StringVarP(&genPackage, "package", "p", "",
		"package name of generated files (default: lowercased system name)")
	generateCmd.Flags().StringVar(&genLockPath, "lockfile", "capsys.lock.yaml",
		"lockfile path")
	generateCmd.Flags().BoolVar(&genForce, "force", false,
		"regenerate even when the lockfile says a manifest is unchanged")
	generateCmd.Flags().BoolVar(&genCheck, "check", false,
		"verify all manifests are fresh without writing; exit non-zero otherwise")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := newLogger()

	repo, err := manifest.NewFSRepository(genRoot)
	if err != nil {
		return err
	}

	paths, err := repo.Discover(ctx, genPatterns...)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no manifests matched %s under %q", strings.Join(genPatterns, ", "), genRoot)
	}

	locks := lockfile.NewFSRepository()
	lock, err := locks.Load(ctx, genLockPath)
	if err != nil {
		return err
	}
	if lock == nil {
		lock = lockfile.NewLockfile()
	}

	var emitOpts []golang.Option
	if genPackage != "" {
		emitOpts = append(emitOpts, golang.WithPackage(genPackage))
	}

	gen, err := capsys.NewGenerator(
		capsys.WithLogger(logger),
		capsys.WithEmitter(golang.New(emitOpts...)),
	)
	if err != nil {
		return err
	}

	var stale []string
	generated := 0

	for _, path := range paths {
		data, digest, err := repo.Read(ctx, path)
		if err != nil {
			return err
		}

		if !genForce && lock.IsFresh(path, digest) {
			logger.Debug("manifest unchanged, skipping", "manifest", path)
			continue
		}

		if genCheck {
			stale = append(stale, path)
			continue
		}

		result, err := gen.Generate(ctx, data)
		if err != nil {
			return fmt.Errorf("manifest %q: %w", path, err)
		}

		outputs := make([]string, 0, len(result.Files))
		for _, f := range result.Files {
			target := filepath.Join(genOut, f.Path)
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
			if err := os.WriteFile(target, f.Content, 0o644); err != nil {
				return fmt.Errorf("writing %q: %w", target, err)
			}
			outputs = append(outputs, f.Path)
		}

		entry := lockfile.ManifestLock{
			Digest:    digest.String(),
			System:    result.System,
			Outputs:   outputs,
			Generated: time.Now().UTC(),
		}
		if err := lock.AddManifest(path, entry); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "generated %s (%d files) from %s\n",
			result.System, len(result.Files), path)
		generated++
	}

	if genCheck {
		if len(stale) > 0 {
			return fmt.Errorf("stale generated code, rerun 'capsys generate' for: %s",
				strings.Join(stale, ", "))
		}
		fmt.Fprintln(cmd.OutOrStdout(), "all manifests are fresh")
		return nil
	}

	if generated == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing to do, all manifests are fresh")
		return nil
	}

	if err := locks.Save(ctx, lock, genLockPath); err != nil {
		return err
	}
	return nil
}
