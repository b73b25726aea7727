package manifest

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// FSRepository locates and reads manifest files on the local filesystem.
type FSRepository struct {
	root string
}

// NewFSRepository creates a filesystem-based manifest repository rooted at
// the given directory. An empty root defaults to the working directory.
func NewFSRepository(root string) (*FSRepository, error) {
	if root == "" {
		root = "."
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("manifest root %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("manifest root %q is not a directory", root)
	}

	return &FSRepository{root: root}, nil
}

// Discover resolves glob patterns (doublestar syntax, e.g. "**/*.yaml")
// against the repository root and returns the matching file paths, sorted
// and deduplicated for deterministic generation order.
func (r *FSRepository) Discover(ctx context.Context, patterns ...string) ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string

	for _, pattern := range patterns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		matches, err := doublestar.FilepathGlob(filepath.Join(r.root, pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid manifest pattern %q: %w", pattern, err)
		}

		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// Read loads a manifest file and returns its contents with the content
// digest used for lockfile bookkeeping.
func (r *FSRepository) Read(ctx context.Context, path string) ([]byte, Digest, error) {
	if err := ctx.Err(); err != nil {
		return nil, Digest{}, err
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, Digest{}, fmt.Errorf("reading manifest %q: %w", path, err)
	}

	digest, err := ComputeDigestSHA256(bytes.NewReader(data))
	if err != nil {
		return nil, Digest{}, fmt.Errorf("hashing manifest %q: %w", path, err)
	}

	return data, digest, nil
}
