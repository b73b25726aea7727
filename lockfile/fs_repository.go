package lockfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
)

// yamlLockfile is the on-disk representation.
type yamlLockfile struct {
	Version   int                         `yaml:"version"`
	Generated time.Time                   `yaml:"generated"`
	Manifests map[string]yamlManifestLock `yaml:"manifests,omitempty"`
}

type yamlManifestLock struct {
	Digest    string    `yaml:"digest"`
	System    string    `yaml:"system,omitempty"`
	Outputs   []string  `yaml:"outputs,omitempty"`
	Generated time.Time `yaml:"generated"`
}

func fromEntity(l *Lockfile) yamlLockfile {
	out := yamlLockfile{
		Version:   l.Version,
		Generated: l.Generated,
	}
	if len(l.Manifests) > 0 {
		out.Manifests = make(map[string]yamlManifestLock, len(l.Manifests))
		for path, lock := range l.Manifests {
			out.Manifests[path] = yamlManifestLock{
				Digest:    lock.Digest,
				System:    lock.System,
				Outputs:   lock.Outputs,
				Generated: lock.Generated,
			}
		}
	}
	return out
}

func (y yamlLockfile) toEntity() *Lockfile {
	out := &Lockfile{
		Version:   y.Version,
		Generated: y.Generated,
		Manifests: make(map[string]ManifestLock, len(y.Manifests)),
	}
	for path, lock := range y.Manifests {
		out.Manifests[path] = ManifestLock{
			Digest:    lock.Digest,
			System:    lock.System,
			Outputs:   lock.Outputs,
			Generated: lock.Generated,
		}
	}
	return out
}

// FSRepository persists lockfiles on the local filesystem.
type FSRepository struct{}

// NewFSRepository creates a new FSRepository.
func NewFSRepository() *FSRepository {
	return &FSRepository{}
}

// Load reads a lockfile from the given path. A missing file is not an
// error: it returns nil, nil.
func (r *FSRepository) Load(ctx context.Context, path string) (*Lockfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open lockfile %q: %w", path, err)
	}

	var out yamlLockfile
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding lockfile YAML: %w", err)
	}

	lock := out.toEntity()

	if err := lock.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lockfile: %w", err)
	}

	return lock, nil
}

// Save writes a lockfile to the given path, creating the directory if
// needed.
func (r *FSRepository) Save(ctx context.Context, lock *Lockfile, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := lock.Validate(); err != nil {
		return fmt.Errorf("invalid lockfile: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory %q: %w", dir, err)
	}

	data, err := yaml.Marshal(fromEntity(lock))
	if err != nil {
		return fmt.Errorf("encoding lockfile: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing lockfile %q: %w", path, err)
	}

	return nil
}

// Exists checks if a lockfile exists at the given path.
func (r *FSRepository) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
