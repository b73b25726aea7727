// Package lockfile records generation inputs and outputs so repeated runs
// can skip manifests whose content has not changed.
package lockfile

import (
	"fmt"
	"time"

	"github.com/reglet-dev/capsys/manifest"
)

// Lockfile is an aggregate root pinning generated output to manifest
// content digests.
//
// Invariants:
// - Each manifest entry must have a digest
// - Generated timestamp must be set when entries exist
type Lockfile struct {
	Version   int
	Generated time.Time
	Manifests map[string]ManifestLock
}

// ManifestLock is a value object pinning one manifest's generation state.
// Immutable after creation.
type ManifestLock struct {
	// Digest is the content hash of the manifest file (sha256:...).
	Digest string

	// System is the system name the manifest declared.
	System string

	// Outputs lists the generated file paths, relative to the output
	// directory.
	Outputs []string

	// Generated is when the outputs were last produced.
	Generated time.Time
}

// NewLockfile creates a new lockfile with the current version.
func NewLockfile() *Lockfile {
	return &Lockfile{
		Version:   1,
		Generated: time.Now().UTC(),
		Manifests: make(map[string]ManifestLock),
	}
}

// AddManifest adds a manifest lock entry.
// Returns error if digest is empty (invariant enforcement).
func (l *Lockfile) AddManifest(path string, lock ManifestLock) error {
	if lock.Digest == "" {
		return fmt.Errorf("manifest %q: digest is required", path)
	}
	if l.Manifests == nil {
		l.Manifests = make(map[string]ManifestLock)
	}
	l.Manifests[path] = lock
	l.Generated = time.Now().UTC()
	return nil
}

// GetManifest retrieves a manifest lock entry by path.
// Returns nil if not found.
func (l *Lockfile) GetManifest(path string) *ManifestLock {
	if l.Manifests == nil {
		return nil
	}
	if lock, ok := l.Manifests[path]; ok {
		return &lock
	}
	return nil
}

// IsFresh reports whether the manifest at path was already generated from
// content with the given digest.
func (l *Lockfile) IsFresh(path string, digest manifest.Digest) bool {
	lock := l.GetManifest(path)
	if lock == nil || digest.IsZero() {
		return false
	}
	return lock.Digest == digest.String()
}

// ManifestCount returns the number of locked manifests.
func (l *Lockfile) ManifestCount() int {
	return len(l.Manifests)
}

// Validate checks lockfile invariants.
func (l *Lockfile) Validate() error {
	if l.ManifestCount() > 0 && l.Generated.IsZero() {
		return fmt.Errorf("generated timestamp is required")
	}
	for path, lock := range l.Manifests {
		if lock.Digest == "" {
			return fmt.Errorf("manifest %q: digest is required", path)
		}
	}
	return nil
}
