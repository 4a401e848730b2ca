// Package optimizer tracks whether the pre-bundled dev dependencies are
// stale. A dependency hash covers the lockfiles, the include list and the
// target; a change means the dev server must re-bundle and reload clients.
package optimizer

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/crypto/blake2b"
)

// MetadataFile is the name of the metadata file in the cache directory.
const MetadataFile = "_metadata.json"

// Lockfiles are hashed in this order when present in the project root.
var Lockfiles = []string{"package-lock.json", "yarn.lock", "pnpm-lock.yaml", "bun.lockb"}

// Metadata is the persisted state of the last optimization.
type Metadata struct {
	Hash      string    `json:"hash"`
	Include   []string  `json:"include"`
	Target    string    `json:"target"`
	Optimized time.Time `json:"optimized"`
}

// Hash returns the BLAKE2b-256 dependency hash for a project.
func Hash(fs afero.Fs, root string, include []string, target string) (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}

	for _, name := range Lockfiles {
		data, err := afero.ReadFile(fs, filepath.Join(root, name))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("read %s: %w", name, err)
		}
		fmt.Fprintf(h, "%s:%d\n", name, len(data))
		h.Write(data)
	}

	deps := append([]string(nil), include...)
	sort.Strings(deps)
	for _, dep := range deps {
		fmt.Fprintf(h, "include:%s\n", dep)
	}
	fmt.Fprintf(h, "target:%s\n", target)

	return hex.EncodeToString(h.Sum(nil))[:16], nil
}

// Load reads the metadata from cacheDir. A missing file yields nil and no
// error.
func Load(fs afero.Fs, cacheDir string) (*Metadata, error) {
	data, err := afero.ReadFile(fs, filepath.Join(cacheDir, MetadataFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read optimizer metadata: %w", err)
	}

	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode optimizer metadata: %w", err)
	}
	return &m, nil
}

// Save writes m to cacheDir.
func Save(fs afero.Fs, cacheDir string, m Metadata) error {
	if err := fs.MkdirAll(cacheDir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, filepath.Join(cacheDir, MetadataFile), data, 0o644)
}

// Check compares the current hash with the stored one. It reports whether
// the dependencies changed since the last run, and saves the new metadata
// when they did. A corrupt metadata file counts as changed.
func Check(fs afero.Fs, root, cacheDir string, include []string, target string, now time.Time) (bool, Metadata, error) {
	hash, err := Hash(fs, root, include, target)
	if err != nil {
		return false, Metadata{}, err
	}

	current := Metadata{Hash: hash, Include: include, Target: target, Optimized: now.UTC()}

	prev, err := Load(fs, cacheDir)
	if err == nil && prev != nil && prev.Hash == hash {
		return false, *prev, nil
	}

	if err := Save(fs, cacheDir, current); err != nil {
		return true, current, err
	}
	return true, current, nil
}
