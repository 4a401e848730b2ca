package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/frontkit/internal/bundler"
)

// Asset is one file of the in-memory dev build.
type Asset struct {
	Path     string
	Contents []byte
	Kind     bundler.FileKind
	ModTime  time.Time
	ETag     string
}

// AssetStore holds the outputs of the latest successful dev build. A new
// build replaces the whole set at once, so readers never see a mix of two
// builds.
type AssetStore struct {
	mu      sync.RWMutex
	files   map[string]Asset
	index   []byte
	version uint64
	builtAt time.Time
	lastErr error
}

// NewAssetStore returns an empty store.
func NewAssetStore() *AssetStore {
	return &AssetStore{files: make(map[string]Asset)}
}

// Replace swaps in the outputs of res and the transformed index.html and
// returns the new version. It clears the last error.
func (s *AssetStore) Replace(res *bundler.Result, index []byte, at time.Time) uint64 {
	files := make(map[string]Asset, len(res.Files))

	s.mu.Lock()
	defer s.mu.Unlock()

	s.version++
	for _, f := range res.Files {
		files[f.Path] = Asset{
			Path:     f.Path,
			Contents: f.Contents,
			Kind:     f.Kind,
			ModTime:  at,
			ETag:     fmt.Sprintf(`"%d-%d"`, s.version, len(f.Contents)),
		}
	}
	s.files = files
	s.index = index
	s.builtAt = at
	s.lastErr = nil
	return s.version
}

// SetError records a failed build. The previous outputs keep being served.
func (s *AssetStore) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

// Err returns the error of the latest build, nil after a success.
func (s *AssetStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Get returns the asset at a URL path relative to the base, with or without
// a leading slash.
func (s *AssetStore) Get(p string) (Asset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.files[strings.TrimPrefix(p, "/")]
	return a, ok
}

// Index returns the transformed index.html. ok is false before the first
// successful build.
func (s *AssetStore) Index() ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index, s.index != nil
}

// Version increments with every successful build. Zero means none yet.
func (s *AssetStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// BuiltAt returns the time of the latest successful build.
func (s *AssetStore) BuiltAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.builtAt
}

// Len returns the number of stored assets.
func (s *AssetStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}
