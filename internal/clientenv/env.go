// Package clientenv loads the environment that is exposed to client code.
//
// Values come from the mode-specific dotenv files of a project and from the
// process environment; only variables whose names start with one of the
// configured prefixes survive.
package clientenv

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// ErrEmptyPrefix is returned when one of the prefixes is empty. An empty
// prefix would expose every process variable to the client bundle.
var ErrEmptyPrefix = errors.New("env prefix must not be empty")

// Env is the filtered client environment.
type Env struct {
	values map[string]string
	files  []string
}

// Files returns, in load order, the dotenv files for a mode, lowest priority
// first.
func Files(mode string) []string {
	return []string{
		".env",
		".env.local",
		".env." + mode,
		".env." + mode + ".local",
	}
}

// Load reads the dotenv files for mode from dir, overlays the process
// environment and keeps the variables starting with one of prefixes.
//
// Missing files are skipped. Process variables win over file values.
func Load(mode, dir string, prefixes []string) (Env, error) {
	if len(prefixes) == 0 {
		return Env{}, ErrEmptyPrefix
	}
	for _, p := range prefixes {
		if p == "" {
			return Env{}, ErrEmptyPrefix
		}
	}

	k := koanf.New(".")
	loaded := make([]string, 0, 4)

	for _, name := range Files(mode) {
		path := filepath.Join(dir, name)
		values, err := godotenv.Read(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Env{}, fmt.Errorf("error reading env file %s: %w", path, err)
		}
		loaded = append(loaded, path)

		for key, value := range values {
			if hasPrefix(key, prefixes) {
				if err := k.Set(key, value); err != nil {
					return Env{}, fmt.Errorf("error setting %s from %s: %w", key, path, err)
				}
			}
		}
	}

	for _, p := range prefixes {
		if err := k.Load(env.Provider(p, ".", keepName), nil); err != nil {
			return Env{}, fmt.Errorf("error loading process env with prefix %s: %w", p, err)
		}
	}

	values := make(map[string]string, len(k.Keys()))
	for _, key := range k.Keys() {
		values[key] = k.String(key)
	}

	return Env{values: values, files: loaded}, nil
}

// FromMap builds an Env from already filtered values.
func FromMap(values map[string]string) Env {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return Env{values: copied}
}

// Get returns the value of key and whether it is set.
func (e Env) Get(key string) (string, bool) {
	v, ok := e.values[key]
	return v, ok
}

// Value returns the value of key or "" when unset.
func (e Env) Value(key string) string {
	return e.values[key]
}

// Keys returns the variable names in sorted order.
func (e Env) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy of the values.
func (e Env) Map() map[string]string {
	copied := make(map[string]string, len(e.values))
	for k, v := range e.values {
		copied[k] = v
	}
	return copied
}

// LoadedFiles returns the dotenv files that were actually read.
func (e Env) LoadedFiles() []string {
	return append([]string(nil), e.files...)
}

// Len returns the number of variables.
func (e Env) Len() int {
	return len(e.values)
}

func hasPrefix(key string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

// keepName keeps process variable names untouched; names containing the
// koanf delimiter would be split into nested keys, so they are dropped.
func keepName(s string) string {
	if strings.Contains(s, ".") {
		return ""
	}
	return s
}
