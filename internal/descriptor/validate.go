// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package descriptor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var knownPlugins = map[string]struct{}{
	PluginReact:         {},
	PluginTSConfigPaths: {},
}

// Validate checks the descriptor invariants. All violations are reported.
func (d *Descriptor) Validate() error {
	var errs []error

	for _, p := range []struct {
		name string
		port int
	}{
		{"server.port", d.Server.Port},
		{"preview.port", d.Preview.Port},
	} {
		if p.port < 1 || p.port > 65535 {
			errs = append(errs, fmt.Errorf("%w: %s=%d", ErrInvalidPort, p.name, p.port))
		}
	}
	if d.Server.Port == d.Preview.Port {
		errs = append(errs, fmt.Errorf("%w: both are %d", ErrPortConflict, d.Server.Port))
	}

	if strings.TrimSpace(d.Build.OutDir) == "" {
		errs = append(errs, ErrInvalidOutDir)
	}
	if err := validateAssetsDir(d.Build.AssetsDir); err != nil {
		errs = append(errs, err)
	}

	for _, p := range d.Plugins {
		if _, ok := knownPlugins[p.Name]; !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownPlugin, p.Name))
		}
	}

	if len(d.EnvPrefix) == 0 {
		errs = append(errs, ErrEmptyEnvPrefix)
	}
	for _, prefix := range d.EnvPrefix {
		if prefix == "" {
			errs = append(errs, ErrEmptyEnvPrefix)
			break
		}
	}

	if err := d.ProxyTable().Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func validateAssetsDir(dir string) error {
	if dir == "" {
		return nil
	}
	if filepath.IsAbs(dir) || strings.HasPrefix(dir, "/") {
		return fmt.Errorf("%w: %q is absolute", ErrInvalidAssetsDir, dir)
	}
	clean := filepath.ToSlash(filepath.Clean(dir))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%w: %q escapes the output directory", ErrInvalidAssetsDir, dir)
	}
	return nil
}
