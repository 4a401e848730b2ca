// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/MKhiriev/frontkit/internal/descriptor"
)

// EnvPrefix is prepended to every environment variable read by this package.
const EnvPrefix = "FRONTKIT_"

// Defaults applied after all sources are merged.
const (
	DefaultLogLevel     = "info"
	DefaultCheckTimeout = 2 * time.Second
	DefaultDebounce     = 150 * time.Millisecond
)

// StructuredConfig is the tool configuration of frontkit. It configures the
// tool itself; what the web app sees comes from its .env files.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env tag lookups (caarlos0/env).
//   - env: environment variable name for scalar fields, after [EnvPrefix].
//   - validate: go-playground/validator rules checked after merging.
type StructuredConfig struct {
	// App holds process-wide settings.
	App App `envPrefix:"APP_"`

	// Server overrides the dev server settings of the descriptor.
	Server Server `envPrefix:"SERVER_"`

	// Preview overrides the preview server settings of the descriptor.
	Preview Preview `envPrefix:"PREVIEW_"`

	// Build overrides the build output settings of the descriptor.
	Build Build `envPrefix:"BUILD_"`

	// Storage holds the build history database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds settings of outbound clients.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds settings of background workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// FilePath is the optional path to a JSON, YAML or TOML config file.
	// Env: FRONTKIT_CONFIG, flag: -c / --config.
	FilePath string `env:"CONFIG"`
}

// App holds process-wide settings.
type App struct {
	// Mode selects the client env files and the descriptor mode.
	// Env: FRONTKIT_APP_MODE
	Mode string `env:"MODE" validate:"omitempty,alphanum"`

	// Root is the web project root directory.
	// Env: FRONTKIT_APP_ROOT
	Root string `env:"ROOT"`

	// LogLevel is a zerolog level name.
	// Env: FRONTKIT_APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`

	// NoTUI disables the interactive dev terminal UI.
	// Env: FRONTKIT_APP_NO_TUI
	NoTUI bool `env:"NO_TUI"`
}

// Server overrides dev server settings.
type Server struct {
	// Env: FRONTKIT_SERVER_HOST
	Host string `env:"HOST" validate:"omitempty,hostname_rfc1123|ip"`
	// Env: FRONTKIT_SERVER_PORT
	Port int `env:"PORT" validate:"omitempty,min=1,max=65535"`
	// Env: FRONTKIT_SERVER_OPEN
	Open *bool `env:"OPEN"`
	// Env: FRONTKIT_SERVER_STRICT_PORT
	StrictPort *bool `env:"STRICT_PORT"`
}

// Preview overrides preview server settings.
type Preview struct {
	// Env: FRONTKIT_PREVIEW_PORT
	Port int `env:"PORT" validate:"omitempty,min=1,max=65535"`
}

// Build overrides build output settings.
type Build struct {
	// Env: FRONTKIT_BUILD_OUT_DIR
	OutDir string `env:"OUT_DIR"`
}

// Storage groups persistence settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the build history database connection.
type DB struct {
	// DSN is a sqlite file path, a postgres:// URL, or "off". Empty selects
	// the sqlite file in the cache directory.
	// Env: FRONTKIT_STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Adapter holds outbound client settings.
type Adapter struct {
	// CheckTimeout bounds the proxy upstream reachability check.
	// Env: FRONTKIT_ADAPTER_CHECK_TIMEOUT
	CheckTimeout time.Duration `env:"CHECK_TIMEOUT" validate:"omitempty,min=0"`
}

// Workers holds background worker settings.
type Workers struct {
	// Debounce is the quiet period before an env file change restarts the
	// dev server.
	// Env: FRONTKIT_WORKERS_DEBOUNCE
	Debounce time.Duration `env:"DEBOUNCE" validate:"omitempty,min=0"`
}

// GetStructuredConfig loads, merges and validates the tool configuration.
// Sources in priority order, last wins for fields it sets:
//  1. config file (path from env or flags)
//  2. environment variables
//  3. command-line flags in fs
//
// fs may be nil.
func GetStructuredConfig(fs *pflag.FlagSet) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv(nil).
		withFlags(fs).
		withFile().
		build()
}

// DescriptorOverrides returns the descriptor changes requested by the config.
func (cfg *StructuredConfig) DescriptorOverrides() descriptor.Overrides {
	return descriptor.Overrides{
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		PreviewPort: cfg.Preview.Port,
		Open:        cfg.Server.Open,
		StrictPort:  cfg.Server.StrictPort,
		OutDir:      cfg.Build.OutDir,
	}
}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = DefaultLogLevel
	}
	if cfg.App.Root == "" {
		cfg.App.Root = "."
	}
	if cfg.Adapter.CheckTimeout == 0 {
		cfg.Adapter.CheckTimeout = DefaultCheckTimeout
	}
	if cfg.Workers.Debounce == 0 {
		cfg.Workers.Debounce = DefaultDebounce
	}
}
