package config

import "errors"

var (
	// ErrInvalidConfig wraps validator failures of the merged config.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrUnsupportedFormat indicates a config file extension other than
	// .json, .yaml, .yml or .toml.
	ErrUnsupportedFormat = errors.New("unsupported config file format")
)
