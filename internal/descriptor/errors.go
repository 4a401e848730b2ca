package descriptor

import "errors"

var (
	// ErrInvalidManifest indicates a package.json that is not valid JSON.
	ErrInvalidManifest = errors.New("invalid package manifest")
	// ErrPortConflict indicates equal dev and preview ports.
	ErrPortConflict = errors.New("dev and preview ports must differ")
	// ErrInvalidPort indicates a port outside 1..65535.
	ErrInvalidPort = errors.New("invalid port")
	// ErrInvalidOutDir indicates an empty output directory.
	ErrInvalidOutDir = errors.New("invalid output directory")
	// ErrInvalidAssetsDir indicates an absolute assets directory or one
	// escaping the output directory.
	ErrInvalidAssetsDir = errors.New("invalid assets directory")
	// ErrUnknownPlugin indicates a plugin name the bundler does not know.
	ErrUnknownPlugin = errors.New("unknown plugin")
	// ErrEmptyEnvPrefix indicates an env prefix list that is empty or holds
	// an empty prefix.
	ErrEmptyEnvPrefix = errors.New("empty env prefix")
)
