package service

import (
	"fmt"

	"github.com/MKhiriev/frontkit/internal/clientenv"
	"github.com/MKhiriev/frontkit/internal/descriptor"
)

type descriptorLoader struct {
	mode      string
	root      string
	overrides descriptor.Overrides
	opts      []descriptor.Option
}

// NewDescriptorLoader returns a [DescriptorLoader] for mode in root. Every
// Load reads the env files again and applies overrides on top of the result.
func NewDescriptorLoader(mode, root string, overrides descriptor.Overrides, opts ...descriptor.Option) DescriptorLoader {
	if mode == "" {
		mode = descriptor.ModeDevelopment
	}
	return &descriptorLoader{mode: mode, root: root, overrides: overrides, opts: opts}
}

// Load implements [DescriptorLoader].
func (l *descriptorLoader) Load() (*descriptor.Descriptor, error) {
	env, err := clientenv.Load(l.mode, l.root, []string{descriptor.DefaultEnvPrefix})
	if err != nil {
		return nil, fmt.Errorf("load client env: %w", err)
	}

	opts := append([]descriptor.Option{descriptor.WithRoot(l.root)}, l.opts...)
	desc, err := descriptor.Define(l.mode, env, opts...)
	if err != nil {
		return nil, fmt.Errorf("define descriptor: %w", err)
	}
	if err = desc.ApplyOverrides(l.overrides); err != nil {
		return nil, fmt.Errorf("apply config overrides: %w", err)
	}
	return desc, nil
}
