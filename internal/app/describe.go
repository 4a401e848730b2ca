package app

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v2"

	"github.com/MKhiriev/frontkit/internal/descriptor"
)

// Output formats of [App.Describe].
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Describe renders the resolved descriptor for mode (development when
// unset) as JSON or YAML.
func (a *App) Describe(format string) ([]byte, error) {
	desc, err := a.Descriptor(descriptor.ModeDevelopment)
	if err != nil {
		return nil, err
	}
	return Encode(desc, format)
}

// Encode renders desc in format.
func Encode(desc *descriptor.Descriptor, format string) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(desc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode descriptor: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML, "yml":
		data, err := yaml.Marshal(desc)
		if err != nil {
			return nil, fmt.Errorf("encode descriptor: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
