// Package config provides loading, merging and validation of the frontkit
// tool configuration.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override the fields they set):
//  1. Config file (JSON, YAML or TOML, chosen by extension)
//  2. Environment variables prefixed with FRONTKIT_
//  3. Command-line flags
//
// The main entry point is [GetStructuredConfig]. The result feeds
// [descriptor.Descriptor.ApplyOverrides] through
// [StructuredConfig.DescriptorOverrides].
package config
