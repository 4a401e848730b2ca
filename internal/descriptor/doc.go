// Package descriptor builds the build descriptor: the single declarative
// record that configures the bundler, the dev and preview servers and the
// test runner for one mode.
//
// A descriptor is built by [Define] from the mode and the prefix-filtered
// client environment. Consumers read it and never change it; the only
// sanctioned change is [Descriptor.ApplyOverrides], applied once right after
// construction.
package descriptor
