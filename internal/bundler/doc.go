// Package bundler adapts a [descriptor.Descriptor] to the esbuild Go API.
//
// It maps descriptor options onto esbuild build options, discovers entry
// points from index.html, adds the asset inlining, CSS module and manual
// chunk plugins, and turns esbuild results into output files and a rewritten
// index.html. Bundling itself is entirely esbuild's.
package bundler
