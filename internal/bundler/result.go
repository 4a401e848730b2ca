package bundler

import (
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// FileKind classifies an output file.
type FileKind string

const (
	KindJS    FileKind = "js"
	KindCSS   FileKind = "css"
	KindMap   FileKind = "map"
	KindAsset FileKind = "asset"
	KindHTML  FileKind = "html"
)

// OutputFile is one emitted file.
type OutputFile struct {
	// Path is relative to the output directory, with forward slashes.
	Path     string
	Contents []byte
	Kind     FileKind
	// Entry is the root-relative entry point the file was built for, empty
	// for chunks and assets.
	Entry string
}

// Size returns the length of the contents.
func (f OutputFile) Size() int64 {
	return int64(len(f.Contents))
}

// Entry is the output of one HTML entry point.
type Entry struct {
	// Script is the output path of the entry's JavaScript.
	Script string
	// CSS is the output path of the CSS bundled for the entry, if any.
	CSS string
}

// Result is a successful build.
type Result struct {
	Files []OutputFile
	// Entries maps root-relative entry points to their outputs.
	Entries map[string]Entry
	// Warnings are formatted esbuild warnings.
	Warnings []string
}

// File returns the output file at a relative path.
func (r *Result) File(rel string) (OutputFile, bool) {
	for _, f := range r.Files {
		if f.Path == rel {
			return f, true
		}
	}
	return OutputFile{}, false
}

type metafile struct {
	Outputs map[string]struct {
		Bytes      int64  `json:"bytes"`
		EntryPoint string `json:"entryPoint"`
		CSSBundle  string `json:"cssBundle"`
	} `json:"outputs"`
}

// newResult converts an esbuild result. Output paths in the metafile are
// relative to workDir; output files are absolute under outDir.
func newResult(res api.BuildResult, workDir, outDir string) (*Result, error) {
	if len(res.Errors) > 0 {
		return nil, newBuildError(res.Errors)
	}

	var meta metafile
	if res.Metafile != "" {
		if err := json.Unmarshal([]byte(res.Metafile), &meta); err != nil {
			return nil, fmt.Errorf("decode esbuild metafile: %w", err)
		}
	}

	rel := func(p string) string {
		if !filepath.IsAbs(p) {
			p = filepath.Join(workDir, filepath.FromSlash(p))
		}
		r, err := filepath.Rel(outDir, p)
		if err != nil {
			return filepath.ToSlash(p)
		}
		return filepath.ToSlash(r)
	}

	result := &Result{Entries: make(map[string]Entry)}
	virtual := make(map[string]bool)

	for out, info := range meta.Outputs {
		if info.EntryPoint == "" {
			continue
		}
		if strings.HasPrefix(info.EntryPoint, ChunkNamespace+":") {
			virtual[rel(out)] = true
			continue
		}
		result.Entries[info.EntryPoint] = Entry{
			Script: rel(out),
			CSS:    cssBundle(info.CSSBundle, rel),
		}
	}

	entryOf := make(map[string]string, len(result.Entries))
	for ep, e := range result.Entries {
		entryOf[e.Script] = ep
	}

	for _, f := range res.OutputFiles {
		p := rel(f.Path)
		if virtual[p] {
			continue
		}
		result.Files = append(result.Files, OutputFile{
			Path:     p,
			Contents: f.Contents,
			Kind:     kindOf(p),
			Entry:    entryOf[p],
		})
	}
	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})

	if len(res.Warnings) > 0 {
		result.Warnings = api.FormatMessages(res.Warnings, api.FormatMessagesOptions{Kind: api.WarningMessage})
	}

	return result, nil
}

func cssBundle(p string, rel func(string) string) string {
	if p == "" {
		return ""
	}
	return rel(p)
}

func kindOf(p string) FileKind {
	switch path.Ext(p) {
	case ".js", ".mjs":
		return KindJS
	case ".css":
		return KindCSS
	case ".map":
		return KindMap
	case ".html":
		return KindHTML
	default:
		return KindAsset
	}
}
