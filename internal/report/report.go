// Package report prints the per-file size table of a finished build.
package report

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/ryanuber/columnize"
	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/frontkit/internal/bundler"
)

// Row is one output file of the report.
type Row struct {
	Path string
	Kind bundler.FileKind
	Size int64
	Gzip int64
	// Oversized marks JS chunks above the chunk size warning limit.
	Oversized bool
}

// Summary totals a report.
type Summary struct {
	Files      int
	TotalBytes int64
	GzipBytes  int64
	Warnings   int
}

// Compute measures every file, gzip sizes concurrently. limitKB is the JS
// chunk size warning limit in kilobytes of 1000 bytes.
func Compute(ctx context.Context, files []bundler.OutputFile, limitKB int64) ([]Row, Summary, error) {
	rows := make([]Row, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			gz, err := gzipSize(f.Contents)
			if err != nil {
				return fmt.Errorf("gzip %s: %w", f.Path, err)
			}
			rows[i] = Row{
				Path:      f.Path,
				Kind:      f.Kind,
				Size:      f.Size(),
				Gzip:      gz,
				Oversized: f.Kind == bundler.KindJS && limitKB > 0 && f.Size() > limitKB*1000,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Summary{}, err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rank(rows[i].Kind) != rank(rows[j].Kind) {
			return rank(rows[i].Kind) < rank(rows[j].Kind)
		}
		return rows[i].Path < rows[j].Path
	})

	var sum Summary
	for _, r := range rows {
		sum.Files++
		sum.TotalBytes += r.Size
		sum.GzipBytes += r.Gzip
		if r.Oversized {
			sum.Warnings++
		}
	}
	return rows, sum, nil
}

func rank(k bundler.FileKind) int {
	switch k {
	case bundler.KindHTML:
		return 0
	case bundler.KindAsset:
		return 1
	case bundler.KindCSS:
		return 2
	case bundler.KindJS:
		return 3
	default:
		return 4
	}
}

func gzipSize(data []byte) (int64, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return 0, err
	}
	if _, err := zw.Write(data); err != nil {
		return 0, err
	}
	if err := zw.Close(); err != nil {
		return 0, err
	}
	return int64(buf.Len()), nil
}

// Printer writes reports.
type Printer struct {
	w       io.Writer
	dim     *color.Color
	kinds   map[bundler.FileKind]*color.Color
	warn    *color.Color
	success *color.Color
}

// NewPrinter returns a printer writing to w, colored when useColor is set.
func NewPrinter(w io.Writer, useColor bool) *Printer {
	p := &Printer{
		w:   w,
		dim: color.New(color.Faint),
		kinds: map[bundler.FileKind]*color.Color{
			bundler.KindJS:    color.New(color.FgCyan),
			bundler.KindCSS:   color.New(color.FgMagenta),
			bundler.KindHTML:  color.New(color.FgGreen),
			bundler.KindAsset: color.New(color.FgWhite),
			bundler.KindMap:   color.New(color.Faint),
		},
		warn:    color.New(color.FgYellow),
		success: color.New(color.FgGreen),
	}
	all := []*color.Color{p.dim, p.warn, p.success}
	for _, c := range p.kinds {
		all = append(all, c)
	}
	for _, c := range all {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Print writes the size table, chunk warnings and the summary line.
func (p *Printer) Print(outDir string, rows []Row, sum Summary, took time.Duration, limitKB int64) {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		dir, file := path.Split(path.Join(outDir, r.Path))
		name := p.dim.Sprint(dir) + p.kind(r.Kind).Sprint(file)
		size := humanize.Bytes(uint64(r.Size))
		if r.Oversized {
			size = p.warn.Sprint(size)
		}
		gz := ""
		if r.Kind != bundler.KindAsset && r.Kind != bundler.KindMap {
			gz = p.dim.Sprintf("gzip: %s", humanize.Bytes(uint64(r.Gzip)))
		}
		lines = append(lines, strings.Join([]string{name, size, gz}, " | "))
	}
	if len(lines) > 0 {
		fmt.Fprintln(p.w, columnize.SimpleFormat(lines))
	}

	if sum.Warnings > 0 {
		fmt.Fprintln(p.w, p.warn.Sprintf(
			"\n(!) %d chunk(s) are larger than %d kB after minification. Consider splitting them with dynamic import() or manual chunks.",
			sum.Warnings, limitKB))
	}

	fmt.Fprintln(p.w, p.success.Sprintf("✓ built %d files (%s, gzip %s) in %s",
		sum.Files,
		humanize.Bytes(uint64(sum.TotalBytes)),
		humanize.Bytes(uint64(sum.GzipBytes)),
		took.Round(time.Millisecond)))
}

func (p *Printer) kind(k bundler.FileKind) *color.Color {
	if c, ok := p.kinds[k]; ok {
		return c
	}
	return p.dim
}
