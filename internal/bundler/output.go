package bundler

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// WriteOutputs writes files below outDir, creating directories as needed.
func WriteOutputs(fs afero.Fs, outDir string, files []OutputFile) error {
	for _, f := range files {
		dst := filepath.Join(outDir, filepath.FromSlash(f.Path))
		if err := fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(dst), err)
		}
		if err := afero.WriteFile(fs, dst, f.Contents, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", dst, err)
		}
	}
	return nil
}

// EmptyDir removes the contents of dir, keeping dir itself and a .git
// entry. dir must be strictly inside root; anything else is refused with
// [ErrOutsideRoot]. A missing dir is not an error.
func EmptyDir(fs afero.Fs, root, dir string) error {
	if !Inside(root, dir) {
		return fmt.Errorf("%w: %s", ErrOutsideRoot, dir)
	}

	entries, err := afero.ReadDir(fs, dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.Name() == ".git" {
			continue
		}
		if err := fs.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("remove %s: %w", e.Name(), err)
		}
	}
	return nil
}

// Inside reports whether dir is strictly below root.
func Inside(root, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(dir))
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// CopyDir copies the tree at src into dst. A missing src copies nothing.
// It returns the copied files as paths relative to dst.
func CopyDir(fs afero.Fs, src, dst string) ([]string, error) {
	if ok, err := afero.DirExists(fs, src); err != nil || !ok {
		return nil, err
	}

	var copied []string
	err := afero.Walk(fs, src, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return fs.MkdirAll(target, 0o755)
		}
		if err := copyFile(fs, p, target, info.Mode().Perm()); err != nil {
			return err
		}
		copied = append(copied, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("copy %s: %w", src, err)
	}
	return copied, nil
}

func copyFile(fs afero.Fs, src, dst string, perm os.FileMode) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
