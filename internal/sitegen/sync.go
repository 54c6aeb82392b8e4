package sitegen

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// generatedDir marks subtrees produced by other tooling; they are never mirrored.
const generatedDir = "_generated"

// excludeFunc reports whether a slash-separated relative path is left out of
// a mirrored tree.
type excludeFunc func(rel string) bool

func docsExcluder(summaryFile string) excludeFunc {
	return func(rel string) bool {
		if path.Base(rel) == summaryFile {
			return true
		}
		return slices.Contains(strings.Split(rel, "/"), generatedDir)
	}
}

// listFiles returns the sorted slash-separated relative paths of regular
// files under root. Symlinked directories are not descended into.
func listFiles(root string, exclude excludeFunc) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			if info, statErr := os.Stat(p); statErr == nil && info.IsDir() {
				return nil
			}
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !exclude(rel) {
			out = append(out, rel)
		}
		return nil
	})
	slices.Sort(out)
	return out, err
}

// treeDiff compares dst with the expected files of src. It returns a
// check-style message for the first difference, or "" when dst mirrors src.
func treeDiff(src, dst string, expected []string, exclude excludeFunc) (string, error) {
	if info, err := os.Stat(dst); err != nil || !info.IsDir() {
		return "[CHECK] expected directory missing: " + dst, nil
	}
	actual, err := listFiles(dst, exclude)
	if err != nil {
		return "", err
	}
	if !slices.Equal(actual, expected) {
		return "[CHECK] directory out of date: " + dst, nil
	}
	for _, rel := range expected {
		a, err := os.ReadFile(filepath.Join(src, filepath.FromSlash(rel)))
		if err != nil {
			return "", err
		}
		b, err := os.ReadFile(filepath.Join(dst, filepath.FromSlash(rel)))
		if err != nil {
			return "", err
		}
		if !bytes.Equal(a, b) {
			return "[CHECK] file differs: " + filepath.Join(dst, filepath.FromSlash(rel)), nil
		}
	}
	return "", nil
}

// syncTree mirrors src into dst. In check mode the first difference fails with
// a CategoryCheck error; in write mode an out-of-date dst is replaced
// wholesale. The boolean result reports whether dst was rewritten.
func (rs *runState) syncTree(ctx context.Context, src, dst string) (bool, error) {
	if info, err := os.Stat(src); err != nil || !info.IsDir() {
		return false, errors.ConfigError("source directory missing: " + src).
			WithPath(src).
			Build()
	}
	exclude := docsExcluder(rs.gen.cfg.SummaryFile)
	expected, err := listFiles(src, exclude)
	if err != nil {
		return false, fsError(err, "failed to list source tree", src)
	}

	diff, err := treeDiff(src, dst, expected, exclude)
	if err != nil {
		return false, fsError(err, "failed to compare trees", dst)
	}
	if diff == "" {
		rs.report.Unchanged++
		return false, nil
	}
	if rs.check {
		return false, errors.CheckError(diff).WithPath(dst).Build()
	}

	if err := os.RemoveAll(dst); err != nil {
		return false, fsError(err, "failed to remove stale tree", dst)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return false, fsError(err, "failed to create directory", dst)
	}
	for _, rel := range expected {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if err := copyFile(filepath.Join(src, filepath.FromSlash(rel)), filepath.Join(dst, filepath.FromSlash(rel))); err != nil {
			return false, fsError(err, "failed to copy file", rel)
		}
	}
	rs.report.Synced = append(rs.report.Synced, rs.rel(dst))
	return true, nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

func fsError(err error, msg, p string) error {
	return errors.WrapError(err, errors.CategoryFileSystem, msg).
		Fatal().
		WithPath(p).
		Build()
}
