// internal/walker/walker.go
package walker

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arun477/dirtree/internal/ignore"
)

// Entry is a regular file discovered under the scan root.
type Entry struct {
	Path    string // Absolute path
	RelPath string // Slash-separated path relative to the scan root
}

// Walker enumerates regular files depth-first under a root, consulting an
// ignore oracle to prune excluded subtrees before descending into them.
type Walker struct {
	oracle ignore.Oracle // nil disables exclusion filtering
}

// New returns a Walker. Pass a nil oracle to disable ignore filtering;
// version-control metadata directories are always skipped either way.
func New(oracle ignore.Oracle) *Walker {
	return &Walker{oracle: oracle}
}

// Walk collects every regular file under root. At each level, files are
// yielded in lexicographic order before subdirectories are visited, also in
// lexicographic order. Unreadable directories are skipped and traversal
// continues with their siblings; only oracle failures abort the walk.
func (w *Walker) Walk(ctx context.Context, root string) ([]Entry, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := w.walkDir(ctx, absRoot, absRoot, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (w *Walker) walkDir(ctx context.Context, root, dir string, out *[]Entry) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	items, err := os.ReadDir(dir)
	if err != nil {
		return nil // unreadable directory: skip, siblings continue
	}

	// ReadDir returns entries sorted by name.
	var files, subdirs []string
	for _, item := range items {
		if item.IsDir() {
			if item.Name() == ".git" {
				continue
			}
			subdirs = append(subdirs, item.Name())
			continue
		}
		if item.Type().IsRegular() {
			files = append(files, item.Name())
		}
	}

	// Prune excluded subdirectories before descending so none of their
	// contents are ever queried.
	if w.oracle != nil {
		kept := subdirs[:0]
		for _, name := range subdirs {
			excluded, err := w.oracle.IsExcluded(ctx, root, filepath.Join(dir, name))
			if err != nil {
				return err
			}
			if !excluded {
				kept = append(kept, name)
			}
		}
		subdirs = kept
	}

	for _, name := range files {
		path := filepath.Join(dir, name)
		if w.oracle != nil {
			excluded, err := w.oracle.IsExcluded(ctx, root, path)
			if err != nil {
				return err
			}
			if excluded {
				continue
			}
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}
		*out = append(*out, Entry{Path: path, RelPath: filepath.ToSlash(rel)})
	}

	for _, name := range subdirs {
		if err := w.walkDir(ctx, root, filepath.Join(dir, name), out); err != nil {
			return err
		}
	}

	return nil
}
