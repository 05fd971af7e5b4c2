// internal/tree/render.go
package tree

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/arun477/dirtree/internal/ignore"
)

// Renderer draws a directory hierarchy with box-drawing connectors,
// consulting an ignore oracle to filter excluded entries at each level.
type Renderer struct {
	oracle ignore.Oracle // nil disables exclusion filtering
}

func NewRenderer(oracle ignore.Oracle) *Renderer {
	return &Renderer{oracle: oracle}
}

// Render returns the textual tree for root, headed by name with a trailing
// separator. Directories are suffixed with "/", entries at each level are
// listed in lexicographic order, and an unreadable directory is rendered as
// an access-error line in place of its contents.
func (r *Renderer) Render(ctx context.Context, root, name string) (string, error) {
	var b strings.Builder
	b.WriteString(name)
	b.WriteString("/\n")
	if err := r.renderDir(ctx, &b, root, root, ""); err != nil {
		return "", err
	}
	return b.String(), nil
}

type treeItem struct {
	name  string
	path  string
	isDir bool
}

func (r *Renderer) renderDir(ctx context.Context, b *strings.Builder, root, dir, prefix string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		b.WriteString(prefix)
		b.WriteString("[Access Error]\n")
		return nil
	}

	var items []treeItem
	for _, e := range entries {
		if e.Name() == ".git" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if r.oracle != nil {
			excluded, err := r.oracle.IsExcluded(ctx, root, path)
			if err != nil {
				return err
			}
			if excluded {
				continue
			}
		}
		items = append(items, treeItem{name: e.Name(), path: path, isDir: e.IsDir()})
	}

	for i, item := range items {
		connector := "├── "
		nextPrefix := prefix + "│   "
		if i == len(items)-1 {
			connector = "└── "
			nextPrefix = prefix + "    "
		}

		b.WriteString(prefix)
		b.WriteString(connector)
		b.WriteString(item.name)
		if item.isDir {
			b.WriteString("/")
		}
		b.WriteString("\n")

		if item.isDir {
			if err := r.renderDir(ctx, b, root, item.path, nextPrefix); err != nil {
				return err
			}
		}
	}

	return nil
}
