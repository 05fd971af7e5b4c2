// internal/walker/walker_test.go
package walker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeOracle excludes configured relative paths and records every query.
type fakeOracle struct {
	excluded map[string]bool
	queried  []string
}

func (f *fakeOracle) IsExcluded(ctx context.Context, root, path string) (bool, error) {
	rel, _ := filepath.Rel(root, path)
	rel = filepath.ToSlash(rel)
	f.queried = append(f.queried, rel)
	return f.excluded[rel], nil
}

func writeFiles(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("content"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func relPaths(entries []Entry) []string {
	rels := make([]string, len(entries))
	for i, e := range entries {
		rels[i] = e.RelPath
	}
	return rels
}

func TestWalker_YieldsFilesInOrder(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "b.txt", "a.txt", "sub/c.md", "sub/nested/d.go")

	w := New(nil)
	entries, err := w.Walk(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	want := []string{"a.txt", "b.txt", "sub/c.md", "sub/nested/d.go"}
	got := relPaths(entries)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Walk() = %v, want %v", got, want)
	}
}

func TestWalker_SkipsGitDir(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "a.txt", ".git/config", ".git/objects/ab")

	w := New(nil)
	entries, err := w.Walk(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	if len(entries) != 1 || entries[0].RelPath != "a.txt" {
		t.Errorf("Walk() = %v, want just a.txt", relPaths(entries))
	}
}

func TestWalker_PrunesExcludedDirs(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "keep.txt", "build/out.o", "build/deep/more.o")

	oracle := &fakeOracle{excluded: map[string]bool{"build": true}}
	w := New(oracle)
	entries, err := w.Walk(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	if len(entries) != 1 || entries[0].RelPath != "keep.txt" {
		t.Errorf("Walk() = %v, want just keep.txt", relPaths(entries))
	}

	// Nothing under a pruned directory may ever reach the oracle.
	for _, q := range oracle.queried {
		if strings.HasPrefix(q, "build/") {
			t.Errorf("oracle queried %q inside pruned directory", q)
		}
	}
}

func TestWalker_SkipsExcludedFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "keep.txt", "secret.env")

	oracle := &fakeOracle{excluded: map[string]bool{"secret.env": true}}
	w := New(oracle)
	entries, err := w.Walk(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	if len(entries) != 1 || entries[0].RelPath != "keep.txt" {
		t.Errorf("Walk() = %v, want just keep.txt", relPaths(entries))
	}
}

func TestWalker_SkipsSymlinkedDirs(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "real/a.txt")
	if err := os.Symlink(filepath.Join(tmpDir, "real"), filepath.Join(tmpDir, "link")); err != nil {
		t.Skip("symlinks not supported on this filesystem")
	}

	w := New(nil)
	entries, err := w.Walk(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	if len(entries) != 1 || entries[0].RelPath != "real/a.txt" {
		t.Errorf("Walk() = %v, want just real/a.txt", relPaths(entries))
	}
}

func TestWalker_RelPathsUseSlashes(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "sub/nested/file.txt")

	w := New(nil)
	entries, err := w.Walk(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	if len(entries) != 1 || entries[0].RelPath != "sub/nested/file.txt" {
		t.Errorf("RelPath = %q, want sub/nested/file.txt", entries[0].RelPath)
	}
	if !filepath.IsAbs(entries[0].Path) {
		t.Errorf("Path = %q, want absolute", entries[0].Path)
	}
}
