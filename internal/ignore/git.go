// internal/ignore/git.go
package ignore

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrGitMissing is returned when the git binary cannot be found. Callers
// must treat it as fatal: without git there is no way to honor exclusion
// rules, and silently reporting "not ignored" would produce a misleading
// tree and digest.
var ErrGitMissing = errors.New("git is not installed")

// Oracle decides whether a path under root is excluded by version-control
// ignore rules.
type Oracle interface {
	IsExcluded(ctx context.Context, root, path string) (bool, error)
}

// GitOracle consults git itself for ignore decisions, so the matching
// semantics are exactly what a checkout would see.
type GitOracle struct{}

func NewGitOracle() *GitOracle {
	return &GitOracle{}
}

// IsExcluded reports whether path is ignored under root's git work tree.
// Roots outside any work tree exclude nothing. Decisions are recomputed on
// every call; nothing is cached across a scan.
func (o *GitOracle) IsExcluded(ctx context.Context, root, path string) (bool, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false, nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, nil
	}

	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		// Outside the scan root — not ours to exclude.
		return false, nil
	}

	if err := o.runGit(ctx, absRoot, "rev-parse", "--is-inside-work-tree"); err != nil {
		if gitMissing(err) {
			return false, ErrGitMissing
		}
		return false, nil
	}

	err = o.runGit(ctx, absRoot, "check-ignore", "--quiet", rel)
	if err == nil {
		return true, nil
	}
	if gitMissing(err) {
		return false, ErrGitMissing
	}
	// Any other failure fails open so transient git errors don't hide files.
	return false, nil
}

func (o *GitOracle) runGit(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	return cmd.Run()
}

func gitMissing(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}
