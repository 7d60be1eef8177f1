// pattern: Functional Core

package git

import (
	"errors"

	"worktree/internal/pathutil"
)

// ErrProcessFailed is returned when a git command cannot be spawned or
// exits non-zero.
var ErrProcessFailed = errors.New("git: process failed")

// Worktree is one checkout listed by `git worktree list --porcelain`.
type Worktree struct {
	Path   string // Absolute path of the checkout
	Branch string // Fully-qualified ref (refs/heads/...), empty when detached
	Commit string // Full commit hash of HEAD
}

// Name returns the directory basename, used as the tmux session key.
func (w Worktree) Name() string {
	return pathutil.Basename(w.Path)
}
