// pattern: Imperative Shell

package git

import (
	"context"
	"fmt"
	"strings"

	"worktree/internal/logging"
	"worktree/internal/process"
)

// Client runs the git queries needed for worktree discovery.
type Client struct {
	run    process.Runner
	logger *logging.ScopedLogger
}

// NewClient creates a Client that runs git through run.
func NewClient(run process.Runner, logger *logging.ScopedLogger) *Client {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Client{run: run, logger: logger}
}

// IsRepo reports whether path is inside a git repository.
// Any failure, including a missing git binary, counts as "not a repository".
func (c *Client) IsRepo(ctx context.Context, path string) bool {
	if _, err := c.run(ctx, path, "git", "rev-parse", "--git-dir"); err != nil {
		c.logger.Debug("not a git repository", "path", path, "error", err)
		return false
	}
	return true
}

// ListWorktrees returns every worktree of the repository at repoPath.
// Output is decoded leniently: invalid UTF-8 is replaced, never rejected.
func (c *Client) ListWorktrees(ctx context.Context, repoPath string) ([]Worktree, error) {
	output, err := c.run(ctx, repoPath, "git", "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("%w: git worktree list --porcelain in %s: %v", ErrProcessFailed, repoPath, err)
	}

	worktrees := ParseWorktreeList(strings.ToValidUTF8(string(output), "\uFFFD"))
	c.logger.Debug("listed worktrees", "repo", repoPath, "count", len(worktrees))
	return worktrees, nil
}
