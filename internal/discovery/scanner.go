// pattern: Imperative Shell

package discovery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"worktree/internal/git"
	"worktree/internal/logging"
	"worktree/internal/pathutil"
)

// GitClient is the subset of git.Client the scanner needs.
type GitClient interface {
	IsRepo(ctx context.Context, path string) bool
	ListWorktrees(ctx context.Context, repoPath string) ([]git.Worktree, error)
}

// Scanner discovers git worktrees below configured root directories.
type Scanner struct {
	git    GitClient
	logger *logging.ScopedLogger
	limit  int
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithConcurrency caps the number of tasks in flight per fan-out level.
// Zero or negative means unbounded.
func WithConcurrency(n int) Option {
	return func(s *Scanner) { s.limit = n }
}

// WithLogger sets the scanner's logger.
func WithLogger(logger *logging.ScopedLogger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScanner creates a new worktree scanner.
func NewScanner(client GitClient, opts ...Option) *Scanner {
	s := &Scanner{
		git:    client,
		logger: logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CollectAll scans every root concurrently and returns the merged worktrees,
// de-duplicated by path. A root that fails contributes nothing. Order is
// unspecified.
func (s *Scanner) CollectAll(ctx context.Context, roots []string) []git.Worktree {
	results := fanOut(s, roots, func(root string) []git.Worktree {
		return s.ScanRoot(ctx, root)
	})

	worktrees := dedupe(results)
	s.logger.Info("discovery finished", "roots", len(roots), "worktrees", len(worktrees))
	return worktrees
}

// ScanRoot lists the immediate subdirectories of root and, for each one
// that is a git repository, collects its worktrees. Children are probed
// concurrently. An unreadable root yields nothing.
func (s *Scanner) ScanRoot(ctx context.Context, root string) []git.Worktree {
	root = pathutil.Expand(root)

	entries, err := os.ReadDir(root)
	if err != nil {
		s.logger.Debug("skipping unreadable root", "root", root, "error", err)
		return nil
	}

	var candidates []string
	for _, entry := range entries {
		candidate := filepath.Join(root, entry.Name())
		if !isDir(entry, candidate) {
			continue
		}
		candidates = append(candidates, candidate)
	}

	results := fanOut(s, candidates, func(dir string) []git.Worktree {
		if !s.git.IsRepo(ctx, dir) {
			return nil
		}
		worktrees, err := s.git.ListWorktrees(ctx, dir)
		if err != nil {
			s.logger.Debug("skipping repository", "repo", dir, "error", err)
			return nil
		}
		return worktrees
	})

	var worktrees []git.Worktree
	for _, r := range results {
		worktrees = append(worktrees, r...)
	}
	s.logger.Debug("scanned root", "root", root, "candidates", len(candidates), "worktrees", len(worktrees))
	return worktrees
}

// fanOut runs task once per input, all launched before any is awaited.
// Each task writes only its own slot; a panicking task leaves its slot
// empty and does not affect the others.
func fanOut(s *Scanner, inputs []string, task func(string) []git.Worktree) [][]git.Worktree {
	results := make([][]git.Worktree, len(inputs))

	var g errgroup.Group
	if s.limit > 0 {
		g.SetLimit(s.limit)
	}

	for i, input := range inputs {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					s.logger.Warn("task panicked", "input", input, "panic", fmt.Sprint(r))
				}
			}()
			results[i] = task(input)
			return nil
		})
	}

	// Tasks never return errors; failures are already folded into empty slots.
	_ = g.Wait()
	return results
}

// dedupe flattens results, keeping the first record seen for each path.
func dedupe(results [][]git.Worktree) []git.Worktree {
	seen := make(map[string]bool)
	var worktrees []git.Worktree
	for _, r := range results {
		for _, wt := range r {
			if seen[wt.Path] {
				continue
			}
			seen[wt.Path] = true
			worktrees = append(worktrees, wt)
		}
	}
	return worktrees
}

// isDir reports whether entry is a directory, following symlinks.
func isDir(entry os.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
