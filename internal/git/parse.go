// pattern: Functional Core

package git

import (
	"strings"
	"unicode"
)

// ParseWorktreeList parses the porcelain output of `git worktree list`.
// Format:
//
//	worktree /path/to/worktree
//	HEAD abc123
//	branch refs/heads/branch-name
//	<blank line>
//
// Blocks are separated by blank lines; the end of input also terminates a
// block. A block containing a `bare` line is dropped entirely. Unknown
// lines (detached, locked, prunable) are ignored.
func ParseWorktreeList(output string) []Worktree {
	if output == "" {
		return nil
	}

	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")

	var worktrees []Worktree
	var path, branch, commit string
	bare := false

	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		key, value := splitField(line)

		switch key {
		case "worktree":
			path = value
		case "branch":
			branch = value
		case "HEAD":
			commit = value
		case "bare":
			path = ""
			bare = true
		}

		if line != "" && i != len(lines)-1 {
			continue
		}

		// End of block
		if path != "" && !bare {
			worktrees = append(worktrees, Worktree{
				Path:   path,
				Branch: branch,
				Commit: commit,
			})
		}
		path, branch, commit = "", "", ""
		bare = false
	}

	return worktrees
}

// splitField splits a porcelain line into its keyword and the remainder
// after the first whitespace run. The value is empty when absent.
func splitField(line string) (key, value string) {
	idx := strings.IndexFunc(line, unicode.IsSpace)
	if idx < 0 {
		return line, ""
	}
	return line[:idx], strings.TrimSpace(line[idx:])
}
