// pattern: Functional Core

package picker

import (
	"errors"
	"fmt"
	"strings"

	"worktree/internal/git"
)

// ErrMalformedLine is returned when a picker line does not carry a path column.
var ErrMalformedLine = errors.New("picker: malformed line")

const headsPrefix = "refs/heads/"

// shortCommitLen is the number of hash characters shown in the summary column.
const shortCommitLen = 8

// CleanBranch strips the refs/heads/ prefix from a fully-qualified ref.
// Other refs and the empty (detached) branch are returned unchanged.
func CleanBranch(ref string) string {
	return strings.TrimPrefix(ref, headsPrefix)
}

// ShortCommit abbreviates a commit hash to its first eight characters.
// Shorter values are returned verbatim.
func ShortCommit(commit string) string {
	runes := []rune(commit)
	if len(runes) < shortCommitLen {
		return commit
	}
	return string(runes[:shortCommitLen])
}

// FormatLine renders a worktree as one tab-separated picker line:
//
//	name \t path \t branch \t commit \t (branch) [short]
//
// Only the first and last columns are displayed; the path column is what a
// selection resolves to.
func FormatLine(wt git.Worktree) string {
	branch := CleanBranch(wt.Branch)
	return fmt.Sprintf("%s\t%s\t%s\t%s\t(%s) [%s]",
		wt.Name(), wt.Path, branch, wt.Commit, branch, ShortCommit(wt.Commit))
}

// Format renders worktrees in order, one line each.
func Format(worktrees []git.Worktree) []string {
	lines := make([]string, 0, len(worktrees))
	for _, wt := range worktrees {
		lines = append(lines, FormatLine(wt))
	}
	return lines
}

// entry is a picker line split back into its columns.
type entry struct {
	line    string
	name    string
	path    string
	branch  string
	commit  string
	summary string
}

func parseLine(line string) (entry, error) {
	fields := strings.SplitN(line, "\t", 5)
	if len(fields) < 2 || fields[1] == "" {
		return entry{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}

	e := entry{line: line, name: fields[0], path: fields[1]}
	if len(fields) > 2 {
		e.branch = fields[2]
	}
	if len(fields) > 3 {
		e.commit = fields[3]
	}
	if len(fields) > 4 {
		e.summary = fields[4]
	}
	return e, nil
}

// PathFromLine returns the path column of a picker line.
func PathFromLine(line string) (string, error) {
	e, err := parseLine(line)
	if err != nil {
		return "", err
	}
	return e.path, nil
}
