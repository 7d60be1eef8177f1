// pattern: Functional Core

package tmux

import (
	"bufio"
	"strconv"
	"strings"
)

// ParseSessions parses `tmux list-sessions -F
// '#{session_name}:#{session_last_attached}'` output in tmux order. Lines
// without a colon or with a non-numeric timestamp (never-attached sessions
// print an empty one) are skipped.
func ParseSessions(output string) []Session {
	var sessions []Session

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		name, ts, ok := strings.Cut(line, ":")
		if !ok || name == "" {
			continue
		}
		n, err := strconv.ParseUint(strings.TrimSpace(ts), 10, 64)
		if err != nil {
			continue
		}
		sessions = append(sessions, Session{Name: name, LastAttached: n})
	}

	return sessions
}
