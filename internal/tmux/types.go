// pattern: Functional Core

package tmux

// Format strings passed to tmux.
const (
	activityFormat = "#{session_name}:#{session_last_attached}"
	currentFormat  = "#S"
)

// Session is one tmux session and when a client last attached to it.
type Session struct {
	Name         string
	LastAttached uint64 // Unix seconds
}
