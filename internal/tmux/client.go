// pattern: Imperative Shell

package tmux

import (
	"context"
	"strings"

	"worktree/internal/logging"
	"worktree/internal/process"
)

// Client queries the local tmux server.
type Client struct {
	run    process.Runner
	logger *logging.ScopedLogger
}

// NewClient creates a new tmux Client.
func NewClient(run process.Runner) *Client {
	return NewClientWithLogger(run, nil)
}

// NewClientWithLogger creates a new Client that logs through the given provider.
func NewClientWithLogger(run process.Runner, logProvider logging.LoggerProvider) *Client {
	logger := logging.NopLogger()
	if logProvider != nil {
		logger = logProvider.For("tmux")
		logger.Debug("tmux client initialized")
	}
	return &Client{run: run, logger: logger}
}

// Sessions returns every session with its last-attached time, in tmux order.
func (c *Client) Sessions(ctx context.Context) []Session {
	output, err := c.run(ctx, "", "tmux", "list-sessions", "-F", activityFormat)
	if err != nil {
		// No server running = no sessions (not an error)
		c.logger.Debug("list-sessions failed", "error", err)
		return nil
	}
	return ParseSessions(string(output))
}

// SessionActivity returns session name -> last-attached timestamp.
// Any failure yields an empty map.
func (c *Client) SessionActivity(ctx context.Context) map[string]uint64 {
	activity := make(map[string]uint64)
	for _, s := range c.Sessions(ctx) {
		activity[s.Name] = s.LastAttached
	}
	c.logger.Debug("listed sessions", "count", len(activity))
	return activity
}

// CurrentSession returns the name of the session this process runs in.
// ok is false when tmux is unavailable or reports nothing.
func (c *Client) CurrentSession(ctx context.Context) (name string, ok bool) {
	output, err := c.run(ctx, "", "tmux", "display-message", "-p", currentFormat)
	if err != nil {
		c.logger.Debug("display-message failed", "error", err)
		return "", false
	}

	name = strings.TrimSpace(string(output))
	return name, name != ""
}
