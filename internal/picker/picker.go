// pattern: Imperative Shell

package picker

import (
	"context"
	"fmt"

	"worktree/internal/config"
	"worktree/internal/logging"
)

// Picker presents lines to the user and returns the chosen one.
// ok is false when the user made no selection; that is not an error.
type Picker interface {
	Pick(ctx context.Context, lines []string) (line string, ok bool, err error)
}

// Select runs p over lines and resolves the selection to a worktree path.
// An empty list returns immediately without starting the picker.
func Select(ctx context.Context, p Picker, lines []string) (string, bool, error) {
	if len(lines) == 0 {
		return "", false, nil
	}

	line, ok, err := p.Pick(ctx, lines)
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}

	path, err := PathFromLine(line)
	if err != nil {
		return "", false, err
	}
	return path, true, nil
}

// New returns the picker for kind (config.PickerFzf or config.PickerBuiltin).
func New(kind, theme string, logger *logging.ScopedLogger) (Picker, error) {
	switch kind {
	case config.PickerFzf:
		return NewFzf(logger), nil
	case config.PickerBuiltin:
		return NewBuiltin(theme, logger), nil
	default:
		return nil, fmt.Errorf("unknown picker %q", kind)
	}
}
