// pattern: Imperative Shell

package picker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"unicode/utf8"

	"worktree/internal/logging"
)

// ErrInvalidOutput is returned when the picker prints something that is not
// valid UTF-8.
var ErrInvalidOutput = errors.New("picker: output is not valid UTF-8")

// fzfPreview shows the path, branch and commit columns followed by a listing.
const fzfPreview = "echo 'Path: {2}' && echo 'Branch: {3}' && echo 'Commit: {4}' && echo '' && ls -la {2}"

// DefaultFzfArgs are the arguments fzf is started with.
func DefaultFzfArgs() []string {
	return []string{
		"--height=20",
		"--reverse",
		"--delimiter=\t",
		"--with-nth=1,5",
		"--preview=" + fzfPreview,
	}
}

// Fzf runs the external fzf binary. Lines are written to its stdin and the
// selected line is read from its stdout; its interface draws on the terminal.
type Fzf struct {
	Binary string
	Args   []string
	Stderr io.Writer

	logger *logging.ScopedLogger
}

// NewFzf returns an Fzf picker with the default binary and arguments.
func NewFzf(logger *logging.ScopedLogger) *Fzf {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Fzf{
		Binary: "fzf",
		Args:   DefaultFzfArgs(),
		Stderr: os.Stderr,
		logger: logger,
	}
}

// Pick implements Picker.
func (f *Fzf) Pick(ctx context.Context, lines []string) (string, bool, error) {
	cmd := exec.CommandContext(ctx, f.Binary, f.Args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = f.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return "", false, fmt.Errorf("opening %s stdin: %w", f.Binary, err)
	}
	if err := cmd.Start(); err != nil {
		return "", false, fmt.Errorf("starting %s: %w", f.Binary, err)
	}

	if err := writeLines(stdin, lines); err != nil {
		_ = stdin.Close()
		_ = cmd.Wait()
		return "", false, fmt.Errorf("writing to %s: %w", f.Binary, err)
	}
	if err := stdin.Close(); err != nil {
		_ = cmd.Wait()
		return "", false, fmt.Errorf("closing %s stdin: %w", f.Binary, err)
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// 1 = no match, 130 = interrupted; both mean nothing was chosen
			f.logger.Debug("picker exited without selection", "code", exitErr.ExitCode())
			return "", false, nil
		}
		return "", false, fmt.Errorf("waiting for %s: %w", f.Binary, err)
	}

	out := stdout.Bytes()
	if !utf8.Valid(out) {
		return "", false, ErrInvalidOutput
	}

	selected := strings.TrimSpace(string(out))
	if selected == "" {
		return "", false, nil
	}
	f.logger.Debug("picker selection", "line", selected)
	return selected, true, nil
}

// writeLines sends the newline-terminated list in a single write.
func writeLines(w io.Writer, lines []string) error {
	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	_, err := io.WriteString(w, buf.String())
	return err
}
