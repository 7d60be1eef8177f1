// pattern: Imperative Shell

package picker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-isatty"
	"github.com/sahilm/fuzzy"

	"worktree/internal/logging"
)

const (
	// maxVisibleRows is the number of candidate rows shown at once.
	maxVisibleRows = 12
	// previewEntries is the number of directory entries shown in the preview.
	previewEntries = 8
	// defaultWidth is used until the terminal reports its size.
	defaultWidth = 80
)

// ErrNoTerminal is returned when the builtin picker has no terminal to draw on.
var ErrNoTerminal = errors.New("picker: builtin picker needs a terminal")

// Builtin is an in-process fuzzy picker for systems without fzf.
// It draws on Output (stderr by default) so stdout carries only the result.
type Builtin struct {
	Theme  string
	Input  io.Reader // nil reads from the controlling terminal
	Output io.Writer

	logger *logging.ScopedLogger
}

// NewBuiltin returns a Builtin picker using the named catppuccin flavour.
func NewBuiltin(theme string, logger *logging.ScopedLogger) *Builtin {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Builtin{Theme: theme, Output: os.Stderr, logger: logger}
}

// Pick implements Picker.
func (b *Builtin) Pick(ctx context.Context, lines []string) (string, bool, error) {
	if b.Input == nil && !isTerminal(b.Output) {
		return "", false, ErrNoTerminal
	}

	m, err := newModel(lines, NewStyles(b.Theme), readDirNames)
	if err != nil {
		return "", false, err
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(b.Output)}
	if b.Input != nil {
		opts = append(opts, tea.WithInput(b.Input))
	} else {
		opts = append(opts, tea.WithInputTTY())
	}

	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		return "", false, fmt.Errorf("running picker: %w", err)
	}

	result, ok := final.(*model)
	if !ok || result.chosen == "" {
		b.logger.Debug("picker closed without selection")
		return "", false, nil
	}
	b.logger.Debug("picker selection", "line", result.chosen)
	return result.chosen, true, nil
}

// isTerminal reports whether w is a terminal. Non-file writers are assumed
// to be test buffers and accepted.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return true
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// model is the bubbletea state of the builtin picker.
type model struct {
	entries  []entry
	haystack []string // searchable text per entry
	matches  []int    // indices into entries, best match first
	cursor   int

	input   textinput.Model
	styles  *Styles
	listDir func(path string) []string
	preview map[string][]string

	width  int
	chosen string
}

func newModel(lines []string, styles *Styles, listDir func(string) []string) (*model, error) {
	entries := make([]entry, 0, len(lines))
	haystack := make([]string, 0, len(lines))
	for _, line := range lines {
		e, err := parseLine(line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
		haystack = append(haystack, e.name+" "+e.summary)
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = styles.PromptStyle()
	ti.Placeholder = "type to filter"
	ti.Focus()

	m := &model{
		entries:  entries,
		haystack: haystack,
		input:    ti,
		styles:   styles,
		listDir:  listDir,
		preview:  make(map[string][]string),
		width:    defaultWidth,
	}
	m.filter()
	return m, nil
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.chosen = ""
			return m, tea.Quit
		case "enter":
			if len(m.matches) > 0 {
				m.chosen = m.entries[m.matches[m.cursor]].line
			}
			return m, tea.Quit
		case "up", "ctrl+p", "ctrl+k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n", "ctrl+j":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.filter()
	}
	return m, cmd
}

// filter recomputes matches for the current query and resets the cursor.
func (m *model) filter() {
	m.cursor = 0
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.matches = make([]int, len(m.entries))
		for i := range m.entries {
			m.matches[i] = i
		}
		return
	}

	found := fuzzy.Find(query, m.haystack)
	m.matches = make([]int, 0, len(found))
	for _, match := range found {
		m.matches = append(m.matches, match.Index)
	}
}

// selected returns the highlighted entry, if any.
func (m *model) selected() (entry, bool) {
	if len(m.matches) == 0 {
		return entry{}, false
	}
	return m.entries[m.matches[m.cursor]], true
}

// visibleRange keeps the cursor inside a window of maxVisibleRows.
func (m *model) visibleRange() (int, int) {
	total := len(m.matches)
	if total <= maxVisibleRows {
		return 0, total
	}
	start := m.cursor - maxVisibleRows/2
	if start < 0 {
		start = 0
	}
	end := start + maxVisibleRows
	if end > total {
		end = total
		start = end - maxVisibleRows
	}
	return start, end
}

// View implements tea.Model.
func (m *model) View() string {
	var b strings.Builder
	rowWidth := m.width - 2

	b.WriteString(m.styles.TitleStyle().Render("Worktrees"))
	b.WriteString(m.styles.HelpStyle().Render(fmt.Sprintf("  %d/%d", len(m.matches), len(m.entries))))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	start, end := m.visibleRange()
	for i := start; i < end; i++ {
		e := m.entries[m.matches[i]]
		prefix, nameStyle := "  ", m.styles.RowStyle()
		if i == m.cursor {
			prefix, nameStyle = "▸ ", m.styles.SelectedStyle()
		}
		row := prefix + nameStyle.Render(e.name) + "  " + m.styles.SummaryStyle().Render(e.summary)
		b.WriteString(ansi.Truncate(row, rowWidth, "…"))
		b.WriteString("\n")
	}
	if len(m.matches) == 0 {
		b.WriteString(m.styles.HelpStyle().Render("  No matching worktrees"))
		b.WriteString("\n")
	}

	if e, ok := m.selected(); ok {
		b.WriteString(m.styles.PreviewStyle().Render(m.renderPreview(e)))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.HelpStyle().Render("↑/↓ move • enter select • esc cancel"))
	return b.String()
}

func (m *model) renderPreview(e entry) string {
	lines := []string{
		m.styles.AccentStyle().Render("Path:   ") + e.path,
		m.styles.AccentStyle().Render("Branch: ") + e.branch,
		m.styles.AccentStyle().Render("Commit: ") + e.commit,
	}

	names, ok := m.preview[e.path]
	if !ok {
		names = m.listDir(e.path)
		m.preview[e.path] = names
	}
	if len(names) > 0 {
		lines = append(lines, "")
		lines = append(lines, names...)
	}

	width := m.width - 6
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "…")
	}
	return strings.Join(lines, "\n")
}

// readDirNames lists up to previewEntries names in path, directories
// suffixed with a slash. Unreadable directories yield nothing.
func readDirNames(path string) []string {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil
	}

	names := make([]string, 0, previewEntries)
	for _, de := range dirEntries {
		if len(names) == previewEntries {
			names = append(names, fmt.Sprintf("… %d more", len(dirEntries)-previewEntries))
			break
		}
		name := de.Name()
		if de.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	return names
}
