// pattern: Functional Core
package cli

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
)

// Command represents a single CLI command with its metadata and handler.
type Command struct {
	Name    string
	Summary string
	Usage   string
	Run     func(ctx context.Context, args []string) error
}

// Group represents a group of related commands.
type Group struct {
	Name     string
	Summary  string
	Commands map[string]*Command
}

// App represents the top-level CLI application with groups and ungrouped commands.
type App struct {
	groups   map[string]*Group
	commands map[string]*Command
	version  string
	help     io.Writer
}

// NewApp creates a new CLI application. Help and usage text go to help.
func NewApp(version string, help io.Writer) *App {
	return &App{
		groups:   make(map[string]*Group),
		commands: make(map[string]*Command),
		version:  version,
		help:     help,
	}
}

// AddGroup creates and registers a new command group.
func (a *App) AddGroup(name, summary string) *Group {
	g := &Group{
		Name:     name,
		Summary:  summary,
		Commands: make(map[string]*Command),
	}
	a.groups[name] = g
	return g
}

// AddCommand registers an ungrouped (top-level) command.
func (a *App) AddCommand(cmd *Command) {
	a.commands[cmd.Name] = cmd
}

// AddCommand registers a command in the group.
func (g *Group) AddCommand(cmd *Command) {
	g.Commands[cmd.Name] = cmd
}

// Execute dispatches the CLI arguments to the appropriate command.
// Returns true if the interactive picker should run instead.
func (a *App) Execute(ctx context.Context, args []string) (bool, error) {
	// No args: interactive pick
	if len(args) == 0 {
		return true, nil
	}

	cmdName := args[0]
	if cmdName == "help" || cmdName == "--help" || cmdName == "-h" {
		a.PrintHelp(a.help)
		return false, nil
	}

	// Check for ungrouped command
	if cmd, ok := a.commands[cmdName]; ok {
		if hasHelpFlag(args[1:]) {
			fmt.Fprintf(a.help, "%s\n", cmd.Usage)
			return false, nil
		}
		return false, cmd.Run(ctx, args[1:])
	}

	// Check for group
	if group, ok := a.groups[cmdName]; ok {
		// Group with no subcommand, "help", or --help/-h
		if len(args) < 2 || args[1] == "help" || args[1] == "--help" || args[1] == "-h" {
			group.PrintHelp(a.help)
			return false, nil
		}

		subCmd := args[1]
		if cmd, ok := group.Commands[subCmd]; ok {
			if hasHelpFlag(args[2:]) {
				fmt.Fprintf(a.help, "%s\n", cmd.Usage)
				return false, nil
			}
			return false, cmd.Run(ctx, args[2:])
		}

		// Unknown command in group
		group.PrintHelp(a.help)
		return false, fmt.Errorf("unknown command %q for %q", subCmd, group.Name)
	}

	// Unknown command
	a.PrintHelp(a.help)
	return false, fmt.Errorf("unknown command %q", cmdName)
}

func hasHelpFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}

// PrintHelp prints the top-level help text.
func (a *App) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "Usage: worktree [options] [command]\n\n")
	fmt.Fprintf(w, "Commands:\n")

	fmt.Fprintf(w, "  %-10s %s\n", "(none)", "Pick a worktree interactively and print its path")

	// Print ungrouped commands
	for _, name := range []string{"list", "sessions", "version"} {
		if cmd, ok := a.commands[name]; ok {
			fmt.Fprintf(w, "  %-10s %s\n", cmd.Name, cmd.Summary)
		}
	}

	// Print groups if any exist
	if len(a.groups) > 0 {
		fmt.Fprintf(w, "\nCommand Groups:\n")
		names := slices.Sorted(maps.Keys(a.groups))
		for _, name := range names {
			group := a.groups[name]
			fmt.Fprintf(w, "  %-10s %s\n", group.Name, group.Summary)
		}
	}

	fmt.Fprintf(w, "\nUse \"worktree <group> help\" for group details.\n\n")
	fmt.Fprintf(w, "Options:\n")
}

// PrintHelp prints help for a specific group.
func (g *Group) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "Usage: worktree %s <command>\n\n", g.Name)
	fmt.Fprintf(w, "Commands:\n")
	// Sort command names for deterministic output
	names := slices.Sorted(maps.Keys(g.Commands))
	for _, name := range names {
		cmd := g.Commands[name]
		fmt.Fprintf(w, "  %-10s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintf(w, "\nUse \"worktree %s <command> --help\" for command details.\n", g.Name)
}
