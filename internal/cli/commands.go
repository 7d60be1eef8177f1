// pattern: Imperative Shell
package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"worktree/internal/config"
	"worktree/internal/git"
	"worktree/internal/logging"
	"worktree/internal/picker"
	"worktree/internal/recency"
)

// Collector discovers worktrees under a set of root directories.
type Collector interface {
	CollectAll(ctx context.Context, roots []string) []git.Worktree
}

// Env is everything a command needs. It is assembled once in main.
type Env struct {
	Version    string
	Config     config.Config
	ConfigPath string

	Collector Collector
	Sessions  recency.Source
	Picker    picker.Picker

	Stdout io.Writer
	Stderr io.Writer
	Logger *logging.ScopedLogger
}

func (e *Env) logger() *logging.ScopedLogger {
	if e.Logger == nil {
		return logging.NopLogger()
	}
	return e.Logger
}

// BuildApp creates and configures the CLI application with all commands and groups.
func BuildApp(env *Env) *App {
	app := NewApp(env.Version, env.Stderr)

	// Register ungrouped commands
	app.AddCommand(&Command{
		Name:    "list",
		Summary: "Print discovered worktrees without opening the picker",
		Usage:   "Usage: worktree list [--paths]",
		Run: func(ctx context.Context, args []string) error {
			return runListCommand(ctx, env, args)
		},
	})

	app.AddCommand(&Command{
		Name:    "sessions",
		Summary: "Print tmux sessions by last activity",
		Usage:   "Usage: worktree sessions",
		Run: func(ctx context.Context, args []string) error {
			return Sessions(ctx, env)
		},
	})

	app.AddCommand(&Command{
		Name:    "version",
		Summary: "Print version and exit",
		Usage:   "Usage: worktree version",
		Run: func(ctx context.Context, args []string) error {
			fmt.Fprintln(env.Stdout, env.Version)
			return nil
		},
	})

	// Register command groups
	configGroup := app.AddGroup("config", "Inspect configuration")
	configGroup.AddCommand(&Command{
		Name:    "path",
		Summary: "Print the config file path",
		Usage:   "Usage: worktree config path",
		Run: func(ctx context.Context, args []string) error {
			fmt.Fprintln(env.Stdout, env.ConfigPath)
			return nil
		},
	})
	configGroup.AddCommand(&Command{
		Name:    "show",
		Summary: "Print the effective configuration as YAML",
		Usage:   "Usage: worktree config show",
		Run: func(ctx context.Context, args []string) error {
			return ShowConfig(env)
		},
	})

	return app
}

// collect discovers and orders worktrees according to the configured sort.
func collect(ctx context.Context, env *Env) []git.Worktree {
	worktrees := env.Collector.CollectAll(ctx, env.Config.Directories)
	recency.Apply(ctx, env.Config.Sort, worktrees, env.Sessions)
	return worktrees
}

// Pick discovers worktrees, runs the picker and prints the chosen path.
// Finding nothing or choosing nothing is not an error.
func Pick(ctx context.Context, env *Env) error {
	logger := env.logger()

	worktrees := collect(ctx, env)
	if len(worktrees) == 0 {
		fmt.Fprintln(env.Stderr, "No worktrees found")
		return nil
	}

	path, ok, err := picker.Select(ctx, env.Picker, picker.Format(worktrees))
	if err != nil {
		return fmt.Errorf("selecting worktree: %w", err)
	}
	if !ok {
		logger.Debug("no worktree selected")
		return nil
	}

	logger.Info("worktree selected", "path", path)
	fmt.Fprintln(env.Stdout, path)
	return nil
}

func runListCommand(ctx context.Context, env *Env, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	paths := fs.Bool("paths", false, "print only worktree paths")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("list: unexpected argument %q", fs.Arg(0))
	}
	return List(ctx, env, *paths)
}

// List prints every discovered worktree in picker order, one per line.
// With pathsOnly only the path column is printed.
func List(ctx context.Context, env *Env, pathsOnly bool) error {
	worktrees := collect(ctx, env)
	if len(worktrees) == 0 {
		fmt.Fprintln(env.Stderr, "No worktrees found")
		return nil
	}

	for _, wt := range worktrees {
		if pathsOnly {
			fmt.Fprintln(env.Stdout, wt.Path)
			continue
		}
		fmt.Fprintln(env.Stdout, picker.FormatLine(wt))
	}
	return nil
}

// Sessions prints the tmux recency snapshot, most recent first.
// The current session is marked "*" and the previous one "-".
func Sessions(ctx context.Context, env *Env) error {
	snap := recency.Take(ctx, env.Sessions)
	if len(snap.Sessions) == 0 {
		fmt.Fprintln(env.Stderr, "No tmux sessions found")
		return nil
	}

	var previous string
	if snap.HasCurrent {
		previous, _ = recency.PreviousSession(snap.Sessions, snap.Current)
	}

	names := make([]string, 0, len(snap.Sessions))
	for name := range snap.Sessions {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if ta, tb := snap.Sessions[a], snap.Sessions[b]; ta != tb {
			if ta > tb {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	})

	for _, name := range names {
		mark := " "
		switch {
		case snap.HasCurrent && name == snap.Current:
			mark = "*"
		case previous != "" && name == previous:
			mark = "-"
		}
		fmt.Fprintf(env.Stdout, "%s %s\t%d\n", mark, name, snap.Sessions[name])
	}
	return nil
}

// ShowConfig prints the effective configuration as YAML.
func ShowConfig(env *Env) error {
	data, err := yaml.Marshal(env.Config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(data)
	return err
}
