// pattern: Imperative Shell
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	flag "github.com/spf13/pflag"

	"worktree/internal/cli"
	"worktree/internal/config"
	"worktree/internal/discovery"
	"worktree/internal/git"
	"worktree/internal/logging"
	"worktree/internal/pathutil"
	"worktree/internal/picker"
	"worktree/internal/process"
	"worktree/internal/tmux"
)

var version = "dev"

// options holds the parsed global flags.
type options struct {
	fs *flag.FlagSet

	directories string
	configPath  string
	sort        string
	picker      string
	timeout     string
	logLevel    string
	verbose     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is main without the process exit, returning the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	configPath := config.Path()
	if opts.configPath != "" {
		configPath = pathutil.Expand(opts.configPath)
	}

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Info: No config found at %s, using default config\n", configPath)
	}
	applyOverrides(&cfg, opts)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logProvider, closeLogs := setupLogging(cfg, opts.verbose, stderr)
	defer closeLogs()

	appLogger := logProvider.For("app")
	appLogger.Debug("starting", "version", version, "config", configPath, "directories", cfg.Directories, "sort", cfg.Sort)

	env, err := buildEnv(cfg, configPath, logProvider, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	app := cli.BuildApp(env)
	interactive, err := app.Execute(ctx, opts.fs.Args())
	if err == nil && interactive {
		err = cli.Pick(ctx, env)
	}

	if ctx.Err() != nil {
		appLogger.Debug("interrupted")
		return 130
	}
	if err != nil {
		appLogger.Error("command failed", "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// parseFlags parses the global flags. Parsing stops at the first non-flag
// argument so subcommands receive their own flags.
func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("worktree", flag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(stderr)

	opts := &options{fs: fs}
	fs.StringVarP(&opts.directories, "directories", "d", "", "comma-separated list of directories to list worktrees from")
	fs.StringVarP(&opts.configPath, "config", "c", "", "path to the config file (default: "+config.Path()+")")
	fs.StringVarP(&opts.sort, "sort", "s", "", "sort mode (tmux)")
	fs.StringVarP(&opts.picker, "picker", "p", "", "picker to use (fzf, builtin)")
	fs.StringVar(&opts.timeout, "timeout", "", "timeout for each git/tmux command, e.g. 5s")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "mirror logs to stderr")

	// Override Usage before Parse so --help uses the CLI app's help
	fs.Usage = func() {
		cli.NewApp(version, stderr).PrintHelp(stderr)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

// applyOverrides layers explicitly set flags over the loaded config.
func applyOverrides(cfg *config.Config, opts *options) {
	if opts.fs.Changed("directories") {
		cfg.Directories = config.SplitList(opts.directories)
	}
	if opts.fs.Changed("sort") {
		cfg.Sort = opts.sort
	}
	if opts.fs.Changed("picker") {
		cfg.Picker = opts.picker
	}
	if opts.fs.Changed("timeout") {
		cfg.TimeoutStr = opts.timeout
	}
	if opts.fs.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
}

// setupLogging opens the rotating log file. Logging is best-effort: when the
// file cannot be opened every logger is a no-op.
func setupLogging(cfg config.Config, verbose bool, stderr io.Writer) (logging.LoggerProvider, func()) {
	var console io.Writer
	if verbose {
		console = stderr
	}

	logManager, err := logging.NewManager(logging.Config{
		FilePath:   filepath.Join(config.StateDir(), "worktree.log"),
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Level:      cfg.LogLevel,
		Console:    console,
	})
	if err != nil {
		if verbose {
			fmt.Fprintf(stderr, "Warning: logging disabled: %v\n", err)
		}
		return logging.NopProvider{}, func() {}
	}
	return logManager, func() { _ = logManager.Close() }
}

// buildEnv wires the command environment from the final config.
func buildEnv(cfg config.Config, configPath string, logProvider logging.LoggerProvider, stdout, stderr io.Writer) (*cli.Env, error) {
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}

	run := process.WithTimeout(process.Logged(process.Output, logProvider.For("process")), timeout)

	gitClient := git.NewClient(run, logProvider.For("git"))
	scanner := discovery.NewScanner(gitClient,
		discovery.WithConcurrency(cfg.Concurrency),
		discovery.WithLogger(logProvider.For("discovery")),
	)
	tmuxClient := tmux.NewClientWithLogger(run, logProvider)

	p, err := picker.New(cfg.DetectedPicker(), cfg.Theme, logProvider.For("picker"))
	if err != nil {
		return nil, err
	}

	return &cli.Env{
		Version:    version,
		Config:     cfg,
		ConfigPath: configPath,
		Collector:  scanner,
		Sessions:   tmuxClient,
		Picker:     p,
		Stdout:     stdout,
		Stderr:     stderr,
		Logger:     logProvider.For("app"),
	}, nil
}
