// Package cmd implements the CLI command structure for tasklist.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist/internal/config"
	"github.com/nibzard/tasklist/internal/controller"
	"github.com/nibzard/tasklist/internal/logging"
	"github.com/nibzard/tasklist/internal/store"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Output streams. Tests swap these to capture command output.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Exit codes returned by ExitCode.
const (
	ExitOK        = 0
	ExitUser      = 1
	ExitStorage   = 2
	ExitInterrupt = 130
)

// exitError attaches an exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func storageErr(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: ExitStorage, err: err}
}

// ExitCode maps an error returned by Run to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitUser
}

// Run executes the tasklist CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasklist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return storageErr(fmt.Errorf("loading config: %w", err))
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// No args means the interactive screen.
	subcommand := "tui"
	rest := fs.Args()
	if len(rest) > 0 {
		subcommand = rest[0]
		rest = rest[1:]
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cws.Config)
	case "ls", "list":
		return lsCommand(ctx, cws.Config, rest)
	case "add":
		return addCommand(ctx, cws.Config, rest)
	case "toggle":
		return toggleCommand(ctx, cws.Config, rest)
	case "rm", "remove":
		return rmCommand(ctx, cws.Config, rest)
	case "edit":
		return editCommand(ctx, cws.Config, rest)
	case "export":
		return exportCommand(ctx, cws.Config, rest)
	case "doctor":
		return doctorCommand(ctx, cws)
	case "config":
		return configCommand(cws, rest)
	case "logs", "tail":
		return logsCommand(ctx, cws.Config, rest)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// cliLogger logs to stderr at the configured level.
func cliLogger(cfg *config.Config) *log.Logger {
	return logging.New(stderr, logging.OptionsFromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller))
}

func openStore(ctx context.Context, cfg *config.Config, logger *log.Logger) (*store.TaskStore, error) {
	s, err := store.Open(ctx, store.Options{
		Backend:        cfg.Backend,
		DataDir:        cfg.DataDir,
		ValidateSchema: cfg.ValidateSchema,
		Logger:         logger,
	})
	if err != nil {
		return nil, storageErr(err)
	}
	return s, nil
}

// withController opens the store, loads the collection and hands an
// initialized controller to fn. The store is closed when fn returns.
func withController(ctx context.Context, cfg *config.Config, fn func(*controller.Controller) error) error {
	logger := cliLogger(cfg)
	s, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore(s, logger)

	ctrl := controller.New(s, controller.WithLogger(logger))
	if _, err := ctrl.Initialize(ctx); err != nil {
		return err
	}
	return fn(ctrl)
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tasklist - a local to-do list")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasklist [global options] [command] [args]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                    Open the interactive list (default)")
	fmt.Fprintln(w, "  ls                     List tasks")
	fmt.Fprintln(w, "  add <text...>          Add a task")
	fmt.Fprintln(w, "  toggle <ref>           Mark a task done or open")
	fmt.Fprintln(w, "  edit <ref> <text...>   Replace a task's text")
	fmt.Fprintln(w, "  rm <ref>               Delete a task")
	fmt.Fprintln(w, "  export                 Write all tasks to stdout")
	fmt.Fprintln(w, "  doctor                 Check configuration and storage")
	fmt.Fprintln(w, "  config                 Show effective configuration")
	fmt.Fprintln(w, "  logs                   Show the latest run log")
	fmt.Fprintln(w, "  version                Show version")
	fmt.Fprintln(w, "  help                   Show this help")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "A <ref> is a task id or its position in ls output.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "ls Options:")
	fmt.Fprintln(w, "  -all                   Show every task (default)")
	fmt.Fprintln(w, "  -open                  Show open tasks only")
	fmt.Fprintln(w, "  -done                  Show completed tasks only")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "export Options:")
	fmt.Fprintln(w, "  -format <fmt>          json, yaml or toml (default json)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "config Options:")
	fmt.Fprintln(w, "  -example               Print an example config file")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "logs Options:")
	fmt.Fprintln(w, "  -f, --follow           Follow log output")
	fmt.Fprintln(w, "  -n <lines>             Number of lines to show (default 50)")
}

func versionCommand() error {
	fmt.Fprintf(stdout, "tasklist version %s\n", Version)
	return nil
}
