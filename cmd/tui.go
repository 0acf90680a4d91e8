package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist/internal/config"
	"github.com/nibzard/tasklist/internal/controller"
	"github.com/nibzard/tasklist/internal/logging"
	"github.com/nibzard/tasklist/internal/theme"
	"github.com/nibzard/tasklist/internal/ui"
)

func tuiCommand(ctx context.Context, cfg *config.Config) error {
	mode, err := theme.ParseMode(cfg.Theme)
	if err != nil {
		return storageErr(err)
	}
	if !ui.IsTTY(stdout) {
		return fmt.Errorf("tui requires a terminal; use a command such as ls (see tasklist help)")
	}

	// The screen owns the terminal, so logs go to a per-run file.
	logger := logging.Discard()
	runLog, err := logging.NewRunLogger(cfg.LogsDir())
	if err != nil {
		cliLogger(cfg).Warn("run log disabled", "err", err)
	} else {
		defer runLog.Close()
		logger = logging.New(runLog.Writer(), logging.OptionsFromConfig(cfg.LogLevel, cfg.LogFormat, true, cfg.LogCaller))
		logger.Info("starting", "version", Version, "backend", cfg.Backend, "data_dir", cfg.DataDir)
	}

	s, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore(s, logger)

	ctrl := controller.New(s, controller.WithLogger(logger))
	err = ui.Run(ctx, ctrl, ui.Options{
		Title:  cfg.Title,
		Theme:  mode,
		Logger: logger,
	})
	if err != nil {
		logger.Error("screen exited", "err", err)
		return err
	}
	logger.Info("exiting", "tasks", len(ctrl.Tasks()))
	return nil
}

type closer interface{ Close() error }

func closeStore(s closer, logger *log.Logger) {
	if err := s.Close(); err != nil {
		logger.Warn("close store", "err", err)
	}
}

func logsCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newSubFlagSet("logs")
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 50, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *n < 0 {
		return fmt.Errorf("-n must not be negative")
	}

	logPath, err := logging.FindLatestLog(cfg.LogsDir())
	if err != nil {
		return storageErr(fmt.Errorf("finding latest log: %w", err))
	}
	if logPath == "" {
		fmt.Fprintln(stdout, "No log files found.")
		return nil
	}

	fmt.Fprintf(stdout, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(stdout, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(stdout)

	return logging.TailLog(ctx, stdout, logPath, *n, *follow)
}
