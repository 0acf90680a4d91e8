package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/nibzard/tasklist/internal/config"
	"github.com/nibzard/tasklist/internal/logging"
)

// ErrDoctorFailed is returned when any doctor check fails.
var ErrDoctorFailed = errors.New("doctor checks failed")

func doctorCommand(ctx context.Context, cws *config.ConfigWithSources) error {
	cfg := cws.Config
	w := stdout

	fmt.Fprintln(w, "Tasklist Doctor")
	fmt.Fprintln(w, "===============")
	fmt.Fprintln(w)

	allOK := true

	fmt.Fprintln(w, "Config:")
	if len(cws.Files) == 0 {
		fmt.Fprintln(w, "  ⚠️  No config file (using defaults)")
	}
	for _, f := range cws.Files {
		fmt.Fprintf(w, "  ✅ Loaded %s\n", f)
	}
	fmt.Fprintf(w, "  ✅ Backend: %s\n", cfg.Backend)
	fmt.Fprintf(w, "  ✅ Theme: %s\n", cfg.Theme)
	if cfg.ValidateSchema {
		fmt.Fprintln(w, "  ✅ Validation: JSON Schema")
	} else {
		fmt.Fprintln(w, "  ⚠️  Validation: structural only")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Data directory: %s\n", cfg.DataDir)
	if info, err := os.Stat(cfg.DataDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(w, "  ⚠️  Not found (will be created on first use)")
		} else {
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if !info.IsDir() {
		fmt.Fprintln(w, "  ❌ Error: path is not a directory")
		allOK = false
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Storage (%s):\n", cfg.Backend)
	if !checkStorage(ctx, cws) {
		allOK = false
	}
	fmt.Fprintln(w)

	logDir := cfg.LogsDir()
	fmt.Fprintf(w, "Log directory: %s\n", logDir)
	if _, err := os.Stat(logDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(w, "  ⚠️  Not found (will be created on first run)")
		} else {
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else {
		fmt.Fprintln(w, "  ✅ OK")
		if latest, err := logging.FindLatestLog(logDir); err == nil && latest != "" {
			fmt.Fprintf(w, "  Latest: %s\n", latest)
		}
	}
	fmt.Fprintln(w)

	if !allOK {
		return storageErr(ErrDoctorFailed)
	}
	fmt.Fprintln(w, "All checks passed.")
	return nil
}

func checkStorage(ctx context.Context, cws *config.ConfigWithSources) bool {
	w := stdout
	s, err := openStore(ctx, cws.Config, cliLogger(cws.Config))
	if err != nil {
		fmt.Fprintf(w, "  ❌ Open: %v\n", err)
		return false
	}
	defer s.Close()
	fmt.Fprintln(w, "  ✅ Open")

	report, err := s.Inspect(ctx)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Read: %v\n", err)
		return false
	}
	if report.Location != "" {
		fmt.Fprintf(w, "  Location: %s\n", report.Location)
	}
	if !report.Present {
		fmt.Fprintf(w, "  ⚠️  %s not stored yet (starts empty)\n", report.Key)
		return true
	}

	for _, warning := range report.Warnings {
		fmt.Fprintf(w, "  ⚠️  %s\n", warning)
	}
	if !report.Valid() {
		fmt.Fprintln(w, "  ❌ Stored tasks are invalid and will load as an empty list:")
		for _, e := range report.Errors {
			fmt.Fprintf(w, "     - %v\n", e)
		}
		return false
	}
	fmt.Fprintf(w, "  ✅ Valid: %d tasks (%d open, %d done), %d bytes\n",
		report.Tasks, report.Open, report.Done, report.Bytes)
	if !report.UpdatedAt.IsZero() {
		fmt.Fprintf(w, "  Updated: %s\n", report.UpdatedAt.Local().Format(time.DateTime))
	}
	return true
}

func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := newSubFlagSet("config")
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	}

	if file := cws.GetConfigFile(); file != "" {
		fmt.Fprintf(stdout, "Config file: %s\n", file)
	} else {
		fmt.Fprintln(stdout, "Config file: (none)")
	}
	fmt.Fprintln(stdout)

	for _, field := range config.Fields() {
		fmt.Fprintf(stdout, "  %-16s = %-30q (%s)\n", field, cws.Config.Value(field), cws.Sources[field])
	}
	return nil
}
