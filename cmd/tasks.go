package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/nibzard/tasklist/internal/config"
	"github.com/nibzard/tasklist/internal/controller"
	"github.com/nibzard/tasklist/internal/todo"
)

// ErrTaskNotFound is returned when a ref matches no task.
var ErrTaskNotFound = errors.New("task not found")

// ErrEmptyText is returned by edit when the new text is blank.
var ErrEmptyText = errors.New("task text cannot be empty")

const addAttempts = 3

// resolveRef finds a task by exact id, falling back to a 1-based position.
func resolveRef(tasks todo.Collection, ref string) (int, todo.Task, error) {
	ref = strings.TrimSpace(ref)
	if i := tasks.Index(ref); i >= 0 {
		return i, tasks[i], nil
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(tasks) {
		return n - 1, tasks[n-1], nil
	}
	return -1, todo.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, ref)
}

func formatTask(pos int, task todo.Task) string {
	box := "[ ]"
	if task.Completed {
		box = "[x]"
	}
	return fmt.Sprintf("%3d. %s %s  (%s)", pos+1, box, task.Text, task.ID)
}

func newSubFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func lsCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newSubFlagSet("ls")
	all := fs.Bool("all", false, "Show every task")
	open := fs.Bool("open", false, "Show open tasks only")
	done := fs.Bool("done", false, "Show completed tasks only")
	if err := fs.Parse(args); err != nil {
		return err
	}
	selected := 0
	for _, b := range []bool{*all, *open, *done} {
		if b {
			selected++
		}
	}
	if selected > 1 {
		return fmt.Errorf("choose one of -all, -open or -done")
	}

	return withController(ctx, cfg, func(ctrl *controller.Controller) error {
		tasks := ctrl.Tasks()
		shown := 0
		// Positions always refer to the full list so they stay valid refs.
		for i, task := range tasks {
			if (*open && task.Completed) || (*done && !task.Completed) {
				continue
			}
			fmt.Fprintln(stdout, formatTask(i, task))
			shown++
		}
		if shown == 0 {
			fmt.Fprintln(stdout, "No tasks.")
		}
		openCount, doneCount := tasks.Counts()
		fmt.Fprintf(stdout, "\n%d open, %d done\n", openCount, doneCount)
		return nil
	})
}

func addCommand(ctx context.Context, cfg *config.Config, args []string) error {
	text := strings.Join(args, " ")
	if todo.NormalizeText(text) == "" {
		fmt.Fprintln(stdout, "nothing to add")
		return nil
	}

	return withController(ctx, cfg, func(ctrl *controller.Controller) error {
		task, err := ctrl.Add(ctx, text)
		// Ids are millisecond timestamps; a collision clears once the clock moves.
		for attempt := 1; errors.Is(err, controller.ErrDuplicateID) && attempt < addAttempts; attempt++ {
			time.Sleep(time.Millisecond)
			task, err = ctrl.Add(ctx, text)
		}
		if err != nil {
			return err
		}
		tasks := ctrl.Tasks()
		fmt.Fprintf(stdout, "Added %s\n", strings.TrimSpace(formatTask(tasks.Index(task.ID), task)))
		return nil
	})
}

func toggleCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: tasklist toggle <ref>")
	}

	return withController(ctx, cfg, func(ctrl *controller.Controller) error {
		pos, task, err := resolveRef(ctrl.Tasks(), args[0])
		if err != nil {
			return err
		}
		if _, err := ctrl.Toggle(ctx, task.ID); err != nil {
			return err
		}
		updated, _ := ctrl.Tasks().Get(task.ID)
		fmt.Fprintln(stdout, strings.TrimSpace(formatTask(pos, updated)))
		return nil
	})
}

func rmCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: tasklist rm <ref>")
	}

	return withController(ctx, cfg, func(ctrl *controller.Controller) error {
		_, task, err := resolveRef(ctrl.Tasks(), args[0])
		if err != nil {
			return err
		}
		if _, err := ctrl.Delete(ctx, task.ID); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Removed %q\n", task.Text)
		return nil
	})
}

func editCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: tasklist edit <ref> <text...>")
	}
	text := strings.Join(args[1:], " ")
	if todo.NormalizeText(text) == "" {
		return ErrEmptyText
	}

	return withController(ctx, cfg, func(ctrl *controller.Controller) error {
		pos, task, err := resolveRef(ctrl.Tasks(), args[0])
		if err != nil {
			return err
		}
		if _, err := ctrl.Edit(ctx, task.ID, text); err != nil {
			return err
		}
		updated, _ := ctrl.Tasks().Get(task.ID)
		fmt.Fprintln(stdout, strings.TrimSpace(formatTask(pos, updated)))
		return nil
	})
}

// exportDoc wraps the collection because TOML documents must be tables.
type exportDoc struct {
	Tasks todo.Collection `toml:"tasks"`
}

func exportCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newSubFlagSet("export")
	format := fs.String("format", "json", "Output format: json, yaml or toml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var encode func(todo.Collection) error
	switch strings.ToLower(*format) {
	case "json":
		encode = func(tasks todo.Collection) error {
			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(tasks)
		}
	case "yaml", "yml":
		encode = func(tasks todo.Collection) error {
			enc := yaml.NewEncoder(stdout)
			enc.SetIndent(2)
			if err := enc.Encode(tasks); err != nil {
				return err
			}
			return enc.Close()
		}
	case "toml":
		encode = func(tasks todo.Collection) error {
			return toml.NewEncoder(stdout).Encode(exportDoc{Tasks: tasks})
		}
	default:
		return fmt.Errorf("unknown export format: %s", *format)
	}

	return withController(ctx, cfg, func(ctrl *controller.Controller) error {
		if err := encode(ctrl.Tasks().Clone()); err != nil {
			return fmt.Errorf("export %s: %w", *format, err)
		}
		return nil
	})
}
