package store

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist/internal/logging"
	"github.com/nibzard/tasklist/internal/todo"
)

// TasksKey is the fixed key the collection is stored under.
const TasksKey = "@tasks"

// Options configures a TaskStore.
type Options struct {
	// Backend is one of "file", "sqlite" or "memory".
	Backend string
	// DataDir roots the file and sqlite backends.
	DataDir string
	// ValidateSchema checks stored blobs against the JSON Schema on load.
	// When false only the structural checks run.
	ValidateSchema bool
	// Logger receives swallowed load and save failures. Nil discards them.
	Logger *log.Logger
}

// TaskStore reads and writes the whole task collection.
//
// Load and Save never return errors: a broken or missing value loads as an
// empty collection and a failed write is logged and dropped.
type TaskStore struct {
	backend Backend
	logger  *log.Logger
	opts    todo.ValidationOptions
}

// Open opens the configured backend and wraps it in a TaskStore.
func Open(ctx context.Context, opts Options) (*TaskStore, error) {
	backend, err := OpenBackend(ctx, opts.Backend, opts.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", opts.Backend, err)
	}
	return New(backend, opts.Logger, todo.ValidationOptions{Schema: opts.ValidateSchema}), nil
}

// New wraps an already open backend.
func New(backend Backend, logger *log.Logger, opts todo.ValidationOptions) *TaskStore {
	if logger == nil {
		logger = logging.Discard()
	}
	return &TaskStore{
		backend: backend,
		logger:  logger.With("backend", backend.Name()),
		opts:    opts,
	}
}

// Backend returns the underlying backend.
func (s *TaskStore) Backend() Backend { return s.backend }

// Close closes the backend.
func (s *TaskStore) Close() error {
	return s.backend.Close()
}

// Load reads the collection. Missing, unreadable or invalid values all
// yield an empty collection.
func (s *TaskStore) Load(ctx context.Context) todo.Collection {
	blob, ok, err := s.backend.Get(ctx, TasksKey)
	if err != nil {
		s.logger.Error("load tasks", "key", TasksKey, "err", err)
		return todo.Collection{}
	}
	if !ok {
		s.logger.Debug("no stored tasks", "key", TasksKey)
		return todo.Collection{}
	}

	tasks, err := todo.DecodeWith(blob, s.opts)
	if err != nil {
		s.logger.Warn("discarding stored tasks", "key", TasksKey, "bytes", len(blob), "err", err)
		return todo.Collection{}
	}
	s.logger.Debug("loaded tasks", "count", len(tasks))
	return tasks
}

// Save writes the full collection, replacing any prior value. Failures are
// logged and not retried.
func (s *TaskStore) Save(ctx context.Context, tasks todo.Collection) {
	blob, err := todo.Encode(tasks)
	if err != nil {
		s.logger.Error("encode tasks", "err", err)
		return
	}
	if err := s.backend.Set(ctx, TasksKey, blob); err != nil {
		s.logger.Error("save tasks", "key", TasksKey, "err", err)
		return
	}
	s.logger.Debug("saved tasks", "count", len(tasks), "bytes", len(blob))
}

// Report describes the stored value without repairing or discarding it.
type Report struct {
	Backend    string
	Location   string
	Key        string
	Present    bool
	Bytes      int
	Tasks      int
	Open       int
	Done       int
	UpdatedAt  time.Time
	UsedSchema bool
	Errors     []error
	Warnings   []string
}

// Valid reports whether the stored value would load without being discarded.
func (r Report) Valid() bool {
	return len(r.Errors) == 0
}

// Inspect reports on the stored value. Unlike Load it returns backend errors.
func (s *TaskStore) Inspect(ctx context.Context) (Report, error) {
	report := Report{
		Backend:  s.backend.Name(),
		Location: location(s.backend),
		Key:      TasksKey,
	}

	blob, ok, err := s.backend.Get(ctx, TasksKey)
	if err != nil {
		return report, fmt.Errorf("read %s: %w", TasksKey, err)
	}
	if !ok {
		return report, nil
	}
	report.Present = true
	report.Bytes = len(blob)

	if ts, hasTime := s.backend.(timestamped); hasTime {
		if at, found, err := ts.UpdatedAt(ctx, TasksKey); err == nil && found {
			report.UpdatedAt = at
		}
	}

	result := todo.Validate([]byte(blob), s.opts)
	report.UsedSchema = result.UsedSchema
	report.Errors = result.Errors
	report.Warnings = result.Warnings
	if !result.Valid {
		return report, nil
	}

	tasks, err := todo.DecodeWith(blob, s.opts)
	if err != nil {
		report.Errors = append(report.Errors, err)
		return report, nil
	}
	report.Tasks = len(tasks)
	report.Open, report.Done = tasks.Counts()
	return report, nil
}

// timestamped backends can tell when a key was last written.
type timestamped interface {
	UpdatedAt(ctx context.Context, key string) (time.Time, bool, error)
}

func location(b Backend) string {
	switch v := b.(type) {
	case *FileBackend:
		return v.Path(TasksKey)
	case *SQLiteBackend:
		return v.Path()
	default:
		return b.Name()
	}
}
