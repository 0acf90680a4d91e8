// Package controller owns the in-memory task collection for a session and
// persists it after every accepted change.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist/internal/logging"
	"github.com/nibzard/tasklist/internal/todo"
)

var (
	// ErrNotInitialized is returned by mutations called before Initialize.
	ErrNotInitialized = errors.New("task list not initialized")
	// ErrAlreadyInitialized is returned by a second call to Initialize.
	ErrAlreadyInitialized = errors.New("task list already initialized")
	// ErrDuplicateID is returned when a generated id is already in use.
	ErrDuplicateID = errors.New("generated task id already exists")
)

// Store loads and saves the whole collection.
type Store interface {
	Load(ctx context.Context) todo.Collection
	Save(ctx context.Context, tasks todo.Collection)
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock used for new task ids.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.newID = todo.TimestampIDs(now)
	}
}

// WithIDFunc replaces id generation entirely.
func WithIDFunc(fn todo.IDFunc) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller applies add, toggle, delete and edit to the current collection.
// It is safe for use from multiple goroutines; saves happen in mutation order.
type Controller struct {
	mu     sync.Mutex
	store  Store
	tasks  todo.Collection
	loaded bool
	newID  todo.IDFunc
	logger *log.Logger
}

// New returns a controller backed by store. Call Initialize before mutating.
func New(store Store, opts ...Option) *Controller {
	c := &Controller{
		store:  store,
		tasks:  todo.Collection{},
		newID:  todo.TimestampIDs(time.Now),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize loads the collection from the store. It does not save.
func (c *Controller) Initialize(ctx context.Context) (todo.Collection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.tasks, ErrAlreadyInitialized
	}
	tasks := c.store.Load(ctx)
	if tasks == nil {
		tasks = todo.Collection{}
	}
	c.tasks = tasks
	c.loaded = true
	c.logger.Debug("initialized", "count", len(tasks))
	return c.tasks, nil
}

// Loaded reports whether Initialize has completed.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Tasks returns the current collection. Callers must not modify it.
func (c *Controller) Tasks() todo.Collection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tasks
}

// Add appends a new open task. Text that is empty after trimming is ignored
// and nothing is saved. The returned task is zero when nothing was added.
func (c *Controller) Add(ctx context.Context, rawText string) (todo.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return todo.Task{}, ErrNotInitialized
	}
	if todo.NormalizeText(rawText) == "" {
		return todo.Task{}, nil
	}

	id := c.newID()
	if c.tasks.Has(id) {
		return todo.Task{}, fmt.Errorf("add %q: %w: %s", todo.NormalizeText(rawText), ErrDuplicateID, id)
	}

	next, _ := todo.Add(c.tasks, id, rawText)
	c.commit(ctx, "add", next)
	task, _ := next.Get(id)
	return task, nil
}

// Toggle flips the completed flag of the task with id. An unknown id leaves
// the collection unchanged; the collection is saved either way.
func (c *Controller) Toggle(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return false, ErrNotInitialized
	}
	next, changed := todo.Toggle(c.tasks, id)
	c.commit(ctx, "toggle", next)
	return changed, nil
}

// Delete removes the task with id. An unknown id leaves the collection
// unchanged; the collection is saved either way.
func (c *Controller) Delete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return false, ErrNotInitialized
	}
	next, changed := todo.Delete(c.tasks, id)
	c.commit(ctx, "delete", next)
	return changed, nil
}

// Edit replaces the text of the task with id. Text that is empty after
// trimming is rejected: the task keeps its text and nothing is saved.
func (c *Controller) Edit(ctx context.Context, id, rawText string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return false, ErrNotInitialized
	}
	if todo.NormalizeText(rawText) == "" {
		c.logger.Debug("edit rejected: empty text", "id", id)
		return false, nil
	}
	next, changed := todo.Edit(c.tasks, id, rawText)
	c.commit(ctx, "edit", next)
	return changed, nil
}

// commit installs next as the current collection and saves it.
// Callers hold c.mu.
func (c *Controller) commit(ctx context.Context, op string, next todo.Collection) {
	c.tasks = next
	c.store.Save(ctx, next)
	c.logger.Debug(op, "count", len(next))
}
