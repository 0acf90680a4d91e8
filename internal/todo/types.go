package todo

import (
	"strconv"
	"strings"
	"time"
)

// Task represents a single entry in the list.
type Task struct {
	ID        string `json:"id" yaml:"id" toml:"id"`
	Text      string `json:"text" yaml:"text" toml:"text"`
	Completed bool   `json:"completed" yaml:"completed" toml:"completed"`
}

// IsZero returns true if the task is empty (has no ID).
func (t *Task) IsZero() bool {
	return t.ID == ""
}

// Collection is the ordered list of tasks. Order is insertion order.
type Collection []Task

// Clone returns a copy that shares no backing array with c.
func (c Collection) Clone() Collection {
	if c == nil {
		return Collection{}
	}
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// Index returns the position of the task with the given id, or -1.
func (c Collection) Index(id string) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns the task with the given id.
func (c Collection) Get(id string) (Task, bool) {
	if i := c.Index(id); i >= 0 {
		return c[i], true
	}
	return Task{}, false
}

// Has reports whether a task with the given id exists.
func (c Collection) Has(id string) bool {
	return c.Index(id) >= 0
}

// Counts returns the number of open and completed tasks.
func (c Collection) Counts() (open, done int) {
	for _, t := range c {
		if t.Completed {
			done++
		} else {
			open++
		}
	}
	return open, done
}

// Equal reports whether two collections hold the same tasks in the same order.
func (c Collection) Equal(other Collection) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// NormalizeText trims surrounding whitespace from user input and replaces
// invalid UTF-8 with U+FFFD, so the stored text equals the text in memory.
func NormalizeText(raw string) string {
	return strings.TrimSpace(strings.ToValidUTF8(raw, "\uFFFD"))
}

// Add appends a new open task with the trimmed text.
// Empty text leaves the collection unchanged.
func Add(c Collection, id, rawText string) (Collection, bool) {
	text := NormalizeText(rawText)
	if text == "" {
		return c, false
	}
	next := make(Collection, len(c), len(c)+1)
	copy(next, c)
	next = append(next, Task{ID: id, Text: text, Completed: false})
	return next, true
}

// Toggle flips the completed flag of the task with the given id.
func Toggle(c Collection, id string) (Collection, bool) {
	i := c.Index(id)
	if i < 0 {
		return c, false
	}
	next := c.Clone()
	next[i].Completed = !next[i].Completed
	return next, true
}

// Delete removes the task with the given id, keeping the order of the rest.
func Delete(c Collection, id string) (Collection, bool) {
	i := c.Index(id)
	if i < 0 {
		return c, false
	}
	next := make(Collection, 0, len(c)-1)
	next = append(next, c[:i]...)
	next = append(next, c[i+1:]...)
	return next, true
}

// Edit replaces the text of the task with the given id.
// Text that is empty after trimming is rejected and the task keeps its text.
func Edit(c Collection, id, rawText string) (Collection, bool) {
	text := NormalizeText(rawText)
	if text == "" {
		return c, false
	}
	i := c.Index(id)
	if i < 0 {
		return c, false
	}
	next := c.Clone()
	next[i].Text = text
	return next, true
}

// IDFunc produces a new task id.
type IDFunc func() string

// TimestampIDs returns an IDFunc that formats the clock's Unix time in
// milliseconds. Two calls within the same millisecond return the same id.
func TimestampIDs(now func() time.Time) IDFunc {
	if now == nil {
		now = time.Now
	}
	return func() string {
		return strconv.FormatInt(now().UnixMilli(), 10)
	}
}
