package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tasklist/internal/controller"
	"github.com/nibzard/tasklist/internal/store"
	"github.com/nibzard/tasklist/internal/theme"
	"github.com/nibzard/tasklist/internal/todo"
)

// countingStore wraps a TaskStore and counts saves.
type countingStore struct {
	*store.TaskStore
	saves int
}

func (c *countingStore) Save(ctx context.Context, tasks todo.Collection) {
	c.saves++
	c.TaskStore.Save(ctx, tasks)
}

func newTestModel(t *testing.T, initial todo.Collection) (*model, *countingStore) {
	t.Helper()
	ctx := context.Background()
	ts := store.New(store.NewMemoryBackend(), nil, todo.ValidationOptions{Schema: true})
	if initial != nil {
		ts.Save(ctx, initial)
	}
	cs := &countingStore{TaskStore: ts}
	ids := 0
	ctrl := controller.New(cs, controller.WithIDFunc(func() string {
		ids++
		return "id" + strings.Repeat("x", ids)
	}))
	return newModel(ctx, ctrl, Options{Theme: theme.Dark}), cs
}

// loadReadyModel runs the load command and applies its result.
func loadReadyModel(t *testing.T, m *model) *model {
	t.Helper()
	return applyMsg(t, m, m.loadCmd()())
}

func applyMsg(t *testing.T, m *model, msg tea.Msg) *model {
	t.Helper()
	updated, _ := m.Update(msg)
	out, ok := updated.(*model)
	if !ok {
		t.Fatalf("expected *model, got %T", updated)
	}
	return out
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func typeText(t *testing.T, m *model, s string) *model {
	t.Helper()
	for _, r := range s {
		m = applyMsg(t, m, keyRunes(string(r)))
	}
	return m
}

func TestModelLoading(t *testing.T) {
	m, _ := newTestModel(t, todo.Collection{{ID: "1", Text: "Existing"}})

	if !strings.Contains(m.View(), "Loading...") {
		t.Error("expected Loading... before load completes")
	}

	// Enter before load is ignored and keeps the typed text.
	m = typeText(t, m, "early")
	m = applyMsg(t, m, keyType(tea.KeyEnter))
	if m.ctrl.Loaded() {
		t.Fatal("controller should not be loaded yet")
	}
	if m.input.Value() != "early" {
		t.Errorf("input: got %q", m.input.Value())
	}

	m = loadReadyModel(t, m)
	view := m.View()
	if strings.Contains(view, "Loading...") {
		t.Error("Loading... should disappear after load")
	}
	if !strings.Contains(view, "Existing") {
		t.Errorf("expected loaded task in view, got:\n%s", view)
	}
}

func TestModelAdd(t *testing.T) {
	m, cs := newTestModel(t, nil)
	m = loadReadyModel(t, m)

	m = typeText(t, m, "  Buy milk ")
	m = applyMsg(t, m, keyType(tea.KeyEnter))

	tasks := m.ctrl.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "Buy milk" || tasks[0].Completed {
		t.Fatalf("tasks: got %v", tasks)
	}
	if m.input.Value() != "" {
		t.Errorf("input should be cleared, got %q", m.input.Value())
	}
	if cs.saves != 1 {
		t.Errorf("saves: got %d, want 1", cs.saves)
	}

	// Empty submit is a no-op.
	m = typeText(t, m, "   ")
	m = applyMsg(t, m, keyType(tea.KeyEnter))
	if len(m.ctrl.Tasks()) != 1 || cs.saves != 1 {
		t.Errorf("empty add changed state: tasks=%v saves=%d", m.ctrl.Tasks(), cs.saves)
	}
}

func TestModelToggleDeleteNavigation(t *testing.T) {
	m, cs := newTestModel(t, todo.Collection{
		{ID: "1", Text: "one"},
		{ID: "2", Text: "two"},
		{ID: "3", Text: "three"},
	})
	m = loadReadyModel(t, m)
	m = applyMsg(t, m, keyType(tea.KeyEsc))
	if m.focus != focusList {
		t.Fatal("esc should move focus to the list")
	}

	m = applyMsg(t, m, keyRunes("j"))
	m = applyMsg(t, m, keyType(tea.KeySpace))
	if !m.ctrl.Tasks()[1].Completed {
		t.Errorf("task two should be completed: %v", m.ctrl.Tasks())
	}

	m = applyMsg(t, m, keyRunes("x"))
	if m.ctrl.Tasks()[1].Completed {
		t.Error("x should toggle back")
	}

	m = applyMsg(t, m, keyRunes("j"))
	m = applyMsg(t, m, keyRunes("j"))
	if m.cursor != 2 {
		t.Errorf("cursor should stop at the last row, got %d", m.cursor)
	}
	m = applyMsg(t, m, keyRunes("d"))
	tasks := m.ctrl.Tasks()
	if len(tasks) != 2 || tasks[1].ID != "2" {
		t.Fatalf("after delete: %v", tasks)
	}
	if m.cursor != 1 {
		t.Errorf("cursor should clamp to %d, got %d", 1, m.cursor)
	}
	if cs.saves != 3 {
		t.Errorf("saves: got %d, want 3", cs.saves)
	}

	m = applyMsg(t, m, keyRunes("k"))
	m = applyMsg(t, m, keyRunes("k"))
	if m.cursor != 0 {
		t.Errorf("cursor should stop at 0, got %d", m.cursor)
	}
}

func TestModelEdit(t *testing.T) {
	m, cs := newTestModel(t, todo.Collection{{ID: "1", Text: "old", Completed: true}})
	m = loadReadyModel(t, m)
	m = applyMsg(t, m, keyType(tea.KeyEsc))

	m = applyMsg(t, m, keyRunes("e"))
	if m.editing != "1" || m.focus != focusInput {
		t.Fatalf("expected edit mode for task 1, editing=%q", m.editing)
	}
	if m.input.Value() != "old" {
		t.Errorf("edit input: got %q, want old", m.input.Value())
	}

	m = applyMsg(t, m, keyType(tea.KeyBackspace))
	m = typeText(t, m, "LD")
	m = applyMsg(t, m, keyType(tea.KeyEnter))

	task := m.ctrl.Tasks()[0]
	if task.Text != "olLD" || !task.Completed {
		t.Errorf("after edit: %+v", task)
	}
	if m.editing != "" || m.focus != focusList {
		t.Error("enter should leave edit mode")
	}
	if cs.saves != 1 {
		t.Errorf("saves: got %d, want 1", cs.saves)
	}
}

func TestModelEditRejectsEmpty(t *testing.T) {
	m, cs := newTestModel(t, todo.Collection{{ID: "1", Text: "keep me"}})
	m = loadReadyModel(t, m)
	m = applyMsg(t, m, keyType(tea.KeyEsc))

	m = applyMsg(t, m, keyRunes("e"))
	for range "keep me" {
		m = applyMsg(t, m, keyType(tea.KeyBackspace))
	}
	m = typeText(t, m, "  ")
	m = applyMsg(t, m, keyType(tea.KeyEnter))

	if got := m.ctrl.Tasks()[0].Text; got != "keep me" {
		t.Errorf("text: got %q, want keep me", got)
	}
	if cs.saves != 0 {
		t.Errorf("saves: got %d, want 0", cs.saves)
	}
	if !strings.Contains(m.status, "empty") {
		t.Errorf("status: got %q", m.status)
	}
}

func TestModelEditCancel(t *testing.T) {
	m, cs := newTestModel(t, todo.Collection{{ID: "1", Text: "same"}})
	m = loadReadyModel(t, m)
	m = applyMsg(t, m, keyType(tea.KeyEsc))

	m = applyMsg(t, m, keyRunes("e"))
	m = typeText(t, m, "!!!")
	m = applyMsg(t, m, keyType(tea.KeyEsc))

	if m.ctrl.Tasks()[0].Text != "same" || cs.saves != 0 {
		t.Errorf("cancelled edit changed state: %v saves=%d", m.ctrl.Tasks(), cs.saves)
	}
	if m.editing != "" {
		t.Error("esc should leave edit mode")
	}
}

func TestModelThemeToggle(t *testing.T) {
	m, cs := newTestModel(t, nil)
	m = loadReadyModel(t, m)
	m = applyMsg(t, m, keyType(tea.KeyEsc))

	if m.mode != theme.Dark {
		t.Fatalf("start mode: got %q", m.mode)
	}
	m = applyMsg(t, m, keyRunes("t"))
	if m.mode != theme.Light || m.styles.Mode != theme.Light {
		t.Errorf("after toggle: mode=%q styles=%q", m.mode, m.styles.Mode)
	}
	if !strings.Contains(m.View(), theme.Light.Glyph()) {
		t.Error("view should show the light indicator")
	}
	m = applyMsg(t, m, keyRunes("t"))
	if m.mode != theme.Dark {
		t.Errorf("second toggle: got %q", m.mode)
	}
	if cs.saves != 0 {
		t.Error("theme toggle should not save tasks")
	}
}

func TestModelTypingInInputDoesNotTriggerShortcuts(t *testing.T) {
	m, cs := newTestModel(t, todo.Collection{{ID: "1", Text: "one"}})
	m = loadReadyModel(t, m)

	m = typeText(t, m, "xdtq")
	if m.input.Value() != "xdtq" {
		t.Errorf("input: got %q", m.input.Value())
	}
	if cs.saves != 0 || m.mode != theme.Dark {
		t.Error("letters typed into the input should not act as shortcuts")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)

	_, cmd := m.Update(keyType(tea.KeyCtrlC))
	if cmd == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}

	m = applyMsg(t, m, keyType(tea.KeyEsc))
	_, cmd = m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q in the list should quit")
	}
}

func TestModelHelpToggle(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = applyMsg(t, m, keyType(tea.KeyEsc))

	m = applyMsg(t, m, keyRunes("?"))
	if !m.help.ShowAll {
		t.Error("? should show full help")
	}
	if !strings.Contains(m.View(), "dark/light") {
		t.Error("full help should list the theme key")
	}
}

func TestModelEmptyView(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = loadReadyModel(t, m)
	m = applyMsg(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	view := m.View()
	for _, want := range []string{DefaultTitle, "No tasks yet.", "Add a task"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModelCompletedRowRendering(t *testing.T) {
	m, _ := newTestModel(t, todo.Collection{
		{ID: "1", Text: "open one"},
		{ID: "2", Text: "done one", Completed: true},
	})
	m = loadReadyModel(t, m)

	view := m.View()
	if !strings.Contains(view, "[ ]") || !strings.Contains(view, "[x]") {
		t.Errorf("expected both checkbox states:\n%s", view)
	}
	if !strings.Contains(view, "1 open, 1 done") {
		t.Errorf("expected counts line:\n%s", view)
	}
}

func TestIsTTY(t *testing.T) {
	var b strings.Builder
	if IsTTY(&b) {
		t.Error("a strings.Builder is not a terminal")
	}
}
