// Package ui is the interactive task list screen.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist/internal/controller"
	"github.com/nibzard/tasklist/internal/logging"
	"github.com/nibzard/tasklist/internal/theme"
	"github.com/nibzard/tasklist/internal/todo"
)

// DefaultTitle is shown above the list when none is configured.
const DefaultTitle = "My Tasks"

// Options configures the screen.
type Options struct {
	Title string
	// Theme is the starting palette. System is resolved against the
	// terminal background when the screen starts.
	Theme  theme.Mode
	Logger *log.Logger
}

// Run starts the screen and blocks until the user quits or ctx is done.
func Run(ctx context.Context, ctrl *controller.Controller, opts Options) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	if opts.Theme == theme.System || opts.Theme == "" {
		opts.Theme = theme.System.Resolve(lipgloss.HasDarkBackground())
	}

	model := newModel(ctx, ctrl, opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

type focusState int

const (
	focusList focusState = iota
	focusInput
)

type model struct {
	ctx    context.Context
	ctrl   *controller.Controller
	logger *log.Logger

	title  string
	mode   theme.Mode
	styles theme.Styles
	keys   keyMap
	help   help.Model
	input  textinput.Model

	focus   focusState
	editing string // id of the task being edited, empty when adding
	cursor  int
	loaded  bool
	status  string
	isError bool
	width   int
}

// loadedMsg carries the result of the initial load.
type loadedMsg struct {
	tasks todo.Collection
	err   error
}

func newModel(ctx context.Context, ctrl *controller.Controller, opts Options) *model {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Theme != theme.Light {
		opts.Theme = theme.Dark
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	h := help.New()
	h.ShowAll = false

	in := textinput.New()
	in.Prompt = "+ "
	in.Placeholder = "Add a task"
	in.CharLimit = 500
	in.Focus()

	m := &model{
		ctx:    ctx,
		ctrl:   ctrl,
		logger: opts.Logger,
		title:  opts.Title,
		keys:   newKeyMap(),
		help:   h,
		input:  in,
		focus:  focusInput,
	}
	m.applyTheme(opts.Theme)
	return m
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), textinput.Blink)
}

func (m *model) loadCmd() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		tasks, err := ctrl.Initialize(ctx)
		return loadedMsg{tasks: tasks, err: err}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-12, 10)
		return m, nil
	case loadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.setError("load", msg.err)
		}
		m.clampCursor()
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.forceQuit) {
			return m, tea.Quit
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.theme):
		m.applyTheme(m.mode.Toggle())
	case key.Matches(msg, m.keys.up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.focus):
		return m, m.startAdd()
	}

	if !m.loaded {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.toggle):
		if task, ok := m.current(); ok {
			m.clearStatus()
			if _, err := m.ctrl.Toggle(m.ctx, task.ID); err != nil {
				m.setError("toggle", err)
			}
		}
	case key.Matches(msg, m.keys.remove):
		if task, ok := m.current(); ok {
			m.clearStatus()
			if _, err := m.ctrl.Delete(m.ctx, task.ID); err != nil {
				m.setError("delete", err)
			}
			m.clampCursor()
		}
	case key.Matches(msg, m.keys.edit):
		if task, ok := m.current(); ok {
			return m, m.startEdit(task)
		}
	}
	return m, nil
}

func (m *model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.cancel):
		m.stopInput()
		return m, nil
	case key.Matches(msg, m.keys.inputUp):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.inputDown):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, m.keys.submit):
		if !m.loaded {
			return m, nil
		}
		if m.editing != "" {
			m.commitEdit()
		} else {
			m.commitAdd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) commitAdd() {
	m.clearStatus()
	task, err := m.ctrl.Add(m.ctx, m.input.Value())
	if err != nil {
		m.setError("add", err)
		return
	}
	if task.IsZero() {
		return
	}
	m.input.Reset()
	m.cursor = len(m.ctrl.Tasks()) - 1
}

func (m *model) commitEdit() {
	id := m.editing
	m.clearStatus()
	changed, err := m.ctrl.Edit(m.ctx, id, m.input.Value())
	switch {
	case err != nil:
		m.setError("edit", err)
	case !changed && todo.NormalizeText(m.input.Value()) == "":
		m.status = "Task text cannot be empty; edit discarded"
	}
	m.stopInput()
}

func (m *model) startAdd() tea.Cmd {
	m.editing = ""
	m.focus = focusInput
	m.input.Prompt = "+ "
	m.input.Placeholder = "Add a task"
	m.input.Reset()
	return m.input.Focus()
}

func (m *model) startEdit(task todo.Task) tea.Cmd {
	m.editing = task.ID
	m.focus = focusInput
	m.input.Prompt = "✎ "
	m.input.Placeholder = ""
	m.input.SetValue(task.Text)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *model) stopInput() {
	m.editing = ""
	m.focus = focusList
	m.input.Prompt = "+ "
	m.input.Placeholder = "Add a task"
	m.input.Reset()
	m.input.Blur()
}

func (m *model) current() (todo.Task, bool) {
	tasks := m.ctrl.Tasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return todo.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *model) clampCursor() {
	n := len(m.ctrl.Tasks())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) applyTheme(mode theme.Mode) {
	m.mode = mode
	m.styles = theme.New(mode)
	m.input.PlaceholderStyle = m.styles.Muted
	m.input.TextStyle = m.styles.Task
	m.input.PromptStyle = m.styles.Indicator
}

func (m *model) setError(op string, err error) {
	m.status = fmt.Sprintf("%s failed: %v", op, err)
	m.isError = true
	m.logger.Error(op, "err", err)
}

func (m *model) clearStatus() {
	m.status = ""
	m.isError = false
}

func (m *model) View() string {
	var b strings.Builder
	m.writeHeader(&b)
	b.WriteString(m.styles.Input.Render(m.input.View()))
	b.WriteString("\n\n")

	if !m.loaded {
		b.WriteString(m.styles.Muted.Render("Loading..."))
		b.WriteString("\n")
	} else {
		m.writeTasks(&b)
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.isError {
			b.WriteString(m.styles.Error.Render(m.status))
		} else {
			b.WriteString(m.styles.Muted.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.focus == focusInput {
		b.WriteString(m.help.View(inputKeyMap{keys: m.keys}))
	} else {
		b.WriteString(m.help.View(m.keys))
	}

	app := m.styles.App
	if m.width > 0 {
		app = app.Width(m.width)
	}
	return app.Render(b.String())
}

func (m *model) writeHeader(b *strings.Builder) {
	title := m.styles.Title.Render(m.title)
	glyph := m.styles.Indicator.Render(m.mode.Glyph())
	gap := 2
	if m.width > 0 {
		gap = max(m.width-lipgloss.Width(title)-lipgloss.Width(glyph)-6, 2)
	}
	b.WriteString(title + strings.Repeat(" ", gap) + glyph)
	b.WriteString("\n\n")
}

func (m *model) writeTasks(b *strings.Builder) {
	tasks := m.ctrl.Tasks()
	if len(tasks) == 0 {
		b.WriteString(m.styles.Muted.Render("No tasks yet."))
		b.WriteString("\n")
		return
	}
	for i, task := range tasks {
		b.WriteString(m.formatTask(i, task))
		b.WriteString("\n")
	}
	open, done := tasks.Counts()
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d open, %d done", open, done)))
	b.WriteString("\n")
}

func (m *model) formatTask(i int, task todo.Task) string {
	pointer := "  "
	if i == m.cursor && m.focus == focusList {
		pointer = m.styles.Cursor.Render("› ")
	}
	box := "[ ]"
	text := m.styles.Task.Render(task.Text)
	if task.Completed {
		box = "[x]"
		text = m.styles.Done.Render(task.Text)
	}
	if task.ID == m.editing {
		text = m.styles.Muted.Render("(editing) ") + text
	}
	return fmt.Sprintf("%s%s %s", pointer, box, text)
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
