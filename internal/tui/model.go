// Package tui is an interactive terminal front end for a task store.
package tui

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/task"
	"todo/internal/taskstore"
)

// RemoveDelay is how long a deleted row stays marked before it is removed.
const RemoveDelay = 300 * time.Millisecond

type mode int

const (
	modeNormal mode = iota
	modeAdd
	modeEdit
	modeConfirmClear
)

// removeMsg finishes a delete started with 'd'.
type removeMsg struct{ id int64 }

// Model is the bubbletea model. It only touches the store from Update.
type Model struct {
	store *taskstore.Store

	mode     mode
	cursor   int
	input    textinput.Model
	editID   int64
	removing map[int64]bool
	pending  int // completed count shown in the clear prompt

	status string
	width  int
	height int
}

// New creates a Model over a loaded store.
func New(store *taskstore.Store) *Model {
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 500
	ti.Prompt = "> "

	return &Model{
		store:    store,
		input:    ti,
		removing: make(map[int64]bool),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-4, 10)
	case removeMsg:
		delete(m.removing, msg.id)
		m.store.Delete(msg.id)
		m.clampCursor()
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd, modeEdit:
			return m, m.updateInput(msg)
		case modeConfirmClear:
			return m, m.updateConfirm(msg)
		default:
			return m, m.updateNormal(msg)
		}
	}
	return m, nil
}

func (m *Model) updateNormal(msg tea.KeyMsg) tea.Cmd {
	m.status = ""
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "a", "/", "ctrl+_":
		m.mode = modeAdd
		m.input.Reset()
		return m.input.Focus()
	case " ", "x":
		if t, ok := m.selected(); ok && !m.removing[t.ID] {
			m.store.Toggle(t.ID)
			m.clampCursor()
		}
	case "e", "enter":
		if t, ok := m.selected(); ok && !m.removing[t.ID] {
			m.mode = modeEdit
			m.editID = t.ID
			m.input.SetValue(t.Text)
			m.input.CursorEnd()
			return m.input.Focus()
		}
	case "d":
		if t, ok := m.selected(); ok && !m.removing[t.ID] {
			m.removing[t.ID] = true
			id := t.ID
			return tea.Tick(RemoveDelay, func(time.Time) tea.Msg {
				return removeMsg{id: id}
			})
		}
	case "f", "tab":
		m.setFilter(m.store.Filter().Next())
	case "1":
		m.setFilter(task.FilterAll)
	case "2":
		m.setFilter(task.FilterActive)
	case "3":
		m.setFilter(task.FilterCompleted)
	case "c":
		if m.store.HasCompleted() {
			m.pending = len(slices.DeleteFunc(m.store.Tasks(), func(t task.Task) bool {
				return !t.Completed
			}))
			m.mode = modeConfirmClear
		}
	}
	return nil
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		m.leaveInput()
		return nil
	case "enter":
		text := m.input.Value()
		if m.mode == modeEdit {
			if !m.store.Edit(m.editID, text) && strings.TrimSpace(text) == "" {
				m.status = "edit cancelled"
			}
			m.leaveInput()
			return nil
		}
		if _, ok := m.store.Add(text); ok {
			m.cursor = 0
		}
		m.input.Reset()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	answer := strings.ToLower(msg.String())
	if answer == "ctrl+c" {
		return tea.Quit
	}
	m.mode = modeNormal
	if answer != "y" {
		m.status = "clear cancelled"
		return nil
	}

	// A delayed delete can change the count while the prompt is open.
	changed := false
	removed := m.store.ClearCompleted(func(count int) bool {
		if count != m.pending {
			m.pending = count
			changed = true
			return false
		}
		return true
	})
	switch {
	case changed:
		m.mode = modeConfirmClear
	case removed == 0:
		m.status = "nothing to clear"
	default:
		m.status = "cleared " + plural(removed, "completed task")
	}
	m.clampCursor()
	return nil
}

func (m *Model) leaveInput() {
	m.mode = modeNormal
	m.editID = 0
	m.input.Reset()
	m.input.Blur()
}

func (m *Model) setFilter(f task.Filter) {
	if err := m.store.SetFilter(f); err == nil {
		m.cursor = 0
	}
}

// visible returns the rows the current filter shows.
func (m *Model) visible() []task.Task {
	return slices.Collect(m.store.FilteredView())
}

func (m *Model) selected() (task.Task, bool) {
	rows := m.visible()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return task.Task{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
