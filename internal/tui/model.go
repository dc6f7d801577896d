// Package tui is the interactive dashboard: stats header, filterable
// task list, and a toast line fed by the event bus.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/taskdeck/internal/core/notify"
	"github.com/colonyops/taskdeck/internal/core/styles"
	"github.com/colonyops/taskdeck/internal/core/task"
	"github.com/colonyops/taskdeck/internal/taskdeck"
)

// Deps holds the collaborators the dashboard needs.
type Deps struct {
	App *taskdeck.App
}

// Messages delivered into the program loop from the event bus via
// Program.Send.
type (
	// TasksChangedMsg tells the model to re-read the store.
	TasksChangedMsg struct{}
	// NotificationMsg carries a toast for the status line.
	NotificationMsg struct {
		Notification notify.Notification
	}
	// ThemeChangedMsg switches the active palette.
	ThemeChangedMsg struct {
		Dark bool
	}
)

// clearToastMsg expires a toast. The sequence number guards against a
// stale timer clearing a newer toast.
type clearToastMsg struct {
	seq int
}

const toastDuration = 4 * time.Second

// Model is the dashboard bubbletea model.
type Model struct {
	deps Deps

	visible []task.Task
	summary task.Summary

	selIdx int // index into task.Selections()
	cursor int

	toast    *notify.Notification
	toastSeq int

	keys keyMap
	help help.Model

	width  int
	height int
}

// New creates the dashboard model and loads the initial view.
func New(deps Deps) Model {
	m := Model{
		deps: deps,
		keys: defaultKeyMap(),
		help: help.New(),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TasksChangedMsg:
		m.refresh()
		return m, nil

	case NotificationMsg:
		m.toast = &msg.Notification
		m.toastSeq++
		seq := m.toastSeq
		return m, tea.Tick(toastDuration, func(time.Time) tea.Msg {
			return clearToastMsg{seq: seq}
		})

	case ThemeChangedMsg:
		styles.SetDark(msg.Dark)
		return m, nil

	case clearToastMsg:
		if msg.seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.NextFilter):
		m.cycleFilter(1)

	case key.Matches(msg, m.keys.PrevFilter):
		m.cycleFilter(-1)

	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			// Persist failures surface via the notification toast.
			_, _ = m.deps.App.Tasks.Toggle(t.ID)
			m.refresh()
		}

	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			_ = m.deps.App.Tasks.Remove(t.ID)
			m.refresh()
		}

	case key.Matches(msg, m.keys.Theme):
		_ = m.deps.App.Settings.SetDarkMode(!m.deps.App.Settings.DarkMode())

	case key.Matches(msg, m.keys.Refresh):
		m.refresh()
	}

	return m, nil
}

// selection returns the active filter selection.
func (m Model) selection() task.Selection {
	return task.Selections()[m.selIdx]
}

// selected returns the task under the cursor.
func (m Model) selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return task.Task{}, false
	}
	return m.visible[m.cursor], true
}

func (m *Model) cycleFilter(dir int) {
	n := len(task.Selections())
	m.selIdx = (m.selIdx + dir + n) % n
	m.cursor = 0
	m.refresh()
}

// refresh re-reads the store into the current filtered view and clamps
// the cursor.
func (m *Model) refresh() {
	m.visible = m.deps.App.Tasks.Filtered(m.selection())
	m.summary = m.deps.App.Tasks.Stats()

	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
