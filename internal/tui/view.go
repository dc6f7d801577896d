package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/taskdeck/internal/core/notify"
	"github.com/colonyops/taskdeck/internal/core/styles"
	"github.com/colonyops/taskdeck/internal/core/task"
)

// listHeightReserve is the number of rows taken by chrome around the
// task list: title, stats cards, filter tabs, toast, and help.
const listHeightReserve = 10

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("taskdeck"))
	b.WriteString("\n\n")

	b.WriteString(m.viewStats())
	b.WriteString("\n")

	b.WriteString(m.viewFilterTabs())
	b.WriteString("\n\n")

	b.WriteString(m.viewList())
	b.WriteString("\n")

	b.WriteString(m.viewToast())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) viewStats() string {
	cards := []string{
		statCard("Total", m.summary.Total, styles.CardValueStyle),
		statCard("Pending", m.summary.Pending, styles.WarningStyle),
		statCard("Completed", m.summary.Completed, styles.SuccessStyle),
		statCard("Overdue", m.summary.Overdue, styles.OverdueStyle),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func statCard(label string, value int, valueStyle lipgloss.Style) string {
	body := lipgloss.JoinVertical(
		lipgloss.Center,
		valueStyle.Render(fmt.Sprintf("%d", value)),
		styles.TextMutedStyle.Render(label),
	)
	return styles.CardStyle.Render(body)
}

func (m Model) viewFilterTabs() string {
	active := m.selection()

	tabs := make([]string, 0, len(task.Selections()))
	for _, sel := range task.Selections() {
		label := string(sel)
		if sel == active {
			tabs = append(tabs, styles.HeaderStyle.Render("["+label+"]"))
		} else {
			tabs = append(tabs, styles.TextMutedStyle.Render(" "+label+" "))
		}
	}

	return strings.Join(tabs, " ")
}

func (m Model) viewList() string {
	if len(m.visible) == 0 {
		return styles.TextMutedStyle.Render("  No tasks here. Run 'taskdeck add' to create one.")
	}

	height := m.listHeight()
	start, end := window(m.cursor, len(m.visible), height)

	var rows []string
	for i := start; i < end; i++ {
		rows = append(rows, m.viewRow(m.visible[i], i == m.cursor))
	}

	if end < len(m.visible) {
		rows = append(rows, styles.TextMutedStyle.Render(fmt.Sprintf("  … %d more", len(m.visible)-end)))
	}

	return strings.Join(rows, "\n")
}

func (m Model) viewRow(t task.Task, selected bool) string {
	cursor := "  "
	if selected {
		cursor = styles.CursorStyle.Render("> ")
	}

	glyph := styles.StatusGlyph(t.Status)
	pri := styles.PriorityStyle(t.Priority).Render(string(t.Priority))

	title := t.Title
	if t.Status == task.StatusCompleted {
		title = styles.DoneStyle.Render(title)
	}

	due := styles.TextMutedStyle.Render(t.DueDate)
	if t.Status != task.StatusCompleted && task.IsOverdue(t.DueDate, time.Now()) {
		due = styles.OverdueStyle.Render(t.DueDate + " !")
	}

	return fmt.Sprintf("%s%s %s  %s  %s", cursor, glyph, title, pri, due)
}

func (m Model) viewToast() string {
	if m.toast == nil {
		return styles.HelpStyle.Render("press ? for all keys")
	}
	return toastStyle(m.toast.Level).Render("• " + m.toast.Message)
}

func toastStyle(level notify.Level) lipgloss.Style {
	switch level {
	case notify.LevelSuccess:
		return styles.SuccessStyle
	case notify.LevelWarning:
		return styles.WarningStyle
	case notify.LevelError:
		return styles.ErrorStyle
	default:
		return styles.TextMutedStyle
	}
}

func (m Model) listHeight() int {
	h := m.height - listHeightReserve
	if h < 3 {
		h = 3
	}
	return h
}

// window returns the [start, end) slice bounds that keep cursor visible
// in a viewport of the given height.
func window(cursor, total, height int) (int, int) {
	if total <= height {
		return 0, total
	}

	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	end := start + height
	if end > total {
		end = total
		start = end - height
	}
	return start, end
}
