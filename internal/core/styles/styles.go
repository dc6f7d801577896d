// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/taskdeck/internal/core/task"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// The two built-in palettes mirror the persisted dark-mode preference.
var themes = map[bool]Palette{
	true: { // dark
		Primary:    lipgloss.Color("#7aa2f7"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	false: { // light
		Primary:    lipgloss.Color("#2e7de9"),
		Foreground: lipgloss.Color("#3760bf"),
		Muted:      lipgloss.Color("#848cb5"),
		Surface:    lipgloss.Color("#e9e9ec"),
		Success:    lipgloss.Color("#587539"),
		Warning:    lipgloss.Color("#8c6c3e"),
		Error:      lipgloss.Color("#f52a65"),
	},
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Styles derived from the active palette.
var (
	TitleStyle     lipgloss.Style
	HeaderStyle    lipgloss.Style
	TextMutedStyle lipgloss.Style
	SuccessStyle   lipgloss.Style
	WarningStyle   lipgloss.Style
	ErrorStyle     lipgloss.Style
	OverdueStyle   lipgloss.Style
	CardStyle      lipgloss.Style
	CardValueStyle lipgloss.Style
	HelpStyle      lipgloss.Style
	CursorStyle    lipgloss.Style
	DoneStyle      lipgloss.Style
)

func init() {
	SetDark(false)
}

// SetDark activates the dark or light palette and rebuilds all styles.
func SetDark(dark bool) {
	CurrentPalette = themes[dark]
	p := CurrentPalette

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Foreground)
	TextMutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	WarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error)
	OverdueStyle = lipgloss.NewStyle().Foreground(p.Error).Bold(true)
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface).
		Padding(0, 2)
	CardValueStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	HelpStyle = lipgloss.NewStyle().Foreground(p.Muted)
	CursorStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	DoneStyle = lipgloss.NewStyle().Foreground(p.Muted).Strikethrough(true)
}

// PriorityStyle returns the style for rendering a task priority badge.
func PriorityStyle(p task.Priority) lipgloss.Style {
	switch p {
	case task.PriorityHigh:
		return ErrorStyle
	case task.PriorityLow:
		return SuccessStyle
	default:
		return WarningStyle
	}
}

// StatusGlyph returns the checkbox glyph for a task status.
func StatusGlyph(s task.Status) string {
	if s == task.StatusCompleted {
		return "[x]"
	}
	return "[ ]"
}
