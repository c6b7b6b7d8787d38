package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// PanelStyle wraps a full-screen panel content area.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// DimmedStyle renders completed items.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Strikethrough(true)

// DueDateStyle renders due date annotations.
var DueDateStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// OverdueStyle renders the overdue marker.
var OverdueStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// TimerStyle renders the focus countdown readout.
var TimerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite)

// SectionTitleStyle labels the ordered/unordered subtask sections.
var SectionTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorBlue).
	MarginTop(1)

// PriorityStyle returns a color-coded style for the given display
// priority. The 0-10 scale maps cool to hot; 11 marks overdue.
func PriorityStyle(display float64) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch {
	case display > 10:
		return base.Foreground(ColorRed)
	case display > 7:
		return base.Foreground(ColorOrange)
	case display > 4:
		return base.Foreground(ColorYellow)
	case display > 2:
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}

// CategoryStyle returns a style using the category's stored color, or a
// neutral style when the color is empty.
func CategoryStyle(color string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if color == "" {
		return base.Foreground(ColorGray)
	}
	return base.Foreground(lipgloss.Color(color))
}
