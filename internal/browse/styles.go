package browse

import "github.com/charmbracelet/lipgloss"

// CursorMarker is the prefix shown on the selected row.
const CursorMarker = "▸ "

var accent = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}

var dim = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}

// ActiveTab returns the style for the selected tab label.
func ActiveTab() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(accent).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(accent).
		Padding(0, 1)
}

// InactiveTab returns the style for unselected tab labels.
func InactiveTab() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(dim).
		Border(lipgloss.HiddenBorder(), false, false, true, false).
		Padding(0, 1)
}

// SelectedRow returns the style for the row under the cursor.
func SelectedRow() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(accent)
}

// StatusLine returns the muted style for status messages.
func StatusLine() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(dim).Italic(true)
}
