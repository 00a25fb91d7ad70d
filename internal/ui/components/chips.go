package components

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	chipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d7d9da")).
			Background(lipgloss.Color("#273540")).
			Padding(0, 1).
			MarginRight(1)

	chipFocusedStyle = chipStyle.
				Foreground(lipgloss.Color("#16161d")).
				Background(lipgloss.Color("#7f57b4")).
				Bold(true)

	chipDisabledStyle = chipStyle.
				Foreground(lipgloss.Color("#9ba0bf")).
				Background(lipgloss.Color("#1f2430"))
)

// Chip is one selected tag.
type Chip struct {
	Label string
}

// Chips renders labels as removable chips wrapped to width. focused is the
// chip index under the cursor, or -1.
func Chips(chips []Chip, focused int, disabled bool, width int) string {
	if len(chips) == 0 {
		return ""
	}
	maxLabel := width - 6
	segments := make([]string, len(chips))
	for i, c := range chips {
		label := ClampTextWidth(c.Label, maxLabel)
		switch {
		case disabled:
			segments[i] = chipDisabledStyle.Render(label)
		case i == focused:
			segments[i] = chipFocusedStyle.Render(label + " ×")
		default:
			segments[i] = chipStyle.Render(label + " ×")
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, WrapRow(segments, width)...)
}
