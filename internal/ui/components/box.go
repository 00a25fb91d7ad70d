package components

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorBorder       = lipgloss.Color("#273540")
	colorBorderActive = lipgloss.Color("#7f57b4")
	colorBorderMuted  = lipgloss.Color("#3a3f4b")
)

var (
	boxBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	boxBorderActive = boxBorder.
			BorderForeground(colorBorderActive)

	boxBorderDisabled = boxBorder.
				BorderForeground(colorBorderMuted)

	boxHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7f57b4")).
			Bold(true)

	boxHeaderMutedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#9ba0bf"))

	errorBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7a2f3a")).
			Padding(0, 1)

	errorHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#e06c75")).
				Bold(true)

	errorBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d6b5b5"))
)

// BoxState picks the border treatment of a picker box.
type BoxState int

const (
	BoxIdle BoxState = iota
	BoxFocused
	BoxDisabled
)

func boxWidth(width int) int {
	if width <= 0 {
		return 0
	}
	w := width * 80 / 100
	if w < 40 {
		w = 40
	}
	if w > 96 {
		w = 96
	}
	if w > width {
		return width
	}
	return w
}

// frameWidth is the style width for a bordered box whose outer edge spans
// boxWidth(width).
func frameWidth(width int) int {
	w := boxWidth(width) - 2
	if w < 0 {
		return 0
	}
	return w
}

// BoxContentWidth returns the inner width left after border and padding.
func BoxContentWidth(width int) int {
	w := boxWidth(width)
	if w <= 0 {
		return 0
	}
	inner := w - 4
	if inner < 0 {
		return 0
	}
	return inner
}

// ClampTextWidth sanitizes text to one line and truncates it to width cells.
func ClampTextWidth(text string, width int) string {
	cleaned := SanitizeOneLine(text)
	if width <= 0 || lipgloss.Width(cleaned) <= width {
		return cleaned
	}
	if width == 1 {
		return "…"
	}
	return truncateRunes(cleaned, width-1) + "…"
}

// ErrorBox renders a red bordered box for errors.
func ErrorBox(title, message string, width int) string {
	header := ""
	if title != "" {
		header = errorHeaderStyle.Render(title) + "\n"
	}
	body := errorBodyStyle.Render(SanitizeText(message))
	return errorBorder.Width(frameWidth(width)).Render(header + body)
}

// TitledBox renders content in a rounded box with the title set into the top
// border.
func TitledBox(title, content string, width int, state BoxState) string {
	style, header := boxBorder, boxHeaderStyle
	switch state {
	case BoxFocused:
		style = boxBorderActive
	case BoxDisabled:
		style, header = boxBorderDisabled, boxHeaderMutedStyle
	}

	boxed := style.Width(frameWidth(width)).Render(content)
	if title == "" {
		return boxed
	}
	lines := strings.Split(boxed, "\n")
	lineWidth := lipgloss.Width(lines[0])
	if lineWidth < 4 {
		return boxed
	}

	border := lipgloss.RoundedBorder()
	middle := lineWidth - 2
	titleText := fmt.Sprintf(" %s ", SanitizeOneLine(title))
	if lipgloss.Width(titleText) > middle {
		titleText = truncateRunes(titleText, middle)
	}
	right := middle - lipgloss.Width(titleText) - 1
	if right < 0 {
		right = 0
	}

	borderStyle := lipgloss.NewStyle().Foreground(style.GetBorderTopForeground())
	line := borderStyle.Render(border.TopLeft+border.Top) +
		header.Render(titleText) +
		borderStyle.Render(strings.Repeat(border.Top, right)+border.TopRight)
	if w := lipgloss.Width(line); w > lineWidth {
		return boxed
	}
	lines[0] = line
	return strings.Join(lines, "\n")
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	var b strings.Builder
	b.Grow(max)
	n := 0
	for _, r := range s {
		if n >= max {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

// Indent adds left padding to every line of a multi-line string.
func Indent(s string, spaces int) string {
	if spaces <= 0 {
		return s
	}
	pad := strings.Repeat(" ", spaces)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}

// CenterBlock pads every non-empty line so the widest one sits centered in
// width.
func CenterBlock(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	prefix := strings.Repeat(" ", (width-maxWidth)/2)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
