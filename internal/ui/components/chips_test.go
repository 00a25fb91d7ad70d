package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestChipsRendersLabels(t *testing.T) {
	out := SanitizeText(Chips([]Chip{{Label: "Color"}, {Label: "Red - Crimson"}}, 0, false, 80))
	assert.Contains(t, out, "Color ×")
	assert.Contains(t, out, "Red - Crimson ×")
}

func TestChipsDisabledHideRemoveMark(t *testing.T) {
	out := SanitizeText(Chips([]Chip{{Label: "Color"}}, -1, true, 80))
	assert.Contains(t, out, "Color")
	assert.NotContains(t, out, "×")
}

func TestChipsWrapAndStayInWidth(t *testing.T) {
	chips := make([]Chip, 12)
	for i := range chips {
		chips[i] = Chip{Label: strings.Repeat("t", 8)}
	}
	out := Chips(chips, -1, false, 40)
	lines := strings.Split(out, "\n")
	assert.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, lipgloss.Width(line), 40)
	}
	assert.Empty(t, Chips(nil, 0, false, 40))
}
