package ui

import (
	"fmt"
	"strings"

	"github.com/gravitrone/tagpicker/internal/repository"
)

const bannerMark = "◆ tagpicker"

// RenderHeader returns the one-line title with the tag source summary.
func RenderHeader(title string, mode repository.Mode, language string, tags int) string {
	if strings.TrimSpace(title) == "" {
		title = "Tags"
	}
	parts := []string{fmt.Sprintf("%d tags", tags), mode.String()}
	if language != "" {
		parts = append(parts, language)
	}
	return TitleStyle.Render(bannerMark) + "  " +
		NormalStyle.Render(title) + "  " +
		SubtitleStyle.Render(strings.Join(parts, " · "))
}
