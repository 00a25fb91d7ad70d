package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gravitrone/tagpicker/internal/repository"
	"github.com/gravitrone/tagpicker/internal/ui/components"
)

func TestRenderHeaderSummarizesSource(t *testing.T) {
	out := components.SanitizeText(RenderHeader("Article tags", repository.ModeParent, "en", 3))
	assert.Contains(t, out, "tagpicker")
	assert.Contains(t, out, "Article tags")
	assert.Contains(t, out, "3 tags · parent · en")
}

func TestRenderHeaderDefaultsTitle(t *testing.T) {
	out := components.SanitizeText(RenderHeader("", repository.ModeAll, "", 0))
	assert.Contains(t, out, "Tags")
	assert.Contains(t, out, "0 tags · all")
}
