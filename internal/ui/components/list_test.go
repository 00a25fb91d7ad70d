package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func letters(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('a' + i))
	}
	return out
}

func TestListNewList(t *testing.T) {
	list := NewList(10)
	assert.Equal(t, 10, list.PageSize)
	assert.Equal(t, -1, list.Selected())
	assert.Equal(t, 1, NewList(0).PageSize)
}

func TestListDownScrollsPage(t *testing.T) {
	list := NewList(3)
	list.SetItems(letters(5))

	for _, want := range []struct{ cursor, offset int }{{1, 0}, {2, 0}, {3, 1}, {4, 2}, {4, 2}} {
		list.Down()
		assert.Equal(t, want.cursor, list.Cursor)
		assert.Equal(t, want.offset, list.Offset)
	}
}

func TestListUpScrollsPage(t *testing.T) {
	list := NewList(3)
	list.SetItems(letters(5))
	list.Cursor, list.Offset = 4, 2

	for _, want := range []struct{ cursor, offset int }{{3, 2}, {2, 2}, {1, 1}, {0, 0}, {0, 0}} {
		list.Up()
		assert.Equal(t, want.cursor, list.Cursor)
		assert.Equal(t, want.offset, list.Offset)
	}
}

func TestListVisible(t *testing.T) {
	list := NewList(3)
	list.SetItems(letters(5))
	assert.Equal(t, []string{"a", "b", "c"}, list.Visible())
	assert.True(t, list.HasMore())

	list.Offset = 3
	assert.Equal(t, []string{"d", "e"}, list.Visible())
	assert.False(t, list.HasMore())

	list.SetItems(nil)
	assert.Nil(t, list.Visible())
}

func TestListRelToAbs(t *testing.T) {
	list := NewList(3)
	list.SetItems(letters(5))
	list.Offset = 2

	assert.Equal(t, 2, list.RelToAbs(0))
	assert.Equal(t, 4, list.RelToAbs(2))
	list.Cursor = 3
	assert.True(t, list.IsSelected(3))
	assert.False(t, list.IsSelected(2))
}

func TestListRefreshKeepsCursor(t *testing.T) {
	list := NewList(5)
	list.SetItems(letters(20))
	for i := 0; i < 10; i++ {
		list.Down()
	}
	assert.Equal(t, 6, list.Offset)

	list.Refresh(letters(19))
	assert.Equal(t, 10, list.Cursor)
	assert.Equal(t, 6, list.Offset)
}

func TestListRefreshClampsToShorterList(t *testing.T) {
	list := NewList(5)
	list.SetItems(letters(20))
	for i := 0; i < 10; i++ {
		list.Down()
	}

	list.Refresh(letters(3))
	assert.Equal(t, 2, list.Cursor)
	assert.Equal(t, 0, list.Offset)
	assert.Equal(t, []string{"a", "b", "c"}, list.Visible())

	list.Refresh(nil)
	assert.Equal(t, 0, list.Cursor)
	assert.Equal(t, -1, list.Selected())
}
