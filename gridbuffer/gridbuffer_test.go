package gridbuffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phroun/purfectrender"
)

func TestWriteStringMarksDirty(t *testing.T) {
	b := New(10, 3, 0)
	b.ClearDirty()

	b.WriteString(0, 1, "hi", Style{})

	assert.False(t, b.IsRowDirty(0))
	assert.True(t, b.IsRowDirty(1))
	assert.False(t, b.IsRowDirty(2))

	b.ClearDirty()
	assert.False(t, b.IsRowDirty(1))
}

func TestWriteStringPacksWideCells(t *testing.T) {
	b := New(10, 1, 0)
	end := b.WriteString(0, 0, "a中b", Style{})

	line := b.GetLine(0)
	require.NotNil(t, line)
	assert.Equal(t, 'a', line[0].Rune)
	assert.Equal(t, uint8(1), line[0].Width)
	assert.Equal(t, '中', line[1].Rune)
	assert.Equal(t, uint8(2), line[1].Width)
	assert.Equal(t, uint8(0), line[2].Width, "wide glyph reserves a spacer")
	assert.Equal(t, 'b', line[3].Rune)
	assert.Equal(t, 4, end)
}

func TestWriteStringStoresGraphemes(t *testing.T) {
	b := New(10, 1, 0)
	b.WriteString(0, 0, "éx", Style{}) // e + combining acute

	line := b.GetLine(0)
	assert.Equal(t, 'e', line[0].Rune)
	assert.Equal(t, uint8(1), line[0].GraphemeLen)
	assert.Equal(t, "é", b.GetGraphemeString(0, 0))
	assert.Equal(t, uint8(0), line[1].GraphemeLen)
	assert.Equal(t, "", b.GetGraphemeString(0, 1))
}

func TestScrollUpPushesScrollback(t *testing.T) {
	b := New(4, 2, 10)
	b.WriteString(0, 0, "top", Style{})
	b.WriteString(0, 1, "bot", Style{})

	b.ScrollUp()

	assert.Equal(t, 1, b.GetScrollbackLength())
	sb := b.GetScrollbackLine(0)
	require.NotNil(t, sb)
	assert.Equal(t, 't', sb[0].Rune)

	line := b.GetLine(0)
	assert.Equal(t, 'b', line[0].Rune, "rows shift up")
	assert.True(t, b.NeedsFullRedraw())
}

func TestScrollbackBounded(t *testing.T) {
	b := New(4, 1, 3)
	for i := 0; i < 5; i++ {
		b.WriteString(0, 0, string(rune('a'+i)), Style{})
		b.ScrollUp()
	}
	assert.Equal(t, 3, b.GetScrollbackLength())
	// Oldest retained line is the third write.
	assert.Equal(t, 'c', b.GetScrollbackLine(0)[0].Rune)
	assert.Nil(t, b.GetScrollbackLine(3))
}

func TestSelectionNormalization(t *testing.T) {
	b := New(10, 5, 0)
	b.StartSelection(7, 3)
	b.UpdateSelection(2, 1) // dragged upward

	require.True(t, b.HasSelection())
	coords := b.GetSelectionCoords()
	assert.Equal(t, purfectrender.SelectionCoords{StartCol: 2, StartRow: 1, EndCol: 7, EndRow: 3}, coords)
}

func TestDirtySelectionRows(t *testing.T) {
	b := New(10, 5, 0)
	b.StartSelection(0, 1)
	b.UpdateSelection(0, 2)
	b.ClearDirtySelectionRows()

	b.ClearSelection()
	rows := b.GetDirtySelectionRows()
	assert.ElementsMatch(t, []int{1, 2}, rows, "cleared selection rows must repaint")

	b.ClearDirtySelectionRows()
	assert.Empty(t, b.GetDirtySelectionRows())
}

func TestGetSelectedText(t *testing.T) {
	b := New(10, 2, 0)
	b.WriteString(0, 0, "Hello", Style{})
	b.WriteString(0, 1, "World", Style{})
	b.StartSelection(1, 0)
	b.UpdateSelection(2, 1)

	assert.Equal(t, "ello\nWor", b.GetSelectedText())
}

func TestResizeKeepsContent(t *testing.T) {
	b := New(4, 2, 0)
	b.WriteString(0, 0, "ab", Style{})
	b.Resize(8, 3)

	cols, rows := b.GetDimensions()
	assert.Equal(t, 8, cols)
	assert.Equal(t, 3, rows)
	assert.Equal(t, 'a', b.GetLine(0)[0].Rune)
	assert.True(t, b.NeedsFullRedraw())
}

func TestGetLineOutOfRange(t *testing.T) {
	b := New(4, 2, 0)
	assert.Nil(t, b.GetLine(-1))
	assert.Nil(t, b.GetLine(2))
}

func TestCursorClamped(t *testing.T) {
	b := New(4, 2, 0)
	b.SetCursor(99, 99)
	cur := b.GetCursor()
	assert.Equal(t, 3, cur.X)
	assert.Equal(t, 1, cur.Y)
	assert.True(t, cur.Visible)

	b.ShowCursor(false)
	assert.False(t, b.GetCursor().Visible)
}
