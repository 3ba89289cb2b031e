package purfectrender

// CursorState is the emulator cursor as reported by a Renderable.
type CursorState struct {
	X, Y    int
	Visible bool
}

// Renderable is the cell source the renderer draws each frame, normally the
// terminal emulator's screen buffer.
type Renderable interface {
	// GetLine returns the row of cells at viewport row y, length cols.
	// A nil line is silently skipped for that frame.
	GetLine(y int) []Cell

	// GetCursor must refresh any pending emulator state internally so the
	// returned position is consistent with cell contents in the same call.
	// Dirty bits persist across multiple GetCursor calls.
	GetCursor() CursorState

	GetDimensions() (cols, rows int)

	IsRowDirty(y int) bool
	ClearDirty()
}

// FullRedrawHinter is optionally implemented by a Renderable whose state
// changed in a way that invalidates every row (resize, reflow, alt-screen
// switch).
type FullRedrawHinter interface {
	NeedsFullRedraw() bool
}

// GraphemeSource is optionally implemented by a Renderable that stores
// combining codepoints out of line. The renderer calls it for cells with a
// non-zero GraphemeLen and hands the full cluster to the host text engine.
type GraphemeSource interface {
	GetGraphemeString(row, col int) string
}

// ScrollbackProvider serves historical lines when the viewport is scrolled
// up. Offsets are 0-based from the oldest line.
type ScrollbackProvider interface {
	// GetScrollbackLine returns the line at the given offset, or nil.
	GetScrollbackLine(offset int) []Cell
	GetScrollbackLength() int
}

// SelectionCoords are viewport-relative, inclusive selection bounds.
type SelectionCoords struct {
	StartCol, StartRow int
	EndCol, EndRow     int
}

// Contains reports whether the cell at (col, row) lies inside the selection,
// reading order, inclusive on both ends.
func (s SelectionCoords) Contains(col, row int) bool {
	if row < s.StartRow || row > s.EndRow {
		return false
	}
	if row == s.StartRow && col < s.StartCol {
		return false
	}
	if row == s.EndRow && col > s.EndCol {
		return false
	}
	return true
}

// Rows returns the inclusive row span of the selection.
func (s SelectionCoords) Rows() (start, end int) {
	return s.StartRow, s.EndRow
}

// SelectionManager supplies the active selection and the rows whose
// selection state changed since the last frame (so cleared selections get
// repainted). The renderer is its only consumer of the dirty set and clears
// it once per frame.
type SelectionManager interface {
	HasSelection() bool
	GetSelectionCoords() SelectionCoords
	GetDirtySelectionRows() []int
	ClearDirtySelectionRows()
}

// LinkRange marks a run of cells matched by URL detection, viewport-relative
// and inclusive, possibly spanning rows. It is independent of OSC-8
// hyperlink ids.
type LinkRange struct {
	StartRow, StartCol int
	EndRow, EndCol     int
}

// Contains reports whether (col, row) lies inside the range in reading
// order.
func (r LinkRange) Contains(col, row int) bool {
	if row < r.StartRow || row > r.EndRow {
		return false
	}
	if row == r.StartRow && col < r.StartCol {
		return false
	}
	if row == r.EndRow && col > r.EndCol {
		return false
	}
	return true
}
