// Package gridbuffer provides an in-memory cell grid implementing the
// renderer's Renderable, ScrollbackProvider and SelectionManager
// interfaces: per-row dirty tracking, a bounded scrollback, grapheme
// cluster storage and a normalized selection.
//
// It is a cell store, not an emulator: content arrives as styled strings or
// individual cells, never as escape sequences. Hosts embedding a real
// emulator implement the same interfaces on their own buffer; this package
// backs tests, examples and simple status displays.
package gridbuffer

import (
	"sync"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/phroun/purfectrender"
)

// Buffer is a cols x rows grid of cells with scrollback.
type Buffer struct {
	mu sync.RWMutex

	cols, rows int
	lines      [][]purfectrender.Cell
	graphemes  map[[2]int]string

	dirty      []bool
	fullRedraw bool

	cursorX, cursorY int
	cursorVisible    bool

	scrollback    [][]purfectrender.Cell
	scrollbackMax int

	selActive                  bool
	selStartX, selStartY       int
	selEndX, selEndY           int
	dirtySelRows               map[int]struct{}
}

// New creates an empty buffer. scrollbackMax bounds the number of retained
// history lines; zero disables scrollback.
func New(cols, rows, scrollbackMax int) *Buffer {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	b := &Buffer{
		cols:          cols,
		rows:          rows,
		scrollbackMax: scrollbackMax,
		cursorVisible: true,
		graphemes:     map[[2]int]string{},
		dirtySelRows:  map[int]struct{}{},
		fullRedraw:    true,
	}
	b.lines = makeGrid(cols, rows)
	b.dirty = make([]bool, rows)
	return b
}

func makeGrid(cols, rows int) [][]purfectrender.Cell {
	lines := make([][]purfectrender.Cell, rows)
	for y := range lines {
		lines[y] = makeRow(cols)
	}
	return lines
}

func makeRow(cols int) []purfectrender.Cell {
	row := make([]purfectrender.Cell, cols)
	for x := range row {
		row[x] = purfectrender.EmptyCell()
	}
	return row
}

func (b *Buffer) markRowDirty(y int) {
	if y >= 0 && y < len(b.dirty) {
		b.dirty[y] = true
	}
}

// --- Content ---

// SetCell stores a cell at (x, y) and marks the row dirty.
func (b *Buffer) SetCell(x, y int, cell purfectrender.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x < 0 || x >= b.cols || y < 0 || y >= b.rows {
		return
	}
	b.lines[y][x] = cell
	delete(b.graphemes, [2]int{y, x})
	b.markRowDirty(y)
}

// Style carries the cell attributes applied by WriteString.
type Style struct {
	Fg, Bg    purfectrender.RGB
	Flags     uint16
	Hyperlink int
}

// WriteString lays out s starting at (x, y), splitting it into grapheme
// clusters and packing wide clusters as a width-2 cell followed by a
// width-0 spacer. Returns the column after the last written cell.
func (b *Buffer) WriteString(x, y int, s string, style Style) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.rows {
		return x
	}

	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if x >= b.cols {
			break
		}
		cluster := g.Str()
		runes := g.Runes()
		if len(runes) == 0 {
			continue
		}
		width := runewidth.StringWidth(cluster)
		if width < 1 {
			width = 1
		}
		if width > 2 {
			width = 2
		}
		if width == 2 && x == b.cols-1 {
			// No room for the spacer; pad with a blank instead.
			b.lines[y][x] = purfectrender.EmptyCell()
			b.markRowDirty(y)
			break
		}

		cell := purfectrender.Cell{
			Rune:      runes[0],
			Width:     uint8(width),
			Fg:        style.Fg,
			Bg:        style.Bg,
			Flags:     style.Flags,
			Hyperlink: style.Hyperlink,
		}
		key := [2]int{y, x}
		if len(runes) > 1 {
			cell.GraphemeLen = uint8(len(runes) - 1)
			b.graphemes[key] = cluster
		} else {
			delete(b.graphemes, key)
		}
		b.lines[y][x] = cell
		if width == 2 {
			spacer := purfectrender.Cell{Width: 0, Fg: style.Fg, Bg: style.Bg}
			b.lines[y][x+1] = spacer
			delete(b.graphemes, [2]int{y, x + 1})
		}
		b.markRowDirty(y)
		x += width
	}
	return x
}

// ClearRow resets a row to empty cells.
func (b *Buffer) ClearRow(y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.rows {
		return
	}
	b.lines[y] = makeRow(b.cols)
	for x := 0; x < b.cols; x++ {
		delete(b.graphemes, [2]int{y, x})
	}
	b.markRowDirty(y)
}

// Clear resets the whole grid and requests a full redraw.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = makeGrid(b.cols, b.rows)
	b.graphemes = map[[2]int]string{}
	b.fullRedraw = true
}

// ScrollUp moves the top line into scrollback and appends a fresh bottom
// line. Grapheme positions shift up with their rows.
func (b *Buffer) ScrollUp() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.scrollbackMax > 0 {
		b.scrollback = append(b.scrollback, b.lines[0])
		if len(b.scrollback) > b.scrollbackMax {
			b.scrollback = b.scrollback[1:]
		}
	}
	copy(b.lines, b.lines[1:])
	b.lines[b.rows-1] = makeRow(b.cols)

	shifted := make(map[[2]int]string, len(b.graphemes))
	for key, s := range b.graphemes {
		if key[0] > 0 {
			shifted[[2]int{key[0] - 1, key[1]}] = s
		}
	}
	b.graphemes = shifted
	b.fullRedraw = true
}

// Resize changes the grid dimensions, clipping or padding rows.
func (b *Buffer) Resize(cols, rows int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if cols < 1 || rows < 1 {
		return
	}
	lines := make([][]purfectrender.Cell, rows)
	for y := range lines {
		lines[y] = makeRow(cols)
		if y < b.rows {
			copy(lines[y], b.lines[y])
		}
	}
	b.lines = lines
	b.cols, b.rows = cols, rows
	b.dirty = make([]bool, rows)
	b.fullRedraw = true
	if b.cursorX >= cols {
		b.cursorX = cols - 1
	}
	if b.cursorY >= rows {
		b.cursorY = rows - 1
	}
}

// --- Cursor ---

// SetCursor moves the cursor, clamping to the grid.
func (b *Buffer) SetCursor(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x < 0 {
		x = 0
	}
	if x >= b.cols {
		x = b.cols - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= b.rows {
		y = b.rows - 1
	}
	b.cursorX, b.cursorY = x, y
}

// ShowCursor sets cursor visibility.
func (b *Buffer) ShowCursor(visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorVisible = visible
}

// --- Renderable ---

func (b *Buffer) GetLine(y int) []purfectrender.Cell {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if y < 0 || y >= b.rows {
		return nil
	}
	return b.lines[y]
}

func (b *Buffer) GetCursor() purfectrender.CursorState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return purfectrender.CursorState{X: b.cursorX, Y: b.cursorY, Visible: b.cursorVisible}
}

func (b *Buffer) GetDimensions() (cols, rows int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cols, b.rows
}

func (b *Buffer) IsRowDirty(y int) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if y < 0 || y >= len(b.dirty) {
		return false
	}
	return b.dirty[y]
}

func (b *Buffer) ClearDirty() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for y := range b.dirty {
		b.dirty[y] = false
	}
	b.fullRedraw = false
}

func (b *Buffer) NeedsFullRedraw() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.fullRedraw
}

func (b *Buffer) GetGraphemeString(row, col int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.graphemes[[2]int{row, col}]
}

// --- ScrollbackProvider ---

func (b *Buffer) GetScrollbackLine(offset int) []purfectrender.Cell {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset < 0 || offset >= len(b.scrollback) {
		return nil
	}
	return b.scrollback[offset]
}

func (b *Buffer) GetScrollbackLength() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.scrollback)
}

// --- SelectionManager ---

// StartSelection begins a selection at a cell (viewport coordinates).
func (b *Buffer) StartSelection(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.invalidateSelectionRows()
	b.selActive = true
	b.selStartX, b.selStartY = x, y
	b.selEndX, b.selEndY = x, y
	b.invalidateSelectionRows()
}

// UpdateSelection extends the active selection to a cell.
func (b *Buffer) UpdateSelection(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.selActive {
		return
	}
	b.invalidateSelectionRows()
	b.selEndX, b.selEndY = x, y
	b.invalidateSelectionRows()
}

// ClearSelection drops the selection; its rows repaint next frame.
func (b *Buffer) ClearSelection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.selActive {
		return
	}
	b.invalidateSelectionRows()
	b.selActive = false
}

// invalidateSelectionRows records the current selection span in the dirty
// selection set. Callers hold the lock.
func (b *Buffer) invalidateSelectionRows() {
	if !b.selActive {
		return
	}
	sy, ey := b.selStartY, b.selEndY
	if sy > ey {
		sy, ey = ey, sy
	}
	for y := sy; y <= ey; y++ {
		b.dirtySelRows[y] = struct{}{}
	}
}

func (b *Buffer) HasSelection() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.selActive
}

// GetSelectionCoords returns the selection normalized to reading order.
func (b *Buffer) GetSelectionCoords() purfectrender.SelectionCoords {
	b.mu.RLock()
	defer b.mu.RUnlock()
	sx, sy := b.selStartX, b.selStartY
	ex, ey := b.selEndX, b.selEndY
	if sy > ey || (sy == ey && sx > ex) {
		sx, sy, ex, ey = ex, ey, sx, sy
	}
	return purfectrender.SelectionCoords{
		StartCol: sx, StartRow: sy,
		EndCol: ex, EndRow: ey,
	}
}

func (b *Buffer) GetDirtySelectionRows() []int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	rows := make([]int, 0, len(b.dirtySelRows))
	for y := range b.dirtySelRows {
		rows = append(rows, y)
	}
	return rows
}

func (b *Buffer) ClearDirtySelectionRows() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dirtySelRows = map[int]struct{}{}
}

// GetSelectedText extracts the selected text, trimming trailing blanks per
// line.
func (b *Buffer) GetSelectedText() string {
	if !b.HasSelection() {
		return ""
	}
	coords := b.GetSelectionCoords()

	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []byte
	for y := coords.StartRow; y <= coords.EndRow && y < b.rows; y++ {
		if y < 0 {
			continue
		}
		startX := 0
		endX := b.cols - 1
		if y == coords.StartRow {
			startX = coords.StartCol
		}
		if y == coords.EndRow {
			endX = coords.EndCol
		}
		var line []byte
		for x := startX; x <= endX && x < b.cols; x++ {
			cell := b.lines[y][x]
			if cell.Width == 0 {
				continue
			}
			if s := b.graphemes[[2]int{y, x}]; s != "" {
				line = append(line, s...)
			} else if cell.Rune != 0 {
				line = append(line, string(cell.Rune)...)
			} else {
				line = append(line, ' ')
			}
		}
		for len(line) > 0 && line[len(line)-1] == ' ' {
			line = line[:len(line)-1]
		}
		if y > coords.StartRow {
			out = append(out, '\n')
		}
		out = append(out, line...)
	}
	return string(out)
}
