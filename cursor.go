package purfectrender

import (
	"math"
	"sync/atomic"
	"time"
)

// CursorStyle selects the cursor shape.
type CursorStyle int

const (
	CursorBlock CursorStyle = iota
	CursorUnderline
	CursorBar
)

// ParseCursorStyle maps the option strings to a style; unknown values fall
// back to the block cursor.
func ParseCursorStyle(s string) CursorStyle {
	switch s {
	case "underline":
		return CursorUnderline
	case "bar":
		return CursorBar
	default:
		return CursorBlock
	}
}

// cursorBlinkInterval is the half-period of the blink: the cursor toggles
// visibility this often. A wall-clock timer rather than a frame counter, so
// the blink rate is independent of the host's frame rate.
const cursorBlinkInterval = 530 * time.Millisecond

// blinker toggles cursor visibility on a wall-clock tick. The visible flag
// is atomic because the tick fires off the frame thread; render only ever
// reads it.
type blinker struct {
	visible atomic.Bool
	ticker  *time.Ticker
	done    chan struct{}
}

func newBlinker() *blinker {
	b := &blinker{
		ticker: time.NewTicker(cursorBlinkInterval),
		done:   make(chan struct{}),
	}
	b.visible.Store(true)
	go b.run()
	return b
}

func (b *blinker) run() {
	for {
		select {
		case <-b.ticker.C:
			b.visible.Store(!b.visible.Load())
		case <-b.done:
			return
		}
	}
}

func (b *blinker) stop() {
	b.ticker.Stop()
	close(b.done)
}

// blinkVisible reports whether the blink phase currently shows the cursor.
// Without blink enabled the cursor is always in its visible phase.
func (r *Renderer) blinkVisible() bool {
	if r.blink == nil {
		return true
	}
	return r.blink.visible.Load()
}

// drawCursor paints the cursor at its cell. The block style fills the cell
// with the cursor color and repaints the glyph in the accent color so the
// character stays legible; underline and bar are thin strips sized from the
// cell metrics.
func (r *Renderer) drawCursor(buffer Renderable, cursor CursorState) {
	cw := float64(r.metrics.Width)
	ch := float64(r.metrics.Height)
	x := float64(cursor.X) * cw
	y := float64(cursor.Y) * ch

	var cell *Cell
	cellW := cw
	if line := buffer.GetLine(cursor.Y); line != nil && cursor.X >= 0 && cursor.X < len(line) {
		cell = &line[cursor.X]
		if cell.Width > 1 {
			cellW = float64(cell.Width) * cw
		}
	}

	r.ctx.SetFill(r.theme.cursor)
	switch r.cursorStyle {
	case CursorBlock:
		r.ctx.FillRect(x, y, cellW, ch)
		if cell != nil {
			r.paintCellText(cell, cursor.X, cursor.Y, x, y, cellW, ch, r.theme.cursorAccent)
		}
	case CursorUnderline:
		t := math.Max(2, math.Floor(ch*0.15))
		r.ctx.FillRect(x, y+ch-t, cellW, t)
	case CursorBar:
		t := math.Max(2, math.Floor(cw*0.15))
		r.ctx.FillRect(x, y, t, ch)
	}
}
