// Package purfectrender renders a cell-addressable grid of styled terminal
// cells onto a host-supplied 2D raster surface.
//
// The package contains:
//   - Font metrics derivation with device-pixel-ratio scaling
//   - A procedural glyph engine for box-drawing, block-element, Braille,
//     sextant, octant, wedge, mosaic, powerline and related codepoints that
//     tiles seamlessly across cell boundaries
//   - A two-pass, dirty-tracked frame loop coordinating backgrounds, text,
//     selection, link decoration, cursor and scrollbar
//
// The terminal emulator itself, selection tracking and scrollback storage
// are external collaborators consumed through the Renderable,
// SelectionManager and ScrollbackProvider interfaces. Toolkit-specific
// Surface implementations live in the raster, gtk, qt and sdl subpackages.
package purfectrender

import "math"

// Options configures a Renderer. Zero values select the defaults noted on
// each field.
type Options struct {
	FontSize   int    // CSS pixels; default 15
	FontFamily string // default "monospace"

	CursorStyle CursorStyle // default CursorBlock
	CursorBlink bool

	// Theme partially overrides DefaultTheme; empty fields keep defaults.
	Theme Theme

	// DevicePixelRatio scales the backing store; default 1.
	DevicePixelRatio float64
}

// Renderer draws frames of a Renderable onto a Canvas. It is not safe for
// concurrent use: the host's frame loop calls Render once per tick, and all
// state mutation happens on that thread.
type Renderer struct {
	canvas Canvas
	ctx    Surface

	fontSize    int
	fontFamily  string
	cursorStyle CursorStyle
	dpr         float64

	themeSrc Theme
	theme    resolvedTheme
	metrics  FontMetrics

	selection SelectionManager
	blink     *blinker

	// Frame state carried across frames.
	lastCursor       CursorState
	haveLastCursor   bool
	lastViewportY    float64
	cursorSuppressed bool
	hoveredLink      int
	prevHoveredLink  int
	hoveredRange     *LinkRange
	prevHoveredRange *LinkRange

	// Frame-local caches, reset at the start of every Render.
	curBuffer    Renderable
	curSelection *SelectionCoords
}

// New creates a renderer bound to the canvas. It fails only when the canvas
// cannot provide a drawing surface; that is fatal for the caller.
func New(canvas Canvas, opts Options) (*Renderer, error) {
	if canvas == nil {
		return nil, ErrNoSurface
	}
	ctx := canvas.Surface()
	if ctx == nil {
		return nil, ErrNoSurface
	}

	if opts.FontSize <= 0 {
		opts.FontSize = 15
	}
	if opts.FontFamily == "" {
		opts.FontFamily = "monospace"
	}
	if opts.DevicePixelRatio <= 0 {
		opts.DevicePixelRatio = 1
	}

	r := &Renderer{
		canvas:      canvas,
		ctx:         ctx,
		fontSize:    opts.FontSize,
		fontFamily:  opts.FontFamily,
		cursorStyle: opts.CursorStyle,
		dpr:         opts.DevicePixelRatio,
		themeSrc:    opts.Theme,
		theme:       resolveTheme(opts.Theme),
	}
	r.metrics = measureFont(ctx, r.fontFamily, r.fontSize)
	if opts.CursorBlink {
		r.blink = newBlinker()
	}
	return r, nil
}

// Render draws one frame.
//
// forceAll repaints every row regardless of dirty state. viewportY is the
// number of lines scrolled up from the live view; fractional values are
// floored for line indexing so hosts can animate smooth scrolling.
// scrollback may be nil when no history exists. scrollbarOpacity in (0,1]
// fades the scrollbar; at 0 the scrollbar is not drawn.
//
// Dirty state on the buffer and the selection manager is always cleared by
// the end of the frame, whether the redraw was full or partial.
func (r *Renderer) Render(buffer Renderable, forceAll bool, viewportY float64, scrollback ScrollbackProvider, scrollbarOpacity float64) {
	if buffer == nil {
		return
	}
	cols, rows := buffer.GetDimensions()
	if cols <= 0 || rows <= 0 {
		if r.selection != nil {
			r.selection.ClearDirtySelectionRows()
		}
		buffer.ClearDirty()
		return
	}

	r.curBuffer = buffer
	r.curSelection = nil
	defer func() {
		r.curBuffer = nil
		r.curSelection = nil
	}()

	if hinter, ok := buffer.(FullRedrawHinter); ok && hinter.NeedsFullRedraw() {
		forceAll = true
	}
	if r.ensureCanvasSize(cols, rows) {
		forceAll = true
	}
	if viewportY != r.lastViewportY {
		forceAll = true
	}

	// GetCursor also flushes pending emulator state, so it runs before any
	// line fetches.
	cursor := buffer.GetCursor()
	vy := int(math.Floor(viewportY))

	need := make([]bool, rows)
	mark := func(y int) {
		if y >= 0 && y < rows {
			need[y] = true
		}
	}

	for y := 0; y < rows; y++ {
		if buffer.IsRowDirty(y) {
			mark(y)
		}
	}

	cursorMoved := !r.haveLastCursor || cursor.X != r.lastCursor.X || cursor.Y != r.lastCursor.Y
	if cursorMoved || r.blink != nil {
		mark(cursor.Y)
		if r.haveLastCursor && r.lastCursor.Y != cursor.Y {
			mark(r.lastCursor.Y)
		}
	}

	if r.selection != nil {
		if r.selection.HasSelection() {
			coords := r.selection.GetSelectionCoords()
			r.curSelection = &coords
			for y := coords.StartRow; y <= coords.EndRow; y++ {
				mark(y)
			}
		}
		for _, y := range r.selection.GetDirtySelectionRows() {
			mark(y)
		}
		r.selection.ClearDirtySelectionRows()
	}

	r.markLinkRows(buffer, scrollback, rows, vy, mark)

	if forceAll || viewportY > 0 {
		for y := range need {
			need[y] = true
		}
	} else {
		// Expand by one row either side: tall diacritics may overflow a
		// neighboring row's cell area.
		expanded := make([]bool, rows)
		for y, n := range need {
			if !n {
				continue
			}
			expanded[y] = true
			if y > 0 {
				expanded[y-1] = true
			}
			if y < rows-1 {
				expanded[y+1] = true
			}
		}
		need = expanded
	}

	// Two global passes: backgrounds for every row first, then text.
	// Decorations and tall glyphs may spill into a neighboring row, and a
	// later row's background fill must not erase them.
	type rowWork struct {
		y         int
		bufferRow int
		cells     []Cell
	}
	var work []rowWork
	for y := 0; y < rows; y++ {
		if !need[y] {
			continue
		}
		line, bufferRow := r.lineAt(buffer, scrollback, y, vy)
		if line == nil {
			continue
		}
		work = append(work, rowWork{y: y, bufferRow: bufferRow, cells: line})
	}
	for _, rw := range work {
		r.paintRowBackground(rw.cells, rw.y, cols)
	}
	for _, rw := range work {
		r.paintRowText(rw.cells, rw.y, rw.bufferRow)
	}

	if viewportY == 0 && cursor.Visible && r.blinkVisible() && !r.cursorSuppressed {
		r.drawCursor(buffer, cursor)
	}

	if scrollback != nil && scrollbarOpacity > 0 {
		r.drawScrollbar(cols, rows, viewportY, scrollback.GetScrollbackLength(), scrollbarOpacity)
	}

	r.lastCursor = cursor
	r.haveLastCursor = true
	r.lastViewportY = viewportY
	buffer.ClearDirty()
}

// markLinkRows invalidates the rows affected by hyperlink hover changes:
// every visible row containing the previous or new hovered link id, and the
// union of the previous and new regex-link ranges.
func (r *Renderer) markLinkRows(buffer Renderable, scrollback ScrollbackProvider, rows, vy int, mark func(int)) {
	if r.hoveredLink != r.prevHoveredLink {
		for y := 0; y < rows; y++ {
			line, _ := r.lineAt(buffer, scrollback, y, vy)
			if line == nil {
				continue
			}
			for i := range line {
				id := line[i].Hyperlink
				if id != 0 && (id == r.hoveredLink || id == r.prevHoveredLink) {
					mark(y)
					break
				}
			}
		}
		r.prevHoveredLink = r.hoveredLink
	}

	if !linkRangeEqual(r.hoveredRange, r.prevHoveredRange) {
		for _, lr := range [2]*LinkRange{r.prevHoveredRange, r.hoveredRange} {
			if lr == nil {
				continue
			}
			for y := lr.StartRow; y <= lr.EndRow; y++ {
				mark(y)
			}
		}
		r.prevHoveredRange = r.hoveredRange
	}
}

func linkRangeEqual(a, b *LinkRange) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// lineAt fetches the cells for viewport row y, composing scrollback above
// the live buffer when scrolled. bufferRow is -1 for scrollback rows.
func (r *Renderer) lineAt(buffer Renderable, scrollback ScrollbackProvider, y, vy int) (line []Cell, bufferRow int) {
	if vy <= 0 {
		return buffer.GetLine(y), y
	}
	if y < vy {
		if scrollback == nil {
			return nil, -1
		}
		return scrollback.GetScrollbackLine(scrollback.GetScrollbackLength() - vy + y), -1
	}
	return buffer.GetLine(y - vy), y - vy
}

// ensureCanvasSize matches the backing store to the grid and reapplies the
// DPR scale, which every resize resets. Reports whether a resize happened.
func (r *Renderer) ensureCanvasSize(cols, rows int) bool {
	wantW := int(float64(cols*r.metrics.Width) * r.dpr)
	wantH := int(float64(rows*r.metrics.Height) * r.dpr)
	curW, curH := r.canvas.Size()
	if curW == wantW && curH == wantH {
		return false
	}
	r.canvas.SetSize(wantW, wantH)
	r.ctx.Scale(r.dpr, r.dpr)
	return true
}

// --- Public configuration surface ---

// SetTheme replaces the theme. The new snapshot takes effect on the next
// frame; within a frame all readers observe a single theme.
func (r *Renderer) SetTheme(t Theme) {
	r.themeSrc = t
	r.theme = resolveTheme(t)
}

// Theme returns the theme currently in effect, with defaults filled in.
func (r *Renderer) Theme() Theme {
	return r.themeSrc.merged()
}

// SetFontSize changes the font size and rederives cell metrics. The canvas
// is resized on the next Render.
func (r *Renderer) SetFontSize(px int) {
	if px <= 0 {
		return
	}
	r.fontSize = px
	r.RemeasureFont()
}

// SetFontFamily changes the font family and rederives cell metrics.
func (r *Renderer) SetFontFamily(family string) {
	if family == "" {
		return
	}
	r.fontFamily = family
	r.RemeasureFont()
}

// RemeasureFont rederives cell metrics from the current font, for hosts
// that know the underlying font data changed (a web font finished loading,
// a fontconfig rescan).
func (r *Renderer) RemeasureFont() {
	r.metrics = measureFont(r.ctx, r.fontFamily, r.fontSize)
}

func (r *Renderer) SetCursorStyle(style CursorStyle) {
	r.cursorStyle = style
}

// SetCursorBlink starts or stops the blink timer.
func (r *Renderer) SetCursorBlink(on bool) {
	if on && r.blink == nil {
		r.blink = newBlinker()
	} else if !on && r.blink != nil {
		r.blink.stop()
		r.blink = nil
	}
}

// SuppressCursor overrides cursor drawing regardless of buffer and blink
// state, for hosts that hide the cursor on focus loss or during IME
// composition.
func (r *Renderer) SuppressCursor(suppress bool) {
	r.cursorSuppressed = suppress
}

func (r *Renderer) SetSelectionManager(sm SelectionManager) {
	r.selection = sm
}

// SetHoveredHyperlinkID sets the OSC-8 link group under the pointer; zero
// means none. Rows containing the old and new groups repaint next frame.
func (r *Renderer) SetHoveredHyperlinkID(id int) {
	r.hoveredLink = id
}

// SetHoveredLinkRange sets the hovered regex-detected link range, or nil.
func (r *Renderer) SetHoveredLinkRange(lr *LinkRange) {
	r.hoveredRange = lr
}

// Resize forces the backing store to the given grid size immediately and
// clears it to the theme background.
func (r *Renderer) Resize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	r.ensureCanvasSize(cols, rows)
	r.Clear()
}

// Clear fills the whole surface with the theme background.
func (r *Renderer) Clear() {
	w, h := r.canvas.Size()
	r.ctx.SetFill(r.theme.background)
	r.ctx.FillRect(0, 0, float64(w)/r.dpr, float64(h)/r.dpr)
}

// Metrics returns the current cell geometry.
func (r *Renderer) Metrics() FontMetrics {
	return r.metrics
}

// CharWidth returns the cell width in CSS pixels.
func (r *Renderer) CharWidth() int { return r.metrics.Width }

// CharHeight returns the cell height in CSS pixels.
func (r *Renderer) CharHeight() int { return r.metrics.Height }

// Dispose releases the blink timer. The renderer must not be used after.
func (r *Renderer) Dispose() {
	if r.blink != nil {
		r.blink.stop()
		r.blink = nil
	}
}
