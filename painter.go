package purfectrender

// cellColors resolves the effective colors for one cell. Inverse swaps the
// cell pair first; selection then forces the theme's selection colors and
// disables the default-background optimization so the selection block is
// always solid.
func (r *Renderer) cellColors(cell *Cell, selected bool) (fg, bg RGB, defaultBg bool) {
	fg, bg = cell.Fg, cell.Bg
	if cell.Has(FlagInverse) {
		fg, bg = bg, fg
	}
	if selected {
		return r.theme.selectionForeground, r.theme.selectionBackground, false
	}
	return fg, bg, bg == RGB{}
}

func (r *Renderer) cellSelected(col, row int) bool {
	return r.curSelection != nil && r.curSelection.Contains(col, row)
}

// paintRowBackground is the first pass for one viewport row: the row is
// reset to the theme background, then non-default cell backgrounds and
// selection blocks paint over it. All rows run this pass before any row
// runs the text pass; glyphs and decorations may overflow into neighboring
// rows, and a later background fill must never erase that overflow.
func (r *Renderer) paintRowBackground(cells []Cell, viewRow, cols int) {
	cw := float64(r.metrics.Width)
	ch := float64(r.metrics.Height)
	rowY := float64(viewRow) * ch

	r.ctx.SetFill(r.theme.background)
	r.ctx.FillRect(0, rowY, float64(cols)*cw, ch)

	for col := range cells {
		cell := &cells[col]
		if cell.Width == 0 {
			continue
		}
		cellX := float64(col) * cw
		cellW := float64(cell.Width) * cw
		selected := r.cellSelected(col, viewRow)
		_, bg, defaultBg := r.cellColors(cell, selected)
		if defaultBg {
			continue
		}
		r.ctx.SetFill(bg)
		r.ctx.FillRect(cellX, rowY, cellW, ch)
	}
}

// paintRowText is the second pass: glyph content, then underline,
// strikethrough and link decorations.
//
// bufferRow is the row index on the live buffer backing this viewport row,
// or -1 when the row comes from scrollback (grapheme lookups are only
// served by the live buffer).
func (r *Renderer) paintRowText(cells []Cell, viewRow, bufferRow int) {
	cw := float64(r.metrics.Width)
	ch := float64(r.metrics.Height)
	rowY := float64(viewRow) * ch

	for col := range cells {
		cell := &cells[col]
		if cell.Width == 0 {
			continue
		}
		cellX := float64(col) * cw
		cellW := float64(cell.Width) * cw
		selected := r.cellSelected(col, viewRow)
		fg, _, _ := r.cellColors(cell, selected)

		r.paintCellText(cell, col, bufferRow, cellX, rowY, cellW, ch, fg)

		// Decorations are drawn at full alpha even for faint cells.
		if cell.Has(FlagUnderline) {
			r.ctx.SetFill(fg)
			r.ctx.FillRect(cellX, rowY+float64(r.metrics.Baseline)+2, cellW, 1)
		}
		if cell.Has(FlagStrikethrough) {
			r.ctx.SetFill(fg)
			r.ctx.FillRect(cellX, rowY+ch/2, cellW, 1)
		}
		if cell.Hyperlink != 0 && cell.Hyperlink == r.hoveredLink {
			r.ctx.SetFill(linkAccent)
			r.ctx.FillRect(cellX, rowY+float64(r.metrics.Baseline)+2, cellW, 1)
		}
		if r.hoveredRange != nil && r.hoveredRange.Contains(col, viewRow) {
			r.ctx.SetFill(linkAccent)
			r.ctx.FillRect(cellX, rowY+float64(r.metrics.Baseline)+2, cellW, 1)
		}
	}
}

// paintCellText draws the glyph content of one cell: a procedural glyph for
// classified codepoints, otherwise the grapheme string through the host
// text engine. Faint halves the global alpha around the whole draw;
// invisible suppresses it entirely.
func (r *Renderer) paintCellText(cell *Cell, col, bufferRow int, cellX, rowY, cellW, cellH float64, fg RGB) {
	if cell.Rune == 0 || cell.Rune == ' ' || cell.Has(FlagInvisible) {
		return
	}

	if cell.Has(FlagFaint) {
		r.ctx.SetGlobalAlpha(0.5)
		defer r.ctx.SetGlobalAlpha(1)
	}
	r.ctx.SetFill(fg)
	r.ctx.SetStroke(fg)

	family := ClassifyGlyph(cell.Rune)
	if family != FamilyText {
		drawGlyph(r.ctx, family, cell.Rune, cellX, rowY, cellW, cellH)
		return
	}

	r.ctx.SetFont(Font{
		Family: r.fontFamily,
		Size:   r.fontSize,
		Bold:   cell.Has(FlagBold),
		Italic: cell.Has(FlagItalic),
	})
	s := cell.String()
	if cell.GraphemeLen > 0 && bufferRow >= 0 {
		if gs, ok := r.curBuffer.(GraphemeSource); ok {
			if full := gs.GetGraphemeString(bufferRow, col); full != "" {
				s = full
			}
		}
	}
	r.ctx.FillText(s, cellX, rowY+float64(r.metrics.Baseline))
}
