package purfectrender

import "math"

// drawGlyph dispatches a classified codepoint to its family's drawing
// procedure. The fill color must already be set; callers wrap the call in a
// global-alpha change for faint cells. Dimensions derive from the cell
// bounds so adjacent cells tile without sub-pixel gaps.
func drawGlyph(ctx Surface, family GlyphFamily, r rune, x, y, w, h float64) {
	switch family {
	case FamilyBox:
		drawBoxGlyph(ctx, r, x, y, w, h)
	case FamilyRounded:
		drawRoundedGlyph(ctx, r, x, y, w, h)
	case FamilyDashed:
		drawDashedGlyph(ctx, r, x, y, w, h)
	case FamilyBlock:
		drawBlockGlyph(ctx, r, x, y, w, h)
	case FamilyBraille:
		drawBrailleGlyph(ctx, r, x, y, w, h)
	case FamilySextant:
		drawSextantGlyph(ctx, r, x, y, w, h)
	case FamilyOctant:
		drawOctantGlyph(ctx, r, x, y, w, h)
	case FamilyWedge:
		drawWedgeGlyph(ctx, r, x, y, w, h)
	case FamilyMosaic:
		drawMosaicGlyph(ctx, r, x, y, w, h)
	case FamilyCornerTriangle:
		drawCornerTriangle(ctx, r, x, y, w, h)
	case FamilyPowerline:
		drawPowerlineGlyph(ctx, r, x, y, w, h)
	}
}

// --- Block Elements (U+2580..U+259F) ---

// quadrant occupancy per codepoint for U+2596..U+259F: tl, tr, bl, br.
var blockQuadrants = map[rune][4]bool{
	0x2596: {false, false, true, false},
	0x2597: {false, false, false, true},
	0x2598: {true, false, false, false},
	0x2599: {true, false, true, true},
	0x259A: {true, false, false, true},
	0x259B: {true, true, true, false},
	0x259C: {true, true, false, true},
	0x259D: {false, true, false, false},
	0x259E: {false, true, true, false},
	0x259F: {false, true, true, true},
}

func drawBlockGlyph(ctx Surface, r rune, x, y, w, h float64) {
	eighthH := func(n int) float64 { return math.Round(h * float64(n) / 8) }
	eighthW := func(n int) float64 { return math.Round(w * float64(n) / 8) }

	switch {
	case r == 0x2588: // █
		ctx.FillRect(x, y, w, h)
	case r == 0x2580: // ▀ upper half
		ctx.FillRect(x, y, w, eighthH(4))
	case r >= 0x2581 && r <= 0x2587: // lower eighths
		n := int(r - 0x2580)
		part := eighthH(n)
		ctx.FillRect(x, y+h-part, w, part)
	case r >= 0x2589 && r <= 0x258F: // left eighths, 7/8 down to 1/8
		n := 8 - int(r-0x2588)
		ctx.FillRect(x, y, eighthW(n), h)
	case r == 0x2590: // ▐ right half
		part := eighthW(4)
		ctx.FillRect(x+w-part, y, part, h)
	case r == 0x2594: // ▔ upper eighth
		ctx.FillRect(x, y, w, eighthH(1))
	case r == 0x2595: // ▕ right eighth
		part := eighthW(1)
		ctx.FillRect(x+w-part, y, part, h)
	case r >= 0x2591 && r <= 0x2593: // shades
		alpha := 0.25 * float64(r-0x2590)
		ctx.SetGlobalAlpha(alpha)
		ctx.FillRect(x, y, w, h)
		ctx.SetGlobalAlpha(1)
	default: // quadrants
		q, ok := blockQuadrants[r]
		if !ok {
			return
		}
		// Split at the floor of the midpoint; the second half absorbs the
		// rounding remainder so the quadrants cover the cell exactly.
		halfW := math.Floor(w / 2)
		halfH := math.Floor(h / 2)
		if q[0] {
			ctx.FillRect(x, y, halfW, halfH)
		}
		if q[1] {
			ctx.FillRect(x+halfW, y, w-halfW, halfH)
		}
		if q[2] {
			ctx.FillRect(x, y+halfH, halfW, h-halfH)
		}
		if q[3] {
			ctx.FillRect(x+halfW, y+halfH, w-halfW, h-halfH)
		}
	}
}

// --- Braille (U+2800..U+28FF) ---

// Braille dot numbering: dots 1-3 run down the left column, 4-6 down the
// right, 7 and 8 are the bottom row left and right. The low 8 bits of
// codepoint-0x2800 select the dots in that order.
func drawBrailleGlyph(ctx Surface, r rune, x, y, w, h float64) {
	bits := int(r - 0x2800)
	if bits == 0 {
		return
	}

	padX := w * 0.15
	padY := h * 0.10
	innerW := w - 2*padX
	innerH := h - 2*padY
	radius := 0.9 * math.Min(innerW/4, innerH/8)
	if radius < 0.5 {
		radius = 0.5
	}

	// dot index -> (col, row) on the 2x4 grid
	pos := [8][2]int{
		{0, 0}, {0, 1}, {0, 2}, // dots 1-3
		{1, 0}, {1, 1}, {1, 2}, // dots 4-6
		{0, 3}, {1, 3}, // dots 7-8
	}
	for i := 0; i < 8; i++ {
		if bits&(1<<i) == 0 {
			continue
		}
		cx := x + padX + float64(pos[i][0])*innerW
		cy := y + padY + float64(pos[i][1])*innerH/3
		ctx.BeginPath()
		ctx.Arc(cx, cy, radius, 0, 2*math.Pi)
		ctx.Fill()
	}
}

// --- Sextants (U+1FB00..U+1FB3B) ---

// Sextant bit k covers grid position k on the 2x3 grid, row-major. The
// block omits the empty, full, and half-block patterns (21 and 42), so the
// sequential index skips them.
func drawSextantGlyph(ctx Surface, r rune, x, y, w, h float64) {
	v := int(r-0x1FB00) + 1
	if v >= 21 {
		v++
	}
	if v >= 42 {
		v++
	}
	drawBitGrid(ctx, v, 2, 3, x, y, w, h)
}

// --- Octants (U+1CD00..U+1CDE5) ---

// octantSkips are patterns the supplement encodes elsewhere (full and the
// four halves); the sequential index steps over them. The empty pattern is
// never produced because the index starts at 1. The exact table should be
// validated against the Symbols for Legacy Computing Supplement chart.
var octantSkips = [...]int{0x0F, 0x55, 0xAA, 0xF0, 0xFF}

func drawOctantGlyph(ctx Surface, r rune, x, y, w, h float64) {
	v := int(r-0x1CD00) + 1
	for _, skip := range octantSkips {
		if v >= skip {
			v++
		}
	}
	if v > 0xFF {
		return
	}
	drawBitGrid(ctx, v, 2, 4, x, y, w, h)
}

// drawBitGrid fills the set positions of a cols x rows bit pattern
// (row-major, bit 0 top-left). Interior edges land on ceil boundaries and
// the last column/row absorbs the rounding remainder, so a full pattern
// covers the cell with no gaps.
func drawBitGrid(ctx Surface, bits, cols, rows int, x, y, w, h float64) {
	cellW := math.Ceil(w / float64(cols))
	cellH := math.Ceil(h / float64(rows))
	for i := 0; i < cols*rows; i++ {
		if bits&(1<<i) == 0 {
			continue
		}
		col := i % cols
		row := i / cols
		px := x + float64(col)*cellW
		py := y + float64(row)*cellH
		pw := cellW
		ph := cellH
		if col == cols-1 {
			pw = x + w - px
		}
		if row == rows-1 {
			ph = y + h - py
		}
		ctx.FillRect(px, py, pw, ph)
	}
}

// --- Wedges (U+1FB3C..U+1FB8B) and smooth mosaics (U+1FB90..U+1FBAF) ---

type cellCorner int

const (
	cornerBL cellCorner = iota
	cornerBR
	cornerTL
	cornerTR
)

// fillCornerTriangle fills a right triangle anchored at the given corner,
// extending fx of the width and fy of the height into the cell.
func fillCornerTriangle(ctx Surface, corner cellCorner, fx, fy, x, y, w, h float64) {
	dx := w * fx
	dy := h * fy
	ctx.BeginPath()
	switch corner {
	case cornerBL:
		ctx.MoveTo(x, y+h)
		ctx.LineTo(x+dx, y+h)
		ctx.LineTo(x, y+h-dy)
	case cornerBR:
		ctx.MoveTo(x+w, y+h)
		ctx.LineTo(x+w-dx, y+h)
		ctx.LineTo(x+w, y+h-dy)
	case cornerTL:
		ctx.MoveTo(x, y)
		ctx.LineTo(x+dx, y)
		ctx.LineTo(x, y+dy)
	case cornerTR:
		ctx.MoveTo(x+w, y)
		ctx.LineTo(x+w-dx, y)
		ctx.LineTo(x+w, y+dy)
	}
	ctx.ClosePath()
	ctx.Fill()
}

// wedgeFactors are the three diagonal sizes the wedge block composes:
// small, half, large.
var wedgeFactors = [3]float64{1.0 / 3.0, 0.5, 2.0 / 3.0}

// drawWedgeGlyph maps the wedge block parametrically: the leading runs are
// single-corner triangles at the three sizes plus full, the middle run
// cycles corner x size-pair combinations, and the tail is a run of
// quarter-cell rectangles followed by a run of full corner-to-corner
// triangles. Sub-ranges past U+1FB4B are
// approximations of the Legacy Computing chart.
func drawWedgeGlyph(ctx Surface, r rune, x, y, w, h float64) {
	off := int(r - 0x1FB3C)
	switch {
	case off < 0x10:
		// Four sizes (small, half, large, full) per corner.
		corner := cellCorner(off / 4)
		size := off % 4
		if size == 3 {
			fillCornerTriangle(ctx, corner, 1, 1, x, y, w, h)
		} else {
			fillCornerTriangle(ctx, corner, wedgeFactors[size], wedgeFactors[size], x, y, w, h)
		}
	case off < 0x34:
		// 36 mixed-aspect triangles: 9 width/height factor pairs per corner.
		idx := off - 0x10
		corner := cellCorner(idx / 9)
		fx := wedgeFactors[(idx%9)/3]
		fy := wedgeFactors[idx%3]
		fillCornerTriangle(ctx, corner, fx, fy, x, y, w, h)
	case off < 0x40:
		// Half-scanline variants: half-cell rectangles by upper/lower x
		// left/right.
		idx := off - 0x34
		halfW := math.Floor(w / 2)
		halfH := math.Floor(h / 2)
		switch idx % 4 {
		case 0: // upper left
			ctx.FillRect(x, y, halfW, halfH)
		case 1: // upper right
			ctx.FillRect(x+halfW, y, w-halfW, halfH)
		case 2: // lower left
			ctx.FillRect(x, y+halfH, halfW, h-halfH)
		case 3: // lower right
			ctx.FillRect(x+halfW, y+halfH, w-halfW, h-halfH)
		}
	default:
		// Full-cell diagonal fills: alternate between a corner's half-cell
		// triangle and its complement (the opposite corner's triangle).
		idx := off - 0x40
		corner := cellCorner(idx % 4)
		if idx%8 >= 4 {
			corner = oppositeCorner(corner)
		}
		fillCornerTriangle(ctx, corner, 1, 1, x, y, w, h)
	}
}

func oppositeCorner(c cellCorner) cellCorner {
	switch c {
	case cornerBL:
		return cornerTR
	case cornerBR:
		return cornerTL
	case cornerTL:
		return cornerBR
	default:
		return cornerBL
	}
}

// drawMosaicGlyph approximates the smooth mosaics with corner-diagonal
// triangles and half blocks by family offset. Only the seamless-tiling
// property matters here; exact shapes may be refined against the chart.
func drawMosaicGlyph(ctx Surface, r rune, x, y, w, h float64) {
	off := int(r - 0x1FB90)
	if off < 16 {
		corner := cellCorner(off % 4)
		if off >= 8 {
			corner = oppositeCorner(corner)
		}
		fillCornerTriangle(ctx, corner, 1, 1, x, y, w, h)
		return
	}
	halfW := math.Round(w / 2)
	halfH := math.Round(h / 2)
	switch off % 4 {
	case 0: // upper half
		ctx.FillRect(x, y, w, halfH)
	case 1: // lower half
		ctx.FillRect(x, y+h-halfH, w, halfH)
	case 2: // left half
		ctx.FillRect(x, y, halfW, h)
	case 3: // right half
		ctx.FillRect(x+w-halfW, y, halfW, h)
	}
}

// --- Corner triangles (U+25E2..U+25E5) ---

func drawCornerTriangle(ctx Surface, r rune, x, y, w, h float64) {
	switch r {
	case 0x25E2: // ◢ lower right
		fillCornerTriangle(ctx, cornerBR, 1, 1, x, y, w, h)
	case 0x25E3: // ◣ lower left
		fillCornerTriangle(ctx, cornerBL, 1, 1, x, y, w, h)
	case 0x25E4: // ◤ upper left
		fillCornerTriangle(ctx, cornerTL, 1, 1, x, y, w, h)
	case 0x25E5: // ◥ upper right
		fillCornerTriangle(ctx, cornerTR, 1, 1, x, y, w, h)
	}
}

// --- Powerline and directional triangles ---

// drawPowerlineGlyph fills directional triangles whose vertices are cell
// corners and the midpoint of the opposite side, so powerline separators
// meet the neighboring cell edge exactly.
func drawPowerlineGlyph(ctx Surface, r rune, x, y, w, h float64) {
	ctx.BeginPath()
	switch r {
	case 0xE0B0, 0xE0B4, 0x25B6, 0x25BA: // right-pointing
		ctx.MoveTo(x, y)
		ctx.LineTo(x+w, y+h/2)
		ctx.LineTo(x, y+h)
	case 0xE0B2, 0xE0B6, 0x25C0, 0x25C4: // left-pointing
		ctx.MoveTo(x+w, y)
		ctx.LineTo(x, y+h/2)
		ctx.LineTo(x+w, y+h)
	case 0x25B2: // ▲
		ctx.MoveTo(x, y+h)
		ctx.LineTo(x+w/2, y)
		ctx.LineTo(x+w, y+h)
	case 0x25BC: // ▼
		ctx.MoveTo(x, y)
		ctx.LineTo(x+w, y)
		ctx.LineTo(x+w/2, y+h)
	}
	ctx.ClosePath()
	ctx.Fill()
}
