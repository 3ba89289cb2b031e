package purfectrender

import "math"

// lineStyle is the weight of one directional stub of a box-drawing glyph.
type lineStyle uint8

const (
	lineNone lineStyle = iota
	lineLight
	lineHeavy
	lineDouble
)

// boxSpec packs the four stub styles of a box-drawing codepoint, two bits
// per direction: up, right, down, left from the low end.
type boxSpec uint16

func bx(up, right, down, left lineStyle) boxSpec {
	return boxSpec(up) | boxSpec(right)<<2 | boxSpec(down)<<4 | boxSpec(left)<<6
}

func (s boxSpec) up() lineStyle    { return lineStyle(s & 3) }
func (s boxSpec) right() lineStyle { return lineStyle(s >> 2 & 3) }
func (s boxSpec) down() lineStyle  { return lineStyle(s >> 4 & 3) }
func (s boxSpec) left() lineStyle  { return lineStyle(s >> 6 & 3) }

// boxSegments decodes U+2500..U+257F into directional stubs. Dashed and
// rounded-corner codepoints are zero here; they belong to their own
// families. The diagonals U+2571..U+2573 are drawn as strokes and are also
// zero.
var boxSegments = [0x80]boxSpec{
	0x00: bx(lineNone, lineLight, lineNone, lineLight),    // ─
	0x01: bx(lineNone, lineHeavy, lineNone, lineHeavy),    // ━
	0x02: bx(lineLight, lineNone, lineLight, lineNone),    // │
	0x03: bx(lineHeavy, lineNone, lineHeavy, lineNone),    // ┃
	0x0C: bx(lineNone, lineLight, lineLight, lineNone),    // ┌
	0x0D: bx(lineNone, lineHeavy, lineLight, lineNone),    // ┍
	0x0E: bx(lineNone, lineLight, lineHeavy, lineNone),    // ┎
	0x0F: bx(lineNone, lineHeavy, lineHeavy, lineNone),    // ┏
	0x10: bx(lineNone, lineNone, lineLight, lineLight),    // ┐
	0x11: bx(lineNone, lineNone, lineLight, lineHeavy),    // ┑
	0x12: bx(lineNone, lineNone, lineHeavy, lineLight),    // ┒
	0x13: bx(lineNone, lineNone, lineHeavy, lineHeavy),    // ┓
	0x14: bx(lineLight, lineLight, lineNone, lineNone),    // └
	0x15: bx(lineLight, lineHeavy, lineNone, lineNone),    // ┕
	0x16: bx(lineHeavy, lineLight, lineNone, lineNone),    // ┖
	0x17: bx(lineHeavy, lineHeavy, lineNone, lineNone),    // ┗
	0x18: bx(lineLight, lineNone, lineNone, lineLight),    // ┘
	0x19: bx(lineLight, lineNone, lineNone, lineHeavy),    // ┙
	0x1A: bx(lineHeavy, lineNone, lineNone, lineLight),    // ┚
	0x1B: bx(lineHeavy, lineNone, lineNone, lineHeavy),    // ┛
	0x1C: bx(lineLight, lineLight, lineLight, lineNone),   // ├
	0x1D: bx(lineLight, lineHeavy, lineLight, lineNone),   // ┝
	0x1E: bx(lineHeavy, lineLight, lineLight, lineNone),   // ┞
	0x1F: bx(lineLight, lineLight, lineHeavy, lineNone),   // ┟
	0x20: bx(lineHeavy, lineLight, lineHeavy, lineNone),   // ┠
	0x21: bx(lineHeavy, lineHeavy, lineLight, lineNone),   // ┡
	0x22: bx(lineLight, lineHeavy, lineHeavy, lineNone),   // ┢
	0x23: bx(lineHeavy, lineHeavy, lineHeavy, lineNone),   // ┣
	0x24: bx(lineLight, lineNone, lineLight, lineLight),   // ┤
	0x25: bx(lineLight, lineNone, lineLight, lineHeavy),   // ┥
	0x26: bx(lineHeavy, lineNone, lineLight, lineLight),   // ┦
	0x27: bx(lineLight, lineNone, lineHeavy, lineLight),   // ┧
	0x28: bx(lineHeavy, lineNone, lineHeavy, lineLight),   // ┨
	0x29: bx(lineHeavy, lineNone, lineLight, lineHeavy),   // ┩
	0x2A: bx(lineLight, lineNone, lineHeavy, lineHeavy),   // ┪
	0x2B: bx(lineHeavy, lineNone, lineHeavy, lineHeavy),   // ┫
	0x2C: bx(lineNone, lineLight, lineLight, lineLight),   // ┬
	0x2D: bx(lineNone, lineLight, lineLight, lineHeavy),   // ┭
	0x2E: bx(lineNone, lineHeavy, lineLight, lineLight),   // ┮
	0x2F: bx(lineNone, lineHeavy, lineLight, lineHeavy),   // ┯
	0x30: bx(lineNone, lineLight, lineHeavy, lineLight),   // ┰
	0x31: bx(lineNone, lineLight, lineHeavy, lineHeavy),   // ┱
	0x32: bx(lineNone, lineHeavy, lineHeavy, lineLight),   // ┲
	0x33: bx(lineNone, lineHeavy, lineHeavy, lineHeavy),   // ┳
	0x34: bx(lineLight, lineLight, lineNone, lineLight),   // ┴
	0x35: bx(lineLight, lineLight, lineNone, lineHeavy),   // ┵
	0x36: bx(lineLight, lineHeavy, lineNone, lineLight),   // ┶
	0x37: bx(lineLight, lineHeavy, lineNone, lineHeavy),   // ┷
	0x38: bx(lineHeavy, lineLight, lineNone, lineLight),   // ┸
	0x39: bx(lineHeavy, lineLight, lineNone, lineHeavy),   // ┹
	0x3A: bx(lineHeavy, lineHeavy, lineNone, lineLight),   // ┺
	0x3B: bx(lineHeavy, lineHeavy, lineNone, lineHeavy),   // ┻
	0x3C: bx(lineLight, lineLight, lineLight, lineLight),  // ┼
	0x3D: bx(lineLight, lineLight, lineLight, lineHeavy),  // ┽
	0x3E: bx(lineLight, lineHeavy, lineLight, lineLight),  // ┾
	0x3F: bx(lineLight, lineHeavy, lineLight, lineHeavy),  // ┿
	0x40: bx(lineHeavy, lineLight, lineLight, lineLight),  // ╀
	0x41: bx(lineLight, lineLight, lineHeavy, lineLight),  // ╁
	0x42: bx(lineHeavy, lineLight, lineHeavy, lineLight),  // ╂
	0x43: bx(lineHeavy, lineLight, lineLight, lineHeavy),  // ╃
	0x44: bx(lineHeavy, lineHeavy, lineLight, lineLight),  // ╄
	0x45: bx(lineLight, lineLight, lineHeavy, lineHeavy),  // ╅
	0x46: bx(lineLight, lineHeavy, lineHeavy, lineLight),  // ╆
	0x47: bx(lineHeavy, lineHeavy, lineLight, lineHeavy),  // ╇
	0x48: bx(lineLight, lineHeavy, lineHeavy, lineHeavy),  // ╈
	0x49: bx(lineHeavy, lineLight, lineHeavy, lineHeavy),  // ╉
	0x4A: bx(lineHeavy, lineHeavy, lineHeavy, lineLight),  // ╊
	0x4B: bx(lineHeavy, lineHeavy, lineHeavy, lineHeavy),  // ╋
	0x50: bx(lineNone, lineDouble, lineNone, lineDouble),  // ═
	0x51: bx(lineDouble, lineNone, lineDouble, lineNone),  // ║
	0x52: bx(lineNone, lineDouble, lineLight, lineNone),   // ╒
	0x53: bx(lineNone, lineLight, lineDouble, lineNone),   // ╓
	0x54: bx(lineNone, lineDouble, lineDouble, lineNone),  // ╔
	0x55: bx(lineNone, lineNone, lineLight, lineDouble),   // ╕
	0x56: bx(lineNone, lineNone, lineDouble, lineLight),   // ╖
	0x57: bx(lineNone, lineNone, lineDouble, lineDouble),  // ╗
	0x58: bx(lineLight, lineDouble, lineNone, lineNone),   // ╘
	0x59: bx(lineDouble, lineLight, lineNone, lineNone),   // ╙
	0x5A: bx(lineDouble, lineDouble, lineNone, lineNone),  // ╚
	0x5B: bx(lineLight, lineNone, lineNone, lineDouble),   // ╛
	0x5C: bx(lineDouble, lineNone, lineNone, lineLight),   // ╜
	0x5D: bx(lineDouble, lineNone, lineNone, lineDouble),  // ╝
	0x5E: bx(lineLight, lineDouble, lineLight, lineNone),  // ╞
	0x5F: bx(lineDouble, lineLight, lineDouble, lineNone), // ╟
	0x60: bx(lineDouble, lineDouble, lineDouble, lineNone), // ╠
	0x61: bx(lineLight, lineNone, lineLight, lineDouble),   // ╡
	0x62: bx(lineDouble, lineNone, lineDouble, lineLight),  // ╢
	0x63: bx(lineDouble, lineNone, lineDouble, lineDouble), // ╣
	0x64: bx(lineNone, lineDouble, lineLight, lineDouble),  // ╤
	0x65: bx(lineNone, lineLight, lineDouble, lineLight),   // ╥
	0x66: bx(lineNone, lineDouble, lineDouble, lineDouble), // ╦
	0x67: bx(lineLight, lineDouble, lineNone, lineDouble),  // ╧
	0x68: bx(lineDouble, lineLight, lineNone, lineLight),   // ╨
	0x69: bx(lineDouble, lineDouble, lineNone, lineDouble), // ╩
	0x6A: bx(lineLight, lineDouble, lineLight, lineDouble), // ╪
	0x6B: bx(lineDouble, lineLight, lineDouble, lineLight), // ╫
	0x6C: bx(lineDouble, lineDouble, lineDouble, lineDouble), // ╬
	0x74: bx(lineNone, lineNone, lineNone, lineLight),        // ╴
	0x75: bx(lineLight, lineNone, lineNone, lineNone),        // ╵
	0x76: bx(lineNone, lineLight, lineNone, lineNone),        // ╶
	0x77: bx(lineNone, lineNone, lineLight, lineNone),        // ╷
	0x78: bx(lineNone, lineNone, lineNone, lineHeavy),        // ╸
	0x79: bx(lineHeavy, lineNone, lineNone, lineNone),        // ╹
	0x7A: bx(lineNone, lineHeavy, lineNone, lineNone),        // ╺
	0x7B: bx(lineNone, lineNone, lineHeavy, lineNone),        // ╻
	0x7C: bx(lineNone, lineHeavy, lineNone, lineLight),       // ╼
	0x7D: bx(lineLight, lineNone, lineHeavy, lineNone),       // ╽
	0x7E: bx(lineNone, lineLight, lineNone, lineHeavy),       // ╾
	0x7F: bx(lineHeavy, lineNone, lineLight, lineNone),       // ╿
}

// boxWeights holds the pixel thicknesses derived from the cell height. All
// box-family drawing for one cell shares a single set so joints line up.
type boxWeights struct {
	light     float64
	heavy     float64
	double    float64 // thickness of each of the two parallel lines
	doubleGap float64 // clear space between the parallel lines
}

func weightsFor(h float64) boxWeights {
	return boxWeights{
		light:     math.Max(1, math.Round(h/12)),
		heavy:     math.Max(2, math.Round(h/6)),
		double:    math.Max(1, math.Round(h/16)),
		doubleGap: math.Max(2, math.Round(h/8)),
	}
}

// thickness returns the stroke thickness for a single line of the style
// (for doubles, one of the pair).
func (bw boxWeights) thickness(s lineStyle) float64 {
	switch s {
	case lineLight:
		return bw.light
	case lineHeavy:
		return bw.heavy
	case lineDouble:
		return bw.double
	}
	return 0
}

// visual returns the full visual extent of a stub perpendicular to its
// direction: for doubles, both lines plus the gap.
func (bw boxWeights) visual(s lineStyle) float64 {
	if s == lineDouble {
		return bw.doubleGap + 2*bw.double
	}
	return bw.thickness(s)
}

// drawBoxGlyph renders a box-drawing codepoint as axis-aligned rectangle
// fills. When two opposite stubs share a style the line is drawn as one
// full-edge rectangle; splitting it at the cell center leaves a one-pixel
// seam on surfaces that round the two halves differently.
func drawBoxGlyph(ctx Surface, r rune, x, y, w, h float64) {
	if r >= 0x2571 && r <= 0x2573 {
		drawBoxDiagonal(ctx, r, x, y, w, h)
		return
	}
	spec := boxSegments[r-0x2500]
	if spec == 0 {
		return
	}
	bw := weightsFor(h)
	up, right, down, left := spec.up(), spec.right(), spec.down(), spec.left()

	drawBoxAxis(ctx, bw, x, y, w, h, true, left, right, up, down)
	drawBoxAxis(ctx, bw, x, y, w, h, false, up, down, left, right)
}

// drawBoxAxis draws one axis of a glyph: neg/pos are the stub styles toward
// the negative and positive direction of the axis (left/right for the
// horizontal pass, up/down for the vertical), perpNeg/perpPos the styles of
// the crossing axis.
func drawBoxAxis(ctx Surface, bw boxWeights, x, y, w, h float64, horizontal bool, neg, pos, perpNeg, perpPos lineStyle) {
	if neg == lineNone && pos == lineNone {
		return
	}
	cx := x + w/2
	cy := y + h/2
	center := cx
	lo, hi := x, x+w
	if !horizontal {
		center = cy
		lo, hi = y, y+h
	}

	// rect fills a span [a0,a1] along the axis at perpendicular offset off
	// (relative to the axis centerline) with thickness t.
	rect := func(a0, a1, off, t float64) {
		if a1 <= a0 {
			return
		}
		if horizontal {
			ctx.FillRect(a0, cy+off-t/2, a1-a0, t)
		} else {
			ctx.FillRect(cx+off-t/2, a0, t, a1-a0)
		}
	}

	perpMax := math.Max(bw.visual(perpNeg), bw.visual(perpPos))

	// Through-line: both stubs share the style, so draw edge to edge.
	if neg == pos {
		if neg == lineDouble {
			c := (bw.doubleGap + bw.double) / 2
			rect(lo, hi, -c, bw.double)
			rect(lo, hi, +c, bw.double)
		} else {
			rect(lo, hi, 0, bw.thickness(neg))
		}
		return
	}

	for _, side := range [2]struct {
		style, opposite lineStyle
		positive        bool
	}{{neg, pos, false}, {pos, neg, true}} {
		if side.style == lineNone {
			continue
		}
		if side.style == lineDouble {
			drawDoubleStub(bw, rect, lo, hi, center, side.positive, side.opposite, perpNeg, perpPos, perpMax)
			continue
		}
		t := bw.thickness(side.style)
		// Stub end: stop at the center when nothing joins there, reach
		// past it by half our thickness over a differing opposite stub,
		// or far enough to cover the crossing line's full extent.
		end := center
		if side.opposite != lineNone {
			end = center + t/2
		} else if perpMax > 0 {
			end = center + perpMax/2
		}
		if side.positive {
			// mirrored for the positive-direction stub
			start := 2*center - end
			rect(start, hi, 0, t)
		} else {
			rect(lo, end, 0, t)
		}
	}
}

// drawDoubleStub draws the two parallel lines of a double-style stub. At
// double-double corners and tees the pair joins pairwise: the outer line
// runs to the crossing pair's outer line, the inner line to its inner line.
func drawDoubleStub(bw boxWeights, rect func(a0, a1, off, t float64), lo, hi, center float64, positive bool, opposite, perpNeg, perpPos lineStyle, perpMax float64) {
	t := bw.double
	c := (bw.doubleGap + t) / 2
	perpDouble := perpNeg == lineDouble || perpPos == lineDouble

	for _, off := range [2]float64{-c, +c} {
		// end is the stub's extent toward (and possibly past) the center,
		// expressed for the negative-direction stub; mirrored below.
		var end float64
		switch {
		case perpNeg != lineNone && perpPos != lineNone:
			if perpDouble {
				end = center - c + t/2 // stop at the near crossing line
			} else {
				end = center + perpMax/2
			}
		case perpNeg != lineNone || perpPos != lineNone:
			if perpDouble {
				// Corner: pair outer with outer, inner with inner. Which
				// sub-line is outer depends on the turn direction.
				outer := (perpPos != lineNone) == (off < 0)
				if outer {
					end = center + c + t/2
				} else {
					end = center - c + t/2
				}
			} else {
				end = center + perpMax/2
			}
		case opposite != lineNone:
			end = center + t/2
		default:
			end = center
		}
		if positive {
			rect(2*center-end, hi, off, t)
		} else {
			rect(lo, end, off, t)
		}
	}
}

// drawBoxDiagonal strokes U+2571..U+2573 corner to corner.
func drawBoxDiagonal(ctx Surface, r rune, x, y, w, h float64) {
	t := weightsFor(h).light
	ctx.SetLineWidth(t)
	if r == 0x2571 || r == 0x2573 { // ╱
		ctx.BeginPath()
		ctx.MoveTo(x, y+h)
		ctx.LineTo(x+w, y)
		ctx.Stroke()
	}
	if r == 0x2572 || r == 0x2573 { // ╲
		ctx.BeginPath()
		ctx.MoveTo(x, y)
		ctx.LineTo(x+w, y+h)
		ctx.Stroke()
	}
}

// drawRoundedGlyph renders U+256D..U+2570: a quarter arc whose endpoints
// meet the cell center on one axis and the cell edge on the other, with
// straight extensions out to the edges.
func drawRoundedGlyph(ctx Surface, r rune, x, y, w, h float64) {
	t := weightsFor(h).light
	rad := math.Min(w, h)/2 - t/2
	if rad < 1 {
		rad = 1
	}
	cx := x + w/2
	cy := y + h/2
	ctx.SetLineWidth(t)
	ctx.BeginPath()
	switch r {
	case 0x256D: // ╭ down and right
		ctx.MoveTo(cx, y+h)
		ctx.LineTo(cx, cy+rad)
		ctx.Arc(cx+rad, cy+rad, rad, math.Pi, 1.5*math.Pi)
		ctx.LineTo(x+w, cy)
	case 0x256E: // ╮ down and left
		ctx.MoveTo(cx, y+h)
		ctx.LineTo(cx, cy+rad)
		ctx.Arc(cx-rad, cy+rad, rad, 0, -0.5*math.Pi)
		ctx.LineTo(x, cy)
	case 0x256F: // ╯ up and left
		ctx.MoveTo(cx, y)
		ctx.LineTo(cx, cy-rad)
		ctx.Arc(cx-rad, cy-rad, rad, 0, 0.5*math.Pi)
		ctx.LineTo(x, cy)
	case 0x2570: // ╰ up and right
		ctx.MoveTo(cx, y)
		ctx.LineTo(cx, cy-rad)
		ctx.Arc(cx+rad, cy-rad, rad, math.Pi, 0.5*math.Pi)
		ctx.LineTo(x+w, cy)
	}
	ctx.Stroke()
}

// drawDashedGlyph renders the dashed box-drawing lines: N dashes of width
// axisLen/(2N-1) interleaved with equal gaps.
func drawDashedGlyph(ctx Surface, r rune, x, y, w, h float64) {
	bw := weightsFor(h)
	var n int
	var horiz bool
	t := bw.light
	switch r {
	case 0x2504, 0x2505:
		n, horiz = 3, true
	case 0x2506, 0x2507:
		n, horiz = 3, false
	case 0x2508, 0x2509:
		n, horiz = 4, true
	case 0x250A, 0x250B:
		n, horiz = 4, false
	case 0x254C, 0x254D:
		n, horiz = 2, true
	case 0x254E, 0x254F:
		n, horiz = 2, false
	default:
		return
	}
	switch r {
	case 0x2505, 0x2507, 0x2509, 0x250B, 0x254D, 0x254F:
		t = bw.heavy
	}

	cx := x + w/2
	cy := y + h/2
	axis := w
	if !horiz {
		axis = h
	}
	dash := axis / float64(2*n-1)
	for i := 0; i < n; i++ {
		off := float64(2*i) * dash
		if horiz {
			ctx.FillRect(x+off, cy-t/2, dash, t)
		} else {
			ctx.FillRect(cx-t/2, y+off, t, dash)
		}
	}
}
