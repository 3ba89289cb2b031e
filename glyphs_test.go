package purfectrender

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	gw = 10.0
	gh = 16.0
)

func TestBlockUpperHalf(t *testing.T) {
	s := newRecordSurface()
	drawBlockGlyph(s, 0x2580, 0, 0, gw, gh) // ▀
	require.Len(t, s.rects, 1)
	assert.Equal(t, rect{0, 0, gw, 8}, s.rects[0])
}

func TestBlockLowerEighths(t *testing.T) {
	s := newRecordSurface()
	drawBlockGlyph(s, 0x2583, 0, 0, gw, gh) // ▃ lower 3/8
	require.Len(t, s.rects, 1)
	part := math.Round(gh * 3 / 8)
	assert.Equal(t, rect{0, gh - part, gw, part}, s.rects[0])
}

func TestBlockLeftEighths(t *testing.T) {
	s := newRecordSurface()
	drawBlockGlyph(s, 0x2589, 0, 0, gw, gh) // ▉ left 7/8
	require.Len(t, s.rects, 1)
	assert.Equal(t, rect{0, 0, math.Round(gw * 7 / 8), gh}, s.rects[0])
}

func TestBlockQuadrants(t *testing.T) {
	s := newRecordSurface()
	drawBlockGlyph(s, 0x259A, 0, 0, gw, gh) // ▚ upper-left + lower-right
	require.Len(t, s.rects, 2)
	assert.Equal(t, rect{0, 0, 5, 8}, s.rects[0])
	assert.Equal(t, rect{5, 8, 5, 8}, s.rects[1])
}

func TestBlockQuadrantsAbsorbRemainder(t *testing.T) {
	s := newRecordSurface()
	drawBlockGlyph(s, 0x2588, 0, 0, 9, 15) // █ sanity: full cell
	require.Len(t, s.rects, 1)
	assert.Equal(t, rect{0, 0, 9, 15}, s.rects[0])

	s = newRecordSurface()
	drawBlockGlyph(s, 0x259F, 0, 0, 9, 15) // ▟ all but upper-left
	// The second half of each axis absorbs the odd pixel.
	total := 0.0
	for _, r := range s.rects {
		total += r.w * r.h
	}
	assert.Equal(t, 5.0*7+4.0*8+5.0*8, total)
}

func TestBrailleDotLayout(t *testing.T) {
	s := newRecordSurface()
	drawBrailleGlyph(s, 0x2801, 0, 0, gw, gh) // dot 1 only
	require.Len(t, s.arcs, 1)
	a := s.arcs[0]
	assert.InDelta(t, gw*0.15, a.cx, 1e-9, "dot 1 sits on the left inner edge")
	assert.InDelta(t, gh*0.10, a.cy, 1e-9, "dot 1 sits on the top inner edge")

	s = newRecordSurface()
	drawBrailleGlyph(s, 0x28FF, 0, 0, gw, gh) // all 8 dots
	assert.Len(t, s.arcs, 8)

	s = newRecordSurface()
	drawBrailleGlyph(s, 0x2880, 0, 0, gw, gh) // dot 8: right column, bottom row
	require.Len(t, s.arcs, 1)
	a = s.arcs[0]
	assert.InDelta(t, gw*0.15+(gw-2*gw*0.15), a.cx, 1e-9)
	assert.InDelta(t, gh*0.10+(gh-2*gh*0.10), a.cy, 1e-9)
}

func TestBrailleBlankDrawsNothing(t *testing.T) {
	s := newRecordSurface()
	drawBrailleGlyph(s, 0x2800, 0, 0, gw, gh)
	assert.Empty(t, s.arcs)
	assert.Zero(t, s.fills)
}

func TestSextantFirstPattern(t *testing.T) {
	s := newRecordSurface()
	drawSextantGlyph(s, 0x1FB00, 0, 0, gw, gh) // pattern 1: top-left block
	require.Len(t, s.rects, 1)
	assert.Equal(t, rect{0, 0, 5, 6}, s.rects[0])
}

func TestSextantSkipsHalfBlockPatterns(t *testing.T) {
	// 0x1FB13 maps to pattern 20; the next codepoint skips the left-half
	// pattern 21 and lands on 22.
	s := newRecordSurface()
	drawSextantGlyph(s, 0x1FB14, 0, 0, gw, gh)
	// Pattern 22 = 0b010110: three cells set.
	assert.Len(t, s.rects, 3)
}

func TestOctantFirstPattern(t *testing.T) {
	s := newRecordSurface()
	drawOctantGlyph(s, 0x1CD00, 0, 0, gw, gh)
	require.Len(t, s.rects, 1)
	assert.Equal(t, rect{0, 0, 5, 4}, s.rects[0])
}

func TestBitGridEdgesAbsorbRemainder(t *testing.T) {
	s := newRecordSurface()
	drawBitGrid(s, 0b111111, 2, 3, 0, 0, 9, 16)
	require.Len(t, s.rects, 6)
	total := 0.0
	for _, r := range s.rects {
		total += r.w * r.h
		assert.LessOrEqual(t, r.x+r.w, 9.0)
		assert.LessOrEqual(t, r.y+r.h, 16.0)
	}
	assert.Equal(t, 9.0*16.0, total, "full pattern must cover the cell exactly")
}

func TestPowerlineRightTriangle(t *testing.T) {
	s := newRecordSurface()
	drawPowerlineGlyph(s, 0xE0B0, 0, 0, gw, gh)
	require.Len(t, s.pts, 3)
	assert.Equal(t, pt{0, 0}, s.pts[0])
	assert.Equal(t, pt{gw, gh / 2}, s.pts[1], "apex at the midpoint of the opposite side")
	assert.Equal(t, pt{0, gh}, s.pts[2])
	assert.Equal(t, 1, s.fills)
}

func TestCornerTriangleLowerRight(t *testing.T) {
	s := newRecordSurface()
	drawCornerTriangle(s, 0x25E2, 0, 0, gw, gh) // ◢
	require.Len(t, s.pts, 3)
	assert.Equal(t, pt{gw, gh}, s.pts[0])
	assert.Equal(t, 1, s.fills)
}

func TestWedgeSmallTriangle(t *testing.T) {
	s := newRecordSurface()
	drawWedgeGlyph(s, 0x1FB3C, 0, 0, gw, gh) // smallest lower-left wedge
	require.Len(t, s.pts, 3)
	assert.Equal(t, pt{0, gh}, s.pts[0])
	assert.InDelta(t, gw/3, s.pts[1].x, 1e-9)
	assert.InDelta(t, gh-gh/3, s.pts[2].y, 1e-9)
}

func TestWedgeFullRange(t *testing.T) {
	// Every codepoint in the wedge block must draw something.
	for r := rune(0x1FB3C); r <= 0x1FB8B; r++ {
		s := newRecordSurface()
		drawWedgeGlyph(s, r, 0, 0, gw, gh)
		assert.True(t, s.fills > 0 || len(s.rects) > 0, "wedge %U drew nothing", r)
	}
}

func TestMosaicFullRange(t *testing.T) {
	for r := rune(0x1FB90); r <= 0x1FBAF; r++ {
		s := newRecordSurface()
		drawMosaicGlyph(s, r, 0, 0, gw, gh)
		assert.True(t, s.fills > 0 || len(s.rects) > 0, "mosaic %U drew nothing", r)
	}
}

func TestRoundedCornerArc(t *testing.T) {
	s := newRecordSurface()
	drawRoundedGlyph(s, 0x256D, 0, 0, gw, gh) // ╭
	require.Len(t, s.arcs, 1)
	a := s.arcs[0]
	bw := weightsFor(gh)
	rad := math.Min(gw, gh)/2 - bw.light/2
	assert.InDelta(t, gw/2+rad, a.cx, 1e-9)
	assert.InDelta(t, gh/2+rad, a.cy, 1e-9)
	assert.InDelta(t, rad, a.r, 1e-9)
	assert.Equal(t, 1, s.strokes)
}

func TestRoundedCornersAllStroke(t *testing.T) {
	for r := rune(0x256D); r <= 0x2570; r++ {
		s := newRecordSurface()
		drawRoundedGlyph(s, r, 0, 0, gw, gh)
		assert.Len(t, s.arcs, 1, "%U", r)
		assert.Equal(t, 1, s.strokes, "%U", r)
	}
}

func TestDispatcherCoversFamilies(t *testing.T) {
	for _, r := range []rune{0x2500, 0x256D, 0x2504, 0x2588, 0x2847, 0x1FB07, 0x1FB50, 0x1FB9A, 0x1CD42, 0x25E3, 0xE0B2} {
		fam := ClassifyGlyph(r)
		require.NotEqual(t, FamilyText, fam, "%U must classify", r)
		s := newRecordSurface()
		drawGlyph(s, fam, r, 0, 0, gw, gh)
		drew := s.fills > 0 || len(s.rects) > 0 || s.strokes > 0
		assert.True(t, drew, "%U drew nothing", r)
	}
}
