package purfectrender

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordSurface records draw calls for white-box glyph assertions.
type recordSurface struct {
	rects   []rect
	pts     []pt
	arcs    []arcCall
	strokes int
	fills   int
	alpha   float64
	metrics TextMetrics
}

type rect struct {
	x, y, w, h float64
}

type pt struct {
	x, y float64
}

type arcCall struct {
	cx, cy, r, a0, a1 float64
}

func newRecordSurface() *recordSurface {
	return &recordSurface{alpha: 1}
}

func (s *recordSurface) SetFont(Font)           {}
func (s *recordSurface) SetFill(RGB)            {}
func (s *recordSurface) SetStroke(RGB)          {}
func (s *recordSurface) SetLineWidth(float64)   {}
func (s *recordSurface) SetGlobalAlpha(a float64) { s.alpha = a }
func (s *recordSurface) FillRect(x, y, w, h float64) {
	s.rects = append(s.rects, rect{x, y, w, h})
}
func (s *recordSurface) StrokeRect(x, y, w, h float64) {}
func (s *recordSurface) BeginPath()                    {}
func (s *recordSurface) MoveTo(x, y float64)           { s.pts = append(s.pts, pt{x, y}) }
func (s *recordSurface) LineTo(x, y float64)           { s.pts = append(s.pts, pt{x, y}) }
func (s *recordSurface) Arc(cx, cy, r, a0, a1 float64) {
	s.arcs = append(s.arcs, arcCall{cx, cy, r, a0, a1})
}
func (s *recordSurface) ClosePath()                               {}
func (s *recordSurface) Fill()                                    { s.fills++ }
func (s *recordSurface) Stroke()                                  { s.strokes++ }
func (s *recordSurface) FillText(string, float64, float64)        {}
func (s *recordSurface) MeasureText(string) TextMetrics           { return s.metrics }
func (s *recordSurface) Scale(sx, sy float64)                     {}

func TestBoxSegmentTable(t *testing.T) {
	cases := []struct {
		r                     rune
		up, right, down, left lineStyle
	}{
		{0x2500, lineNone, lineLight, lineNone, lineLight},   // ─
		{0x2501, lineNone, lineHeavy, lineNone, lineHeavy},   // ━
		{0x2502, lineLight, lineNone, lineLight, lineNone},   // │
		{0x250C, lineNone, lineLight, lineLight, lineNone},   // ┌
		{0x2518, lineLight, lineNone, lineNone, lineLight},   // ┘
		{0x251C, lineLight, lineLight, lineLight, lineNone},  // ├
		{0x253C, lineLight, lineLight, lineLight, lineLight}, // ┼
		{0x254B, lineHeavy, lineHeavy, lineHeavy, lineHeavy}, // ╋
		{0x2550, lineNone, lineDouble, lineNone, lineDouble}, // ═
		{0x2554, lineNone, lineDouble, lineDouble, lineNone}, // ╔
		{0x256C, lineDouble, lineDouble, lineDouble, lineDouble}, // ╬
		{0x2574, lineNone, lineNone, lineNone, lineLight},        // ╴
		{0x257C, lineNone, lineHeavy, lineNone, lineLight},       // ╼
		{0x257F, lineHeavy, lineNone, lineLight, lineNone},       // ╿
	}
	for _, tc := range cases {
		spec := boxSegments[tc.r-0x2500]
		assert.Equal(t, tc.up, spec.up(), "up of %U", tc.r)
		assert.Equal(t, tc.right, spec.right(), "right of %U", tc.r)
		assert.Equal(t, tc.down, spec.down(), "down of %U", tc.r)
		assert.Equal(t, tc.left, spec.left(), "left of %U", tc.r)
	}
}

func TestBoxWeights(t *testing.T) {
	bw := weightsFor(12)
	assert.Equal(t, 1.0, bw.light)
	assert.Equal(t, 2.0, bw.heavy)
	assert.Equal(t, 1.0, bw.double)
	assert.Equal(t, 2.0, bw.doubleGap)

	// Small cells keep the floors.
	bw = weightsFor(6)
	assert.Equal(t, 1.0, bw.light)
	assert.Equal(t, 2.0, bw.heavy)
	assert.Equal(t, 1.0, bw.double)
	assert.Equal(t, 2.0, bw.doubleGap)

	bw = weightsFor(48)
	assert.Equal(t, 4.0, bw.light)
	assert.Equal(t, 8.0, bw.heavy)
	assert.Equal(t, 3.0, bw.double)
	assert.Equal(t, 6.0, bw.doubleGap)
}

func TestHorizontalLineIsSingleRect(t *testing.T) {
	s := newRecordSurface()
	drawBoxGlyph(s, 0x2500, 0, 0, 10, 20)
	require.Len(t, s.rects, 1)
	r := s.rects[0]
	assert.Equal(t, 0.0, r.x)
	assert.Equal(t, 10.0, r.w, "through-line must span the full cell width")
}

func TestDoubleThroughLineIsTwoFullRects(t *testing.T) {
	s := newRecordSurface()
	drawBoxGlyph(s, 0x2550, 0, 0, 10, 20)
	require.Len(t, s.rects, 2)
	for _, r := range s.rects {
		assert.Equal(t, 0.0, r.x)
		assert.Equal(t, 10.0, r.w)
	}
	assert.NotEqual(t, s.rects[0].y, s.rects[1].y, "parallel lines must not coincide")
}

func TestLoneStubStopsAtCenter(t *testing.T) {
	s := newRecordSurface()
	drawBoxGlyph(s, 0x2574, 0, 0, 10, 20) // ╴ left stub only
	require.Len(t, s.rects, 1)
	r := s.rects[0]
	assert.Equal(t, 0.0, r.x)
	assert.Equal(t, 5.0, r.w, "a stub with no opposite must not cross the center")
}

func TestMixedStylesOverlapCenter(t *testing.T) {
	s := newRecordSurface()
	drawBoxGlyph(s, 0x257C, 0, 0, 10, 20) // ╼ left light, right heavy
	require.Len(t, s.rects, 2)
	// Each stub extends past the center by half its own thickness.
	bw := weightsFor(20)
	left := s.rects[0]
	right := s.rects[1]
	assert.Equal(t, 5.0+bw.light/2, left.x+left.w)
	assert.Equal(t, 5.0-bw.heavy/2, right.x)
	assert.Equal(t, 10.0, right.x+right.w)
}

func TestCornerStubsCoverJoint(t *testing.T) {
	s := newRecordSurface()
	drawBoxGlyph(s, 0x250C, 0, 0, 10, 20) // ┌ down+right
	require.Len(t, s.rects, 2)
	h := s.rects[0] // horizontal pass first
	v := s.rects[1]
	bw := weightsFor(20)
	// The right stub reaches left of center by half the vertical stub's
	// thickness, and vice versa, so the corner has no notch.
	assert.Equal(t, 5.0-bw.light/2, h.x)
	assert.Equal(t, 10.0-bw.light/2, v.y)
	assert.Equal(t, 20.0, v.y+v.h)
}

func TestShadeUsesGlobalAlpha(t *testing.T) {
	s := newRecordSurface()
	drawBlockGlyph(s, 0x2592, 0, 0, 10, 20) // ▒ medium shade
	require.Len(t, s.rects, 1)
	// Alpha is restored after the fill.
	assert.Equal(t, 1.0, s.alpha)
}

func TestDashedGlyphGeometry(t *testing.T) {
	s := newRecordSurface()
	drawDashedGlyph(s, 0x2504, 0, 0, 10, 20) // ┄ triple dash horizontal
	require.Len(t, s.rects, 3)
	dash := 10.0 / 5.0
	for i, r := range s.rects {
		assert.InDelta(t, float64(2*i)*dash, r.x, 1e-9)
		assert.InDelta(t, dash, r.w, 1e-9)
	}
}

func TestDiagonalStrokes(t *testing.T) {
	s := newRecordSurface()
	drawBoxGlyph(s, 0x2573, 0, 0, 10, 20) // ╳
	assert.Equal(t, 2, s.strokes)
}
