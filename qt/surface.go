// Package purfectrenderqt hosts the renderer in a Qt widget via the miqt
// bindings, rendering into an offscreen QPixmap.
package purfectrenderqt

import (
	"math"
	"sort"

	"github.com/mappu/miqt/qt"

	"github.com/phroun/purfectrender"
)

// Canvas owns a QPixmap backing store with a painter kept open across
// frames, so render state persists between paint events the way it does on
// a web canvas.
type Canvas struct {
	pixmap  *qt.QPixmap
	painter *qt.QPainter
	ctx     *Context
	w, h    int
}

// NewCanvas allocates a pixmap of the given device size.
func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{w: w, h: h}
	c.pixmap = qt.NewQPixmap2(w, h)
	c.painter = qt.NewQPainter2(c.pixmap.QPaintDevice)
	c.ctx = newContext(c.painter)
	return c
}

func (c *Canvas) Surface() purfectrender.Surface { return c.ctx }

func (c *Canvas) Size() (int, int) { return c.w, c.h }

// SetSize reallocates the pixmap, discarding contents and transform.
func (c *Canvas) SetSize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.painter.End()
	c.w, c.h = w, h
	c.pixmap = qt.NewQPixmap2(w, h)
	c.painter = qt.NewQPainter2(c.pixmap.QPaintDevice)
	c.ctx.painter = c.painter
	c.ctx.sx, c.ctx.sy = 1, 1
}

// Pixmap exposes the backing store for the widget's blit.
func (c *Canvas) Pixmap() *qt.QPixmap { return c.pixmap }

// Context implements purfectrender.Surface on a QPainter. Paths are
// flattened and rasterized as horizontal spans through FillRect, keeping
// glyph edges on exact pixel boundaries; text uses QPainter's text engine.
type Context struct {
	painter *qt.QPainter

	fill   purfectrender.RGB
	stroke purfectrender.RGB
	font   purfectrender.Font
	lineW  float64
	sx, sy float64

	path    [][]qtPoint
	current []qtPoint
}

type qtPoint struct {
	x, y float64
}

func newContext(p *qt.QPainter) *Context {
	return &Context{painter: p, lineW: 1, sx: 1, sy: 1}
}

func qcolor(c purfectrender.RGB) *qt.QColor {
	return qt.NewQColor3(int(c.R), int(c.G), int(c.B))
}

func (ctx *Context) SetFont(f purfectrender.Font)  { ctx.font = f }
func (ctx *Context) SetFill(c purfectrender.RGB)   { ctx.fill = c }
func (ctx *Context) SetStroke(c purfectrender.RGB) { ctx.stroke = c }
func (ctx *Context) SetLineWidth(w float64)        { ctx.lineW = w }

func (ctx *Context) SetGlobalAlpha(a float64) {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	ctx.painter.SetOpacity(a)
}

func (ctx *Context) Scale(sx, sy float64) {
	ctx.sx *= sx
	ctx.sy *= sy
}

func (ctx *Context) FillRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	x0 := int(math.Round(x * ctx.sx))
	y0 := int(math.Round(y * ctx.sy))
	x1 := int(math.Round((x + w) * ctx.sx))
	y1 := int(math.Round((y + h) * ctx.sy))
	ctx.painter.FillRect5(x0, y0, x1-x0, y1-y0, qcolor(ctx.fill))
}

func (ctx *Context) StrokeRect(x, y, w, h float64) {
	ctx.BeginPath()
	ctx.MoveTo(x, y)
	ctx.LineTo(x+w, y)
	ctx.LineTo(x+w, y+h)
	ctx.LineTo(x, y+h)
	ctx.ClosePath()
	ctx.Stroke()
}

func (ctx *Context) BeginPath() {
	ctx.path = nil
	ctx.current = nil
}

func (ctx *Context) MoveTo(x, y float64) {
	ctx.flushSubpath()
	ctx.current = []qtPoint{{x * ctx.sx, y * ctx.sy}}
}

func (ctx *Context) LineTo(x, y float64) {
	if ctx.current == nil {
		ctx.MoveTo(x, y)
		return
	}
	ctx.current = append(ctx.current, qtPoint{x * ctx.sx, y * ctx.sy})
}

func (ctx *Context) Arc(cx, cy, r, startAngle, endAngle float64) {
	const step = math.Pi / 32
	sweep := endAngle - startAngle
	steps := int(math.Ceil(math.Abs(sweep) / step))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		a := startAngle + sweep*float64(i)/float64(steps)
		x := cx + r*math.Cos(a)
		y := cy + r*math.Sin(a)
		if i == 0 && ctx.current == nil {
			ctx.MoveTo(x, y)
			continue
		}
		ctx.LineTo(x, y)
	}
}

func (ctx *Context) ClosePath() {
	if len(ctx.current) > 1 {
		ctx.current = append(ctx.current, ctx.current[0])
	}
}

func (ctx *Context) flushSubpath() {
	if len(ctx.current) > 1 {
		ctx.path = append(ctx.path, ctx.current)
	}
	ctx.current = nil
}

// Fill rasterizes the accumulated path with even-odd scanline filling.
func (ctx *Context) Fill() {
	ctx.flushSubpath()
	ctx.fillPolygons(ctx.path, ctx.fill)
	ctx.path = nil
}

// Stroke draws each segment as a filled quad of the current line width.
func (ctx *Context) Stroke() {
	ctx.flushSubpath()
	half := ctx.lineW / 2
	for _, sub := range ctx.path {
		for i := 0; i+1 < len(sub); i++ {
			p0, p1 := sub[i], sub[i+1]
			dx := p1.x - p0.x
			dy := p1.y - p0.y
			length := math.Hypot(dx, dy)
			if length == 0 {
				continue
			}
			ox := -dy / length * half
			oy := dx / length * half
			quad := [][]qtPoint{{
				{p0.x + ox, p0.y + oy},
				{p1.x + ox, p1.y + oy},
				{p1.x - ox, p1.y - oy},
				{p0.x - ox, p0.y - oy},
			}}
			ctx.fillPolygons(quad, ctx.stroke)
		}
	}
	ctx.path = nil
}

func (ctx *Context) fillPolygons(polys [][]qtPoint, col purfectrender.RGB) {
	if len(polys) == 0 {
		return
	}
	type edge struct {
		y0, y1, x0, slope float64
	}
	var edges []edge
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, sub := range polys {
		n := len(sub)
		for i := 0; i < n; i++ {
			p0 := sub[i]
			p1 := sub[(i+1)%n]
			if p0.y == p1.y {
				continue
			}
			if p0.y > p1.y {
				p0, p1 = p1, p0
			}
			edges = append(edges, edge{p0.y, p1.y, p0.x, (p1.x - p0.x) / (p1.y - p0.y)})
			minY = math.Min(minY, p0.y)
			maxY = math.Max(maxY, p1.y)
		}
	}
	if len(edges) == 0 {
		return
	}
	qc := qcolor(col)
	var xs []float64
	for py := int(math.Floor(minY)); py < int(math.Ceil(maxY)); py++ {
		sy := float64(py) + 0.5
		xs = xs[:0]
		for _, e := range edges {
			if sy < e.y0 || sy >= e.y1 {
				continue
			}
			xs = append(xs, e.x0+(sy-e.y0)*e.slope)
		}
		if len(xs) < 2 {
			continue
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := int(math.Round(xs[i]))
			x1 := int(math.Round(xs[i+1]))
			if x1 > x0 {
				ctx.painter.FillRect5(x0, py, x1-x0, 1, qc)
			}
		}
	}
}

func (ctx *Context) qfont() *qt.QFont {
	font := qt.NewQFont6(ctx.font.Family, ctx.font.Size)
	font.SetPixelSize(ctx.font.Size)
	font.SetFixedPitch(true)
	font.SetBold(ctx.font.Bold)
	font.SetItalic(ctx.font.Italic)
	return font
}

// FillText draws s with its baseline at y.
func (ctx *Context) FillText(s string, x, y float64) {
	ctx.painter.SetFont(ctx.qfont())
	pen := qt.NewQPen3(qcolor(ctx.fill))
	ctx.painter.SetPenWithPen(pen)
	ctx.painter.DrawText3(int(math.Round(x*ctx.sx)), int(math.Round(y*ctx.sy)), s)
}

// MeasureText reports QFontMetrics' font-declared ascent/descent and the
// advance of s.
func (ctx *Context) MeasureText(s string) purfectrender.TextMetrics {
	metrics := qt.NewQFontMetrics(ctx.qfont())
	return purfectrender.TextMetrics{
		Width:                  float64(metrics.HorizontalAdvance(s)),
		FontBoundingBoxAscent:  float64(metrics.Ascent()),
		FontBoundingBoxDescent: float64(metrics.Descent()),
	}
}
