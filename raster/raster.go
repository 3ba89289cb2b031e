// Package raster implements purfectrender's Canvas and Surface on a plain
// image.RGBA, with text drawn through golang.org/x/image font faces. It has
// no display dependency, which makes it the backend for headless rendering
// (PNG output) and for pixel-exact tests; the sdl package also blits its
// frames to a window.
package raster

import (
	"image"
	"image/color"
	"math"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/phroun/purfectrender"
)

// Canvas owns an RGBA backing store and its drawing context.
type Canvas struct {
	img *image.RGBA
	ctx *Context
}

// New creates a canvas of the given size in device pixels.
func New(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
	c.ctx = newContext(c)
	return c
}

// Surface returns the canvas's drawing context.
func (c *Canvas) Surface() purfectrender.Surface { return c.ctx }

// Size returns the backing store size in device pixels.
func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// SetSize reallocates the backing store and resets the transform, matching
// canvas semantics: resizing discards content and transform alike.
func (c *Canvas) SetSize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.img = image.NewRGBA(image.Rect(0, 0, w, h))
	c.ctx.resetTransform()
}

// Image exposes the backing store for blitting or encoding.
func (c *Canvas) Image() *image.RGBA { return c.img }

// SetFace registers a font face for a family and style. Unregistered
// combinations fall back to the regular face of the family, then to the
// built-in 7x13 basic font.
func (c *Canvas) SetFace(family string, bold, italic bool, face font.Face) {
	c.ctx.faces[faceKey{family, bold, italic}] = face
}

type faceKey struct {
	family string
	bold   bool
	italic bool
}

// Context is the Surface implementation. Paths support line segments and
// flattened circular arcs; fills are scanline even-odd without
// antialiasing, which keeps glyph edges on exact pixel boundaries so
// adjacent cells butt together without seams.
type Context struct {
	canvas *Canvas

	fill      purfectrender.RGB
	stroke    purfectrender.RGB
	alpha     float64
	lineWidth float64
	sx, sy    float64
	font      purfectrender.Font
	faces     map[faceKey]font.Face

	path    [][]point
	current []point
}

type point struct {
	x, y float64
}

func newContext(c *Canvas) *Context {
	return &Context{
		canvas:    c,
		alpha:     1,
		lineWidth: 1,
		sx:        1,
		sy:        1,
		faces:     map[faceKey]font.Face{},
	}
}

func (ctx *Context) resetTransform() {
	ctx.sx, ctx.sy = 1, 1
}

func (ctx *Context) SetFont(f purfectrender.Font)      { ctx.font = f }
func (ctx *Context) SetFill(c purfectrender.RGB)       { ctx.fill = c }
func (ctx *Context) SetStroke(c purfectrender.RGB)     { ctx.stroke = c }
func (ctx *Context) SetLineWidth(w float64)            { ctx.lineWidth = w }
func (ctx *Context) SetGlobalAlpha(a float64) {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	ctx.alpha = a
}

func (ctx *Context) Scale(sx, sy float64) {
	ctx.sx *= sx
	ctx.sy *= sy
}

// --- Rectangles ---

func (ctx *Context) FillRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	x0 := int(math.Round(x * ctx.sx))
	y0 := int(math.Round(y * ctx.sy))
	x1 := int(math.Round((x + w) * ctx.sx))
	y1 := int(math.Round((y + h) * ctx.sy))
	ctx.fillSpanRect(x0, y0, x1, y1, ctx.fill)
}

func (ctx *Context) StrokeRect(x, y, w, h float64) {
	t := ctx.lineWidth
	ctx.strokeSegment(x, y, x+w, y, ctx.stroke, t)
	ctx.strokeSegment(x+w, y, x+w, y+h, ctx.stroke, t)
	ctx.strokeSegment(x+w, y+h, x, y+h, ctx.stroke, t)
	ctx.strokeSegment(x, y+h, x, y, ctx.stroke, t)
}

func (ctx *Context) fillSpanRect(x0, y0, x1, y1 int, c purfectrender.RGB) {
	b := ctx.canvas.img.Bounds()
	if x0 < b.Min.X {
		x0 = b.Min.X
	}
	if y0 < b.Min.Y {
		y0 = b.Min.Y
	}
	if x1 > b.Max.X {
		x1 = b.Max.X
	}
	if y1 > b.Max.Y {
		y1 = b.Max.Y
	}
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			ctx.blendPixel(px, py, c)
		}
	}
}

func (ctx *Context) blendPixel(px, py int, c purfectrender.RGB) {
	img := ctx.canvas.img
	if ctx.alpha >= 1 {
		img.SetRGBA(px, py, color.RGBA{c.R, c.G, c.B, 255})
		return
	}
	a := ctx.alpha
	old := img.RGBAAt(px, py)
	blend := func(s uint8, d uint8) uint8 {
		return uint8(math.Round(float64(s)*a + float64(d)*(1-a)))
	}
	img.SetRGBA(px, py, color.RGBA{
		R: blend(c.R, old.R),
		G: blend(c.G, old.G),
		B: blend(c.B, old.B),
		A: 255,
	})
}

// --- Paths ---

func (ctx *Context) BeginPath() {
	ctx.path = nil
	ctx.current = nil
}

func (ctx *Context) MoveTo(x, y float64) {
	ctx.flushSubpath()
	ctx.current = []point{{x * ctx.sx, y * ctx.sy}}
}

func (ctx *Context) LineTo(x, y float64) {
	if ctx.current == nil {
		ctx.MoveTo(x, y)
		return
	}
	ctx.current = append(ctx.current, point{x * ctx.sx, y * ctx.sy})
}

// Arc flattens a circular arc into line segments. The sweep runs from
// startAngle toward endAngle; a smaller endAngle sweeps counterclockwise.
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
// Subpaths are closed implicitly.
func (ctx *Context) Fill() {
	ctx.flushSubpath()
	if len(ctx.path) == 0 {
		return
	}

	type edge struct {
		y0, y1 float64 // y0 < y1
		x0     float64 // x at y0
		slope  float64 // dx/dy
	}
	var edges []edge
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, sub := range ctx.path {
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
			edges = append(edges, edge{
				y0:    p0.y,
				y1:    p1.y,
				x0:    p0.x,
				slope: (p1.x - p0.x) / (p1.y - p0.y),
			})
			minY = math.Min(minY, p0.y)
			maxY = math.Max(maxY, p1.y)
		}
	}
	if len(edges) == 0 {
		return
	}

	b := ctx.canvas.img.Bounds()
	yStart := int(math.Max(math.Floor(minY), float64(b.Min.Y)))
	yEnd := int(math.Min(math.Ceil(maxY), float64(b.Max.Y)))
	var xs []float64
	for py := yStart; py < yEnd; py++ {
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
			ctx.fillSpanRect(x0, py, x1, py+1, ctx.fill)
		}
	}
	ctx.path = nil
}

// Stroke draws each path segment as a filled quad of lineWidth thickness.
// Joins are covered by segment overlap at shared endpoints.
func (ctx *Context) Stroke() {
	ctx.flushSubpath()
	half := ctx.lineWidth / 2
	for _, sub := range ctx.path {
		for i := 0; i+1 < len(sub); i++ {
			p0, p1 := sub[i], sub[i+1]
			ctx.strokeDeviceSegment(p0, p1, ctx.stroke, half)
		}
	}
	ctx.path = nil
}

func (ctx *Context) strokeSegment(x0, y0, x1, y1 float64, c purfectrender.RGB, width float64) {
	p0 := point{x0 * ctx.sx, y0 * ctx.sy}
	p1 := point{x1 * ctx.sx, y1 * ctx.sy}
	ctx.strokeDeviceSegment(p0, p1, c, width/2)
}

func (ctx *Context) strokeDeviceSegment(p0, p1 point, c purfectrender.RGB, half float64) {
	dx := p1.x - p0.x
	dy := p1.y - p0.y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// Perpendicular unit offset.
	ox := -dy / length * half
	oy := dx / length * half

	quad := [][]point{{
		{p0.x + ox, p0.y + oy},
		{p1.x + ox, p1.y + oy},
		{p1.x - ox, p1.y - oy},
		{p0.x - ox, p0.y - oy},
	}}
	savedPath := ctx.path
	savedFill := ctx.fill
	ctx.path = quad
	ctx.fill = c
	ctx.Fill()
	ctx.path = savedPath
	ctx.fill = savedFill
}

// --- Text ---

func (ctx *Context) face() font.Face {
	if f, ok := ctx.faces[faceKey{ctx.font.Family, ctx.font.Bold, ctx.font.Italic}]; ok {
		return f
	}
	if f, ok := ctx.faces[faceKey{ctx.font.Family, false, false}]; ok {
		return f
	}
	return basicfont.Face7x13
}

// FillText draws s with its baseline at y. Positions honor the transform
// scale; glyph rasters come from the face unscaled, so hosts wanting
// high-DPI text register appropriately sized faces.
func (ctx *Context) FillText(s string, x, y float64) {
	col := color.RGBA{ctx.fill.R, ctx.fill.G, ctx.fill.B, 255}
	if ctx.alpha < 1 {
		a := ctx.alpha
		col = color.RGBA{
			R: uint8(float64(ctx.fill.R) * a),
			G: uint8(float64(ctx.fill.G) * a),
			B: uint8(float64(ctx.fill.B) * a),
			A: uint8(255 * a),
		}
	}
	d := font.Drawer{
		Dst:  ctx.canvas.img,
		Src:  image.NewUniform(col),
		Face: ctx.face(),
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(math.Round(x * ctx.sx * 64)),
			Y: fixed.Int26_6(math.Round(y * ctx.sy * 64)),
		},
	}
	d.DrawString(s)
}

// MeasureText reports the advance width plus the face's font-declared
// ascent and descent. Per-glyph bounds are not tracked; the metrics engine
// falls back accordingly.
func (ctx *Context) MeasureText(s string) purfectrender.TextMetrics {
	f := ctx.face()
	m := f.Metrics()
	return purfectrender.TextMetrics{
		Width:                  float64(font.MeasureString(f, s)) / 64,
		FontBoundingBoxAscent:  float64(m.Ascent) / 64,
		FontBoundingBoxDescent: float64(m.Descent) / 64,
	}
}
