package purfectrender

import "errors"

// ErrNoSurface is returned by New when the supplied canvas cannot provide a
// 2D drawing surface. There is no recovery at this layer; the host must hand
// us a working canvas.
var ErrNoSurface = errors.New("purfectrender: canvas has no 2D surface")

// Font describes the font state applied to a Surface before text operations.
type Font struct {
	Family string
	Size   int // CSS pixels
	Bold   bool
	Italic bool
}

// TextMetrics is the result of measuring a string on a Surface.
//
// FontBoundingBox ascent/descent are font-declared values that do not vary
// with the measured content; ActualBoundingBox values are per-glyph. A
// backend that cannot supply one group reports zeros for it and the metrics
// engine falls through to the next source.
type TextMetrics struct {
	Width                    float64
	FontBoundingBoxAscent    float64
	FontBoundingBoxDescent   float64
	ActualBoundingBoxAscent  float64
	ActualBoundingBoxDescent float64
}

// Surface is the 2D raster context the renderer draws on. It mirrors the
// operations every toolkit in practice provides (cairo, QPainter, a plain
// RGBA image): rectangle fills, a path with line segments and circular arcs,
// text drawing and measurement, a global alpha multiplier, and a transform
// scale used for device-pixel-ratio handling.
//
// Coordinates are CSS pixels after Scale has been applied. The renderer owns
// the surface for the duration of Render; hosts must not draw concurrently.
type Surface interface {
	SetFont(f Font)
	SetFill(c RGB)
	SetStroke(c RGB)
	SetLineWidth(w float64)
	SetGlobalAlpha(a float64)

	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Arc appends a circular arc around (cx, cy) from startAngle to
	// endAngle, in radians measured from the positive X axis with Y down.
	// The sweep follows the sign of endAngle-startAngle.
	Arc(cx, cy, r, startAngle, endAngle float64)
	ClosePath()
	Fill()
	Stroke()

	FillText(s string, x, y float64)
	MeasureText(s string) TextMetrics

	// Scale multiplies the current transform. SetSize on the owning Canvas
	// resets the transform, so the renderer reapplies its DPR scale after
	// every resize.
	Scale(sx, sy float64)
}

// Canvas owns a Surface and its backing store. Size and SetSize are in
// device pixels; the renderer keeps the backing store at
// cols*cellWidth*dpr x rows*cellHeight*dpr.
type Canvas interface {
	// Surface returns the drawing context, or nil when none is available.
	Surface() Surface
	Size() (w, h int)
	SetSize(w, h int)
}
