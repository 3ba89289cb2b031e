// Package purfectrendergtk hosts the renderer in a GTK3 DrawingArea,
// drawing through cairo with Pango text rendering.
package purfectrendergtk

/*
#cgo pkg-config: gtk+-3.0 pangocairo
#include <stdlib.h>
#include <pango/pangocairo.h>

// Render text using Pango for proper Unicode combining character support.
// This handles complex text shaping that cairo's show_text cannot do.
static void pango_render_text(cairo_t *cr, const char *text, const char *font_family,
                              int font_size, int bold, int italic,
                              double r, double g, double b, double a, double baseline) {
    PangoLayout *layout = pango_cairo_create_layout(cr);

    PangoFontDescription *desc = pango_font_description_new();
    pango_font_description_set_family(desc, font_family);
    pango_font_description_set_absolute_size(desc, font_size * PANGO_SCALE);
    if (bold) {
        pango_font_description_set_weight(desc, PANGO_WEIGHT_BOLD);
    }
    if (italic) {
        pango_font_description_set_style(desc, PANGO_STYLE_ITALIC);
    }

    pango_layout_set_font_description(layout, desc);
    pango_layout_set_text(layout, text, -1);

    // Shift so the given position is the text baseline, not the layout top.
    int layout_baseline = pango_layout_get_baseline(layout) / PANGO_SCALE;
    cairo_save(cr);
    cairo_translate(cr, 0, baseline - layout_baseline);
    cairo_set_source_rgba(cr, r, g, b, a);
    pango_cairo_show_layout(cr, layout);
    cairo_restore(cr);

    pango_font_description_free(desc);
    g_object_unref(layout);
}

// Get font metrics for cell geometry (creates its own temp surface).
static void pango_get_font_metrics(const char *font_family, int font_size,
                                   int *out_ascent, int *out_descent, int *out_advance) {
    cairo_surface_t *surface = cairo_image_surface_create(CAIRO_FORMAT_ARGB32, 1, 1);
    cairo_t *cr = cairo_create(surface);

    PangoLayout *layout = pango_cairo_create_layout(cr);

    PangoFontDescription *desc = pango_font_description_new();
    pango_font_description_set_family(desc, font_family);
    pango_font_description_set_absolute_size(desc, font_size * PANGO_SCALE);

    pango_layout_set_font_description(layout, desc);
    pango_layout_set_text(layout, "M", -1);

    PangoContext *context = pango_layout_get_context(layout);
    PangoFontMetrics *metrics = pango_context_get_metrics(context, desc, NULL);

    *out_ascent = pango_font_metrics_get_ascent(metrics) / PANGO_SCALE;
    *out_descent = pango_font_metrics_get_descent(metrics) / PANGO_SCALE;

    int width, height;
    pango_layout_get_pixel_size(layout, &width, &height);
    *out_advance = width;

    pango_font_metrics_unref(metrics);
    pango_font_description_free(desc);
    g_object_unref(layout);

    cairo_destroy(cr);
    cairo_surface_destroy(surface);
}
*/
import "C"

import (
	"math"
	"unsafe"

	"github.com/gotk3/gotk3/cairo"

	"github.com/phroun/purfectrender"
)

// Canvas backs the renderer with a persistent cairo image surface. The
// widget blits it to the screen on every GTK draw signal, so render state
// survives between expose events.
type Canvas struct {
	surface *cairo.Surface
	ctx     *Context
	w, h    int
}

// NewCanvas allocates an ARGB32 image surface of the given device size.
func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{w: w, h: h}
	c.surface = cairo.CreateImageSurface(cairo.FORMAT_ARGB32, w, h)
	c.ctx = &Context{cr: cairo.Create(c.surface), alpha: 1}
	return c
}

func (c *Canvas) Surface() purfectrender.Surface { return c.ctx }

func (c *Canvas) Size() (int, int) { return c.w, c.h }

// SetSize reallocates the surface; like a web canvas, resizing discards
// contents and transform. The Context handed out by Surface stays the same
// object and draws into the new surface.
func (c *Canvas) SetSize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.w, c.h = w, h
	c.surface = cairo.CreateImageSurface(cairo.FORMAT_ARGB32, w, h)
	c.ctx.cr = cairo.Create(c.surface)
	c.ctx.pathStart.valid = false
}

// CairoSurface exposes the backing surface for the widget's blit.
func (c *Canvas) CairoSurface() *cairo.Surface { return c.surface }

// Context implements purfectrender.Surface on a cairo context. Arcs are
// flattened to line segments so only the cairo operations the gotk3
// bindings are known to cover get used; text goes through Pango, which
// handles combining marks and complex scripts.
type Context struct {
	cr     *cairo.Context
	fill   purfectrender.RGB
	stroke purfectrender.RGB
	alpha  float64
	font   purfectrender.Font

	pathStart struct {
		x, y  float64
		valid bool
	}
}

func (ctx *Context) SetFont(f purfectrender.Font)  { ctx.font = f }
func (ctx *Context) SetFill(c purfectrender.RGB)   { ctx.fill = c }
func (ctx *Context) SetStroke(c purfectrender.RGB) { ctx.stroke = c }
func (ctx *Context) SetLineWidth(w float64)        { ctx.cr.SetLineWidth(w) }

func (ctx *Context) SetGlobalAlpha(a float64) {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	ctx.alpha = a
}

func (ctx *Context) source(c purfectrender.RGB) {
	ctx.cr.SetSourceRGBA(
		float64(c.R)/255.0,
		float64(c.G)/255.0,
		float64(c.B)/255.0,
		ctx.alpha)
}

func (ctx *Context) FillRect(x, y, w, h float64) {
	ctx.source(ctx.fill)
	ctx.cr.Rectangle(x, y, w, h)
	ctx.cr.Fill()
}

func (ctx *Context) StrokeRect(x, y, w, h float64) {
	ctx.source(ctx.stroke)
	ctx.cr.Rectangle(x, y, w, h)
	ctx.cr.Stroke()
}

// BeginPath only resets the subpath bookkeeping: cairo's fill and stroke
// operations already clear the context path, and every path this renderer
// builds ends in one of them.
func (ctx *Context) BeginPath() {
	ctx.pathStart.valid = false
}

func (ctx *Context) MoveTo(x, y float64) {
	ctx.cr.MoveTo(x, y)
	ctx.pathStart.x, ctx.pathStart.y = x, y
	ctx.pathStart.valid = true
}

func (ctx *Context) LineTo(x, y float64) {
	ctx.cr.LineTo(x, y)
	if !ctx.pathStart.valid {
		ctx.pathStart.x, ctx.pathStart.y = x, y
		ctx.pathStart.valid = true
	}
}

// Arc appends a flattened circular arc; the sweep direction follows the
// sign of endAngle-startAngle.
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
		if i == 0 && !ctx.pathStart.valid {
			ctx.MoveTo(x, y)
			continue
		}
		ctx.LineTo(x, y)
	}
}

func (ctx *Context) ClosePath() {
	if ctx.pathStart.valid {
		ctx.cr.LineTo(ctx.pathStart.x, ctx.pathStart.y)
	}
}

func (ctx *Context) Fill() {
	ctx.source(ctx.fill)
	ctx.cr.Fill()
	ctx.pathStart.valid = false
}

func (ctx *Context) Stroke() {
	ctx.source(ctx.stroke)
	ctx.cr.Stroke()
	ctx.pathStart.valid = false
}

// FillText draws s with its baseline at y through Pango.
func (ctx *Context) FillText(s string, x, y float64) {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	cf := C.CString(ctx.font.Family)
	defer C.free(unsafe.Pointer(cf))

	bold := C.int(0)
	if ctx.font.Bold {
		bold = 1
	}
	italic := C.int(0)
	if ctx.font.Italic {
		italic = 1
	}

	ctx.cr.Save()
	ctx.cr.Translate(x, 0)
	C.pango_render_text(
		(*C.cairo_t)(unsafe.Pointer(ctx.cr.Native())),
		cs, cf, C.int(ctx.font.Size), bold, italic,
		C.double(float64(ctx.fill.R)/255.0),
		C.double(float64(ctx.fill.G)/255.0),
		C.double(float64(ctx.fill.B)/255.0),
		C.double(ctx.alpha),
		C.double(y))
	ctx.cr.Restore()
}

// MeasureText reports Pango's font-declared metrics and the advance of s.
func (ctx *Context) MeasureText(s string) purfectrender.TextMetrics {
	cf := C.CString(ctx.font.Family)
	defer C.free(unsafe.Pointer(cf))

	var ascent, descent, advance C.int
	C.pango_get_font_metrics(cf, C.int(ctx.font.Size), &ascent, &descent, &advance)

	// The advance reported is for 'M'; scale by rune count for longer
	// strings, which is exact for the monospace families this package is
	// used with.
	n := 0
	for range s {
		n++
	}
	if n == 0 {
		n = 1
	}
	return purfectrender.TextMetrics{
		Width:                  float64(advance) * float64(n),
		FontBoundingBoxAscent:  float64(ascent),
		FontBoundingBoxDescent: float64(descent),
	}
}

func (ctx *Context) Scale(sx, sy float64) {
	ctx.cr.Scale(sx, sy)
}
