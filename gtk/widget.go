package purfectrendergtk

import (
	"math"

	"github.com/gotk3/gotk3/cairo"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	"github.com/phroun/purfectrender"
)

// Frame tick in milliseconds; roughly 60 Hz.
const frameIntervalMS = 16

// Widget hosts a Renderer on a GTK DrawingArea. It owns the offscreen
// canvas, runs the frame timer, and maps mouse wheel events to viewport
// scrolling; content comes from whatever Renderable the host supplies.
type Widget struct {
	drawingArea *gtk.DrawingArea
	canvas      *Canvas
	renderer    *purfectrender.Renderer

	buffer     purfectrender.Renderable
	scrollback purfectrender.ScrollbackProvider

	viewportY        float64
	scrollbarOpacity float64
	frameTimerID     glib.SourceHandle
}

// NewWidget creates a widget rendering buffer with the given options.
// scrollback may be nil.
func NewWidget(buffer purfectrender.Renderable, scrollback purfectrender.ScrollbackProvider, opts purfectrender.Options) (*Widget, error) {
	da, err := gtk.DrawingAreaNew()
	if err != nil {
		return nil, err
	}

	canvas := NewCanvas(1, 1)
	renderer, err := purfectrender.New(canvas, opts)
	if err != nil {
		return nil, err
	}

	w := &Widget{
		drawingArea:      da,
		canvas:           canvas,
		renderer:         renderer,
		buffer:           buffer,
		scrollback:       scrollback,
		scrollbarOpacity: 1,
	}

	da.AddEvents(int(gdk.SCROLL_MASK))
	da.Connect("draw", w.onDraw)
	da.Connect("scroll-event", w.onScroll)
	da.Connect("destroy", func() { w.Dispose() })

	w.frameTimerID = glib.TimeoutAdd(frameIntervalMS, func() bool {
		w.drawingArea.QueueDraw()
		return true
	})
	return w, nil
}

// DrawingArea returns the underlying GTK widget for packing.
func (w *Widget) DrawingArea() *gtk.DrawingArea { return w.drawingArea }

// Renderer exposes the renderer for theme, font and hover control.
func (w *Widget) Renderer() *purfectrender.Renderer { return w.renderer }

// SetScrollback replaces the scrollback provider.
func (w *Widget) SetScrollback(sb purfectrender.ScrollbackProvider) {
	w.scrollback = sb
}

// SetScrollbarOpacity sets the scrollbar fade, 0 to hide.
func (w *Widget) SetScrollbarOpacity(opacity float64) {
	w.scrollbarOpacity = opacity
}

// ViewportY returns the current scroll position in lines above the live
// view.
func (w *Widget) ViewportY() float64 { return w.viewportY }

// ScrollTo sets the viewport position, clamped to the scrollback length.
func (w *Widget) ScrollTo(viewportY float64) {
	max := 0.0
	if w.scrollback != nil {
		max = float64(w.scrollback.GetScrollbackLength())
	}
	w.viewportY = math.Max(0, math.Min(viewportY, max))
}

func (w *Widget) onDraw(da *gtk.DrawingArea, cr *cairo.Context) bool {
	w.renderer.Render(w.buffer, false, w.viewportY, w.scrollback, w.scrollbarOpacity)
	cr.SetSourceSurface(w.canvas.CairoSurface(), 0, 0)
	cr.Paint()
	return true
}

func (w *Widget) onScroll(da *gtk.DrawingArea, ev *gdk.Event) bool {
	scroll := gdk.EventScrollNewFromEvent(ev)
	switch scroll.Direction() {
	case gdk.SCROLL_UP:
		w.ScrollTo(w.viewportY + 3)
	case gdk.SCROLL_DOWN:
		w.ScrollTo(w.viewportY - 3)
	default:
		return false
	}
	return true
}

// Dispose stops the frame timer and releases the renderer's resources.
func (w *Widget) Dispose() {
	if w.frameTimerID != 0 {
		glib.SourceRemove(w.frameTimerID)
		w.frameTimerID = 0
	}
	w.renderer.Dispose()
}
