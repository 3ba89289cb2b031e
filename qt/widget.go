package purfectrenderqt

import (
	"math"

	"github.com/mappu/miqt/qt"

	"github.com/phroun/purfectrender"
)

// Widget hosts a Renderer on a QWidget. A 16 ms QTimer drives frames into
// the offscreen canvas; paint events blit the pixmap. Wheel events scroll
// the viewport through the attached scrollback provider.
type Widget struct {
	widget   *qt.QWidget
	canvas   *Canvas
	renderer *purfectrender.Renderer

	buffer     purfectrender.Renderable
	scrollback purfectrender.ScrollbackProvider

	viewportY        float64
	scrollbarOpacity float64
	frameTimer       *qt.QTimer
}

// NewWidget creates a widget rendering buffer with the given options.
// scrollback may be nil.
func NewWidget(buffer purfectrender.Renderable, scrollback purfectrender.ScrollbackProvider, opts purfectrender.Options) (*Widget, error) {
	w := &Widget{
		widget:           qt.NewQWidget2(),
		canvas:           NewCanvas(1, 1),
		buffer:           buffer,
		scrollback:       scrollback,
		scrollbarOpacity: 1,
	}

	renderer, err := purfectrender.New(w.canvas, opts)
	if err != nil {
		return nil, err
	}
	w.renderer = renderer

	w.widget.OnPaintEvent(func(super func(event *qt.QPaintEvent), event *qt.QPaintEvent) {
		w.paintEvent()
	})

	w.widget.OnWheelEvent(func(super func(event *qt.QWheelEvent), event *qt.QWheelEvent) {
		w.ScrollTo(w.viewportY + float64(event.AngleDelta().Y())/40.0)
	})

	// Coalesce redraws onto the Qt main thread at roughly 60 Hz.
	w.frameTimer = qt.NewQTimer2(w.widget.QObject)
	w.frameTimer.OnTimeout(func() {
		w.widget.Update()
	})
	w.frameTimer.Start(16)

	return w, nil
}

// QWidget returns the underlying widget for embedding in layouts.
func (w *Widget) QWidget() *qt.QWidget { return w.widget }

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

// ViewportY returns the scroll position in lines above the live view.
func (w *Widget) ViewportY() float64 { return w.viewportY }

// ScrollTo sets the viewport position, clamped to the scrollback length.
func (w *Widget) ScrollTo(viewportY float64) {
	max := 0.0
	if w.scrollback != nil {
		max = float64(w.scrollback.GetScrollbackLength())
	}
	w.viewportY = math.Max(0, math.Min(viewportY, max))
}

func (w *Widget) paintEvent() {
	w.renderer.Render(w.buffer, false, w.viewportY, w.scrollback, w.scrollbarOpacity)

	painter := qt.NewQPainter2(w.widget.QPaintDevice)
	defer painter.End()
	painter.DrawPixmap9(0, 0, w.canvas.Pixmap())
}

// Dispose stops the frame timer and releases the renderer's resources.
func (w *Widget) Dispose() {
	if w.frameTimer != nil {
		w.frameTimer.Stop()
		w.frameTimer = nil
	}
	w.renderer.Dispose()
}
