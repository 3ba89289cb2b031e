// Package purfectrendersdl hosts the renderer in an SDL2 window. Frames
// are rendered by the pure-Go raster backend and blitted to a streaming
// texture, so the glyph engine behaves identically to headless output.
package purfectrendersdl

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/phroun/purfectrender"
	"github.com/phroun/purfectrender/raster"
)

// Window owns the SDL window, its streaming texture and the renderer.
type Window struct {
	window   *sdl.Window
	sdlRend  *sdl.Renderer
	texture  *sdl.Texture
	texW     int
	texH     int
	canvas   *raster.Canvas
	renderer *purfectrender.Renderer

	buffer     purfectrender.Renderable
	scrollback purfectrender.ScrollbackProvider

	viewportY        float64
	scrollbarOpacity float64
}

// NewWindow creates an SDL window sized to the buffer grid.
func NewWindow(title string, buffer purfectrender.Renderable, scrollback purfectrender.ScrollbackProvider, opts purfectrender.Options) (*Window, error) {
	canvas := raster.New(1, 1)
	renderer, err := purfectrender.New(canvas, opts)
	if err != nil {
		return nil, err
	}

	cols, rows := buffer.GetDimensions()
	pxW := int32(cols * renderer.CharWidth())
	pxH := int32(rows * renderer.CharHeight())

	window, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		pxW, pxH, sdl.WINDOW_SHOWN)
	if err != nil {
		renderer.Dispose()
		return nil, err
	}
	sdlRend, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		renderer.Dispose()
		return nil, err
	}

	return &Window{
		window:           window,
		sdlRend:          sdlRend,
		canvas:           canvas,
		renderer:         renderer,
		buffer:           buffer,
		scrollback:       scrollback,
		scrollbarOpacity: 1,
	}, nil
}

// Renderer exposes the renderer for theme, font and hover control.
func (w *Window) Renderer() *purfectrender.Renderer { return w.renderer }

// ScrollTo sets the viewport position, clamped to the scrollback length.
func (w *Window) ScrollTo(viewportY float64) {
	max := 0.0
	if w.scrollback != nil {
		max = float64(w.scrollback.GetScrollbackLength())
	}
	if viewportY < 0 {
		viewportY = 0
	}
	if viewportY > max {
		viewportY = max
	}
	w.viewportY = viewportY
}

// ViewportY returns the scroll position in lines above the live view.
func (w *Window) ViewportY() float64 { return w.viewportY }

// SetScrollbarOpacity sets the scrollbar fade, 0 to hide.
func (w *Window) SetScrollbarOpacity(opacity float64) {
	w.scrollbarOpacity = opacity
}

// Frame renders one frame and presents it.
func (w *Window) Frame() error {
	w.renderer.Render(w.buffer, false, w.viewportY, w.scrollback, w.scrollbarOpacity)

	img := w.canvas.Image()
	bounds := img.Bounds()
	fw, fh := bounds.Dx(), bounds.Dy()

	if w.texture == nil || fw != w.texW || fh != w.texH {
		if w.texture != nil {
			w.texture.Destroy()
		}
		tex, err := w.sdlRend.CreateTexture(
			sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING,
			int32(fw), int32(fh))
		if err != nil {
			return err
		}
		w.texture = tex
		w.texW, w.texH = fw, fh
		w.window.SetSize(int32(fw), int32(fh))
	}

	if err := w.texture.Update(nil, img.Pix, img.Stride); err != nil {
		return err
	}
	w.sdlRend.Clear()
	if err := w.sdlRend.Copy(w.texture, nil, nil); err != nil {
		return err
	}
	w.sdlRend.Present()
	return nil
}

// HandleEvent processes a polled SDL event; returns false when the host
// should quit.
func (w *Window) HandleEvent(event sdl.Event) bool {
	switch ev := event.(type) {
	case *sdl.QuitEvent:
		return false
	case *sdl.MouseWheelEvent:
		w.ScrollTo(w.viewportY + float64(ev.Y)*3)
	}
	return true
}

// Destroy tears down SDL resources and the renderer.
func (w *Window) Destroy() {
	if w.texture != nil {
		w.texture.Destroy()
		w.texture = nil
	}
	if w.sdlRend != nil {
		w.sdlRend.Destroy()
		w.sdlRend = nil
	}
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	w.renderer.Dispose()
}
