package purfectrender

import "math"

// Scrollbar geometry, CSS pixels.
const (
	scrollbarWidth      = 8
	scrollbarPadRight   = 4
	scrollbarPadVert    = 4
	scrollbarMinThumbH  = 20
	scrollbarTrackAlpha = 0.1
)

// drawScrollbar paints the overlay scrollbar in the right gutter. The
// gutter is cleared to the theme background first so a fading thumb never
// ghosts over the previous frame's position.
func (r *Renderer) drawScrollbar(cols, rows int, viewportY float64, scrollbackLen int, opacity float64) {
	cssW := float64(cols * r.metrics.Width)
	cssH := float64(rows * r.metrics.Height)

	gutterW := float64(scrollbarWidth + scrollbarPadRight)
	r.ctx.SetFill(r.theme.background)
	r.ctx.FillRect(cssW-gutterW, 0, gutterW, cssH)

	trackX := cssW - scrollbarWidth - scrollbarPadRight
	trackY := float64(scrollbarPadVert)
	trackH := cssH - 2*scrollbarPadVert
	if trackH <= 0 {
		return
	}

	totalLines := scrollbackLen + rows
	thumbH := math.Max(scrollbarMinThumbH, float64(rows)/float64(totalLines)*trackH)
	if thumbH > trackH {
		thumbH = trackH
	}

	// Position factor 1 puts the thumb at the bottom (live view).
	posFactor := 1.0
	if scrollbackLen > 0 {
		posFactor = 1 - viewportY/float64(scrollbackLen)
	}
	thumbY := trackY + (trackH-thumbH)*posFactor

	r.ctx.SetFill(scrollbarBase)
	r.ctx.SetGlobalAlpha(scrollbarTrackAlpha * opacity)
	r.ctx.FillRect(trackX, trackY, scrollbarWidth, trackH)

	thumbAlpha := 0.3
	if viewportY > 0 {
		thumbAlpha = 0.5
	}
	r.ctx.SetGlobalAlpha(thumbAlpha * opacity)
	r.ctx.FillRect(trackX, thumbY, scrollbarWidth, thumbH)
	r.ctx.SetGlobalAlpha(1)
}
