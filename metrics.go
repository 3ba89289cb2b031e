package purfectrender

import "math"

// FontMetrics is the cell geometry derived from the active font, in CSS
// pixels. All cell positions are integer multiples of Width and Height;
// text baselines sit at cellY + Baseline.
type FontMetrics struct {
	Width    int
	Height   int
	Baseline int
}

// measureFont derives cell metrics by measuring 'M' in the given font.
//
// Font-declared ascent/descent are preferred over the per-glyph bounding box
// so the metrics stay stable regardless of which glyphs happen to be on
// screen. Surfaces that can supply neither fall back to 0.8/0.2 of the font
// size, which matches typical monospace proportions closely enough to avoid
// clipped rows.
func measureFont(ctx Surface, family string, size int) FontMetrics {
	ctx.SetFont(Font{Family: family, Size: size})
	m := ctx.MeasureText("M")

	ascent := m.FontBoundingBoxAscent
	descent := m.FontBoundingBoxDescent
	if ascent <= 0 && descent <= 0 {
		ascent = m.ActualBoundingBoxAscent
		descent = m.ActualBoundingBoxDescent
	}
	if ascent <= 0 && descent <= 0 {
		ascent = 0.8 * float64(size)
		descent = 0.2 * float64(size)
	}

	width := int(math.Ceil(m.Width))
	if width < 1 {
		width = 1
	}
	height := int(math.Ceil(ascent + descent))
	if height < 1 {
		height = 1
	}
	return FontMetrics{
		Width:    width,
		Height:   height,
		Baseline: int(math.Ceil(ascent)),
	}
}
