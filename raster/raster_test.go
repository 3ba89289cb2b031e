package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phroun/purfectrender"
)

func TestFillRectPixels(t *testing.T) {
	c := New(10, 10)
	ctx := c.Surface()
	red := purfectrender.RGB{R: 200, G: 10, B: 10}
	ctx.SetFill(red)
	ctx.FillRect(2, 3, 4, 5)

	img := c.Image()
	assert.Equal(t, uint8(200), img.RGBAAt(2, 3).R)
	assert.Equal(t, uint8(200), img.RGBAAt(5, 7).R)
	assert.Equal(t, uint8(0), img.RGBAAt(1, 3).R, "left of the rect untouched")
	assert.Equal(t, uint8(0), img.RGBAAt(6, 3).R, "right edge exclusive")
}

func TestGlobalAlphaBlends(t *testing.T) {
	c := New(4, 4)
	ctx := c.Surface()
	ctx.SetFill(purfectrender.RGB{R: 30, G: 30, B: 30})
	ctx.FillRect(0, 0, 4, 4)

	ctx.SetGlobalAlpha(0.5)
	ctx.SetFill(purfectrender.RGB{R: 255, G: 255, B: 255})
	ctx.FillRect(0, 0, 4, 4)
	ctx.SetGlobalAlpha(1)

	// 255*0.5 + 30*0.5 rounds to 143.
	assert.Equal(t, uint8(143), c.Image().RGBAAt(1, 1).R)
}

func TestPathFillTriangle(t *testing.T) {
	c := New(20, 20)
	ctx := c.Surface()
	ctx.SetFill(purfectrender.RGB{R: 255})
	ctx.BeginPath()
	ctx.MoveTo(0, 0)
	ctx.LineTo(20, 0)
	ctx.LineTo(0, 20)
	ctx.ClosePath()
	ctx.Fill()

	img := c.Image()
	assert.Equal(t, uint8(255), img.RGBAAt(2, 2).R, "inside the triangle")
	assert.Equal(t, uint8(0), img.RGBAAt(18, 18).R, "outside the hypotenuse")
}

func TestScaleAppliesToRects(t *testing.T) {
	c := New(20, 20)
	ctx := c.Surface()
	ctx.Scale(2, 2)
	ctx.SetFill(purfectrender.RGB{R: 255})
	ctx.FillRect(1, 1, 3, 3)

	img := c.Image()
	assert.Equal(t, uint8(255), img.RGBAAt(2, 2).R)
	assert.Equal(t, uint8(255), img.RGBAAt(7, 7).R)
	assert.Equal(t, uint8(0), img.RGBAAt(8, 8).R)
}

func TestSetSizeResetsTransform(t *testing.T) {
	c := New(10, 10)
	ctx := c.Surface()
	ctx.Scale(2, 2)
	c.SetSize(10, 10)
	ctx = c.Surface()
	ctx.SetFill(purfectrender.RGB{R: 255})
	ctx.FillRect(0, 0, 1, 1)
	assert.Equal(t, uint8(255), c.Image().RGBAAt(0, 0).R)
	assert.Equal(t, uint8(0), c.Image().RGBAAt(1, 1).R, "scale must not survive SetSize")
}

func TestMeasureTextBasicFont(t *testing.T) {
	c := New(1, 1)
	ctx := c.Surface()
	ctx.SetFont(purfectrender.Font{Family: "monospace", Size: 15})
	m := ctx.MeasureText("M")
	require.Equal(t, 7.0, m.Width)
	assert.Equal(t, 11.0, m.FontBoundingBoxAscent)
	assert.Equal(t, 2.0, m.FontBoundingBoxDescent)
}

func TestFillTextDrawsPixels(t *testing.T) {
	c := New(20, 20)
	ctx := c.Surface()
	ctx.SetFill(purfectrender.RGB{R: 255, G: 255, B: 255})
	ctx.SetFont(purfectrender.Font{Family: "monospace", Size: 15})
	ctx.FillText("#", 2, 13)

	lit := 0
	img := c.Image()
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if img.RGBAAt(x, y).R > 0 {
				lit++
			}
		}
	}
	assert.Greater(t, lit, 5, "glyph must rasterize some pixels")
}
