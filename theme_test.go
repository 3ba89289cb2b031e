package purfectrender

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultThemePalette(t *testing.T) {
	th := DefaultTheme()
	assert.Equal(t, "#1e1e1e", th.Background)
	assert.Equal(t, "#d4d4d4", th.Foreground)
	assert.Equal(t, "#ffffff", th.Cursor)
	assert.Equal(t, "#1e1e1e", th.CursorAccent)
	assert.Equal(t, "#d4d4d4", th.SelectionBackground)
	assert.Equal(t, "#1e1e1e", th.SelectionForeground)
	assert.Equal(t, "#cd3131", th.ANSI[1])
	assert.Equal(t, "#ffffff", th.ANSI[15])
}

func TestThemeMergePartialOverride(t *testing.T) {
	th := Theme{Background: "#000000"}.merged()
	assert.Equal(t, "#000000", th.Background)
	assert.Equal(t, "#d4d4d4", th.Foreground)
	assert.Equal(t, "#0dbc79", th.ANSI[2])
}

func TestResolveTheme(t *testing.T) {
	rt := resolveTheme(Theme{})
	assert.Equal(t, RGB{R: 0x1e, G: 0x1e, B: 0x1e}, rt.background)
	assert.Equal(t, RGB{R: 0xd4, G: 0xd4, B: 0xd4}, rt.foreground)
	assert.Equal(t, RGB{R: 0x0d, G: 0xbc, B: 0x79}, rt.ansi[2])
}

func TestParseHexColor(t *testing.T) {
	c, ok := ParseHexColor("#4A90E2")
	assert.True(t, ok)
	assert.Equal(t, RGB{R: 0x4A, G: 0x90, B: 0xE2}, c)

	c, ok = ParseHexColor("#fff")
	assert.True(t, ok)
	assert.Equal(t, RGB{R: 255, G: 255, B: 255}, c)

	_, ok = ParseHexColor("4A90E2")
	assert.False(t, ok)
	_, ok = ParseHexColor("#12345")
	assert.False(t, ok)
}

func TestHexRoundTrip(t *testing.T) {
	c := RGB{R: 0x4A, G: 0x90, B: 0xE2}
	parsed, ok := ParseHexColor(c.ToHex())
	assert.True(t, ok)
	assert.Equal(t, c, parsed)
}
