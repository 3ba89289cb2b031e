package purfectrender

// Theme holds the renderer's color configuration as hex strings. Empty
// fields fall back to the defaults, so a partial theme is a valid override.
//
// Selection uses solid replacement: selected cells paint
// SelectionBackground and their text paints in SelectionForeground. There is
// no alpha overlay.
type Theme struct {
	Foreground          string
	Background          string
	Cursor              string
	CursorAccent        string
	SelectionBackground string
	SelectionForeground string

	// The 16 ANSI colors in standard order (black, red, green, yellow,
	// blue, magenta, cyan, white, then the bright variants).
	ANSI [16]string
}

// DefaultTheme returns the built-in dark theme (the VS Code dark palette).
func DefaultTheme() Theme {
	return Theme{
		Foreground:          "#d4d4d4",
		Background:          "#1e1e1e",
		Cursor:              "#ffffff",
		CursorAccent:        "#1e1e1e",
		SelectionBackground: "#d4d4d4",
		SelectionForeground: "#1e1e1e",
		ANSI: [16]string{
			"#000000", "#cd3131", "#0dbc79", "#e5e510",
			"#2472c8", "#bc3fbc", "#11a8cd", "#e5e5e5",
			"#666666", "#f14c4c", "#23d18b", "#f5f543",
			"#3b8eea", "#d670d6", "#29b8db", "#ffffff",
		},
	}
}

// merged returns t with empty fields replaced from the defaults.
func (t Theme) merged() Theme {
	def := DefaultTheme()
	if t.Foreground == "" {
		t.Foreground = def.Foreground
	}
	if t.Background == "" {
		t.Background = def.Background
	}
	if t.Cursor == "" {
		t.Cursor = def.Cursor
	}
	if t.CursorAccent == "" {
		t.CursorAccent = def.CursorAccent
	}
	if t.SelectionBackground == "" {
		t.SelectionBackground = def.SelectionBackground
	}
	if t.SelectionForeground == "" {
		t.SelectionForeground = def.SelectionForeground
	}
	for i := range t.ANSI {
		if t.ANSI[i] == "" {
			t.ANSI[i] = def.ANSI[i]
		}
	}
	return t
}

// resolvedTheme is the renderer's frame-stable snapshot of a Theme with all
// colors parsed. Readers within a frame observe a single snapshot; SetTheme
// replaces it atomically between frames.
type resolvedTheme struct {
	foreground          RGB
	background          RGB
	cursor              RGB
	cursorAccent        RGB
	selectionBackground RGB
	selectionForeground RGB
	ansi                [16]RGB
}

func resolveTheme(t Theme) resolvedTheme {
	t = t.merged()
	var rt resolvedTheme
	rt.foreground, _ = ParseHexColor(t.Foreground)
	rt.background, _ = ParseHexColor(t.Background)
	rt.cursor, _ = ParseHexColor(t.Cursor)
	rt.cursorAccent, _ = ParseHexColor(t.CursorAccent)
	rt.selectionBackground, _ = ParseHexColor(t.SelectionBackground)
	rt.selectionForeground, _ = ParseHexColor(t.SelectionForeground)
	for i, s := range t.ANSI {
		rt.ansi[i], _ = ParseHexColor(s)
	}
	return rt
}

// linkAccent is the fixed underline color for hovered hyperlinks.
var linkAccent = RGB{R: 0x4A, G: 0x90, B: 0xE2}

// scrollbarBase is the gray both the scrollbar track and thumb derive from.
var scrollbarBase = RGB{R: 128, G: 128, B: 128}
