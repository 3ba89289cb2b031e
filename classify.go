package purfectrender

// GlyphFamily classifies a codepoint into one of the procedurally drawn
// glyph families, or FamilyText for everything the host text engine draws.
type GlyphFamily int

const (
	FamilyText GlyphFamily = iota
	FamilyBox
	FamilyRounded
	FamilyDashed
	FamilyBlock
	FamilyBraille
	FamilySextant
	FamilyWedge
	FamilyMosaic
	FamilyOctant
	FamilyCornerTriangle
	FamilyPowerline
)

// ClassifyGlyph maps a codepoint to its glyph family. It is a total
// function: anything outside the known ranges is FamilyText and falls
// through to host text drawing. The rounded-corner and dashed-line sets sit
// inside the box-drawing block and win over FamilyBox.
func ClassifyGlyph(r rune) GlyphFamily {
	switch {
	case r >= 0x256D && r <= 0x2570:
		return FamilyRounded
	case (r >= 0x2504 && r <= 0x250B) || (r >= 0x254C && r <= 0x254F):
		return FamilyDashed
	case r >= 0x2500 && r <= 0x257F:
		return FamilyBox
	case r >= 0x2580 && r <= 0x259F:
		return FamilyBlock
	case r >= 0x2800 && r <= 0x28FF:
		return FamilyBraille
	case r >= 0x1FB00 && r <= 0x1FB3B:
		return FamilySextant
	case r >= 0x1FB3C && r <= 0x1FB8B:
		return FamilyWedge
	case r >= 0x1FB90 && r <= 0x1FBAF:
		return FamilyMosaic
	case r >= 0x1CD00 && r <= 0x1CDE5:
		return FamilyOctant
	case r >= 0x25E2 && r <= 0x25E5:
		return FamilyCornerTriangle
	}
	switch r {
	case 0xE0B0, 0xE0B2, 0xE0B4, 0xE0B6,
		0x25B2, 0x25B6, 0x25BA, 0x25BC, 0x25C0, 0x25C4:
		return FamilyPowerline
	}
	return FamilyText
}
