// Package config loads renderer themes from TOML files and optionally
// watches them for changes.
package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/phroun/purfectrender"
)

// ThemeFile is the on-disk theme schema.
type ThemeFile struct {
	Colors ThemeColors `toml:"colors"`
}

// ThemeColors defines the specific color values as "#RRGGBB" strings.
// Unset values keep the renderer defaults.
type ThemeColors struct {
	Foreground          string `toml:"foreground"`
	Background          string `toml:"background"`
	Cursor              string `toml:"cursor"`
	CursorAccent        string `toml:"cursor_accent"`
	SelectionBackground string `toml:"selection_background"`
	SelectionForeground string `toml:"selection_foreground"`

	// Standard 16 ANSI colors
	Black         string `toml:"black"`
	Red           string `toml:"red"`
	Green         string `toml:"green"`
	Yellow        string `toml:"yellow"`
	Blue          string `toml:"blue"`
	Magenta       string `toml:"magenta"`
	Cyan          string `toml:"cyan"`
	White         string `toml:"white"`
	BrightBlack   string `toml:"bright_black"`
	BrightRed     string `toml:"bright_red"`
	BrightGreen   string `toml:"bright_green"`
	BrightYellow  string `toml:"bright_yellow"`
	BrightBlue    string `toml:"bright_blue"`
	BrightMagenta string `toml:"bright_magenta"`
	BrightCyan    string `toml:"bright_cyan"`
	BrightWhite   string `toml:"bright_white"`
}

// Theme converts the file schema to a renderer theme. Empty fields stay
// empty so the renderer's own defaults apply.
func (f ThemeFile) Theme() purfectrender.Theme {
	c := f.Colors
	return purfectrender.Theme{
		Foreground:          c.Foreground,
		Background:          c.Background,
		Cursor:              c.Cursor,
		CursorAccent:        c.CursorAccent,
		SelectionBackground: c.SelectionBackground,
		SelectionForeground: c.SelectionForeground,
		ANSI: [16]string{
			c.Black, c.Red, c.Green, c.Yellow,
			c.Blue, c.Magenta, c.Cyan, c.White,
			c.BrightBlack, c.BrightRed, c.BrightGreen, c.BrightYellow,
			c.BrightBlue, c.BrightMagenta, c.BrightCyan, c.BrightWhite,
		},
	}
}

// LoadThemeFile parses a theme from the given path.
func LoadThemeFile(path string) (purfectrender.Theme, error) {
	var f ThemeFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return purfectrender.Theme{}, err
	}
	return f.Theme(), nil
}

// DefaultThemePath returns ~/.config/purfectrender/theme.toml.
func DefaultThemePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "purfectrender", "theme.toml"), nil
}

// LoadTheme loads the theme from the default path, falling back to the
// built-in defaults when the file is missing or invalid.
func LoadTheme() purfectrender.Theme {
	path, err := DefaultThemePath()
	if err != nil {
		log.Printf("Warning: could not resolve home directory: %v. Using default theme.", err)
		return purfectrender.DefaultTheme()
	}
	if _, err := os.Stat(path); err != nil {
		return purfectrender.DefaultTheme()
	}
	theme, err := LoadThemeFile(path)
	if err != nil {
		log.Printf("Warning: could not load theme from %s: %v. Using default theme.", path, err)
		return purfectrender.DefaultTheme()
	}
	return theme
}
