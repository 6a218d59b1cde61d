// Package vt implements the VT Screen: terminal emulator state consisting
// of a cell grid, cursor, SGR attributes, alternate screen, and a bounded
// scrollback ring.
//
// The design mirrors the teacher's tui/parser package (a VTerm holding a
// grid of Cell plus a byte-stream Parser) generalized to the workbench's
// requirements: grapheme-aware wide cells (via go-runewidth, the teacher's
// own dependency), an addressable Scrollback Ring with an external
// ScrollOffset, and range extraction for copy/selection.
package vt

import "github.com/mattn/go-runewidth"

// Attribute is a bitset of SGR text attributes.
type Attribute uint8

const (
	AttrBold Attribute = 1 << iota
	AttrItalic
	AttrUnderline
	AttrReverse
	AttrDim
	AttrBlink
)

// ColorMode distinguishes how a Color's value should be interpreted.
type ColorMode uint8

const (
	ColorDefault ColorMode = iota
	ColorStandard
	Color256
	ColorRGB
)

// Color is a terminal color in one of several encodings, kept independent
// of any particular rendering backend (tcell.Color is applied at render
// time by the caller, not stored here).
type Color struct {
	Mode       ColorMode
	Value      uint8 // ColorStandard (0-15) or Color256 (0-255)
	R, G, B    uint8 // ColorRGB
}

// DefaultColor is the "use the terminal's default" color.
var DefaultColor = Color{Mode: ColorDefault}

// Cell is one grid position: a glyph plus its rendering style.
//
// Invariant: a wide cell at column c occupies c and c+1; c+1 carries
// Continuation=true and an empty Rune so callers never duplicate the
// glyph when walking the grid left to right.
type Cell struct {
	Rune         rune
	FG, BG       Color
	Attr         Attribute
	Continuation bool // true for the zero-width half of a wide rune
}

// emptyCell is what an "unset" grid position looks like. It must render
// and extract as a single space, never an empty string.
func emptyCell() Cell {
	return Cell{Rune: ' ', FG: DefaultColor, BG: DefaultColor}
}

// RuneWidth returns the terminal column width of r (1 or 2; 0 for
// zero-width combining runes, which the parser drops rather than
// storing or composing them).
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// Text returns the cell's visible text: a single space for an unset or
// continuation cell, the rune otherwise. This is the rule that backs
// spec's "extraction restores spaces" property.
func (c Cell) Text() string {
	if c.Continuation || c.Rune == 0 {
		return " "
	}
	return string(c.Rune)
}
