package vt

import "github.com/eqms/claude-workbench/internal/paneid"

// SelectionKind discriminates the Selection variant.
type SelectionKind int

const (
	SelectionNone SelectionKind = iota
	SelectionLineRange
	SelectionCharRange
)

// Point is a (row, col) coordinate in the stable absolute coordinate
// space: 0 and positive values address the live grid; negative values
// address scrollback, where -1 is the row immediately above the live
// top and more negative values walk further back. This space is stable
// under further scrolling, per spec §3.
type Point struct {
	Row, Col int
}

// Selection is the variant described in spec §3. The zero value is
// SelectionNone.
type Selection struct {
	Kind   SelectionKind
	Anchor Point
	Active Point
	Pane   paneid.PaneId
}

// Normalize returns the selection's endpoints ordered (start before end)
// regardless of drag direction.
func (s Selection) Normalize() (start, end Point) {
	if s.Anchor.Row < s.Active.Row || (s.Anchor.Row == s.Active.Row && s.Anchor.Col <= s.Active.Col) {
		return s.Anchor, s.Active
	}
	return s.Active, s.Anchor
}
