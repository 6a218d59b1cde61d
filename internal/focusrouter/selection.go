// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// The Selection Controller of spec §4.7: seeds a selection on entry,
// moves its active endpoint under navigation keys, and extracts text
// via the owning VT Screen once the coordinates are translated into the
// stable absolute coordinate space vt.Selection already uses.
package focusrouter

import (
	"github.com/eqms/claude-workbench/internal/paneid"
	"github.com/eqms/claude-workbench/internal/vt"
)

// SelectionController owns the in-progress Selection for one terminal
// pane while selection mode is active.
type SelectionController struct {
	active bool
	sel    vt.Selection
}

// NewSelectionController returns a controller with no active selection.
func NewSelectionController() *SelectionController { return &SelectionController{} }

// Active reports whether a selection is currently in progress.
func (c *SelectionController) Active() bool { return c.active }

// Enter seeds a line-range selection anchored at the bottom visible row
// of pane's terminal. In the absolute coordinate space (scrollback rows
// negative, live rows non-negative) the bottom visible row while
// unscrolled is liveRows-1, which is what callers pass.
func (c *SelectionController) Enter(pane paneid.PaneId, bottomVisibleRow int) {
	p := vt.Point{Row: bottomVisibleRow, Col: 0}
	c.active = true
	c.sel = vt.Selection{Kind: vt.SelectionLineRange, Anchor: p, Active: p, Pane: pane}
}

// Cancel discards the in-progress selection (Esc).
func (c *SelectionController) Cancel() {
	c.active = false
	c.sel = vt.Selection{}
}

// Selection returns the current selection value.
func (c *SelectionController) Selection() vt.Selection { return c.sel }

// MoveBy shifts the active endpoint's row by delta rows (j/k/arrows: ±1,
// Shift+arrows: ±5).
func (c *SelectionController) MoveBy(delta int) {
	if !c.active {
		return
	}
	c.sel.Active.Row += delta
}

// JumpToTop moves the active endpoint to the oldest addressable row (g).
func (c *SelectionController) JumpToTop(topRow int) {
	if !c.active {
		return
	}
	c.sel.Active.Row = topRow
}

// JumpToBottom moves the active endpoint to the live bottom row (G).
func (c *SelectionController) JumpToBottom(bottomRow int) {
	if !c.active {
		return
	}
	c.sel.Active.Row = bottomRow
}

// Extract calls the VT Screen's range extraction with the current
// selection and ends selection mode.
func (c *SelectionController) Extract(screen *vt.Screen) string {
	text := screen.ExtractRange(c.sel)
	c.Cancel()
	return text
}
