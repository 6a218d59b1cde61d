// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// Package wblayout implements the Layout Engine of spec §4.5, grounded
// on original_source/src/ui/layout.rs's percentage-based rectangle
// splitting and on the teacher's texel/workspace.go rectangle-carving
// style, adapted from a tiling tree to the workbench's fixed region set
// (file browser, preview, three terminal panes, footer).
package wblayout

import "github.com/eqms/claude-workbench/internal/paneid"

// Rect is a character-cell rectangle. A zero-area Rect (Rows==0 or
// Cols==0) means the region is hidden and should not be rendered.
type Rect struct {
	Row, Col, Rows, Cols int
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.Rows <= 0 || r.Cols <= 0 }

// Interior returns the content area of a bordered region: rect minus
// one cell of border on every side, per spec §4.5's "1-cell border".
func (r Rect) Interior() Rect {
	if r.Rows <= 2 || r.Cols <= 2 {
		return Rect{Row: r.Row, Col: r.Col, Rows: 0, Cols: 0}
	}
	return Rect{Row: r.Row + 1, Col: r.Col + 1, Rows: r.Rows - 2, Cols: r.Cols - 2}
}

// Sizes holds the configured percentages (see wbconfig's layout.*_percent
// keys), already clamped to [10, 90] by the caller (config layer).
type Sizes struct {
	FileBrowserWidthPercent int
	PreviewWidthPercent     int
	RightPanelWidthPercent  int
	AssistantHeightPercent  int
}

// Result is the set of rectangles produced by one layout computation,
// one per pane plus the footer.
type Result struct {
	FileBrowser Rect
	Preview     Rect
	Assistant   Rect
	Git         Rect
	Shell       Rect
	Footer      Rect
}

// ClampPercent enforces spec §4.5's "clamped to [10, 90]" rule.
func ClampPercent(p int) int {
	if p < 10 {
		return 10
	}
	if p > 90 {
		return 90
	}
	return p
}

// Layout computes the rectangle for every region given the total
// terminal size, the set of currently-visible panes, and configured
// percentages.
func Layout(totalRows, totalCols int, visible map[paneid.PaneId]bool, sizes Sizes) Result {
	var res Result
	if totalRows <= 0 || totalCols <= 0 {
		return res
	}

	footerRow := totalRows - 1
	res.Footer = Rect{Row: footerRow, Col: 0, Rows: 1, Cols: totalCols}
	contentRows := totalRows - 1
	if contentRows < 0 {
		contentRows = 0
	}
	content := Rect{Row: 0, Col: 0, Rows: contentRows, Cols: totalCols}

	auxHidden := !visible[paneid.FileBrowser] && !visible[paneid.Preview] &&
		!visible[paneid.GitTerm] && !visible[paneid.ShellTerm]
	if auxHidden && visible[paneid.AssistantTerm] {
		res.Assistant = content
		return res
	}

	fbPct := ClampPercent(sizes.FileBrowserWidthPercent)
	pvPct := ClampPercent(sizes.PreviewWidthPercent)
	rpPct := ClampPercent(sizes.RightPanelWidthPercent)
	asPct := ClampPercent(sizes.AssistantHeightPercent)

	left := content
	if visible[paneid.FileBrowser] {
		fbCols := pctOf(content.Cols, fbPct)
		res.FileBrowser = Rect{Row: content.Row, Col: content.Col, Rows: content.Rows, Cols: fbCols}
		left.Col += fbCols
		left.Cols -= fbCols
	}

	right := left
	if visible[paneid.Preview] {
		remaining := left.Cols
		pvCols := pctOf(remaining, pvPct)
		res.Preview = Rect{Row: left.Row, Col: left.Col, Rows: left.Rows, Cols: pvCols}
		right.Col += pvCols
		right.Cols -= pvCols
	}

	terminals := right
	anyTerm := visible[paneid.AssistantTerm] || visible[paneid.GitTerm] || visible[paneid.ShellTerm]
	if !anyTerm {
		return res
	}

	_ = rpPct // right_panel_width_percent is clamped but not used: the fixed three-terminal stack below consumes 100% of `terminals`.

	topRows := terminals.Rows
	assistantRows := topRows
	remainderRows := 0
	if visible[paneid.GitTerm] || visible[paneid.ShellTerm] {
		assistantRows = pctOf(topRows, asPct)
		remainderRows = topRows - assistantRows
	}

	if visible[paneid.AssistantTerm] {
		res.Assistant = Rect{Row: terminals.Row, Col: terminals.Col, Rows: assistantRows, Cols: terminals.Cols}
	}

	lowerRow := terminals.Row + assistantRows
	if visible[paneid.GitTerm] && visible[paneid.ShellTerm] {
		gitCols := terminals.Cols / 2
		res.Git = Rect{Row: lowerRow, Col: terminals.Col, Rows: remainderRows, Cols: gitCols}
		res.Shell = Rect{Row: lowerRow, Col: terminals.Col + gitCols, Rows: remainderRows, Cols: terminals.Cols - gitCols}
	} else if visible[paneid.GitTerm] {
		res.Git = Rect{Row: lowerRow, Col: terminals.Col, Rows: remainderRows, Cols: terminals.Cols}
	} else if visible[paneid.ShellTerm] {
		res.Shell = Rect{Row: lowerRow, Col: terminals.Col, Rows: remainderRows, Cols: terminals.Cols}
	}

	return res
}

func pctOf(total, pct int) int {
	if total <= 0 {
		return 0
	}
	v := total * pct / 100
	if v < 0 {
		v = 0
	}
	if v > total {
		v = total
	}
	return v
}
