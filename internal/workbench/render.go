// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// The render step of spec §4.9's event loop: for each visible region,
// paint its content into the back-buffer, then the footer, then commit.
package workbench

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/eqms/claude-workbench/internal/paneid"
	"github.com/eqms/claude-workbench/internal/vt"
	"github.com/eqms/claude-workbench/internal/wblayout"
)

func (w *Workbench) render(layout wblayout.Result) {
	if !layout.FileBrowser.Empty() {
		w.renderBrowser(layout.FileBrowser)
	}
	if !layout.Preview.Empty() {
		w.renderPreviewPlaceholder(layout.Preview)
	}
	w.renderTerminal(paneid.AssistantTerm, layout.Assistant)
	w.renderTerminal(paneid.GitTerm, layout.Git)
	w.renderTerminal(paneid.ShellTerm, layout.Shell)
	w.renderFooter(layout.Footer)
	w.driver.Show()
}

func (w *Workbench) renderBrowser(rect wblayout.Rect) {
	w.drawBorder(rect, w.focus.Active == paneid.FileBrowser)
	interior := rect.Interior()
	entries := w.browser.Entries()
	for i := 0; i < interior.Rows && i < len(entries); i++ {
		style := tcell.StyleDefault
		if entries[i].IsDir {
			style = style.Bold(true)
		}
		if i == w.browserIndex {
			style = style.Reverse(true)
		}
		w.drawText(interior.Col, interior.Row+i, interior.Cols, entries[i].Name, style)
	}
}

// renderPreviewPlaceholder draws only the preview border. No file
// contents are drawn: the workbench does not call internal/preview.
func (w *Workbench) renderPreviewPlaceholder(rect wblayout.Rect) {
	w.drawBorder(rect, w.focus.Active == paneid.Preview)
}

func (w *Workbench) renderTerminal(id paneid.PaneId, rect wblayout.Rect) {
	if rect.Empty() {
		return
	}
	pt, ok := w.terminals[id]
	active := w.focus.Active == id
	w.drawBorder(rect, active)
	interior := rect.Interior()
	if interior.Empty() {
		return
	}
	if !ok {
		w.drawText(interior.Col, interior.Row, interior.Cols, "(not started)", tcell.StyleDefault.Foreground(tcell.ColorRed))
		return
	}
	if pt.Terminated() {
		w.drawText(interior.Col, interior.Row, interior.Cols, "[terminated]", tcell.StyleDefault.Foreground(tcell.ColorRed))
		return
	}

	offset := pt.Screen().ScrollOffset()
	rows := pt.Screen().VisibleRows(offset, interior.Rows)
	for r, row := range rows {
		for c := 0; c < interior.Cols && c < len(row); c++ {
			cell := row[c]
			if cell.Continuation {
				continue
			}
			style := cellStyle(cell)
			w.driver.SetContent(interior.Col+c, interior.Row+r, cell.Rune, nil, style)
		}
	}

	if active && offset == 0 {
		cr, cc, visible := pt.Screen().Cursor()
		if visible && cr < interior.Rows && cc < interior.Cols {
			w.driver.ShowCursor(interior.Col+cc, interior.Row+cr)
		}
	}
}

func cellStyle(c vt.Cell) tcell.Style {
	style := tcell.StyleDefault
	if c.FG.Mode != vt.ColorDefault {
		style = style.Foreground(vtColorToTcell(c.FG))
	}
	if c.BG.Mode != vt.ColorDefault {
		style = style.Background(vtColorToTcell(c.BG))
	}
	if c.Attr&vt.AttrBold != 0 {
		style = style.Bold(true)
	}
	if c.Attr&vt.AttrItalic != 0 {
		style = style.Italic(true)
	}
	if c.Attr&vt.AttrUnderline != 0 {
		style = style.Underline(true)
	}
	if c.Attr&vt.AttrReverse != 0 {
		style = style.Reverse(true)
	}
	if c.Attr&vt.AttrDim != 0 {
		style = style.Dim(true)
	}
	if c.Attr&vt.AttrBlink != 0 {
		style = style.Blink(true)
	}
	return style
}

func vtColorToTcell(c vt.Color) tcell.Color {
	switch c.Mode {
	case vt.ColorStandard:
		return tcell.PaletteColor(int(c.Value))
	case vt.Color256:
		return tcell.PaletteColor(int(c.Value))
	case vt.ColorRGB:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	default:
		return tcell.ColorDefault
	}
}

func (w *Workbench) renderFooter(rect wblayout.Rect) {
	if rect.Empty() {
		return
	}
	text := w.flash.Sweep(time.Now())
	if text == "" {
		text = footerHint()
	}
	w.drawText(rect.Col, rect.Row, rect.Cols, text, tcell.StyleDefault.Reverse(true))
}

func footerHint() string {
	return "F1 files  F2 preview  F3 assistant  F4 git  F5 shell  Ctrl+S select  Ctrl+Q quit"
}

func (w *Workbench) drawBorder(rect wblayout.Rect, active bool) {
	style := tcell.StyleDefault
	if active {
		style = style.Foreground(tcell.ColorYellow)
	}
	if rect.Rows < 2 || rect.Cols < 2 {
		return
	}
	for c := 0; c < rect.Cols; c++ {
		w.driver.SetContent(rect.Col+c, rect.Row, tcell.RuneHLine, nil, style)
		w.driver.SetContent(rect.Col+c, rect.Row+rect.Rows-1, tcell.RuneHLine, nil, style)
	}
	for r := 0; r < rect.Rows; r++ {
		w.driver.SetContent(rect.Col, rect.Row+r, tcell.RuneVLine, nil, style)
		w.driver.SetContent(rect.Col+rect.Cols-1, rect.Row+r, tcell.RuneVLine, nil, style)
	}
}

func (w *Workbench) drawText(col, row, maxWidth int, text string, style tcell.Style) {
	i := 0
	for _, r := range text {
		if i >= maxWidth {
			break
		}
		w.driver.SetContent(col+i, row, r, nil, style)
		i++
	}
}
