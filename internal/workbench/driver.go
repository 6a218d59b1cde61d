// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// Adapted from the teacher's texel/driver_tcell.go: a thin ScreenDriver
// wrapper over tcell.Screen, generalized so tests can substitute a fake
// driver without a real terminal.
package workbench

import "github.com/gdamore/tcell/v2"

// ScreenDriver is the seam between the event loop and the host terminal,
// mirroring the operations spec §6's "host terminal" contract needs:
// raw mode entry/exit is Init/Fini, everything else is drawing + input.
type ScreenDriver interface {
	Init() error
	Fini()
	Size() (int, int)
	SetStyle(style tcell.Style)
	HideCursor()
	ShowCursor(x, y int)
	Show()
	PollEvent() tcell.Event
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
	EnableMouse()
}

// TcellScreenDriver adapts a tcell.Screen to ScreenDriver.
type TcellScreenDriver struct {
	screen tcell.Screen
}

// NewTcellScreenDriver wraps the provided screen.
func NewTcellScreenDriver(screen tcell.Screen) *TcellScreenDriver {
	return &TcellScreenDriver{screen: screen}
}

func (d *TcellScreenDriver) Init() error { return d.screen.Init() }
func (d *TcellScreenDriver) Fini()       { d.screen.Fini() }
func (d *TcellScreenDriver) Size() (int, int) {
	return d.screen.Size()
}
func (d *TcellScreenDriver) SetStyle(style tcell.Style) { d.screen.SetStyle(style) }
func (d *TcellScreenDriver) HideCursor()                { d.screen.HideCursor() }
func (d *TcellScreenDriver) ShowCursor(x, y int)        { d.screen.ShowCursor(x, y) }
func (d *TcellScreenDriver) Show()                      { d.screen.Show() }
func (d *TcellScreenDriver) PollEvent() tcell.Event     { return d.screen.PollEvent() }
func (d *TcellScreenDriver) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	d.screen.SetContent(x, y, mainc, combc, style)
}
func (d *TcellScreenDriver) EnableMouse() { d.screen.EnableMouse(tcell.MouseMotionEvents) }

// Underlying exposes the wrapped tcell.Screen for code paths that need
// it directly (e.g. constructing a poll-with-timeout loop).
func (d *TcellScreenDriver) Underlying() tcell.Screen { return d.screen }
