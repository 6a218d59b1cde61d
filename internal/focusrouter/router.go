// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// Package focusrouter implements the Focus & Router of spec §4.6: it
// classifies every incoming event in strict priority order and returns
// the action the event loop (internal/workbench) should take. It never
// touches a PTY or the terminal driver directly — internal/workbench
// owns those and executes the Action this package returns, following
// the teacher's texel/desktop.go split between "decide" and "do".
package focusrouter

import (
	"github.com/gdamore/tcell/v2"

	"github.com/eqms/claude-workbench/internal/paneid"
	"github.com/eqms/claude-workbench/internal/wblayout"
)

// Classification is exactly one of the eight partitions spec §8's
// property 7 requires every event to fall into.
type Classification int

const (
	ClassQuit Classification = iota
	ClassFocusSwitch
	ClassDialog
	ClassSelectionEntry
	ClassSelectionNavigation
	ClassPaneLocal
	ClassRawToChild
	ClassDropped
)

// Config carries the configured shortcuts (spec §6/§9's "configured
// modifier combination").
type Config struct {
	QuitKey            tcell.Key
	QuitMods           tcell.ModMask
	SelectionEntryKey  tcell.Key
	SelectionEntryMods tcell.ModMask
}

// DefaultConfig matches spec §4.6's stated defaults: Ctrl+Q to quit,
// Ctrl+S to enter selection mode.
func DefaultConfig() Config {
	return Config{
		QuitKey:            tcell.KeyCtrlQ,
		QuitMods:           tcell.ModNone,
		SelectionEntryKey:  tcell.KeyCtrlS,
		SelectionEntryMods: tcell.ModNone,
	}
}

// SelectionNavKey enumerates the internal navigation keys recognized
// while a selection is active.
type SelectionNavKey int

const (
	NavNone SelectionNavKey = iota
	NavUp
	NavDown
	NavUpBig
	NavDownBig
	NavTop
	NavBottom
	NavExtractSend
	NavCopyClipboard
	NavCancel
)

// Action is what internal/workbench should do in response to one
// classified event. Only the fields relevant to Class are populated.
type Action struct {
	Class Classification

	FocusTarget    paneid.PaneId
	ToggleVisible  paneid.PaneId
	HasToggle      bool
	NavKey         SelectionNavKey
	RawBytes       []byte
	PaneLocalPane  paneid.PaneId
	PaneLocalEvent *tcell.EventKey
}

// Router holds the strict-priority classification state: whether a
// dialog is open and whether selection mode is active for the currently
// focused pane.
type Router struct {
	cfg           Config
	dialogOpen    bool
	selectionMode bool
}

// New creates a Router with the given shortcut configuration.
func New(cfg Config) *Router { return &Router{cfg: cfg} }

// SetDialogOpen toggles whether a help/overlay dialog currently
// consumes events (priority 3).
func (r *Router) SetDialogOpen(open bool) { r.dialogOpen = open }

// SetSelectionMode toggles whether selection-mode-internal handling
// applies (priority 5), set by the caller once SelectionController.Enter
// / Cancel / Extract run.
func (r *Router) SetSelectionMode(active bool) { r.selectionMode = active }

// focusKeys maps F1-F5 to the pane they switch focus to, per spec
// §4.6's "Global focus switch (F1…F6)". F6 is handled separately in
// ClassifyKey as a visibility toggle.
var focusKeys = map[tcell.Key]paneid.PaneId{
	tcell.KeyF1: paneid.FileBrowser,
	tcell.KeyF2: paneid.Preview,
	tcell.KeyF3: paneid.AssistantTerm,
	tcell.KeyF4: paneid.GitTerm,
	tcell.KeyF5: paneid.ShellTerm,
}

// ClassifyKey applies the strict priority order of spec §4.6 to a key
// event, given which pane is currently active.
func (r *Router) ClassifyKey(ev *tcell.EventKey, active paneid.PaneId) Action {
	if ev.Key() == r.cfg.QuitKey && ev.Modifiers() == r.cfg.QuitMods {
		return Action{Class: ClassQuit}
	}

	if target, ok := focusKeys[ev.Key()]; ok {
		return Action{Class: ClassFocusSwitch, FocusTarget: target}
	}
	if ev.Key() == tcell.KeyF6 {
		return Action{Class: ClassFocusSwitch, ToggleVisible: paneid.Footer, HasToggle: true}
	}

	if r.dialogOpen {
		return Action{Class: ClassDialog}
	}

	if !r.selectionMode && ev.Key() == r.cfg.SelectionEntryKey && ev.Modifiers() == r.cfg.SelectionEntryMods && active.IsTerminal() {
		return Action{Class: ClassSelectionEntry}
	}

	if r.selectionMode {
		if nav := classifySelectionNav(ev); nav != NavNone {
			return Action{Class: ClassSelectionNavigation, NavKey: nav}
		}
	}

	if isPaneLocalShortcut(ev, active) {
		return Action{Class: ClassPaneLocal, PaneLocalPane: active, PaneLocalEvent: ev}
	}

	if active.IsTerminal() {
		return Action{Class: ClassRawToChild}
	}

	return Action{Class: ClassDropped}
}

func classifySelectionNav(ev *tcell.EventKey) SelectionNavKey {
	shift := ev.Modifiers()&tcell.ModShift != 0
	switch ev.Key() {
	case tcell.KeyUp:
		if shift {
			return NavUpBig
		}
		return NavUp
	case tcell.KeyDown:
		if shift {
			return NavDownBig
		}
		return NavDown
	case tcell.KeyEnter:
		return NavExtractSend
	case tcell.KeyCtrlC:
		return NavCopyClipboard
	case tcell.KeyEsc:
		return NavCancel
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'j':
			return NavDown
		case 'k':
			return NavUp
		case 'g':
			return NavTop
		case 'G':
			return NavBottom
		case 'y':
			return NavExtractSend
		}
	}
	return NavNone
}

// isPaneLocalShortcut recognizes file-browser navigation, preview
// scroll, and terminal-scroll (Shift+PageUp/Down, Shift+arrows outside
// selection mode) shortcuts routed to the active pane rather than
// forwarded raw.
func isPaneLocalShortcut(ev *tcell.EventKey, active paneid.PaneId) bool {
	shift := ev.Modifiers()&tcell.ModShift != 0
	switch active {
	case paneid.FileBrowser:
		switch ev.Key() {
		case tcell.KeyUp, tcell.KeyDown, tcell.KeyEnter, tcell.KeyBackspace, tcell.KeyBackspace2:
			return true
		}
		return false
	case paneid.Preview:
		switch ev.Key() {
		case tcell.KeyUp, tcell.KeyDown, tcell.KeyPgUp, tcell.KeyPgDn:
			return true
		}
		return false
	default:
		if !active.IsTerminal() {
			return false
		}
		if shift && (ev.Key() == tcell.KeyPgUp || ev.Key() == tcell.KeyPgDn) {
			return true
		}
		if shift && (ev.Key() == tcell.KeyUp || ev.Key() == tcell.KeyDown) {
			return true
		}
		return false
	}
}

// MouseHit hit-tests a mouse event against the current layout, returning
// the pane it lands in (Footer if none match).
func MouseHit(x, y int, layout wblayout.Result) paneid.PaneId {
	hit := func(r wblayout.Rect) bool {
		return !r.Empty() && x >= r.Col && x < r.Col+r.Cols && y >= r.Row && y < r.Row+r.Rows
	}
	switch {
	case hit(layout.FileBrowser):
		return paneid.FileBrowser
	case hit(layout.Preview):
		return paneid.Preview
	case hit(layout.Assistant):
		return paneid.AssistantTerm
	case hit(layout.Git):
		return paneid.GitTerm
	case hit(layout.Shell):
		return paneid.ShellTerm
	default:
		return paneid.Footer
	}
}
