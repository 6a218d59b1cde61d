// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// Package workbench is the Event Loop of spec §4.9 and the top-level
// wiring point for every other component: it owns the FocusState,
// FlashController, Directory Sync observer, Selection Controller,
// Router, and the three Pane Terminals, driving one canonical iteration
// per spec §4.9's six steps. Structured as a single-threaded cooperative
// loop with worker threads confined to PTY reading, per spec §9 and the
// teacher's texel/screen.go main-loop shape.
package workbench

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/eqms/claude-workbench/internal/browser"
	"github.com/eqms/claude-workbench/internal/clipboard"
	"github.com/eqms/claude-workbench/internal/dirsync"
	"github.com/eqms/claude-workbench/internal/focusrouter"
	"github.com/eqms/claude-workbench/internal/history"
	"github.com/eqms/claude-workbench/internal/inputxlate"
	"github.com/eqms/claude-workbench/internal/paneid"
	"github.com/eqms/claude-workbench/internal/paneterm"
	"github.com/eqms/claude-workbench/internal/wbconfig"
	"github.com/eqms/claude-workbench/internal/wblayout"
)

// pollTimeout is the hard 16ms deadline spec §4.9/§5 mandate.
const pollTimeout = 16 * time.Millisecond

// startupFormFeed clears any startup banner in a freshly spawned pane
// (spec §6's "PTY startup sequence").
const startupFormFeed = "\x0c"

// InitError is returned when raw mode or a required PTY cannot be
// allocated, per spec §7's Init failure kind. Exit code 1.
type InitError struct {
	Cause error
}

func (e *InitError) Error() string { return fmt.Sprintf("workbench: init failed: %v", e.Cause) }
func (e *InitError) Unwrap() error { return e.Cause }

// Workbench is the fully wired application.
type Workbench struct {
	driver ScreenDriver
	cfg    *wbconfig.Loader

	focus    *FocusState
	flash    FlashController
	router   *focusrouter.Router
	selector *focusrouter.SelectionController

	browser *browser.Browser
	dirsync *dirsync.Sync

	terminals   map[paneid.PaneId]*paneterm.PaneTerminal
	launchCwd   map[paneid.PaneId]string
	lastRect    map[paneid.PaneId]wblayout.Rect
	appCwd      string

	histStore *history.Store

	browserIndex int

	quit bool
}

// New constructs a Workbench: loads config, opens the browser at cwd,
// spawns the three terminal panes, and enters raw mode via driver.Init.
// A construction failure surfaces as InitError.
func New(driver ScreenDriver, cfgLoader *wbconfig.Loader, cwd string, histStore *history.Store) (*Workbench, error) {
	b, err := browser.New(cwd)
	if err != nil {
		return nil, &InitError{Cause: err}
	}

	if err := driver.Init(); err != nil {
		return nil, &InitError{Cause: err}
	}
	driver.SetStyle(tcell.StyleDefault)
	driver.HideCursor()
	driver.EnableMouse()

	cfg := cfgLoader.Current()
	rows, cols := driver.Size()

	wb := &Workbench{
		driver:    driver,
		cfg:       cfgLoader,
		focus:     NewFocusState(),
		router:    focusrouter.New(focusrouter.DefaultConfig()),
		selector:  focusrouter.NewSelectionController(),
		browser:   b,
		terminals: make(map[paneid.PaneId]*paneterm.PaneTerminal),
		launchCwd: make(map[paneid.PaneId]string),
		lastRect:  make(map[paneid.PaneId]wblayout.Rect),
		appCwd:    b.Cwd(),
		histStore: histStore,
	}

	specs := []struct {
		id   paneid.PaneId
		cmd  string
		args []string
	}{
		{paneid.AssistantTerm, cfg.Terminal.ShellPath, cfg.Terminal.ShellArgs},
		{paneid.GitTerm, "git", []string{}},
		{paneid.ShellTerm, cfg.Terminal.ShellPath, cfg.Terminal.ShellArgs},
	}
	contentRows := rows - 1
	interiorRows, interiorCols := contentRows/3, cols/2
	if interiorRows < 1 {
		interiorRows = 1
	}
	if interiorCols < 1 {
		interiorCols = 1
	}

	for _, s := range specs {
		pt, err := paneterm.New(s.cmd, s.args, ChildEnv(), b.Cwd(), interiorRows, interiorCols, cfg.Pty.ScrollbackCapacity)
		if err != nil {
			log.Warn("pane spawn failed", "pane", s.id, "err", err)
			wb.flash.Show(fmt.Sprintf("%s failed to start: %v", s.id, err), 4*time.Second, time.Now())
			continue
		}
		pt.WriteInput([]byte(startupFormFeed))
		wb.terminals[s.id] = pt
		wb.launchCwd[s.id] = b.Cwd()
	}

	wb.dirsync = dirsync.New(wb.launchCwd)

	return wb, nil
}

// Quit requests termination on the next loop iteration.
func (w *Workbench) Quit() { w.quit = true }

// Close releases every Pane Terminal and restores the host terminal.
// Safe to call multiple times.
func (w *Workbench) Close() {
	for _, pt := range w.terminals {
		pt.Close()
	}
	w.driver.Fini()
}

// Run executes the event loop until quit intent or a fatal error.
// Termination always restores the host terminal (spec §4.9, §6).
func (w *Workbench) Run(ctx context.Context) error {
	defer w.Close()

	for !w.quit {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		layout := w.computeLayout()
		w.resizeChangedPanes(layout)

		if ev := w.pollWithTimeout(); ev != nil {
			w.handleEvent(ev, layout)
		}

		w.drainSideEffects()
		w.render(layout)
	}
	return nil
}

func (w *Workbench) computeLayout() wblayout.Result {
	rows, cols := w.driver.Size()
	cfg := w.cfg.Current()
	sizes := wblayout.Sizes{
		FileBrowserWidthPercent: cfg.Layout.FileBrowserWidthPercent,
		PreviewWidthPercent:     cfg.Layout.PreviewWidthPercent,
		RightPanelWidthPercent:  cfg.Layout.RightPanelWidthPercent,
		AssistantHeightPercent:  cfg.Layout.AssistantHeightPercent,
	}
	return wblayout.Layout(rows, cols, w.focus.Visible, sizes)
}

func (w *Workbench) resizeChangedPanes(layout wblayout.Result) {
	pairs := []struct {
		id   paneid.PaneId
		rect wblayout.Rect
	}{
		{paneid.AssistantTerm, layout.Assistant},
		{paneid.GitTerm, layout.Git},
		{paneid.ShellTerm, layout.Shell},
	}
	for _, p := range pairs {
		pt, ok := w.terminals[p.id]
		if !ok {
			continue
		}
		interior := p.rect.Interior()
		if interior == w.lastRect[p.id] {
			continue
		}
		w.lastRect[p.id] = interior
		if interior.Empty() {
			continue
		}
		pt.Resize(interior.Rows, interior.Cols)
	}
}

// pollWithTimeout polls the driver's event source with a 16ms budget.
// tcell doesn't expose a poll-with-timeout directly on the Screen
// interface, so a PollEvent call is raced against a timer on a helper
// goroutine the first time it's needed; subsequent calls reuse the
// channel. This keeps the main loop itself non-blocking beyond 16ms
// while a real terminal driver blocks in PollEvent between keystrokes.
func (w *Workbench) pollWithTimeout() tcell.Event {
	type result struct{ ev tcell.Event }
	ch := make(chan result, 1)
	go func() { ch <- result{w.driver.PollEvent()} }()

	select {
	case r := <-ch:
		return r.ev
	case <-time.After(pollTimeout):
		return nil
	}
}

func (w *Workbench) handleEvent(ev tcell.Event, layout wblayout.Result) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		w.handleKey(e)
	case *tcell.EventMouse:
		w.handleMouse(e, layout)
	case *tcell.EventResize:
		// picked up by the next computeLayout call.
	}
}

func (w *Workbench) handleKey(ev *tcell.EventKey) {
	action := w.router.ClassifyKey(ev, w.focus.Active)
	switch action.Class {
	case focusrouter.ClassQuit:
		w.quit = true
	case focusrouter.ClassFocusSwitch:
		if action.HasToggle {
			w.focus.ToggleVisible(action.ToggleVisible)
		} else {
			w.focus.SetActive(action.FocusTarget)
		}
	case focusrouter.ClassDialog:
		// dialog handling is an external collaborator; nothing to do here.
	case focusrouter.ClassSelectionEntry:
		w.enterSelection()
	case focusrouter.ClassSelectionNavigation:
		w.handleSelectionNav(action.NavKey)
	case focusrouter.ClassPaneLocal:
		w.handlePaneLocal(action)
	case focusrouter.ClassRawToChild:
		w.writeRaw(ev)
	case focusrouter.ClassDropped:
		// intentionally ignored.
	}
}

func (w *Workbench) enterSelection() {
	pt, ok := w.terminals[w.focus.Active]
	if !ok {
		return
	}
	rows, _ := pt.Screen().Size()
	w.selector.Enter(w.focus.Active, rows-1)
	w.router.SetSelectionMode(true)
}

func (w *Workbench) handleSelectionNav(nav focusrouter.SelectionNavKey) {
	pt, ok := w.terminals[w.selector.Selection().Pane]
	switch nav {
	case focusrouter.NavUp:
		w.selector.MoveBy(-1)
	case focusrouter.NavDown:
		w.selector.MoveBy(1)
	case focusrouter.NavUpBig:
		w.selector.MoveBy(-5)
	case focusrouter.NavDownBig:
		w.selector.MoveBy(5)
	case focusrouter.NavTop:
		if ok {
			w.selector.JumpToTop(-pt.Screen().ScrollbackLen())
		}
	case focusrouter.NavBottom:
		if ok {
			rows, _ := pt.Screen().Size()
			w.selector.JumpToBottom(rows - 1)
		}
	case focusrouter.NavExtractSend:
		w.extractAndSend(ok, pt)
	case focusrouter.NavCopyClipboard:
		if ok {
			text := w.selector.Extract(pt.Screen())
			if err := clipboard.Copy(text); err != nil {
				w.flash.Show("clipboard unavailable", 3*time.Second, time.Now())
			} else {
				w.flash.Show("copied to clipboard", 2*time.Second, time.Now())
			}
		}
		w.router.SetSelectionMode(false)
	case focusrouter.NavCancel:
		w.selector.Cancel()
		w.router.SetSelectionMode(false)
	}
}

func (w *Workbench) extractAndSend(ok bool, pt *paneterm.PaneTerminal) {
	if !ok {
		w.selector.Cancel()
		w.router.SetSelectionMode(false)
		return
	}
	raw := w.selector.Extract(pt.Screen())
	w.router.SetSelectionMode(false)

	assistant, hasAssistant := w.terminals[paneid.AssistantTerm]
	if !hasAssistant {
		if err := clipboard.Copy(raw); err != nil {
			w.flash.Show("assistant not running; clipboard unavailable", 3*time.Second, time.Now())
		} else {
			w.flash.Show("assistant not running; copied to clipboard", 3*time.Second, time.Now())
		}
		return
	}
	filtered := filterForAssistant(raw)
	assistant.WriteInput([]byte(filtered))
	w.flash.Show("sent to assistant", 2*time.Second, time.Now())
}

func (w *Workbench) handlePaneLocal(action focusrouter.Action) {
	if action.PaneLocalPane == paneid.FileBrowser {
		w.handleBrowserKey(action.PaneLocalEvent)
		return
	}

	pt, ok := w.terminals[action.PaneLocalPane]
	if !ok {
		return
	}
	ev := action.PaneLocalEvent
	shift := ev.Modifiers()&tcell.ModShift != 0
	switch {
	case shift && ev.Key() == tcell.KeyPgUp:
		pt.Scroll(pt.PageSize())
	case shift && ev.Key() == tcell.KeyPgDn:
		pt.Scroll(-pt.PageSize())
	case shift && ev.Key() == tcell.KeyUp:
		pt.Scroll(1)
	case shift && ev.Key() == tcell.KeyDown:
		pt.Scroll(-1)
	}
}

func (w *Workbench) handleBrowserKey(ev *tcell.EventKey) {
	entries := w.browser.Entries()
	switch ev.Key() {
	case tcell.KeyUp:
		if w.browserIndex > 0 {
			w.browserIndex--
		}
	case tcell.KeyDown:
		if w.browserIndex < len(entries)-1 {
			w.browserIndex++
		}
	case tcell.KeyEnter:
		if w.browserIndex < len(entries) && entries[w.browserIndex].IsDir {
			if err := w.browser.Enter(entries[w.browserIndex].Name); err == nil {
				w.browserIndex = 0
			}
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if err := w.browser.Up(); err == nil {
			w.browserIndex = 0
		}
	}
}

func (w *Workbench) writeRaw(ev *tcell.EventKey) {
	pt, ok := w.terminals[w.focus.Active]
	if !ok {
		return
	}
	mods := inputxlate.FromTcell(ev.Modifiers())
	bytes := inputxlate.Translate(ev.Key(), ev.Rune(), mods, pt.Screen().ApplicationCursorKeys())
	if len(bytes) == 0 {
		return
	}
	if err := pt.WriteInput(bytes); err != nil {
		w.flash.Show(fmt.Sprintf("%s: write failed", w.focus.Active), 3*time.Second, time.Now())
	}
	if w.histStore != nil && ev.Key() == tcell.KeyEnter {
		w.histStore.Append(context.Background(), w.focus.Active, "")
	}
}

func (w *Workbench) handleMouse(ev *tcell.EventMouse, layout wblayout.Result) {
	x, y := ev.Position()
	hit := focusrouter.MouseHit(x, y, layout)
	if hit == paneid.Footer {
		return
	}
	w.focus.SetActive(hit)
}

func (w *Workbench) drainSideEffects() {
	for _, action := range w.dirsync.Observe(w.browser.Cwd()) {
		pt, ok := w.terminals[action.Pane]
		if !ok {
			continue
		}
		if action.CdBytes != nil {
			pt.WriteInput(action.CdBytes)
		} else if action.RestartCwd != "" {
			w.restartPane(action.Pane, action.RestartCwd)
		}
	}
	w.flash.Sweep(time.Now())
}

func (w *Workbench) restartPane(id paneid.PaneId, cwd string) {
	old, ok := w.terminals[id]
	if ok {
		old.Close()
	}
	rect := w.lastRect[id]
	rows, cols := rect.Rows, rect.Cols
	if rows <= 0 {
		rows = 24
	}
	if cols <= 0 {
		cols = 80
	}
	pt, err := paneterm.New("git", nil, ChildEnv(), cwd, rows, cols, w.cfg.Current().Pty.ScrollbackCapacity)
	if err != nil {
		log.Warn("pane restart failed", "pane", id, "err", err)
		delete(w.terminals, id)
		w.flash.Show(fmt.Sprintf("%s failed to restart", id), 4*time.Second, time.Now())
		return
	}
	pt.WriteInput([]byte(startupFormFeed))
	w.terminals[id] = pt
	w.dirsync.MarkSynced(id, cwd)
}
