// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// Package paneterm implements the Pane Terminal of spec §4.3: it binds
// one PTY Child to one VT Screen via a dedicated reader goroutine, the
// way the teacher's tui/pty_app.go binds a PTYApp's pty.File to its
// parser.VTerm in a background goroutine guarded by a mutex.
package paneterm

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/eqms/claude-workbench/internal/ptyio"
	"github.com/eqms/claude-workbench/internal/vt"
)

// readBufSize is B in spec §4.3's "reads up to B bytes" language.
const readBufSize = 4096

// PaneTerminal owns one PTY Child and its VT Screen, plus the last
// interior size it was resized to and the liveness of its reader.
type PaneTerminal struct {
	command string
	args    []string

	child  *ptyio.Child
	screen *vt.Screen

	rows, cols int32 // guarded via atomic for resize no-op checks

	alive int32 // 1 while the reader goroutine is running

	mu         sync.Mutex
	terminated bool
	exitErr    error
}

// New starts a PTY Child and a reader goroutine feeding its output into
// a fresh VT Screen sized (rows, cols) with the given scrollback capacity.
func New(command string, args []string, env []string, cwd string, rows, cols, scrollback int) (*PaneTerminal, error) {
	child, err := ptyio.Spawn(command, args, env, cwd, rows, cols)
	if err != nil {
		return nil, err
	}
	pt := &PaneTerminal{
		command: command,
		args:    args,
		child:   child,
		screen:  vt.NewScreen(rows, cols, scrollback),
		rows:    int32(rows),
		cols:    int32(cols),
		alive:   1,
	}
	go pt.readLoop()
	return pt, nil
}

// Screen exposes the underlying VT Screen for rendering.
func (pt *PaneTerminal) Screen() *vt.Screen { return pt.screen }

// Alive reports whether the reader goroutine is still running (the PTY
// has not returned EOF or a non-retryable read error).
func (pt *PaneTerminal) Alive() bool { return atomic.LoadInt32(&pt.alive) == 1 }

// Terminated reports whether the pane has been marked dead (reader exit
// or a write failure), matching spec §7's "pane is marked terminated" UX.
func (pt *PaneTerminal) Terminated() bool {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	return pt.terminated
}

func (pt *PaneTerminal) markTerminated(err error) {
	pt.mu.Lock()
	pt.terminated = true
	pt.exitErr = err
	pt.mu.Unlock()
	atomic.StoreInt32(&pt.alive, 0)
}

func (pt *PaneTerminal) readLoop() {
	buf := make([]byte, readBufSize)
	reader := pt.child.TakeReader()
	for {
		n, err := reader.Read(buf)
		if n > 0 {
			pt.screen.Feed(buf[:n])
		}
		if err != nil {
			if err != io.EOF {
				log.Error("pty read failed", "command", pt.command, "err", err)
			}
			pt.markTerminated(err)
			return
		}
	}
}

// WriteInput forwards bytes to the child and resets the ScrollOffset to
// 0, so keystrokes always jump the viewport back to live (spec §4.3).
func (pt *PaneTerminal) WriteInput(b []byte) error {
	_, err := pt.child.Write(b)
	if err != nil {
		log.Warn("pty write dropped", "command", pt.command, "err", err)
		pt.markTerminated(err)
		return err
	}
	pt.screen.ResetScroll()
	return nil
}

// Resize forwards to both the VT Screen and the child; back-to-back
// identical sizes are a no-op.
func (pt *PaneTerminal) Resize(rows, cols int) {
	if atomic.LoadInt32(&pt.rows) == int32(rows) && atomic.LoadInt32(&pt.cols) == int32(cols) {
		return
	}
	atomic.StoreInt32(&pt.rows, int32(rows))
	atomic.StoreInt32(&pt.cols, int32(cols))
	pt.screen.Resize(rows, cols)
	pt.child.Resize(rows, cols)
}

// Scroll adjusts the ScrollOffset, clamped to [0, scrollback.Len()].
func (pt *PaneTerminal) Scroll(delta int) int { return pt.screen.Scroll(delta) }

// PageSize is the scroll amount for a Shift+PageUp/PageDown, one
// screen height.
func (pt *PaneTerminal) PageSize() int {
	rows, _ := pt.screen.Size()
	return rows
}

// ResetScroll snaps the viewport back to live.
func (pt *PaneTerminal) ResetScroll() { pt.screen.ResetScroll() }

// ExtractLastNLines returns the last n lines of the live grid. The
// workbench does not call it; pty.copy_lines_count is loaded but unused.
func (pt *PaneTerminal) ExtractLastNLines(n int) string { return pt.screen.ExtractLastNLines(n) }

// ExtractRange delegates to the VT Screen's range extraction.
func (pt *PaneTerminal) ExtractRange(sel vt.Selection) string { return pt.screen.ExtractRange(sel) }

// AtLineStart reports whether the cursor sits at column 0 of its row.
// The router does not consult it; Up/Down are not intercepted for
// history replay.
func (pt *PaneTerminal) AtLineStart() bool {
	_, col, _ := pt.screen.Cursor()
	return col == 0
}

// Close terminates the child, releasing the PTY. Idempotent.
func (pt *PaneTerminal) Close() {
	pt.child.Kill()
}
