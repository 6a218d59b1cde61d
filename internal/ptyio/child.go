// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// Package ptyio implements the PTY Child of spec §4.1: spawning an OS
// child process attached to a pseudo-terminal pair, using the teacher's
// own dependency github.com/creack/pty exactly as tui/pty_app.go does
// (pty.Start, pty.Setsize), generalized to the full spawn/write/resize/
// wait/kill contract the spec requires.
package ptyio

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/creack/pty"
)

// SpawnError reports that a child could not be launched.
type SpawnError struct {
	Command string
	Cause   error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %q: %v", e.Command, e.Cause)
}
func (e *SpawnError) Unwrap() error { return e.Cause }

// ErrClosedPipe is returned by Write once the child has exited.
var ErrClosedPipe = errors.New("ptyio: write to closed pipe")

// killGrace is how long Child waits after closing the master (which
// sends the child an EOF/HUP) before escalating to SIGTERM, and then to
// SIGKILL, per spec §4.1's "short grace period" language.
const killGrace = 200 * time.Millisecond

// Child is one OS child process attached to a pseudo-terminal pair.
type Child struct {
	command string
	args    []string

	mu      sync.Mutex
	cmd     *exec.Cmd
	master  *os.File
	closed  bool
	exited  bool
	exitErr error
}

// Spawn launches command with args, the given environment (already
// merged by the caller — see workbench/env.go), starting cwd, and
// initial PTY size (rows, cols).
func Spawn(command string, args []string, env []string, cwd string, rows, cols int) (*Child, error) {
	if _, err := os.Stat(cwd); err != nil {
		return nil, &SpawnError{Command: command, Cause: fmt.Errorf("cwd %q: %w", cwd, err)}
	}
	cmd := exec.Command(command, args...)
	cmd.Env = env
	cmd.Dir = cwd

	master, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, &SpawnError{Command: command, Cause: err}
	}

	c := &Child{command: command, args: args, cmd: cmd, master: master}
	go c.reapOnExit()
	return c, nil
}

// reapOnExit blocks on cmd.Wait so the process doesn't become a zombie,
// recording the exit status for WaitNonblocking.
func (c *Child) reapOnExit() {
	err := c.cmd.Wait()
	c.mu.Lock()
	c.exited = true
	c.exitErr = err
	c.mu.Unlock()
}

// TakeReader returns the PTY master for reading child output. Callable
// once; the Pane Terminal's reader goroutine owns it afterward.
func (c *Child) TakeReader() *os.File {
	return c.master
}

// Write forwards bytes to the child's stdin (the PTY master). Best
// effort: a write after the child has exited returns ErrClosedPipe and
// never panics.
func (c *Child) Write(b []byte) (int, error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return 0, ErrClosedPipe
	}
	n, err := c.master.Write(b)
	if err != nil {
		if c.hasExited() {
			return n, ErrClosedPipe
		}
		return n, err
	}
	return n, nil
}

// Resize is best-effort: an error is logged and the call becomes a no-op.
func (c *Child) Resize(rows, cols int) {
	if err := pty.Setsize(c.master, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)}); err != nil {
		log.Warn("pty resize failed", "command", c.command, "err", err)
	}
}

// WaitNonblocking reports the exit status if the child has already
// exited, or ok=false if it is still running.
func (c *Child) WaitNonblocking() (state *os.ProcessState, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.exited {
		return nil, false
	}
	return c.cmd.ProcessState, true
}

func (c *Child) hasExited() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exited
}

// Kill closes the PTY master (EOF to the child), then, if the process is
// still alive after killGrace, sends SIGTERM, and after another killGrace
// SIGKILL.
func (c *Child) Kill() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	_ = c.master.Close()

	if c.hasExited() {
		return
	}
	time.AfterFunc(killGrace, func() {
		if c.hasExited() {
			return
		}
		if c.cmd.Process != nil {
			_ = c.cmd.Process.Signal(syscall.SIGTERM)
		}
		time.AfterFunc(killGrace, func() {
			if c.hasExited() {
				return
			}
			if c.cmd.Process != nil {
				_ = c.cmd.Process.Kill()
			}
		})
	})
}
