// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// Package dirsync implements the Directory Sync observer of spec §4.8:
// when the file browser's current directory changes, shell-like PTY
// panes get a queued `cd '<path>'\r` (single-quoted, see Quote), while non-shell-like panes (the
// Git TUI) are flagged for a full restart. The quoting scheme is
// grounded on original_source/app.rs's use of shell_escape::escape,
// reimplemented natively rather than pulled in as a dependency since it
// is one function with no state.
package dirsync

import (
	"strings"

	"github.com/eqms/claude-workbench/internal/paneid"
)

// Quote wraps path in single quotes, escaping any embedded single quote
// as '\''. This is the scheme spec §4.8 and drag-drop path insertion
// share.
func Quote(path string) string {
	if path == "" {
		return "''"
	}
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range path {
		if r == '\'' {
			b.WriteString(`'\''`)
			continue
		}
		b.WriteRune(r)
	}
	b.WriteByte('\'')
	return b.String()
}

// CdCommand builds the exact bytes a shell-like pane should receive to
// change into path.
func CdCommand(path string) string {
	return "cd " + Quote(path) + "\r"
}

// Sync tracks, per terminal pane, the last directory it was synced to.
type Sync struct {
	lastSynced map[paneid.PaneId]string
}

// New creates a Sync tracking the panes in launchCwd, each initialized to
// its launch cwd, so the first tick after startup does not re-sync.
func New(launchCwd map[paneid.PaneId]string) *Sync {
	s := &Sync{lastSynced: make(map[paneid.PaneId]string, len(launchCwd))}
	for id, cwd := range launchCwd {
		s.lastSynced[id] = cwd
	}
	return s
}

// Action is what the event loop should do for one terminal pane after
// an Observe call.
type Action struct {
	Pane        paneid.PaneId
	CdBytes     []byte // non-nil: write these bytes on the next tick
	RestartCwd  string // non-empty: restart the pane's child in this cwd
	NeedsAction bool
}

// Observe compares cwd against the last-synced value for every tracked
// pane in paneid.Terminals (those registered by New or MarkSynced) and
// returns the actions needed, per pane.
func (s *Sync) Observe(cwd string) []Action {
	var actions []Action
	for _, id := range paneid.Terminals {
		last, tracked := s.lastSynced[id]
		if !tracked || last == cwd {
			continue
		}
		s.lastSynced[id] = cwd
		if id.ShellLike() {
			actions = append(actions, Action{Pane: id, CdBytes: []byte(CdCommand(cwd)), NeedsAction: true})
		} else {
			actions = append(actions, Action{Pane: id, RestartCwd: cwd, NeedsAction: true})
		}
	}
	return actions
}

// MarkSynced forces a pane's last-synced value without emitting an
// action, used right after a restart completes in the new directory.
func (s *Sync) MarkSynced(id paneid.PaneId, cwd string) {
	s.lastSynced[id] = cwd
}
