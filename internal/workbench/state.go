// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// Focus State, Flash, and PendingCwd of spec §3, owned exclusively by
// the event loop as spec §5's "Ownership summary" requires.
package workbench

import (
	"time"

	"github.com/eqms/claude-workbench/internal/paneid"
)

// FocusState tracks which region is active and which are visible.
type FocusState struct {
	Active             paneid.PaneId
	Visible            map[paneid.PaneId]bool
	FullscreenCandidate paneid.PaneId
	HasFullscreen       bool
}

// NewFocusState starts with every pane visible and the shell focused.
func NewFocusState() *FocusState {
	return &FocusState{
		Active: paneid.ShellTerm,
		Visible: map[paneid.PaneId]bool{
			paneid.FileBrowser:   true,
			paneid.Preview:       true,
			paneid.AssistantTerm: true,
			paneid.GitTerm:       true,
			paneid.ShellTerm:     true,
		},
	}
}

// SetActive changes the active pane, enforcing the invariant active ∈
// visible by making it visible if it wasn't already.
func (f *FocusState) SetActive(id paneid.PaneId) {
	f.Active = id
	f.Visible[id] = true
}

// ToggleVisible flips a pane's visibility. If the pane being hidden was
// active, focus falls back to the first still-visible terminal pane.
func (f *FocusState) ToggleVisible(id paneid.PaneId) {
	f.Visible[id] = !f.Visible[id]
	if !f.Visible[id] && f.Active == id {
		for _, t := range paneid.Terminals {
			if f.Visible[t] {
				f.Active = t
				break
			}
		}
	}
}

// AuxHidden reports whether every region other than the assistant
// terminal and the footer (file browser, preview, git, shell) is hidden
// (spec §4.5's fullscreen trigger).
func (f *FocusState) AuxHidden() bool {
	return !f.Visible[paneid.FileBrowser] && !f.Visible[paneid.Preview] &&
		!f.Visible[paneid.GitTerm] && !f.Visible[paneid.ShellTerm]
}

// Flash is a transient footer notification.
type Flash struct {
	Text     string
	Deadline time.Time
}

// FlashController owns zero-or-one active Flash.
type FlashController struct {
	current *Flash
}

// Show installs a new flash message with the given time-to-live.
func (c *FlashController) Show(text string, ttl time.Duration, now time.Time) {
	c.current = &Flash{Text: text, Deadline: now.Add(ttl)}
}

// Sweep clears the flash once now >= its deadline. Returns the flash
// text to display, or "" if none is active.
func (c *FlashController) Sweep(now time.Time) string {
	if c.current == nil {
		return ""
	}
	if !now.Before(c.current.Deadline) {
		c.current = nil
		return ""
	}
	return c.current.Text
}
