// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// Package clipboard wraps the system clipboard external collaborator
// named in SPEC_FULL.md, using github.com/atotto/clipboard exactly the
// way the pack's browser and CLI tools reach for it — a two-function
// read/write surface with no state of its own.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnavailable is returned when no clipboard service is
// reachable (headless X11, no pbcopy/xclip/wl-copy, etc.), matching
// spec §7's "Clipboard failure: no clipboard service available."
var ErrClipboardUnavailable = errors.New("clipboard: no clipboard service available")

// Copy writes text to the system clipboard.
func Copy(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return ErrClipboardUnavailable
	}
	return nil
}

// Paste reads the current clipboard contents.
func Paste() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", ErrClipboardUnavailable
	}
	return text, nil
}
