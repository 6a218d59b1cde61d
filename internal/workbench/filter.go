// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
package workbench

import "github.com/eqms/claude-workbench/internal/focusrouter"

// filterForAssistant applies the send-to-assistant filter before a
// selection-send write, per spec §4.7. Raw clipboard copies must never
// call this.
func filterForAssistant(text string) string {
	return focusrouter.FilterForAssistant(text).Text
}
