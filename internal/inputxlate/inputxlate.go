// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// Package inputxlate implements the Input Translator of spec §4.4:
// mapping abstract key/mouse events into the byte sequences a VT child
// expects. It is grounded on the teacher's tui/pty_app.go key-to-bytes
// switch (the same tcell.Key constants, the same CSI-cursor-sequence
// table) and on original_source/src/input/mod.rs for the exact modifier
// and application-cursor-keys (SS3) semantics the Rust original used,
// translated into idiomatic Go rather than transliterated.
package inputxlate

import (
	"github.com/gdamore/tcell/v2"
)

// Modifiers mirrors tcell.ModMask but is kept as our own type so this
// package's public contract doesn't leak a third-party type directly
// into callers that only care about Shift/Ctrl/Alt.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
}

// FromTcell converts a tcell.ModMask into our Modifiers.
func FromTcell(m tcell.ModMask) Modifiers {
	return Modifiers{
		Shift: m&tcell.ModShift != 0,
		Ctrl:  m&tcell.ModCtrl != 0,
		Alt:   m&tcell.ModAlt != 0,
	}
}

// csiModifier encodes the CSI modifier parameter used for Shift/Alt/Ctrl
// combinations on non-printable keys (e.g. "CSI 1;2 A" for Shift+Up).
// 1 means "no modifier"; the VT convention adds Shift=+1, Alt=+2, Ctrl=+4.
func csiModifier(m Modifiers) int {
	n := 1
	if m.Shift {
		n += 1
	}
	if m.Alt {
		n += 2
	}
	if m.Ctrl {
		n += 4
	}
	return n
}

// Translate maps a key event to the bytes to write to a VT child.
// appCursorKeys reflects the VT Screen's DECCKM state (see vt.Screen.
// ApplicationCursorKeys), which switches arrow/Home/End to SS3 sequences.
func Translate(key tcell.Key, r rune, mods Modifiers, appCursorKeys bool) []byte {
	switch key {
	case tcell.KeyEnter:
		return []byte{'\r'}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return []byte{0x7f}
	case tcell.KeyTab:
		return []byte{'\t'}
	case tcell.KeyEsc:
		return []byte{0x1b}

	case tcell.KeyUp:
		return arrowOrCSI('A', mods, appCursorKeys)
	case tcell.KeyDown:
		return arrowOrCSI('B', mods, appCursorKeys)
	case tcell.KeyRight:
		return arrowOrCSI('C', mods, appCursorKeys)
	case tcell.KeyLeft:
		return arrowOrCSI('D', mods, appCursorKeys)

	case tcell.KeyHome:
		return arrowOrCSI('H', mods, appCursorKeys)
	case tcell.KeyEnd:
		return arrowOrCSI('F', mods, appCursorKeys)

	case tcell.KeyPgUp:
		return tildeSeq(5, mods)
	case tcell.KeyPgDn:
		return tildeSeq(6, mods)
	case tcell.KeyInsert:
		return tildeSeq(2, mods)
	case tcell.KeyDelete:
		return tildeSeq(3, mods)

	case tcell.KeyF1:
		return functionKey(1, mods)
	case tcell.KeyF2:
		return functionKey(2, mods)
	case tcell.KeyF3:
		return functionKey(3, mods)
	case tcell.KeyF4:
		return functionKey(4, mods)
	case tcell.KeyF5:
		return functionKey(5, mods)
	case tcell.KeyF6:
		return functionKey(6, mods)
	case tcell.KeyF7:
		return functionKey(7, mods)
	case tcell.KeyF8:
		return functionKey(8, mods)
	case tcell.KeyF9:
		return functionKey(9, mods)
	case tcell.KeyF10:
		return functionKey(10, mods)
	case tcell.KeyF11:
		return functionKey(11, mods)
	case tcell.KeyF12:
		return functionKey(12, mods)
	}

	if key == tcell.KeyRune {
		return translateRune(r, mods)
	}

	// Ctrl+letter arrives as a dedicated tcell.Key (KeyCtrlA..KeyCtrlZ);
	// tcell already encodes it as the control byte itself.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return []byte{byte(key)}
	}

	return nil
}

func translateRune(r rune, mods Modifiers) []byte {
	if mods.Ctrl {
		if b, ok := ctrlByte(r); ok {
			return []byte{b}
		}
	}
	if mods.Alt {
		return append([]byte{0x1b}, []byte(string(r))...)
	}
	return []byte(string(r))
}

// ctrlByte implements "Ctrl+letter: control byte (A -> 0x01, etc.)".
func ctrlByte(r rune) (byte, bool) {
	upper := r
	if upper >= 'a' && upper <= 'z' {
		upper -= 'a' - 'A'
	}
	if upper >= 'A' && upper <= 'Z' {
		return byte(upper - 'A' + 1), true
	}
	switch r {
	case '[':
		return 0x1b, true
	case '\\':
		return 0x1c, true
	case ']':
		return 0x1d, true
	}
	return 0, false
}

// arrowOrCSI produces either an SS3 sequence (application cursor keys
// mode, no modifiers) or a CSI cursor sequence, adding the modifier
// parameter when any modifier is held.
func arrowOrCSI(final byte, mods Modifiers, appCursorKeys bool) []byte {
	if appCursorKeys && mods == (Modifiers{}) {
		return []byte{0x1b, 'O', final}
	}
	m := csiModifier(mods)
	if m == 1 {
		return []byte{0x1b, '[', final}
	}
	return []byte("\x1b[1;" + itoa(m) + string(final))
}

// tildeSeq produces "CSI n~" or "CSI n;m~" for Insert/Delete/PgUp/PgDn.
func tildeSeq(n int, mods Modifiers) []byte {
	m := csiModifier(mods)
	if m == 1 {
		return []byte("\x1b[" + itoa(n) + "~")
	}
	return []byte("\x1b[" + itoa(n) + ";" + itoa(m) + "~")
}

// functionKey maps F1-F4 to SS3 (or CSI with modifier) and F5-F12 to
// the conventional CSI n~ table, per the VT220/xterm convention.
var fnTilde = map[int]int{5: 15, 6: 17, 7: 18, 8: 19, 9: 20, 10: 21, 11: 23, 12: 24}

func functionKey(n int, mods Modifiers) []byte {
	if n >= 1 && n <= 4 {
		final := byte('P' + (n - 1))
		if mods == (Modifiers{}) {
			return []byte{0x1b, 'O', final}
		}
		m := csiModifier(mods)
		return []byte("\x1b[1;" + itoa(m) + string(final))
	}
	code := fnTilde[n]
	return tildeSeq(code, mods)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
