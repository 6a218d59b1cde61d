package inputxlate

import (
	"bytes"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestEnterIsCR(t *testing.T) {
	got := Translate(tcell.KeyEnter, 0, Modifiers{}, false)
	if !bytes.Equal(got, []byte{'\r'}) {
		t.Fatalf("expected CR, got %v", got)
	}
}

func TestBackspaceIsDel(t *testing.T) {
	got := Translate(tcell.KeyBackspace2, 0, Modifiers{}, false)
	if !bytes.Equal(got, []byte{0x7f}) {
		t.Fatalf("expected 0x7f, got %v", got)
	}
}

func TestArrowsPlainCSI(t *testing.T) {
	got := Translate(tcell.KeyUp, 0, Modifiers{}, false)
	if !bytes.Equal(got, []byte("\x1b[A")) {
		t.Fatalf("expected CSI A, got %q", got)
	}
}

func TestArrowsApplicationMode(t *testing.T) {
	got := Translate(tcell.KeyUp, 0, Modifiers{}, true)
	if !bytes.Equal(got, []byte("\x1bOA")) {
		t.Fatalf("expected SS3 A, got %q", got)
	}
}

func TestShiftArrowUsesModifierParam(t *testing.T) {
	got := Translate(tcell.KeyUp, 0, Modifiers{Shift: true}, true)
	if !bytes.Equal(got, []byte("\x1b[1;2A")) {
		t.Fatalf("expected CSI 1;2 A, got %q", got)
	}
}

func TestCtrlLetter(t *testing.T) {
	got := Translate(tcell.KeyRune, 'a', Modifiers{Ctrl: true}, false)
	if !bytes.Equal(got, []byte{0x01}) {
		t.Fatalf("expected 0x01, got %v", got)
	}
}

func TestAltPrefixesEsc(t *testing.T) {
	got := Translate(tcell.KeyRune, 'x', Modifiers{Alt: true}, false)
	if !bytes.Equal(got, []byte{0x1b, 'x'}) {
		t.Fatalf("expected ESC x, got %v", got)
	}
}

func TestPrintableRunePassthrough(t *testing.T) {
	got := Translate(tcell.KeyRune, 'A', Modifiers{}, false)
	if !bytes.Equal(got, []byte("A")) {
		t.Fatalf("expected A, got %q", got)
	}
}

func TestFunctionKeyF1SS3(t *testing.T) {
	got := Translate(tcell.KeyF1, 0, Modifiers{}, false)
	if !bytes.Equal(got, []byte("\x1bOP")) {
		t.Fatalf("expected SS3 P, got %q", got)
	}
}

func TestFunctionKeyF5Tilde(t *testing.T) {
	got := Translate(tcell.KeyF5, 0, Modifiers{}, false)
	if !bytes.Equal(got, []byte("\x1b[15~")) {
		t.Fatalf("expected CSI 15~, got %q", got)
	}
}

func TestPageUpTilde(t *testing.T) {
	got := Translate(tcell.KeyPgUp, 0, Modifiers{}, false)
	if !bytes.Equal(got, []byte("\x1b[5~")) {
		t.Fatalf("expected CSI 5~, got %q", got)
	}
}
