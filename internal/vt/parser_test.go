package vt

import "testing"

func TestCursorPositioning(t *testing.T) {
	s := NewScreen(10, 20, 10)
	s.Feed([]byte("\x1b[5;10H"))
	row, col, _ := s.Cursor()
	if row != 4 || col != 9 {
		t.Fatalf("expected (4,9), got (%d,%d)", row, col)
	}
}

func TestEraseInLine(t *testing.T) {
	s := NewScreen(3, 10, 10)
	s.Feed([]byte("abcdefghij\r\x1b[3C\x1b[K"))
	got := rowText(s.grid.Row(0), 0, 10)
	if got != "abc       " {
		t.Fatalf("expected trailing erase, got %q", got)
	}
}

func TestSGRColorsAndReset(t *testing.T) {
	s := NewScreen(3, 10, 10)
	s.Feed([]byte("\x1b[1;31mred\x1b[0m"))
	c := s.grid.At(0, 0)
	if c.Attr&AttrBold == 0 {
		t.Fatalf("expected bold attribute")
	}
	if c.FG.Mode != ColorStandard || c.FG.Value != 1 {
		t.Fatalf("expected red foreground, got %+v", c.FG)
	}
	if s.currentAttr != 0 || s.currentFG != DefaultColor {
		t.Fatalf("expected SGR 0 to reset attributes and colors, got attr=%v fg=%+v", s.currentAttr, s.currentFG)
	}
}

func TestAltScreenRoundTrip(t *testing.T) {
	s := NewScreen(3, 10, 10)
	s.Feed([]byte("main screen"))
	s.Feed([]byte("\x1b[?1049h"))
	s.Feed([]byte("alt screen"))
	if got := rowText(s.grid.Row(0), 0, 10); got != "alt screen" {
		t.Fatalf("expected alt screen content, got %q", got)
	}
	s.Feed([]byte("\x1b[?1049l"))
	if got := rowText(s.grid.Row(0), 0, 10); got != "main scree" {
		t.Fatalf("expected main screen restored, got %q", got)
	}
}

func TestWideRuneOccupiesTwoCells(t *testing.T) {
	s := NewScreen(2, 10, 10)
	s.Feed([]byte("A\xe4\xbd\xa0B")) // A + CJK wide char (你) + B
	c1 := s.grid.At(0, 1)
	c2 := s.grid.At(0, 2)
	if !c2.Continuation {
		t.Fatalf("expected continuation cell after wide rune")
	}
	if c1.Rune == 0 {
		t.Fatalf("expected wide rune stored at leading cell")
	}
}

func TestApplicationCursorKeysMode(t *testing.T) {
	s := NewScreen(3, 10, 10)
	if s.ApplicationCursorKeys() {
		t.Fatalf("expected DECCKM off by default")
	}
	s.Feed([]byte("\x1b[?1h"))
	if !s.ApplicationCursorKeys() {
		t.Fatalf("expected DECCKM on after CSI ?1h")
	}
}

func TestScrollingRegion(t *testing.T) {
	s := NewScreen(5, 10, 100)
	s.Feed([]byte("\x1b[2;4r")) // margins rows 2..4 (1-based)
	for i := 0; i < 6; i++ {
		s.Feed([]byte("x\r\n"))
	}
	// content scrolled within the margin should not push to scrollback
	// (only full-screen scrolls do), so scrollback should stay small.
	if s.ScrollbackLen() > 6 {
		t.Fatalf("scrolling-region scroll should not flood scrollback, got %d", s.ScrollbackLen())
	}
}
