package focusrouter

import (
	"testing"

	"github.com/eqms/claude-workbench/internal/paneid"
	"github.com/eqms/claude-workbench/internal/vt"
)

func TestEnterSeedsAtBottomRow(t *testing.T) {
	c := NewSelectionController()
	c.Enter(paneid.ShellTerm, 23)
	if !c.Active() {
		t.Fatalf("expected active selection")
	}
	sel := c.Selection()
	if sel.Anchor.Row != 23 || sel.Active.Row != 23 {
		t.Fatalf("expected seed at row 23, got %+v", sel)
	}
}

func TestMoveByAdjustsActiveEndpoint(t *testing.T) {
	c := NewSelectionController()
	c.Enter(paneid.ShellTerm, 10)
	c.MoveBy(-1)
	if c.Selection().Active.Row != 9 {
		t.Fatalf("expected row 9, got %d", c.Selection().Active.Row)
	}
	if c.Selection().Anchor.Row != 10 {
		t.Fatalf("anchor should not move")
	}
}

func TestCancelClearsSelection(t *testing.T) {
	c := NewSelectionController()
	c.Enter(paneid.ShellTerm, 5)
	c.Cancel()
	if c.Active() {
		t.Fatalf("expected inactive after cancel")
	}
}

func TestExtractEndsSelectionMode(t *testing.T) {
	s := vt.NewScreen(24, 80, 100)
	s.Feed([]byte("hello"))
	c := NewSelectionController()
	c.Enter(paneid.ShellTerm, 0)
	c.MoveBy(0)
	text := c.Extract(s)
	if c.Active() {
		t.Fatalf("expected selection mode ended after extract")
	}
	if text == "" {
		t.Fatalf("expected non-empty extraction")
	}
}
