package workbench

import (
	"testing"
	"time"

	"github.com/eqms/claude-workbench/internal/paneid"
)

func TestSetActiveEnforcesVisibleInvariant(t *testing.T) {
	f := NewFocusState()
	f.Visible[paneid.GitTerm] = false
	f.SetActive(paneid.GitTerm)
	if f.Active != paneid.GitTerm || !f.Visible[paneid.GitTerm] {
		t.Fatalf("expected active pane to be forced visible")
	}
}

func TestToggleVisibleFallsBackFocus(t *testing.T) {
	f := NewFocusState()
	f.SetActive(paneid.GitTerm)
	f.ToggleVisible(paneid.GitTerm)
	if f.Visible[paneid.GitTerm] {
		t.Fatalf("expected git hidden")
	}
	if f.Active == paneid.GitTerm {
		t.Fatalf("expected focus to move off hidden pane")
	}
}

func TestAuxHiddenTrueWhenOnlyAssistantVisible(t *testing.T) {
	f := NewFocusState()
	f.Visible[paneid.FileBrowser] = false
	f.Visible[paneid.Preview] = false
	f.Visible[paneid.GitTerm] = false
	f.Visible[paneid.ShellTerm] = false
	if !f.AuxHidden() {
		t.Fatalf("expected aux hidden")
	}
}

func TestFlashSweepExpiresAfterDeadline(t *testing.T) {
	var c FlashController
	now := time.Now()
	c.Show("hi", 10*time.Millisecond, now)
	if got := c.Sweep(now); got != "hi" {
		t.Fatalf("expected flash visible immediately, got %q", got)
	}
	if got := c.Sweep(now.Add(20 * time.Millisecond)); got != "" {
		t.Fatalf("expected flash expired, got %q", got)
	}
}
