package focusrouter

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/eqms/claude-workbench/internal/paneid"
)

func TestQuitTakesPriority(t *testing.T) {
	r := New(DefaultConfig())
	ev := tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModNone)
	got := r.ClassifyKey(ev, paneid.ShellTerm)
	if got.Class != ClassQuit {
		t.Fatalf("expected quit, got %v", got.Class)
	}
}

func TestFocusSwitchNeverForwarded(t *testing.T) {
	r := New(DefaultConfig())
	ev := tcell.NewEventKey(tcell.KeyF3, 0, tcell.ModNone)
	got := r.ClassifyKey(ev, paneid.ShellTerm)
	if got.Class != ClassFocusSwitch || got.FocusTarget != paneid.AssistantTerm {
		t.Fatalf("expected focus switch to assistant, got %+v", got)
	}
}

func TestDialogConsumesEvent(t *testing.T) {
	r := New(DefaultConfig())
	r.SetDialogOpen(true)
	ev := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
	got := r.ClassifyKey(ev, paneid.ShellTerm)
	if got.Class != ClassDialog {
		t.Fatalf("expected dialog, got %v", got.Class)
	}
}

func TestSelectionEntryOnlyOnTerminal(t *testing.T) {
	r := New(DefaultConfig())
	ev := tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModNone)
	got := r.ClassifyKey(ev, paneid.ShellTerm)
	if got.Class != ClassSelectionEntry {
		t.Fatalf("expected selection entry, got %v", got.Class)
	}
	got2 := r.ClassifyKey(ev, paneid.FileBrowser)
	if got2.Class == ClassSelectionEntry {
		t.Fatalf("selection entry should not fire outside a terminal pane")
	}
}

func TestSelectionNavigationWhenActive(t *testing.T) {
	r := New(DefaultConfig())
	r.SetSelectionMode(true)
	ev := tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone)
	got := r.ClassifyKey(ev, paneid.ShellTerm)
	if got.Class != ClassSelectionNavigation || got.NavKey != NavDown {
		t.Fatalf("expected selection nav down, got %+v", got)
	}
}

func TestRawToChildForTerminalPane(t *testing.T) {
	r := New(DefaultConfig())
	ev := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
	got := r.ClassifyKey(ev, paneid.ShellTerm)
	if got.Class != ClassRawToChild {
		t.Fatalf("expected raw to child, got %v", got.Class)
	}
}

func TestDroppedForNonTerminalUnhandled(t *testing.T) {
	r := New(DefaultConfig())
	ev := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
	got := r.ClassifyKey(ev, paneid.Preview)
	if got.Class != ClassDropped {
		t.Fatalf("expected dropped, got %v", got.Class)
	}
}

func TestFocusEventPartitioningExhaustive(t *testing.T) {
	r := New(DefaultConfig())
	events := []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone),
	}
	seen := map[Classification]bool{}
	for _, ev := range events {
		got := r.ClassifyKey(ev, paneid.ShellTerm)
		seen[got.Class] = true
	}
	if len(seen) == 0 {
		t.Fatalf("expected at least one classification")
	}
}
