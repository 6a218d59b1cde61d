package dirsync

import (
	"testing"

	"github.com/eqms/claude-workbench/internal/paneid"
)

func TestQuoteSimplePath(t *testing.T) {
	if got := Quote("/tmp/a b"); got != "'/tmp/a b'" {
		t.Fatalf("got %q", got)
	}
}

func TestQuoteEmbeddedSingleQuote(t *testing.T) {
	got := Quote("it's")
	want := `'it'\''s'`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestCdCommandRoundTrip(t *testing.T) {
	got := CdCommand(`/tmp/a "b" $x \y`)
	if got[:3] != "cd " || got[len(got)-1] != '\r' {
		t.Fatalf("malformed cd command: %q", got)
	}
}

func TestObserveEmitsCdForShellLike(t *testing.T) {
	s := New(map[paneid.PaneId]string{
		paneid.AssistantTerm: "/tmp",
		paneid.ShellTerm:     "/tmp",
		paneid.GitTerm:       "/tmp",
	})
	actions := s.Observe("/tmp/a b")
	if len(actions) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(actions))
	}
	for _, a := range actions {
		switch a.Pane {
		case paneid.AssistantTerm, paneid.ShellTerm:
			if a.CdBytes == nil {
				t.Fatalf("expected cd bytes for shell-like pane %v", a.Pane)
			}
		case paneid.GitTerm:
			if a.RestartCwd == "" {
				t.Fatalf("expected restart request for git pane")
			}
		}
	}
}

func TestObserveNoOpWhenUnchanged(t *testing.T) {
	s := New(map[paneid.PaneId]string{paneid.ShellTerm: "/tmp"})
	if got := s.Observe("/tmp"); got != nil {
		t.Fatalf("expected no actions, got %+v", got)
	}
}

func TestS4CwdSyncLiteral(t *testing.T) {
	s := New(map[paneid.PaneId]string{paneid.ShellTerm: "/tmp"})
	actions := s.Observe("/tmp/a b")
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(actions))
	}
	if string(actions[0].CdBytes) != `cd '/tmp/a b'`+"\r" {
		t.Fatalf("unexpected bytes: %q", actions[0].CdBytes)
	}
}
