package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/eqms/claude-workbench/internal/paneid"
)

func TestAppendAndRecent(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.Append(ctx, paneid.ShellTerm, "ls -la"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append(ctx, paneid.ShellTerm, "git status"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, err := s.Recent(ctx, paneid.ShellTerm, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Text != "git status" {
		t.Fatalf("expected most recent first, got %q", entries[0].Text)
	}
}

func TestAppendEmptyIsNoOp(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.Append(context.Background(), paneid.ShellTerm, ""); err != nil {
		t.Fatalf("Append: %v", err)
	}
	entries, _ := s.Recent(context.Background(), paneid.ShellTerm, 10)
	if len(entries) != 0 {
		t.Fatalf("expected no entries for empty text, got %d", len(entries))
	}
}
