package browser

import (
	"os"
	"path/filepath"
	"testing"
)

func TestChdirListsAndSorts(t *testing.T) {
	dir := t.TempDir()
	os.Mkdir(filepath.Join(dir, "zzz"), 0o755)
	os.Mkdir(filepath.Join(dir, "aaa"), 0o755)
	os.WriteFile(filepath.Join(dir, "file.txt"), []byte("x"), 0o644)

	b, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	entries := b.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if !entries[0].IsDir || !entries[1].IsDir {
		t.Fatalf("expected dirs first, got %+v", entries)
	}
	if entries[0].Name != "aaa" || entries[1].Name != "zzz" {
		t.Fatalf("expected alphabetical dirs, got %+v", entries)
	}
}

func TestEnterAndUp(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "child")
	os.Mkdir(sub, 0o755)

	b, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := b.Enter("child"); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if b.Cwd() != sub {
		t.Fatalf("expected cwd %q, got %q", sub, b.Cwd())
	}
	if err := b.Up(); err != nil {
		t.Fatalf("Up: %v", err)
	}
	if b.Cwd() != dir {
		t.Fatalf("expected back at %q, got %q", dir, b.Cwd())
	}
}
