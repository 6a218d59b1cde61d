package paneterm

import (
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestNewSpawnsAndFeeds(t *testing.T) {
	pt, err := New("/bin/echo", []string{"hello"}, []string{"PATH=/bin:/usr/bin"}, "/tmp", 5, 20, 100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer pt.Close()

	waitFor(t, func() bool { return !pt.Alive() })
	if !pt.Terminated() {
		t.Fatalf("expected pane marked terminated after echo exits")
	}
}

func TestSpawnFailureBadCwd(t *testing.T) {
	_, err := New("/bin/echo", nil, nil, "/no/such/dir", 5, 20, 10)
	if err == nil {
		t.Fatalf("expected error for nonexistent cwd")
	}
}

func TestResizeNoOpSameSize(t *testing.T) {
	pt, err := New("/bin/cat", nil, []string{"PATH=/bin:/usr/bin"}, "/tmp", 10, 30, 100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer pt.Close()

	pt.Resize(10, 30)
	rows, cols := pt.Screen().Size()
	if rows != 10 || cols != 30 {
		t.Fatalf("expected size unchanged, got (%d,%d)", rows, cols)
	}

	pt.Resize(12, 40)
	rows, cols = pt.Screen().Size()
	if rows != 12 || cols != 40 {
		t.Fatalf("expected resized to (12,40), got (%d,%d)", rows, cols)
	}
}

func TestWriteInputAfterCloseReturnsError(t *testing.T) {
	pt, err := New("/bin/cat", nil, []string{"PATH=/bin:/usr/bin"}, "/tmp", 5, 20, 10)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pt.Close()
	waitFor(t, func() bool { return pt.Terminated() })

	if err := pt.WriteInput([]byte("x")); err == nil {
		t.Fatalf("expected write error after close")
	}
}
