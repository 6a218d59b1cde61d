package workbench

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/eqms/claude-workbench/internal/wbconfig"
)

func newTestWorkbench(t *testing.T) (*Workbench, *fakeDriver) {
	t.Helper()
	dir := t.TempDir()
	loader, err := wbconfig.Load(filepath.Join(dir, "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("wbconfig.Load: %v", err)
	}
	cfg := loader.Current()
	cfg.Terminal.ShellPath = "/bin/sh"
	driver := newFakeDriver(24, 80)
	wb, err := New(driver, loader, dir, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return wb, driver
}

func TestNewSpawnsThreeTerminalsAndEntersRawMode(t *testing.T) {
	wb, driver := newTestWorkbench(t)
	defer wb.Close()

	if len(wb.terminals) == 0 {
		t.Fatalf("expected at least one pane terminal spawned")
	}
	if driver.fini {
		t.Fatalf("driver should not be finalized before Close")
	}
}

func TestCloseRestoresDriverAndKillsChildren(t *testing.T) {
	wb, driver := newTestWorkbench(t)
	wb.Close()
	if !driver.fini {
		t.Fatalf("expected driver.Fini called on Close")
	}
}

func TestQuitStopsLoop(t *testing.T) {
	wb, driver := newTestWorkbench(t)
	defer wb.Close()

	driver.Inject(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModNone))
	if err := wb.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !wb.quit {
		t.Fatalf("expected quit flag set")
	}
}
