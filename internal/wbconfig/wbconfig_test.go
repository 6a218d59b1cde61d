package wbconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	dir := t.TempDir()
	l, err := Load(filepath.Join(dir, "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg := l.Current()
	if cfg.Pty.CopyLinesCount != 50 {
		t.Fatalf("expected default copy_lines_count 50, got %d", cfg.Pty.CopyLinesCount)
	}
	if cfg.Pty.ScrollbackCapacity != 1000 {
		t.Fatalf("expected default scrollback_capacity 1000, got %d", cfg.Pty.ScrollbackCapacity)
	}
}

func TestLoadClampsPercentages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("layout:\n  file_browser_width_percent: 5\n  preview_width_percent: 99\n"), 0o644)

	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg := l.Current()
	if cfg.Layout.FileBrowserWidthPercent != 10 {
		t.Fatalf("expected clamp to 10, got %d", cfg.Layout.FileBrowserWidthPercent)
	}
	if cfg.Layout.PreviewWidthPercent != 90 {
		t.Fatalf("expected clamp to 90, got %d", cfg.Layout.PreviewWidthPercent)
	}
}

func TestLoadUnknownKeysIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("totally_unknown_section:\n  foo: bar\n"), 0o644)

	if _, err := Load(path); err != nil {
		t.Fatalf("expected unknown keys to be ignored, got error: %v", err)
	}
}

func TestStartupPrefixesUnmarshal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte(`assistant:
  startup_prefixes:
    - name: review
      prefix: "Review this: "
      description: "code review"
`), 0o644)

	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg := l.Current()
	if len(cfg.Assistant.StartupPrefixes) != 1 || cfg.Assistant.StartupPrefixes[0].Name != "review" {
		t.Fatalf("expected one startup prefix named review, got %+v", cfg.Assistant.StartupPrefixes)
	}
}
