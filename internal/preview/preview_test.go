package preview

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	out, err := Render("README.md", []byte("# Title\n\nhello\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "hello") {
		t.Fatalf("expected rendered markdown to contain body text, got %q", out)
	}
}

func TestRenderSourceFile(t *testing.T) {
	out, err := Render("main.go", []byte("package main\n\nfunc main() {}\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "func") {
		t.Fatalf("expected highlighted output to still contain source text, got %q", out)
	}
}

func TestDetectLanguageFallsBackToExtension(t *testing.T) {
	lang := detectLanguage("script.py", []byte("print(1)"))
	if lang == "" {
		t.Fatalf("expected non-empty language")
	}
}
