// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// Package preview is the syntax-highlighted preview / Markdown-to-HTML
// external collaborator SPEC_FULL.md carves out of the workbench core.
// Highlighting uses github.com/alecthomas/chroma/v2 with language
// detection from github.com/go-enry/go-enry/v2, and Markdown rendering
// uses github.com/charmbracelet/glamour — the same stack the pack's
// hylarucoder-codectl example wires up for its own preview surface.
package preview

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
	"github.com/go-enry/go-enry/v2"
)

// Render produces the text to display for one file's contents: rendered
// Markdown for .md files, and ANSI syntax highlighting for everything
// else (chroma's fallback lexer when no language is detected). The raw
// content is returned only if tokenising or formatting fails.
func Render(path string, content []byte) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".md") {
		return renderMarkdown(content)
	}
	return highlight(path, content)
}

func renderMarkdown(content []byte) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return "", err
	}
	return r.Render(string(content))
}

func highlight(path string, content []byte) (string, error) {
	lang := detectLanguage(path, content)

	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.TTY256

	iterator, err := lexer.Tokenise(nil, string(content))
	if err != nil {
		return string(content), nil
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return string(content), nil
	}
	return buf.String(), nil
}

// detectLanguage prefers go-enry's filename+content classifier and
// falls back to the file extension chroma itself would infer.
func detectLanguage(path string, content []byte) string {
	if lang := enry.GetLanguage(filepath.Base(path), content); lang != "" {
		return strings.ToLower(lang)
	}
	return strings.TrimPrefix(filepath.Ext(path), ".")
}
