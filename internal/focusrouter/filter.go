// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// The send-to-assistant filter of spec §4.7, ported line-for-line from
// original_source/src/filter.rs's regex tables (prompt/error/dir-listing
// patterns) since those are exact behavioral constants the spec leaves
// implicit ("a small set of shell-prompt patterns"). Language detection
// for the fence tag delegates to go-enry rather than the original's
// hand-rolled per-language regex tables, since go-enry is already the
// pack's answer to "detect a programming language from content" (see
// its use in internal/preview).
package focusrouter

import (
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

var promptPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[a-zA-Z0-9_-]+@[a-zA-Z0-9._-]+:[^$#]*[$#]\s*$`),
	regexp.MustCompile(`^[$>%]\s*$`),
	regexp.MustCompile(`^>>>\s*$`),
	regexp.MustCompile(`^[➜❯→]\s+`),
	regexp.MustCompile(`^[a-zA-Z0-9_-]+@[a-zA-Z0-9._-]+\s+[~\w/]+\s*[$#>]\s*$`),
	regexp.MustCompile(`^\[[^\]]*\][a-zA-Z0-9_-]+@[a-zA-Z0-9._-]+`),
	regexp.MustCompile(`^\[\d{2}:\d{2}(:\d{2})?\]\s*[$#>]`),
	regexp.MustCompile(`^[~\w/\-.]+\s*[$#>%]\s*$`),
}

var errorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`Traceback \(most recent call last\)`),
	regexp.MustCompile(`^\s+File "[^"]+", line \d+`),
	regexp.MustCompile(`^\s+raise `),
	regexp.MustCompile(`^[A-Z][a-zA-Z]*Error:`),
	regexp.MustCompile(`^[A-Z][a-zA-Z]*Exception:`),
	regexp.MustCompile(`odoo\.exceptions\.`),
	regexp.MustCompile(`psycopg2\.`),
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2},\d+.*ERROR`),
	regexp.MustCompile(`^error\[E\d+\]:`),
	regexp.MustCompile(`^\s+-->\s+`),
	regexp.MustCompile(`^\s+at\s+`),
	regexp.MustCompile(`^(TypeError|ReferenceError|SyntaxError):`),
	regexp.MustCompile(`(?i)^error:`),
	regexp.MustCompile(`(?i)^fatal:`),
	regexp.MustCompile(`(?i)^panic:`),
}

var dirListingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[d\-][rwx\-]{9}`),
	regexp.MustCompile(`^total\s+\d+`),
}

func isPromptLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	for _, p := range promptPatterns {
		if p.MatchString(trimmed) {
			return true
		}
	}
	return false
}

func isErrorLine(line string) bool {
	for _, p := range errorPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

func isDirListingLine(line string) bool {
	for _, p := range dirListingPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// FilterResult is the outcome of filtering extracted terminal text
// before it is written into the assistant pane's input.
type FilterResult struct {
	Text          string
	ContainsError bool
	SyntaxHint    string
}

// FilterForAssistant applies spec §4.7's send-to-assistant filter:
// prompt stripping, blank-line collapsing, directory-listing removal,
// and a language-fence heuristic. Raw clipboard copies must NOT call
// this function.
func FilterForAssistant(text string) FilterResult {
	lines := strings.Split(text, "\n")

	var kept []string
	containsError := false
	consecutiveBlanks := 0
	inTraceback := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if isErrorLine(line) {
			containsError = true
			inTraceback = true
		}

		if inTraceback && trimmed == "" && consecutiveBlanks > 0 {
			inTraceback = false
		}

		if !inTraceback && isPromptLine(line) {
			continue
		}
		if !inTraceback && isDirListingLine(line) {
			continue
		}

		if trimmed == "" {
			consecutiveBlanks++
			if consecutiveBlanks > 2 {
				continue
			}
		} else {
			consecutiveBlanks = 0
		}

		kept = append(kept, line)
	}

	for len(kept) > 0 && strings.TrimSpace(kept[len(kept)-1]) == "" {
		kept = kept[:len(kept)-1]
	}

	joined := strings.Join(kept, "\n")
	hint := detectLanguageFence(kept)

	out := joined
	if hint != "" {
		out = "```" + hint + "\n" + joined + "\n```"
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}

	return FilterResult{Text: out, ContainsError: containsError, SyntaxHint: hint}
}

// detectLanguageFence implements the "majority of non-empty lines look
// like <language>" heuristic using go-enry's content classifier, falling
// back to no fence when confidence is too low to be useful in a short
// terminal snippet.
func detectLanguageFence(lines []string) string {
	var nonEmpty []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			nonEmpty = append(nonEmpty, l)
		}
	}
	if len(nonEmpty) < 2 {
		return ""
	}
	content := []byte(strings.Join(nonEmpty, "\n"))
	langs := enry.GetLanguagesByClassifier("", content, nil)
	if len(langs) == 0 {
		return ""
	}
	switch strings.ToLower(langs[0]) {
	case "python":
		return "python"
	case "rust":
		return "rust"
	case "javascript", "typescript":
		return "javascript"
	case "shell", "bash":
		return "bash"
	case "xml", "html":
		return "xml"
	default:
		return ""
	}
}
