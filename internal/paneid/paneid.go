// Package paneid defines the enumerated pane identity shared by the
// layout engine, focus router, and workbench state, kept as its own
// package so internal/vt and internal/paneterm don't need to import the
// (much heavier) workbench package just to talk about "which pane".
package paneid

// PaneId identifies one region of the composite UI.
type PaneId int

const (
	FileBrowser PaneId = iota
	Preview
	AssistantTerm
	GitTerm
	ShellTerm
	Footer
)

func (p PaneId) String() string {
	switch p {
	case FileBrowser:
		return "file-browser"
	case Preview:
		return "preview"
	case AssistantTerm:
		return "assistant"
	case GitTerm:
		return "git"
	case ShellTerm:
		return "shell"
	case Footer:
		return "footer"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether this pane binds to a Pane Terminal.
func (p PaneId) IsTerminal() bool {
	return p == AssistantTerm || p == GitTerm || p == ShellTerm
}

// ShellLike reports whether the pane hosts a shell-like child that
// accepts a plain `cd` command instead of needing a restart to change
// directory (§4.8: the assistant and general shell are shell-like, the
// Git TUI is not).
func (p PaneId) ShellLike() bool {
	return p == AssistantTerm || p == ShellTerm
}

// Terminals lists the three PaneIds that bind to a Pane Terminal, in a
// stable order used for iteration (e.g. resize-on-layout-change).
var Terminals = [3]PaneId{AssistantTerm, GitTerm, ShellTerm}
