package vt

import (
	"strings"
	"sync"
)

// Screen is the VT Screen of spec §3/§4.2: it owns the Grid, cursor,
// saved-cursor, current SGR attributes, alt-screen flag, scrollback ring,
// and external ScrollOffset. It is the one object shared between a Pane
// Terminal's reader goroutine and the main loop, so every exported method
// takes the screen's mutex for the minimum span needed (a feed, or a
// snapshot copy) — never across a render or a PTY read.
type Screen struct {
	mu sync.Mutex

	rows, cols int
	grid       *Grid

	altScreen bool
	altGrid   *Grid
	savedMain struct {
		row, col int
		valid    bool
	}

	cursorRow, cursorCol int
	cursorVisible        bool
	wrapPending          bool

	savedCursorRow, savedCursorCol int
	savedFG, savedBG               Color
	savedAttr                      Attribute

	currentFG, currentBG Color
	currentAttr          Attribute

	marginTop, marginBottom int // inclusive, 0-based

	appCursorKeys bool // DECCKM, consumed by the Input Translator
	title         string
	onTitle       func(string)

	scrollback   *Scrollback
	scrollOffset int

	parser *Parser
}

// NewScreen constructs a Screen with the given size and scrollback
// capacity. rows and cols must be positive; callers should clamp before
// calling (the Layout Engine guarantees this for pane-bound screens).
func NewScreen(rows, cols, scrollbackCap int) *Screen {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	s := &Screen{
		rows: rows, cols: cols,
		grid:          NewGrid(rows, cols),
		cursorVisible: true,
		marginTop:     0, marginBottom: rows - 1,
		currentFG: DefaultColor, currentBG: DefaultColor,
		scrollback: NewScrollback(scrollbackCap),
	}
	s.parser = NewParser(s)
	return s
}

// OnTitleChange registers a callback invoked (synchronously, under the
// screen's lock) when an OSC 0/2 title-change sequence is parsed.
func (s *Screen) OnTitleChange(fn func(string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTitle = fn
}

func (s *Screen) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

// Feed parses data as a VT byte stream and mutates state. Safe to call
// with arbitrary splits across escape sequences: the Parser carries its
// state machine between calls.
func (s *Screen) Feed(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parser.Parse(data)
}

// Cursor reports the cursor's current position and visibility.
func (s *Screen) Cursor() (row, col int, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursorRow, s.cursorCol, s.cursorVisible
}

// ApplicationCursorKeys reports whether DECCKM (application cursor key
// mode) is active, consumed by the Input Translator (spec §4.4).
func (s *Screen) ApplicationCursorKeys() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appCursorKeys
}

// Size returns the current (rows, cols).
func (s *Screen) Size() (rows, cols int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows, s.cols
}

// ScrollbackLen returns the number of rows currently retained in the
// scrollback ring.
func (s *Screen) ScrollbackLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scrollback.Len()
}

// Resize reshapes the grid to (rows, cols), preserving content as far as
// possible: widening pads with empty cells, shrinking pushes the rows
// that no longer fit into scrollback. resize(r,c) twice in a row with
// the same size is a no-op (spec "resize idempotence").
func (s *Screen) Resize(rows, cols int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	if rows == s.rows && cols == s.cols {
		return
	}

	source := make([][]Cell, s.rows)
	for i := 0; i < s.rows; i++ {
		source[i] = s.grid.Row(i)
	}
	newGrid, overflow := Reflow(source, rows, cols)
	s.scrollback.Append(overflow...)

	s.grid = newGrid
	s.rows, s.cols = rows, cols
	if s.cursorRow >= rows {
		s.cursorRow = rows - 1
	}
	if s.cursorCol >= cols {
		s.cursorCol = cols - 1
	}
	if s.marginBottom >= rows || s.marginBottom == 0 {
		s.marginBottom = rows - 1
	}
	if s.marginTop >= rows {
		s.marginTop = 0
	}
}

// VisibleRows yields exactly `height` rows: with offset 0, the live grid;
// with offset k, the k topmost rows from scrollback followed by enough
// live rows to fill height.
func (s *Screen) VisibleRows(offset, height int) [][]Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleRowsLocked(offset, height)
}

func (s *Screen) visibleRowsLocked(offset, height int) [][]Cell {
	if height <= 0 {
		return nil
	}
	out := make([][]Cell, 0, height)
	sbLen := s.scrollback.Len()
	if offset > sbLen {
		offset = sbLen
	}
	if offset < 0 {
		offset = 0
	}

	// The `offset` topmost rows come from scrollback, oldest of the
	// retained window first: row (sbLen-offset) .. sbLen-1.
	for i := 0; i < offset && len(out) < height; i++ {
		out = append(out, s.scrollback.Row(sbLen-offset+i))
	}
	for row := 0; len(out) < height && row < s.rows; row++ {
		out = append(out, s.grid.Row(row))
	}
	for len(out) < height {
		out = append(out, make([]Cell, s.cols))
	}
	return out
}

// ResetScroll sets the external ScrollOffset back to 0 ("live").
func (s *Screen) ResetScroll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollOffset = 0
}

// Scroll adjusts the ScrollOffset by delta, clamped to [0, scrollback.Len()].
func (s *Screen) Scroll(delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollOffset += delta
	if s.scrollOffset < 0 {
		s.scrollOffset = 0
	}
	if max := s.scrollback.Len(); s.scrollOffset > max {
		s.scrollOffset = max
	}
	return s.scrollOffset
}

// ScrollOffset reports the current offset without mutating it.
func (s *Screen) ScrollOffset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scrollOffset
}

// ExtractRange renders a Selection to plain text. Absolute-coordinate
// rows (Point.Row <= -1) are read from scrollback; row 0 and up are read
// from the live grid. Unset cells serialize as a single space, never an
// empty string (spec "extraction restores spaces").
func (s *Screen) ExtractRange(sel Selection) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sel.Kind == SelectionNone {
		return ""
	}
	start, end := sel.Normalize()

	rowAt := func(r int) []Cell {
		if r < 0 {
			sbLen := s.scrollback.Len()
			idx := sbLen + r // r is negative
			if idx < 0 || idx >= sbLen {
				return make([]Cell, s.cols)
			}
			return s.scrollback.Row(idx)
		}
		if r >= s.rows {
			return make([]Cell, s.cols)
		}
		return s.grid.Row(r)
	}

	var b strings.Builder
	for row := start.Row; row <= end.Row; row++ {
		cells := rowAt(row)
		colStart, colEnd := 0, len(cells)
		if sel.Kind == SelectionCharRange {
			if row == start.Row {
				colStart = start.Col
			}
			if row == end.Row {
				colEnd = end.Col + 1
				if colEnd > len(cells) {
					colEnd = len(cells)
				}
			}
		}
		line := rowText(cells, colStart, colEnd)
		if sel.Kind == SelectionCharRange {
			line = strings.TrimRight(line, " ")
		} else {
			line = strings.TrimRight(line, " ")
		}
		b.WriteString(line)
		if row != end.Row {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func rowText(cells []Cell, from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(cells) {
		to = len(cells)
	}
	var b strings.Builder
	for i := from; i < to; i++ {
		if cells[i].Continuation {
			continue
		}
		b.WriteString(cells[i].Text())
	}
	return b.String()
}

// ExtractLastNLines extracts the last n lines of the live grid,
// ignoring the scroll offset.
func (s *Screen) ExtractLastNLines(n int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := s.rows - n
	if start < 0 {
		start = 0
	}
	var lines []string
	for row := start; row < s.rows; row++ {
		lines = append(lines, strings.TrimRight(rowText(s.grid.Row(row), 0, s.cols), " "))
	}
	return strings.Join(lines, "\n")
}
