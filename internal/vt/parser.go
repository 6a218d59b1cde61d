package vt

import (
	"bytes"
	"unicode/utf8"
)

// parserState is the byte-stream state machine, structurally grounded in
// the teacher's tui/parser.Parser (ground/escape/CSI/OSC states) and
// generalized with a charset state and a private-marker byte so CSI
// sequences like `\x1b[?1049h` parse correctly.
type parserState int

const (
	stGround parserState = iota
	stEscape
	stCSI
	stOSC
	stCharset
)

// Parser drives a Screen from a raw VT/ANSI byte stream. It must be
// resumable across arbitrary byte-slice splits, including mid-escape.
type Parser struct {
	s       *Screen
	state   parserState
	params  []int
	cur     int
	hasCur  bool
	private byte // '?' or 0
	osc     []byte
	escInter byte // intermediate byte after ESC, e.g. '(' for charset
}

// NewParser returns a Parser that mutates the given Screen. Screen.Feed
// is the only intended caller; Parser has no lock of its own, relying on
// the Screen's mutex already being held.
func NewParser(s *Screen) *Parser {
	return &Parser{s: s, params: make([]int, 0, 16), osc: make([]byte, 0, 128)}
}

// Parse consumes data, advancing the state machine. Must be called with
// the owning Screen's mutex held.
func (p *Parser) Parse(data []byte) {
	for i := 0; i < len(data); {
		b := data[i]
		size := 1

		switch p.state {
		case stGround:
			switch {
			case b == 0x1b:
				p.state = stEscape
			case b == '\n':
				p.s.lineFeed()
			case b == '\r':
				p.s.carriageReturn()
			case b == '\b':
				p.s.backspace()
			case b == '\t':
				p.s.tab()
			case b == 0x0c: // form feed, used as a "clear banner" startup byte
				p.s.clearScreenAndHome()
			case b == 0x07: // BEL, ignored (no bell device)
			case b < 0x20:
				// other C0 controls ignored
			default:
				var r rune
				r, size = utf8.DecodeRune(data[i:])
				p.s.placeRune(r)
			}
		case stEscape:
			switch {
			case b == '[':
				p.state = stCSI
				p.params = p.params[:0]
				p.cur, p.hasCur = 0, false
				p.private = 0
			case b == ']':
				p.state = stOSC
				p.osc = p.osc[:0]
			case b == '(' || b == ')':
				p.state = stCharset
			case b == '7': // DECSC
				p.s.saveCursor()
				p.state = stGround
			case b == '8': // DECRC
				p.s.restoreCursor()
				p.state = stGround
			case b == 'M': // RI
				p.s.reverseIndex()
				p.state = stGround
			case b == 'D': // IND
				p.s.lineFeed()
				p.state = stGround
			case b == 'c': // RIS
				p.s.fullReset()
				p.state = stGround
			case b == '=' || b == '>':
				p.state = stGround
			default:
				p.state = stGround
			}
		case stCSI:
			switch {
			case b >= '0' && b <= '9':
				p.cur = p.cur*10 + int(b-'0')
				p.hasCur = true
			case b == ';':
				p.params = append(p.params, p.cur)
				p.cur, p.hasCur = 0, false
			case b == '?' || b == '>' || b == '=':
				p.private = b
			case b >= 0x40 && b <= 0x7e:
				p.params = append(p.params, p.cur)
				p.s.processCSI(b, p.params, p.private)
				p.state = stGround
			default:
				// ignore intermediates we don't track
			}
		case stOSC:
			if b == 0x07 {
				p.handleOSC()
				p.state = stGround
			} else if b == 0x1b && i+1 < len(data) && data[i+1] == '\\' {
				p.handleOSC()
				p.state = stGround
				size = 2
			} else {
				p.osc = append(p.osc, b)
			}
		case stCharset:
			p.state = stGround
		}
		i += size
	}
}

func (p *Parser) handleOSC() {
	parts := bytes.SplitN(p.osc, []byte{';'}, 2)
	if len(parts) != 2 {
		return
	}
	switch string(parts[0]) {
	case "0", "2":
		p.s.setTitle(string(parts[1]))
	}
}

// --- Screen-side mutation helpers (called only while s.mu is held) ---

func (s *Screen) placeRune(r rune) {
	w := RuneWidth(r)
	if w == 0 {
		// combining mark: dropped; it is not composed into the previous cell
		if s.cursorCol > 0 {
			prev := s.grid.At(s.cursorRow, s.cursorCol-1)
			_ = prev // intentionally not composing glyphs; out of scope
		}
		return
	}
	if s.wrapPending {
		s.cursorCol = 0
		s.lineFeedNoCR()
		s.wrapPending = false
	}
	if s.cursorCol+w > s.cols {
		s.wrapPending = true
		if s.cursorCol >= s.cols {
			s.cursorCol = s.cols - w
			if s.cursorCol < 0 {
				s.cursorCol = 0
			}
		}
	}
	cell := Cell{Rune: r, FG: s.currentFG, BG: s.currentBG, Attr: s.currentAttr}
	s.grid.Set(s.cursorRow, s.cursorCol, cell)
	if w == 2 {
		s.grid.Set(s.cursorRow, s.cursorCol+1, Cell{Continuation: true, FG: s.currentFG, BG: s.currentBG})
	}
	if s.cursorCol+w < s.cols {
		s.cursorCol += w
	} else {
		s.cursorCol = s.cols - 1
		s.wrapPending = true
	}
}

func (s *Screen) setTitle(t string) {
	s.title = t
	if s.onTitle != nil {
		s.onTitle(t)
	}
}

func (s *Screen) carriageReturn() {
	s.cursorCol = 0
	s.wrapPending = false
}

func (s *Screen) backspace() {
	if s.cursorCol > 0 {
		s.cursorCol--
	}
	s.wrapPending = false
}

func (s *Screen) tab() {
	next := (s.cursorCol/8 + 1) * 8
	if next >= s.cols {
		next = s.cols - 1
	}
	s.cursorCol = next
}

func (s *Screen) clearScreenAndHome() {
	s.grid.Clear()
	s.cursorRow, s.cursorCol = 0, 0
	s.wrapPending = false
}

// lineFeed moves to the next row, scrolling within margins if at the
// bottom, WITHOUT resetting column (true LF semantics; callers wanting
// CR+LF call carriageReturn too, as '\n' alone does in cooked mode — the
// teacher's VTerm does this for raw \n bytes as most real shells run in
// raw mode and emit \r\n explicitly).
func (s *Screen) lineFeed() {
	s.lineFeedNoCR()
}

func (s *Screen) lineFeedNoCR() {
	s.wrapPending = false
	if s.cursorRow == s.marginBottom {
		s.scrollUpWithinMargins(1)
		return
	}
	if s.cursorRow < s.rows-1 {
		s.cursorRow++
	}
}

func (s *Screen) reverseIndex() {
	s.wrapPending = false
	if s.cursorRow == s.marginTop {
		s.scrollDownWithinMargins(1)
		return
	}
	if s.cursorRow > 0 {
		s.cursorRow--
	}
}

func (s *Screen) scrollUpWithinMargins(n int) {
	if s.marginTop == 0 && s.marginBottom == s.rows-1 {
		off := s.grid.ScrollUp(n)
		if !s.altScreen {
			s.scrollback.Append(off...)
		}
		return
	}
	// Scroll only the region [marginTop, marginBottom].
	height := s.marginBottom - s.marginTop + 1
	if n > height {
		n = height
	}
	for r := s.marginTop; r <= s.marginBottom-n; r++ {
		s.grid.SetRow(r, s.grid.Row(r+n))
	}
	for r := s.marginBottom - n + 1; r <= s.marginBottom; r++ {
		s.grid.ClearRange(r, 0, s.cols)
	}
}

func (s *Screen) scrollDownWithinMargins(n int) {
	height := s.marginBottom - s.marginTop + 1
	if n > height {
		n = height
	}
	for r := s.marginBottom; r >= s.marginTop+n; r-- {
		s.grid.SetRow(r, s.grid.Row(r-n))
	}
	for r := s.marginTop; r < s.marginTop+n; r++ {
		s.grid.ClearRange(r, 0, s.cols)
	}
}

func (s *Screen) saveCursor() {
	s.savedCursorRow, s.savedCursorCol = s.cursorRow, s.cursorCol
	s.savedFG, s.savedBG, s.savedAttr = s.currentFG, s.currentBG, s.currentAttr
}

func (s *Screen) restoreCursor() {
	s.cursorRow, s.cursorCol = s.savedCursorRow, s.savedCursorCol
	s.currentFG, s.currentBG, s.currentAttr = s.savedFG, s.savedBG, s.savedAttr
	s.wrapPending = false
}

func (s *Screen) fullReset() {
	s.grid.Clear()
	s.cursorRow, s.cursorCol = 0, 0
	s.cursorVisible = true
	s.currentFG, s.currentBG = DefaultColor, DefaultColor
	s.currentAttr = 0
	s.marginTop, s.marginBottom = 0, s.rows-1
	s.wrapPending = false
	s.altScreen = false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func param(params []int, i, def int) int {
	if i >= len(params) || params[i] == 0 {
		return def
	}
	return params[i]
}

func (s *Screen) processCSI(cmd byte, params []int, private byte) {
	n := param(params, 0, 1)
	switch cmd {
	case 'A':
		s.cursorRow = clampInt(s.cursorRow-n, 0, s.rows-1)
		s.wrapPending = false
	case 'B', 'e':
		s.cursorRow = clampInt(s.cursorRow+n, 0, s.rows-1)
		s.wrapPending = false
	case 'C', 'a':
		s.cursorCol = clampInt(s.cursorCol+n, 0, s.cols-1)
		s.wrapPending = false
	case 'D':
		s.cursorCol = clampInt(s.cursorCol-n, 0, s.cols-1)
		s.wrapPending = false
	case 'G', '`':
		s.cursorCol = clampInt(n-1, 0, s.cols-1)
	case 'd':
		s.cursorRow = clampInt(n-1, 0, s.rows-1)
	case 'H', 'f':
		row := param(params, 0, 1)
		col := param(params, 1, 1)
		s.cursorRow = clampInt(row-1, 0, s.rows-1)
		s.cursorCol = clampInt(col-1, 0, s.cols-1)
		s.wrapPending = false
	case 'J':
		s.eraseInDisplay(param(params, 0, 0))
	case 'K':
		s.eraseInLine(param(params, 0, 0))
	case 'L':
		s.insertLines(n)
	case 'M':
		s.deleteLines(n)
	case 'P':
		s.deleteChars(n)
	case '@':
		s.insertChars(n)
	case 'X':
		s.eraseChars(n)
	case 'S':
		s.scrollUpWithinMargins(n)
	case 'T':
		s.scrollDownWithinMargins(n)
	case 'm':
		s.handleSGR(params)
	case 'r':
		top := param(params, 0, 1)
		bottom := param(params, 1, s.rows)
		s.marginTop = clampInt(top-1, 0, s.rows-1)
		s.marginBottom = clampInt(bottom-1, s.marginTop, s.rows-1)
		s.cursorRow, s.cursorCol = s.marginTop, 0
	case 's':
		s.saveCursor()
	case 'u':
		s.restoreCursor()
	case 'h':
		s.setMode(params, private, true)
	case 'l':
		s.setMode(params, private, false)
	case 'n':
		// DSR: answerback is the Pane Terminal's job (it owns the PTY
		// writer); the Screen only tracks state, so nothing to do here.
	}
}

func (s *Screen) setMode(params []int, private byte, on bool) {
	for _, p := range params {
		if private == '?' {
			switch p {
			case 1: // DECCKM
				s.appCursorKeys = on
			case 25: // cursor visibility
				s.cursorVisible = on
			case 1049, 47, 1047: // alternate screen
				s.setAltScreen(on)
			}
		}
	}
}

func (s *Screen) setAltScreen(on bool) {
	if on == s.altScreen {
		return
	}
	if on {
		s.altGrid = s.grid
		s.savedMain.row, s.savedMain.col, s.savedMain.valid = s.cursorRow, s.cursorCol, true
		s.grid = NewGrid(s.rows, s.cols)
		s.cursorRow, s.cursorCol = 0, 0
		s.altScreen = true
	} else {
		if s.altGrid != nil {
			s.grid = s.altGrid
			s.altGrid = nil
		}
		if s.savedMain.valid {
			s.cursorRow, s.cursorCol = s.savedMain.row, s.savedMain.col
		}
		s.altScreen = false
	}
}

func (s *Screen) eraseInDisplay(mode int) {
	switch mode {
	case 0:
		s.grid.ClearRange(s.cursorRow, s.cursorCol, s.cols)
		for r := s.cursorRow + 1; r < s.rows; r++ {
			s.grid.ClearRange(r, 0, s.cols)
		}
	case 1:
		for r := 0; r < s.cursorRow; r++ {
			s.grid.ClearRange(r, 0, s.cols)
		}
		s.grid.ClearRange(s.cursorRow, 0, s.cursorCol+1)
	case 2, 3:
		s.grid.Clear()
	}
}

func (s *Screen) eraseInLine(mode int) {
	switch mode {
	case 0:
		s.grid.ClearRange(s.cursorRow, s.cursorCol, s.cols)
	case 1:
		s.grid.ClearRange(s.cursorRow, 0, s.cursorCol+1)
	case 2:
		s.grid.ClearRange(s.cursorRow, 0, s.cols)
	}
}

func (s *Screen) eraseChars(n int) {
	s.grid.ClearRange(s.cursorRow, s.cursorCol, s.cursorCol+n)
}

func (s *Screen) deleteChars(n int) {
	row := s.grid.Row(s.cursorRow)
	if s.cursorCol >= len(row) {
		return
	}
	tail := row[s.cursorCol:]
	if n > len(tail) {
		n = len(tail)
	}
	newRow := append([]Cell{}, row[:s.cursorCol]...)
	newRow = append(newRow, tail[n:]...)
	for len(newRow) < len(row) {
		newRow = append(newRow, emptyCell())
	}
	s.grid.SetRow(s.cursorRow, newRow)
}

func (s *Screen) insertChars(n int) {
	row := s.grid.Row(s.cursorRow)
	if s.cursorCol >= len(row) {
		return
	}
	blanks := make([]Cell, n)
	for i := range blanks {
		blanks[i] = emptyCell()
	}
	newRow := append([]Cell{}, row[:s.cursorCol]...)
	newRow = append(newRow, blanks...)
	newRow = append(newRow, row[s.cursorCol:]...)
	if len(newRow) > len(row) {
		newRow = newRow[:len(row)]
	}
	s.grid.SetRow(s.cursorRow, newRow)
}

func (s *Screen) insertLines(n int) {
	if s.cursorRow < s.marginTop || s.cursorRow > s.marginBottom {
		return
	}
	top := s.marginTop
	s.marginTop = s.cursorRow
	s.scrollDownWithinMargins(n)
	s.marginTop = top
}

func (s *Screen) deleteLines(n int) {
	if s.cursorRow < s.marginTop || s.cursorRow > s.marginBottom {
		return
	}
	top := s.marginTop
	s.marginTop = s.cursorRow
	s.scrollUpWithinMargins(n)
	s.marginTop = top
}

// handleSGR processes SGR parameters. Grounded directly on the pack's
// VTerm.handleSGR dispatch (standard/256/RGB colors, bold/underline/
// reverse attributes).
func (s *Screen) handleSGR(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			s.currentFG, s.currentBG, s.currentAttr = DefaultColor, DefaultColor, 0
		case p == 1:
			s.currentAttr |= AttrBold
		case p == 2:
			s.currentAttr |= AttrDim
		case p == 3:
			s.currentAttr |= AttrItalic
		case p == 4:
			s.currentAttr |= AttrUnderline
		case p == 5 || p == 6:
			s.currentAttr |= AttrBlink
		case p == 7:
			s.currentAttr |= AttrReverse
		case p == 22:
			s.currentAttr &^= AttrBold | AttrDim
		case p == 23:
			s.currentAttr &^= AttrItalic
		case p == 24:
			s.currentAttr &^= AttrUnderline
		case p == 25:
			s.currentAttr &^= AttrBlink
		case p == 27:
			s.currentAttr &^= AttrReverse
		case p >= 30 && p <= 37:
			s.currentFG = Color{Mode: ColorStandard, Value: uint8(p - 30)}
		case p == 38:
			if i+2 < len(params) && params[i+1] == 5 {
				s.currentFG = Color{Mode: Color256, Value: uint8(params[i+2])}
				i += 2
			} else if i+4 < len(params) && params[i+1] == 2 {
				s.currentFG = Color{Mode: ColorRGB, R: uint8(params[i+2]), G: uint8(params[i+3]), B: uint8(params[i+4])}
				i += 4
			}
		case p == 39:
			s.currentFG = DefaultColor
		case p >= 40 && p <= 47:
			s.currentBG = Color{Mode: ColorStandard, Value: uint8(p - 40)}
		case p == 48:
			if i+2 < len(params) && params[i+1] == 5 {
				s.currentBG = Color{Mode: Color256, Value: uint8(params[i+2])}
				i += 2
			} else if i+4 < len(params) && params[i+1] == 2 {
				s.currentBG = Color{Mode: ColorRGB, R: uint8(params[i+2]), G: uint8(params[i+3]), B: uint8(params[i+4])}
				i += 4
			}
		case p == 49:
			s.currentBG = DefaultColor
		case p >= 90 && p <= 97:
			s.currentFG = Color{Mode: ColorStandard, Value: uint8(p - 90 + 8)}
		case p >= 100 && p <= 107:
			s.currentBG = Color{Mode: ColorStandard, Value: uint8(p - 100 + 8)}
		}
	}
}
