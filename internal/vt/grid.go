package vt

// Grid is a rectangular buffer of Cell indexed by (row, col). Its size
// always equals the current (rows, cols) of the owning Screen.
type Grid struct {
	rows, cols int
	cells      []Cell
}

// NewGrid allocates a rows x cols grid filled with empty cells.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{rows: rows, cols: cols}
	g.cells = make([]Cell, rows*cols)
	g.Clear()
	return g
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

func (g *Grid) idx(row, col int) int { return row*g.cols + col }

// At returns the cell at (row, col). Out-of-range coordinates return an
// empty cell rather than panicking; callers driven by escape sequences
// routinely compute coordinates that need clamping, not a crash.
func (g *Grid) At(row, col int) Cell {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return emptyCell()
	}
	return g.cells[g.idx(row, col)]
}

// Set writes a cell at (row, col). Out-of-range writes are no-ops.
func (g *Grid) Set(row, col int, c Cell) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return
	}
	g.cells[g.idx(row, col)] = c
}

// Row returns a copy of one row, suitable for appending to scrollback.
func (g *Grid) Row(row int) []Cell {
	if row < 0 || row >= g.rows {
		return make([]Cell, g.cols)
	}
	out := make([]Cell, g.cols)
	copy(out, g.cells[g.idx(row, 0):g.idx(row, 0)+g.cols])
	return out
}

// SetRow overwrites an entire row, padding or truncating src to g.cols.
func (g *Grid) SetRow(row int, src []Cell) {
	if row < 0 || row >= g.rows {
		return
	}
	dst := g.cells[g.idx(row, 0) : g.idx(row, 0)+g.cols]
	for i := range dst {
		if i < len(src) {
			dst[i] = src[i]
		} else {
			dst[i] = emptyCell()
		}
	}
}

// Clear resets every cell to empty.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = emptyCell()
	}
}

// ClearRange clears cells [fromCol, toCol) on row.
func (g *Grid) ClearRange(row, fromCol, toCol int) {
	if row < 0 || row >= g.rows {
		return
	}
	if fromCol < 0 {
		fromCol = 0
	}
	if toCol > g.cols {
		toCol = g.cols
	}
	for c := fromCol; c < toCol; c++ {
		g.Set(row, c, emptyCell())
	}
}

// ScrollUp shifts all rows up by n, returning the rows that scrolled off
// the top (oldest first) so the caller can append them to scrollback.
// The bottom n rows become empty.
func (g *Grid) ScrollUp(n int) [][]Cell {
	if n <= 0 {
		return nil
	}
	if n > g.rows {
		n = g.rows
	}
	off := make([][]Cell, n)
	for i := 0; i < n; i++ {
		off[i] = g.Row(i)
	}
	copy(g.cells, g.cells[g.idx(n, 0):])
	for row := g.rows - n; row < g.rows; row++ {
		g.ClearRange(row, 0, g.cols)
	}
	return off
}

// ScrollDown shifts all rows down by n, dropping the bottom n rows. The
// top n rows become empty (the caller fills them in, e.g. from
// scrollback, for reverse-index scrolling).
func (g *Grid) ScrollDown(n int) {
	if n <= 0 {
		return
	}
	if n > g.rows {
		n = g.rows
	}
	copy(g.cells[g.idx(n, 0):], g.cells[:g.idx(g.rows-n, 0)])
	for row := 0; row < n; row++ {
		g.ClearRange(row, 0, g.cols)
	}
}

// Reflow rebuilds the grid at (rows, cols), preserving content as far as
// possible: rows are copied verbatim (no rewrap across the boundary of
// what the caller passes as `source`); any rows that no longer fit are
// returned so the caller can push them to scrollback.
func Reflow(source [][]Cell, rows, cols int) (*Grid, [][]Cell) {
	g := NewGrid(rows, cols)
	var overflow [][]Cell
	start := 0
	if len(source) > rows {
		start = len(source) - rows
		overflow = source[:start]
	}
	for i, row := range source[start:] {
		g.SetRow(i, row)
	}
	return g, overflow
}
