package vt

// Scrollback is an ordered ring of rows that have scrolled off the top of
// the live screen. Capacity is fixed at construction; the oldest rows are
// dropped once it is exceeded. Rows are immutable once appended.
type Scrollback struct {
	cap  int
	rows [][]Cell
	// dropped counts rows discarded because the ring was full or its
	// capacity shrank.
	dropped int
}

// NewScrollback creates a ring with the given capacity (spec default 1000).
func NewScrollback(capacity int) *Scrollback {
	if capacity < 0 {
		capacity = 0
	}
	return &Scrollback{cap: capacity, rows: make([][]Cell, 0, capacity)}
}

func (s *Scrollback) Len() int { return len(s.rows) }
func (s *Scrollback) Cap() int { return s.cap }

// Append adds rows to the back of the ring (newest), dropping the oldest
// as needed to respect capacity. Rows are appended in the order given
// (top-of-screen first, matching Grid.ScrollUp's return order).
func (s *Scrollback) Append(rows ...[]Cell) {
	for _, r := range rows {
		if s.cap == 0 {
			s.dropped++
			continue
		}
		s.rows = append(s.rows, r)
		if len(s.rows) > s.cap {
			s.rows = s.rows[1:]
			s.dropped++
		}
	}
}

// Row returns the row that is `fromTop` positions below the oldest row
// still retained (0 = oldest). Out-of-range requests return an empty row.
func (s *Scrollback) Row(fromTop int) []Cell {
	if fromTop < 0 || fromTop >= len(s.rows) {
		return nil
	}
	return s.rows[fromTop]
}

// RowFromBottom returns the row `fromBottom` positions above the newest
// scrollback row (0 = most recently scrolled off).
func (s *Scrollback) RowFromBottom(fromBottom int) []Cell {
	return s.Row(len(s.rows) - 1 - fromBottom)
}

// Resize changes capacity, trimming from the front (oldest) if shrinking.
func (s *Scrollback) Resize(capacity int) {
	if capacity < 0 {
		capacity = 0
	}
	s.cap = capacity
	if len(s.rows) > capacity {
		dropped := len(s.rows) - capacity
		s.rows = s.rows[dropped:]
		s.dropped += dropped
	}
}
