package workbench

import "github.com/gdamore/tcell/v2"

// fakeDriver is a minimal ScreenDriver for tests that never touches a
// real terminal. PollEvent blocks until Inject sends an event.
type fakeDriver struct {
	rows, cols int
	events     chan tcell.Event
	fini       bool
}

func newFakeDriver(rows, cols int) *fakeDriver {
	return &fakeDriver{rows: rows, cols: cols, events: make(chan tcell.Event, 8)}
}

func (f *fakeDriver) Init() error   { return nil }
func (f *fakeDriver) Fini()         { f.fini = true }
func (f *fakeDriver) Size() (int, int) { return f.rows, f.cols }
func (f *fakeDriver) SetStyle(tcell.Style) {}
func (f *fakeDriver) HideCursor()          {}
func (f *fakeDriver) ShowCursor(x, y int)  {}
func (f *fakeDriver) Show()                {}
func (f *fakeDriver) PollEvent() tcell.Event {
	return <-f.events
}
func (f *fakeDriver) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {}
func (f *fakeDriver) EnableMouse()                                                     {}

func (f *fakeDriver) Inject(ev tcell.Event) { f.events <- ev }
