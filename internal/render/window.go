package render

import (
	"sync/atomic"

	"gocv.io/x/gocv"
)

// Window shows frames in a desktop window. Pressing q or Esc in the window
// requests quit.
type Window struct {
	win  *gocv.Window
	quit atomic.Bool
}

// NewWindow opens a window titled title.
func NewWindow(title string) *Window {
	return &Window{win: gocv.NewWindow(title)}
}

func (w *Window) Show(frame *gocv.Mat) {
	w.win.IMShow(*frame)
	switch w.win.WaitKey(1) {
	case 'q', 'Q', 27:
		w.quit.Store(true)
	}
}

func (w *Window) Quit() bool {
	return w.quit.Load()
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.win.Close()
}
