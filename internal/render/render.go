// Package render draws the last action label onto camera frames and hands
// the annotated frames to display sinks: a desktop window and the MJPEG
// stream served over HTTP.
package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Overlay text placement and style.
var (
	LabelOrigin    = image.Pt(40, 120)
	LabelColor     = color.RGBA{R: 0, G: 255, B: 0, A: 0}
	LabelScale     = 1.6
	LabelThickness = 4
)

// Renderer shows one frame per tick with the current label.
type Renderer interface {
	Render(frame *gocv.Mat, label string)
	// Quit reports whether the user asked to stop from the display.
	Quit() bool
}

// Sink receives annotated frames.
type Sink interface {
	Show(frame *gocv.Mat)
}

// quitter is implemented by sinks that take keyboard input.
type quitter interface {
	Quit() bool
}

// Annotator draws the label once and passes the frame to every sink.
type Annotator struct {
	sinks []Sink
}

// New returns a Renderer fanning out to sinks. With no sinks frames are
// annotated and dropped.
func New(sinks ...Sink) *Annotator {
	return &Annotator{sinks: sinks}
}

// Render annotates frame in place. Ticks without a frame are ignored.
func (a *Annotator) Render(frame *gocv.Mat, label string) {
	if frame == nil || frame.Empty() {
		return
	}
	DrawLabel(frame, label)
	for _, s := range a.sinks {
		s.Show(frame)
	}
}

// Quit reports whether any sink asked to quit.
func (a *Annotator) Quit() bool {
	for _, s := range a.sinks {
		if q, ok := s.(quitter); ok && q.Quit() {
			return true
		}
	}
	return false
}

// DrawLabel writes label onto frame. An empty label draws nothing.
func DrawLabel(frame *gocv.Mat, label string) {
	if label == "" {
		return
	}
	gocv.PutText(frame, label, LabelOrigin, gocv.FontHersheySimplex, LabelScale, LabelColor, LabelThickness)
}
