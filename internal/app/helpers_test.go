package app

import (
	"io"
	"log"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// hand builds an observation at t0+ms with the index tip at (x, y) and the
// thumb gap away along Z.
func hand(ms int, x, y, gap float64) ScriptStep {
	return Observe(gesture.Observation{
		IndexTip: detector.Point3D{X: x, Y: y},
		ThumbTip: detector.Point3D{X: x, Y: y, Z: gap},
		At:       t0.Add(time.Duration(ms) * time.Millisecond),
	})
}

func pinched(ms int) ScriptStep { return hand(ms, 0.5, 0.5, 0.01) }
func opened(ms int) ScriptStep  { return hand(ms, 0.5, 0.5, 0.2) }

// swipeRight moves an open hand right across a full history window.
func swipeRight(ms int) []ScriptStep {
	var steps []ScriptStep
	for i := 0; i < gesture.HistorySize; i++ {
		steps = append(steps, hand(ms+i*33, 0.10+0.01*float64(i), 0.5, 0.2))
	}
	return steps
}

// feedRecorder collects published live events.
type feedRecorder struct {
	mu     sync.Mutex
	events []LiveEvent
}

func (f *feedRecorder) BroadcastJSON(v any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ev, ok := v.(LiveEvent); ok {
		f.events = append(f.events, ev)
	}
}

func (f *feedRecorder) Events() []LiveEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]LiveEvent, len(f.events))
	copy(out, f.events)
	return out
}

func (f *feedRecorder) OfType(typ string) []LiveEvent {
	var out []LiveEvent
	for _, ev := range f.Events() {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

// labelRenderer records labels and asks to quit after quitAfter renders
// when quitAfter is positive.
type labelRenderer struct {
	mu        sync.Mutex
	labels    []string
	quitAfter int
}

func (r *labelRenderer) Render(frame *gocv.Mat, label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.labels = append(r.labels, label)
}

func (r *labelRenderer) Quit() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.quitAfter > 0 && len(r.labels) >= r.quitAfter
}

func (r *labelRenderer) Labels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.labels))
	copy(out, r.labels)
	return out
}
