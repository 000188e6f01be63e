package gesture

import "time"

// Context is the recognizer's mutable state. The zero value is a fresh
// context: Idle, empty history, no previous release.
type Context struct {
	Phase Phase
	// PinchStart is when Phase last entered Pinching. Valid only while
	// Phase is Pinching or Dragging.
	PinchStart time.Time
	// LastRelease is the time of the last tap release. Drag releases do
	// not update it. The zero time means no release has happened yet.
	LastRelease time.Time
	History     History
}

// track advances the phase machine by one observed frame and returns the
// event it emitted, if any.
func (c *Context) track(metric float64, now time.Time) (Action, bool) {
	var (
		ev      Action
		emitted bool
	)

	pinched := metric < PinchThreshold

	switch {
	case c.Phase == Idle && pinched:
		c.Phase = Pinching
		c.PinchStart = now

	case c.Phase == Pinching && !pinched:
		c.Phase = Idle
		if !c.LastRelease.IsZero() && now.Sub(c.LastRelease) <= DoubleTapWindow {
			ev = Action{Kind: DoubleClick}
		} else {
			ev = Action{Kind: Click}
		}
		emitted = true
		c.LastRelease = now

	case c.Phase == Dragging && !pinched:
		c.Phase = Idle
		ev = Action{Kind: Drop}
		emitted = true
	}

	// Hold check runs after the threshold transitions, on every frame
	// that ends still pinching.
	if c.Phase == Pinching && now.Sub(c.PinchStart) >= HoldTime {
		c.Phase = Dragging
		ev = Action{Kind: DragStart}
		emitted = true
	}

	return ev, emitted
}
