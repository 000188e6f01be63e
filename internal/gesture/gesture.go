// Package gesture turns a stream of fingertip observations into discrete
// pointer and keyboard actions: tap, double-tap, hold-to-drag, drag-move
// and directional swipes.
package gesture

import (
	"time"

	"github.com/ayusman/mudra/internal/detector"
)

// Recognition thresholds. These are fixed; nothing in the configuration
// file overrides them.
const (
	// PinchThreshold is the fingertip distance below which a pinch is active.
	PinchThreshold = 0.045
	// HoldTime is how long a pinch must be held before it becomes a drag.
	HoldTime = 550 * time.Millisecond
	// DoubleTapWindow is the maximum gap between two tap releases that
	// still counts as a double tap.
	DoubleTapWindow = 450 * time.Millisecond

	// HistorySize is the number of index-tip samples a swipe is judged over.
	HistorySize = 12
	// SwipeDominance is how much larger the main axis displacement must be
	// than the cross axis.
	SwipeDominance = 1.6
	// SwipeMinDistance is the minimum main axis displacement of a swipe.
	SwipeMinDistance = 0.06

	// MoveDistance is the relative pointer move, in pixels, of a swipe made
	// while dragging.
	MoveDistance = 250
	// ScrollAmount is the scroll magnitude of a vertical swipe. Scrolling
	// up is positive.
	ScrollAmount = 1100
)

// Phase is the recognizer's current pinch state.
type Phase int

const (
	Idle Phase = iota
	Pinching
	Dragging
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Pinching:
		return "pinching"
	case Dragging:
		return "dragging"
	}
	return "unknown"
}

// Direction is the outcome of swipe classification.
type Direction int

const (
	NoDirection Direction = iota
	Left
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return ""
}

// Point2 is an index fingertip position in normalized frame coordinates.
type Point2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Observation is the minimal per-frame input of the recognizer: the two
// tracked fingertips and the time the frame was captured.
type Observation struct {
	IndexTip detector.Point3D
	ThumbTip detector.Point3D
	At       time.Time
}

// ObservationFromLandmarks reduces a detected hand to an Observation.
func ObservationFromLandmarks(hand *detector.HandLandmarks, at time.Time) Observation {
	return Observation{
		IndexTip: hand.Points[detector.IndexTip],
		ThumbTip: hand.Points[detector.ThumbTip],
		At:       at,
	}
}
