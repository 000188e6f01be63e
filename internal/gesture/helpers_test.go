package gesture

import (
	"time"

	"github.com/ayusman/mudra/internal/detector"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// at returns t0 plus ms milliseconds.
func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

// obs builds an observation with the index tip at (x, y) and the thumb tip
// gap away along Z, so the pinch distance equals gap exactly.
func obs(ms int, x, y, gap float64) Observation {
	return Observation{
		IndexTip: detector.Point3D{X: x, Y: y, Z: 0},
		ThumbTip: detector.Point3D{X: x, Y: y, Z: gap},
		At:       at(ms),
	}
}

const (
	closed = 0.01
	open   = 0.2
)

// pinch and release are stationary observations at the frame center.
func pinch(ms int) Observation   { return obs(ms, 0.5, 0.5, closed) }
func release(ms int) Observation { return obs(ms, 0.5, 0.5, open) }
