package gesture

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ayusman/mudra/internal/detector"
)

// PinchDistance returns the 3D Euclidean distance between the index and
// thumb fingertips.
func PinchDistance(obs Observation) float64 {
	return r3.Norm(r3.Sub(vec(obs.IndexTip), vec(obs.ThumbTip)))
}

func vec(p detector.Point3D) r3.Vec {
	return r3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}
