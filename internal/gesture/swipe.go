package gesture

import "math"

// Classify judges a swipe from the two endpoints of a full history.
// The path between the endpoints is ignored. It returns NoDirection until
// the history holds HistorySize samples, and never modifies h.
func Classify(h *History) Direction {
	if !h.Full() {
		return NoDirection
	}

	first, _ := h.Oldest()
	last, _ := h.Newest()
	return classify(last.X-first.X, last.Y-first.Y)
}

func classify(dx, dy float64) Direction {
	adx, ady := math.Abs(dx), math.Abs(dy)

	if adx > ady*SwipeDominance && adx > SwipeMinDistance {
		if dx > 0 {
			return Right
		}
		return Left
	}

	if ady > adx*SwipeDominance && ady > SwipeMinDistance {
		if dy > 0 {
			return Down
		}
		return Up
	}

	return NoDirection
}
