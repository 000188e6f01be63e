package gesture

// History is a fixed-capacity FIFO of index fingertip positions. Pushing
// onto a full history evicts exactly the oldest sample.
type History struct {
	points [HistorySize]Point2
	start  int
	n      int
}

// Push appends p, evicting the oldest sample when full.
func (h *History) Push(p Point2) {
	if h.n < HistorySize {
		h.points[(h.start+h.n)%HistorySize] = p
		h.n++
		return
	}
	h.points[h.start] = p
	h.start = (h.start + 1) % HistorySize
}

// Len returns the number of samples held.
func (h History) Len() int {
	return h.n
}

// Full reports whether the history holds HistorySize samples.
func (h History) Full() bool {
	return h.n == HistorySize
}

// Oldest returns the oldest sample. ok is false when the history is empty.
func (h History) Oldest() (p Point2, ok bool) {
	if h.n == 0 {
		return Point2{}, false
	}
	return h.points[h.start], true
}

// Newest returns the most recent sample. ok is false when the history is empty.
func (h History) Newest() (p Point2, ok bool) {
	if h.n == 0 {
		return Point2{}, false
	}
	return h.points[(h.start+h.n-1)%HistorySize], true
}

// Points returns the samples oldest first.
func (h History) Points() []Point2 {
	out := make([]Point2, h.n)
	for i := 0; i < h.n; i++ {
		out[i] = h.points[(h.start+i)%HistorySize]
	}
	return out
}

// Clear empties the history.
func (h *History) Clear() {
	h.start = 0
	h.n = 0
}
