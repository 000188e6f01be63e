package gesture

// Options selects the recognizer's capabilities.
type Options struct {
	// Swipe enables swipe classification and the navigation and
	// drag-move actions it drives. Without it only tap, double tap and
	// hold-to-drag are recognized.
	Swipe bool
}

// Result is the outcome of one frame.
type Result struct {
	// Actions holds every action the frame produced, in emission order.
	// A frame may produce both a pinch event and a swipe action.
	Actions []Action
	// Label is the feedback text of the last action, or empty.
	Label string
	// Phase is the phase after the frame.
	Phase Phase
}

// Recognizer owns a Context and processes one frame at a time.
// It is not safe for concurrent use.
type Recognizer struct {
	opts Options
	ctx  Context
}

// NewRecognizer returns a recognizer in the Idle phase with empty history.
func NewRecognizer(opts Options) *Recognizer {
	return &Recognizer{opts: opts}
}

// Options returns the recognizer's options.
func (r *Recognizer) Options() Options {
	return r.opts
}

// Context returns a copy of the current state.
func (r *Recognizer) Context() Context {
	return r.ctx
}

// Phase returns the current phase.
func (r *Recognizer) Phase() Phase {
	return r.ctx.Phase
}

// Process runs one observed frame through the pinch metric, the phase
// tracker, the motion history and the dispatcher.
func (r *Recognizer) Process(obs Observation) Result {
	var res Result

	before := r.ctx.Phase

	if r.opts.Swipe {
		r.ctx.History.Push(Point2{X: obs.IndexTip.X, Y: obs.IndexTip.Y})
	}

	if ev, ok := r.ctx.track(PinchDistance(obs), obs.At); ok {
		res.Actions = append(res.Actions, ev)
	}

	if r.opts.Swipe {
		if dir := Classify(&r.ctx.History); dir != NoDirection {
			// A frame that was dragging at any point is dispatched as a
			// drag, so the release frame of a drag still moves the item.
			phase := r.ctx.Phase
			if before == Dragging {
				phase = Dragging
			}
			if act, ok := Dispatch(phase, dir); ok {
				res.Actions = append(res.Actions, act)
			}
			r.ctx.History.Clear()
		}
	}

	if n := len(res.Actions); n > 0 {
		res.Label = res.Actions[n-1].Label()
	}
	res.Phase = r.ctx.Phase
	return res
}

// Empty handles a frame without a hand. State is left untouched.
func (r *Recognizer) Empty() Result {
	return Result{Phase: r.ctx.Phase}
}
