package input

import (
	"fmt"
	"log"
	"sync"
)

// Call is one event received by a Recorder.
type Call struct {
	Method string
	Args   []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Method, c.Args)
}

// Recorder is an Injector that records events instead of delivering them.
// It backs the dry-run mode and tests. With a logger set, every event is
// also logged.
type Recorder struct {
	logger *log.Logger
	err    error
	calls  []Call
	mu     sync.Mutex
}

// NewRecorder creates a Recorder. logger may be nil.
func NewRecorder(logger *log.Logger) *Recorder {
	return &Recorder{logger: logger}
}

// FailWith makes every later call return err after recording it.
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Calls returns a copy of the recorded events.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Reset drops the recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *Recorder) Click() error       { return r.record("Click") }
func (r *Recorder) DoubleClick() error { return r.record("DoubleClick") }
func (r *Recorder) MouseDown() error   { return r.record("MouseDown") }
func (r *Recorder) MouseUp() error     { return r.record("MouseUp") }

func (r *Recorder) MoveRelative(dx, dy int) error {
	return r.record("MoveRelative", dx, dy)
}

func (r *Recorder) Scroll(amount int) error {
	return r.record("Scroll", amount)
}

func (r *Recorder) Hotkey(modifier, key string) error {
	return r.record("Hotkey", modifier, key)
}

func (r *Recorder) record(method string, args ...any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	call := Call{Method: method, Args: args}
	r.calls = append(r.calls, call)
	if r.logger != nil {
		r.logger.Printf("dry-run: %s", call)
	}
	return r.err
}
