package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

// ErrSourceExhausted is returned by a finite Source after its last tick.
var ErrSourceExhausted = errors.New("source exhausted")

// Tick is one step of input: an optional camera frame and the observation
// extracted from it, nil when no hand was seen.
type Tick struct {
	Frame       *gocv.Mat
	Observation *gesture.Observation
}

// Close releases the tick's frame.
func (t Tick) Close() {
	if t.Frame != nil {
		t.Frame.Close()
	}
}

// Source produces ticks. An error from Next skips the tick; the caller
// retries with the next call.
type Source interface {
	Next(ctx context.Context) (Tick, error)
	Close() error
}

// CameraSource reads frames from a camera and runs hand detection on them.
// With a motion gate, detection is skipped while the scene is still and no
// hand was seen on the previous tick; those ticks carry no observation.
type CameraSource struct {
	camera   capture.Camera
	detector detector.Detector
	gate     *capture.MotionGate
	tracking bool
	now      func() time.Time
}

// NewCameraSource opens camera and returns a source reading from it. gate
// may be nil. The detector is shared and not closed by the source.
func NewCameraSource(camera capture.Camera, det detector.Detector, gate *capture.MotionGate) (*CameraSource, error) {
	if err := camera.Open(); err != nil {
		return nil, err
	}
	return &CameraSource{
		camera:   camera,
		detector: det,
		gate:     gate,
		now:      time.Now,
	}, nil
}

func (s *CameraSource) Next(ctx context.Context) (Tick, error) {
	if err := ctx.Err(); err != nil {
		return Tick{}, err
	}

	frame, err := s.camera.ReadFrame()
	if err != nil {
		return Tick{}, fmt.Errorf("read frame: %w", err)
	}
	at := s.now()
	tick := Tick{Frame: frame}

	if s.gate != nil {
		if moved, _ := s.gate.Check(frame); !moved && !s.tracking {
			return tick, nil
		}
	}

	hands, err := s.detector.Detect(frame)
	if err != nil {
		tick.Close()
		return Tick{}, fmt.Errorf("detect: %w", err)
	}

	hand := detector.Primary(hands)
	s.tracking = hand != nil
	if hand != nil {
		obs := gesture.ObservationFromLandmarks(hand, at)
		tick.Observation = &obs
	}
	return tick, nil
}

// Close closes the camera and releases the motion gate's baseline.
func (s *CameraSource) Close() error {
	if s.gate != nil {
		s.gate.Close()
	}
	return s.camera.Close()
}

// ScriptStep is one scripted tick. A non-nil Err makes the tick fail;
// otherwise Observation, possibly nil, is delivered.
type ScriptStep struct {
	Observation *gesture.Observation
	Err         error
}

// ScriptSource replays a fixed sequence of steps without a camera. It
// drives dry runs and tests.
type ScriptSource struct {
	steps []ScriptStep
	next  int
	// Interval paces the replay; zero replays as fast as the loop pulls.
	Interval time.Duration
}

// NewScriptSource returns a source replaying steps in order.
func NewScriptSource(steps ...ScriptStep) *ScriptSource {
	return &ScriptSource{steps: steps}
}

// Observe returns a step delivering obs.
func Observe(obs gesture.Observation) ScriptStep {
	return ScriptStep{Observation: &obs}
}

// NoHand returns a step without a hand.
func NoHand() ScriptStep {
	return ScriptStep{}
}

func (s *ScriptSource) Next(ctx context.Context) (Tick, error) {
	if s.Interval > 0 {
		t := time.NewTimer(s.Interval)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Tick{}, ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return Tick{}, err
	}

	if s.next >= len(s.steps) {
		return Tick{}, ErrSourceExhausted
	}
	step := s.steps[s.next]
	s.next++

	if step.Err != nil {
		return Tick{}, step.Err
	}
	return Tick{Observation: step.Observation}, nil
}

func (s *ScriptSource) Close() error {
	return nil
}

// Remaining reports how many steps have not been replayed yet.
func (s *ScriptSource) Remaining() int {
	return len(s.steps) - s.next
}
