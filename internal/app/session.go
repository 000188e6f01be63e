package app

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/input"
	"github.com/ayusman/mudra/internal/render"
	"github.com/ayusman/mudra/internal/store"
)

// ErrQuit is returned by Session.Run when the user asked to quit from the
// display.
var ErrQuit = errors.New("quit requested")

// Publisher fans live events out to observers such as WebSocket clients.
type Publisher interface {
	BroadcastJSON(v any)
}

// LiveEvent is the payload published for every performed action and every
// session state change.
type LiveEvent struct {
	Type      string    `json:"type"`
	Session   string    `json:"session,omitempty"`
	Mode      string    `json:"mode,omitempty"`
	Kind      string    `json:"kind,omitempty"`
	Direction string    `json:"direction,omitempty"`
	Label     string    `json:"label,omitempty"`
	Phase     string    `json:"phase,omitempty"`
	Running   bool      `json:"running"`
	TS        time.Time `json:"ts"`
}

// TickReport summarizes one processed tick.
type TickReport struct {
	Phase   gesture.Phase
	Label   string
	Actions []gesture.Action
	Hand    bool
}

// SessionConfig wires a Session. Source, Injector and Logger are required;
// the rest may be nil.
type SessionConfig struct {
	ID       string
	Mode     Mode
	Source   Source
	Injector input.Injector
	Renderer render.Renderer
	Journal  *store.EventRepository
	Feed     Publisher
	Logger   *log.Logger
	Verbose  bool
	// OnTick is called after every processed tick.
	OnTick func(TickReport)
}

// Session runs one recognizer over a source until cancelled.
type Session struct {
	cfg        SessionConfig
	recognizer *gesture.Recognizer
}

// NewSession creates a session with a fresh recognizer for cfg.Mode.
func NewSession(cfg SessionConfig) *Session {
	if cfg.Renderer == nil {
		cfg.Renderer = render.New()
	}
	return &Session{
		cfg:        cfg,
		recognizer: gesture.NewRecognizer(cfg.Mode.Options()),
	}
}

// Recognizer returns the session's recognizer.
func (s *Session) Recognizer() *gesture.Recognizer {
	return s.recognizer
}

// Run pulls and processes ticks one at a time. It returns nil when ctx is
// cancelled or a finite source is exhausted, and ErrQuit when the display
// asked to quit. Failed ticks are logged and skipped without touching the
// recognizer.
func (s *Session) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		tick, err := s.cfg.Source.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrSourceExhausted) || ctx.Err() != nil {
				return nil
			}
			s.cfg.Logger.Printf("tick skipped: %v", err)
			continue
		}

		s.step(tick)
		tick.Close()

		if s.cfg.Renderer.Quit() {
			return ErrQuit
		}
	}
}

// step processes one tick and performs its actions.
func (s *Session) step(tick Tick) {
	var res gesture.Result
	if tick.Observation != nil {
		res = s.recognizer.Process(*tick.Observation)
	} else {
		res = s.recognizer.Empty()
	}

	for _, a := range res.Actions {
		s.perform(a, res.Phase)
	}

	s.cfg.Renderer.Render(tick.Frame, res.Label)

	if s.cfg.Verbose {
		s.cfg.Logger.Printf("tick hand=%t phase=%s actions=%d", tick.Observation != nil, res.Phase, len(res.Actions))
	}

	if s.cfg.OnTick != nil {
		s.cfg.OnTick(TickReport{
			Phase:   res.Phase,
			Label:   res.Label,
			Actions: res.Actions,
			Hand:    tick.Observation != nil,
		})
	}
}

// perform injects a, then journals and publishes it. Injection failures
// are logged and otherwise ignored.
func (s *Session) perform(a gesture.Action, phase gesture.Phase) {
	if err := input.Perform(s.cfg.Injector, a); err != nil {
		s.cfg.Logger.Printf("perform %s: %v", a, err)
	}
	s.cfg.Logger.Printf("action %s", a.Label())

	now := time.Now()
	dir := ""
	if a.Dir != gesture.NoDirection {
		dir = a.Dir.String()
	}

	if s.cfg.Journal != nil {
		ev := &store.Event{
			SessionID: s.cfg.ID,
			Kind:      a.Kind.String(),
			Direction: dir,
			Label:     a.Label(),
			Phase:     phase.String(),
			At:        now,
		}
		if err := s.cfg.Journal.Create(ev); err != nil {
			s.cfg.Logger.Printf("journal %s: %v", a, err)
		}
	}

	if s.cfg.Feed != nil {
		s.cfg.Feed.BroadcastJSON(LiveEvent{
			Type:      "action",
			Session:   s.cfg.ID,
			Mode:      s.cfg.Mode.String(),
			Kind:      a.Kind.String(),
			Direction: dir,
			Label:     a.Label(),
			Phase:     phase.String(),
			Running:   true,
			TS:        now.UTC(),
		})
	}
}
