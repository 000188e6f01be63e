// Package app supervises recognition sessions: it builds the input source
// for the configured camera, runs one Session at a time, journals what
// happened and exposes a status snapshot for the HTTP API and the tray.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/input"
	"github.com/ayusman/mudra/internal/render"
	"github.com/ayusman/mudra/internal/store"
)

// Options holds everything the App needs from the caller.
type Options struct {
	Logger   *log.Logger
	Cfg      config.Config
	Detector detector.Detector
	Injector input.Injector
	Renderer render.Renderer
	// Store journals sessions and events. Optional.
	Store *store.Store
	// Feed receives live events. Optional.
	Feed Publisher
	// NewSource overrides the camera source, e.g. for replays.
	NewSource func() (Source, error)
	// OnStatus is called after every status change. It must not block.
	OnStatus func(Status)
}

// Status is a snapshot of the supervisor state.
type Status struct {
	Mode       string     `json:"mode"`
	Running    bool       `json:"running"`
	SessionID  string     `json:"session_id,omitempty"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	Phase      string     `json:"phase"`
	LastAction string     `json:"last_action,omitempty"`
	Frames     int64      `json:"frames"`
	Hands      int64      `json:"hands"`
	Actions    int64      `json:"actions"`
	LastError  string     `json:"last_error,omitempty"`
}

// App runs at most one recognition session at a time.
type App struct {
	log       *log.Logger
	cfg       config.Config
	detector  detector.Detector
	injector  input.Injector
	renderer  render.Renderer
	store     *store.Store
	feed      Publisher
	newSource func() (Source, error)
	onStatus  func(Status)

	// ctl serializes Start and Stop.
	ctl    sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	status Status

	quit     chan struct{}
	quitOnce sync.Once
}

// New creates an idle App. Call Start to begin recognizing.
func New(opts Options) *App {
	a := &App{
		log:      opts.Logger,
		cfg:      opts.Cfg,
		detector: opts.Detector,
		injector: opts.Injector,
		renderer: opts.Renderer,
		store:    opts.Store,
		feed:     opts.Feed,
		onStatus: opts.OnStatus,
		quit:     make(chan struct{}),
		status:   Status{Mode: "off", Phase: "idle"},
	}
	if a.log == nil {
		a.log = log.Default()
	}
	if a.injector == nil {
		a.injector = input.NewRecorder(a.log)
	}
	a.newSource = opts.NewSource
	if a.newSource == nil {
		a.newSource = a.cameraSource
	}
	return a
}

// cameraSource opens the configured camera with the shared detector.
func (a *App) cameraSource() (Source, error) {
	if a.detector == nil {
		return nil, errors.New("no hand detector configured")
	}

	cc := a.cfg.Camera
	cam := capture.NewCamera(capture.Config{
		DeviceID: cc.DeviceID,
		FPS:      cc.FPS,
		Width:    cc.Width,
		Height:   cc.Height,
		Mirror:   cc.Mirror,
	})

	var gate *capture.MotionGate
	if cc.MotionThreshold > 0 {
		gate = capture.NewMotionGate(cc.MotionThreshold)
	}

	return NewCameraSource(cam, a.detector, gate)
}

// Start stops any running session and starts a new one in mode with a
// fresh recognizer. It fails if the source cannot be opened.
func (a *App) Start(mode Mode) error {
	if _, err := ParseMode(string(mode)); err != nil {
		return err
	}

	a.ctl.Lock()
	defer a.ctl.Unlock()

	a.stopLocked()

	src, err := a.newSource()
	if err != nil {
		a.update(func(s *Status) { s.LastError = err.Error() })
		return fmt.Errorf("start %s: %w", mode, err)
	}

	id := uuid.NewString()
	startedAt := time.Now()
	var journal *store.EventRepository
	if a.store != nil {
		if err := a.store.Sessions().Create(&store.Session{ID: id, Mode: mode.String(), StartedAt: startedAt}); err != nil {
			a.log.Printf("journal session %s: %v", id, err)
		} else {
			journal = a.store.Events()
		}
	}

	sess := NewSession(SessionConfig{
		ID:       id,
		Mode:     mode,
		Source:   src,
		Injector: a.injector,
		Renderer: a.renderer,
		Journal:  journal,
		Feed:     a.feed,
		Logger:   a.log,
		Verbose:  a.cfg.Logging.Verbose,
		OnTick:   a.onTick,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	a.cancel = cancel
	a.done = done

	a.update(func(s *Status) {
		*s = Status{
			Mode:      mode.String(),
			Running:   true,
			SessionID: id,
			StartedAt: &startedAt,
			Phase:     sess.Recognizer().Phase().String(),
		}
	})
	a.log.Printf("session %s started in %s mode", id, mode)

	go func() {
		defer close(done)

		err := sess.Run(ctx)
		if cerr := src.Close(); cerr != nil {
			a.log.Printf("close source: %v", cerr)
		}
		if journal != nil {
			if err := a.store.Sessions().End(id, time.Now()); err != nil {
				a.log.Printf("journal session %s end: %v", id, err)
			}
		}

		a.update(func(s *Status) { s.Running = false })
		a.log.Printf("session %s stopped", id)

		if errors.Is(err, ErrQuit) {
			a.quitOnce.Do(func() { close(a.quit) })
		}
	}()

	return nil
}

// Stop ends the running session, if any, and waits for it to finish. An
// active drag is abandoned without a drop.
func (a *App) Stop() {
	a.ctl.Lock()
	defer a.ctl.Unlock()
	a.stopLocked()
}

func (a *App) stopLocked() {
	if a.cancel == nil {
		return
	}
	a.cancel()
	<-a.done
	a.cancel = nil
}

// Done returns a channel closed when the current session ends. With no
// session it returns a closed channel.
func (a *App) Done() <-chan struct{} {
	a.ctl.Lock()
	defer a.ctl.Unlock()
	if a.done == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return a.done
}

// Quit returns a channel closed once the user asks to quit from the display.
func (a *App) Quit() <-chan struct{} {
	return a.quit
}

// Status returns a copy of the current status.
func (a *App) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// Close stops the session and releases the detector and the journal.
func (a *App) Close() error {
	a.Stop()

	var errs []error
	if a.detector != nil {
		errs = append(errs, a.detector.Close())
	}
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	return errors.Join(errs...)
}

func (a *App) onTick(r TickReport) {
	a.update(func(s *Status) {
		s.Frames++
		if r.Hand {
			s.Hands++
		}
		s.Actions += int64(len(r.Actions))
		s.Phase = r.Phase.String()
		if r.Label != "" {
			s.LastAction = r.Label
		}
	})
}

// update applies fn to the status under the lock, then notifies OnStatus
// and, on state changes, the live feed.
func (a *App) update(fn func(*Status)) {
	a.mu.Lock()
	prev := a.status
	fn(&a.status)
	st := a.status
	a.mu.Unlock()

	if a.onStatus != nil {
		a.onStatus(st)
	}
	if a.feed != nil && (prev.Running != st.Running || prev.Mode != st.Mode) {
		a.feed.BroadcastJSON(LiveEvent{
			Type:    "state",
			Session: st.SessionID,
			Mode:    st.Mode,
			Running: st.Running,
			TS:      time.Now().UTC(),
		})
	}
}
