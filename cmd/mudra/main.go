// Mudra turns pinches and swipes seen by a webcam into mouse and keyboard
// input.
//
// It loads configuration, opens the journal, builds the injector for the
// configured backend and starts recognizing in the configured mode. The
// HTTP API, the system tray and a replay source are optional. Shutdown is
// handled gracefully on SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/input"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/render"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

type flags struct {
	configPath string
	mode       string
	bind       string
	camera     int
	backend    string
	noWindow   bool
	tray       bool
	replay     string
	verbose    bool
}

func main() {
	var f flags
	pflag.StringVarP(&f.configPath, "config", "c", "", "Path to config TOML (default ~/.mudra/mudra.toml if present)")
	pflag.StringVarP(&f.mode, "mode", "m", "", "Gesture mode: tap or control")
	pflag.StringVar(&f.bind, "bind", "", "Enable the HTTP API on this address (e.g. 127.0.0.1:8420)")
	pflag.IntVar(&f.camera, "camera", 0, "Camera device index")
	pflag.StringVar(&f.backend, "backend", "", "Input backend: native, plugin or dry-run")
	pflag.BoolVar(&f.noWindow, "no-window", false, "Do not open the preview window")
	pflag.BoolVar(&f.tray, "tray", false, "Run with a system tray menu")
	pflag.StringVar(&f.replay, "replay", "", "Replay observations from a JSON-lines file instead of the camera")
	pflag.BoolVarP(&f.verbose, "verbose", "v", false, "Log every tick")
	pflag.Parse()

	cfg, err := loadConfig(f)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	logger := log.New(os.Stdout, "mudra ", log.LstdFlags|log.Lmicroseconds)

	if err := run(cfg, f, logger); err != nil {
		logger.Fatalf("mudra failed: %v", err)
	}

	// Brief pause so in-flight log writes can flush before exit.
	time.Sleep(50 * time.Millisecond)
}

// loadConfig reads the config file, applies flag overrides and validates
// the result.
func loadConfig(f flags) (config.Config, error) {
	cfg := config.Default()

	path := f.configPath
	if path == "" {
		if p := filepath.Join(config.DataDir(), "mudra.toml"); fileExists(p) {
			path = p
		}
	}
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	set := pflag.CommandLine.Changed
	if set("mode") {
		cfg.Gesture.Mode = f.mode
	}
	if set("bind") {
		cfg.Server.Enabled = true
		cfg.Server.Bind = f.bind
	}
	if set("camera") {
		cfg.Camera.DeviceID = f.camera
	}
	if set("backend") {
		cfg.Input.Backend = f.backend
	}
	if f.noWindow || f.tray {
		cfg.Display.Window = false
	}
	if f.verbose {
		cfg.Logging.Verbose = true
	}

	return cfg, config.Validate(cfg)
}

func run(cfg config.Config, f flags, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mode, err := app.ParseMode(cfg.Gesture.Mode)
	if err != nil {
		return err
	}

	var st *store.Store
	if cfg.Journal.Enabled {
		if st, err = store.New(cfg.Journal.Path); err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		logger.Printf("journal at %s", st.Path())
	}

	injector, err := newInjector(cfg, logger)
	if err != nil {
		closeStore(st)
		return err
	}

	opts := app.Options{
		Logger:   logger,
		Cfg:      cfg,
		Injector: injector,
		Store:    st,
	}

	if f.replay != "" {
		opts.NewSource = replaySource(f.replay, cfg.Camera.FPS)
	} else {
		det, err := detector.NewMediaPipeDetector(detector.Config{
			MaxHands:        1,
			MinConfidence:   cfg.Detector.MinConfidence,
			MinTrackingConf: cfg.Detector.MinTrackingConfidence,
		})
		if err != nil {
			closeStore(st)
			return fmt.Errorf("hand detector: %w", err)
		}
		opts.Detector = det
	}

	var sinks []render.Sink
	if cfg.Display.Window {
		win := render.NewWindow(cfg.Display.Title)
		defer win.Close()
		sinks = append(sinks, win)
	}

	var (
		stream *render.Stream
		hub    *server.Hub
	)
	if cfg.Server.Enabled {
		stream = render.NewStream()
		sinks = append(sinks, stream)
		hub = server.NewHub()
		go hub.Run(ctx)
		opts.Feed = hub
	}
	opts.Renderer = render.New(sinks...)

	var menu *tray.Tray
	if f.tray {
		menu = tray.New()
		opts.OnStatus = func(s app.Status) {
			menu.SetStatus(s.Mode, s.Running)
			menu.SetLastAction(s.LastAction)
		}
	}

	a := app.New(opts)
	defer func() {
		if err := a.Close(); err != nil {
			logger.Printf("close: %v", err)
		}
	}()

	if cfg.Server.Enabled {
		srv := &http.Server{
			Addr: cfg.Server.Bind,
			Handler: server.New(server.Config{
				StaticDir: cfg.Server.StaticDir,
				Store:     st,
				App:       a,
				Stream:    stream,
				Hub:       hub,
			}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Printf("http listening on %s", cfg.Server.Bind)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Printf("http server: %v", err)
				stop()
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	if err := a.Start(mode); err != nil {
		if menu == nil {
			return err
		}
		// The tray stays up so another mode can be tried.
		logger.Printf("%v", err)
	}

	if menu != nil {
		menu.OnMode(func(name string) error {
			m, err := app.ParseMode(name)
			if err != nil {
				return err
			}
			return a.Start(m)
		})
		menu.OnStop(a.Stop)
		menu.OnQuit(stop)

		go func() {
			select {
			case <-ctx.Done():
			case <-a.Quit():
			}
			menu.Quit()
		}()
		menu.Run()
		return nil
	}

	select {
	case <-ctx.Done():
		logger.Printf("shutting down")
	case <-a.Quit():
		logger.Printf("quit from window")
	case <-a.Done():
		logger.Printf("input ended")
	}
	return nil
}

// newInjector builds the injector for the configured backend.
func newInjector(cfg config.Config, logger *log.Logger) (input.Injector, error) {
	switch cfg.Input.Backend {
	case config.BackendPlugin:
		manager := plugin.NewManager(cfg.Input.PluginDir)
		if err := manager.Discover(); err != nil {
			return nil, fmt.Errorf("discover plugins: %w", err)
		}
		for _, p := range manager.List() {
			logger.Printf("plugin %s %s: %v", p.Manifest.Name, p.Manifest.Version, p.Manifest.Actions)
		}
		return input.NewPluginInjector(manager, plugin.NewExecutor(cfg.Input.TimeoutMs)), nil
	case config.BackendDryRun:
		return input.NewRecorder(logger), nil
	default:
		return input.NewNativeInjector(), nil
	}
}

// replaySource returns a source factory replaying path at fps ticks per
// second. Each session replays the file from the start.
func replaySource(path string, fps int) func() (app.Source, error) {
	return func() (app.Source, error) {
		src, err := app.OpenScript(path, time.Now())
		if err != nil {
			return nil, err
		}
		src.Interval = time.Second / time.Duration(fps)
		return src, nil
	}
}

// closeStore releases the journal when setup fails before the App owns it.
func closeStore(st *store.Store) {
	if st != nil {
		st.Close()
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
