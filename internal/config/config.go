// Package config loads the mudra TOML configuration. Every section maps to
// a typed struct; values the file omits keep their defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Input backends.
const (
	BackendNative = "native"
	BackendPlugin = "plugin"
	BackendDryRun = "dry-run"
)

// Config is the top-level configuration, mirroring the TOML sections.
type Config struct {
	Camera   CameraConfig   `toml:"camera"   json:"camera"`
	Detector DetectorConfig `toml:"detector" json:"detector"`
	Gesture  GestureConfig  `toml:"gesture"  json:"gesture"`
	Input    InputConfig    `toml:"input"    json:"input"`
	Display  DisplayConfig  `toml:"display"  json:"display"`
	Server   ServerConfig   `toml:"server"   json:"server"`
	Journal  JournalConfig  `toml:"journal"  json:"journal"`
	Logging  LoggingConfig  `toml:"logging"  json:"logging"`
}

type CameraConfig struct {
	DeviceID int  `toml:"device_id" json:"device_id"`
	FPS      int  `toml:"fps"       json:"fps"`
	Width    int  `toml:"width"     json:"width"`
	Height   int  `toml:"height"    json:"height"`
	Mirror   bool `toml:"mirror"    json:"mirror"`
	// MotionThreshold is the percentage of changed pixels that wakes the
	// detector while no hand is tracked. 0 runs detection on every frame.
	MotionThreshold float64 `toml:"motion_threshold" json:"motion_threshold"`
}

type DetectorConfig struct {
	MinConfidence         float64 `toml:"min_confidence"          json:"min_confidence"`
	MinTrackingConfidence float64 `toml:"min_tracking_confidence" json:"min_tracking_confidence"`
}

type GestureConfig struct {
	Mode string `toml:"mode" json:"mode"`
}

type InputConfig struct {
	Backend   string `toml:"backend"    json:"backend"`
	PluginDir string `toml:"plugin_dir" json:"plugin_dir"`
	TimeoutMs int    `toml:"timeout_ms" json:"timeout_ms"`
}

type DisplayConfig struct {
	Window bool   `toml:"window" json:"window"`
	Title  string `toml:"title"  json:"title"`
}

type ServerConfig struct {
	Enabled   bool   `toml:"enabled"    json:"enabled"`
	Bind      string `toml:"bind"       json:"bind"`
	StaticDir string `toml:"static_dir" json:"static_dir"`
}

type JournalConfig struct {
	Enabled bool   `toml:"enabled" json:"enabled"`
	Path    string `toml:"path"    json:"path"`
}

type LoggingConfig struct {
	Verbose bool `toml:"verbose" json:"verbose"`
}

// DataDir returns ~/.mudra, or .mudra when the home directory is unknown.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mudra"
	}
	return filepath.Join(home, ".mudra")
}

// Default returns a Config populated with defaults for a single webcam and
// the unified control mode.
func Default() Config {
	data := DataDir()
	return Config{
		Camera: CameraConfig{
			DeviceID: 0,
			FPS:      30,
			Width:    640,
			Height:   480,
			Mirror:   true,
		},
		Detector: DetectorConfig{
			MinConfidence:         0.78,
			MinTrackingConfidence: 0.78,
		},
		Gesture: GestureConfig{
			Mode: "control",
		},
		Input: InputConfig{
			Backend:   BackendNative,
			PluginDir: filepath.Join(data, "plugins"),
			TimeoutMs: 2000,
		},
		Display: DisplayConfig{
			Window: true,
			Title:  "Gesture Controller",
		},
		Server: ServerConfig{
			Enabled: false,
			Bind:    "127.0.0.1:8420",
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    filepath.Join(data, "mudra.db"),
		},
	}
}

// Load reads the TOML file at path, layers it on top of the defaults, and
// validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints. Load calls it; callers that
// override fields from flags should call it again.
func Validate(cfg Config) error {
	if cfg.Camera.DeviceID < 0 {
		return errors.New("camera.device_id must be >= 0")
	}
	if cfg.Camera.FPS <= 0 {
		return errors.New("camera.fps must be > 0")
	}
	if cfg.Camera.Width <= 0 || cfg.Camera.Height <= 0 {
		return errors.New("camera.width and camera.height must be > 0")
	}
	if cfg.Camera.MotionThreshold < 0 || cfg.Camera.MotionThreshold > 100 {
		return errors.New("camera.motion_threshold must be between 0 and 100")
	}
	if c := cfg.Detector.MinConfidence; c < 0 || c > 1 {
		return errors.New("detector.min_confidence must be between 0 and 1")
	}
	if c := cfg.Detector.MinTrackingConfidence; c < 0 || c > 1 {
		return errors.New("detector.min_tracking_confidence must be between 0 and 1")
	}
	switch cfg.Gesture.Mode {
	case "tap", "control":
	default:
		return fmt.Errorf("gesture.mode %q must be tap or control", cfg.Gesture.Mode)
	}
	switch cfg.Input.Backend {
	case BackendNative, BackendDryRun:
	case BackendPlugin:
		if cfg.Input.PluginDir == "" {
			return errors.New("input.plugin_dir must not be empty with the plugin backend")
		}
	default:
		return fmt.Errorf("input.backend %q must be native, plugin or dry-run", cfg.Input.Backend)
	}
	if cfg.Input.TimeoutMs <= 0 {
		return errors.New("input.timeout_ms must be > 0")
	}
	if cfg.Server.Enabled && cfg.Server.Bind == "" {
		return errors.New("server.bind must not be empty when the server is enabled")
	}
	if cfg.Journal.Enabled && cfg.Journal.Path == "" {
		return errors.New("journal.path must not be empty when the journal is enabled")
	}
	return nil
}
