package app

import (
	"errors"
	"fmt"

	"github.com/ayusman/mudra/internal/gesture"
)

// ErrUnknownMode is returned for a mode name that is neither tap nor control.
var ErrUnknownMode = errors.New("unknown mode")

// Mode names a gesture program.
type Mode string

const (
	// ModeTap recognizes tap, double tap and hold-to-drag only.
	ModeTap Mode = "tap"
	// ModeControl adds swipe navigation and drag moves.
	ModeControl Mode = "control"
)

// ParseMode validates a mode name.
func ParseMode(name string) (Mode, error) {
	switch m := Mode(name); m {
	case ModeTap, ModeControl:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// Options returns the recognizer options for the mode.
func (m Mode) Options() gesture.Options {
	return gesture.Options{Swipe: m == ModeControl}
}

func (m Mode) String() string {
	return string(m)
}
