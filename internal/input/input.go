// Package input turns recognized gesture actions into mouse and keyboard
// events on the host.
package input

import (
	"fmt"

	"github.com/ayusman/mudra/internal/gesture"
)

// Key names shared by every backend.
const (
	ModControl  = "ctrl"
	KeyPageDown = "pagedown"
	KeyPageUp   = "pageup"
)

// Injector delivers synthetic input events.
type Injector interface {
	Click() error
	DoubleClick() error
	MouseDown() error
	MouseUp() error
	MoveRelative(dx, dy int) error
	Scroll(amount int) error
	Hotkey(modifier, key string) error
}

// Perform executes action on inj.
func Perform(inj Injector, action gesture.Action) error {
	switch action.Kind {
	case gesture.Click:
		return inj.Click()
	case gesture.DoubleClick:
		return inj.DoubleClick()
	case gesture.DragStart:
		return inj.MouseDown()
	case gesture.Drop:
		return inj.MouseUp()
	case gesture.Move:
		dx, dy, err := moveDelta(action.Dir)
		if err != nil {
			return err
		}
		return inj.MoveRelative(dx, dy)
	case gesture.Scroll:
		switch action.Dir {
		case gesture.Up:
			return inj.Scroll(gesture.ScrollAmount)
		case gesture.Down:
			return inj.Scroll(-gesture.ScrollAmount)
		}
		return fmt.Errorf("scroll %s: unsupported direction", action.Dir)
	case gesture.NextTab:
		return inj.Hotkey(ModControl, KeyPageDown)
	case gesture.PrevTab:
		return inj.Hotkey(ModControl, KeyPageUp)
	}
	return fmt.Errorf("unknown action %v", action)
}

// moveDelta maps a direction to a pointer offset in screen coordinates,
// where y grows downwards.
func moveDelta(dir gesture.Direction) (int, int, error) {
	switch dir {
	case gesture.Left:
		return -gesture.MoveDistance, 0, nil
	case gesture.Right:
		return gesture.MoveDistance, 0, nil
	case gesture.Up:
		return 0, -gesture.MoveDistance, nil
	case gesture.Down:
		return 0, gesture.MoveDistance, nil
	}
	return 0, 0, fmt.Errorf("move %s: unsupported direction", dir)
}
