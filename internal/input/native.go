package input

import (
	"github.com/go-vgo/robotgo"
)

// NativeInjector drives the local mouse and keyboard through robotgo.
type NativeInjector struct{}

// NewNativeInjector returns an injector for the current desktop session.
func NewNativeInjector() *NativeInjector {
	return &NativeInjector{}
}

func (n *NativeInjector) Click() error {
	robotgo.Click("left")
	return nil
}

func (n *NativeInjector) DoubleClick() error {
	robotgo.Click("left", true)
	return nil
}

func (n *NativeInjector) MouseDown() error {
	return robotgo.Toggle("left")
}

func (n *NativeInjector) MouseUp() error {
	return robotgo.Toggle("left", "up")
}

func (n *NativeInjector) MoveRelative(dx, dy int) error {
	robotgo.MoveRelative(dx, dy)
	return nil
}

func (n *NativeInjector) Scroll(amount int) error {
	robotgo.Scroll(0, amount)
	return nil
}

func (n *NativeInjector) Hotkey(modifier, key string) error {
	return robotgo.KeyTap(key, modifier)
}
