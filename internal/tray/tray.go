// Package tray provides a system tray front end for switching gesture modes.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Tray is the system tray menu. Callbacks run on the menu goroutine and
// must not block for long.
type Tray struct {
	onMode func(mode string) error
	onStop func()
	onQuit func()
	mu     sync.RWMutex

	mode    string
	running bool
	last    string

	// Menu items stored for later updates
	menuTap        *systray.MenuItem
	menuControl    *systray.MenuItem
	menuStop       *systray.MenuItem
	menuLastAction *systray.MenuItem
}

// New creates a Tray with recognition stopped.
func New() *Tray {
	return &Tray{}
}

// OnMode sets the callback run when "Tap Mode" or "Control Mode" is
// selected. An error is shown in the last-action item.
func (t *Tray) OnMode(fn func(mode string) error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onMode = fn
}

// OnStop sets the callback run when "Stop" is selected.
func (t *Tray) OnStop(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onStop = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until Quit is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit closes the tray from outside the menu.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetTitle("Mudra")
	systray.SetTooltip("Mudra gesture controller")

	t.mu.Lock()
	t.menuTap = systray.AddMenuItemCheckbox("Tap Mode", "Tap, double tap and drag", false)
	t.menuControl = systray.AddMenuItemCheckbox("Control Mode", "Taps, swipes and drag moves", false)
	t.menuStop = systray.AddMenuItem("Stop", "Stop gesture recognition")
	systray.AddSeparator()

	t.menuLastAction = systray.AddMenuItem("Last: none", "Last performed action")
	t.menuLastAction.Disable()
	systray.AddSeparator()
	t.mu.Unlock()

	menuQuit := systray.AddMenuItem("Quit", "Quit Mudra")

	t.refresh()

	go func() {
		for {
			select {
			case <-t.menuTap.ClickedCh:
				t.handleMode("tap")
			case <-t.menuControl.ClickedCh:
				t.handleMode("control")
			case <-t.menuStop.ClickedCh:
				t.handleStop()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

func (t *Tray) handleMode(mode string) {
	t.mu.RLock()
	callback := t.onMode
	t.mu.RUnlock()

	// Call the callback outside the lock; it reports back through SetStatus.
	if callback == nil {
		return
	}
	if err := callback(mode); err != nil {
		t.SetLastAction("error: " + err.Error())
	}
}

func (t *Tray) handleStop() {
	t.mu.RLock()
	callback := t.onStop
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetStatus records the active mode and whether it is running, and updates
// the menu checkmarks.
func (t *Tray) SetStatus(mode string, running bool) {
	t.mu.Lock()
	changed := t.mode != mode || t.running != running
	t.mode = mode
	t.running = running
	t.mu.Unlock()

	if changed {
		t.refresh()
	}
}

// SetLastAction updates the last action display in the menu.
func (t *Tray) SetLastAction(label string) {
	t.mu.Lock()
	if t.last == label {
		t.mu.Unlock()
		return
	}
	t.last = label
	t.mu.Unlock()

	t.refresh()
}

// Status returns the mode and running state last set with SetStatus.
func (t *Tray) Status() (mode string, running bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mode, t.running
}

// LastAction returns the text of the last-action item.
func (t *Tray) LastAction() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return lastTitle(t.last)
}

// refresh pushes the current state into the menu items, if they exist.
func (t *Tray) refresh() {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuTap == nil {
		return
	}

	setChecked(t.menuTap, t.running && t.mode == "tap")
	setChecked(t.menuControl, t.running && t.mode == "control")
	if t.running {
		t.menuStop.Enable()
	} else {
		t.menuStop.Disable()
	}
	t.menuLastAction.SetTitle(lastTitle(t.last))
}

func setChecked(item *systray.MenuItem, checked bool) {
	if checked {
		item.Check()
	} else {
		item.Uncheck()
	}
}

func lastTitle(label string) string {
	if label == "" {
		return "Last: none"
	}
	return "Last: " + label
}
