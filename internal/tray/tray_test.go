package tray

import (
	"errors"
	"testing"
)

func TestTray_StatusBeforeMenu(t *testing.T) {
	tr := New()

	tr.SetStatus("control", true)
	tr.SetLastAction("NEXT TAB")

	mode, running := tr.Status()
	if mode != "control" || !running {
		t.Errorf("Status() = %q, %v; want control, true", mode, running)
	}
	if got := tr.LastAction(); got != "Last: NEXT TAB" {
		t.Errorf("LastAction() = %q", got)
	}
}

func TestTray_LastActionDefault(t *testing.T) {
	if got := New().LastAction(); got != "Last: none" {
		t.Errorf("LastAction() = %q, want %q", got, "Last: none")
	}
}

func TestTray_ModeCallback(t *testing.T) {
	tr := New()

	var got []string
	tr.OnMode(func(mode string) error {
		got = append(got, mode)
		if mode == "control" {
			return errors.New("camera busy")
		}
		return nil
	})

	tr.handleMode("tap")
	if tr.LastAction() != "Last: none" {
		t.Errorf("a successful start must not touch the last action, got %q", tr.LastAction())
	}

	tr.handleMode("control")
	if tr.LastAction() != "Last: error: camera busy" {
		t.Errorf("LastAction() = %q, want the start error", tr.LastAction())
	}

	if len(got) != 2 || got[0] != "tap" || got[1] != "control" {
		t.Errorf("callback modes = %v", got)
	}
}

func TestTray_StopCallback(t *testing.T) {
	tr := New()
	tr.handleStop() // no callback set

	stopped := false
	tr.OnStop(func() { stopped = true })
	tr.handleStop()

	if !stopped {
		t.Error("stop callback not called")
	}
}
