// Package plugin runs input backends as external executables. A plugin is a
// directory holding a plugin.json manifest and an executable that reads one
// JSON request on stdin and writes one JSON response on stdout.
package plugin

import "encoding/json"

// Actions understood by input plugins.
const (
	ActionClick       = "click"
	ActionDoubleClick = "double-click"
	ActionMouseDown   = "mouse-down"
	ActionMouseUp     = "mouse-up"
	ActionMove        = "move"
	ActionScroll      = "scroll"
	ActionHotkey      = "hotkey"
)

// Manifest describes a plugin's metadata and capabilities.
type Manifest struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Executable  string   `json:"executable"`
	Actions     []string `json:"actions"`
}

// Request represents a request sent to a plugin for execution.
type Request struct {
	Action string          `json:"action"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response represents the response from a plugin execution.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// MoveParams are the params of a move request, in screen pixels.
type MoveParams struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// ScrollParams are the params of a scroll request. Positive scrolls up.
type ScrollParams struct {
	Amount int `json:"amount"`
}

// HotkeyParams are the params of a hotkey request.
type HotkeyParams struct {
	Modifier string `json:"modifier"`
	Key      string `json:"key"`
}

// Plugin represents a discovered plugin with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}

// Supports reports whether the plugin's manifest lists action.
func (p *Plugin) Supports(action string) bool {
	for _, a := range p.Manifest.Actions {
		if a == action {
			return true
		}
	}
	return false
}
