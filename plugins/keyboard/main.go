// Package main provides a keyboard plugin for macOS.
// It sends modifier hotkeys such as ctrl+pagedown via AppleScript.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Request represents the input from the plugin executor.
type Request struct {
	Action string          `json:"action"`
	Params json.RawMessage `json:"params"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// HotkeyParams defines parameters for the hotkey action.
type HotkeyParams struct {
	Modifier string `json:"modifier"` // command, option, control, shift
	Key      string `json:"key"`
}

// modifierMap maps user-friendly modifier names to AppleScript equivalents.
var modifierMap = map[string]string{
	"command": "command down",
	"cmd":     "command down",
	"option":  "option down",
	"alt":     "option down",
	"control": "control down",
	"ctrl":    "control down",
	"shift":   "shift down",
}

// keyCodes maps named keys that have no printable character to macOS
// virtual key codes.
var keyCodes = map[string]int{
	"pageup":   116,
	"pagedown": 121,
	"home":     115,
	"end":      119,
	"tab":      48,
	"left":     123,
	"right":    124,
	"down":     125,
	"up":       126,
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	switch req.Action {
	case "hotkey":
		if err := handleHotkey(req.Params); err != nil {
			writeErrorResponse(fmt.Sprintf("action %s failed: %v", req.Action, err))
			return
		}
	default:
		writeErrorResponse(fmt.Sprintf("unknown action: %s", req.Action))
		return
	}

	writeSuccessResponse()
}

// handleHotkey processes the hotkey action.
func handleHotkey(params json.RawMessage) error {
	var p HotkeyParams
	if err := json.Unmarshal(params, &p); err != nil {
		return fmt.Errorf("failed to parse params: %w", err)
	}

	if p.Key == "" {
		return fmt.Errorf("key is required")
	}

	script, err := buildHotkeyScript(p.Key, p.Modifier)
	if err != nil {
		return err
	}
	return runAppleScript(script)
}

// buildHotkeyScript generates an AppleScript for the given key and modifier.
// Named keys are sent as key codes, anything else as a keystroke.
func buildHotkeyScript(key, modifier string) (string, error) {
	press := fmt.Sprintf(`keystroke "%s"`, key)
	if code, ok := keyCodes[strings.ToLower(key)]; ok {
		press = fmt.Sprintf("key code %d", code)
	}

	if modifier == "" {
		return fmt.Sprintf(`tell application "System Events" to %s`, press), nil
	}

	appleMod, ok := modifierMap[strings.ToLower(modifier)]
	if !ok {
		return "", fmt.Errorf("unknown modifier %q", modifier)
	}
	return fmt.Sprintf(`tell application "System Events" to %s using {%s}`, press, appleMod), nil
}

func writeErrorResponse(errMsg string) {
	json.NewEncoder(os.Stdout).Encode(Response{Success: false, Error: errMsg})
}

func writeSuccessResponse() {
	json.NewEncoder(os.Stdout).Encode(Response{Success: true})
}

// runAppleScript executes an AppleScript command and returns any error.
func runAppleScript(script string) error {
	cmd := exec.Command("osascript", "-e", script)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}
