// Package main provides a pointer plugin. It clicks, drags, moves and
// scrolls the local mouse through robotgo.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-vgo/robotgo"
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

type moveParams struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

type scrollParams struct {
	Amount int `json:"amount"`
}

// actionHandler handles one action given its raw params.
type actionHandler func(params json.RawMessage) error

var actionHandlers = map[string]actionHandler{
	"click":        click,
	"double-click": doubleClick,
	"mouse-down":   mouseDown,
	"mouse-up":     mouseUp,
	"move":         move,
	"scroll":       scroll,
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	handler, ok := actionHandlers[req.Action]
	if !ok {
		writeErrorResponse(fmt.Sprintf("unknown action: %s", req.Action))
		return
	}

	if err := handler(req.Params); err != nil {
		writeErrorResponse(fmt.Sprintf("action %s failed: %v", req.Action, err))
		return
	}

	writeSuccessResponse()
}

func click(json.RawMessage) error {
	robotgo.Click("left")
	return nil
}

func doubleClick(json.RawMessage) error {
	robotgo.Click("left", true)
	return nil
}

func mouseDown(json.RawMessage) error {
	return robotgo.Toggle("left")
}

func mouseUp(json.RawMessage) error {
	return robotgo.Toggle("left", "up")
}

func move(params json.RawMessage) error {
	var p moveParams
	if err := json.Unmarshal(params, &p); err != nil {
		return fmt.Errorf("failed to parse params: %w", err)
	}
	robotgo.MoveRelative(p.DX, p.DY)
	return nil
}

func scroll(params json.RawMessage) error {
	var p scrollParams
	if err := json.Unmarshal(params, &p); err != nil {
		return fmt.Errorf("failed to parse params: %w", err)
	}
	if p.Amount == 0 {
		return fmt.Errorf("amount is required")
	}
	robotgo.Scroll(0, p.Amount)
	return nil
}

func writeErrorResponse(errMsg string) {
	json.NewEncoder(os.Stdout).Encode(Response{Success: false, Error: errMsg})
}

func writeSuccessResponse() {
	json.NewEncoder(os.Stdout).Encode(Response{Success: true})
}
