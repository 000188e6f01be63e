package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ayusman/mudra/internal/app"
)

// Controller is the part of the App the control endpoints drive.
type Controller interface {
	Status() app.Status
	Start(mode app.Mode) error
	Stop()
}

// ControlHandler serves GET /api/status and POST /api/mode.
type ControlHandler struct {
	ctl Controller
}

// NewControlHandler creates a new ControlHandler for ctl.
func NewControlHandler(ctl Controller) *ControlHandler {
	return &ControlHandler{ctl: ctl}
}

type modeRequest struct {
	Mode string `json:"mode"`
}

// Status handles GET /api/status.
func (h *ControlHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.ctl.Status())
}

// Mode handles POST /api/mode with {"mode": "tap" | "control" | "off"}.
// Switching modes always starts a fresh session.
func (h *ControlHandler) Mode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req modeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Mode == "off" {
		h.ctl.Stop()
		writeJSON(w, http.StatusOK, h.ctl.Status())
		return
	}

	mode, err := app.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Mode must be tap, control or off")
		return
	}

	if err := h.ctl.Start(mode); err != nil {
		if errors.Is(err, app.ErrUnknownMode) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.ctl.Status())
}
