package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/mudra/internal/app"
)

type fakeController struct {
	status   app.Status
	startErr error
	started  []app.Mode
	stops    int
}

func (f *fakeController) Status() app.Status { return f.status }

func (f *fakeController) Start(mode app.Mode) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started = append(f.started, mode)
	f.status = app.Status{Mode: mode.String(), Running: true, Phase: "idle"}
	return nil
}

func (f *fakeController) Stop() {
	f.stops++
	f.status.Running = false
}

func postMode(h *ControlHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/mode", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Mode(rec, req)
	return rec
}

func TestControlHandler_Status(t *testing.T) {
	ctl := &fakeController{status: app.Status{Mode: "control", Running: true, Phase: "pinching", Frames: 42, LastAction: "CLICK"}}
	h := NewControlHandler(ctl)

	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got app.Status
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, ctl.status, got)
}

func TestControlHandler_StatusMethodNotAllowed(t *testing.T) {
	h := NewControlHandler(&fakeController{})

	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodPost, "/api/status", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestControlHandler_Mode(t *testing.T) {
	t.Run("starts a mode", func(t *testing.T) {
		ctl := &fakeController{}
		rec := postMode(NewControlHandler(ctl), `{"mode":"tap"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []app.Mode{app.ModeTap}, ctl.started)

		var got app.Status
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.True(t, got.Running)
		assert.Equal(t, "tap", got.Mode)
	})

	t.Run("off stops", func(t *testing.T) {
		ctl := &fakeController{status: app.Status{Mode: "control", Running: true}}
		rec := postMode(NewControlHandler(ctl), `{"mode":"off"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, ctl.stops)
		assert.Empty(t, ctl.started)
	})

	t.Run("unknown mode", func(t *testing.T) {
		ctl := &fakeController{}
		rec := postMode(NewControlHandler(ctl), `{"mode":"presentation"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, ctl.started)
	})

	t.Run("invalid json", func(t *testing.T) {
		rec := postMode(NewControlHandler(&fakeController{}), `{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("start failure", func(t *testing.T) {
		ctl := &fakeController{startErr: fmt.Errorf("start control: %w", errors.New("camera busy"))}
		rec := postMode(NewControlHandler(ctl), `{"mode":"control"}`)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "camera busy")
	})

	t.Run("only POST", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewControlHandler(&fakeController{}).Mode(rec, httptest.NewRequest(http.MethodGet, "/api/mode", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
