package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/mudra/internal/store"
)

func setupSessionHandler(t *testing.T) (*SessionHandler, *store.Store) {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewSessionHandler(s), s
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestSessionHandler_List(t *testing.T) {
	h, s := setupSessionHandler(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, mode := range []string{"tap", "control", "control"} {
		require.NoError(t, s.Sessions().Create(&store.Session{
			ID:        "sess-" + string(rune('a'+i)),
			Mode:      mode,
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, s.Sessions().End("sess-a", base.Add(30*time.Second)))

	rec := get(h, "/api/sessions")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listSessionsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Sessions, 3)
	assert.Equal(t, "sess-c", resp.Sessions[0].ID, "newest first")
	assert.Nil(t, resp.Sessions[0].EndedAt)
	assert.Equal(t, "sess-a", resp.Sessions[2].ID)
	require.NotNil(t, resp.Sessions[2].EndedAt)

	rec = get(h, "/api/sessions?limit=1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Sessions, 1)

	rec = get(h, "/api/sessions?limit=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionHandler_EmptyList(t *testing.T) {
	h, _ := setupSessionHandler(t)

	rec := get(h, "/api/sessions")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sessions":[]}`, rec.Body.String())
}

func TestSessionHandler_GetAndEvents(t *testing.T) {
	h, s := setupSessionHandler(t)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.Sessions().Create(&store.Session{ID: "sess-1", Mode: "control", StartedAt: at}))
	require.NoError(t, s.Events().Create(&store.Event{SessionID: "sess-1", Kind: "drag-start", Label: "DRAG START", Phase: "dragging", At: at}))
	require.NoError(t, s.Events().Create(&store.Event{SessionID: "sess-1", Kind: "move", Direction: "left", Label: "MOVE LEFT", Phase: "dragging", At: at.Add(time.Second)}))

	rec := get(h, "/api/sessions/sess-1")
	require.Equal(t, http.StatusOK, rec.Code)
	var sess sessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sess))
	assert.Equal(t, "control", sess.Mode)

	rec = get(h, "/api/sessions/sess-1/events")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listEventsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "sess-1", resp.SessionID)
	require.Len(t, resp.Events, 2)
	assert.Equal(t, "drag-start", resp.Events[0].Kind)
	assert.Equal(t, "left", resp.Events[1].Direction)
	assert.Equal(t, "MOVE LEFT", resp.Events[1].Label)
}

func TestSessionHandler_NotFound(t *testing.T) {
	h, _ := setupSessionHandler(t)

	assert.Equal(t, http.StatusNotFound, get(h, "/api/sessions/missing").Code)
	assert.Equal(t, http.StatusNotFound, get(h, "/api/sessions/missing/events").Code)
	assert.Equal(t, http.StatusNotFound, get(h, "/api/sessions/missing/other").Code)
}

func TestSessionHandler_ReadOnly(t *testing.T) {
	h, _ := setupSessionHandler(t)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(method, "/api/sessions", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
	}
}
