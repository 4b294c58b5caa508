package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roombook/internal/models"
)

func TestHandleCreateRoom(t *testing.T) {
	ts := newTestServer(t)

	t.Run("success", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/rooms", map[string]any{
			"name": "Room 101", "type": "classroom", "capacity": 40,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var body struct {
			Message string      `json:"message"`
			Room    models.Room `json:"room"`
		}
		decode(t, w, &body)
		assert.Equal(t, "room created", body.Message)
		assert.Equal(t, int64(1), body.Room.ID)
		assert.Equal(t, models.RoomStatusActive, body.Room.Status, "status defaults to active")
	})

	t.Run("duplicate name differing only by case", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/rooms", map[string]any{
			"name": "ROOM 101", "type": "lab", "capacity": 10,
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "a room with this name already exists", errorMessage(t, w))
	})

	tests := []struct {
		name      string
		body      any
		wantError string
	}{
		{"missing name", map[string]any{"type": "lab", "capacity": 10}, "name is required"},
		{"missing type", map[string]any{"name": "X", "capacity": 10}, "type is required"},
		{"zero capacity", map[string]any{"name": "X", "type": "lab"}, "capacity must be a positive integer"},
		{"negative capacity", map[string]any{"name": "X", "type": "lab", "capacity": -1}, "capacity must be a positive integer"},
		{"bad status", map[string]any{"name": "X", "type": "lab", "capacity": 5, "status": "open"}, `status must be "active" or "inactive"`},
		{"unknown field", map[string]any{"name": "X", "type": "lab", "capacity": 5, "color": "red"}, "invalid JSON body"},
		{"invalid JSON", "not json", "invalid JSON body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/rooms", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantError, errorMessage(t, w))
		})
	}
}

func TestHandleListAndGetRoom(t *testing.T) {
	ts := newTestServer(t)
	ts.rooms.Create("Room 101", "classroom", 40, "")
	ts.rooms.Create("Lab A", "lab", 20, models.RoomStatusInactive)

	t.Run("list", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/rooms", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var rooms []models.Room
		decode(t, w, &rooms)
		require.Len(t, rooms, 2)
		assert.Equal(t, "Room 101", rooms[0].Name)
	})

	t.Run("get", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/rooms/2", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var room models.Room
		decode(t, w, &room)
		assert.Equal(t, "Lab A", room.Name)
	})

	t.Run("get missing", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/rooms/99", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("get bad id", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/rooms/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleUpdateRoom(t *testing.T) {
	ts := newTestServer(t)
	ts.rooms.Create("Room 101", "classroom", 40, "")
	ts.rooms.Create("Room 102", "classroom", 30, "")

	t.Run("success keeps unsupplied fields", func(t *testing.T) {
		w := ts.do(t, http.MethodPut, "/rooms/1", map[string]any{"capacity": 45})
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Room models.Room `json:"room"`
		}
		decode(t, w, &body)
		assert.Equal(t, 45, body.Room.Capacity)
		assert.Equal(t, "Room 101", body.Room.Name)
	})

	t.Run("rename conflict", func(t *testing.T) {
		w := ts.do(t, http.MethodPut, "/rooms/1", map[string]any{"name": "room 102"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		w := ts.do(t, http.MethodPut, "/rooms/99", map[string]any{"capacity": 5})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "room not found", errorMessage(t, w))
	})

	t.Run("deactivate", func(t *testing.T) {
		w := ts.do(t, http.MethodPut, "/rooms/1", map[string]any{"status": "inactive"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, ts.rooms.IsActive(1))
	})
}

func TestHandleDeleteRoom(t *testing.T) {
	ts := newTestServer(t)
	ts.rooms.Create("Room 101", "classroom", 40, "")

	w := ts.do(t, http.MethodDelete, "/rooms/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Room models.Room `json:"room"`
	}
	decode(t, w, &body)
	assert.Equal(t, "Room 101", body.Room.Name)

	w = ts.do(t, http.MethodDelete, "/rooms/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
