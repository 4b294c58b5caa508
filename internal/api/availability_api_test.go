package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roombook/internal/models"
)

func TestHandleAvailableRooms(t *testing.T) {
	ts := newTestServer(t)
	ts.rooms.Create("Room 101", "classroom", 40, "")
	ts.rooms.Create("Room 102", "classroom", 30, "")
	ts.rooms.Create("Storage", "closet", 2, models.RoomStatusInactive)
	mustCreateUser(t, ts, "Ann", "ann@example.com")

	w := ts.do(t, http.MethodPost, "/reservations", reservationBody(map[string]any{
		"room_id": 1, "date": "2025-06-11", "start_time": "10:00", "end_time": "11:00",
	}))
	require.Equal(t, http.StatusCreated, w.Code)

	query := func(date, start, end string) ([]models.Room, *AvailableRoomsResponse) {
		t.Helper()
		w := ts.do(t, http.MethodGet, "/rooms/available?date="+date+"&start_time="+start+"&end_time="+end, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp AvailableRoomsResponse
		decode(t, w, &resp)
		return resp.AvailableRooms, &resp
	}

	t.Run("booked room is excluded", func(t *testing.T) {
		rooms, resp := query("2025-06-11", "10:30", "11:30")
		require.Len(t, rooms, 1)
		assert.Equal(t, "Room 102", rooms[0].Name)
		assert.Equal(t, "2025-06-11", resp.Date)
	})

	t.Run("disjoint window frees all active rooms", func(t *testing.T) {
		rooms, _ := query("2025-06-11", "11:00", "12:00")
		require.Len(t, rooms, 2)
	})

	t.Run("other date unaffected", func(t *testing.T) {
		rooms, _ := query("2025-06-12", "10:00", "11:00")
		assert.Len(t, rooms, 2)
	})

	t.Run("inactive rooms never listed", func(t *testing.T) {
		rooms, _ := query("2025-06-11", "08:00", "09:00")
		for _, room := range rooms {
			assert.NotEqual(t, "Storage", room.Name)
		}
	})

	t.Run("past date is still answered", func(t *testing.T) {
		rooms, _ := query("2024-01-01", "10:00", "11:00")
		assert.Len(t, rooms, 2)
	})

	tests := []struct {
		name      string
		query     string
		wantError string
	}{
		{"missing date", "start_time=10:00&end_time=11:00", "date is required"},
		{"bad date", "date=tomorrow&start_time=10:00&end_time=11:00", "date must be in YYYY-MM-DD format"},
		{"bad time", "date=2025-06-11&start_time=10&end_time=11:00", "start_time and end_time must be in HH:MM format"},
		{"inverted window", "date=2025-06-11&start_time=11:00&end_time=10:00", "end_time must be after start_time"},
		{"zero window", "date=2025-06-11&start_time=11:00&end_time=11:00", "end_time must be after start_time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodGet, "/rooms/available?"+tt.query, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantError, errorMessage(t, w))
		})
	}
}

func TestHandleAvailableRooms_EmptyList(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/rooms/available?date=2025-06-11&start_time=10:00&end_time=11:00", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available_rooms":[]`)
}
