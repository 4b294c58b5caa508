package api

import (
	"net/http"

	"roombook/internal/metrics"
	"roombook/internal/models"
)

// AvailableRoomsResponse is the response for GET /rooms/available.
type AvailableRoomsResponse struct {
	Date           string        `json:"date"`
	StartTime      string        `json:"start_time"`
	EndTime        string        `json:"end_time"`
	AvailableRooms []models.Room `json:"available_rooms"`
}

// handleAvailableRooms lists the active rooms free in a window. The
// window ordering check lives here: the engine does not re-validate
// it.
// GET /rooms/available?date=YYYY-MM-DD&start_time=HH:MM&end_time=HH:MM
func (s *Server) handleAvailableRooms(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("rooms_available")

	q := r.URL.Query()
	date := q.Get("date")
	start := q.Get("start_time")
	end := q.Get("end_time")

	if err := requireFields("date", date, "start_time", start, "end_time", end); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !validDate(date) {
		writeError(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return
	}
	if !validTime(start) || !validTime(end) {
		writeError(w, http.StatusBadRequest, "start_time and end_time must be in HH:MM format")
		return
	}
	if end <= start {
		writeError(w, http.StatusBadRequest, "end_time must be after start_time")
		return
	}

	rooms, cached := s.cache.Get(r.Context(), date, start, end)
	if !cached {
		rooms = s.engine.AvailableRooms(date, start, end)
		s.cache.Put(r.Context(), date, start, end, rooms)
	}
	if rooms == nil {
		rooms = []models.Room{}
	}

	writeJSON(w, http.StatusOK, AvailableRoomsResponse{
		Date:           date,
		StartTime:      start,
		EndTime:        end,
		AvailableRooms: rooms,
	})
}
