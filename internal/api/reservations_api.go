package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"roombook/internal/events"
	"roombook/internal/metrics"
	"roombook/internal/models"
	"roombook/internal/reservation"
)

// CreateReservationRequest is the request body for POST /reservations.
type CreateReservationRequest struct {
	UserID    int64  `json:"user_id"`
	RoomID    int64  `json:"room_id"`
	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
	Reason    string `json:"reason"`
}

// UpdateReservationRequest is the request body for PUT
// /reservations/{id}. user_id and room_id are immutable and therefore
// not accepted.
type UpdateReservationRequest struct {
	Date      *string `json:"date,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

func (req *CreateReservationRequest) validate() string {
	if req.UserID < 1 {
		return "user_id must be a positive integer"
	}
	if req.RoomID < 1 {
		return "room_id must be a positive integer"
	}
	if err := requireFields("date", req.Date, "start_time", req.StartTime, "end_time", req.EndTime, "reason", req.Reason); err != nil {
		return err.Error()
	}
	if !validDate(req.Date) {
		return "date must be in YYYY-MM-DD format"
	}
	if !validTime(req.StartTime) {
		return "start_time must be in HH:MM format"
	}
	if !validTime(req.EndTime) {
		return "end_time must be in HH:MM format"
	}
	return ""
}

func (req *UpdateReservationRequest) validate() string {
	if req.Date != nil && !validDate(*req.Date) {
		return "date must be in YYYY-MM-DD format"
	}
	if req.StartTime != nil && !validTime(*req.StartTime) {
		return "start_time must be in HH:MM format"
	}
	if req.EndTime != nil && !validTime(*req.EndTime) {
		return "end_time must be in HH:MM format"
	}
	if req.Reason != nil && strings.TrimSpace(*req.Reason) == "" {
		return "reason must not be empty"
	}
	return ""
}

// handleCreateReservation books a room.
// POST /reservations
func (s *Server) handleCreateReservation(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("reservations_create")

	var req CreateReservationRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := s.engine.Create(reservation.CreateInput{
		UserID:    req.UserID,
		RoomID:    req.RoomID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    strings.TrimSpace(req.Reason),
	})
	if err != nil {
		if models.KindOf(err) == models.KindConflict {
			metrics.IncReservationConflict()
		}
		writeDomainError(w, err)
		return
	}

	metrics.IncReservationCreated()
	s.publish(r, events.ReservationCreated, res)
	s.log.Info().
		Int64("reservation_id", res.ID).
		Int64("room_id", res.RoomID).
		Str("date", res.Date).
		Str("window", res.StartTime+"-"+res.EndTime).
		Msg("reservation created")

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":     "reservation created",
		"reservation": res,
	})
}

// handleListReservations lists reservations, optionally filtered by
// room_id+date or by user_id.
// GET /reservations?room_id=&date=  |  GET /reservations?user_id=
func (s *Server) handleListReservations(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("reservations_list")

	q := r.URL.Query()
	roomID := q.Get("room_id")
	date := q.Get("date")
	userID := q.Get("user_id")

	switch {
	case roomID != "" && date != "":
		id, err := strconv.ParseInt(roomID, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "room_id must be an integer")
			return
		}
		writeJSON(w, http.StatusOK, s.engine.ListByRoomAndDate(id, date))
	case userID != "":
		id, err := strconv.ParseInt(userID, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "user_id must be an integer")
			return
		}
		writeJSON(w, http.StatusOK, s.engine.ListByUser(id))
	default:
		writeJSON(w, http.StatusOK, s.engine.List())
	}
}

// handleGetReservation returns a single reservation.
// GET /reservations/{id}
func (s *Server) handleGetReservation(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("reservations_get")

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, ok := s.engine.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "reservation not found")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleUpdateReservation reschedules a reservation.
// PUT /reservations/{id}
func (s *Server) handleUpdateReservation(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("reservations_update")

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateReservationRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := s.engine.Update(id, reservation.Update{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	})
	if err != nil {
		if models.KindOf(err) == models.KindConflict {
			metrics.IncReservationConflict()
		}
		writeDomainError(w, err)
		return
	}

	s.publish(r, events.ReservationUpdated, res)
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "reservation updated",
		"reservation": res,
	})
}

// handleCancelReservation cancels a reservation before it starts.
// DELETE /reservations/{id}
func (s *Server) handleCancelReservation(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("reservations_cancel")

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := s.engine.Cancel(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	metrics.IncReservationCancelled()
	s.publish(r, events.ReservationCancelled, res)
	s.log.Info().Int64("reservation_id", id).Msg("reservation cancelled")

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "reservation cancelled",
		"reservation": res,
	})
}

// publish notifies subscribers and drops any cached availability so
// the next query sees the mutation.
func (s *Server) publish(r *http.Request, eventType string, res models.Reservation) {
	if s.bus != nil {
		s.bus.Publish(events.Event{Type: eventType, Reservation: res})
	}
	s.cache.Invalidate(r.Context())
}
