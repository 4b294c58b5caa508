package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"roombook/internal/metrics"
	"roombook/internal/registry"
)

// CreateRoomRequest is the request body for POST /rooms.
type CreateRoomRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Capacity int    `json:"capacity"`
	Status   string `json:"status,omitempty"`
}

// UpdateRoomRequest is the request body for PUT /rooms/{id}. Absent
// fields keep their stored values.
type UpdateRoomRequest struct {
	Name     *string `json:"name,omitempty"`
	Type     *string `json:"type,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// handleCreateRoom registers a room.
// POST /rooms
func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("rooms_create")

	var req CreateRoomRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Type = strings.TrimSpace(req.Type)
	if err := requireFields("name", req.Name, "type", req.Type); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Capacity < 1 {
		writeError(w, http.StatusBadRequest, "capacity must be a positive integer")
		return
	}
	if req.Status != "" && !validRoomStatus(req.Status) {
		writeError(w, http.StatusBadRequest, `status must be "active" or "inactive"`)
		return
	}

	// The registry does not police names; uniqueness is enforced here.
	if _, exists := s.rooms.FindByName(req.Name); exists {
		writeError(w, http.StatusConflict, "a room with this name already exists")
		return
	}

	room := s.rooms.Create(req.Name, req.Type, req.Capacity, req.Status)
	s.cache.Invalidate(r.Context())
	s.log.Info().Int64("room_id", room.ID).Str("name", room.Name).Msg("room created")
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "room created",
		"room":    room,
	})
}

// handleListRooms returns all rooms.
// GET /rooms
func (s *Server) handleListRooms(w http.ResponseWriter, _ *http.Request) {
	metrics.IncHTTP("rooms_list")
	writeJSON(w, http.StatusOK, s.rooms.List())
}

// handleGetRoom returns a single room.
// GET /rooms/{id}
func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("rooms_get")

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	room, ok := s.rooms.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}
	writeJSON(w, http.StatusOK, room)
}

// handleUpdateRoom overwrites the supplied fields of a room.
// PUT /rooms/{id}
func (s *Server) handleUpdateRoom(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("rooms_update")

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateRoomRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			writeError(w, http.StatusBadRequest, "name must not be empty")
			return
		}
		req.Name = &trimmed
	}
	if req.Capacity != nil && *req.Capacity < 1 {
		writeError(w, http.StatusBadRequest, "capacity must be a positive integer")
		return
	}
	if req.Status != nil && !validRoomStatus(*req.Status) {
		writeError(w, http.StatusBadRequest, `status must be "active" or "inactive"`)
		return
	}

	room, err := s.rooms.Update(id, registry.RoomUpdate{
		Name:     req.Name,
		Type:     req.Type,
		Capacity: req.Capacity,
		Status:   req.Status,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	// A status flip or rename changes what availability queries return.
	s.cache.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "room updated",
		"room":    room,
	})
}

// handleDeleteRoom removes a room. Reservations referencing it are not
// cascaded.
// DELETE /rooms/{id}
func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("rooms_delete")

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	room, err := s.rooms.Delete(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.cache.Invalidate(r.Context())
	s.log.Info().Int64("room_id", id).Msg("room deleted")
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "room deleted",
		"room":    room,
	})
}
