package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"roombook/internal/metrics"
	"roombook/internal/registry"
)

// CreateUserRequest is the request body for POST /users.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateUserRequest is the request body for PUT /users/{id}.
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// handleCreateUser registers a user.
// POST /users
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("users_create")

	var req CreateUserRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := requireFields("name", req.Name, "email", req.Email); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.users.Create(req.Name, req.Email)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.log.Info().Int64("user_id", user.ID).Msg("user created")
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "user created",
		"user":    user,
	})
}

// handleListUsers returns all users.
// GET /users
func (s *Server) handleListUsers(w http.ResponseWriter, _ *http.Request) {
	metrics.IncHTTP("users_list")
	writeJSON(w, http.StatusOK, s.users.List())
}

// handleGetUser returns a single user.
// GET /users/{id}
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("users_get")

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, ok := s.users.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// handleUpdateUser overwrites the supplied fields of a user.
// PUT /users/{id}
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("users_update")

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateUserRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name must not be empty")
		return
	}

	user, err := s.users.Update(id, registry.UserUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "user updated",
		"user":    user,
	})
}

// handleDeleteUser removes a user.
// DELETE /users/{id}
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("users_delete")

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := s.users.Delete(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.log.Info().Int64("user_id", id).Msg("user deleted")
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "user deleted",
		"user":    user,
	})
}
