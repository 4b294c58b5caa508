package api

import (
	"encoding/json"
	"net/http"

	"roombook/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps a typed domain failure to a response status.
func writeDomainError(w http.ResponseWriter, err error) {
	switch models.KindOf(err) {
	case models.KindNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case models.KindConflict:
		writeError(w, http.StatusConflict, err.Error())
	case models.KindInvalidInput:
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
