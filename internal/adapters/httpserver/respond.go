package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"futuresjournal/internal/ports"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeError maps application errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, ports.ErrInvalidRequest):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ports.ErrDuplicateEntry):
		writeMessage(w, http.StatusConflict, "record already exists")
	case errors.Is(err, ports.ErrInvalidCredentials), errors.Is(err, ports.ErrInvalidToken):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ports.ErrPermissionDenied):
		writeMessage(w, http.StatusForbidden, "permission denied")
	default:
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
