package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/digitallife/lessonhub/pkg/errors"
)

// respondWithJSON writes a JSON response with the given status code
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// respondWithError writes a JSON error envelope
func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps an application error to its HTTP status.
// Validation failures and duplicates are both client errors; anything
// unclassified is reported as a generic server error without leaking the
// underlying cause.
func respondWithAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	switch {
	case apperrors.IsNotFound(err):
		respondWithError(w, http.StatusNotFound, appErr.Message)
	case apperrors.IsValidation(err), apperrors.IsConflict(err):
		respondWithError(w, http.StatusBadRequest, appErr.Message)
	default:
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
