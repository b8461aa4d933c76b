package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"vocabquest/internal/generator"
	"vocabquest/internal/scoring"
	"vocabquest/internal/service"
	"vocabquest/internal/validation"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondWithJSON(w, status, errorResponse{Success: false, Error: userMsg})
}

// respondWithServiceError maps the service error taxonomy onto HTTP statuses.
// Client mistakes are reported verbatim; storage failures are logged and
// masked.
func respondWithServiceError(w http.ResponseWriter, err error) {
	var validationErr validation.ValidationError

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
	case errors.Is(err, service.ErrDuplicateAttempt):
		respondWithError(w, http.StatusConflict, "This test has already been completed", "", nil)
	case errors.Is(err, service.ErrUnitNotFound):
		respondWithError(w, http.StatusNotFound, "Unit not found", "", nil)
	case errors.Is(err, service.ErrEmailTaken):
		respondWithError(w, http.StatusConflict, "Email is already registered", "", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, "Invalid email or password", "", nil)
	case errors.Is(err, scoring.ErrInvalidSubmission):
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
	case errors.Is(err, generator.ErrRateLimited):
		respondWithError(w, http.StatusTooManyRequests, "Question generation is busy, try again later", "", nil)
	case errors.Is(err, generator.ErrQuotaExhausted):
		respondWithError(w, http.StatusPaymentRequired, "Question generation quota is exhausted", "", nil)
	case errors.Is(err, generator.ErrNotConfigured):
		respondWithError(w, http.StatusServiceUnavailable, "Question generation is not available", "", nil)
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, validationErr.Error(), "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "request failed", err)
	}
}
