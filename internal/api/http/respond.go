package http

import (
	"encoding/json"
	"net/http"

	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/domain"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/logger"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// statusForKind maps service error kinds to HTTP status codes. Both
// availability conflicts and illegal lifecycle moves are 409s: the request was
// well-formed but the current state refuses it.
func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindResourceUnavailable, domain.KindInvalidStateTransition:
		return http.StatusConflict
	case domain.KindUnauthorized:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.KindOf(err)
	status := statusForKind(kind)

	message := err.Error()
	if status == http.StatusInternalServerError {
		// Never leak storage internals to clients.
		logger.Error("request failed",
			"request_id", GetRequestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		message = "internal server error"
	}

	writeJSON(w, status, errorResponse{Error: string(kind), Message: message})
}
