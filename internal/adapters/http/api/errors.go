package api

import (
	"errors"
	"fmt"
	"net/http"

	service "github.com/okian/matchscore/internal/app"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotReady   = errors.New("timeline not ready")
)

// badRequest tags err with the operation and ErrBadRequest.
func badRequest(op, reason string) error {
	return fmt.Errorf("%s: %w: %s", op, ErrBadRequest, reason)
}

// writeServiceError maps errors coming back from the service layer.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "not_ready", fmt.Errorf("%s: %w", op, ErrNotReady))
	case errors.Is(err, service.ErrBatchTooLarge):
		writeError(w, http.StatusBadRequest, "batch_too_large", fmt.Errorf("%s: %w", op, err))
	case errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
	}
}
