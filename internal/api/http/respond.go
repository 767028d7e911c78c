package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"brickvest-backend/internal/domain"
	"brickvest-backend/internal/logger"
	"brickvest-backend/internal/security"
	"brickvest-backend/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps a failure to its HTTP status. Anything outside the known
// taxonomy is reported as an opaque internal error so driver details never
// reach the caller.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, domain.ErrInvalidProperty),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidShares),
		errors.Is(err, domain.ErrInvalidBacker),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidShareQuantity):
		status = http.StatusBadRequest
		message = err.Error()

	case errors.Is(err, domain.ErrPropertyNotFound),
		errors.Is(err, domain.ErrOfferingNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		status = http.StatusNotFound
		message = err.Error()

	case errors.Is(err, domain.ErrOfferingAlreadyOpen),
		errors.Is(err, domain.ErrAggregateLimitExceeded),
		errors.Is(err, domain.ErrBackerExists),
		errors.Is(err, domain.ErrOfferingClosed):
		status = http.StatusForbidden
		message = err.Error()

	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrWrongTokenType),
		errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = err.Error()

	case errors.Is(err, service.ErrEmailTaken):
		status = http.StatusConflict
		message = err.Error()

	case errors.Is(err, domain.ErrNotImplemented):
		status = http.StatusNotImplemented
		message = err.Error()

	default:
		logger.Error("Unclassified error", "error", err)
	}

	writeJSON(w, status, map[string]string{"error": message})
}
