package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"tenantportal-backend/internal/logger"
	"tenantportal-backend/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

func writeError(w http.ResponseWriter, err error) {
	var mismatch *service.AmountMismatchError
	if errors.As(err, &mismatch) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":           "Amount mismatch",
			"expected_amount": mismatch.Computed,
			"provided_amount": mismatch.Claimed,
			"difference":      mismatch.Difference,
		})
		return
	}

	var gatewayErr *service.GatewayError
	if errors.As(err, &gatewayErr) {
		logger.Error("Gateway failure", "operation", gatewayErr.Operation, "error", gatewayErr.Err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "Payment gateway unavailable"})
		return
	}

	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
	case errors.Is(err, service.ErrValidation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Email already in use"})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "Access denied"})
	default:
		logger.Error("Internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body", service.ErrValidation)
	}
	return nil
}
