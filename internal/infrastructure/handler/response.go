package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bharath-kadali/expenseTracker/internal/domain/apperrors"
	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/logger"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// writeJSON sends v as a JSON body with the given status. The body is encoded
// before any header is written; an unencodable value becomes a 500.
func writeJSON(w http.ResponseWriter, log logger.Logger, statusCode int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Error("Failed to encode response", map[string]interface{}{
			"error": err.Error(),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error","status":500}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Error("Failed to write response", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// sendErrorResponse sends a standardized error response
func sendErrorResponse(w http.ResponseWriter, log logger.Logger, message, description string, statusCode int, requestID string) {
	resp := ErrorResponse{
		Error:       message,
		Status:      statusCode,
		Description: description,
		RequestID:   requestID,
	}

	log.Debug("Sending error response", map[string]interface{}{
		"request_id":  requestID,
		"status_code": statusCode,
		"message":     message,
	})

	writeJSON(w, log, statusCode, resp)
}

// sendServiceError maps a service error to a status code and sends it
func sendServiceError(w http.ResponseWriter, log logger.Logger, err error, requestID string) {
	fields := map[string]interface{}{
		"request_id": requestID,
		"error":      err.Error(),
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		log.Warn("Expense not found", fields)
		sendErrorResponse(w, log, "Expense not found",
			"The requested expense could not be found", http.StatusNotFound, requestID)
	case errors.Is(err, apperrors.ErrValidation):
		log.Warn("Validation failed", fields)
		sendErrorResponse(w, log, "Validation failed",
			strings.TrimPrefix(err.Error(), apperrors.ErrValidation.Error()+": "), http.StatusBadRequest, requestID)
	case errors.Is(err, apperrors.ErrRatesUnavailable):
		log.Error("Exchange rates unavailable", fields)
		sendErrorResponse(w, log, "Exchange rate service unavailable",
			"Unable to retrieve exchange rate data. Please try again later.", http.StatusServiceUnavailable, requestID)
	default:
		log.Error("Unexpected error", fields)
		sendErrorResponse(w, log, "Internal server error",
			"An unexpected error occurred. Please try again later.", http.StatusInternalServerError, requestID)
	}
}

// decodeAndValidate parses a JSON body into dst and runs struct validation.
// It writes the error response itself and reports whether the caller may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, log logger.Logger, requestID string, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, log, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		log.Warn("Request validation failed", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, log, "Validation failed", describeValidationError(err), http.StatusBadRequest, requestID)
		return false
	}

	return true
}

func describeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "gt":
			msgs = append(msgs, field+" must be a positive value")
		case "len":
			msgs = append(msgs, fmt.Sprintf("%s must be %s characters", field, fe.Param()))
		case "alpha":
			msgs = append(msgs, field+" must contain letters only")
		case "datetime":
			msgs = append(msgs, field+" must be in YYYY-MM-DD format")
		case "max", "min":
			msgs = append(msgs, fmt.Sprintf("%s length must satisfy %s=%s", field, fe.Tag(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
