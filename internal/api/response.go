// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/lineup/internal/logging"
)

// APIResponse is the envelope of every API response.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *APIMeta    `json:"meta,omitempty"`
}

// APIError represents an error response.
type APIError struct {
	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details contains additional error details (optional)
	Details interface{} `json:"details,omitempty"`

	RequestID string `json:"request_id,omitempty"`
}

// APIMeta contains response metadata.
type APIMeta struct {
	RequestID  string    `json:"request_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	DurationMs int64     `json:"duration_ms"`
}

// Error codes for API responses
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeValidationFailed   = "VALIDATION_ERROR"
	ErrCodeUnknownProvider    = "UNKNOWN_PROVIDER"
	ErrCodeAllProvidersFailed = "ALL_PROVIDERS_FAILED"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
)

// ResponseWriter writes enveloped JSON responses for one request.
type ResponseWriter struct {
	w         http.ResponseWriter
	r         *http.Request
	startTime time.Time
}

// NewResponseWriter creates a new response writer.
func NewResponseWriter(w http.ResponseWriter, r *http.Request) *ResponseWriter {
	return &ResponseWriter{
		w:         w,
		r:         r,
		startTime: time.Now(),
	}
}

// Success writes a 200 response with data.
func (rw *ResponseWriter) Success(data interface{}) {
	rw.write(http.StatusOK, APIResponse{Success: true, Data: data})
}

// Partial writes a 200 response whose data is usable but degraded, with
// success false and an error explaining why.
func (rw *ResponseWriter) Partial(data interface{}, code, message string) {
	rw.write(http.StatusOK, APIResponse{
		Success: false,
		Data:    data,
		Error:   &APIError{Code: code, Message: message},
	})
}

// Error writes an error response with the given status code.
func (rw *ResponseWriter) Error(statusCode int, code, message string) {
	rw.ErrorWithDetails(statusCode, code, message, nil)
}

// ErrorWithDetails writes an error response with additional details.
func (rw *ResponseWriter) ErrorWithDetails(statusCode int, code, message string, details interface{}) {
	rw.write(statusCode, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// BadRequest writes a 400 Bad Request error.
func (rw *ResponseWriter) BadRequest(message string) {
	rw.Error(http.StatusBadRequest, ErrCodeBadRequest, message)
}

// NotFound writes a 404 Not Found error.
func (rw *ResponseWriter) NotFound(message string) {
	rw.Error(http.StatusNotFound, ErrCodeNotFound, message)
}

// InternalError writes a 500 Internal Server Error.
func (rw *ResponseWriter) InternalError(message string) {
	rw.Error(http.StatusInternalServerError, ErrCodeInternalError, message)
}

// ValidationError writes a 400 error with validation details.
func (rw *ResponseWriter) ValidationError(message string, validationErrors interface{}) {
	rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeValidationFailed, message, validationErrors)
}

func (rw *ResponseWriter) write(statusCode int, resp APIResponse) {
	requestID := logging.RequestIDFromContext(rw.r.Context())
	if resp.Error != nil {
		resp.Error.RequestID = requestID
	}
	resp.Meta = &APIMeta{
		RequestID:  requestID,
		Timestamp:  time.Now().UTC(),
		DurationMs: time.Since(rw.startTime).Milliseconds(),
	}
	rw.writeJSON(statusCode, resp)
}

// writeJSON writes JSON response with proper headers.
func (rw *ResponseWriter) writeJSON(statusCode int, data interface{}) {
	rw.w.Header().Set("Content-Type", "application/json; charset=utf-8")
	rw.w.WriteHeader(statusCode)

	if err := json.NewEncoder(rw.w).Encode(data); err != nil {
		logging.Ctx(rw.r.Context()).Error().Err(err).Msg("Failed to encode JSON response")
	}
}
