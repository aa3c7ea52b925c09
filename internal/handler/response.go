package handler

import (
	"encoding/json"
	"net/http"

	"vidtube/pkg/errors"
	"vidtube/pkg/logger"
)

// Response is the uniform success envelope
type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// ErrorResponse is the uniform failure envelope
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// writeJSON writes a success envelope
func writeJSON(w http.ResponseWriter, status int, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(&Response{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// writeError coerces any error into an AppError and writes the failure
// envelope. Internal causes are logged but never leak to the client.
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	appErr := errors.From(err)

	if appErr.Type == errors.ErrorTypeInternal {
		log.WithError(appErr).Error("Request failed")
	} else {
		log.WithError(appErr).Debug("Request rejected")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	_ = json.NewEncoder(w).Encode(&ErrorResponse{
		StatusCode: appErr.StatusCode,
		Message:    appErr.Message,
		Success:    false,
	})
}
