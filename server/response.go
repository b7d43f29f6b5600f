package server

import (
	customerrors "clinic-staffing/errors"
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// ResponseDTO is the envelope of every API response.
type ResponseDTO struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeSuccess(w http.ResponseWriter, code int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// writeError maps the error taxonomy onto status codes. Configuration defects
// are logged and hidden from the client.
func writeError(log *zap.Logger, w http.ResponseWriter, err error) {
	code := StatusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
		message = "staffing configuration error, contact the administrator"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ResponseDTO{
		Success: false,
		Message: message,
	})
}

// StatusFor returns the HTTP status for an error.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, customerrors.ErrInvalidConfiguration):
		return http.StatusInternalServerError
	case errors.Is(err, customerrors.ErrForecastUnavailable),
		errors.Is(err, customerrors.ErrHistoryUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, customerrors.ErrInvalidInput),
		errors.Is(err, customerrors.ErrUnknownPractitioner),
		errors.Is(err, customerrors.ErrInvalidPeriod):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
