package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ternarybob/reperio/internal/models"
)

// ErrorPayload is the error half of the response envelope.
type ErrorPayload struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Envelope is the response shape shared by every API endpoint:
// {success: true, data: {...}} or {success: false, error: {...}}.
type Envelope struct {
	Success bool          `json:"success"`
	Data    interface{}   `json:"data,omitempty"`
	Error   *ErrorPayload `json:"error,omitempty"`
}

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteData writes a success envelope: {success: true, data: ...}
func WriteData(w http.ResponseWriter, statusCode int, data interface{}) error {
	return WriteJSON(w, statusCode, Envelope{
		Success: true,
		Data:    data,
	})
}

// WriteError writes an error envelope with a plain message.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, Envelope{
		Success: false,
		Error:   &ErrorPayload{Message: message},
	})
}

// WriteApiError maps a gateway error onto the envelope, preserving the error
// taxonomy's status code and upstream details. Unknown errors become a 500.
func WriteApiError(w http.ResponseWriter, err error) error {
	if apiErr, ok := models.AsApiError(err); ok {
		return WriteJSON(w, apiErr.StatusCode, Envelope{
			Success: false,
			Error: &ErrorPayload{
				Message: apiErr.Message,
				Details: apiErr.Details,
			},
		})
	}
	return WriteError(w, http.StatusInternalServerError, err.Error())
}
