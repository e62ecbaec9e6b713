package helpers

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the standardized envelope for all API responses.
// On success: Success is true and Data (and sometimes Message) is set.
// On failure: Success is false and either Message or Errors is set.
// swagger:model APIResponse
type APIResponse struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// WriteSuccess writes statusCode and a success envelope carrying data.
func WriteSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, APIResponse{Success: true, Data: data})
}

// WriteSuccessMessage writes statusCode and a success envelope carrying
// both data and a human-readable message. Data may be nil.
func WriteSuccessMessage(w http.ResponseWriter, statusCode int, data any, message string) {
	writeJSON(w, statusCode, APIResponse{Success: true, Data: data, Message: message})
}

// WriteError writes statusCode and a failure envelope with the given message.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, APIResponse{Success: false, Message: message})
}

// WriteValidationErrors writes 400 and a failure envelope with per-field
// error messages.
func WriteValidationErrors(w http.ResponseWriter, errors map[string]string) {
	writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Errors: errors})
}

func writeJSON(w http.ResponseWriter, statusCode int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

// DecodeJSON decodes the request body into dst. On failure it writes a
// 400 envelope and returns false; the caller should return immediately.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
