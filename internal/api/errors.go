package api

import (
	"encoding/json"
	"net/http"

	"migraph/internal/errors"
)

// ErrorResponse represents an HTTP error response
type ErrorResponse struct {
	Error          string             `json:"error"`
	Code           string             `json:"code"`
	Details        interface{}        `json:"details,omitempty"`
	SuggestedFixes []errors.FixAction `json:"suggestedFixes,omitempty"`
}

// WriteError writes an error response with automatic status code mapping
func WriteError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(MapErrorToStatus(errors.CodeOf(err)))

	resp := ErrorResponse{
		Error: err.Error(),
		Code:  string(errors.CodeOf(err)),
	}
	if me, ok := err.(*errors.MigraphError); ok {
		resp.Details = me.Details
		resp.SuggestedFixes = me.SuggestedFixes
	}

	_ = json.NewEncoder(w).Encode(resp)
}

// MapErrorToStatus maps migraph error codes to HTTP status codes
func MapErrorToStatus(code errors.ErrorCode) int {
	switch code {
	case errors.FactsNotFound:
		return http.StatusNotFound // 404
	case errors.FactsInvalid:
		return http.StatusBadRequest // 400
	case errors.NoRuns:
		return http.StatusNotFound // 404 (cold start, distinguishable by code)
	case errors.RunNotFound:
		return http.StatusNotFound // 404
	case errors.NodeNotFound:
		return http.StatusNotFound // 404
	case errors.GraphMismatch:
		return http.StatusInternalServerError // 500
	case errors.StoreUnavailable:
		return http.StatusServiceUnavailable // 503
	case errors.Unauthorized:
		return http.StatusUnauthorized // 401
	case errors.InternalError:
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// BadRequest writes a 400 Bad Request error
func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, errors.New(errors.FactsInvalid, message, nil))
}

// MethodNotAllowed writes a 405 response
func MethodNotAllowed(w http.ResponseWriter) {
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}
