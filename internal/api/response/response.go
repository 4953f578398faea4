// Package response writes the JSON bodies every API handler returns.
package response

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-2xx answer. Details is either a
// string or a structured value such as the shares still available for a
// rejected SELL.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// RespondJSON writes data as JSON with the given status. Decimal amounts
// encode as strings, so clients never see float rounding.
// Encoding failures are logged; the status line is already sent by then.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Error("failed to encode JSON response", zap.Int("status", status), zap.Error(err))
	}
}

// RespondNoContent answers 204 without a body.
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondError writes an ErrorResponse.
//
// Example:
//
//	response.RespondError(w, http.StatusNotFound, apperrors.ErrPositionNotFound.Error(), symbol)
func RespondError(w http.ResponseWriter, status int, message string, details any) {
	RespondJSON(w, status, ErrorResponse{Error: message, Details: details})
}
