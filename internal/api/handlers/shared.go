package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
)

// parseJSON decodes the request body into a value of type T.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	if r.Body == nil || r.Body == http.NoBody {
		return v, errors.New("request body is empty")
	}
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return v, fmt.Errorf("failed to decode request body: %w", err)
	}
	return v, nil
}

// InsufficientSharesDetails is the error detail of a rejected SELL.
type InsufficientSharesDetails struct {
	Symbol          string `json:"symbol"`
	RequestedShares string `json:"requestedShares"`
	AvailableShares string `json:"availableShares"`
}

// respondInsufficientShares writes 422 if err is an insufficient shares
// error and reports whether it did.
func respondInsufficientShares(w http.ResponseWriter, err error) bool {
	var sharesErr *apperrors.InsufficientSharesError
	if !errors.As(err, &sharesErr) {
		return false
	}
	response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrInsufficientShares.Error(), InsufficientSharesDetails{
		Symbol:          sharesErr.Symbol,
		RequestedShares: sharesErr.Requested.String(),
		AvailableShares: sharesErr.Available.String(),
	})
	return true
}
