package validation

import (
	"time"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
)

// ValidateSetPrice validates a price entry for symbol.
func ValidateSetPrice(symbol string, req request.SetPriceRequest) error {
	errors := make(map[string]string)

	validateSymbol(errors, symbol)
	validatePositive(errors, "price", req.Price)
	if req.Date != "" {
		if _, err := time.Parse("2006-01-02", req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
