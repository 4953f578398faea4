package validation

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/calculation"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - symbol: Must not be blank
//   - date: Must be in YYYY-MM-DD format
//   - type: Must be BUY or SELL (case-insensitive)
//   - quantity: Must be positive after rounding to five decimal places
//   - pricePerShare: Must be positive
//
// Optional fields:
//   - fees: Must not be negative
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	validateSymbol(errors, req.Symbol)
	validateDate(errors, req.Date)
	validateType(errors, req.Type)
	validateQuantity(errors, req.Quantity)
	validatePositive(errors, "pricePerShare", req.PricePerShare)
	validateFees(errors, req.Fees)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.Symbol != nil {
		validateSymbol(errors, *req.Symbol)
	}
	if req.Date != nil {
		validateDate(errors, *req.Date)
	}
	if req.Type != nil {
		validateType(errors, *req.Type)
	}
	if req.Quantity != nil {
		validateQuantity(errors, *req.Quantity)
	}
	if req.PricePerShare != nil {
		validatePositive(errors, "pricePerShare", *req.PricePerShare)
	}
	if req.Fees != nil {
		validateFees(errors, *req.Fees)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateSellRequest validates a sell check request.
// ExcludeTransactionID, when present, must be a valid UUID.
func ValidateSellRequest(req request.ValidateSellRequest) error {
	errors := make(map[string]string)

	validateSymbol(errors, req.Symbol)
	validateQuantity(errors, req.Quantity)
	if req.ExcludeTransactionID != "" {
		if err := ValidateUUID(req.ExcludeTransactionID); err != nil {
			errors["excludeTransactionId"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func validateSymbol(errors map[string]string, symbol string) {
	if strings.TrimSpace(symbol) == "" {
		errors["symbol"] = apperrors.ErrInvalidSymbol.Error()
	}
}

func validateDate(errors map[string]string, date string) {
	if strings.TrimSpace(date) == "" {
		errors["date"] = "date is required"
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		errors["date"] = err.Error()
	}
}

func validateType(errors map[string]string, typ string) {
	if strings.TrimSpace(typ) == "" {
		errors["type"] = "type is required"
		return
	}
	if _, err := model.ParseTransactionType(typ); err != nil {
		errors["type"] = err.Error()
	}
}

func validatePositive(errors map[string]string, field string, value decimal.Decimal) {
	if !value.IsPositive() {
		errors[field] = field + " must be positive"
	}
}

// validateQuantity checks the quantity as it will be stored.
func validateQuantity(errors map[string]string, quantity decimal.Decimal) {
	if !calculation.RoundQuantity(quantity).IsPositive() {
		errors["quantity"] = apperrors.ErrInvalidQuantity.Error()
	}
}

func validateFees(errors map[string]string, fees decimal.Decimal) {
	if fees.IsNegative() {
		errors["fees"] = "fees cannot be negative"
	}
}
