package request

import "github.com/shopspring/decimal"

// SetPriceRequest represents the request body for entering a symbol's price.
// Date defaults to today when empty.
type SetPriceRequest struct {
	Price decimal.Decimal `json:"price"`
	Date  string          `json:"date,omitempty"`
}
