package request

import "github.com/shopspring/decimal"

type CreateTransactionRequest struct {
	Symbol        string          `json:"symbol"`
	Date          string          `json:"date"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PricePerShare decimal.Decimal `json:"pricePerShare"`
	Fees          decimal.Decimal `json:"fees"`
	Notes         string          `json:"notes,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
}

type UpdateTransactionRequest struct {
	Symbol        *string          `json:"symbol,omitempty"`
	Date          *string          `json:"date,omitempty"`
	Type          *string          `json:"type,omitempty"`
	Quantity      *decimal.Decimal `json:"quantity,omitempty"`
	PricePerShare *decimal.Decimal `json:"pricePerShare,omitempty"`
	Fees          *decimal.Decimal `json:"fees,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	Tags          *[]string        `json:"tags,omitempty"`
}

// ValidateSellRequest asks whether a SELL of Quantity shares is possible.
// ExcludeTransactionID names the SELL being edited, if any.
type ValidateSellRequest struct {
	Symbol               string          `json:"symbol"`
	Quantity             decimal.Decimal `json:"quantity"`
	ExcludeTransactionID string          `json:"excludeTransactionId,omitempty"`
}
