package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the side of a transaction.
type TransactionType string

const (
	TransactionTypeBuy  TransactionType = "BUY"
	TransactionTypeSell TransactionType = "SELL"
)

// ParseTransactionType parses a transaction type case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.ToUpper(strings.TrimSpace(s))) {
	case TransactionTypeBuy:
		return TransactionTypeBuy, nil
	case TransactionTypeSell:
		return TransactionTypeSell, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// LocalUserID is the identity used when no authenticated user is present.
const LocalUserID = "local"

// Transaction represents a single BUY or SELL of a symbol.
// Transactions are immutable facts; positions are always derived from them.
type Transaction struct {
	ID            string          `json:"id"`
	Symbol        string          `json:"symbol"`
	Type          TransactionType `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PricePerShare decimal.Decimal `json:"pricePerShare"`
	Date          time.Time       `json:"date"`
	// TotalAmount is quantity * pricePerShare, plus fees for a BUY and minus
	// fees for a SELL. It is supplied by the caller and never recomputed by
	// the position calculation.
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Fees        decimal.Decimal `json:"fees"`
	Notes       string          `json:"notes,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	CreatedAt   time.Time       `json:"createdAt,omitempty"`
}

// IsBuy reports whether t is a BUY.
func (t Transaction) IsBuy() bool { return t.Type == TransactionTypeBuy }

// IsSell reports whether t is a SELL.
func (t Transaction) IsSell() bool { return t.Type == TransactionTypeSell }

// SellValidation is the outcome of checking a proposed SELL against the
// shares currently held.
type SellValidation struct {
	Valid           bool            `json:"valid"`
	Message         string          `json:"message"`
	AvailableShares decimal.Decimal `json:"availableShares"`
}
