package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrPositionNotFound indicates that no transactions exist for the requested symbol.
	ErrPositionNotFound = errors.New("position not found")

	// ErrPriceNotFound indicates that no price has been entered for a symbol.
	ErrPriceNotFound = errors.New("price not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInsufficientShares indicates that a sell transaction cannot be completed
	// because not enough shares of the symbol are held at that point in time.
	ErrInsufficientShares = errors.New("insufficient shares for sale")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	ErrInvalidSymbol = errors.New("symbol is required")

	// ErrInvalidQuantity indicates a share quantity that is zero or negative
	// once rounded to five decimal places.
	ErrInvalidQuantity = errors.New("quantity must be at least 0.00001")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToGetPortfolio         = errors.New("failed to get portfolio")
	ErrFailedToGetPositions         = errors.New("failed to get positions")
	ErrFailedToGetPortfolioHistory  = errors.New("failed to get portfolio history")
	ErrFailedToRetrievePrices       = errors.New("failed to retrieve prices")
	ErrFailedToUpdatePrice          = errors.New("failed to update price")
	ErrFailedToGetVersionInfo       = errors.New("failed to get version information")
)

// InsufficientSharesError is returned when a SELL asks for more shares than
// are held at its point in chronological processing. It matches
// ErrInsufficientShares with errors.Is.
type InsufficientSharesError struct {
	Symbol    string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientSharesError) Error() string {
	return fmt.Sprintf("%s: cannot sell %s shares of %s, only %s available",
		ErrInsufficientShares, e.Requested, e.Symbol, e.Available)
}

func (e *InsufficientSharesError) Is(target error) bool {
	return target == ErrInsufficientShares
}
