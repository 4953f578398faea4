package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is the current holding in one symbol, derived from all of its
// transactions. Positions are recomputed on demand and never stored.
type Position struct {
	Symbol              string          `json:"symbol"`
	TotalShares         decimal.Decimal `json:"totalShares"`
	AverageCostPerShare decimal.Decimal `json:"averageCostPerShare"`
	TotalInvested       decimal.Decimal `json:"totalInvested"` // cost basis of shares still held
	RealizedGainLoss    decimal.Decimal `json:"realizedGainLoss"`

	// Populated only when a current price is known.
	CurrentPrice       *decimal.Decimal `json:"currentPrice,omitempty"`
	CurrentValue       *decimal.Decimal `json:"currentValue,omitempty"`
	UnrealizedGainLoss *decimal.Decimal `json:"unrealizedGainLoss,omitempty"`

	Transactions []Transaction `json:"transactions"`
	LastUpdated  time.Time     `json:"lastUpdated"`
}

// IsOpen reports whether the position still holds shares.
func (p Position) IsOpen() bool { return p.TotalShares.IsPositive() }

// Portfolio aggregates position-level totals.
// TotalGainLoss is always TotalRealizedGainLoss + TotalUnrealizedGainLoss.
type Portfolio struct {
	Positions               []Position      `json:"positions"`
	TotalInvested           decimal.Decimal `json:"totalInvested"`
	TotalCurrentValue       decimal.Decimal `json:"totalCurrentValue"`
	TotalRealizedGainLoss   decimal.Decimal `json:"totalRealizedGainLoss"`
	TotalUnrealizedGainLoss decimal.Decimal `json:"totalUnrealizedGainLoss"`
	TotalGainLoss           decimal.Decimal `json:"totalGainLoss"`
}

// Price is a manually entered market price for a symbol.
type Price struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Date      time.Time       `json:"date"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// PortfolioSnapshot is a recorded copy of a user's portfolio totals for a
// single date. It is used for the history view only; positions are never
// read back from snapshots.
type PortfolioSnapshot struct {
	ID                 string          `json:"id"`
	UserID             string          `json:"userId"`
	Date               time.Time       `json:"date"`
	Invested           decimal.Decimal `json:"invested"`
	CurrentValue       decimal.Decimal `json:"currentValue"`
	RealizedGainLoss   decimal.Decimal `json:"realizedGainLoss"`
	UnrealizedGainLoss decimal.Decimal `json:"unrealizedGainLoss"`
	TotalGainLoss      decimal.Decimal `json:"totalGainLoss"`
	OpenPositions      int             `json:"openPositions"`
	CalculatedAt       time.Time       `json:"calculatedAt"`
}
