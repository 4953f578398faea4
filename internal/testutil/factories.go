package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository"
)

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	// A BUY of 10 shares at 100 with defaults
//	tx := testutil.NewTransaction("AAPL").Value()
//
//	// Customized and saved for a user
//	tx := testutil.NewTransaction("AAPL").
//	    Sell().
//	    WithQuantity("4").
//	    WithPrice("120").
//	    WithDate(testutil.Day(3)).
//	    Build(t, repo, "user-1")
type TransactionBuilder struct {
	ID            string
	Symbol        string
	Type          model.TransactionType
	Quantity      decimal.Decimal
	PricePerShare decimal.Decimal
	Fees          decimal.Decimal
	Date          time.Time
	Notes         string
	Tags          []string
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction(symbol string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:            MakeID(),
		Symbol:        symbol,
		Type:          model.TransactionTypeBuy,
		Quantity:      decimal.NewFromInt(10),
		PricePerShare: decimal.NewFromInt(100),
		Fees:          decimal.Zero,
		Date:          Day(0),
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// Sell turns the transaction into a SELL.
func (b *TransactionBuilder) Sell() *TransactionBuilder {
	b.Type = model.TransactionTypeSell
	return b
}

// WithQuantity sets the number of shares.
func (b *TransactionBuilder) WithQuantity(quantity string) *TransactionBuilder {
	b.Quantity = decimal.RequireFromString(quantity)
	return b
}

// WithPrice sets the price per share.
func (b *TransactionBuilder) WithPrice(price string) *TransactionBuilder {
	b.PricePerShare = decimal.RequireFromString(price)
	return b
}

// WithFees sets the fees.
func (b *TransactionBuilder) WithFees(fees string) *TransactionBuilder {
	b.Fees = decimal.RequireFromString(fees)
	return b
}

// WithDate sets the trade date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.Date = date
	return b
}

// WithNotes sets notes and tags.
func (b *TransactionBuilder) WithNotes(notes string, tags ...string) *TransactionBuilder {
	b.Notes = notes
	b.Tags = tags
	return b
}

// Value returns the transaction without storing it.
func (b *TransactionBuilder) Value() model.Transaction {
	total := b.Quantity.Mul(b.PricePerShare)
	if b.Type == model.TransactionTypeSell {
		total = total.Sub(b.Fees)
	} else {
		total = total.Add(b.Fees)
	}

	return model.Transaction{
		ID:            b.ID,
		Symbol:        b.Symbol,
		Type:          b.Type,
		Quantity:      b.Quantity,
		PricePerShare: b.PricePerShare,
		Date:          b.Date,
		TotalAmount:   total,
		Fees:          b.Fees,
		Notes:         b.Notes,
		Tags:          b.Tags,
		CreatedAt:     time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Build appends the transaction to the user's stored list and returns it.
func (b *TransactionBuilder) Build(t *testing.T, repo repository.TransactionRepository, userID string) model.Transaction {
	t.Helper()

	tx := b.Value()
	existing, err := repo.Load(context.Background(), userID)
	if err != nil {
		t.Fatalf("Failed to load transactions: %v", err)
	}
	if err := repo.Save(context.Background(), userID, append(existing, tx)); err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}
	return tx
}

// Convenience functions

// SaveTransactions replaces the user's stored list with txs.
//
// Example usage:
//
//	testutil.SaveTransactions(t, repo, "user-1",
//	    testutil.NewTransaction("AAPL").Value(),
//	    testutil.NewTransaction("AAPL").Sell().WithQuantity("5").WithDate(testutil.Day(1)).Value(),
//	)
func SaveTransactions(t *testing.T, repo repository.TransactionRepository, userID string, txs ...model.Transaction) {
	t.Helper()

	if err := repo.Save(context.Background(), userID, txs); err != nil {
		t.Fatalf("Failed to save test transactions: %v", err)
	}
}

// Day returns a fixed UTC date n days after 2024-01-01.
func Day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

// CreatePrice stores a price for symbol dated Day(0).
//
// Example usage:
//
//	testutil.CreatePrice(t, db, "AAPL", "150")
func CreatePrice(t *testing.T, db *sql.DB, symbol, price string) model.Price {
	t.Helper()

	p := model.Price{
		Symbol:    symbol,
		Price:     decimal.RequireFromString(price),
		Date:      Day(0),
		UpdatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := repository.NewPriceRepository(db).UpsertPrice(context.Background(), p); err != nil {
		t.Fatalf("Failed to create test price: %v", err)
	}
	return p
}

// CreateSnapshot stores a snapshot with the given invested amount.
func CreateSnapshot(t *testing.T, db *sql.DB, userID string, date time.Time, invested string) model.PortfolioSnapshot {
	t.Helper()

	s := model.PortfolioSnapshot{
		ID:                 MakeID(),
		UserID:             userID,
		Date:               date,
		Invested:           decimal.RequireFromString(invested),
		CurrentValue:       decimal.RequireFromString(invested),
		RealizedGainLoss:   decimal.Zero,
		UnrealizedGainLoss: decimal.Zero,
		TotalGainLoss:      decimal.Zero,
		OpenPositions:      1,
		CalculatedAt:       date.Add(22 * time.Hour),
	}
	if err := repository.NewSnapshotRepository(db).UpsertSnapshot(context.Background(), s); err != nil {
		t.Fatalf("Failed to create test snapshot: %v", err)
	}
	return s
}
