package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
)

// NewTestSelector returns a Selector that serves every user from db.
func NewTestSelector(t *testing.T, db *sql.DB) *repository.Selector {
	t.Helper()

	return repository.NewSelector(repository.NewSQLiteTransactionRepository(db), nil)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(NewTestSelector(t, db), zap.NewNop())
}

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	return service.NewPortfolioService(
		NewTestSelector(t, db),
		repository.NewPriceRepository(db),
		zap.NewNop(),
	)
}

func NewTestPriceService(t *testing.T, db *sql.DB) *service.PriceService {
	t.Helper()

	return service.NewPriceService(repository.NewPriceRepository(db), zap.NewNop())
}

func NewTestSnapshotService(t *testing.T, db *sql.DB) *service.SnapshotService {
	t.Helper()

	selector := NewTestSelector(t, db)
	return service.NewSnapshotService(
		selector,
		repository.NewSnapshotRepository(db),
		service.NewPortfolioService(selector, repository.NewPriceRepository(db), zap.NewNop()),
		zap.NewNop(),
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, false)
}

// MakeID generates a unique ID for testing.
func MakeID() string {
	return uuid.New().String()
}

// MakeSymbol generates a stock ticker symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("AAPL")
//	// Returns: "AAPL1A2B"
func MakeSymbol(base string) string {
	if base == "" {
		base = "TEST"
	}
	return base + randomAlphanumeric(4)
}

// MakeUserID generates a unique user identity for testing.
func MakeUserID() string {
	return "user-" + randomAlphanumeric(8)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
