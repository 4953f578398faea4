package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/testutil"
)

func buyRequest(symbol, quantity, price, date string) request.CreateTransactionRequest {
	return request.CreateTransactionRequest{
		Symbol:        symbol,
		Date:          date,
		Type:          "BUY",
		Quantity:      decimal.RequireFromString(quantity),
		PricePerShare: decimal.RequireFromString(price),
	}
}

func sellRequest(symbol, quantity, price, date string) request.CreateTransactionRequest {
	req := buyRequest(symbol, quantity, price, date)
	req.Type = "SELL"
	return req
}

func ptr[T any](v T) *T { return &v }

func TestTransactionService_CreateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes and computes total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		req := buyRequest(" aapl ", "1.123456", "100", "2024-01-01")
		req.Fees = decimal.RequireFromString("2.5")

		tx, err := svc.CreateTransaction(ctx, "user-1", req)
		if err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}
		if tx.ID == "" {
			t.Error("Expected an ID to be assigned")
		}
		if tx.Symbol != "AAPL" {
			t.Errorf("Expected symbol AAPL, got %q", tx.Symbol)
		}
		if tx.Quantity.String() != "1.12346" {
			t.Errorf("Expected quantity rounded to 1.12346, got %s", tx.Quantity)
		}
		// 1.12346 * 100 + 2.5
		if tx.TotalAmount.String() != "114.846" {
			t.Errorf("Expected total 114.846, got %s", tx.TotalAmount)
		}

		stored, err := svc.ListTransactions(ctx, "user-1", "")
		if err != nil {
			t.Fatalf("ListTransactions() returned unexpected error: %v", err)
		}
		if len(stored) != 1 || stored[0].ID != tx.ID {
			t.Errorf("Expected the created transaction to be stored, got %+v", stored)
		}
	})

	t.Run("sell fees reduce total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		if _, err := svc.CreateTransaction(ctx, "user-1", buyRequest("AAPL", "10", "100", "2024-01-01")); err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}

		req := sellRequest("AAPL", "4", "110", "2024-01-02")
		req.Fees = decimal.NewFromInt(5)
		tx, err := svc.CreateTransaction(ctx, "user-1", req)
		if err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}
		if tx.TotalAmount.String() != "435" {
			t.Errorf("Expected total 435, got %s", tx.TotalAmount)
		}
	})

	// WHY: Selling shares that are not held would leave the FIFO queue in a
	// state no later calculation can explain.
	t.Run("sell exceeding holdings is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		if _, err := svc.CreateTransaction(ctx, "user-1", buyRequest("AAPL", "10", "100", "2024-01-01")); err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}

		_, err := svc.CreateTransaction(ctx, "user-1", sellRequest("AAPL", "10.5", "110", "2024-01-02"))

		var sharesErr *apperrors.InsufficientSharesError
		if !errors.As(err, &sharesErr) {
			t.Fatalf("Expected InsufficientSharesError, got %v", err)
		}
		if !sharesErr.Available.Equal(decimal.NewFromInt(10)) {
			t.Errorf("Expected 10 available, got %s", sharesErr.Available)
		}

		stored, _ := svc.ListTransactions(ctx, "user-1", "")
		if len(stored) != 1 {
			t.Errorf("Expected rejected sell not to be stored, got %d transactions", len(stored))
		}
	})

	// WHY: Quantities are stored at five decimal places, so anything smaller
	// would be saved as a zero-share trade.
	t.Run("quantity rounding to zero is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		userID := testutil.MakeUserID()

		for _, req := range []request.CreateTransactionRequest{
			buyRequest("AAPL", "0.000004", "100", "2024-01-01"),
			sellRequest("AAPL", "0.000004", "100", "2024-01-01"),
		} {
			if _, err := svc.CreateTransaction(ctx, userID, req); !errors.Is(err, apperrors.ErrInvalidQuantity) {
				t.Errorf("Expected ErrInvalidQuantity for %s, got %v", req.Type, err)
			}
		}

		stored, _ := svc.ListTransactions(ctx, userID, "")
		if len(stored) != 0 {
			t.Errorf("Expected nothing to be stored, got %+v", stored)
		}
	})

	t.Run("backdated sell before the buy is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		if _, err := svc.CreateTransaction(ctx, "user-1", buyRequest("AAPL", "10", "100", "2024-02-01")); err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}

		_, err := svc.CreateTransaction(ctx, "user-1", sellRequest("AAPL", "5", "110", "2024-01-15"))
		if !errors.Is(err, apperrors.ErrInsufficientShares) {
			t.Errorf("Expected ErrInsufficientShares, got %v", err)
		}
	})

	t.Run("users do not share holdings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		if _, err := svc.CreateTransaction(ctx, "user-1", buyRequest("AAPL", "10", "100", "2024-01-01")); err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}

		_, err := svc.CreateTransaction(ctx, "user-2", sellRequest("AAPL", "1", "110", "2024-01-02"))
		if !errors.Is(err, apperrors.ErrInsufficientShares) {
			t.Errorf("Expected ErrInsufficientShares, got %v", err)
		}
	})
}

func TestTransactionService_ListAndGet(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewSQLiteTransactionRepository(db)
	svc := testutil.NewTestTransactionService(t, db)

	userID := testutil.MakeUserID()
	symbol := testutil.MakeSymbol("AAPL")
	id := testutil.MakeID()
	testutil.NewTransaction(symbol).WithID(id).Build(t, repo, userID)
	testutil.NewTransaction(testutil.MakeSymbol("MSFT")).Build(t, repo, userID)

	t.Run("filters by normalized symbol", func(t *testing.T) {
		got, err := svc.ListTransactions(ctx, userID, strings.ToLower(symbol))
		if err != nil {
			t.Fatalf("ListTransactions() returned unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].ID != id {
			t.Errorf("Expected only the %s transaction, got %+v", symbol, got)
		}
	})

	t.Run("get returns the transaction", func(t *testing.T) {
		got, err := svc.GetTransaction(ctx, userID, id)
		if err != nil {
			t.Fatalf("GetTransaction() returned unexpected error: %v", err)
		}
		if got.Symbol != symbol {
			t.Errorf("Expected %s, got %s", symbol, got.Symbol)
		}
	})

	t.Run("get of another user's transaction is not found", func(t *testing.T) {
		_, err := svc.GetTransaction(ctx, testutil.MakeUserID(), id)
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
	})
}

func TestTransactionService_UpdateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("updates fields and recomputes total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSQLiteTransactionRepository(db)
		svc := testutil.NewTestTransactionService(t, db)
		tx := testutil.NewTransaction("AAPL").Build(t, repo, "user-1")

		updated, err := svc.UpdateTransaction(ctx, "user-1", tx.ID, request.UpdateTransactionRequest{
			Quantity: ptr(decimal.NewFromInt(3)),
			Notes:    ptr("corrected"),
		})
		if err != nil {
			t.Fatalf("UpdateTransaction() returned unexpected error: %v", err)
		}
		if updated.TotalAmount.String() != "300" || updated.Notes != "corrected" {
			t.Errorf("Unexpected update result: %+v", updated)
		}
		if !updated.Date.Equal(tx.Date) {
			t.Errorf("Expected date to stay %s, got %s", tx.Date, updated.Date)
		}
	})

	// WHY: When editing a SELL its own quantity must not count against the
	// shares available to it.
	t.Run("editing a sell excludes itself", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSQLiteTransactionRepository(db)
		svc := testutil.NewTestTransactionService(t, db)
		testutil.NewTransaction("AAPL").Build(t, repo, "user-1")
		sell := testutil.NewTransaction("AAPL").Sell().WithQuantity("8").WithDate(testutil.Day(1)).Build(t, repo, "user-1")

		if _, err := svc.UpdateTransaction(ctx, "user-1", sell.ID, request.UpdateTransactionRequest{
			Quantity: ptr(decimal.NewFromInt(10)),
		}); err != nil {
			t.Errorf("Expected selling all 10 shares to be allowed, got %v", err)
		}

		_, err := svc.UpdateTransaction(ctx, "user-1", sell.ID, request.UpdateTransactionRequest{
			Quantity: ptr(decimal.NewFromInt(11)),
		})
		if !errors.Is(err, apperrors.ErrInsufficientShares) {
			t.Errorf("Expected ErrInsufficientShares, got %v", err)
		}
	})

	t.Run("changing the symbol of a buy that sells depend on is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSQLiteTransactionRepository(db)
		svc := testutil.NewTestTransactionService(t, db)
		buy := testutil.NewTransaction("AAPL").Build(t, repo, "user-1")
		testutil.NewTransaction("AAPL").Sell().WithQuantity("5").WithDate(testutil.Day(1)).Build(t, repo, "user-1")

		_, err := svc.UpdateTransaction(ctx, "user-1", buy.ID, request.UpdateTransactionRequest{
			Symbol: ptr("MSFT"),
		})
		if !errors.Is(err, apperrors.ErrInsufficientShares) {
			t.Errorf("Expected ErrInsufficientShares, got %v", err)
		}
	})

	t.Run("quantity rounding to zero is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSQLiteTransactionRepository(db)
		svc := testutil.NewTestTransactionService(t, db)
		userID := testutil.MakeUserID()
		tx := testutil.NewTransaction("AAPL").Build(t, repo, userID)

		_, err := svc.UpdateTransaction(ctx, userID, tx.ID, request.UpdateTransactionRequest{
			Quantity: ptr(decimal.RequireFromString("0.000004")),
		})
		if !errors.Is(err, apperrors.ErrInvalidQuantity) {
			t.Fatalf("Expected ErrInvalidQuantity, got %v", err)
		}

		stored, err := svc.GetTransaction(ctx, userID, tx.ID)
		if err != nil {
			t.Fatalf("GetTransaction() returned unexpected error: %v", err)
		}
		if !stored.Quantity.Equal(tx.Quantity) {
			t.Errorf("Expected quantity to stay %s, got %s", tx.Quantity, stored.Quantity)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		_, err := svc.UpdateTransaction(ctx, "user-1", testutil.MakeID(), request.UpdateTransactionRequest{})
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
	})
}

func TestTransactionService_DeleteTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes the transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSQLiteTransactionRepository(db)
		svc := testutil.NewTestTransactionService(t, db)
		tx := testutil.NewTransaction("AAPL").Build(t, repo, "user-1")

		if err := svc.DeleteTransaction(ctx, "user-1", tx.ID); err != nil {
			t.Fatalf("DeleteTransaction() returned unexpected error: %v", err)
		}
		if _, err := svc.GetTransaction(ctx, "user-1", tx.ID); !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected transaction to be gone, got %v", err)
		}
	})

	t.Run("deleting a buy that sells depend on is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSQLiteTransactionRepository(db)
		svc := testutil.NewTestTransactionService(t, db)
		buy := testutil.NewTransaction("AAPL").Build(t, repo, "user-1")
		testutil.NewTransaction("AAPL").Sell().WithQuantity("5").WithDate(testutil.Day(1)).Build(t, repo, "user-1")

		err := svc.DeleteTransaction(ctx, "user-1", buy.ID)
		if !errors.Is(err, apperrors.ErrInsufficientShares) {
			t.Errorf("Expected ErrInsufficientShares, got %v", err)
		}
		stored, _ := svc.ListTransactions(ctx, "user-1", "")
		if len(stored) != 2 {
			t.Errorf("Expected nothing to be deleted, got %d transactions", len(stored))
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		if err := svc.DeleteTransaction(ctx, "user-1", testutil.MakeID()); !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
	})
}

func TestTransactionService_ValidateSell(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewSQLiteTransactionRepository(db)
	svc := testutil.NewTestTransactionService(t, db)
	testutil.NewTransaction("AAPL").Build(t, repo, "user-1")
	sell := testutil.NewTransaction("AAPL").Sell().WithQuantity("4").WithDate(testutil.Day(1)).Build(t, repo, "user-1")

	tests := []struct {
		name      string
		req       request.ValidateSellRequest
		wantValid bool
		available string
	}{
		{
			name:      "within holdings",
			req:       request.ValidateSellRequest{Symbol: "aapl", Quantity: decimal.NewFromInt(6)},
			wantValid: true,
			available: "6",
		},
		{
			name:      "exceeds holdings",
			req:       request.ValidateSellRequest{Symbol: "AAPL", Quantity: decimal.NewFromInt(7)},
			wantValid: false,
			available: "6",
		},
		{
			name:      "excluded sell frees its shares",
			req:       request.ValidateSellRequest{Symbol: "AAPL", Quantity: decimal.NewFromInt(10), ExcludeTransactionID: sell.ID},
			wantValid: true,
			available: "10",
		},
		{
			name:      "quantity rounding to zero",
			req:       request.ValidateSellRequest{Symbol: "AAPL", Quantity: decimal.RequireFromString("0.000004")},
			wantValid: false,
			available: "6",
		},
		{
			name:      "rounding to zero with nothing held",
			req:       request.ValidateSellRequest{Symbol: "MSFT", Quantity: decimal.RequireFromString("0.000004")},
			wantValid: false,
			available: "0",
		},
		{
			name:      "never traded",
			req:       request.ValidateSellRequest{Symbol: "MSFT", Quantity: decimal.NewFromInt(1)},
			wantValid: false,
			available: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ValidateSell(ctx, "user-1", tt.req)
			if err != nil {
				t.Fatalf("ValidateSell() returned unexpected error: %v", err)
			}
			if got.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v (%s)", got.Valid, tt.wantValid, got.Message)
			}
			if got.AvailableShares.String() != tt.available {
				t.Errorf("AvailableShares = %s, want %s", got.AvailableShares, tt.available)
			}
		})
	}
}
