// Package repository provides persistence for transactions, prices and
// portfolio snapshots.
package repository

import (
	"context"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// TransactionRepository stores a user's full transaction list.
//
// Save replaces the stored list with the given one (single writer, last
// write wins). Load returns transactions in the order they were saved,
// which is the tie-break order for transactions sharing a date.
type TransactionRepository interface {
	Load(ctx context.Context, userID string) ([]model.Transaction, error)
	Save(ctx context.Context, userID string, transactions []model.Transaction) error
	// Users lists every user with stored transactions.
	Users(ctx context.Context) ([]string, error)
}
