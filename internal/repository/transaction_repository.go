package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// SQLiteTransactionRepository provides data access methods for the transaction table.
// It is the database backend used for authenticated users.
type SQLiteTransactionRepository struct {
	db *sql.DB
}

// NewSQLiteTransactionRepository creates a new SQLiteTransactionRepository with the provided database connection.
func NewSQLiteTransactionRepository(db *sql.DB) *SQLiteTransactionRepository {
	return &SQLiteTransactionRepository{db: db}
}

// Load retrieves all transactions of a user in saved order.
// Returns an empty slice if the user has no transactions.
func (r *SQLiteTransactionRepository) Load(ctx context.Context, userID string) ([]model.Transaction, error) {
	query := `
		SELECT id, symbol, type, quantity, price_per_share, total_amount, fees, date, notes, tags, created_at
		FROM "transaction"
		WHERE user_id = ?
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}

	for rows.Next() {
		var t model.Transaction
		var dateStr string
		var notes, tags, createdAtStr sql.NullString

		err := rows.Scan(
			&t.ID,
			&t.Symbol,
			&t.Type,
			&t.Quantity,
			&t.PricePerShare,
			&t.TotalAmount,
			&t.Fees,
			&dateStr,
			&notes,
			&tags,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}

		t.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}
		if createdAtStr.Valid && createdAtStr.String != "" {
			t.CreatedAt, err = ParseTime(createdAtStr.String)
			if err != nil {
				return nil, err
			}
		}
		t.Notes = notes.String
		if tags.Valid && tags.String != "" {
			if err := json.Unmarshal([]byte(tags.String), &t.Tags); err != nil {
				return nil, fmt.Errorf("failed to decode tags of transaction %s: %w", t.ID, err)
			}
		}

		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// Save replaces all transactions of a user inside a single database transaction.
func (r *SQLiteTransactionRepository) Save(ctx context.Context, userID string, transactions []model.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM "transaction" WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO "transaction" (
			id, user_id, seq, symbol, type, quantity, price_per_share,
			total_amount, fees, date, notes, tags, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range transactions {
		var tags sql.NullString
		if len(t.Tags) > 0 {
			data, err := json.Marshal(t.Tags)
			if err != nil {
				return fmt.Errorf("failed to encode tags of transaction %s: %w", t.ID, err)
			}
			tags = sql.NullString{String: string(data), Valid: true}
		}

		_, err := stmt.ExecContext(ctx,
			t.ID,
			userID,
			i,
			t.Symbol,
			string(t.Type),
			t.Quantity,
			t.PricePerShare,
			t.TotalAmount,
			t.Fees,
			formatDate(t.Date),
			t.Notes,
			tags,
			t.CreatedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Users lists the distinct users that have transactions in the table.
func (r *SQLiteTransactionRepository) Users(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT user_id FROM "transaction" ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var user string
		if err := rows.Scan(&user); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

var _ TransactionRepository = (*SQLiteTransactionRepository)(nil)
