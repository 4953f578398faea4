package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// PriceRepository provides data access methods for the price table.
// Prices are entered by users; fetching market data is not done here.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// UpsertPrice stores the price of a symbol, replacing any earlier one.
func (r *PriceRepository) UpsertPrice(ctx context.Context, p model.Price) error {
	query := `
		INSERT INTO price (symbol, price, date, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
			price = excluded.price,
			date = excluded.date,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		p.Symbol,
		p.Price,
		formatDate(p.Date),
		p.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert price: %w", err)
	}
	return nil
}

// GetPrice returns the price of a symbol or ErrPriceNotFound.
func (r *PriceRepository) GetPrice(ctx context.Context, symbol string) (model.Price, error) {
	query := `SELECT symbol, price, date, updated_at FROM price WHERE symbol = ?`

	p, err := scanPrice(r.db.QueryRowContext(ctx, query, symbol))
	if err == sql.ErrNoRows {
		return model.Price{}, apperrors.ErrPriceNotFound
	}
	if err != nil {
		return model.Price{}, err
	}
	return p, nil
}

// ListPrices returns all stored prices ordered by symbol.
func (r *PriceRepository) ListPrices(ctx context.Context) ([]model.Price, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT symbol, price, date, updated_at FROM price ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("failed to query price table: %w", err)
	}
	defer rows.Close()

	prices := []model.Price{}
	for rows.Next() {
		p, err := scanPrice(rows)
		if err != nil {
			return nil, err
		}
		prices = append(prices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price table: %w", err)
	}
	return prices, nil
}

// PriceMap returns all stored prices keyed by symbol.
func (r *PriceRepository) PriceMap(ctx context.Context) (map[string]decimal.Decimal, error) {
	prices, err := r.ListPrices(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]decimal.Decimal, len(prices))
	for _, p := range prices {
		out[p.Symbol] = p.Price
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPrice(row rowScanner) (model.Price, error) {
	var p model.Price
	var dateStr, updatedAtStr string

	if err := row.Scan(&p.Symbol, &p.Price, &dateStr, &updatedAtStr); err != nil {
		if err == sql.ErrNoRows {
			return p, err
		}
		return p, fmt.Errorf("failed to scan price: %w", err)
	}

	var err error
	if p.Date, err = ParseTime(dateStr); err != nil {
		return p, err
	}
	if p.UpdatedAt, err = ParseTime(updatedAtStr); err != nil {
		return p, err
	}
	return p, nil
}
