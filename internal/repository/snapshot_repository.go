package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// SnapshotRepository provides data access methods for the portfolio_snapshot table.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new repository instance.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// UpsertSnapshot stores a snapshot, replacing an existing one for the same
// user and date.
func (r *SnapshotRepository) UpsertSnapshot(ctx context.Context, s model.PortfolioSnapshot) error {
	query := `
		INSERT INTO portfolio_snapshot (
			id, user_id, date, invested, current_value, realized_gain_loss,
			unrealized_gain_loss, total_gain_loss, open_positions, calculated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			invested = excluded.invested,
			current_value = excluded.current_value,
			realized_gain_loss = excluded.realized_gain_loss,
			unrealized_gain_loss = excluded.unrealized_gain_loss,
			total_gain_loss = excluded.total_gain_loss,
			open_positions = excluded.open_positions,
			calculated_at = excluded.calculated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		formatDate(s.Date),
		s.Invested,
		s.CurrentValue,
		s.RealizedGainLoss,
		s.UnrealizedGainLoss,
		s.TotalGainLoss,
		s.OpenPositions,
		s.CalculatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert portfolio snapshot: %w", err)
	}
	return nil
}

// GetHistory retrieves the snapshots of a user between startDate and endDate
// (both inclusive), oldest first.
func (r *SnapshotRepository) GetHistory(ctx context.Context, userID string, startDate, endDate time.Time) ([]model.PortfolioSnapshot, error) {
	query := `
		SELECT id, user_id, date, invested, current_value, realized_gain_loss,
		       unrealized_gain_loss, total_gain_loss, open_positions, calculated_at
		FROM portfolio_snapshot
		WHERE user_id = ?
		AND date >= ?
		AND date <= ?
		ORDER BY date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, formatDate(startDate), formatDate(endDate))
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio_snapshot: %w", err)
	}
	defer rows.Close()

	snapshots := []model.PortfolioSnapshot{}
	for rows.Next() {
		var s model.PortfolioSnapshot
		var dateStr, calculatedAtStr string

		err := rows.Scan(
			&s.ID,
			&s.UserID,
			&dateStr,
			&s.Invested,
			&s.CurrentValue,
			&s.RealizedGainLoss,
			&s.UnrealizedGainLoss,
			&s.TotalGainLoss,
			&s.OpenPositions,
			&calculatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		s.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		s.CalculatedAt, err = ParseTime(calculatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse calculated_at: %w", err)
		}

		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return snapshots, nil
}
