package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository"
)

// snapshotWorkers bounds the number of users recorded concurrently.
const snapshotWorkers = 4

// SnapshotService records daily portfolio totals for the history view.
type SnapshotService struct {
	selector         *repository.Selector
	snapshotRepo     *repository.SnapshotRepository
	portfolioService *PortfolioService
	logger           *zap.Logger
	now              func() time.Time
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(
	selector *repository.Selector,
	snapshotRepo *repository.SnapshotRepository,
	portfolioService *PortfolioService,
	logger *zap.Logger,
) *SnapshotService {
	return &SnapshotService{
		selector:         selector,
		snapshotRepo:     snapshotRepo,
		portfolioService: portfolioService,
		logger:           logger,
		now:              time.Now,
	}
}

// Record calculates the current portfolio of a user and stores its totals
// under date. An existing snapshot for that date is replaced.
func (s *SnapshotService) Record(ctx context.Context, userID string, date time.Time) (model.PortfolioSnapshot, error) {
	portfolio, err := s.portfolioService.GetPortfolio(ctx, userID)
	if err != nil {
		return model.PortfolioSnapshot{}, fmt.Errorf("failed to calculate portfolio for %s: %w", userID, err)
	}

	snapshot := model.PortfolioSnapshot{
		ID:                 uuid.New().String(),
		UserID:             userID,
		Date:               date,
		Invested:           portfolio.TotalInvested,
		CurrentValue:       portfolio.TotalCurrentValue,
		RealizedGainLoss:   portfolio.TotalRealizedGainLoss,
		UnrealizedGainLoss: portfolio.TotalUnrealizedGainLoss,
		TotalGainLoss:      portfolio.TotalGainLoss,
		OpenPositions:      len(portfolio.Positions),
		CalculatedAt:       s.now().UTC(),
	}
	if err := s.snapshotRepo.UpsertSnapshot(ctx, snapshot); err != nil {
		return model.PortfolioSnapshot{}, err
	}
	return snapshot, nil
}

// RecordAll records a snapshot for every known user. A failing user does not
// stop the others; the first error is returned after all have run.
func (s *SnapshotService) RecordAll(ctx context.Context, date time.Time) error {
	users, err := s.selector.Users(ctx)
	if err != nil {
		return err
	}

	var g errgroup.Group
	g.SetLimit(snapshotWorkers)
	for _, userID := range users {
		g.Go(func() error {
			if _, err := s.Record(ctx, userID, date); err != nil {
				s.logger.Error("failed to record snapshot", zap.String("user", userID), zap.Error(err))
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.logger.Info("portfolio snapshots recorded",
		zap.Int("users", len(users)),
		zap.String("date", date.Format("2006-01-02")),
	)
	return nil
}

// History returns the recorded snapshots of a user between start and end, inclusive.
func (s *SnapshotService) History(ctx context.Context, userID string, start, end time.Time) ([]model.PortfolioSnapshot, error) {
	return s.snapshotRepo.GetHistory(ctx, userID, start, end)
}

// Start schedules RecordAll on a standard five-field cron schedule and
// returns the running scheduler. The caller stops it on shutdown.
func (s *SnapshotService) Start(schedule string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		today := s.now().UTC().Truncate(24 * time.Hour)
		if err := s.RecordAll(context.Background(), today); err != nil {
			s.logger.Error("scheduled snapshot failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot schedule %q: %w", schedule, err)
	}
	c.Start()

	s.logger.Info("snapshot scheduler started", zap.String("schedule", schedule))
	return c, nil
}
