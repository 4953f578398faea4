package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/calculation"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository"
)

// PortfolioService handles portfolio-related business logic operations.
// Positions are always recomputed from the user's transactions and valued
// with the stored prices; nothing derived is persisted.
type PortfolioService struct {
	selector  *repository.Selector
	priceRepo *repository.PriceRepository
	logger    *zap.Logger
}

// NewPortfolioService creates a new PortfolioService with the provided repository dependencies.
func NewPortfolioService(selector *repository.Selector, priceRepo *repository.PriceRepository, logger *zap.Logger) *PortfolioService {
	return &PortfolioService{
		selector:  selector,
		priceRepo: priceRepo,
		logger:    logger,
	}
}

// GetPortfolio returns the aggregated portfolio of a user.
// Only open positions are listed, but realized results of closed positions
// are included in the totals.
func (s *PortfolioService) GetPortfolio(ctx context.Context, userID string) (model.Portfolio, error) {
	portfolio, _, err := s.build(ctx, userID)
	return portfolio, err
}

// GetPositions returns the positions of a user sorted by symbol.
// Closed positions are only returned when includeClosed is set.
func (s *PortfolioService) GetPositions(ctx context.Context, userID string, includeClosed bool) ([]model.Position, error) {
	_, positions, err := s.build(ctx, userID)
	if err != nil {
		return nil, err
	}
	if includeClosed {
		return positions, nil
	}

	open := []model.Position{}
	for _, p := range positions {
		if p.IsOpen() {
			open = append(open, p)
		}
	}
	return open, nil
}

// GetPosition returns the position of a single symbol, open or closed.
// Returns ErrPositionNotFound if the user never traded the symbol.
func (s *PortfolioService) GetPosition(ctx context.Context, userID, symbol string) (model.Position, error) {
	symbol = calculation.NormalizeSymbol(symbol)

	transactions, err := s.selector.For(userID).Load(ctx, userID)
	if err != nil {
		return model.Position{}, err
	}
	group := calculation.GroupBySymbol(transactions)[symbol]

	pos, err := calculation.CalculatePosition(group)
	if err != nil {
		return model.Position{}, err
	}
	if pos == nil {
		return model.Position{}, apperrors.ErrPositionNotFound
	}

	price, err := s.priceRepo.GetPrice(ctx, symbol)
	switch {
	case errors.Is(err, apperrors.ErrPriceNotFound):
		return *pos, nil
	case err != nil:
		return model.Position{}, err
	}
	return calculation.ApplyPrice(*pos, price.Price), nil
}

func (s *PortfolioService) build(ctx context.Context, userID string) (model.Portfolio, []model.Position, error) {
	transactions, err := s.selector.For(userID).Load(ctx, userID)
	if err != nil {
		return model.Portfolio{}, nil, err
	}

	prices, err := s.priceRepo.PriceMap(ctx)
	if err != nil {
		return model.Portfolio{}, nil, err
	}

	portfolio, positions, err := calculation.BuildPortfolio(transactions, prices)
	if err != nil {
		s.logger.Error("failed to build portfolio", zap.String("user", userID), zap.Error(err))
		return model.Portfolio{}, nil, err
	}
	return portfolio, positions, nil
}

