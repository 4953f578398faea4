package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/calculation"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository"
)

// PriceService handles manually entered current prices.
type PriceService struct {
	priceRepo *repository.PriceRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewPriceService creates a new PriceService.
func NewPriceService(priceRepo *repository.PriceRepository, logger *zap.Logger) *PriceService {
	return &PriceService{
		priceRepo: priceRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// SetPrice stores the price of a symbol. The request must already be
// validated; an empty date means today.
func (s *PriceService) SetPrice(ctx context.Context, symbol string, req request.SetPriceRequest) (model.Price, error) {
	now := s.now().UTC()

	date := now.Truncate(24 * time.Hour)
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return model.Price{}, err
		}
		date = parsed
	}

	price := model.Price{
		Symbol:    calculation.NormalizeSymbol(symbol),
		Price:     req.Price,
		Date:      date,
		UpdatedAt: now,
	}
	if err := s.priceRepo.UpsertPrice(ctx, price); err != nil {
		return model.Price{}, err
	}

	s.logger.Info("price updated", zap.String("symbol", price.Symbol), zap.Stringer("price", price.Price))
	return price, nil
}

// ListPrices returns every stored price ordered by symbol.
func (s *PriceService) ListPrices(ctx context.Context) ([]model.Price, error) {
	return s.priceRepo.ListPrices(ctx)
}
