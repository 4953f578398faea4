package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/calculation"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository"
)

// TransactionService handles transaction business logic operations.
// Every mutation is checked against the FIFO rules before it is saved, so
// stored transactions can always be turned into positions.
type TransactionService struct {
	selector *repository.Selector
	logger   *zap.Logger
	now      func() time.Time
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(selector *repository.Selector, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		selector: selector,
		logger:   logger,
		now:      time.Now,
	}
}

// ListTransactions retrieves all transactions of a user in stored order.
// When symbol is not empty only transactions of that symbol are returned.
func (s *TransactionService) ListTransactions(ctx context.Context, userID, symbol string) ([]model.Transaction, error) {
	transactions, err := s.selector.For(userID).Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if symbol == "" {
		return transactions, nil
	}

	symbol = calculation.NormalizeSymbol(symbol)
	filtered := []model.Transaction{}
	for _, t := range transactions {
		if calculation.NormalizeSymbol(t.Symbol) == symbol {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// GetTransaction retrieves a single transaction by its ID.
// Returns ErrTransactionNotFound if it does not exist.
func (s *TransactionService) GetTransaction(ctx context.Context, userID, transactionID string) (model.Transaction, error) {
	transactions, err := s.selector.For(userID).Load(ctx, userID)
	if err != nil {
		return model.Transaction{}, err
	}
	idx := indexOf(transactions, transactionID)
	if idx < 0 {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	return transactions[idx], nil
}

// CreateTransaction records a new transaction. The request must already be
// validated. A quantity that rounds to zero returns
// apperrors.ErrInvalidQuantity. A SELL exceeding the shares held returns an
// *apperrors.InsufficientSharesError. In both cases nothing is saved.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, req request.CreateTransactionRequest) (*model.Transaction, error) {
	typ, err := model.ParseTransactionType(req.Type)
	if err != nil {
		return nil, err
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	quantity := calculation.RoundQuantity(req.Quantity)
	if !quantity.IsPositive() {
		return nil, apperrors.ErrInvalidQuantity
	}

	transaction := model.Transaction{
		ID:            uuid.New().String(),
		Symbol:        calculation.NormalizeSymbol(req.Symbol),
		Type:          typ,
		Quantity:      quantity,
		PricePerShare: req.PricePerShare,
		Date:          date,
		Fees:          req.Fees,
		Notes:         req.Notes,
		Tags:          req.Tags,
		CreatedAt:     s.now().UTC(),
	}
	transaction.TotalAmount = totalAmount(transaction)

	repo := s.selector.For(userID)
	existing, err := repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := checkSell(transaction, existing); err != nil {
		return nil, err
	}

	updated := append(slices.Clone(existing), transaction)
	if err := checkPositions(updated, transaction.Symbol); err != nil {
		return nil, err
	}

	if err := repo.Save(ctx, userID, updated); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.logger.Info("transaction created",
		zap.String("user", userID),
		zap.String("id", transaction.ID),
		zap.String("symbol", transaction.Symbol),
		zap.String("type", string(transaction.Type)),
		zap.Stringer("quantity", transaction.Quantity),
	)

	return &transaction, nil
}

// UpdateTransaction applies the provided fields to an existing transaction.
// The edited transaction is excluded when checking a SELL against the
// shares held, and positions of both the old and the new symbol are
// rechecked before saving.
func (s *TransactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req request.UpdateTransactionRequest) (*model.Transaction, error) {
	repo := s.selector.For(userID)
	existing, err := repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := indexOf(existing, transactionID)
	if idx < 0 {
		return nil, apperrors.ErrTransactionNotFound
	}
	original := existing[idx]
	transaction := original

	if req.Symbol != nil {
		transaction.Symbol = calculation.NormalizeSymbol(*req.Symbol)
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, err
		}
		transaction.Date = date
	}
	if req.Type != nil {
		typ, err := model.ParseTransactionType(*req.Type)
		if err != nil {
			return nil, err
		}
		transaction.Type = typ
	}
	if req.Quantity != nil {
		quantity := calculation.RoundQuantity(*req.Quantity)
		if !quantity.IsPositive() {
			return nil, apperrors.ErrInvalidQuantity
		}
		transaction.Quantity = quantity
	}
	if req.PricePerShare != nil {
		transaction.PricePerShare = *req.PricePerShare
	}
	if req.Fees != nil {
		transaction.Fees = *req.Fees
	}
	if req.Notes != nil {
		transaction.Notes = *req.Notes
	}
	if req.Tags != nil {
		transaction.Tags = *req.Tags
	}
	transaction.TotalAmount = totalAmount(transaction)

	others := slices.Delete(slices.Clone(existing), idx, idx+1)
	if err := checkSell(transaction, others); err != nil {
		return nil, err
	}

	updated := slices.Clone(existing)
	updated[idx] = transaction
	if err := checkPositions(updated, original.Symbol, transaction.Symbol); err != nil {
		return nil, err
	}

	if err := repo.Save(ctx, userID, updated); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	s.logger.Info("transaction updated",
		zap.String("user", userID),
		zap.String("id", transaction.ID),
		zap.String("symbol", transaction.Symbol),
	)

	return &transaction, nil
}

// DeleteTransaction removes a transaction. Deleting a BUY that later SELLs
// depend on returns an *apperrors.InsufficientSharesError.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	repo := s.selector.For(userID)
	existing, err := repo.Load(ctx, userID)
	if err != nil {
		return err
	}

	idx := indexOf(existing, transactionID)
	if idx < 0 {
		return apperrors.ErrTransactionNotFound
	}
	symbol := existing[idx].Symbol

	updated := slices.Delete(slices.Clone(existing), idx, idx+1)
	if err := checkPositions(updated, symbol); err != nil {
		return err
	}

	if err := repo.Save(ctx, userID, updated); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.logger.Info("transaction deleted",
		zap.String("user", userID),
		zap.String("id", transactionID),
		zap.String("symbol", symbol),
	)
	return nil
}

// ValidateSell reports whether a SELL is possible for the user's current
// transactions. The transaction named by req.ExcludeTransactionID (the one
// being edited) is left out.
func (s *TransactionService) ValidateSell(ctx context.Context, userID string, req request.ValidateSellRequest) (model.SellValidation, error) {
	transactions, err := s.selector.For(userID).Load(ctx, userID)
	if err != nil {
		return model.SellValidation{}, err
	}
	if req.ExcludeTransactionID != "" {
		if idx := indexOf(transactions, req.ExcludeTransactionID); idx >= 0 {
			transactions = slices.Delete(slices.Clone(transactions), idx, idx+1)
		}
	}
	return calculation.ValidateSell(req.Symbol, req.Quantity, transactions), nil
}

// totalAmount is quantity * price, plus fees for a BUY and minus fees for a SELL.
func totalAmount(t model.Transaction) decimal.Decimal {
	gross := t.Quantity.Mul(t.PricePerShare)
	if t.IsSell() {
		return gross.Sub(t.Fees)
	}
	return gross.Add(t.Fees)
}

// checkSell rejects a SELL exceeding the shares held in existing.
func checkSell(t model.Transaction, existing []model.Transaction) error {
	if !t.IsSell() {
		return nil
	}
	result := calculation.ValidateSell(t.Symbol, t.Quantity, existing)
	if !result.Valid {
		return &apperrors.InsufficientSharesError{
			Symbol:    t.Symbol,
			Requested: t.Quantity,
			Available: result.AvailableShares,
		}
	}
	return nil
}

// checkPositions recalculates the positions of the given symbols. It catches
// sells that become impossible in chronological order, e.g. after a
// backdated SELL or a deleted BUY.
func checkPositions(transactions []model.Transaction, symbols ...string) error {
	groups := calculation.GroupBySymbol(transactions)
	for _, symbol := range symbols {
		if _, err := calculation.CalculatePosition(groups[calculation.NormalizeSymbol(symbol)]); err != nil {
			return err
		}
	}
	return nil
}

func indexOf(transactions []model.Transaction, id string) int {
	return slices.IndexFunc(transactions, func(t model.Transaction) bool { return t.ID == id })
}
