// Package calculation implements FIFO lot accounting for stock positions.
// Everything in this package is pure: no I/O, no shared state, and inputs
// owned by the caller are never modified, so all functions are safe for
// concurrent use.
package calculation

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// QuantityPrecision is the number of decimal places share quantities are
// rounded to before any arithmetic.
const QuantityPrecision = 5

// RoundQuantity rounds a share quantity to QuantityPrecision decimal places.
func RoundQuantity(q decimal.Decimal) decimal.Decimal {
	return q.Round(QuantityPrecision)
}

// lot is the private working state of one BUY during the FIFO walk.
type lot struct {
	remaining    decimal.Decimal
	costPerShare decimal.Decimal
}

// Calculator computes positions. The zero value is not usable; use
// NewCalculator or the package-level functions.
type Calculator struct {
	now func() time.Time
}

// NewCalculator returns a Calculator stamping positions with the given clock.
// A nil clock means time.Now.
func NewCalculator(now func() time.Time) *Calculator {
	if now == nil {
		now = time.Now
	}
	return &Calculator{now: now}
}

var defaultCalculator = NewCalculator(nil)

// CalculatePosition runs the default Calculator. See Calculator.CalculatePosition.
func CalculatePosition(transactions []model.Transaction) (*model.Position, error) {
	return defaultCalculator.CalculatePosition(transactions)
}

// CalculatePosition computes the position for the transactions of a single
// symbol using FIFO lot matching.
//
// The caller groups transactions by symbol; the symbol of the first element
// names the position. Transactions are processed in ascending date order
// (stable, so same-day transactions keep their input order):
//   - BUY: adds its quantity to the shares held, its TotalAmount (fees
//     included) to the invested amount, and opens a lot at PricePerShare.
//   - SELL: consumes the oldest open lots first. The cost of the consumed
//     shares is removed from the invested amount and the realized gain/loss
//     grows by TotalAmount (fees already deducted) minus that cost.
//
// Returns:
//   - nil, nil when transactions is empty (no position).
//   - *apperrors.InsufficientSharesError when a SELL exceeds the shares held
//     at its point in time.
//
// The returned Position.Transactions holds the caller's transactions in
// their original order and with their original quantities.
func (c *Calculator) CalculatePosition(transactions []model.Transaction) (*model.Position, error) {
	if len(transactions) == 0 {
		return nil, nil
	}

	symbol := NormalizeSymbol(transactions[0].Symbol)

	ordered := slices.Clone(transactions)
	slices.SortStableFunc(ordered, func(a, b model.Transaction) int {
		return a.Date.Compare(b.Date)
	})

	var shares, invested, realized decimal.Decimal
	lots := make([]lot, 0, len(ordered))
	head := 0

	for _, t := range ordered {
		quantity := RoundQuantity(t.Quantity)

		switch t.Type {
		case model.TransactionTypeBuy:
			shares = shares.Add(quantity)
			invested = invested.Add(t.TotalAmount)
			lots = append(lots, lot{remaining: quantity, costPerShare: t.PricePerShare})

		case model.TransactionTypeSell:
			if shares.LessThan(quantity) {
				return nil, &apperrors.InsufficientSharesError{
					Symbol:    symbol,
					Requested: quantity,
					Available: shares,
				}
			}

			toSell := quantity
			costBasis := decimal.Zero
			for toSell.IsPositive() && head < len(lots) {
				current := &lots[head]
				consumed := decimal.Min(toSell, current.remaining)
				costBasis = costBasis.Add(consumed.Mul(current.costPerShare))
				current.remaining = current.remaining.Sub(consumed)
				toSell = toSell.Sub(consumed)
				if !current.remaining.IsPositive() {
					head++
				}
			}

			shares = shares.Sub(quantity)
			invested = invested.Sub(costBasis)
			realized = realized.Add(t.TotalAmount.Sub(costBasis))

		default:
			return nil, fmt.Errorf("transaction %s: unknown transaction type %q", t.ID, t.Type)
		}
	}

	average := decimal.Zero
	if shares.IsPositive() {
		average = invested.Div(shares)
	}

	return &model.Position{
		Symbol:              symbol,
		TotalShares:         shares,
		AverageCostPerShare: average,
		TotalInvested:       invested,
		RealizedGainLoss:    realized,
		Transactions:        slices.Clone(transactions),
		LastUpdated:         c.now(),
	}, nil
}

// ApplyPrice returns a copy of pos valued at the given current price.
func ApplyPrice(pos model.Position, price decimal.Decimal) model.Position {
	currentPrice := price
	value := pos.TotalShares.Mul(price)
	unrealized := value.Sub(pos.TotalInvested)

	pos.CurrentPrice = &currentPrice
	pos.CurrentValue = &value
	pos.UnrealizedGainLoss = &unrealized
	return pos
}
