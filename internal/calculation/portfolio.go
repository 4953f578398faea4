package calculation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// NormalizeSymbol returns the canonical (trimmed, upper-case) form of a ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// GroupBySymbol groups transactions by normalized symbol, keeping input order
// within each group.
func GroupBySymbol(transactions []model.Transaction) map[string][]model.Transaction {
	groups := make(map[string][]model.Transaction)
	for _, t := range transactions {
		symbol := NormalizeSymbol(t.Symbol)
		groups[symbol] = append(groups[symbol], t)
	}
	return groups
}

// Aggregate sums position totals into a portfolio.
// Every position contributes to the totals (closed positions still carry
// realized gains), but only positions that hold shares are listed.
// Missing current values and unrealized results count as zero.
func Aggregate(positions []model.Position) model.Portfolio {
	portfolio := model.Portfolio{Positions: []model.Position{}}

	for _, p := range positions {
		portfolio.TotalInvested = portfolio.TotalInvested.Add(p.TotalInvested)
		portfolio.TotalRealizedGainLoss = portfolio.TotalRealizedGainLoss.Add(p.RealizedGainLoss)
		if p.CurrentValue != nil {
			portfolio.TotalCurrentValue = portfolio.TotalCurrentValue.Add(*p.CurrentValue)
		}
		if p.UnrealizedGainLoss != nil {
			portfolio.TotalUnrealizedGainLoss = portfolio.TotalUnrealizedGainLoss.Add(*p.UnrealizedGainLoss)
		}
		if p.IsOpen() {
			portfolio.Positions = append(portfolio.Positions, p)
		}
	}

	portfolio.TotalGainLoss = portfolio.TotalRealizedGainLoss.Add(portfolio.TotalUnrealizedGainLoss)
	return portfolio
}

// BuildPortfolio runs the whole pipeline over a user's transactions: group by
// symbol, calculate each position, value it with prices (keyed by normalized
// symbol; symbols without a price stay unvalued) and aggregate.
//
// The returned positions include closed ones, sorted by symbol.
func BuildPortfolio(transactions []model.Transaction, prices map[string]decimal.Decimal) (model.Portfolio, []model.Position, error) {
	groups := GroupBySymbol(transactions)

	symbols := make([]string, 0, len(groups))
	for symbol := range groups {
		symbols = append(symbols, symbol)
	}
	slices.Sort(symbols)

	positions := make([]model.Position, 0, len(symbols))
	for _, symbol := range symbols {
		pos, err := CalculatePosition(groups[symbol])
		if err != nil {
			return model.Portfolio{}, nil, fmt.Errorf("failed to calculate position %s: %w", symbol, err)
		}
		if pos == nil {
			continue
		}
		if price, ok := prices[symbol]; ok {
			*pos = ApplyPrice(*pos, price)
		}
		positions = append(positions, *pos)
	}

	return Aggregate(positions), positions, nil
}
