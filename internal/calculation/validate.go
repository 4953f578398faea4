package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// ValidateSell checks whether quantity shares of symbol can be sold given the
// transactions already on file. Transactions for other symbols are ignored.
// When editing an existing SELL the caller must leave that transaction out
// of existing.
//
// Both the available and the proposed quantity are rounded to
// QuantityPrecision before comparison, so selling "everything" is never
// rejected because of representation noise. ValidateSell never modifies
// existing and is cheap enough to run on every keystroke. A quantity that
// rounds to zero is never a valid sell.
func ValidateSell(symbol string, quantity decimal.Decimal, existing []model.Transaction) model.SellValidation {
	symbol = NormalizeSymbol(symbol)

	var held []model.Transaction
	for _, t := range existing {
		if NormalizeSymbol(t.Symbol) == symbol {
			held = append(held, t)
		}
	}

	pos, err := CalculatePosition(held)
	if err != nil {
		return model.SellValidation{
			Valid:           false,
			Message:         fmt.Sprintf("Existing transactions for %s are inconsistent: %v", symbol, err),
			AvailableShares: decimal.Zero,
		}
	}

	available := decimal.Zero
	if pos != nil {
		available = RoundQuantity(pos.TotalShares)
	}
	proposed := RoundQuantity(quantity)

	if !proposed.IsPositive() {
		return model.SellValidation{
			Valid:           false,
			Message:         fmt.Sprintf("Cannot sell %s shares of %s. Quantity must be at least %s.", quantity, symbol, decimal.New(1, -QuantityPrecision)),
			AvailableShares: available,
		}
	}

	if proposed.GreaterThan(available) {
		return model.SellValidation{
			Valid:           false,
			Message:         fmt.Sprintf("Cannot sell %s shares of %s. Only %s shares available.", proposed, symbol, available),
			AvailableShares: available,
		}
	}

	return model.SellValidation{
		Valid:           true,
		AvailableShares: available,
	}
}
