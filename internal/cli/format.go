package cli

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// formatMoney formats amount in the given ISO currency, rounded to the
// currency's minor unit.
func formatMoney(amount decimal.Decimal, currency string) string {
	// money.New never returns a nil currency, unknown codes included.
	cur := *money.New(0, currency).Currency()
	minor := amount.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// formatOptionalMoney formats amount or "-" when it is unknown.
func formatOptionalMoney(amount *decimal.Decimal, currency string) string {
	if amount == nil {
		return "-"
	}
	return formatMoney(*amount, currency)
}

// positionsMarkdown renders positions and portfolio totals as a markdown table.
func positionsMarkdown(portfolio model.Portfolio, positions []model.Position, currency string) string {
	var b strings.Builder

	b.WriteString("# Positions\n\n")
	if len(positions) == 0 {
		b.WriteString("No positions.\n")
		return b.String()
	}

	b.WriteString("| Symbol | Shares | Avg cost | Invested | Value | Realized | Unrealized |\n")
	b.WriteString("|---|---:|---:|---:|---:|---:|---:|\n")
	for _, p := range positions {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			p.Symbol,
			p.TotalShares.String(),
			formatMoney(p.AverageCostPerShare, currency),
			formatMoney(p.TotalInvested, currency),
			formatOptionalMoney(p.CurrentValue, currency),
			formatMoney(p.RealizedGainLoss, currency),
			formatOptionalMoney(p.UnrealizedGainLoss, currency),
		)
	}

	fmt.Fprintf(&b, "| **Total** | | | %s | %s | %s | %s |\n",
		formatMoney(portfolio.TotalInvested, currency),
		formatMoney(portfolio.TotalCurrentValue, currency),
		formatMoney(portfolio.TotalRealizedGainLoss, currency),
		formatMoney(portfolio.TotalUnrealizedGainLoss, currency),
	)
	fmt.Fprintf(&b, "\nTotal gain/loss: **%s**\n", formatMoney(portfolio.TotalGainLoss, currency))

	return b.String()
}

// renderMarkdown renders md for a terminal.
func renderMarkdown(md string) (string, error) {
	return glamour.Render(md, "dark")
}
