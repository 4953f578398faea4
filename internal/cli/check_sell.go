package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/config"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/validation"
)

// checkSellCmd holds the flags for the 'check-sell' subcommand.
type checkSellCmd struct {
	cfg    *config.Config
	logger *zap.Logger
	out    io.Writer

	user     string
	symbol   string
	quantity string
	exclude  string
}

func (*checkSellCmd) Name() string     { return "check-sell" }
func (*checkSellCmd) Synopsis() string { return "check whether a sell is possible" }
func (*checkSellCmd) Usage() string {
	return `ledger check-sell -symbol <ticker> -quantity <shares> [-user <id>] [-exclude <transaction id>]

  Reports whether the given number of shares can be sold. Exits with status 1
  when the sell would exceed the shares held.
`
}

func (c *checkSellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", model.LocalUserID, "user who sells")
	f.StringVar(&c.symbol, "symbol", "", "ticker symbol")
	f.StringVar(&c.quantity, "quantity", "", "number of shares to sell")
	f.StringVar(&c.exclude, "exclude", "", "ID of the sell being edited")
}

func (c *checkSellCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	quantity, err := decimal.NewFromString(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quantity: %v\n", err)
		return subcommands.ExitUsageError
	}

	req := request.ValidateSellRequest{
		Symbol:               c.symbol,
		Quantity:             quantity,
		ExcludeTransactionID: c.exclude,
	}
	if err := validation.ValidateSellRequest(req); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid arguments: %v\n", err)
		return subcommands.ExitUsageError
	}

	env, err := openEnvironment(c.cfg, c.logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening stores: %v\n", err)
		return subcommands.ExitFailure
	}
	defer env.Close()

	result, err := env.transactions.ValidateSell(ctx, c.user, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading transactions: %v\n", err)
		return subcommands.ExitFailure
	}

	if !result.Valid {
		fmt.Fprintln(c.out, result.Message)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(c.out, "OK: %s shares available.\n", result.AvailableShares)
	return subcommands.ExitSuccess
}
