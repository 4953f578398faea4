package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/config"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// positionsCmd holds the flags for the 'positions' subcommand.
type positionsCmd struct {
	cfg    *config.Config
	logger *zap.Logger
	out    io.Writer

	user          string
	render        bool
	includeClosed bool
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "display current positions and portfolio totals" }
func (*positionsCmd) Usage() string {
	return `ledger positions [-user <id>] [-closed] [-render]

  Recalculates every position from the stored transactions and prints them
  as a markdown table with amounts in DISPLAY_CURRENCY.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", model.LocalUserID, "user whose positions are shown")
	f.BoolVar(&c.includeClosed, "closed", false, "include closed positions")
	f.BoolVar(&c.render, "render", false, "render the table for the terminal")
}

func (c *positionsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	env, err := openEnvironment(c.cfg, c.logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening stores: %v\n", err)
		return subcommands.ExitFailure
	}
	defer env.Close()

	portfolio, err := env.portfolio.GetPortfolio(ctx, c.user)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error calculating portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	positions, err := env.portfolio.GetPositions(ctx, c.user, c.includeClosed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error calculating positions: %v\n", err)
		return subcommands.ExitFailure
	}

	md := positionsMarkdown(portfolio, positions, c.cfg.Display.Currency)
	if c.render {
		if md, err = renderMarkdown(md); err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering markdown: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	fmt.Fprint(c.out, md)
	return subcommands.ExitSuccess
}
