package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/config"
)

// snapshotCmd holds the flags for the 'snapshot' subcommand.
type snapshotCmd struct {
	cfg    *config.Config
	logger *zap.Logger
	out    io.Writer

	user string
	date string
}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "record today's portfolio totals" }
func (*snapshotCmd) Usage() string {
	return `ledger snapshot [-user <id>] [-d <YYYY-MM-DD>]

  Records portfolio totals for the history view. Without -user a snapshot is
  recorded for every known user.
`
}

func (c *snapshotCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "record only this user")
	f.StringVar(&c.date, "d", time.Now().UTC().Format("2006-01-02"), "snapshot date")
}

func (c *snapshotCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	date, err := time.Parse("2006-01-02", c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	env, err := openEnvironment(c.cfg, c.logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening stores: %v\n", err)
		return subcommands.ExitFailure
	}
	defer env.Close()

	if c.user == "" {
		if err := env.snapshots.RecordAll(ctx, date); err != nil {
			fmt.Fprintf(os.Stderr, "Error recording snapshots: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(c.out, "Recorded snapshots for %s.\n", c.date)
		return subcommands.ExitSuccess
	}

	snapshot, err := env.snapshots.Record(ctx, c.user, date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording snapshot: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(c.out, "Recorded snapshot for %s on %s: invested %s, gain/loss %s.\n",
		snapshot.UserID,
		c.date,
		formatMoney(snapshot.Invested, c.cfg.Display.Currency),
		formatMoney(snapshot.TotalGainLoss, c.cfg.Display.Currency),
	)
	return subcommands.ExitSuccess
}
