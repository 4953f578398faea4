// Package cli implements the ledger command line tool.
package cli

import (
	"io"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/config"
)

// Commands returns every ledger subcommand. Output is written to out.
func Commands(cfg *config.Config, logger *zap.Logger, out io.Writer) []subcommands.Command {
	return []subcommands.Command{
		&positionsCmd{cfg: cfg, logger: logger, out: out},
		&checkSellCmd{cfg: cfg, logger: logger, out: out},
		&snapshotCmd{cfg: cfg, logger: logger, out: out},
	}
}
