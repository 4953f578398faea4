package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/cli"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/config"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// stdout is reserved for command output.
	logger, err := logging.NewWithConsole("warn", cfg.Log.File, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	for _, c := range cli.Commands(cfg, logger, os.Stdout) {
		commander.Register(c, "")
	}

	flag.Parse()
	status := commander.Execute(context.Background())
	_ = logger.Sync()
	os.Exit(int(status))
}
