package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/contracts"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

type fetchCmd struct {
	limit int
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "collects the contracts of a management unit from the registry" }
func (*fetchCmd) Usage() string {
	return `painel -ug <code> fetch [-limit <n>]

Fetches the contracts of the management unit (UG) from the procurement
registry, with the history and the commitments of each contract, and
saves them in the data directory (contratos.json, historicos.json,
empenhos.json).

Responses are cached on disk for the day and calls reaching the registry
are paced. A failing history or commitments link is logged and saved as
an empty list.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "limit", 0, "Collect only the first n contracts (0 for all)")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if *ug == "" {
		fmt.Fprintf(os.Stderr, "Error: missing management unit, use -ug or %s\n", EnvUG)
		return subcommands.ExitUsageError
	}
	logger := Logger()
	defer logger.Sync()

	registry := contracts.NewRegistry(*registryURL, logger)
	snap, err := registry.Collect(ctx, *ug, c.limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error collecting contracts of UG %s: %v\n", *ug, err)
		return subcommands.ExitFailure
	}
	if err := contracts.SaveSnapshot(*dataDir, snap); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving snapshot: %v\n", err)
		return subcommands.ExitFailure
	}
	logger.Info("snapshot saved", zap.String("dir", *dataDir), zap.Int("contracts", len(snap.Contracts)))
	fmt.Printf("Collected %d contracts into %s\n", len(snap.Contracts), *dataDir)
	return subcommands.ExitSuccess
}
