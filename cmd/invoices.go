package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/contracts"
	"github.com/etnz/contracts/renderer"
	"github.com/google/subcommands"
)

type invoicesCmd struct{}

func (*invoicesCmd) Name() string     { return "faturas" }
func (*invoicesCmd) Synopsis() string { return "list the invoices of a contract from the registry" }
func (*invoicesCmd) Usage() string {
	return `painel faturas <id or number>

  Fetches the invoices of a contract of the snapshot from the registry.
`
}

func (c *invoicesCmd) SetFlags(f *flag.FlagSet) {}

func (c *invoicesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected one contract id or number")
		return subcommands.ExitUsageError
	}
	snap, err := DecodeSnapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	raw, err := snap.Find(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if raw.Links.Invoices == "" {
		fmt.Fprintf(os.Stderr, "Error: contract %s has no invoices link\n", raw.Number)
		return subcommands.ExitFailure
	}

	logger := Logger()
	defer logger.Sync()
	invoices, err := contracts.NewRegistry(*registryURL, logger).Invoices(ctx, raw.Links.Invoices)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching invoices: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.InvoicesMarkdown(raw.Number, invoices))
	return subcommands.ExitSuccess
}
