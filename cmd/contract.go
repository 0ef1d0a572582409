package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/contracts"
	"github.com/etnz/contracts/date"
	"github.com/etnz/contracts/renderer"
	"github.com/google/subcommands"
)

type contractCmd struct {
	skipTimeline bool
}

func (*contractCmd) Name() string     { return "contrato" }
func (*contractCmd) Synopsis() string { return "audit the exercise value of a contract" }
func (*contractCmd) Usage() string {
	return `painel [-year <year>] contrato [-no-history] <id or number>

  Displays the data of a contract, the step by step computation of its
  value in the fiscal year, its commitments and its history.
`
}

func (c *contractCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.skipTimeline, "no-history", false, "Do not display the history of the contract")
}

func (c *contractCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected one contract id or number")
		return subcommands.ExitUsageError
	}
	query := f.Arg(0)
	return analyze(ctx, func(ctx context.Context, a *contracts.Analyzer, snap *contracts.Snapshot, year int, on date.Date) error {
		audit, err := audit(a, snap, query, year, on)
		if err != nil {
			return err
		}
		printMarkdown(renderer.RenderContract(audit, renderer.ContractRenderOptions{SkipTimeline: c.skipTimeline}))
		return nil
	})
}

// audit computes the audit of the contract matching query.
func audit(a *contracts.Analyzer, snap *contracts.Snapshot, query string, year int, on date.Date) (*renderer.ContractAudit, error) {
	raw, err := snap.Find(query)
	if err != nil {
		return nil, err
	}
	rec, err := snap.Record(raw)
	if err != nil {
		return nil, fmt.Errorf("contract %s: %w", query, err)
	}
	return renderer.NewContractAudit(rec, a.Exercise(rec, year), on), nil
}
