package cmd

import (
	"context"
	"flag"

	"github.com/etnz/contracts"
	"github.com/etnz/contracts/date"
	"github.com/etnz/contracts/renderer"
	"github.com/google/subcommands"
)

type tableCmd struct{}

func (*tableCmd) Name() string     { return "financeiro" }
func (*tableCmd) Synopsis() string { return "display the financial table of the contracts in force" }
func (*tableCmd) Usage() string {
	return `painel [-year <year>] [-today <date>] financeiro

  Displays, for each contract in force, the value of the fiscal year, the
  commitments of the year and the gap between them, with the action it
  calls for (Reforçar, Anular, OK).
`
}

func (c *tableCmd) SetFlags(f *flag.FlagSet) {}

func (c *tableCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return analyze(ctx, func(ctx context.Context, a *contracts.Analyzer, snap *contracts.Snapshot, year int, on date.Date) error {
		t, err := a.Table(ctx, snap, year, on)
		if err != nil {
			return err
		}
		printMarkdown(renderer.TableMarkdown(t))
		return nil
	})
}
