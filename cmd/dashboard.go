package cmd

import (
	"context"
	"flag"

	"github.com/etnz/contracts"
	"github.com/etnz/contracts/date"
	"github.com/etnz/contracts/renderer"
	"github.com/google/subcommands"
)

type dashboardCmd struct{}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "display the executive dashboard" }
func (*dashboardCmd) Usage() string {
	return `painel [-year <year>] [-today <date>] dashboard

  Displays the executive dashboard of the snapshot: contract counts and
  deadlines, budget execution, exercise value against commitments,
  projection to December, portfolio profile and alerts.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {}

func (c *dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return analyze(ctx, func(ctx context.Context, a *contracts.Analyzer, snap *contracts.Snapshot, year int, on date.Date) error {
		d, err := a.Dashboard(ctx, snap, year, on)
		if err != nil {
			return err
		}
		printMarkdown(renderer.RenderDashboard(d))
		return nil
	})
}
