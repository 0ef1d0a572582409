// Package cmd implements the CLI application of the contracts dashboard.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/contracts"
	"github.com/etnz/contracts/date"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&fetchCmd{}, "registry")
	c.Register(&invoicesCmd{}, "registry")

	c.Register(&dashboardCmd{}, "reports")
	c.Register(&tableCmd{}, "reports")
	c.Register(&contractCmd{}, "reports")
	c.Register(&serveCmd{}, "reports")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	dataDir     = flag.String("data-dir", "dados", "Directory of the registry snapshot files")
	registryURL = flag.String("registry-url", contracts.DefaultRegistryURL, "Base URL of the contracts registry API")
	ug          = flag.String("ug", "", "Code of the management unit (UG) whose contracts are collected")
	year        = flag.Int("year", 0, "Fiscal year. Defaults to the year of -today.")
	today       = flag.String("today", "", "Reference date for deadlines, in force contracts and projections. Defaults to today.")
	Verbose     = flag.Bool("v", false, "Verbose logs")
)

// envFlags maps the global flags to the environment variables providing their default.
var envFlags = map[string]string{
	"data-dir":     EnvDataDir,
	"registry-url": EnvRegistryURL,
	"ug":           EnvUG,
	"v":            EnvVerbose,
}

// ApplyEnv sets the global flags still at their default from the environment.
//
// It must be called after the .env file is loaded and before the flags are parsed.
func ApplyEnv() error {
	for name, key := range envFlags {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			continue
		}
		f := flag.Lookup(name)
		if f.Value.String() != f.DefValue {
			continue
		}
		if err := flag.Set(name, v); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}
	return nil
}

// Today returns the reference date of the reports.
func Today() (date.Date, error) {
	if *today == "" {
		return date.Today(), nil
	}
	return date.Parse(*today)
}

// Period returns the fiscal year and the reference date of the reports.
func Period() (int, date.Date, error) {
	on, err := Today()
	if err != nil {
		return 0, on, fmt.Errorf("parsing -today: %w", err)
	}
	if *year != 0 {
		return *year, on, nil
	}
	return on.Year(), on, nil
}

// DecodeSnapshot reads the snapshot of the data directory.
func DecodeSnapshot() (*contracts.Snapshot, error) {
	s, err := contracts.LoadSnapshot(*dataDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("no snapshot in %q, run 'fetch' first: %w", *dataDir, err)
	}
	return s, err
}

// Logger returns the operational logger, at debug level with -v.
func Logger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	if *Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot build logger: %v\n", err)
		return zap.NewNop()
	}
	return logger
}

// printMarkdown renders markdown on a terminal, and prints it raw otherwise.
func printMarkdown(md string) {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// analyze runs f on the snapshot for the selected period.
func analyze(ctx context.Context, f func(ctx context.Context, a *contracts.Analyzer, snap *contracts.Snapshot, year int, on date.Date) error) subcommands.ExitStatus {
	y, on, err := Period()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	snap, err := DecodeSnapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	logger := Logger()
	defer logger.Sync()

	if err := f(ctx, &contracts.Analyzer{Logger: logger}, snap, y, on); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
