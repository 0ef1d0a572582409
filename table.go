package contracts

import (
	"context"
	"fmt"
	"runtime"

	"github.com/etnz/contracts/date"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Status is the budget action a contract calls for.
type Status string

const (
	StatusReinforce Status = "Reforçar" // committed less than the exercise value
	StatusCancel    Status = "Anular"   // committed more than the exercise value
	StatusOK        Status = "OK"
)

// gapTolerance absorbs rounding differences between exercise and commitments.
var gapTolerance = A(1)

// StatusOf returns the status for a gap between exercise value and commitments.
func StatusOf(gap Amount) Status {
	switch {
	case gap.GreaterThan(gapTolerance):
		return StatusReinforce
	case gap.LessThan(gapTolerance.Neg()):
		return StatusCancel
	default:
		return StatusOK
	}
}

// Row is a contract line of the financial table.
type Row struct {
	ID       string
	Number   string
	Category string
	Object   string
	Supplier string
	End      date.Date
	Exercise Amount
	Totals   Totals // commitments of the year
	Gap      Amount // exercise minus committed
	Status   Status
}

// ContractError is the failure of a single contract in a batch.
type ContractError struct {
	Contract string // id
	Number   string
	Err      error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("contract %s (%s): %v", e.Number, e.Contract, e.Err)
}

func (e *ContractError) Unwrap() error { return e.Err }

// Table is the financial view of the contracts in force for a year.
type Table struct {
	Year        int
	Rows        []Row
	Errors      []*ContractError
	Exercise    Amount
	Committed   Amount
	Gap         Amount
	ToReinforce Amount // sum of positive gaps
	ToCancel    Amount // sum of negative gaps, as a positive amount
}

// Analyzer computes the tables and dashboards of a snapshot.
// The zero value is ready to use.
type Analyzer struct {
	Memo    *Memo       // optional exercise cache
	Logger  *zap.Logger // defaults to a no-op logger
	Workers int         // parallel contracts, defaults to GOMAXPROCS
}

func (a *Analyzer) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// Exercise returns the traced exercise of a record, memoized when possible.
func (a *Analyzer) Exercise(rec Record, year int) Exercise {
	if a.Memo != nil {
		return a.Memo.Exercise(rec.Contract, rec.History, year)
	}
	return ExerciseTrace(rec.Contract, rec.History, year)
}

// BuildTable builds the financial table with a default Analyzer.
func BuildTable(ctx context.Context, snap *Snapshot, year int, today date.Date) (*Table, error) {
	return new(Analyzer).Table(ctx, snap, year, today)
}

// Table builds the financial table of the contracts in force at today. Each
// contract is computed in isolation: a failing one is reported in Errors.
func (a *Analyzer) Table(ctx context.Context, snap *Snapshot, year int, today date.Date) (*Table, error) {
	type result struct {
		row  Row
		keep bool
		err  error
	}
	results := make([]result, len(snap.Contracts))

	g, ctx := errgroup.WithContext(ctx)
	workers := a.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)
	for i, raw := range snap.Contracts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row, keep, err := a.row(snap, raw, year, today)
			results[i] = result{row, keep, err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	t := &Table{Year: year}
	for i, r := range results {
		if r.err != nil {
			raw := snap.Contracts[i]
			a.logger().Warn("contract skipped", zap.String("contract", raw.Key()), zap.String("numero", raw.Number), zap.Error(r.err))
			t.Errors = append(t.Errors, &ContractError{Contract: raw.Key(), Number: raw.Number, Err: r.err})
			continue
		}
		if r.keep {
			t.add(r.row)
		}
	}
	return t, nil
}

func (t *Table) add(r Row) {
	t.Rows = append(t.Rows, r)
	t.Exercise = t.Exercise.Add(r.Exercise)
	t.Committed = t.Committed.Add(r.Totals.Committed)
	t.Gap = t.Gap.Add(r.Gap)
	if r.Gap.IsPositive() {
		t.ToReinforce = t.ToReinforce.Add(r.Gap)
	} else {
		t.ToCancel = t.ToCancel.Sub(r.Gap)
	}
}

// row computes the line of a contract. keep is false for contracts without an
// end of validity or already ended.
func (a *Analyzer) row(snap *Snapshot, raw RawContract, year int, today date.Date) (row Row, keep bool, err error) {
	end, err := ParseOptionalDate("vigencia_fim", raw.ValidityEnd)
	if err != nil {
		return row, false, err
	}
	if end.IsZero() || end.Before(today) {
		return row, false, nil
	}
	rec, err := snap.Record(raw)
	if err != nil {
		return row, false, err
	}
	c := rec.Contract
	row = Row{
		ID:       c.ID,
		Number:   c.Number,
		Category: c.Category,
		Object:   c.Object,
		Supplier: c.Supplier,
		End:      c.End,
		Exercise: a.Exercise(rec, year).Total,
		Totals:   CommitmentTotals(rec.Commitments, year),
	}
	row.Gap = row.Exercise.Sub(row.Totals.Committed)
	row.Status = StatusOf(row.Gap)
	return row, true, nil
}
