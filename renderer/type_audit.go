package renderer

import (
	"github.com/etnz/contracts"
	"github.com/etnz/contracts/date"
)

// ContractAudit is the detailed view of one contract for a year.
type ContractAudit struct {
	Contract    contracts.Contract
	Year        int
	Today       date.Date
	Exercise    contracts.Exercise
	Commitments contracts.Totals // of the year
	Gap         contracts.Amount
	Status      contracts.Status
	Timeline    []contracts.TimelineEntry
	Repactuated bool
	Days        int // to the end of validity
	Deadline    contracts.Deadline
}

// NewContractAudit computes the audit of a record.
func NewContractAudit(rec contracts.Record, x contracts.Exercise, today date.Date) *ContractAudit {
	a := &ContractAudit{
		Contract:    rec.Contract,
		Year:        x.Year,
		Today:       today,
		Exercise:    x,
		Commitments: contracts.CommitmentTotals(rec.Commitments, x.Year),
		Timeline:    contracts.Timeline(rec.History),
		Repactuated: contracts.RepactuatedIn(rec.History, x.Year),
	}
	a.Gap = x.Total.Sub(a.Commitments.Committed)
	a.Status = contracts.StatusOf(a.Gap)
	var ok bool
	a.Days, ok = contracts.DaysToEnd(rec.Contract.End, today)
	a.Deadline = contracts.ClassifyDeadline(a.Days, ok)
	return a
}
