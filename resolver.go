package contracts

import (
	"slices"

	"github.com/etnz/contracts/date"
)

// MonthlyValue is the monthly value and installment count in force at some instant.
type MonthlyValue struct {
	Value        Amount
	Installments int
}

// ValueBefore returns the monthly value in force just before cutoff.
//
// It starts from the contract's nominal value and replays, in effective date
// order, every event of the whole history strictly before cutoff that carries a
// positive new global value. Same-day events replay in signature order so the
// consolidated one applies last. An event without a new installment count keeps
// the previous one.
func ValueBefore(c Contract, history []Event, cutoff date.Date) MonthlyValue {
	mv := c.Monthly()

	var applied []Event
	for _, e := range history {
		if e.Effective.IsZero() || !e.Effective.Before(cutoff) {
			continue
		}
		applied = append(applied, e)
	}
	slices.SortStableFunc(applied, func(a, b Event) int {
		if c := a.Effective.Compare(b.Effective); c != 0 {
			return c
		}
		return bySignature(a, b)
	})

	for _, e := range applied {
		if !e.NewGlobal.IsPositive() {
			continue
		}
		if e.NewInstallments > 0 {
			mv.Installments = e.NewInstallments
		}
		mv.Value = e.NewGlobal.Div(mv.Installments)
	}
	return mv
}

// newMonthly returns the monthly value an event introduces given the value in
// force before it, or zero when the event brings none.
func newMonthly(e Event, prior MonthlyValue) Amount {
	if e.NewGlobal.IsPositive() {
		n := prior.Installments
		if e.NewInstallments > 0 {
			n = e.NewInstallments
		}
		return e.NewGlobal.Div(n)
	}
	if e.NewInstallmentValue.IsPositive() {
		return e.NewInstallmentValue
	}
	return Amount{}
}
