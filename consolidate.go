package contracts

import (
	"slices"

	"github.com/etnz/contracts/date"
)

// ConsolidatedEvent is the single event kept for an effective date.
type ConsolidatedEvent struct {
	Event
	Candidates int // number of same-day events it was chosen among
}

// Date returns the effective date.
func (c ConsolidatedEvent) Date() date.Date { return c.Effective }

// Consolidate returns one event per effective date in year, ascending.
//
// Events without an effective date, outside the year, or without a positive new
// global or installment value are discarded. Among events sharing a date the
// latest signature wins; an unsigned event loses to any signed one, and equal
// signatures keep the last one in history order.
func Consolidate(history []Event, year int) []ConsolidatedEvent {
	groups := make(map[date.Date][]Event)
	for _, e := range history {
		if e.Effective.IsZero() || e.Effective.Year() != year {
			continue
		}
		if !e.HasValue() {
			continue
		}
		groups[e.Effective] = append(groups[e.Effective], e)
	}

	out := make([]ConsolidatedEvent, 0, len(groups))
	for _, group := range groups {
		slices.SortStableFunc(group, bySignature)
		out = append(out, ConsolidatedEvent{Event: group[len(group)-1], Candidates: len(group)})
	}
	slices.SortFunc(out, func(a, b ConsolidatedEvent) int { return a.Effective.Compare(b.Effective) })
	return out
}

// bySignature orders events by signature date, unsigned first.
func bySignature(a, b Event) int {
	switch {
	case a.Signed.IsZero() && b.Signed.IsZero():
		return 0
	case a.Signed.IsZero():
		return -1
	case b.Signed.IsZero():
		return 1
	}
	return a.Signed.Compare(b.Signed)
}
