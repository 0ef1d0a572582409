package contracts

import "github.com/etnz/contracts/date"

// Projection is the expected commitment and payment at the end of a year.
type Projection struct {
	Committed Amount
	Paid      Amount
}

// ProjectToDecember extrapolates the commitments and payments of year to
// December using the monthly average so far. A past year is not extrapolated.
func ProjectToDecember(commitments map[string][]Commitment, year int, today date.Date) Projection {
	var t Totals
	for _, cs := range commitments {
		t = t.Add(CommitmentTotals(cs, year))
	}

	elapsed := int(today.Month())
	if year < today.Year() {
		elapsed = 12
	}
	remaining := 12 - elapsed
	return Projection{
		Committed: t.Committed.Add(t.Committed.Div(elapsed).Times(remaining)),
		Paid:      t.Paid.Add(t.Paid.Div(elapsed).Times(remaining)),
	}
}
