package contracts

import (
	"github.com/etnz/contracts/date"
	"github.com/shopspring/decimal"
)

// Prorate returns the share of a monthly value attributable to the days of r.
//
// Every calendar month overlapping r contributes monthly / daysInMonth for each
// of its days inside r, boundaries included. An empty range is worth zero.
func Prorate(r date.Range, monthly Amount) Amount {
	var total decimal.Decimal
	if r.IsEmpty() {
		return Amount{}
	}
	for m := range date.Months(r.From, r.To) {
		days := r.Intersect(date.NewRange(m, date.Monthly)).Days()
		if days == 0 {
			continue
		}
		n := decimal.NewFromInt(int64(days))
		d := decimal.NewFromInt(int64(date.DaysIn(m.Year(), m.Month())))
		total = total.Add(monthly.value.Mul(n).Div(d))
	}
	return Amount{value: total}
}
