package contracts

import (
	"fmt"
	"time"

	"github.com/etnz/contracts/date"
)

// StepKind names a contribution of the exercise value computation.
type StepKind string

const (
	StepStartInYear   StepKind = "inicio_no_ano"          // no event, validity starts in the year
	StepFullYear      StepKind = "12_meses_cheios"        // no event, twelve nominal months
	StepMonthsBefore  StepKind = "meses_cheios_antes"     // full months before an event
	StepNewValueMonth StepKind = "mes_cheio_novo_valor"   // event on the first day of the month
	StepPartialOld    StepKind = "parcial_valor_anterior" // days of the month before the event
	StepPartialNew    StepKind = "parcial_valor_novo"     // days of the month from the event on
	StepInert         StepKind = "evento_sem_valor"       // event without a new value
	StepSameMonth     StepKind = "ajuste_mesmo_mes"       // second event in an already counted month
	StepFinalMonths   StepKind = "meses_finais"           // months after the last event
)

// Step is one contribution to an exercise value.
type Step struct {
	Kind    StepKind
	Months  int    // full months counted, 0 for prorated steps
	Monthly Amount // monthly value applied
	Value   Amount // contribution to the total
	Period  date.Range
}

// Exercise is the value of a contract apportioned to a calendar year, with the
// steps that produced it when traced.
type Exercise struct {
	Contract string
	Year     int
	Total    Amount
	Steps    []Step
}

// ExerciseValue returns the value of the contract attributable to year.
func ExerciseValue(c Contract, history []Event, year int) Amount {
	return exercise(c, history, Consolidate(history, year), year, false).Total
}

// ExerciseTrace is ExerciseValue that also records every step.
func ExerciseTrace(c Contract, history []Event, year int) Exercise {
	return exercise(c, history, Consolidate(history, year), year, true)
}

// Compute normalizes registry records and returns the exercise value.
func Compute(raw RawContract, history []RawEvent, year int) (Amount, error) {
	x, err := compute(raw, history, year, false)
	return x.Total, err
}

// ComputeTrace normalizes registry records and returns the traced exercise.
func ComputeTrace(raw RawContract, history []RawEvent, year int) (Exercise, error) {
	return compute(raw, history, year, true)
}

func compute(raw RawContract, rawHistory []RawEvent, year int, trace bool) (Exercise, error) {
	c, err := raw.Normalize()
	if err != nil {
		return Exercise{}, err
	}
	history, err := NormalizeHistory(rawHistory)
	if err != nil {
		return Exercise{}, fmt.Errorf("contract %s: %w", c.ID, err)
	}
	return exercise(c, history, Consolidate(history, year), year, trace), nil
}

// fold walks the months of the year carrying the running total.
type fold struct {
	c       Contract
	history []Event
	year    int
	trace   bool

	x     Exercise
	month time.Month // first month not yet counted
	last  Amount     // monthly value applied to the end of the last counted month
}

func exercise(c Contract, history []Event, events []ConsolidatedEvent, year int, trace bool) Exercise {
	f := &fold{
		c:       c,
		history: history,
		year:    year,
		trace:   trace,
		x:       Exercise{Contract: c.ID, Year: year},
		month:   time.January,
	}
	if len(events) == 0 {
		f.nominal()
		return f.x
	}
	for _, e := range events {
		f.event(e)
	}
	f.remaining()
	return f.x
}

func (f *fold) add(s Step) {
	f.x.Total = f.x.Total.Add(s.Value)
	if f.trace {
		f.x.Steps = append(f.x.Steps, s)
	}
}

// nominal counts a year without events.
func (f *fold) nominal() {
	mv := f.c.Monthly()
	year := date.Year(f.year)
	if year.Contains(f.c.Start) {
		period := date.Range{From: f.c.Start, To: year.To}
		f.add(Step{Kind: StepStartInYear, Monthly: mv.Value, Value: Prorate(period, mv.Value), Period: period})
		return
	}
	f.add(Step{Kind: StepFullYear, Months: 12, Monthly: mv.Value, Value: mv.Value.Times(12), Period: year})
}

func (f *fold) event(e ConsolidatedEvent) {
	day := e.Date()
	month := date.NewRange(day, date.Monthly)
	prior := ValueBefore(f.c, f.history, day)
	next := newMonthly(e.Event, prior)

	if day.Month() < f.month {
		f.sameMonth(day, month, next)
		return
	}

	if n := int(day.Month() - f.month); n > 0 {
		period := date.Range{From: date.New(f.year, f.month, 1), To: month.From.Add(-1)}
		f.add(Step{Kind: StepMonthsBefore, Months: n, Monthly: prior.Value, Value: prior.Value.Times(n), Period: period})
	}
	f.month = day.Month() + 1

	switch {
	case !next.IsPositive():
		f.add(Step{Kind: StepInert, Months: 1, Monthly: prior.Value, Value: prior.Value, Period: month})
		f.last = prior.Value
	case day.Day() == 1:
		f.add(Step{Kind: StepNewValueMonth, Months: 1, Monthly: next, Value: next, Period: month})
		f.last = next
	default:
		before := date.Range{From: month.From, To: day.Add(-1)}
		after := date.Range{From: day, To: month.To}
		f.add(Step{Kind: StepPartialOld, Monthly: prior.Value, Value: Prorate(before, prior.Value), Period: before})
		f.add(Step{Kind: StepPartialNew, Monthly: next, Value: Prorate(after, next), Period: after})
		f.last = next
	}
}

// sameMonth re-prices the days from day to the end of an already counted month.
func (f *fold) sameMonth(day date.Date, month date.Range, next Amount) {
	if !next.IsPositive() {
		return
	}
	tail := date.Range{From: day, To: month.To}
	delta := Prorate(tail, next).Sub(Prorate(tail, f.last))
	f.add(Step{Kind: StepSameMonth, Monthly: next, Value: delta, Period: tail})
	f.last = next
}

// remaining counts the months after the last event at the value in force at year end.
func (f *fold) remaining() {
	if f.month > time.December {
		return
	}
	end := date.New(f.year, time.December, 31)
	mv := ValueBefore(f.c, f.history, end)
	n := int(time.December - f.month + 1)
	period := date.Range{From: date.New(f.year, f.month, 1), To: end}
	f.add(Step{Kind: StepFinalMonths, Months: n, Monthly: mv.Value, Value: mv.Value.Times(n), Period: period})
}
