package contracts

import "github.com/etnz/contracts/date"

// DaysToEnd returns the number of days from today to the end of validity,
// negative once expired. ok is false when there is no end.
func DaysToEnd(end, today date.Date) (days int, ok bool) {
	if end.IsZero() {
		return 0, false
	}
	return end.Sub(today), true
}

// Deadline classifies a contract by the time left to its end.
type Deadline int

const (
	NoEnd    Deadline = iota // no end of validity
	Expired                  // ended
	Critical                 // ends within 30 days
	Alert                    // ends within 60 days
	Regular
)

// ClassifyDeadline classifies the result of DaysToEnd.
func ClassifyDeadline(days int, ok bool) Deadline {
	switch {
	case !ok:
		return NoEnd
	case days < 0:
		return Expired
	case days <= 30:
		return Critical
	case days <= 60:
		return Alert
	default:
		return Regular
	}
}

func (d Deadline) String() string {
	switch d {
	case NoEnd:
		return "Sem vigência"
	case Expired:
		return "Vencido"
	case Critical:
		return "Crítico"
	case Alert:
		return "Alerta"
	case Regular:
		return "Regular"
	default:
		return "?"
	}
}

// InForce reports whether a contract ending on end is still valid today.
// A contract without an end is considered in force.
func InForce(end, today date.Date) bool {
	days, ok := DaysToEnd(end, today)
	return !ok || days >= 0
}
