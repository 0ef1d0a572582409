package date

// Period is a calendar unit a date can be rounded to.
type Period int

const (
	Monthly Period = iota
	Yearly
)
