package contracts

import "github.com/etnz/contracts/date"

// Indicators summarize a contract portfolio.
type Indicators struct {
	Total            int
	Active           int // situation "Ativo"
	GlobalValue      Amount
	Executed         Amount // accumulated value
	AverageExecution Percent
	Critical         int // ending within 30 days
	Expired          int
}

// GeneralIndicators computes the portfolio indicators at today.
func GeneralIndicators(contracts []Contract, today date.Date) Indicators {
	var ind Indicators
	ind.Total = len(contracts)
	for _, c := range contracts {
		if c.Situation == "Ativo" {
			ind.Active++
		}
		ind.GlobalValue = ind.GlobalValue.Add(c.GlobalValue)
		ind.Executed = ind.Executed.Add(c.Accumulated)

		switch ClassifyDeadline(DaysToEnd(c.End, today)) {
		case Expired:
			ind.Expired++
		case Critical:
			ind.Critical++
		}
	}
	ind.AverageExecution = ind.Executed.Ratio(ind.GlobalValue)
	return ind
}
