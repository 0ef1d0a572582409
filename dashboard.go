package contracts

import (
	"cmp"
	"context"
	"slices"

	"github.com/etnz/contracts/date"
	"go.uber.org/zap"
)

// Alert thresholds of the executive dashboard.
const (
	endingSoonDays  = 90
	agendaDays      = 60
	rankingSize     = 10
	unknownCategory = "Não informada"
)

var (
	highGap     = A(50000)
	criticalGap = A(100000)
)

// Dashboard is the executive view of a snapshot for a year.
type Dashboard struct {
	Year       int
	Today      date.Date
	Indicators Indicators

	// contract counts by deadline; InForce counts contracts with an end not passed
	Total, InForce, Expired, Critical, Alert int
	Diagnosis                                string

	Budget    Totals  // commitments of the year of the contracts in force
	Execution Percent // settled or paid over committed
	Exercise  Amount
	Gap       Amount

	Agenda     []AgendaEntry
	Categories []Count
	Suppliers  []Count

	Projection    Projection
	ProjectionGap Amount // exercise minus projected commitment

	Alerts  Alerts
	Largest []Row
	Table   *Table
	Errors  []*ContractError
}

// AgendaEntry is a contract close to its end.
type AgendaEntry struct {
	Number   string
	Supplier string
	Category string
	Days     int
	Deadline Deadline
}

// Count is a group of contracts.
type Count struct {
	Name  string
	N     int
	Value Amount // exercise value of the group
}

// Alerts are the contracts calling for a management decision.
type Alerts struct {
	EndingSoon        []Row
	WithoutCommitment []Row
	HighGap           []Row
	CriticalGap       int
}

// BuildDashboard builds the dashboard with a default Analyzer.
func BuildDashboard(ctx context.Context, snap *Snapshot, year int, today date.Date) (*Dashboard, error) {
	return new(Analyzer).Dashboard(ctx, snap, year, today)
}

// Dashboard builds the executive dashboard of the snapshot.
func (a *Analyzer) Dashboard(ctx context.Context, snap *Snapshot, year int, today date.Date) (*Dashboard, error) {
	t, err := a.Table(ctx, snap, year, today)
	if err != nil {
		return nil, err
	}
	d := &Dashboard{Year: year, Today: today, Table: t, Errors: t.Errors}

	reported := make(map[string]bool)
	for _, e := range t.Errors {
		reported[e.Contract] = true
	}
	var contracts []Contract
	commitments := make(map[string][]Commitment)
	for _, raw := range snap.Contracts {
		c, err := raw.Normalize()
		if err != nil {
			if !reported[raw.Key()] {
				d.Errors = append(d.Errors, &ContractError{Contract: raw.Key(), Number: raw.Number, Err: err})
			}
			continue
		}
		contracts = append(contracts, c)
		cs, err := NormalizeCommitments(snap.Commitments[raw.Key()])
		if err != nil {
			a.logger().Warn("commitments skipped", zap.String("contract", raw.Key()), zap.Error(err))
			continue
		}
		commitments[raw.Key()] = cs
	}
	d.Indicators = GeneralIndicators(contracts, today)
	d.count(contracts)

	for _, r := range t.Rows {
		d.Budget = d.Budget.Add(r.Totals)
	}
	d.Execution = d.Budget.SettledOrPaid().Ratio(d.Budget.Committed)
	d.Exercise = t.Exercise
	d.Gap = t.Gap

	d.agenda(t.Rows)
	d.profile(t.Rows)
	d.alerts(t.Rows)

	d.Projection = ProjectToDecember(commitments, year, today)
	d.ProjectionGap = t.Exercise.Sub(d.Projection.Committed)
	return d, nil
}

func (d *Dashboard) count(contracts []Contract) {
	d.Total = len(contracts)
	for _, c := range contracts {
		days, ok := DaysToEnd(c.End, d.Today)
		if ok && days >= 0 {
			d.InForce++
		}
		switch ClassifyDeadline(days, ok) {
		case Expired:
			d.Expired++
		case Critical:
			d.Critical++
		case Alert:
			d.Alert++
		}
	}
	switch {
	case d.Expired > 0:
		d.Diagnosis = "Há contratos vencidos. Ação imediata necessária."
	case d.Critical > 0:
		d.Diagnosis = "Existem contratos em fase crítica de encerramento."
	case d.Alert > 0:
		d.Diagnosis = "Existem contratos que exigem atenção nos próximos 60 dias."
	default:
		d.Diagnosis = "Carteira contratual estável no momento."
	}
}

func (d *Dashboard) agenda(rows []Row) {
	for _, r := range rows {
		days, ok := DaysToEnd(r.End, d.Today)
		if !ok || days > agendaDays {
			continue
		}
		d.Agenda = append(d.Agenda, AgendaEntry{
			Number:   r.Number,
			Supplier: r.Supplier,
			Category: r.Category,
			Days:     days,
			Deadline: ClassifyDeadline(days, ok),
		})
	}
	slices.SortStableFunc(d.Agenda, func(a, b AgendaEntry) int { return cmp.Compare(a.Days, b.Days) })
}

func (d *Dashboard) profile(rows []Row) {
	d.Categories = group(rows, func(r Row) string {
		if r.Category == "" {
			return unknownCategory
		}
		return r.Category
	})
	d.Suppliers = group(rows, func(r Row) string { return r.Supplier })
	if len(d.Suppliers) > rankingSize {
		d.Suppliers = d.Suppliers[:rankingSize]
	}
}

// group counts rows by key, largest groups first.
func group(rows []Row, key func(Row) string) []Count {
	index := make(map[string]int)
	var counts []Count
	for _, r := range rows {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(counts)
			index[k] = i
			counts = append(counts, Count{Name: k})
		}
		counts[i].N++
		counts[i].Value = counts[i].Value.Add(r.Exercise)
	}
	slices.SortStableFunc(counts, func(a, b Count) int {
		if c := cmp.Compare(b.N, a.N); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return counts
}

func (d *Dashboard) alerts(rows []Row) {
	limit := d.Today.Add(endingSoonDays)
	for _, r := range rows {
		if !r.End.After(limit) {
			d.Alerts.EndingSoon = append(d.Alerts.EndingSoon, r)
		}
		if r.Totals.Committed.IsZero() {
			d.Alerts.WithoutCommitment = append(d.Alerts.WithoutCommitment, r)
		}
		if r.Gap.GreaterThan(highGap) {
			d.Alerts.HighGap = append(d.Alerts.HighGap, r)
		}
		if r.Gap.GreaterThan(criticalGap) {
			d.Alerts.CriticalGap++
		}
	}

	d.Largest = slices.Clone(rows)
	slices.SortStableFunc(d.Largest, func(a, b Row) int { return b.Exercise.Decimal().Cmp(a.Exercise.Decimal()) })
	if len(d.Largest) > rankingSize {
		d.Largest = d.Largest[:rankingSize]
	}
}
