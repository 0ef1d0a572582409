package contracts

import (
	"fmt"

	"github.com/etnz/contracts/date"
)

// RawCommitment is a budget commitment ("empenho") as served by the registry.
type RawCommitment struct {
	ID        int64  `json:"id,omitempty"`
	Number    string `json:"numero"`
	Creditor  string `json:"credor,omitempty"`
	Issued    string `json:"data_emissao"`
	Committed string `json:"empenhado"`
	ToSettle  string `json:"aliquidar"`
	Settled   string `json:"liquidado"`
	Paid      string `json:"pago"`
}

// Commitment is a validated budget commitment.
type Commitment struct {
	Number string
	Issued date.Date // zero when unknown
	Totals
}

// Totals are the execution stages of one or several commitments.
type Totals struct {
	Committed Amount // empenhado
	ToSettle  Amount // a liquidar
	Settled   Amount // liquidado
	Paid      Amount // pago
}

// Add returns the stage by stage sum of t and x.
func (t Totals) Add(x Totals) Totals {
	return Totals{
		Committed: t.Committed.Add(x.Committed),
		ToSettle:  t.ToSettle.Add(x.ToSettle),
		Settled:   t.Settled.Add(x.Settled),
		Paid:      t.Paid.Add(x.Paid),
	}
}

// SettledOrPaid returns the executed part of the commitments.
func (t Totals) SettledOrPaid() Amount { return t.Settled.Add(t.Paid) }

// Normalize validates the raw commitment.
func (r RawCommitment) Normalize() (Commitment, error) {
	c := Commitment{Number: r.Number}
	var err error
	if c.Issued, err = ParseOptionalDate("data_emissao", r.Issued); err != nil {
		return c, err
	}
	if c.Committed, err = parseAmountField("empenhado", r.Committed); err != nil {
		return c, err
	}
	if c.ToSettle, err = parseAmountField("aliquidar", r.ToSettle); err != nil {
		return c, err
	}
	if c.Settled, err = parseAmountField("liquidado", r.Settled); err != nil {
		return c, err
	}
	if c.Paid, err = parseAmountField("pago", r.Paid); err != nil {
		return c, err
	}
	return c, nil
}

// NormalizeCommitments validates a list of commitments.
func NormalizeCommitments(raw []RawCommitment) ([]Commitment, error) {
	out := make([]Commitment, 0, len(raw))
	for _, r := range raw {
		c, err := r.Normalize()
		if err != nil {
			return nil, fmt.Errorf("commitment %q: %w", r.Number, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// CommitmentTotals sums the commitments issued in year.
func CommitmentTotals(cs []Commitment, year int) Totals {
	var t Totals
	for _, c := range cs {
		if c.Issued.IsZero() || c.Issued.Year() != year {
			continue
		}
		t = t.Add(c.Totals)
	}
	return t
}
