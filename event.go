package contracts

import (
	"fmt"

	"github.com/etnz/contracts/date"
)

// RawEvent is an entry of a contract's history (amendment, apostille, the
// contract itself) as served by the registry.
type RawEvent struct {
	ID                  int64              `json:"id,omitempty"`
	Type                string             `json:"tipo"`
	Number              string             `json:"numero,omitempty"`
	Signed              string             `json:"data_assinatura,omitempty"`
	Published           string             `json:"data_publicacao,omitempty"`
	ValidityStart       string             `json:"vigencia_inicio,omitempty"`
	ValidityEnd         string             `json:"vigencia_fim,omitempty"`
	NewValueFrom        string             `json:"data_inicio_novo_valor,omitempty"`
	NewGlobalValue      string             `json:"novo_valor_global,omitempty"`
	NewInstallments     *int               `json:"novo_num_parcelas,omitempty"`
	NewInstallmentValue string             `json:"novo_valor_parcela,omitempty"`
	Note                string             `json:"observacao,omitempty"`
	Qualifications      []RawQualification `json:"qualificacao_termo,omitempty"`
}

// RawQualification tags what an amendment changes (VIGÊNCIA, REAJUSTE, ...).
type RawQualification struct {
	Code        string `json:"codigo,omitempty"`
	Description string `json:"descricao"`
}

// Event is a validated history entry. Absent dates are zero, absent amounts are
// zero and an absent installment count is 0.
type Event struct {
	Type                string
	Effective           date.Date // the day the new value takes effect
	Signed              date.Date
	Published           date.Date
	Validity            date.Range
	NewGlobal           Amount
	NewInstallments     int
	NewInstallmentValue Amount
	Note                string
	Qualifications      []string
}

// HasValue reports whether the event carries a positive new value. Events
// without one are inert for value purposes.
func (e Event) HasValue() bool {
	return e.NewGlobal.IsPositive() || e.NewInstallmentValue.IsPositive()
}

// Normalize validates the raw event.
func (r RawEvent) Normalize() (Event, error) {
	e := Event{Type: r.Type, Note: r.Note}
	var err error
	if e.Effective, err = ParseOptionalDate("data_inicio_novo_valor", r.NewValueFrom); err != nil {
		return e, err
	}
	if e.Signed, err = ParseOptionalDate("data_assinatura", r.Signed); err != nil {
		return e, err
	}
	if e.Published, err = ParseOptionalDate("data_publicacao", r.Published); err != nil {
		return e, err
	}
	if e.Validity.From, err = ParseOptionalDate("vigencia_inicio", r.ValidityStart); err != nil {
		return e, err
	}
	if e.Validity.To, err = ParseOptionalDate("vigencia_fim", r.ValidityEnd); err != nil {
		return e, err
	}
	if e.NewGlobal, err = parseAmountField("novo_valor_global", r.NewGlobalValue); err != nil {
		return e, err
	}
	if e.NewInstallmentValue, err = parseAmountField("novo_valor_parcela", r.NewInstallmentValue); err != nil {
		return e, err
	}
	if r.NewInstallments != nil && *r.NewInstallments > 0 {
		e.NewInstallments = *r.NewInstallments
	}
	for _, q := range r.Qualifications {
		e.Qualifications = append(e.Qualifications, q.Description)
	}
	return e, nil
}

// NormalizeHistory validates a whole history, failing on the first invalid entry.
func NormalizeHistory(raw []RawEvent) ([]Event, error) {
	events := make([]Event, 0, len(raw))
	for i, r := range raw {
		e, err := r.Normalize()
		if err != nil {
			return nil, fmt.Errorf("history entry %d: %w", i, err)
		}
		events = append(events, e)
	}
	return events, nil
}
