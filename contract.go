package contracts

import (
	"errors"
	"strconv"
	"strings"

	"github.com/etnz/contracts/date"
)

// DefaultInstallments is the installment count of a contract that does not declare one.
const DefaultInstallments = 12

// RawContract is a contract as served by the procurement registry.
// Amounts are Brazilian formatted strings and dates ISO-8601 strings.
type RawContract struct {
	ID               int64       `json:"id"`
	Number           string      `json:"numero"`
	Supplier         RawSupplier `json:"fornecedor"`
	Category         string      `json:"categoria,omitempty"`
	Object           string      `json:"objeto,omitempty"`
	Situation        string      `json:"situacao,omitempty"`
	ValidityStart    string      `json:"vigencia_inicio"`
	ValidityEnd      string      `json:"vigencia_fim,omitempty"`
	GlobalValue      string      `json:"valor_global"`
	Installments     *int        `json:"num_parcelas"`
	InstallmentValue string      `json:"valor_parcela,omitempty"`
	Accumulated      string      `json:"valor_acumulado,omitempty"`
	Links            Links       `json:"links"`
}

// RawSupplier identifies the contracted company.
type RawSupplier struct {
	Kind string `json:"tipo,omitempty"`
	Doc  string `json:"cnpj_cpf_idgener,omitempty"`
	Name string `json:"nome"`
}

// Links are the registry addresses of the contract's related collections.
type Links struct {
	History     string `json:"historico,omitempty"`
	Commitments string `json:"empenhos,omitempty"`
	Invoices    string `json:"faturas,omitempty"`
}

// Key returns the identifier used to index histories and commitments.
func (r RawContract) Key() string { return strconv.FormatInt(r.ID, 10) }

// Contract is a validated contract.
type Contract struct {
	ID           string
	Number       string
	Supplier     string
	Category     string
	Object       string
	Situation    string
	Start        date.Date
	End          date.Date // zero when the registry gives no end
	GlobalValue  Amount
	Installments int
	Accumulated  Amount
	Links        Links
}

// Monthly returns the nominal monthly value of the contract, over
// DefaultInstallments when the count of installments is not positive.
func (c Contract) Monthly() MonthlyValue {
	n := c.Installments
	if n <= 0 {
		n = DefaultInstallments
	}
	return MonthlyValue{Value: c.GlobalValue.Div(n), Installments: n}
}

// Validity returns the range the contract is in force.
func (c Contract) Validity() date.Range { return date.Range{From: c.Start, To: c.End} }

// Normalize validates the raw contract and resolves its defaults.
// The validity start is required: its absence is a *MissingFieldError.
func (r RawContract) Normalize() (Contract, error) {
	c := Contract{
		ID:        r.Key(),
		Number:    r.Number,
		Supplier:  r.Supplier.Name,
		Category:  r.Category,
		Object:    r.Object,
		Situation: r.Situation,
		Links:     r.Links,
	}
	if strings.TrimSpace(r.ValidityStart) == "" {
		return c, &MissingFieldError{Contract: c.ID, Field: "vigencia_inicio"}
	}
	var err error
	if c.Start, err = ParseOptionalDate("vigencia_inicio", r.ValidityStart); err != nil {
		return c, err
	}
	if c.End, err = ParseOptionalDate("vigencia_fim", r.ValidityEnd); err != nil {
		return c, err
	}
	if c.GlobalValue, err = parseAmountField("valor_global", r.GlobalValue); err != nil {
		return c, err
	}
	if c.Accumulated, err = parseAmountField("valor_acumulado", r.Accumulated); err != nil {
		return c, err
	}
	c.Installments = DefaultInstallments
	if r.Installments != nil && *r.Installments > 0 {
		c.Installments = *r.Installments
	}
	return c, nil
}

// ParseOptionalDate parses an optional date field: empty text is the zero
// date, malformed text a *FormatError.
func ParseOptionalDate(field, text string) (date.Date, error) {
	if strings.TrimSpace(text) == "" {
		return date.Date{}, nil
	}
	d, err := date.Parse(text)
	if err != nil {
		return date.Date{}, &FormatError{Field: field, Value: text, Err: err}
	}
	return d, nil
}

func parseAmountField(field, text string) (Amount, error) {
	a, err := ParseAmount(text)
	var fe *FormatError
	if errors.As(err, &fe) {
		fe.Field = field
	}
	return a, err
}
