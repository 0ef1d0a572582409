package contracts

import (
	"testing"

	"github.com/etnz/contracts/date"
)

// R is a helper for test to create an amount from a Brazilian formatted const.
func R(text string) Amount { return MustParseAmount(text) }

// D is a helper for test to create a date from an ISO const.
func D(text string) date.Date { return date.MustParse(text) }

// contract is a helper for test to create a normalized contract.
func contract(t *testing.T, start, global string, installments int) Contract {
	t.Helper()
	raw := RawContract{ID: 1, Number: "00001/2024", ValidityStart: start, GlobalValue: global}
	if installments > 0 {
		raw.Installments = &installments
	}
	c, err := raw.Normalize()
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}
	return c
}

// valueChange is a helper for test to create an event changing the global value.
func valueChange(effective, signed, global string) Event {
	e := Event{Type: "Termo Aditivo", NewGlobal: R(global)}
	if effective != "" {
		e.Effective = D(effective)
	}
	if signed != "" {
		e.Signed = D(signed)
	}
	return e
}

// assertAmount fails if got and want differ by more than a cent.
func assertAmount(t *testing.T, name string, got, want Amount) {
	t.Helper()
	if !got.AlmostEqual(want, A(0.01)) {
		t.Errorf("%s = %s (%s), want %s", name, got, got.Decimal(), want)
	}
}

// fixture is a helper for test returning a snapshot seen on 2025-10-01:
//
//	1 in force, one amendment in 2025, under committed
//	2 in force, ends in 45 days, over committed
//	3 expired
//	4 in force but without validity start
//	5 in force, starts in 2025, ends in 19 days, no commitment
func fixture() *Snapshot {
	twelve := 12
	s := NewSnapshot()
	s.Contracts = []RawContract{
		{
			ID: 1, Number: "00001/2023", Category: "Serviços", Object: "Limpeza", Situation: "Ativo",
			Supplier:      RawSupplier{Name: "Alfa Ltda", Doc: "11.111.111/0001-11"},
			ValidityStart: "2023-03-01", ValidityEnd: "2026-03-01",
			GlobalValue: "120.000,00", Installments: &twelve, Accumulated: "90.000,00",
			Links: Links{History: "/contrato/1/historico", Commitments: "/contrato/1/empenhos"},
		},
		{
			ID: 2, Number: "00002/2024", Category: "Obras", Object: "Reforma", Situation: "Ativo",
			Supplier:      RawSupplier{Name: "Beta SA"},
			ValidityStart: "2024-01-01", ValidityEnd: "2025-11-15",
			GlobalValue: "60.000,00", Accumulated: "30.000,00",
		},
		{
			ID: 3, Number: "00003/2020", Category: "Serviços", Situation: "Encerrado",
			Supplier:      RawSupplier{Name: "Gama ME"},
			ValidityStart: "2020-01-01", ValidityEnd: "2024-12-31",
			GlobalValue: "36.000,00",
		},
		{
			ID: 4, Number: "00004/2025", Category: "Serviços",
			Supplier:    RawSupplier{Name: "Delta"},
			ValidityEnd: "2026-12-31", GlobalValue: "10.000,00",
		},
		{
			ID: 5, Number: "00005/2025", Category: "Serviços", Situation: "Ativo",
			Supplier:      RawSupplier{Name: "Alfa Ltda"},
			ValidityStart: "2025-06-01", ValidityEnd: "2025-10-20",
			GlobalValue: "24.000,00", Installments: &twelve,
		},
	}
	s.Histories["1"] = []RawEvent{
		{Type: "Contrato", Signed: "2023-02-20", ValidityStart: "2023-03-01", ValidityEnd: "2024-03-01", NewGlobalValue: "120.000,00"},
		{
			Type: "Termo Aditivo", Number: "1", Signed: "2025-07-10", NewValueFrom: "2025-07-16", NewGlobalValue: "180.000,00",
			Qualifications: []RawQualification{{Code: "4", Description: "REAJUSTE"}},
		},
	}
	s.Commitments["1"] = []RawCommitment{
		{Number: "2025NE000010", Issued: "2025-02-01", Committed: "100.000,00", ToSettle: "30.000,00", Settled: "40.000,00", Paid: "30.000,00"},
		{Number: "2024NE000090", Issued: "2024-02-01", Committed: "90.000,00", Paid: "90.000,00"},
	}
	s.Commitments["2"] = []RawCommitment{
		{Number: "2025NE000011", Issued: "2025-01-15", Committed: "80.000,00"},
	}
	return s
}
