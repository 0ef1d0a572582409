package renderer

import (
	"context"
	"strings"
	"testing"
	"text/template"

	"github.com/etnz/contracts"
	"github.com/etnz/contracts/date"
)

var today = date.New(2025, 10, 1)

// snapshot is a helper for test with one contract amended in 2025 and one broken contract.
func snapshot() *contracts.Snapshot {
	twelve := 12
	s := contracts.NewSnapshot()
	s.Contracts = []contracts.RawContract{
		{
			ID: 1, Number: "00001/2023", Category: "Serviços", Object: "Limpeza | conservação", Situation: "Ativo",
			Supplier:      contracts.RawSupplier{Name: "Alfa Ltda"},
			ValidityStart: "2023-03-01", ValidityEnd: "2026-03-01",
			GlobalValue: "120.000,00", Installments: &twelve,
		},
		{ID: 2, Number: "00002/2025", ValidityEnd: "2026-03-01", GlobalValue: "1,00"},
	}
	s.Histories["1"] = []contracts.RawEvent{
		{Type: "Contrato", Signed: "2023-02-20", ValidityStart: "2023-03-01", ValidityEnd: "2024-03-01"},
		{Type: "Termo Aditivo", Signed: "2025-07-10", NewValueFrom: "2025-07-16", NewGlobalValue: "180.000,00"},
	}
	s.Commitments["1"] = []contracts.RawCommitment{
		{Number: "2025NE1", Issued: "2025-02-01", Committed: "100.000,00", Paid: "10.000,00"},
	}
	return s
}

func TestTemplates(t *testing.T) {
	entries, err := templates.ReadDir(".")
	if err != nil {
		t.Fatalf("failed to read embedded templates: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no embedded template")
	}
	for _, e := range entries {
		content, err := templates.ReadFile(e.Name())
		if err != nil {
			t.Fatal(err)
		}
		if _, err := template.New(e.Name()).Funcs(funcs).Parse(string(content)); err != nil {
			t.Errorf("template %s does not parse: %v", e.Name(), err)
		}
	}
}

func assertContains(t *testing.T, doc string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if !strings.Contains(doc, p) {
			t.Errorf("missing %q in:\n%s", p, doc)
		}
	}
	if strings.Contains(doc, "error ") {
		t.Errorf("rendering failed:\n%s", doc)
	}
}

func TestRenderDashboard(t *testing.T) {
	d, err := contracts.BuildDashboard(context.Background(), snapshot(), 2025, today)
	if err != nil {
		t.Fatal(err)
	}
	doc := RenderDashboard(d)
	assertContains(t, doc,
		"# Painel Executivo de Contratos 2025",
		"Carteira contratual estável no momento.",
		"| R$ 147.580,65 | R$ 100.000,00 | R$ 47.580,65 |",
		"| Serviços | 1 | R$ 147.580,65 |",
		"## Contratos com erro",
		"vigencia_inicio",
	)
}

func TestRenderContract(t *testing.T) {
	s := snapshot()
	rec, err := s.Record(s.Contracts[0])
	if err != nil {
		t.Fatal(err)
	}
	a := NewContractAudit(rec, contracts.ExerciseTrace(rec.Contract, rec.History, 2025), today)

	doc := RenderContract(a, ContractRenderOptions{})
	assertContains(t, doc,
		"# Contrato 00001/2023",
		`| Objeto | Limpeza \| conservação |`,
		"| meses_cheios_antes | 2025-01-01 → 2025-06-30 | 6 | R$ 10.000,00 | R$ 60.000,00 |",
		"| parcial_valor_novo | 2025-07-16 → 2025-07-31 |  | R$ 15.000,00 | R$ 7.741,94 |",
		"Reforçar",
		"## Histórico",
		"Assinatura do contrato",
		"| 1 | Contrato | 2023-02-20 | 2023-03-01 → 2024-03-01 |",
	)

	short := RenderContract(a, ContractRenderOptions{SkipTimeline: true})
	if strings.Contains(short, "## Histórico") {
		t.Errorf("timeline rendered despite SkipTimeline:\n%s", short)
	}
}

func TestTableMarkdown(t *testing.T) {
	table, err := contracts.BuildTable(context.Background(), snapshot(), 2025, today)
	if err != nil {
		t.Fatal(err)
	}
	doc := TableMarkdown(table)
	assertContains(t, doc,
		"# Gestão Financeira de Contratos 2025",
		"| 00001/2023 | Serviços |",
		"**Reforçar**",
		"R$ 47.580,65",
		"## Contratos com erro",
	)
}

func TestInvoicesMarkdown(t *testing.T) {
	assertContains(t, InvoicesMarkdown("1/2025", nil), "# Faturas do contrato 1/2025", "Sem faturas.")

	doc := InvoicesMarkdown("1/2025", []contracts.Invoice{
		{Number: "123", Reference: "03/2025", Issued: date.New(2025, 3, 10), Value: contracts.MustParseAmount("1.234,56"), Situation: "Pago"},
		{Number: "124", Value: contracts.MustParseAmount("10,00")},
	})
	assertContains(t, doc, "| 123 | 03/2025 | 2025-03-10 |", "2 faturas, total R$ 1.244,56.")
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 3); got != "abc..." {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("abc", 3); got != "abc" {
		t.Errorf("truncate() = %q", got)
	}
}
