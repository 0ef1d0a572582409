package cmd

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/etnz/contracts"
	"github.com/etnz/contracts/date"
	"go.uber.org/zap/zaptest"
)

// newTestServer is a helper for test serving a snapshot of one amended contract.
func newTestServer(t *testing.T) (*server, *contracts.Snapshot) {
	t.Helper()
	twelve := 12
	snap := contracts.NewSnapshot()
	snap.Contracts = []contracts.RawContract{{
		ID: 1, Number: "00001/2023", Category: "Serviços",
		Supplier:      contracts.RawSupplier{Name: "Alfa Ltda"},
		ValidityStart: "2023-03-01", ValidityEnd: "2026-03-01",
		GlobalValue: "120.000,00", Installments: &twelve,
	}}
	snap.Histories["1"] = []contracts.RawEvent{
		{Type: "Termo Aditivo", Signed: "2025-07-10", NewValueFrom: "2025-07-16", NewGlobalValue: "180.000,00"},
	}
	snap.Commitments["1"] = []contracts.RawCommitment{
		{Number: "2025NE1", Issued: "2025-02-01", Committed: "100.000,00"},
	}

	dir := t.TempDir()
	if err := contracts.SaveSnapshot(dir, snap); err != nil {
		t.Fatal(err)
	}
	s := newServer(dir, zaptest.NewLogger(t))
	s.today = func() date.Date { return date.New(2025, 10, 1) }
	if err := s.reload(); err != nil {
		t.Fatal(err)
	}
	return s, snap
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestServer(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.routes()

	tests := []struct {
		target string
		status int
		want   []string
	}{
		{"/", http.StatusOK, []string{"Painel Executivo de Contratos 2025", "<table>", "R$ 147.580,65"}},
		{"/?ano=2026", http.StatusOK, []string{"Painel Executivo de Contratos 2026"}},
		{"/?ano=abc", http.StatusBadRequest, []string{"invalid year"}},
		{"/financeiro", http.StatusOK, []string{"Gestão Financeira de Contratos 2025", "00001/2023", "R$ 47.580,65"}},
		{"/contrato/00001/2023", http.StatusOK, []string{"Contrato 00001/2023", "parcial_valor_novo"}},
		{"/contrato/1", http.StatusOK, []string{"Contrato 00001/2023"}},
		{"/contrato/42", http.StatusNotFound, []string{"not found"}},
		{"/nope", http.StatusNotFound, nil},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, h, tt.target)
			if rec.Code != tt.status {
				t.Fatalf("GET %s = %d, want %d:\n%s", tt.target, rec.Code, tt.status, rec.Body)
			}
			for _, w := range tt.want {
				if !strings.Contains(rec.Body.String(), w) {
					t.Errorf("GET %s: missing %q in:\n%s", tt.target, w, rec.Body)
				}
			}
		})
	}
}

func TestServerReload(t *testing.T) {
	s, snap := newTestServer(t)
	h := s.routes()

	// warm the memo
	if rec := get(t, h, "/financeiro"); rec.Code != http.StatusOK {
		t.Fatalf("GET /financeiro = %d", rec.Code)
	}
	if s.analyzer.Memo.Len() == 0 {
		t.Fatal("exercise not memoized")
	}

	snap.Commitments["1"] = []contracts.RawCommitment{
		{Number: "2025NE1", Issued: "2025-02-01", Committed: "147.580,65"},
	}
	if err := contracts.SaveSnapshot(s.dir, snap); err != nil {
		t.Fatal(err)
	}
	if err := s.reload(); err != nil {
		t.Fatal(err)
	}
	if n := s.analyzer.Memo.Len(); n != 0 {
		t.Errorf("memo holds %d exercises after reload, want 0", n)
	}
	rec := get(t, h, "/financeiro")
	if strings.Contains(rec.Body.String(), "<strong>Reforçar</strong>") {
		t.Errorf("reloaded commitments not used:\n%s", rec.Body)
	}
}

func TestSnapshotFile(t *testing.T) {
	for name, want := range map[string]bool{
		"/data/contratos.json":     true,
		"/data/historicos.json":    true,
		"empenhos.json":            true,
		"/data/contratos.json.tmp": false,
		"/data/other.json":         false,
	} {
		if got := snapshotFile(name); got != want {
			t.Errorf("snapshotFile(%q) = %v, want %v", name, got, want)
		}
	}
}
