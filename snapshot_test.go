package contracts

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "raw")
	want := fixture()

	if err := SaveSnapshot(dir, want); err != nil {
		t.Fatalf("SaveSnapshot() failed: %v", err)
	}
	for _, f := range []string{ContractsFile, HistoriesFile, CommitmentsFile} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Errorf("missing %s: %v", f, err)
		}
	}

	got, err := LoadSnapshot(dir)
	if err != nil {
		t.Fatalf("LoadSnapshot() failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadSnapshot() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSnapshot_Optional(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ContractsFile), []byte(`[{"id": 9, "numero": "9/2025", "vigencia_inicio": "2025-01-01", "valor_global": "1,00"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadSnapshot(dir)
	if err != nil {
		t.Fatalf("LoadSnapshot() failed: %v", err)
	}
	if len(s.Contracts) != 1 || s.Histories == nil || s.Commitments == nil {
		t.Errorf("LoadSnapshot() = %+v", s)
	}
	if _, err := s.Find("9/2025"); err != nil {
		t.Errorf("Find(number) failed: %v", err)
	}
	if _, err := s.Find("9"); err != nil {
		t.Errorf("Find(id) failed: %v", err)
	}
	if _, err := s.Find("10"); err == nil {
		t.Error("Find(unknown) want an error")
	}
}

func TestLoadSnapshot_Missing(t *testing.T) {
	_, err := LoadSnapshot(t.TempDir())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadSnapshot() error = %v, want fs.ErrNotExist", err)
	}
}

func TestSnapshot_Record(t *testing.T) {
	s := fixture()
	rec, err := s.Record(s.Contracts[0])
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if len(rec.History) != 2 || len(rec.Commitments) != 2 || rec.Contract.Supplier != "Alfa Ltda" {
		t.Errorf("Record() = %+v", rec)
	}
	var mf *MissingFieldError
	if _, err := s.Record(s.Contracts[3]); !errors.As(err, &mf) {
		t.Errorf("Record() error = %v, want a *MissingFieldError", err)
	}
}
