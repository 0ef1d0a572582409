package contracts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// Snapshot files in a data directory.
const (
	ContractsFile   = "contratos.json"
	HistoriesFile   = "historicos.json"
	CommitmentsFile = "empenhos.json"
)

// Snapshot is the registry data collected for a management unit. Histories and
// commitments are keyed by contract id.
type Snapshot struct {
	Contracts   []RawContract
	Histories   map[string][]RawEvent
	Commitments map[string][]RawCommitment
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Histories:   make(map[string][]RawEvent),
		Commitments: make(map[string][]RawCommitment),
	}
}

// Find returns the contract whose id or number is query.
func (s *Snapshot) Find(query string) (RawContract, error) {
	for _, c := range s.Contracts {
		if c.Number == query || strconv.FormatInt(c.ID, 10) == query {
			return c, nil
		}
	}
	return RawContract{}, fmt.Errorf("contract %q not found", query)
}

// Record is a contract with its history and commitments, normalized.
type Record struct {
	Contract    Contract
	History     []Event
	Commitments []Commitment
}

// Record normalizes a contract of the snapshot with its related collections.
func (s *Snapshot) Record(raw RawContract) (Record, error) {
	var rec Record
	var err error
	if rec.Contract, err = raw.Normalize(); err != nil {
		return rec, err
	}
	if rec.History, err = NormalizeHistory(s.Histories[raw.Key()]); err != nil {
		return rec, err
	}
	if rec.Commitments, err = NormalizeCommitments(s.Commitments[raw.Key()]); err != nil {
		return rec, err
	}
	return rec, nil
}

// LoadSnapshot reads a snapshot from a data directory. The contracts file is
// required, missing histories or commitments are empty.
func LoadSnapshot(dir string) (*Snapshot, error) {
	s := NewSnapshot()
	if err := readJSON(filepath.Join(dir, ContractsFile), &s.Contracts); err != nil {
		return nil, err
	}
	for file, v := range map[string]any{HistoriesFile: &s.Histories, CommitmentsFile: &s.Commitments} {
		err := readJSON(filepath.Join(dir, file), v)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	if s.Histories == nil {
		s.Histories = make(map[string][]RawEvent)
	}
	if s.Commitments == nil {
		s.Commitments = make(map[string][]RawCommitment)
	}
	return s, nil
}

// SaveSnapshot writes the three snapshot files in dir, creating it if needed.
func SaveSnapshot(dir string, s *Snapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create data dir: %w", err)
	}
	files := []struct {
		name string
		v    any
	}{
		{ContractsFile, s.Contracts},
		{HistoriesFile, s.Histories},
		{CommitmentsFile, s.Commitments},
	}
	for _, f := range files {
		if err := writeJSON(filepath.Join(dir, f.name), f.v); err != nil {
			return err
		}
	}
	return nil
}

func readJSON(file string, v any) error {
	content, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("could not decode %q: %w", file, err)
	}
	return nil
}

// writeJSON replaces file atomically, so that a watcher never reads it half written.
func writeJSON(file string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("could not encode %q: %w", file, err)
	}
	tmp := file + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("could not write %q: %w", file, err)
	}
	return os.Rename(tmp, file)
}
