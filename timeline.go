package contracts

import (
	"slices"
	"strings"

	"github.com/etnz/contracts/date"
)

// Impact tells what a history entry changes in a contract.
type Impact string

const (
	ImpactNone  Impact = "—"
	ImpactStart Impact = "Início"
	ImpactTerm  Impact = "Prazo"
	ImpactValue Impact = "Valor"
)

// TimelineEntry is a history entry as presented in a contract audit.
type TimelineEntry struct {
	Order    int
	Type     string
	Signed   date.Date
	Validity date.Range
	Name     string
	Impact   Impact
	Note     string
}

const noteLength = 180

// Timeline orders the history by signature date and classifies each entry.
// Unsigned entries come first.
func Timeline(events []Event) []TimelineEntry {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, bySignature)

	entries := make([]TimelineEntry, 0, len(sorted))
	for i, e := range sorted {
		entry := TimelineEntry{
			Order:    i + 1,
			Type:     e.Type,
			Signed:   e.Signed,
			Validity: e.Validity,
			Name:     e.Type,
			Impact:   ImpactNone,
			Note:     summarize(e.Note),
		}
		if e.Type == "Contrato" {
			entry.Name = "Assinatura do contrato"
			entry.Impact = ImpactStart
		} else {
			if slices.Contains(e.Qualifications, "VIGÊNCIA") {
				entry.Impact = ImpactTerm
				entry.Name = "Prorrogação"
				if strings.Contains(strings.ToLower(e.Note), "excepcional") {
					entry.Name = "Prorrogação excepcional"
				}
			}
			if slices.Contains(e.Qualifications, "REAJUSTE") || slices.Contains(e.Qualifications, "ACRÉSCIMO / SUPRESSÃO") {
				entry.Impact = ImpactValue
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

// summarize flattens a note on one line, truncated.
func summarize(note string) string {
	note = strings.NewReplacer("\r", " ", "\n", " ").Replace(note)
	if r := []rune(note); len(r) > noteLength {
		return string(r[:noteLength]) + "..."
	}
	return note
}

// RepactuatedIn reports whether an apostille was signed, or else published, in year.
func RepactuatedIn(events []Event, year int) bool {
	for _, e := range events {
		day := e.Signed
		if day.IsZero() {
			day = e.Published
		}
		if day.IsZero() || day.Year() != year {
			continue
		}
		if strings.Contains(strings.ToLower(e.Type), "apostilamento") {
			return true
		}
	}
	return false
}
