package contracts

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConsolidate(t *testing.T) {
	history := []Event{
		valueChange("2025-09-01", "2025-08-20", "150.000,00"),
		valueChange("2024-12-01", "2024-11-20", "110.000,00"), // previous year
		valueChange("", "2025-02-01", "999.000,00"),           // no effective date
		{Type: "Termo Aditivo", Effective: D("2025-03-01")},    // no value
		valueChange("2025-07-16", "2025-07-10", "180.000,00"),
		{Type: "Apostilamento", Effective: D("2025-05-01"), NewInstallmentValue: R("11.000,00")},
	}

	got := Consolidate(history, 2025)

	var dates []string
	for _, e := range got {
		dates = append(dates, e.Date().String())
	}
	want := []string{"2025-05-01", "2025-07-16", "2025-09-01"}
	if diff := cmp.Diff(want, dates); diff != "" {
		t.Errorf("Consolidate() dates mismatch (-want +got):\n%s", diff)
	}
}

func TestConsolidate_SameDay(t *testing.T) {
	testCases := []struct {
		name    string
		history []Event
		want    Amount
	}{
		{
			name: "latest signature wins",
			history: []Event{
				valueChange("2025-07-01", "2025-06-25", "240.000,00"),
				valueChange("2025-07-01", "2025-06-20", "180.000,00"),
			},
			want: R("240.000,00"),
		},
		{
			name: "unsigned loses to signed",
			history: []Event{
				valueChange("2025-07-01", "2025-06-20", "180.000,00"),
				valueChange("2025-07-01", "", "240.000,00"),
			},
			want: R("180.000,00"),
		},
		{
			name: "equal signatures keep the last",
			history: []Event{
				valueChange("2025-07-01", "2025-06-20", "180.000,00"),
				valueChange("2025-07-01", "2025-06-20", "240.000,00"),
			},
			want: R("240.000,00"),
		},
		{
			name: "valueless candidate is ignored",
			history: []Event{
				valueChange("2025-07-01", "2025-06-20", "180.000,00"),
				{Effective: D("2025-07-01"), Signed: D("2025-06-30")},
			},
			want: R("180.000,00"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Consolidate(tc.history, 2025)
			if len(got) != 1 {
				t.Fatalf("Consolidate() returned %d events, want 1", len(got))
			}
			if !got[0].NewGlobal.Equal(tc.want) {
				t.Errorf("Consolidate() kept %s, want %s", got[0].NewGlobal, tc.want)
			}
		})
	}
}

func TestConsolidate_Empty(t *testing.T) {
	if got := Consolidate(nil, 2025); len(got) != 0 {
		t.Errorf("Consolidate(nil) = %v, want empty", got)
	}
}
