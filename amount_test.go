package contracts

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		text string
		want float64
	}{
		{"120.000,00", 120000},
		{"1.234,5", 1234.5},
		{"10", 10},
		{"0,01", 0.01},
		{"-2.500,75", -2500.75},
		{"", 0},
		{"   ", 0},
	}
	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			got, err := ParseAmount(tc.text)
			if err != nil {
				t.Fatalf("ParseAmount(%q) failed: %v", tc.text, err)
			}
			if !got.Equal(A(tc.want)) {
				t.Errorf("ParseAmount(%q) = %s, want %v", tc.text, got.Decimal(), tc.want)
			}
		})
	}
}

func TestParseAmount_Malformed(t *testing.T) {
	for _, text := range []string{"abc", "12,3,4", "R$ 10,00"} {
		_, err := ParseAmount(text)
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Errorf("ParseAmount(%q) error = %v, want a *FormatError", text, err)
			continue
		}
		if fe.Value != text {
			t.Errorf("ParseAmount(%q) FormatError.Value = %q", text, fe.Value)
		}
	}
}

func TestAmount_String(t *testing.T) {
	testCases := []struct {
		a    Amount
		want string
	}{
		{A(1234.56), "R$ 1.234,56"},
		{A(0), "R$ 0,00"},
		{A(147580.645161), "R$ 147.580,65"},
		{A(-10), "-R$ 10,00"},
		{A(1000000), "R$ 1.000.000,00"},
	}
	for _, tc := range testCases {
		if got := tc.a.String(); got != tc.want {
			t.Errorf("%s.String() = %q, want %q", tc.a.Decimal(), got, tc.want)
		}
	}
}

func TestAmount_Ratio(t *testing.T) {
	if got := A(25).Ratio(A(200)); got != 12.5 {
		t.Errorf("Ratio() = %v, want 12.5", got)
	}
	if got := A(25).Ratio(Amount{}); got != 0 {
		t.Errorf("Ratio() by zero = %v, want 0", got)
	}
	if got, want := A(12.5).Ratio(A(100)).String(), "12.5%"; got != want {
		t.Errorf("Percent.String() = %q, want %q", got, want)
	}
}

func TestAmount_MarshalJSON(t *testing.T) {
	b, err := A(10.005).Round(2).MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(b), "10.01"; got != want {
		t.Errorf("MarshalJSON() = %s, want %s", got, want)
	}
}
