package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12.345", 1234, true}, // rounds down
		{"12.346", 1235, true}, // rounds up
		{"0.5", 50, true},
		{".5", 50, true},
		{"7", 700, true},
		{"", 0, false},
		{"0", 0, false},
		{"-1.00", 0, false},
		{"+1.00", 0, false},
		{"1.2.3", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q: got (%d, %v) want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestParseOptionalToCents(t *testing.T) {
	got, err := ParseOptionalToCents("  ")
	if err != nil || got != 0 {
		t.Fatalf("blank optional: got (%d, %v)", got, err)
	}
	if _, err := ParseOptionalToCents("nope"); err == nil {
		t.Fatalf("expected error for garbage optional amount")
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{1234, "12.34"},
		{5, "0.05"},
		{-5, "-0.05"},
		{0, "0.00"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("%d: got %q want %q", tc.cents, got, tc.want)
		}
	}
}
