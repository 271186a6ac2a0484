package core

import (
	"testing"
	"time"
)

func TestYearWindowBounds(t *testing.T) {
	w := NewYearWindow(2024)

	cases := []struct {
		at   time.Time
		want bool
	}{
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), true},
		{time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC), false},
		{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		if got := w.Contains(tc.at); got != tc.want {
			t.Fatalf("Contains(%v) = %v, expected %v", tc.at, got, tc.want)
		}
	}

	if !w.Start().Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %v", w.Start())
	}
	if w.End().Year() != 2024 || w.End().Month() != time.December {
		t.Fatalf("unexpected end %v", w.End())
	}
}

func TestYearWindowMonths(t *testing.T) {
	months := NewYearWindow(2024).Months()
	if len(months) != 12 {
		t.Fatalf("expected 12 months, got %d", len(months))
	}
	for i, m := range months {
		if m.Year != 2024 || int(m.Month) != i+1 {
			t.Fatalf("month %d out of order: %v", i, m)
		}
	}
}

func TestFilterWindow(t *testing.T) {
	in := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	out := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	ledger := Ledger{Records: []Record{
		{Type: "Order", Time: &in},
		{Type: "Order", Time: &out},
		{Type: "Order", Time: nil}, // unparseable timestamp
	}}

	got := FilterWindow(ledger, NewYearWindow(2024))
	if len(got.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got.Records))
	}
	if !got.Records[0].Time.Equal(in) {
		t.Fatalf("wrong record kept: %v", got.Records[0].Time)
	}
	if len(ledger.Records) != 3 {
		t.Fatalf("input ledger mutated")
	}
}
