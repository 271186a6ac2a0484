package core

import (
	"testing"
	"time"
)

func TestMergeMonthlyCanonicalOrder(t *testing.T) {
	w := NewYearWindow(2024)
	ledger := Ledger{
		Columns: ColumnSet{ProductSales: true, SellingFees: true},
		Records: []Record{
			{Type: "Refund", Total: cents(-100), Time: ts(2024, time.April, 2), Quantity: qty(3), ProductSales: cents(2000)},
		},
	}

	merged := MergeMonthly(MonthlyUnits(ledger, w), MonthlySummary(ledger, w))

	want := []string{
		ColProductSales, ColUnitsSold, ColSellingFees,
		"Shipping Services", "Refund", "FBA Inventory Fee", "FBA Customer Return Fee",
		ColProductMinusExpenses, "SAFE-T reimbursement",
	}
	if len(merged.Columns) != len(want) {
		t.Fatalf("expected columns %v, got %v", want, merged.Columns)
	}
	for i := range want {
		if merged.Columns[i] != want[i] {
			t.Fatalf("column %d: expected %q, got %q (all: %v)", i, want[i], merged.Columns[i], merged.Columns)
		}
	}

	if len(merged.Rows) != 12 {
		t.Fatalf("expected 12 rows, got %d", len(merged.Rows))
	}
	april, _ := merged.Row(MonthKey{Year: 2024, Month: time.April})
	if april.Value(ColUnitsSold) != 3 || april.Value("Refund") != -100 || april.Value(ColProductSales) != 2000 {
		t.Fatalf("april row wrong: %+v", april.Values)
	}
}

// Shared columns are summed cell-wise, so self-merge doubles every value.
func TestMergeMonthlySelfMergeDoubles(t *testing.T) {
	w := NewYearWindow(2024)
	ledger := Ledger{Records: []Record{
		{Type: "Refund", Total: cents(700), Time: ts(2024, time.August, 8)},
	}}
	summary := MonthlySummary(ledger, w)

	doubled := MergeMonthly(summary, summary)
	if len(doubled.Rows) != len(summary.Rows) {
		t.Fatalf("self-merge changed shape: %d vs %d rows", len(doubled.Rows), len(summary.Rows))
	}
	for i, row := range summary.Rows {
		for _, col := range summary.Columns {
			if got := doubled.Rows[i].Value(col); got != 2*row.Value(col) {
				t.Fatalf("month %v column %q: expected %d, got %d", row.Month, col, 2*row.Value(col), got)
			}
		}
	}
}

func TestMergeMonthlyAsymmetricInputs(t *testing.T) {
	jan := MonthKey{Year: 2024, Month: time.January}
	feb := MonthKey{Year: 2024, Month: time.February}

	left := MonthlyTable{
		Columns: []string{ColUnitsSold},
		Rows:    []MonthlyRow{{Month: jan, Values: map[string]int64{ColUnitsSold: 4}}},
	}
	right := MonthlyTable{
		Columns: []string{"Refund"},
		Rows:    []MonthlyRow{{Month: feb, Values: map[string]int64{"Refund": -300}}},
	}

	merged := MergeMonthly(left, right)
	if len(merged.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(merged.Rows))
	}
	if merged.Rows[0].Month != jan || merged.Rows[1].Month != feb {
		t.Fatalf("rows not in calendar order: %v, %v", merged.Rows[0].Month, merged.Rows[1].Month)
	}
	// Missing side fills with zero.
	if merged.Rows[0].Value("Refund") != 0 || merged.Rows[1].Value(ColUnitsSold) != 0 {
		t.Fatalf("gap not zero-filled: %+v", merged.Rows)
	}
	if merged.Rows[1].Value("Refund") != -300 {
		t.Fatalf("right value lost: %+v", merged.Rows[1].Values)
	}
}

func TestMergeMonthlyEmptyInputs(t *testing.T) {
	merged := MergeMonthly(MonthlyTable{}, MonthlyTable{})
	if len(merged.Rows) != 0 || len(merged.Columns) != 0 {
		t.Fatalf("expected empty result, got %+v", merged)
	}
}
