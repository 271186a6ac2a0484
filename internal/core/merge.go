package core

import "sort"

// reportColumnOrder is the canonical presentation prefix of the merged
// monthly report. Columns absent from both inputs are omitted; columns
// outside the prefix keep their existing order.
var reportColumnOrder = []string{
	ColProductSales,
	ColUnitsSold,
	ColSellingFees,
	"Shipping Services",
	"Refund",
	"FBA Inventory Fee",
	"FBA Customer Return Fee",
	ColProductMinusExpenses,
}

// MergeMonthly outer-joins two monthly tables on MonthKey. Both sides of the
// regular pipeline already span the same 12 months, but asymmetric inputs are
// tolerated: the result covers the union of months in calendar order with
// missing cells filled with zero. A column present on both sides is summed
// cell-wise, so merging a report with itself doubles its values.
func MergeMonthly(a, b MonthlyTable) MonthlyTable {
	months := unionMonths(a, b)
	columns := mergeColumns(a.Columns, b.Columns)

	out := MonthlyTable{Columns: columns}
	for _, month := range months {
		row := MonthlyRow{Month: month, Values: make(map[string]int64, len(columns))}
		left, _ := a.Row(month)
		right, _ := b.Row(month)
		for _, col := range columns {
			row.Values[col] = left.Value(col) + right.Value(col)
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

func unionMonths(a, b MonthlyTable) []MonthKey {
	seen := make(map[MonthKey]bool)
	var months []MonthKey
	for _, t := range []MonthlyTable{a, b} {
		for _, r := range t.Rows {
			if !seen[r.Month] {
				seen[r.Month] = true
				months = append(months, r.Month)
			}
		}
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	return months
}

// mergeColumns unions the two column lists and reorders them into the
// canonical prefix followed by the remaining columns in their existing order.
func mergeColumns(a, b []string) []string {
	present := make(map[string]bool)
	var union []string
	for _, col := range append(append([]string{}, a...), b...) {
		if !present[col] {
			present[col] = true
			union = append(union, col)
		}
	}

	var ordered []string
	inPrefix := make(map[string]bool)
	for _, col := range reportColumnOrder {
		if present[col] {
			ordered = append(ordered, col)
			inPrefix[col] = true
		}
	}
	for _, col := range union {
		if !inPrefix[col] {
			ordered = append(ordered, col)
		}
	}
	return ordered
}
