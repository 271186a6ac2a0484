package core

// MonthlySummary pivots a window-filtered ledger into a 12-row month-by-
// category table for w. Cells hold the sum of `total` per (month, type) for
// the recognized PivotCategories; other types are dropped from this view.
// Monthly sums of `selling fees` and `product sales` are folded in as extra
// columns, all-zero when the source column is absent entirely. Rows are
// reindexed to the full 12-month domain of w, zero-filled, and the derived
// product_minus_expenses column is computed after gap filling.
func MonthlySummary(l Ledger, w YearWindow) MonthlyTable {
	recognized := make(map[string]bool, len(PivotCategories))
	for _, c := range PivotCategories {
		recognized[c] = true
	}

	type cellKey struct {
		month MonthKey
		col   string
	}
	cells := make(map[cellKey]int64)

	for _, rec := range l.Records {
		if rec.Time == nil || !w.Contains(*rec.Time) {
			continue
		}
		month := MonthOf(*rec.Time)
		if recognized[rec.Type] && rec.Total != nil {
			cells[cellKey{month, rec.Type}] += rec.Total.Cents
		}
		if rec.SellingFees != nil {
			cells[cellKey{month, ColSellingFees}] += rec.SellingFees.Cents
		}
		if rec.ProductSales != nil {
			cells[cellKey{month, ColProductSales}] += rec.ProductSales.Cents
		}
	}

	columns := append([]string{}, PivotCategories...)
	columns = append(columns, ColSellingFees, ColProductSales, ColProductMinusExpenses)

	table := MonthlyTable{Columns: columns}
	for _, month := range w.Months() {
		row := MonthlyRow{Month: month, Values: make(map[string]int64, len(columns))}
		for _, col := range columns {
			row.Values[col] = cells[cellKey{month, col}]
		}
		row.Values[ColProductMinusExpenses] = productMinusExpenses(row)
		table.Rows = append(table.Rows, row)
	}
	return table
}

// productMinusExpenses is the net position of a month: product sales plus the
// (signed) reimbursements, shipping, refunds and fee categories.
func productMinusExpenses(row MonthlyRow) int64 {
	sum := row.Value(ColProductSales) + row.Value(ColSellingFees)
	for _, c := range PivotCategories {
		sum += row.Value(c)
	}
	return sum
}

// MonthlyUnits sums `quantity` per month of w over a window-filtered ledger,
// reindexed to the full 12-month domain with zero fill. Unparseable
// quantities contribute zero. Independent of MonthlySummary: the two share no
// intermediate state.
func MonthlyUnits(l Ledger, w YearWindow) MonthlyTable {
	sums := make(map[MonthKey]int64)
	for _, rec := range l.Records {
		if rec.Time == nil || !w.Contains(*rec.Time) {
			continue
		}
		if rec.Quantity != nil {
			sums[MonthOf(*rec.Time)] += *rec.Quantity
		}
	}

	table := MonthlyTable{Columns: []string{ColUnitsSold}}
	for _, month := range w.Months() {
		table.Rows = append(table.Rows, MonthlyRow{
			Month:  month,
			Values: map[string]int64{ColUnitsSold: sums[month]},
		})
	}
	return table
}
