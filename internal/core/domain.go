// Package core implements the ledger aggregation pipeline: normalization of raw
// transaction tables, calendar-year windowing, category and monthly aggregation,
// report merging, and the per-SKU cumulative sales ledger.
//
// Every operation is a pure function of its inputs. Input tables and ledgers are
// never mutated; callers may share them read-only across concurrent computations.
package core

import (
	"errors"
	"fmt"
	"time"
)

// Canonical column names of a raw transaction table. Names are case-sensitive
// and match the merchant export headers.
const (
	ColType         = "type"
	ColTotal        = "total"
	ColDateTime     = "date/time"
	ColQuantity     = "quantity"
	ColSKU          = "sku"
	ColOrderID      = "order id"
	ColSellingFees  = "selling fees"
	ColProductSales = "product sales"
)

// Derived column names produced by the aggregators.
const (
	ColUnitsSold            = "units_sold"
	ColProductMinusExpenses = "product_minus_expenses"

	// SKU ledger output columns.
	ColLedgerUnitsSold  = "Units sold"
	ColLedgerCumulative = "Cumulative product sales"
)

// PivotCategories is the fixed, ordered list of transaction types folded into
// the monthly summary. Other types still appear in the category totals but are
// dropped from the monthly view.
var PivotCategories = []string{
	"Shipping Services",
	"Refund",
	"FBA Inventory Fee",
	"FBA Customer Return Fee",
	"SAFE-T reimbursement",
}

var (
	// ErrInvalidSortKey is returned when the SKU ledger is asked to sort by a
	// column that does not exist in its output.
	ErrInvalidSortKey = errors.New("invalid sort key")

	// ErrInvalidAmount is returned by ParseMoney for unparseable amounts.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrMissingColumn is returned when a raw table lacks a column an
	// operation cannot degrade without.
	ErrMissingColumn = errors.New("missing column")
)

// MonthKey identifies one calendar month of a specific year.
type MonthKey struct {
	Year  int
	Month time.Month
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// Before reports whether k is chronologically before other.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// MonthOf returns the MonthKey containing t.
func MonthOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// Record is one normalized financial event. Pointer fields are nil when the
// source value was absent or failed coercion; nil values contribute zero to
// sums and exclude the row from time-windowed results (for Time).
type Record struct {
	Type         string
	Total        *Money
	Time         *time.Time
	Quantity     *int64
	SKU          string
	OrderID      string
	SellingFees  *Money
	ProductSales *Money
}

// ColumnSet records which columns were present in the source table. Absent
// optional columns degrade to all-zero series instead of failing.
type ColumnSet struct {
	Type         bool
	Total        bool
	DateTime     bool
	Quantity     bool
	SKU          bool
	OrderID      bool
	SellingFees  bool
	ProductSales bool
}

// Ledger is a normalized record table plus the column capabilities of its
// source. Aggregators treat a Ledger as read-only.
type Ledger struct {
	Records []Record
	Columns ColumnSet
}

// TypeTotal is the all-time sum of `total` for one transaction type.
type TypeTotal struct {
	Type  string
	Total Money
}

// MonthlyRow holds the aggregated values of one month. Money columns are in
// cents; ColUnitsSold is a plain count.
type MonthlyRow struct {
	Month  MonthKey
	Values map[string]int64
}

// Value returns the cell for col, zero when absent.
func (r MonthlyRow) Value(col string) int64 {
	return r.Values[col]
}

// MonthlyTable is a month-indexed report: one row per MonthKey in calendar
// order, with an ordered list of value columns.
type MonthlyTable struct {
	Columns []string
	Rows    []MonthlyRow
}

// Row returns the row for the given month, if present.
func (t MonthlyTable) Row(k MonthKey) (MonthlyRow, bool) {
	for _, r := range t.Rows {
		if r.Month == k {
			return r, true
		}
	}
	return MonthlyRow{}, false
}

// SKULedgerRow is one point of the cumulative sales ledger of a SKU.
// UnitsSold and CumulativeProductSales are running totals scoped to the SKU,
// in timestamp order. They may decrease when source rows carry negative
// quantities or amounts (refunds sharing the SKU).
type SKULedgerRow struct {
	SKU                    string
	Time                   time.Time
	UnitsSold              int64
	CumulativeProductSales Money
}
