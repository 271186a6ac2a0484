package core

import (
	"fmt"
	"sort"
	"time"
)

// DefaultSKUSortColumn is used when the caller does not name a sort column.
const DefaultSKUSortColumn = ColLedgerUnitsSold

// SKULedgerColumns are the output columns of the cumulative SKU ledger, and
// the only valid sort keys.
var SKULedgerColumns = []string{ColSKU, ColDateTime, ColLedgerUnitsSold, ColLedgerCumulative}

// BuildSKULedger computes the cumulative sales ledger of every SKU over a
// window-filtered ledger. Records without a SKU (fee and service events) are
// not part of any SKU's history and are dropped. The rest are grouped by
// (sku, order id, timestamp) so duplicate lines of the same order event
// collapse into one; malformed quantity or product sales values count as zero
// rather than excluding the row. Within each SKU, rows are ordered by timestamp ascending and running
// sums of quantity and product sales accumulate into UnitsSold and
// CumulativeProductSales, resetting at each SKU boundary. The result is then
// sorted descending by sortBy (DefaultSKUSortColumn when empty); a column not
// present in the output yields ErrInvalidSortKey.
func BuildSKULedger(l Ledger, w YearWindow, sortBy string) ([]SKULedgerRow, error) {
	if sortBy == "" {
		sortBy = DefaultSKUSortColumn
	}
	if !validSKUSortColumn(sortBy) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortKey, sortBy)
	}

	type groupKey struct {
		sku     string
		orderID string
		at      time.Time
	}
	type groupSum struct {
		quantity int64
		sales    int64
	}

	groups := make(map[groupKey]*groupSum)
	var order []groupKey
	for _, rec := range l.Records {
		if rec.Time == nil || !w.Contains(*rec.Time) {
			continue
		}
		if rec.SKU == "" {
			continue
		}
		key := groupKey{sku: rec.SKU, orderID: rec.OrderID, at: *rec.Time}
		g, ok := groups[key]
		if !ok {
			g = &groupSum{}
			groups[key] = g
			order = append(order, key)
		}
		if rec.Quantity != nil {
			g.quantity += *rec.Quantity
		}
		if rec.ProductSales != nil {
			g.sales += rec.ProductSales.Cents
		}
	}

	// Chronological order per SKU so the running sums accumulate in time;
	// order id breaks timestamp ties deterministically.
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.sku != b.sku {
			return a.sku < b.sku
		}
		if !a.at.Equal(b.at) {
			return a.at.Before(b.at)
		}
		return a.orderID < b.orderID
	})

	rows := make([]SKULedgerRow, 0, len(order))
	var (
		currentSKU string
		units      int64
		sales      int64
	)
	for i, key := range order {
		if i == 0 || key.sku != currentSKU {
			currentSKU = key.sku
			units = 0
			sales = 0
		}
		g := groups[key]
		units += g.quantity
		sales += g.sales
		rows = append(rows, SKULedgerRow{
			SKU:                    key.sku,
			Time:                   key.at,
			UnitsSold:              units,
			CumulativeProductSales: Money{Cents: sales},
		})
	}

	sortSKULedger(rows, sortBy)
	return rows, nil
}

func validSKUSortColumn(name string) bool {
	for _, c := range SKULedgerColumns {
		if c == name {
			return true
		}
	}
	return false
}

// sortSKULedger sorts descending by the chosen column. The sort is stable, so
// ties keep the (sku, time ascending) order established before.
func sortSKULedger(rows []SKULedgerRow, column string) {
	sort.SliceStable(rows, func(i, j int) bool {
		switch column {
		case ColSKU:
			return rows[i].SKU > rows[j].SKU
		case ColDateTime:
			return rows[i].Time.After(rows[j].Time)
		case ColLedgerCumulative:
			return rows[i].CumulativeProductSales.Cents > rows[j].CumulativeProductSales.Cents
		default: // ColLedgerUnitsSold
			return rows[i].UnitsSold > rows[j].UnitsSold
		}
	})
}
