// Package memory provides an in-process ledger source, used as the default
// backend and as the test double for services and handlers.
package memory

import (
	"context"
	"sync"

	"amzledger/internal/core"
)

// Store holds a raw ledger table in memory.
type Store struct {
	mu    sync.Mutex
	table core.Table
}

// New creates a store serving the given table.
func New(table core.Table) *Store {
	return &Store{table: table}
}

// NewSeeded creates a store with a small demonstration ledger covering
// every canonical column.
func NewSeeded() *Store {
	t := core.NewTable(
		core.ColDateTime, core.ColType, core.ColOrderID, core.ColSKU,
		core.ColQuantity, core.ColProductSales, core.ColSellingFees, core.ColTotal,
	)
	t.Append("01/15/2024 10:00:00 PST", "Order", "111-001", "DEMO-1", "1", "25.00", "-3.75", "21.25")
	t.Append("01/20/2024 18:45:00 PST", "Order", "111-002", "DEMO-2", "2", "40.00", "-6.00", "34.00")
	t.Append("02/02/2024 09:10:00 PST", "Refund", "111-001", "DEMO-1", "-1", "-25.00", "3.00", "-22.00")
	t.Append("03/05/2024 11:00:00 PDT", "Shipping Services", "", "", "", "", "", "-12.40")
	t.Append("03/18/2024 16:20:00 PDT", "FBA Inventory Fee", "", "", "", "", "", "-4.90")
	t.Append("04/01/2024 08:00:00 PDT", "SAFE-T reimbursement", "111-003", "DEMO-2", "", "", "", "18.00")
	return New(t)
}

// ReadTable returns a copy of the stored table.
func (s *Store) ReadTable(_ context.Context) (core.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := core.Table{Columns: append([]string(nil), s.table.Columns...)}
	out.Rows = make([][]string, len(s.table.Rows))
	for i, row := range s.table.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out, nil
}

// Replace swaps the stored table.
func (s *Store) Replace(table core.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table
}
