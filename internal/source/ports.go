// Package source defines the acquisition port handing raw ledger tables to
// the core, and a factory selecting the configured adapter.
package source

import (
	"context"

	"amzledger/internal/core"
)

// TableReader is the inbound port for ledger acquisition. Adapters read a raw
// transaction table from wherever it lives (CSV export, spreadsheet, store)
// and hand it over with the canonical column names of core.
type TableReader interface {
	ReadTable(ctx context.Context) (core.Table, error)
}
