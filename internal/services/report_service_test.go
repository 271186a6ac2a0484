package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"amzledger/internal/core"
	"amzledger/internal/log"
	"amzledger/internal/source/memory"
)

func testService(store *memory.Store) *ReportService {
	logger := log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
	return NewReportService(store, core.NewNormalizer(core.NormalizerConfig{}), logger, 8, time.Minute)
}

func TestReportsBundle(t *testing.T) {
	svc := testService(memory.NewSeeded())

	bundle, err := svc.Reports(context.Background(), 2024, "")
	if err != nil {
		t.Fatalf("Reports() error = %v", err)
	}
	if bundle.Year != 2024 {
		t.Fatalf("Year = %d, want 2024", bundle.Year)
	}

	wantTotals := []core.TypeTotal{
		{Type: "FBA Inventory Fee", Total: core.Money{Cents: -490}},
		{Type: "Order", Total: core.Money{Cents: 5525}},
		{Type: "Refund", Total: core.Money{Cents: -2200}},
		{Type: "SAFE-T reimbursement", Total: core.Money{Cents: 1800}},
		{Type: "Shipping Services", Total: core.Money{Cents: -1240}},
	}
	if len(bundle.TypeTotals) != len(wantTotals) {
		t.Fatalf("TypeTotals len = %d, want %d", len(bundle.TypeTotals), len(wantTotals))
	}
	for i, want := range wantTotals {
		if bundle.TypeTotals[i] != want {
			t.Errorf("TypeTotals[%d] = %+v, want %+v", i, bundle.TypeTotals[i], want)
		}
	}

	if len(bundle.Monthly.Rows) != 12 {
		t.Fatalf("Monthly rows = %d, want 12", len(bundle.Monthly.Rows))
	}
	jan := bundle.Monthly.Rows[0]
	if got := jan.Value(core.ColUnitsSold); got != 3 {
		t.Errorf("January units_sold = %d, want 3", got)
	}
	if got := jan.Value(core.ColProductSales); got != 6500 {
		t.Errorf("January product sales = %d, want 6500", got)
	}
	if got := jan.Value(core.ColProductMinusExpenses); got != 5525 {
		t.Errorf("January product_minus_expenses = %d, want 5525", got)
	}
	feb := bundle.Monthly.Rows[1]
	if got := feb.Value(core.ColProductMinusExpenses); got != -4400 {
		t.Errorf("February product_minus_expenses = %d, want -4400", got)
	}
	may := bundle.Monthly.Rows[4]
	for _, col := range bundle.Monthly.Columns {
		if got := may.Value(col); got != 0 {
			t.Errorf("May %q = %d, want 0", col, got)
		}
	}

	// The two fee/service rows of the seed carry no SKU and stay out of
	// the ledger.
	if len(bundle.SKULedger) != 4 {
		t.Fatalf("SKULedger len = %d, want 4", len(bundle.SKULedger))
	}
	top := bundle.SKULedger[0]
	if top.SKU != "DEMO-2" || top.UnitsSold != 2 || top.CumulativeProductSales.Cents != 4000 {
		t.Fatalf("top ledger row = %+v, want DEMO-2 with 2 units and 4000 cents", top)
	}
}

func TestReportsInvalidSortKey(t *testing.T) {
	svc := testService(memory.NewSeeded())

	_, err := svc.Reports(context.Background(), 2024, "Profit margin")
	if !errors.Is(err, core.ErrInvalidSortKey) {
		t.Fatalf("Reports() error = %v, want ErrInvalidSortKey", err)
	}
}

func TestReportsCaching(t *testing.T) {
	store := memory.NewSeeded()
	svc := testService(store)
	ctx := context.Background()

	first, err := svc.Reports(ctx, 2024, "")
	if err != nil {
		t.Fatalf("Reports() error = %v", err)
	}

	// The source changes underneath, but the memoized bundle is served
	// until invalidation.
	store.Replace(core.NewTable(core.ColDateTime, core.ColType, core.ColTotal))
	cached, err := svc.Reports(ctx, 2024, "")
	if err != nil {
		t.Fatalf("Reports() error = %v", err)
	}
	if cached != first {
		t.Fatal("expected memoized bundle before invalidation")
	}

	svc.Invalidate()
	fresh, err := svc.Reports(ctx, 2024, "")
	if err != nil {
		t.Fatalf("Reports() error = %v", err)
	}
	if fresh == first {
		t.Fatal("expected recomputed bundle after invalidation")
	}
	if len(fresh.SKULedger) != 0 {
		t.Fatalf("SKULedger len = %d, want 0 after source swap", len(fresh.SKULedger))
	}
}
