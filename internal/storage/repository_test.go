package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"amzledger/internal/core"
)

func testRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestReadTableNoImports(t *testing.T) {
	repo := testRepository(t)

	_, err := repo.ReadTable(context.Background())
	if !errors.Is(err, ErrNoImports) {
		t.Fatalf("ReadTable() error = %v, want ErrNoImports", err)
	}
}

func TestSaveImportRoundTrip(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	in := core.NewTable(core.ColDateTime, core.ColType, core.ColSKU, core.ColQuantity, core.ColTotal)
	in.Append("01/15/2024 10:00:00 PST", "Order", "SKU-1", "1", "21.25")
	in.Append("02/02/2024 09:10:00 PST", "Refund", "SKU-1", "-1", "-22.00")

	id, err := repo.SaveImport(ctx, "export.csv", in)
	if err != nil {
		t.Fatalf("SaveImport() error = %v", err)
	}
	if id == 0 {
		t.Fatal("SaveImport() returned zero id")
	}

	out, err := repo.ReadTable(ctx)
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	if len(out.Columns) != len(in.Columns) {
		t.Fatalf("columns = %v, want %v", out.Columns, in.Columns)
	}
	for i, c := range in.Columns {
		if out.Columns[i] != c {
			t.Errorf("column %d = %q, want %q", i, out.Columns[i], c)
		}
	}
	// Absent optional columns must stay absent after a round trip.
	if out.HasColumn(core.ColSellingFees) {
		t.Error("selling fees column appeared after round trip")
	}
	if out.Len() != 2 {
		t.Fatalf("rows = %d, want 2", out.Len())
	}
	if out.Rows[0][0] != "01/15/2024 10:00:00 PST" || out.Rows[1][4] != "-22.00" {
		t.Fatalf("rows = %v, want raw cells preserved", out.Rows)
	}
}

func TestReadTableServesLatestImport(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	first := core.NewTable(core.ColDateTime, core.ColType, core.ColTotal)
	first.Append("01/15/2024 10:00:00 PST", "Order", "10.00")
	if _, err := repo.SaveImport(ctx, "first.csv", first); err != nil {
		t.Fatalf("SaveImport() error = %v", err)
	}

	second := core.NewTable(core.ColDateTime, core.ColType, core.ColTotal)
	second.Append("03/01/2024 12:00:00 PDT", "Order", "30.00")
	second.Append("03/02/2024 12:00:00 PDT", "Refund", "-5.00")
	if _, err := repo.SaveImport(ctx, "second.csv", second); err != nil {
		t.Fatalf("SaveImport() error = %v", err)
	}

	out, err := repo.ReadTable(ctx)
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	if out.Len() != 2 {
		t.Fatalf("rows = %d, want 2 from the latest import", out.Len())
	}
	if out.Rows[0][2] != "30.00" {
		t.Fatalf("row 0 total = %q, want 30.00", out.Rows[0][2])
	}

	n, err := repo.ImportCount(ctx)
	if err != nil {
		t.Fatalf("ImportCount() error = %v", err)
	}
	if n != 2 {
		t.Fatalf("ImportCount() = %d, want 2", n)
	}
}
