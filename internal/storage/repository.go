// Package storage persists raw ledger tables in SQLite. Only raw records are
// stored; derived reports are always recomputed by the core.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"amzledger/internal/core"
	"amzledger/internal/source"

	_ "modernc.org/sqlite"
)

// ErrNoImports is returned when the store holds no ledger yet.
var ErrNoImports = errors.New("no ledger imports in store")

// storedColumns maps canonical table columns onto their database columns, in
// insert order.
var storedColumns = []struct {
	name string // canonical column name
	db   string
}{
	{core.ColType, "type"},
	{core.ColTotal, "total"},
	{core.ColDateTime, "date_time"},
	{core.ColQuantity, "quantity"},
	{core.ColSKU, "sku"},
	{core.ColOrderID, "order_id"},
	{core.ColSellingFees, "selling_fees"},
	{core.ColProductSales, "product_sales"},
}

// Repository is the SQLite-backed raw ledger store. It implements
// source.TableReader for the latest import.
type Repository struct {
	db *sql.DB
}

var _ source.TableReader = (*Repository)(nil)

// NewRepository opens (and migrates) the database at dbPath.
func NewRepository(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close releases the connection pool.
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveImport stores a raw table as a new import and returns its id. The
// source column list is kept verbatim so ReadTable can reproduce column
// presence exactly; unknown columns are dropped from the stored rows.
func (r *Repository) SaveImport(ctx context.Context, sourceName string, t core.Table) (int64, error) {
	columnsJSON, err := json.Marshal(t.Columns)
	if err != nil {
		return 0, fmt.Errorf("marshal columns: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO imports (source, columns, row_count) VALUES (?, ?, ?)`,
		sourceName, string(columnsJSON), t.Len())
	if err != nil {
		return 0, fmt.Errorf("insert import: %w", err)
	}
	importID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("import id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO ledger_records
		(import_id, seq, type, total, date_time, quantity, sku, order_id, selling_fees, product_sales)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	indices := make([]int, len(storedColumns))
	for i, col := range storedColumns {
		indices[i] = columnIndex(t.Columns, col.name)
	}

	for seq, row := range t.Rows {
		args := make([]any, 0, 2+len(storedColumns))
		args = append(args, importID, seq)
		for _, idx := range indices {
			if idx >= 0 && idx < len(row) {
				args = append(args, row[idx])
			} else {
				args = append(args, "")
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("insert record %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return importID, nil
}

// ReadTable implements source.TableReader: it reconstructs the raw table of
// the latest import, with the original column list so absent optional columns
// stay absent.
func (r *Repository) ReadTable(ctx context.Context) (core.Table, error) {
	var (
		importID    int64
		columnsJSON string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, columns FROM imports ORDER BY id DESC LIMIT 1`).
		Scan(&importID, &columnsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Table{}, ErrNoImports
	}
	if err != nil {
		return core.Table{}, fmt.Errorf("latest import: %w", err)
	}

	var columns []string
	if err := json.Unmarshal([]byte(columnsJSON), &columns); err != nil {
		return core.Table{}, fmt.Errorf("unmarshal columns: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT type, total, date_time, quantity, sku, order_id, selling_fees, product_sales
		FROM ledger_records WHERE import_id = ? ORDER BY seq`, importID)
	if err != nil {
		return core.Table{}, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	table := core.NewTable(columns...)
	for rows.Next() {
		cells := make([]string, len(storedColumns))
		ptrs := make([]any, len(cells))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return core.Table{}, fmt.Errorf("scan record: %w", err)
		}

		row := make([]string, len(columns))
		for i, col := range storedColumns {
			if idx := columnIndex(columns, col.name); idx >= 0 {
				row[idx] = cells[i]
			}
		}
		table.Append(row...)
	}
	if err := rows.Err(); err != nil {
		return core.Table{}, fmt.Errorf("iterate records: %w", err)
	}
	return table, nil
}

// ImportCount returns the number of stored imports.
func (r *Repository) ImportCount(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM imports`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count imports: %w", err)
	}
	return n, nil
}

func columnIndex(columns []string, name string) int {
	for i, c := range columns {
		if c == name {
			return i
		}
	}
	return -1
}
