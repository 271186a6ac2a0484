// Package csvfile reads merchant transaction-report CSV exports. The export
// format carries a free-text preamble before the header row; those lines are
// skipped before parsing starts.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"amzledger/internal/core"
)

// DefaultSkipRows is the preamble length of the standard transaction export.
const DefaultSkipRows = 7

// Reader loads a CSV export into a raw core.Table.
type Reader struct {
	path     string
	skipRows int
}

// New creates a Reader for path. skipRows < 0 falls back to DefaultSkipRows.
func New(path string, skipRows int) *Reader {
	if skipRows < 0 {
		skipRows = DefaultSkipRows
	}
	return &Reader{path: path, skipRows: skipRows}
}

// ReadTable parses the file: skip the preamble, take the next line as the
// header, then read records. Rows with a deviating field count are skipped
// rather than failing the whole import.
func (r *Reader) ReadTable(ctx context.Context) (core.Table, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return core.Table{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return Parse(ctx, f, r.skipRows)
}

// Parse reads a CSV stream with skipRows preamble lines before the header.
func Parse(ctx context.Context, src io.Reader, skipRows int) (core.Table, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1 // ragged rows handled below
	reader.LazyQuotes = true

	for i := 0; i < skipRows; i++ {
		if _, err := reader.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return core.Table{}, fmt.Errorf("csv shorter than %d preamble lines", skipRows)
			}
			// Preamble lines are free text; parse errors there are expected.
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return core.Table{}, fmt.Errorf("read preamble: %w", err)
			}
		}
	}

	header, err := reader.Read()
	if err != nil {
		return core.Table{}, fmt.Errorf("read header: %w", err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	table := core.NewTable(columns...)
	for {
		if err := ctx.Err(); err != nil {
			return core.Table{}, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Bad line: skip, keep importing.
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return core.Table{}, fmt.Errorf("read record: %w", err)
		}
		if len(record) != len(columns) {
			continue
		}
		table.Append(record...)
	}
	return table, nil
}
