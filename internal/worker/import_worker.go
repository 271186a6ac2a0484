// Package worker processes ledger import requests arriving over AMQP.
package worker

import (
	"context"
	"fmt"

	"amzledger/internal/amqp"
	"amzledger/internal/log"
	"amzledger/internal/source/csvfile"
	"amzledger/internal/storage"
)

// ImportWorker loads transaction exports named by import requests and
// persists them as versioned imports in the repository.
type ImportWorker struct {
	storage *storage.Repository
	logger  *log.Logger

	// OnImported is called after each successful import, typically to
	// invalidate memoized reports. Optional.
	OnImported func(importID int64)
}

func NewImportWorker(storage *storage.Repository, logger *log.Logger) *ImportWorker {
	return &ImportWorker{
		storage: storage,
		logger:  logger.WithComponent(log.ComponentWorker),
	}
}

// HandleImportRequest processes a single import request: parse the CSV
// export at the requested path and store it as the newest import.
func (w *ImportWorker) HandleImportRequest(ctx context.Context, req *amqp.ImportRequest) error {
	w.logger.InfoContext(ctx, "Processing import request",
		log.FieldSource, req.Path,
		log.FieldOperation, log.OpImport)

	skipRows := req.SkipRows
	if skipRows < 0 {
		skipRows = csvfile.DefaultSkipRows
	}

	table, err := csvfile.New(req.Path, skipRows).ReadTable(ctx)
	if err != nil {
		return fmt.Errorf("read export %q: %w", req.Path, err)
	}
	if table.Len() == 0 {
		w.logger.Warn("Export contained no data rows, storing empty import",
			log.FieldSource, req.Path)
	}

	importID, err := w.storage.SaveImport(ctx, req.Path, table)
	if err != nil {
		return fmt.Errorf("save import: %w", err)
	}

	w.logger.InfoContext(ctx, "Import stored",
		log.FieldImportID, importID,
		log.FieldSource, req.Path,
		log.FieldRowCount, table.Len())

	if w.OnImported != nil {
		w.OnImported(importID)
	}
	return nil
}
