package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"amzledger/internal/config"
	"amzledger/internal/core"
	apphttp "amzledger/internal/http"
	"amzledger/internal/log"
	"amzledger/internal/services"
	"amzledger/internal/source"
	"amzledger/internal/source/csvfile"
	"amzledger/internal/source/gsheet"
	"amzledger/internal/source/memory"
	"amzledger/internal/storage"
)

func main() {
	// .env is for local development; absent in containers.
	_ = godotenv.Load()

	logger := log.New(log.Config{Component: log.ComponentApp})
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	reader, cleanup, err := newReader(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize ledger source",
			log.FieldBackend, cfg.DataBackend,
			log.FieldError, err)
		os.Exit(1)
	}
	if cleanup != nil {
		defer cleanup()
	}

	norm := core.NewNormalizer(core.NormalizerConfig{TimezoneTokens: cfg.TimezoneTokens})
	reportSvc := services.NewReportService(reader, norm, logger, cfg.CacheSize, cfg.CacheTTL)

	srv := apphttp.NewServer(":"+cfg.Port, reportSvc, logger, cfg.ReportYear, cfg.SKUSortColumn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting amzledger server",
		"port", cfg.Port,
		log.FieldBackend, cfg.DataBackend,
		log.FieldYear, cfg.ReportYear)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

// newReader picks the ledger source for the configured backend. The returned
// cleanup closes backend resources, nil when there is nothing to close.
func newReader(cfg *config.Config, logger *log.Logger) (source.TableReader, func(), error) {
	switch cfg.DataBackend {
	case "csv":
		logger.Info("Initialized CSV backend", log.FieldSource, cfg.CSVPath)
		return csvfile.New(cfg.CSVPath, cfg.CSVSkipRows), nil, nil
	case "sqlite":
		repo, err := storage.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Initialized SQLite backend", log.FieldSource, cfg.SQLiteDBPath)
		return repo, func() { repo.Close() }, nil
	case "sheets":
		cli, err := gsheet.New(context.Background(), cfg.GoogleSpreadsheetID, cfg.GoogleLedgerRange)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Initialized Google Sheets backend", log.FieldSource, cfg.GoogleSpreadsheetID)
		return cli, nil, nil
	default:
		logger.Info("Initialized memory backend with demonstration ledger")
		return memory.NewSeeded(), nil, nil
	}
}
