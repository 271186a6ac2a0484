package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"amzledger/internal/amqp"
	"amzledger/internal/config"
	"amzledger/internal/log"
	"amzledger/internal/storage"
	"amzledger/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(log.Config{Component: log.ComponentWorker})
	log.SetDefault(logger)

	logger.Info("Starting amzledger-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	repo, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize repository",
			log.FieldSource, cfg.SQLiteDBPath,
			log.FieldError, err)
		os.Exit(1)
	}
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	importWorker := worker.NewImportWorker(repo, logger)

	go func() {
		if err := amqpClient.ConsumeImportRequests(ctx, importWorker.HandleImportRequest); err != nil {
			if err != context.Canceled {
				logger.Error("Import consumption failed", log.FieldError, err)
			}
			cancel()
		}
	}()

	n, err := repo.ImportCount(ctx)
	if err != nil {
		logger.Warn("Could not count stored imports", log.FieldError, err)
	} else {
		logger.Info("Repository ready", "imports", n)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	logger.Info("Worker stopped gracefully")
}
