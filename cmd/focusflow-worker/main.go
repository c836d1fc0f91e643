package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"focusflow/internal/amqp"
	"focusflow/internal/cli"
	"focusflow/internal/export/factory"
	"focusflow/internal/export/google"
	"focusflow/internal/worker"
)

func main() {
	logger := cli.SetupLogger()
	logger.Info("Starting focusflow-worker")

	cfg := cli.LoadConfig(logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required, the worker consumes the record change feed")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The worker reads records through the same backend API as the server,
	// reusing the tokens stored by a prior login.
	client, _, err := cli.NewBackendClient(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize backend client", "error", err)
		os.Exit(1)
	}

	backend, err := factory.New(ctx, factory.Config{
		Type: factory.BackendType(cfg.ExportBackend),
		Google: google.Config{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetBase:       cfg.GoogleSheetBase,
			CredentialsJSON: cfg.GoogleCredentialsJSON,
			CredentialsFile: cfg.GoogleCredentialsFile,
			OAuthClientJSON: cfg.GoogleOAuthClientJSON,
			OAuthClientFile: cfg.GoogleOAuthClientFile,
			OAuthTokenJSON:  cfg.GoogleOAuthTokenJSON,
			OAuthTokenFile:  cfg.GoogleOAuthTokenFile,
		},
	}, logger)
	if err != nil {
		logger.Error("Failed to initialize export backend", "error", err, "backend", cfg.ExportBackend)
		os.Exit(1)
	}
	defer func() {
		if err := backend.Cleanup(); err != nil {
			logger.Warn("Export backend cleanup failed", "error", err)
		}
	}()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	syncWorker := worker.NewSyncWorker(
		amqpClient, backend.Writer,
		client.Expenses, client.Income, client.Savings, client.Loans,
		logger)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	if err := syncWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
