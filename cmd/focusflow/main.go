package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"focusflow/internal/amqp"
	"focusflow/internal/cli"
	"focusflow/internal/dashboard"
	apphttp "focusflow/internal/http"
	"focusflow/internal/localstore"
	applog "focusflow/internal/log"
)

func main() {
	logger := cli.SetupLogger()
	logger.Info("Starting focusflow")

	cfg := cli.LoadConfig(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, sessions, err := cli.NewBackendClient(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize backend client", "error", err)
		os.Exit(1)
	}

	store, err := localstore.New(cfg.LocalDBPath)
	if err != nil {
		logger.Error("Failed to initialize local store", "error", err, "path", cfg.LocalDBPath)
		os.Exit(1)
	}
	defer store.Close()

	// The change feed is optional; without it mutations still work, they
	// just never reach the export worker.
	var publisher dashboard.ChangePublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, change feed disabled", "error", err)
		} else {
			defer amqpClient.Close()
			publisher = amqpClient
			logger.Info("AMQP change feed initialized", "exchange", cfg.AMQPExchange)
		}
	} else {
		logger.Info("AMQP disabled, record changes will not be exported")
	}

	finance := dashboard.NewFinanceService(
		client.Expenses, client.Income, client.Savings, client.Loans,
		publisher, dashboard.NewLogNotifier(logger), logger)
	calories := dashboard.NewCalorieService(store, logger)
	goals := dashboard.NewGoalsService(client.Journal, logger)

	// Load the finance records once at startup; on failure keep retrying
	// in the background so a slow backend only delays readiness.
	if err := finance.Load(ctx); err != nil {
		logger.Warn("Initial finance load failed, retrying in background", "error", err)
		go retryFinanceLoad(ctx, finance, logger)
	}

	srv := apphttp.NewServer(cfg.Addr(), finance, calories, goals, sessions, client.Auth, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting focusflow server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

func retryFinanceLoad(ctx context.Context, finance *dashboard.FinanceService, logger *applog.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := finance.Load(ctx); err != nil {
				logger.Warn("Finance load retry failed", "error", err)
				continue
			}
			logger.Info("Finance records loaded")
			return
		}
	}
}
