// Package cli consolidates the initialization shared by cmd/focusflow and
// cmd/focusflow-worker: logging, configuration and the authenticated
// backend client.
package cli

import (
	"context"
	"net/http"
	"os"

	"focusflow/internal/api"
	"focusflow/internal/config"
	applog "focusflow/internal/log"
	"focusflow/internal/session"
)

// SetupLogger builds the structured logger and installs it as the slog
// default.
func SetupLogger() *applog.Logger {
	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)
	return logger
}

// LoadConfig loads and validates the configuration, exiting on invalid
// settings. A process with bad configuration has nothing useful to do.
func LoadConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// NewBackendClient wires the token store, session manager and API client
// together and restores any stored session. The manager supplies auth
// headers to the client; the client's auth service refreshes the manager's
// tokens.
func NewBackendClient(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*api.Client, *session.Manager, error) {
	tokenStore, err := session.NewFileTokenStore(cfg.TokenDir)
	if err != nil {
		return nil, nil, err
	}

	sessions := session.NewManager(tokenStore, nil, logger)
	client := api.NewClient(cfg.APIBaseURL,
		api.WithAuthProvider(sessions),
		api.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
	sessions.SetRefresher(client.Auth)

	if s := sessions.Restore(ctx); s != nil {
		logger.Info("Session restored", "user_id", s.ID)
	} else {
		logger.Info("No stored session, starting anonymous")
	}
	return client, sessions, nil
}
