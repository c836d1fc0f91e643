package factory

import (
	"context"
	"fmt"

	"focusflow/internal/export"
	"focusflow/internal/export/google"
	"focusflow/internal/export/memory"
	applog "focusflow/internal/log"
)

// BackendType selects the snapshot sink.
type BackendType string

const (
	GoogleBackend BackendType = "google"
	MemoryBackend BackendType = "memory"
)

func (t BackendType) IsValid() bool {
	return t == GoogleBackend || t == MemoryBackend
}

// Config carries everything needed to build a backend.
type Config struct {
	Type   BackendType
	Google google.Config
}

// Result is a constructed backend plus its cleanup hook.
type Result struct {
	Writer  export.SnapshotWriter
	Reader  export.OverviewReader
	Cleanup func() error
}

// New builds the configured snapshot backend.
func New(ctx context.Context, cfg Config, logger *applog.Logger) (*Result, error) {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentExport)

	switch cfg.Type {
	case GoogleBackend:
		client, err := google.New(ctx, cfg.Google)
		if err != nil {
			return nil, fmt.Errorf("initialize google backend: %w", err)
		}
		logger.Info("Initialized Google Sheets export backend",
			"spreadsheet_id", cfg.Google.SpreadsheetID)
		return &Result{
			Writer:  client,
			Reader:  client,
			Cleanup: func() error { return nil },
		}, nil
	case MemoryBackend:
		store := memory.New()
		logger.Info("Initialized in-memory export backend")
		return &Result{
			Writer:  store,
			Reader:  store,
			Cleanup: func() error { return nil },
		}, nil
	default:
		return nil, fmt.Errorf("invalid export backend type: %q", cfg.Type)
	}
}
