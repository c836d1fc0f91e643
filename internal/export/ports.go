package export

import (
	"context"
	"time"

	"focusflow/internal/core"
)

// SnapshotRow is one exported change: which record changed, how, and its
// state at export time. Rows are append-only; an update or delete adds a
// new row rather than rewriting history.
type SnapshotRow struct {
	Domain     string
	RecordID   string
	Action     string
	Day        core.Date
	Title      string
	Amount     core.Money
	Detail     string
	ExportedAt time.Time
}

// Ports for outbound adapters.
type (
	SnapshotWriter interface {
		Append(ctx context.Context, row SnapshotRow) (rowRef string, err error)
	}

	// OverviewReader reads back the exported total for a month, used to
	// spot drift between the backend and the export sheet.
	OverviewReader interface {
		ReadMonthTotal(ctx context.Context, year int, month int) (core.Money, error)
	}
)
