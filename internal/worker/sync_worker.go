package worker

import (
	"context"
	"fmt"
	"time"

	"focusflow/internal/amqp"
	"focusflow/internal/core"
	"focusflow/internal/export"
	applog "focusflow/internal/log"
)

// Listers fetch the current record collections from the backend. The
// change feed only carries IDs; the worker resolves the record state
// itself before exporting.
type (
	ExpenseLister interface {
		List(ctx context.Context) ([]core.Expense, error)
	}
	IncomeLister interface {
		List(ctx context.Context) ([]core.Income, error)
	}
	SavingLister interface {
		List(ctx context.Context) ([]core.Saving, error)
	}
	LoanLister interface {
		List(ctx context.Context) ([]core.Loan, error)
	}
)

// Consumer delivers change messages. *amqp.Client satisfies it.
type Consumer interface {
	ConsumeChanges(ctx context.Context, handler func(*amqp.RecordChangeMessage) error) error
}

// SyncWorker consumes the record change feed and appends one snapshot
// row per change to the export backend.
type SyncWorker struct {
	consumer Consumer
	writer   export.SnapshotWriter
	expenses ExpenseLister
	incomes  IncomeLister
	savings  SavingLister
	loans    LoanLister
	logger   *applog.Logger
	now      func() time.Time
}

func NewSyncWorker(
	consumer Consumer,
	writer export.SnapshotWriter,
	expenses ExpenseLister,
	incomes IncomeLister,
	savings SavingLister,
	loans LoanLister,
	logger *applog.Logger,
) *SyncWorker {
	return &SyncWorker{
		consumer: consumer,
		writer:   writer,
		expenses: expenses,
		incomes:  incomes,
		savings:  savings,
		loans:    loans,
		logger:   logger.WithComponent(applog.ComponentWorker),
		now:      time.Now,
	}
}

// Run consumes until the context is done. A handler error requeues the
// message; see ConsumeChanges for the ack semantics.
func (w *SyncWorker) Run(ctx context.Context) error {
	w.logger.InfoContext(ctx, "Sync worker starting", applog.FieldOperation, applog.OpStartup)
	return w.consumer.ConsumeChanges(ctx, func(msg *amqp.RecordChangeMessage) error {
		return w.handleChange(ctx, msg)
	})
}

func (w *SyncWorker) handleChange(ctx context.Context, msg *amqp.RecordChangeMessage) error {
	row, err := w.buildRow(ctx, msg)
	if err != nil {
		return err
	}
	if row == nil {
		// Record vanished between the change and now. Nothing to
		// export; requeueing would never succeed.
		w.logger.WarnContext(ctx, "Changed record no longer exists, skipping",
			applog.FieldDomain, msg.Domain,
			applog.FieldRecordID, msg.ID)
		return nil
	}

	ref, err := w.writer.Append(ctx, *row)
	if err != nil {
		return fmt.Errorf("append snapshot row: %w", err)
	}

	w.logger.InfoContext(ctx, "Exported record change",
		applog.FieldDomain, msg.Domain,
		applog.FieldRecordID, msg.ID,
		applog.FieldOperation, applog.OpSync,
		"row_ref", ref)
	return nil
}

// buildRow resolves the record behind the message. Deletions export a
// tombstone row; a nil row with nil error means the record is gone.
func (w *SyncWorker) buildRow(ctx context.Context, msg *amqp.RecordChangeMessage) (*export.SnapshotRow, error) {
	base := export.SnapshotRow{
		Domain:     msg.Domain,
		RecordID:   msg.ID,
		Action:     msg.Action,
		ExportedAt: w.now(),
	}

	if msg.Action == amqp.ActionDeleted {
		base.Day = core.DateOf(msg.Timestamp)
		return &base, nil
	}

	switch msg.Domain {
	case amqp.DomainExpense:
		records, err := w.expenses.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list expenses: %w", err)
		}
		for _, r := range records {
			if r.ID == msg.ID {
				base.Day = r.Date
				base.Title = r.Title
				base.Amount = r.Amount
				base.Detail = string(r.Category)
				return &base, nil
			}
		}
	case amqp.DomainIncome:
		records, err := w.incomes.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list incomes: %w", err)
		}
		for _, r := range records {
			if r.ID == msg.ID {
				base.Day = r.Date
				base.Title = r.Title
				base.Amount = r.Amount
				base.Detail = string(r.Source)
				return &base, nil
			}
		}
	case amqp.DomainSaving:
		records, err := w.savings.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list savings: %w", err)
		}
		for _, r := range records {
			if r.ID == msg.ID {
				base.Day = core.DateOf(msg.Timestamp)
				base.Title = r.Title
				base.Amount = r.CurrentAmount
				base.Detail = fmt.Sprintf("target %s", r.TargetAmount)
				return &base, nil
			}
		}
	case amqp.DomainLoan:
		records, err := w.loans.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list loans: %w", err)
		}
		for _, r := range records {
			if r.ID == msg.ID {
				base.Day = r.Date
				base.Title = r.Title
				base.Amount = r.Outstanding()
				base.Detail = fmt.Sprintf("%s %s", r.Type, r.Status)
				return &base, nil
			}
		}
	default:
		return nil, fmt.Errorf("unknown domain %q", msg.Domain)
	}

	return nil, nil
}
