package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"focusflow/internal/amqp"
	"focusflow/internal/core"
	"focusflow/internal/export/memory"
	applog "focusflow/internal/log"
)

type staticExpenses []core.Expense

func (s staticExpenses) List(context.Context) ([]core.Expense, error) { return s, nil }

type staticIncomes []core.Income

func (s staticIncomes) List(context.Context) ([]core.Income, error) { return s, nil }

type staticSavings []core.Saving

func (s staticSavings) List(context.Context) ([]core.Saving, error) { return s, nil }

type staticLoans []core.Loan

func (s staticLoans) List(context.Context) ([]core.Loan, error) { return s, nil }

type failingExpenses struct{}

func (failingExpenses) List(context.Context) ([]core.Expense, error) {
	return nil, errors.New("backend down")
}

func newTestWorker(store *memory.Store, expenses ExpenseLister) *SyncWorker {
	w := NewSyncWorker(
		nil, // consumer unused when driving handleChange directly
		store,
		expenses,
		staticIncomes{},
		staticSavings{{ID: "s1", Title: "vacation", CurrentAmount: core.Money{Cents: 25000}, TargetAmount: core.Money{Cents: 100000}}},
		staticLoans{{ID: "l1", Title: "bike", Amount: core.Money{Cents: 50000}, PaidAmount: core.Money{Cents: 20000},
			Type: core.LoanTook, PartyName: "Sam", Date: core.NewDate(2026, 1, 5), Status: core.LoanPartial}},
		applog.New(applog.DefaultConfig()),
	)
	w.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return w
}

func TestHandleChangeExpenseCreated(t *testing.T) {
	store := memory.New()
	w := newTestWorker(store, staticExpenses{
		{ID: "e1", Title: "rent", Amount: core.Money{Cents: 90000},
			Category: core.CategoryHousing, Date: core.NewDate(2026, 3, 1)},
	})

	msg := amqp.NewRecordChangeMessage(amqp.DomainExpense, "e1", amqp.ActionCreated)
	if err := w.handleChange(context.Background(), msg); err != nil {
		t.Fatalf("handleChange: %v", err)
	}

	rows := store.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 exported row, got %d", len(rows))
	}
	row := rows[0]
	if row.Title != "rent" || row.Amount.Cents != 90000 {
		t.Errorf("unexpected row: %+v", row)
	}
	if row.Day.Key() != "2026-03-01" {
		t.Errorf("Day = %s, want 2026-03-01", row.Day.Key())
	}
	if row.Detail != "housing" {
		t.Errorf("Detail = %q, want housing", row.Detail)
	}
}

func TestHandleChangeDeletedExportsTombstone(t *testing.T) {
	store := memory.New()
	w := newTestWorker(store, staticExpenses{})

	msg := amqp.NewRecordChangeMessage(amqp.DomainExpense, "e-gone", amqp.ActionDeleted)
	if err := w.handleChange(context.Background(), msg); err != nil {
		t.Fatalf("handleChange: %v", err)
	}

	rows := store.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected tombstone row, got %d rows", len(rows))
	}
	if rows[0].Action != amqp.ActionDeleted || rows[0].Title != "" {
		t.Errorf("unexpected tombstone: %+v", rows[0])
	}
}

func TestHandleChangeMissingRecordSkipped(t *testing.T) {
	store := memory.New()
	w := newTestWorker(store, staticExpenses{})

	msg := amqp.NewRecordChangeMessage(amqp.DomainExpense, "unknown", amqp.ActionUpdated)
	if err := w.handleChange(context.Background(), msg); err != nil {
		t.Fatalf("missing record should be skipped, not retried: %v", err)
	}
	if len(store.Rows()) != 0 {
		t.Errorf("expected no exported rows, got %d", len(store.Rows()))
	}
}

func TestHandleChangeListerFailureRetries(t *testing.T) {
	store := memory.New()
	w := newTestWorker(store, failingExpenses{})

	msg := amqp.NewRecordChangeMessage(amqp.DomainExpense, "e1", amqp.ActionCreated)
	if err := w.handleChange(context.Background(), msg); err == nil {
		t.Error("lister failure should surface so the message is requeued")
	}
}

func TestHandleChangeLoanPayment(t *testing.T) {
	store := memory.New()
	w := newTestWorker(store, staticExpenses{})

	msg := amqp.NewRecordChangeMessage(amqp.DomainLoan, "l1", amqp.ActionUpdated)
	if err := w.handleChange(context.Background(), msg); err != nil {
		t.Fatalf("handleChange: %v", err)
	}

	rows := store.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Amount.Cents != 30000 {
		t.Errorf("exported outstanding = %d, want 30000", rows[0].Amount.Cents)
	}
}
