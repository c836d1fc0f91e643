package memory

import (
	"context"
	"fmt"
	"sync"

	"focusflow/internal/core"
	"focusflow/internal/export"
)

// Store is an in-memory snapshot sink for tests and local runs without
// Google credentials.
type Store struct {
	mu   sync.Mutex
	rows []export.SnapshotRow
}

func New() *Store {
	return &Store{}
}

// Append stores the row and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, row export.SnapshotRow) (string, error) {
	if row.Domain == "" || row.RecordID == "" {
		return "", fmt.Errorf("snapshot row missing domain or record id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// ReadMonthTotal sums exported expense amounts for the month.
func (s *Store) ReadMonthTotal(_ context.Context, year int, month int) (core.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total core.Money
	for _, row := range s.rows {
		if row.Day.Year() == year && row.Day.Month() == month {
			total = total.Add(row.Amount)
		}
	}
	return total, nil
}

// Rows returns a copy of everything appended so far.
func (s *Store) Rows() []export.SnapshotRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]export.SnapshotRow, len(s.rows))
	copy(out, s.rows)
	return out
}
