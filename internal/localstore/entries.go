package localstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"focusflow/internal/core"
)

const entryColumns = "id, day, name, calories, meal, quantity, protein_g, carbs_g, fat_g, created_at"

// AddEntry validates and inserts a food entry. A missing ID gets a freshly
// generated UUID; CreatedAt defaults to now.
func (s *Store) AddEntry(ctx context.Context, e core.FoodEntry) (core.FoodEntry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if err := e.Validate(); err != nil {
		return core.FoodEntry{}, err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO food_entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Date.Key(), e.Name, e.Calories, string(e.Meal),
		e.Quantity, e.ProteinG, e.CarbsG, e.FatG, e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return core.FoodEntry{}, fmt.Errorf("insert food entry: %w", err)
	}
	return e, nil
}

// DeleteEntry removes an entry by id. Deleting an unknown id is not an
// error; the end state is the same.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM food_entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete food entry %s: %w", id, err)
	}
	return nil
}

// ListEntries returns all entries ordered by day then insertion time.
func (s *Store) ListEntries(ctx context.Context) ([]core.FoodEntry, error) {
	return s.queryEntries(ctx,
		`SELECT `+entryColumns+` FROM food_entries ORDER BY day, created_at`)
}

// EntriesOn returns the entries logged for one day.
func (s *Store) EntriesOn(ctx context.Context, day core.Date) ([]core.FoodEntry, error) {
	return s.queryEntries(ctx,
		`SELECT `+entryColumns+` FROM food_entries WHERE day = ? ORDER BY created_at`, day.Key())
}

// EntriesBetween returns entries with day in [start, end] inclusive.
func (s *Store) EntriesBetween(ctx context.Context, start, end core.Date) ([]core.FoodEntry, error) {
	return s.queryEntries(ctx,
		`SELECT `+entryColumns+` FROM food_entries WHERE day >= ? AND day <= ? ORDER BY day, created_at`,
		start.Key(), end.Key())
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]core.FoodEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query food entries: %w", err)
	}
	defer rows.Close()

	var out []core.FoodEntry
	for rows.Next() {
		var e core.FoodEntry
		var day, meal, createdAt string
		if err := rows.Scan(&e.ID, &day, &e.Name, &e.Calories, &meal,
			&e.Quantity, &e.ProteinG, &e.CarbsG, &e.FatG, &createdAt); err != nil {
			return nil, fmt.Errorf("scan food entry: %w", err)
		}
		e.Date, _ = core.ParseDay(day)
		e.Meal = core.MealType(meal)
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}
