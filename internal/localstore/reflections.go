package localstore

import (
	"context"
	"fmt"

	"focusflow/internal/core"
)

// UpsertReflection stores the day's rating, replacing an earlier one.
func (s *Store) UpsertReflection(ctx context.Context, r core.DailyReflection) error {
	if err := r.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO daily_reflections (day, rating) VALUES (?, ?)
		 ON CONFLICT(day) DO UPDATE SET rating = excluded.rating`,
		r.Date.Key(), r.Rating,
	)
	if err != nil {
		return fmt.Errorf("upsert reflection: %w", err)
	}
	return nil
}

// ListReflections returns all reflections ordered by day.
func (s *Store) ListReflections(ctx context.Context) ([]core.DailyReflection, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT day, rating FROM daily_reflections ORDER BY day`)
	if err != nil {
		return nil, fmt.Errorf("list reflections: %w", err)
	}
	defer rows.Close()

	var out []core.DailyReflection
	for rows.Next() {
		var day string
		var r core.DailyReflection
		if err := rows.Scan(&day, &r.Rating); err != nil {
			return nil, fmt.Errorf("scan reflection: %w", err)
		}
		r.Date, _ = core.ParseDay(day)
		out = append(out, r)
	}
	return out, rows.Err()
}
