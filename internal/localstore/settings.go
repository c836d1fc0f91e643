package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"focusflow/internal/core"
)

// Settings returns the stored calorie settings, or the defaults when the
// user never saved any.
func (s *Store) Settings(ctx context.Context) (core.CalorieSettings, error) {
	var goal int
	err := s.db.QueryRowContext(ctx, `SELECT daily_goal FROM calorie_settings WHERE id = 1`).Scan(&goal)
	if errors.Is(err, sql.ErrNoRows) {
		return core.CalorieSettings{DailyGoal: core.DefaultDailyGoal}, nil
	}
	if err != nil {
		return core.CalorieSettings{}, fmt.Errorf("get settings: %w", err)
	}
	return core.CalorieSettings{DailyGoal: goal}, nil
}

// SaveSettings upserts the single settings row.
func (s *Store) SaveSettings(ctx context.Context, settings core.CalorieSettings) error {
	if settings.DailyGoal <= 0 {
		return errors.New("daily goal must be positive")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO calorie_settings (id, daily_goal) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET daily_goal = excluded.daily_goal`,
		settings.DailyGoal,
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
