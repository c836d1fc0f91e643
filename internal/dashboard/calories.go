package dashboard

import (
	"context"
	"fmt"

	"focusflow/internal/aggregate"
	"focusflow/internal/core"
	applog "focusflow/internal/log"
)

// FoodStore is the persistence surface the calorie service needs.
// *localstore.Store satisfies it; tests use an in-memory fake.
type FoodStore interface {
	AddEntry(ctx context.Context, e core.FoodEntry) (core.FoodEntry, error)
	DeleteEntry(ctx context.Context, id string) error
	ListEntries(ctx context.Context) ([]core.FoodEntry, error)
	EntriesOn(ctx context.Context, day core.Date) ([]core.FoodEntry, error)
	EntriesBetween(ctx context.Context, start, end core.Date) ([]core.FoodEntry, error)
	Settings(ctx context.Context) (core.CalorieSettings, error)
	SaveSettings(ctx context.Context, settings core.CalorieSettings) error
	UpsertReflection(ctx context.Context, r core.DailyReflection) error
	ListReflections(ctx context.Context) ([]core.DailyReflection, error)
}

// DaySummary is the calorie dashboard for one day.
type DaySummary struct {
	Day       core.Date
	Goal      int
	Total     int
	Remaining int
	Meals     []aggregate.MealAmount
	Macros    aggregate.MacroPercents
}

// CalorieStats is the long-range view over all logged entries.
type CalorieStats struct {
	Streak         int
	Consistency    aggregate.ConsistencyStats
	AverageDaily   float64
	WeightImpactKg float64
}

// CalorieService serves the calorie tracking dashboard from the local
// database. Recomputation is synchronous; the store is fast enough that
// every read reflects the latest writes.
type CalorieService struct {
	store  FoodStore
	logger *applog.Logger
}

func NewCalorieService(store FoodStore, logger *applog.Logger) *CalorieService {
	return &CalorieService{
		store:  store,
		logger: logger.WithComponent(applog.ComponentCalories),
	}
}

// LogFood records a food entry for the day.
func (s *CalorieService) LogFood(ctx context.Context, e core.FoodEntry) (core.FoodEntry, error) {
	if e.Quantity == 0 {
		e.Quantity = 1
	}
	created, err := s.store.AddEntry(ctx, e)
	if err != nil {
		return core.FoodEntry{}, fmt.Errorf("log food: %w", err)
	}
	s.logger.InfoContext(ctx, "Food entry logged",
		applog.FieldRecordID, created.ID,
		applog.FieldDay, created.Date.Key())
	return created, nil
}

func (s *CalorieService) RemoveFood(ctx context.Context, id string) error {
	if err := s.store.DeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("remove food: %w", err)
	}
	return nil
}

// Summary computes the day's calorie dashboard.
func (s *CalorieService) Summary(ctx context.Context, day core.Date) (DaySummary, error) {
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return DaySummary{}, fmt.Errorf("day summary: %w", err)
	}
	entries, err := s.store.EntriesOn(ctx, day)
	if err != nil {
		return DaySummary{}, fmt.Errorf("day summary: %w", err)
	}

	total := aggregate.TotalCalories(entries)
	return DaySummary{
		Day:       day,
		Goal:      settings.DailyGoal,
		Total:     total,
		Remaining: settings.DailyGoal - total,
		Meals:     aggregate.MealBreakdown(entries),
		Macros:    aggregate.Macros(entries),
	}, nil
}

// Stats computes streak, consistency and the projected weight impact
// over every entry ever logged.
func (s *CalorieService) Stats(ctx context.Context, today core.Date) (CalorieStats, error) {
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return CalorieStats{}, fmt.Errorf("calorie stats: %w", err)
	}
	entries, err := s.store.ListEntries(ctx)
	if err != nil {
		return CalorieStats{}, fmt.Errorf("calorie stats: %w", err)
	}

	return CalorieStats{
		Streak:         aggregate.LoggingStreak(entries, today),
		Consistency:    aggregate.Consistency(entries, settings.DailyGoal),
		AverageDaily:   aggregate.AverageCalories(entries),
		WeightImpactKg: aggregate.WeightImpactKg(entries, settings.DailyGoal),
	}, nil
}

// History returns the entries for an inclusive day range.
func (s *CalorieService) History(ctx context.Context, start, end core.Date) ([]core.FoodEntry, error) {
	entries, err := s.store.EntriesBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("calorie history: %w", err)
	}
	return entries, nil
}

// SetDailyGoal updates the calorie goal.
func (s *CalorieService) SetDailyGoal(ctx context.Context, goal int) error {
	if err := s.store.SaveSettings(ctx, core.CalorieSettings{DailyGoal: goal}); err != nil {
		return fmt.Errorf("set daily goal: %w", err)
	}
	return nil
}

// RateDay stores the day's reflection rating, replacing an earlier one.
func (s *CalorieService) RateDay(ctx context.Context, day core.Date, rating int) error {
	if err := s.store.UpsertReflection(ctx, core.DailyReflection{Date: day, Rating: rating}); err != nil {
		return fmt.Errorf("rate day: %w", err)
	}
	return nil
}

func (s *CalorieService) Reflections(ctx context.Context) ([]core.DailyReflection, error) {
	return s.store.ListReflections(ctx)
}
