package dashboard

import (
	"context"
	"testing"

	"focusflow/internal/core"
)

type memFoodStore struct {
	entries     []core.FoodEntry
	settings    *core.CalorieSettings
	reflections map[string]core.DailyReflection
	nextID      int
}

func newMemFoodStore() *memFoodStore {
	return &memFoodStore{reflections: make(map[string]core.DailyReflection)}
}

func (m *memFoodStore) AddEntry(ctx context.Context, e core.FoodEntry) (core.FoodEntry, error) {
	if err := e.Validate(); err != nil {
		return core.FoodEntry{}, err
	}
	if e.ID == "" {
		m.nextID++
		e.ID = string(rune('a' + m.nextID))
	}
	m.entries = append(m.entries, e)
	return e, nil
}

func (m *memFoodStore) DeleteEntry(ctx context.Context, id string) error {
	for i, e := range m.entries {
		if e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memFoodStore) ListEntries(ctx context.Context) ([]core.FoodEntry, error) {
	return m.entries, nil
}

func (m *memFoodStore) EntriesOn(ctx context.Context, day core.Date) ([]core.FoodEntry, error) {
	var out []core.FoodEntry
	for _, e := range m.entries {
		if e.Date.Key() == day.Key() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memFoodStore) EntriesBetween(ctx context.Context, start, end core.Date) ([]core.FoodEntry, error) {
	var out []core.FoodEntry
	for _, e := range m.entries {
		if e.Date.Key() >= start.Key() && e.Date.Key() <= end.Key() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memFoodStore) Settings(ctx context.Context) (core.CalorieSettings, error) {
	if m.settings == nil {
		return core.CalorieSettings{DailyGoal: core.DefaultDailyGoal}, nil
	}
	return *m.settings, nil
}

func (m *memFoodStore) SaveSettings(ctx context.Context, s core.CalorieSettings) error {
	m.settings = &s
	return nil
}

func (m *memFoodStore) UpsertReflection(ctx context.Context, r core.DailyReflection) error {
	if err := r.Validate(); err != nil {
		return err
	}
	m.reflections[r.Date.Key()] = r
	return nil
}

func (m *memFoodStore) ListReflections(ctx context.Context) ([]core.DailyReflection, error) {
	out := make([]core.DailyReflection, 0, len(m.reflections))
	for _, r := range m.reflections {
		out = append(out, r)
	}
	return out, nil
}

func TestCalorieServiceSummary(t *testing.T) {
	store := newMemFoodStore()
	svc := NewCalorieService(store, testLogger())
	ctx := context.Background()
	today := day(2026, 3, 10)

	entries := []core.FoodEntry{
		{Date: today, Name: "oatmeal", Calories: 350, Meal: core.MealBreakfast, Quantity: 1, ProteinG: 12, CarbsG: 60, FatG: 6},
		{Date: today, Name: "salad", Calories: 450, Meal: core.MealLunch, Quantity: 1, ProteinG: 20, CarbsG: 30, FatG: 25},
		{Date: today.AddDays(-1), Name: "yesterday", Calories: 999, Meal: core.MealDinner, Quantity: 1},
	}
	for _, e := range entries {
		if _, err := svc.LogFood(ctx, e); err != nil {
			t.Fatalf("LogFood: %v", err)
		}
	}

	summary, err := svc.Summary(ctx, today)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Total != 800 {
		t.Errorf("Total = %d, want 800", summary.Total)
	}
	if summary.Goal != core.DefaultDailyGoal {
		t.Errorf("Goal = %d, want default %d", summary.Goal, core.DefaultDailyGoal)
	}
	if summary.Remaining != core.DefaultDailyGoal-800 {
		t.Errorf("Remaining = %d, want %d", summary.Remaining, core.DefaultDailyGoal-800)
	}
	if len(summary.Meals) != 4 {
		t.Fatalf("expected all 4 meal slots, got %d", len(summary.Meals))
	}
	if summary.Meals[0].Meal != core.MealBreakfast || summary.Meals[0].Calories != 350 {
		t.Errorf("unexpected breakfast slot: %+v", summary.Meals[0])
	}
}

func TestCalorieServiceLogFoodDefaultsQuantity(t *testing.T) {
	store := newMemFoodStore()
	svc := NewCalorieService(store, testLogger())

	created, err := svc.LogFood(context.Background(), core.FoodEntry{
		Date: day(2026, 3, 10), Name: "apple", Calories: 80, Meal: core.MealSnack,
	})
	if err != nil {
		t.Fatalf("LogFood: %v", err)
	}
	if created.Quantity != 1 {
		t.Errorf("Quantity = %v, want 1", created.Quantity)
	}
}

func TestCalorieServiceStats(t *testing.T) {
	store := newMemFoodStore()
	svc := NewCalorieService(store, testLogger())
	ctx := context.Background()
	today := day(2026, 3, 10)

	// Three consecutive logged days ending today, all on goal.
	if err := svc.SetDailyGoal(ctx, 2000); err != nil {
		t.Fatalf("SetDailyGoal: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := svc.LogFood(ctx, core.FoodEntry{
			Date: today.AddDays(-i), Name: "meal", Calories: 2000, Meal: core.MealDinner, Quantity: 1,
		}); err != nil {
			t.Fatalf("LogFood: %v", err)
		}
	}

	stats, err := svc.Stats(ctx, today)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Streak != 3 {
		t.Errorf("Streak = %d, want 3", stats.Streak)
	}
	if stats.Consistency.Percent != 100 {
		t.Errorf("Consistency = %v, want 100", stats.Consistency.Percent)
	}
	if stats.AverageDaily != 2000 {
		t.Errorf("AverageDaily = %v, want 2000", stats.AverageDaily)
	}
	if stats.WeightImpactKg != 0 {
		t.Errorf("WeightImpactKg = %v, want 0 when eating at goal", stats.WeightImpactKg)
	}
}

func TestCalorieServiceRateDay(t *testing.T) {
	store := newMemFoodStore()
	svc := NewCalorieService(store, testLogger())
	ctx := context.Background()
	today := day(2026, 3, 10)

	if err := svc.RateDay(ctx, today, 4); err != nil {
		t.Fatalf("RateDay: %v", err)
	}
	if err := svc.RateDay(ctx, today, 2); err != nil {
		t.Fatalf("RateDay overwrite: %v", err)
	}
	if err := svc.RateDay(ctx, today, 9); err == nil {
		t.Error("expected error for rating out of range")
	}

	reflections, err := svc.Reflections(ctx)
	if err != nil {
		t.Fatalf("Reflections: %v", err)
	}
	if len(reflections) != 1 || reflections[0].Rating != 2 {
		t.Errorf("unexpected reflections: %+v", reflections)
	}
}
