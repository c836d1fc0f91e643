package aggregate

import (
	"math"

	"focusflow/internal/core"
)

// CaloriesPerKg is the caloric-deficit-to-mass heuristic: roughly 7700 kcal
// per kilogram of body mass. Used for the presentational weight-impact
// estimate only; not a medical claim.
const CaloriesPerKg = 7700

// consistencyTolerance is the fraction of the goal a day may deviate by and
// still count as consistent.
const consistencyTolerance = 0.10

// MealAmount is the calorie total for one meal type.
type MealAmount struct {
	Meal     core.MealType
	Calories int
}

// MacroPercents is the share of total calories contributed by each macro.
type MacroPercents struct {
	Protein int
	Carbs   int
	Fat     int
}

// ConsistencyStats describes how often logged days landed near the goal.
type ConsistencyStats struct {
	LoggedDays     int
	ConsistentDays int
	Percent        float64
}

// TotalCalories sums calories over the entries. Empty input yields zero.
func TotalCalories(entries []core.FoodEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Calories
	}
	return total
}

// MealBreakdown sums calories per meal type, emitted in fixed meal order.
func MealBreakdown(entries []core.FoodEntry) []MealAmount {
	sums := make(map[core.MealType]int, 4)
	for _, e := range entries {
		sums[e.Meal] += e.Calories
	}
	order := []core.MealType{core.MealBreakfast, core.MealLunch, core.MealDinner, core.MealSnack}
	out := make([]MealAmount, 0, len(order))
	for _, m := range order {
		out = append(out, MealAmount{Meal: m, Calories: sums[m]})
	}
	return out
}

// Macros computes each macro's share of total calories using the standard
// 4/4/9 kcal-per-gram conversion, rounded to whole percents. The denominator
// is the logged calorie total with a floor of 1.
func Macros(entries []core.FoodEntry) MacroPercents {
	var protein, carbs, fat float64
	for _, e := range entries {
		protein += e.ProteinG
		carbs += e.CarbsG
		fat += e.FatG
	}
	total := TotalCalories(entries)
	if total < 1 {
		total = 1
	}
	pct := func(kcal float64) int {
		return int(math.Round(kcal / float64(total) * 100))
	}
	return MacroPercents{
		Protein: pct(protein * 4),
		Carbs:   pct(carbs * 4),
		Fat:     pct(fat * 9),
	}
}

// caloriesByDay sums calories per day key.
func caloriesByDay(entries []core.FoodEntry) map[string]int {
	days := make(map[string]int)
	for _, e := range entries {
		days[e.Date.Key()] += e.Calories
	}
	return days
}

// Consistency counts days whose total landed within ±10% of the goal.
// The percentage denominator is the number of logged days, floored at 1.
func Consistency(entries []core.FoodEntry, goal int) ConsistencyStats {
	days := caloriesByDay(entries)
	var s ConsistencyStats
	s.LoggedDays = len(days)
	for _, total := range days {
		if math.Abs(float64(total-goal)) <= consistencyTolerance*float64(goal) {
			s.ConsistentDays++
		}
	}
	denom := s.LoggedDays
	if denom < 1 {
		denom = 1
	}
	s.Percent = float64(s.ConsistentDays) / float64(denom) * 100
	return s
}

// LoggingStreak counts consecutive calendar days with at least one entry,
// walking backward from today, or from yesterday when today has no entries
// yet. The walk stops at the first gap; no entries at all yields zero.
func LoggingStreak(entries []core.FoodEntry, today core.Date) int {
	days := make(map[string]bool, len(entries))
	for _, e := range entries {
		days[e.Date.Key()] = true
	}
	return streakFrom(days, today)
}

func streakFrom(days map[string]bool, today core.Date) int {
	start := today
	if !days[start.Key()] {
		start = today.AddDays(-1)
	}
	streak := 0
	for d := start; days[d.Key()]; d = d.AddDays(-1) {
		streak++
	}
	return streak
}

// AverageCalories is the mean daily total over logged days, denominator
// floored at 1.
func AverageCalories(entries []core.FoodEntry) float64 {
	days := caloriesByDay(entries)
	denom := len(days)
	if denom < 1 {
		denom = 1
	}
	return float64(TotalCalories(entries)) / float64(denom)
}

// WeightImpactKg estimates the body-mass impact of the accumulated calorie
// deficit or surplus against the goal: (goal − avg) × loggedDays / 7700.
// Positive values mean estimated loss.
func WeightImpactKg(entries []core.FoodEntry, goal int) float64 {
	days := len(caloriesByDay(entries))
	avg := AverageCalories(entries)
	return (float64(goal) - avg) * float64(days) / CaloriesPerKg
}
