package core

import (
	"errors"
	"strings"
	"time"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

var ErrInvalidMeal = errors.New("invalid meal type")

// DefaultDailyGoal is the calorie goal applied before the user sets one.
const DefaultDailyGoal = 2000

// FoodEntry is a logged food item. Unlike the finance records, the store of
// record for food entries is the local database, not the backend.
type FoodEntry struct {
	ID        string
	Date      Date
	Name      string
	Calories  int
	Meal      MealType
	Quantity  float64
	ProteinG  float64
	CarbsG    float64
	FatG      float64
	CreatedAt time.Time
}

// CalorieSettings holds the user's calorie tracking preferences.
type CalorieSettings struct {
	DailyGoal int
}

// DailyReflection is a self-assessed rating for one day, 1-5.
type DailyReflection struct {
	Date   Date
	Rating int
}

func (m MealType) Validate() error {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return nil
	default:
		return ErrInvalidMeal
	}
}

func (f FoodEntry) Validate() error {
	if err := f.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(f.Name) == "" {
		return errors.New("empty food name")
	}
	if f.Calories < 0 {
		return errors.New("negative calories")
	}
	if err := f.Meal.Validate(); err != nil {
		return err
	}
	if f.ProteinG < 0 || f.CarbsG < 0 || f.FatG < 0 {
		return errors.New("negative macro value")
	}
	return nil
}

func (r DailyReflection) Validate() error {
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if r.Rating < 1 || r.Rating > 5 {
		return errors.New("rating out of range 1-5")
	}
	return nil
}
