package http

import (
	"net/http"

	"focusflow/internal/core"
)

type mealAmountView struct {
	Meal     string `json:"meal"`
	Calories int    `json:"calories"`
}

type daySummaryView struct {
	Day       string           `json:"day"`
	Goal      int              `json:"goal"`
	Total     int              `json:"total"`
	Remaining int              `json:"remaining"`
	Meals     []mealAmountView `json:"meals"`
	Macros    macrosView       `json:"macros"`
}

type macrosView struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

func (s *Server) handleCalorieSummary(w http.ResponseWriter, r *http.Request) {
	day, err := parseDay(r, "day")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid day")
		return
	}

	summary, err := s.calories.Summary(r.Context(), day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	view := daySummaryView{
		Day:       summary.Day.Key(),
		Goal:      summary.Goal,
		Total:     summary.Total,
		Remaining: summary.Remaining,
		Macros:    macrosView{Protein: summary.Macros.Protein, Carbs: summary.Macros.Carbs, Fat: summary.Macros.Fat},
	}
	for _, m := range summary.Meals {
		view.Meals = append(view.Meals, mealAmountView{Meal: string(m.Meal), Calories: m.Calories})
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleCalorieStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.calories.Stats(r.Context(), core.Today())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"streak":             stats.Streak,
		"loggedDays":         stats.Consistency.LoggedDays,
		"consistentDays":     stats.Consistency.ConsistentDays,
		"consistencyPercent": stats.Consistency.Percent,
		"averageDaily":       stats.AverageDaily,
		"weightImpactKg":     stats.WeightImpactKg,
	})
}

type foodEntryRequest struct {
	Date     string  `json:"date,omitempty"`
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	Meal     string  `json:"meal"`
	Quantity float64 `json:"quantity,omitempty"`
	ProteinG float64 `json:"proteinG,omitempty"`
	CarbsG   float64 `json:"carbsG,omitempty"`
	FatG     float64 `json:"fatG,omitempty"`
}

func (s *Server) handleLogFood(w http.ResponseWriter, r *http.Request) {
	var req foodEntryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	day := core.Today()
	if req.Date != "" {
		parsed, err := core.ParseDay(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
		day = parsed
	}

	created, err := s.calories.LogFood(r.Context(), core.FoodEntry{
		Date:     day,
		Name:     sanitizeInput(req.Name),
		Calories: req.Calories,
		Meal:     core.MealType(req.Meal),
		Quantity: req.Quantity,
		ProteinG: req.ProteinG,
		CarbsG:   req.CarbsG,
		FatG:     req.FatG,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": created.ID})
}

func (s *Server) handleDeleteFood(w http.ResponseWriter, r *http.Request) {
	if err := s.calories.RemoveFood(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetCalorieGoal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DailyGoal int `json:"dailyGoal"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.calories.SetDailyGoal(r.Context(), req.DailyGoal); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRateDay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date   string `json:"date,omitempty"`
		Rating int    `json:"rating"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	day := core.Today()
	if req.Date != "" {
		parsed, err := core.ParseDay(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
		day = parsed
	}

	if err := s.calories.RateDay(r.Context(), day, req.Rating); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
