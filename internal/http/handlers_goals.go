package http

import (
	"net/http"

	"focusflow/internal/core"
)

type goalView struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	StartDate     string `json:"startDate,omitempty"`
	EndDate       string `json:"endDate,omitempty"`
	Completed     bool   `json:"completed"`
	DaysRemaining int    `json:"daysRemaining"`
}

type roadmapView struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Kind     string  `json:"kind"`
	Progress float64 `json:"progress"`
}

type goalsOverviewView struct {
	Goals       []goalView    `json:"goals"`
	HabitStreak int           `json:"habitStreak"`
	Roadmaps    []roadmapView `json:"roadmaps"`
}

func (s *Server) handleGoalsOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.goals.Overview(r.Context(), core.Today())
	if err != nil {
		writeAPIError(w, err)
		return
	}

	view := goalsOverviewView{HabitStreak: overview.HabitStreak}
	for _, g := range overview.Goals {
		gv := goalView{
			ID:            g.Goal.ID,
			Title:         g.Goal.Title,
			Description:   g.Goal.Description,
			Completed:     g.Goal.Completed,
			DaysRemaining: g.DaysRemaining,
		}
		if !g.Goal.StartDate.IsEmpty() {
			gv.StartDate = g.Goal.StartDate.Key()
		}
		if !g.Goal.EndDate.IsEmpty() {
			gv.EndDate = g.Goal.EndDate.Key()
		}
		view.Goals = append(view.Goals, gv)
	}
	for _, rm := range overview.Roadmaps {
		view.Roadmaps = append(view.Roadmaps, roadmapView{
			ID:       rm.ID,
			Title:    rm.Title,
			Kind:     rm.Kind,
			Progress: rm.Progress,
		})
	}
	writeJSON(w, http.StatusOK, view)
}

type goalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	g := core.Goal{
		Title:       sanitizeInput(req.Title),
		Description: sanitizeInput(req.Description),
	}
	if req.StartDate != "" {
		day, err := core.ParseDay(req.StartDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start date")
			return
		}
		g.StartDate = day
	}
	if req.EndDate != "" {
		day, err := core.ParseDay(req.EndDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end date")
			return
		}
		g.EndDate = day
	}

	created, err := s.goals.AddGoal(r.Context(), g)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": created.ID})
}

type dailyLogRequest struct {
	Date string   `json:"date,omitempty"`
	Note string   `json:"note,omitempty"`
	Mood int      `json:"mood,omitempty"`
	Tags []string `json:"tags,omitempty"`
	Done bool     `json:"done"`
}

func (s *Server) handleCreateDailyLog(w http.ResponseWriter, r *http.Request) {
	var req dailyLogRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	l := core.DailyLog{
		Note: sanitizeInput(req.Note),
		Mood: req.Mood,
		Tags: req.Tags,
		Done: req.Done,
	}
	if req.Date != "" {
		day, err := core.ParseDay(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
		l.Date = day
	}

	created, err := s.goals.AddDailyLog(r.Context(), l)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": created.ID})
}
