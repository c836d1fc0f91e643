package dashboard

import (
	"context"
	"fmt"

	"focusflow/internal/aggregate"
	"focusflow/internal/api"
	"focusflow/internal/core"
	applog "focusflow/internal/log"
)

// JournalAPI is the backend surface for goals, daily logs and roadmaps.
type JournalAPI interface {
	Goals(ctx context.Context) ([]core.Goal, error)
	CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error)
	DailyLogs(ctx context.Context) ([]core.DailyLog, error)
	CreateDailyLog(ctx context.Context, l core.DailyLog) (core.DailyLog, error)
	Roadmaps(ctx context.Context, kind, cursor string, limit int) (api.RoadmapPage, error)
}

// GoalProgress pairs a goal with its countdown.
type GoalProgress struct {
	Goal          core.Goal
	DaysRemaining int
}

// GoalsOverview is the journal dashboard state.
type GoalsOverview struct {
	Goals       []GoalProgress
	HabitStreak int
	Logs        []core.DailyLog
	Roadmaps    []core.Roadmap
}

const roadmapPageSize = 50

// maxRoadmapPages bounds pagination in case the server keeps returning
// the same cursor.
const maxRoadmapPages = 100

// GoalsService serves the journal dashboard from the backend API.
type GoalsService struct {
	journal JournalAPI
	logger  *applog.Logger
}

func NewGoalsService(journal JournalAPI, logger *applog.Logger) *GoalsService {
	return &GoalsService{
		journal: journal,
		logger:  logger.WithComponent(applog.ComponentDashboard),
	}
}

// Overview loads goals, logs and both roadmap collections, and computes
// the habit streak from the daily logs.
func (s *GoalsService) Overview(ctx context.Context, today core.Date) (GoalsOverview, error) {
	goals, err := s.journal.Goals(ctx)
	if err != nil {
		return GoalsOverview{}, fmt.Errorf("load goals: %w", err)
	}
	logs, err := s.journal.DailyLogs(ctx)
	if err != nil {
		return GoalsOverview{}, fmt.Errorf("load daily logs: %w", err)
	}

	overview := GoalsOverview{
		Logs:        logs,
		HabitStreak: aggregate.HabitStreak(logs, today),
	}
	overview.Goals = make([]GoalProgress, len(goals))
	for i, g := range goals {
		overview.Goals[i] = GoalProgress{
			Goal:          g,
			DaysRemaining: aggregate.DaysRemaining(g, today),
		}
	}

	for _, kind := range []string{"roadmap", "technical"} {
		items, err := s.allRoadmaps(ctx, kind)
		if err != nil {
			// Roadmaps are supplementary; log and keep the rest of
			// the overview usable.
			s.logger.WarnContext(ctx, "Failed to load roadmaps",
				"kind", kind, applog.FieldError, err)
			continue
		}
		overview.Roadmaps = append(overview.Roadmaps, items...)
	}

	return overview, nil
}

// allRoadmaps drains the cursor pagination for one collection.
func (s *GoalsService) allRoadmaps(ctx context.Context, kind string) ([]core.Roadmap, error) {
	var out []core.Roadmap
	cursor := ""
	for page := 0; page < maxRoadmapPages; page++ {
		result, err := s.journal.Roadmaps(ctx, kind, cursor, roadmapPageSize)
		if err != nil {
			return nil, err
		}
		out = append(out, result.Items...)
		if result.NextCursor == "" || result.NextCursor == cursor {
			return out, nil
		}
		cursor = result.NextCursor
	}
	return out, nil
}

func (s *GoalsService) AddGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	if g.Title == "" {
		return core.Goal{}, core.ErrEmptyTitle
	}
	created, err := s.journal.CreateGoal(ctx, g)
	if err != nil {
		return core.Goal{}, fmt.Errorf("create goal: %w", err)
	}
	return created, nil
}

func (s *GoalsService) AddDailyLog(ctx context.Context, l core.DailyLog) (core.DailyLog, error) {
	if l.Date.IsEmpty() {
		l.Date = core.Today()
	}
	created, err := s.journal.CreateDailyLog(ctx, l)
	if err != nil {
		return core.DailyLog{}, fmt.Errorf("create daily log: %w", err)
	}
	return created, nil
}
