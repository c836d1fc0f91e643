package dashboard

import (
	"context"
	"errors"
	"testing"

	"focusflow/internal/api"
	"focusflow/internal/core"
)

type fakeJournalAPI struct {
	goals        []core.Goal
	logs         []core.DailyLog
	roadmapPages map[string][]api.RoadmapPage
	pageCursor   map[string]int
	roadmapErr   error
}

func (f *fakeJournalAPI) Goals(ctx context.Context) ([]core.Goal, error) {
	return f.goals, nil
}

func (f *fakeJournalAPI) CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	g.ID = "g-created"
	f.goals = append(f.goals, g)
	return g, nil
}

func (f *fakeJournalAPI) DailyLogs(ctx context.Context) ([]core.DailyLog, error) {
	return f.logs, nil
}

func (f *fakeJournalAPI) CreateDailyLog(ctx context.Context, l core.DailyLog) (core.DailyLog, error) {
	l.ID = "d-created"
	f.logs = append(f.logs, l)
	return l, nil
}

func (f *fakeJournalAPI) Roadmaps(ctx context.Context, kind, cursor string, limit int) (api.RoadmapPage, error) {
	if f.roadmapErr != nil {
		return api.RoadmapPage{}, f.roadmapErr
	}
	pages := f.roadmapPages[kind]
	if f.pageCursor == nil {
		f.pageCursor = make(map[string]int)
	}
	idx := f.pageCursor[kind]
	if idx >= len(pages) {
		return api.RoadmapPage{}, nil
	}
	f.pageCursor[kind]++
	return pages[idx], nil
}

func TestGoalsOverview(t *testing.T) {
	today := day(2026, 3, 10)
	journal := &fakeJournalAPI{
		goals: []core.Goal{
			{ID: "g1", Title: "run a marathon", EndDate: today.AddDays(20)},
			{ID: "g2", Title: "read more", EndDate: today.AddDays(-5)},
		},
		logs: []core.DailyLog{
			{ID: "d1", Date: today, Done: true},
			{ID: "d2", Date: today.AddDays(-1), Done: true},
		},
		roadmapPages: map[string][]api.RoadmapPage{
			"roadmap": {
				{Items: []core.Roadmap{{ID: "r1", Title: "fitness", Kind: "roadmap"}}, NextCursor: "next"},
				{Items: []core.Roadmap{{ID: "r2", Title: "finance", Kind: "roadmap"}}},
			},
			"technical": {
				{Items: []core.Roadmap{{ID: "t1", Title: "go", Kind: "technical"}}},
			},
		},
	}

	svc := NewGoalsService(journal, testLogger())
	overview, err := svc.Overview(context.Background(), today)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}

	if overview.HabitStreak != 2 {
		t.Errorf("HabitStreak = %d, want 2", overview.HabitStreak)
	}
	if len(overview.Goals) != 2 {
		t.Fatalf("expected 2 goals, got %d", len(overview.Goals))
	}
	if overview.Goals[0].DaysRemaining != 20 {
		t.Errorf("DaysRemaining = %d, want 20", overview.Goals[0].DaysRemaining)
	}
	if overview.Goals[1].DaysRemaining != 0 {
		t.Errorf("past goal DaysRemaining = %d, want 0", overview.Goals[1].DaysRemaining)
	}
	if len(overview.Roadmaps) != 3 {
		t.Errorf("expected 3 roadmaps across pages and kinds, got %d", len(overview.Roadmaps))
	}
}

func TestGoalsOverviewRoadmapFailureTolerated(t *testing.T) {
	today := day(2026, 3, 10)
	journal := &fakeJournalAPI{
		goals:      []core.Goal{{ID: "g1", Title: "ship it"}},
		roadmapErr: errors.New("unavailable"),
	}

	svc := NewGoalsService(journal, testLogger())
	overview, err := svc.Overview(context.Background(), today)
	if err != nil {
		t.Fatalf("roadmap failure should not fail the overview: %v", err)
	}
	if len(overview.Goals) != 1 {
		t.Errorf("expected goals despite roadmap failure, got %d", len(overview.Goals))
	}
	if len(overview.Roadmaps) != 0 {
		t.Errorf("expected no roadmaps, got %d", len(overview.Roadmaps))
	}
}

func TestAddGoal(t *testing.T) {
	journal := &fakeJournalAPI{}
	svc := NewGoalsService(journal, testLogger())

	created, err := svc.AddGoal(context.Background(), core.Goal{Title: "learn piano"})
	if err != nil {
		t.Fatalf("AddGoal: %v", err)
	}
	if created.ID != "g-created" {
		t.Errorf("expected server-assigned ID, got %q", created.ID)
	}

	if _, err := svc.AddGoal(context.Background(), core.Goal{}); !errors.Is(err, core.ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}
}

func TestAddDailyLogDefaultsDate(t *testing.T) {
	journal := &fakeJournalAPI{}
	svc := NewGoalsService(journal, testLogger())

	created, err := svc.AddDailyLog(context.Background(), core.DailyLog{Note: "good day", Done: true})
	if err != nil {
		t.Fatalf("AddDailyLog: %v", err)
	}
	if created.Date.IsEmpty() {
		t.Error("expected date defaulted to today")
	}
}
