package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"focusflow/internal/core"
)

type goalDTO struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Completed   bool   `json:"completed"`
}

func goalFromDTO(d goalDTO) core.Goal {
	start, _ := core.ParseDay(d.StartDate)
	end, _ := core.ParseDay(d.EndDate)
	return core.Goal{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		StartDate:   start,
		EndDate:     end,
		Completed:   d.Completed,
	}
}

type dailyLogDTO struct {
	ID   string   `json:"id,omitempty"`
	Date string   `json:"date"`
	Note string   `json:"note,omitempty"`
	Mood int      `json:"mood,omitempty"`
	Tags []string `json:"tags,omitempty"`
	Done bool     `json:"done"`
}

func dailyLogFromDTO(d dailyLogDTO) core.DailyLog {
	day, _ := core.ParseDay(d.Date)
	return core.DailyLog{ID: d.ID, Date: day, Note: d.Note, Mood: d.Mood, Tags: d.Tags, Done: d.Done}
}

type roadmapDTO struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Progress  float64 `json:"progress"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
}

// RoadmapPage is one cursor page of roadmap records.
type RoadmapPage struct {
	Items      []core.Roadmap
	NextCursor string
}

// JournalService covers goals, daily logs and the paginated roadmaps.
type JournalService struct {
	c *Client
}

func (s *JournalService) Goals(ctx context.Context) ([]core.Goal, error) {
	var dtos []goalDTO
	if err := s.c.do(ctx, http.MethodGet, "/goals", nil, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]core.Goal, len(dtos))
	for i, d := range dtos {
		out[i] = goalFromDTO(d)
	}
	return out, nil
}

func (s *JournalService) CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	dto := goalDTO{
		Title:       g.Title,
		Description: g.Description,
		Completed:   g.Completed,
	}
	if !g.StartDate.IsEmpty() {
		dto.StartDate = g.StartDate.Key()
	}
	if !g.EndDate.IsEmpty() {
		dto.EndDate = g.EndDate.Key()
	}
	var resp goalDTO
	if err := s.c.do(ctx, http.MethodPost, "/goals", nil, dto, &resp); err != nil {
		return core.Goal{}, err
	}
	return goalFromDTO(resp), nil
}

func (s *JournalService) UpdateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	dto := goalDTO{
		Title:       g.Title,
		Description: g.Description,
		Completed:   g.Completed,
	}
	if !g.StartDate.IsEmpty() {
		dto.StartDate = g.StartDate.Key()
	}
	if !g.EndDate.IsEmpty() {
		dto.EndDate = g.EndDate.Key()
	}
	var resp goalDTO
	if err := s.c.do(ctx, http.MethodPatch, "/goals/"+g.ID, nil, dto, &resp); err != nil {
		return core.Goal{}, err
	}
	return goalFromDTO(resp), nil
}

func (s *JournalService) DailyLogs(ctx context.Context) ([]core.DailyLog, error) {
	var dtos []dailyLogDTO
	if err := s.c.do(ctx, http.MethodGet, "/daily-logs", nil, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]core.DailyLog, len(dtos))
	for i, d := range dtos {
		out[i] = dailyLogFromDTO(d)
	}
	return out, nil
}

func (s *JournalService) CreateDailyLog(ctx context.Context, l core.DailyLog) (core.DailyLog, error) {
	dto := dailyLogDTO{Date: l.Date.Key(), Note: l.Note, Mood: l.Mood, Tags: l.Tags, Done: l.Done}
	var resp dailyLogDTO
	if err := s.c.do(ctx, http.MethodPost, "/daily-logs", nil, dto, &resp); err != nil {
		return core.DailyLog{}, err
	}
	return dailyLogFromDTO(resp), nil
}

func (s *JournalService) UpdateDailyLog(ctx context.Context, l core.DailyLog) (core.DailyLog, error) {
	dto := dailyLogDTO{Date: l.Date.Key(), Note: l.Note, Mood: l.Mood, Tags: l.Tags, Done: l.Done}
	var resp dailyLogDTO
	if err := s.c.do(ctx, http.MethodPatch, "/daily-logs/"+l.ID, nil, dto, &resp); err != nil {
		return core.DailyLog{}, err
	}
	return dailyLogFromDTO(resp), nil
}

// Roadmaps lists one cursor page. kind selects the plain or technical
// collection; an empty cursor starts from the beginning.
func (s *JournalService) Roadmaps(ctx context.Context, kind, cursor string, limit int) (RoadmapPage, error) {
	if kind == "" {
		kind = "roadmap"
	}
	path := "/roadmaps"
	if kind == "technical" {
		path = "/technical-roadmaps"
	}
	query := url.Values{}
	if cursor != "" {
		query.Set("cursor", cursor)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var resp struct {
		Items      []roadmapDTO `json:"items"`
		NextCursor string       `json:"nextCursor"`
	}
	if err := s.c.do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return RoadmapPage{}, err
	}

	page := RoadmapPage{NextCursor: resp.NextCursor}
	page.Items = make([]core.Roadmap, len(resp.Items))
	for i, d := range resp.Items {
		updated, _ := core.ParseDay(d.UpdatedAt)
		page.Items[i] = core.Roadmap{ID: d.ID, Title: d.Title, Kind: kind, Progress: d.Progress, UpdatedAt: updated}
	}
	return page, nil
}
