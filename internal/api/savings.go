package api

import (
	"context"
	"net/http"

	"focusflow/internal/core"
)

type savingDTO struct {
	ID                  string  `json:"id,omitempty"`
	Title               string  `json:"title"`
	TargetAmount        float64 `json:"targetAmount"`
	CurrentAmount       float64 `json:"currentAmount"`
	GoalType            string  `json:"goalType,omitempty"`
	TargetDate          string  `json:"targetDate,omitempty"`
	MonthlyContribution float64 `json:"monthlyContribution,omitempty"`
}

func savingFromDTO(d savingDTO) core.Saving {
	target, _ := core.ParseDay(d.TargetDate)
	return core.Saving{
		ID:                  d.ID,
		Title:               d.Title,
		TargetAmount:        core.Money{Cents: centsFromFloat(d.TargetAmount)},
		CurrentAmount:       core.Money{Cents: centsFromFloat(d.CurrentAmount)},
		GoalType:            core.SavingGoalType(d.GoalType),
		TargetDate:          target,
		MonthlyContribution: core.Money{Cents: centsFromFloat(d.MonthlyContribution)},
	}
}

func savingToDTO(s core.Saving) savingDTO {
	dto := savingDTO{
		ID:                  s.ID,
		Title:               s.Title,
		TargetAmount:        floatFromCents(s.TargetAmount.Cents),
		CurrentAmount:       floatFromCents(s.CurrentAmount.Cents),
		GoalType:            string(s.GoalType),
		MonthlyContribution: floatFromCents(s.MonthlyContribution.Cents),
	}
	if !s.TargetDate.IsEmpty() {
		dto.TargetDate = s.TargetDate.Key()
	}
	return dto
}

type amountRequest struct {
	Amount float64 `json:"amount"`
}

// SavingsService talks to /savings.
type SavingsService struct {
	c *Client
}

func (s *SavingsService) List(ctx context.Context) ([]core.Saving, error) {
	var dtos []savingDTO
	if err := s.c.do(ctx, http.MethodGet, "/savings", nil, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]core.Saving, len(dtos))
	for i, d := range dtos {
		out[i] = savingFromDTO(d)
	}
	return out, nil
}

func (s *SavingsService) Create(ctx context.Context, sv core.Saving) (core.Saving, error) {
	var dto savingDTO
	if err := s.c.do(ctx, http.MethodPost, "/savings", nil, savingToDTO(sv), &dto); err != nil {
		return core.Saving{}, err
	}
	return savingFromDTO(dto), nil
}

func (s *SavingsService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/savings/"+id, nil, nil, nil)
}

// Contribute increases a pot's current amount server-side. The new state
// comes back in the response; the client never computes the new balance.
func (s *SavingsService) Contribute(ctx context.Context, id string, amount core.Money) (core.Saving, error) {
	var dto savingDTO
	body := amountRequest{Amount: floatFromCents(amount.Cents)}
	if err := s.c.do(ctx, http.MethodPatch, "/savings/"+id+"/contribute", nil, body, &dto); err != nil {
		return core.Saving{}, err
	}
	return savingFromDTO(dto), nil
}

func (s *SavingsService) Total(ctx context.Context) (core.Money, error) {
	var dto totalDTO
	if err := s.c.do(ctx, http.MethodGet, "/savings/stats/total", nil, nil, &dto); err != nil {
		return core.Money{}, err
	}
	return core.Money{Cents: centsFromFloat(dto.Total)}, nil
}
