package api

import (
	"context"
	"net/http"

	"focusflow/internal/core"
)

type incomeDTO struct {
	ID           string  `json:"id,omitempty"`
	Title        string  `json:"title"`
	Amount       float64 `json:"amount"`
	Source       string  `json:"source"`
	Date         string  `json:"date"`
	IsRecurring  bool    `json:"isRecurring"`
	RepeatsEvery string  `json:"repeatsEvery,omitempty"`
	Description  string  `json:"description,omitempty"`
}

func incomeFromDTO(d incomeDTO) core.Income {
	day, _ := core.ParseDay(d.Date)
	return core.Income{
		ID:           d.ID,
		Title:        d.Title,
		Amount:       core.Money{Cents: centsFromFloat(d.Amount)},
		Source:       core.IncomeSource(d.Source),
		Date:         day,
		Recurring:    d.IsRecurring,
		RepeatsEvery: core.Repeat(d.RepeatsEvery),
		Description:  d.Description,
	}
}

func incomeToDTO(i core.Income) incomeDTO {
	return incomeDTO{
		ID:           i.ID,
		Title:        i.Title,
		Amount:       floatFromCents(i.Amount.Cents),
		Source:       string(i.Source),
		Date:         i.Date.Key(),
		IsRecurring:  i.Recurring,
		RepeatsEvery: string(i.RepeatsEvery),
		Description:  i.Description,
	}
}

// IncomeService talks to /income.
type IncomeService struct {
	c *Client
}

func (s *IncomeService) List(ctx context.Context) ([]core.Income, error) {
	var dtos []incomeDTO
	if err := s.c.do(ctx, http.MethodGet, "/income", nil, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]core.Income, len(dtos))
	for i, d := range dtos {
		out[i] = incomeFromDTO(d)
	}
	return out, nil
}

func (s *IncomeService) Create(ctx context.Context, in core.Income) (core.Income, error) {
	var dto incomeDTO
	if err := s.c.do(ctx, http.MethodPost, "/income", nil, incomeToDTO(in), &dto); err != nil {
		return core.Income{}, err
	}
	return incomeFromDTO(dto), nil
}

func (s *IncomeService) Update(ctx context.Context, in core.Income) (core.Income, error) {
	var dto incomeDTO
	if err := s.c.do(ctx, http.MethodPatch, "/income/"+in.ID, nil, incomeToDTO(in), &dto); err != nil {
		return core.Income{}, err
	}
	return incomeFromDTO(dto), nil
}

func (s *IncomeService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/income/"+id, nil, nil, nil)
}

func (s *IncomeService) Total(ctx context.Context) (core.Money, error) {
	var dto totalDTO
	if err := s.c.do(ctx, http.MethodGet, "/income/stats/total", nil, nil, &dto); err != nil {
		return core.Money{}, err
	}
	return core.Money{Cents: centsFromFloat(dto.Total)}, nil
}

func (s *IncomeService) ByMonth(ctx context.Context) ([]MonthTotal, error) {
	var dtos []monthTotalDTO
	if err := s.c.do(ctx, http.MethodGet, "/income/stats/by-month", nil, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]MonthTotal, len(dtos))
	for i, d := range dtos {
		out[i] = MonthTotal{Month: d.Month, Amount: core.Money{Cents: centsFromFloat(d.Total)}}
	}
	return out, nil
}
