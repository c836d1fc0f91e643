package api

import (
	"context"
	"net/http"

	"focusflow/internal/core"
)

type expenseDTO struct {
	ID            string  `json:"id,omitempty"`
	Title         string  `json:"title"`
	Amount        float64 `json:"amount"`
	Category      string  `json:"category"`
	Date          string  `json:"date"`
	IsRecurring   bool    `json:"isRecurring"`
	RepeatsEvery  string  `json:"repeatsEvery,omitempty"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	Description   string  `json:"description,omitempty"`
}

func expenseFromDTO(d expenseDTO) core.Expense {
	day, _ := core.ParseDay(d.Date)
	return core.Expense{
		ID:            d.ID,
		Title:         d.Title,
		Amount:        core.Money{Cents: centsFromFloat(d.Amount)},
		Category:      core.ExpenseCategory(d.Category),
		Date:          day,
		Recurring:     d.IsRecurring,
		RepeatsEvery:  core.Repeat(d.RepeatsEvery),
		PaymentMethod: core.PaymentMethod(d.PaymentMethod),
		Description:   d.Description,
	}
}

func expenseToDTO(e core.Expense) expenseDTO {
	return expenseDTO{
		ID:            e.ID,
		Title:         e.Title,
		Amount:        floatFromCents(e.Amount.Cents),
		Category:      string(e.Category),
		Date:          e.Date.Key(),
		IsRecurring:   e.Recurring,
		RepeatsEvery:  string(e.RepeatsEvery),
		PaymentMethod: string(e.PaymentMethod),
		Description:   e.Description,
	}
}

// CategoryTotal is a server-computed per-category sum.
type CategoryTotal struct {
	Category string
	Amount   core.Money
}

// MonthTotal is a server-computed per-month sum.
type MonthTotal struct {
	Month  string
	Amount core.Money
}

type categoryTotalDTO struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type monthTotalDTO struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

type totalDTO struct {
	Total float64 `json:"total"`
}

// ExpensesService talks to /expenses.
type ExpensesService struct {
	c *Client
}

func (s *ExpensesService) List(ctx context.Context) ([]core.Expense, error) {
	var dtos []expenseDTO
	if err := s.c.do(ctx, http.MethodGet, "/expenses", nil, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]core.Expense, len(dtos))
	for i, d := range dtos {
		out[i] = expenseFromDTO(d)
	}
	return out, nil
}

func (s *ExpensesService) Create(ctx context.Context, e core.Expense) (core.Expense, error) {
	var dto expenseDTO
	if err := s.c.do(ctx, http.MethodPost, "/expenses", nil, expenseToDTO(e), &dto); err != nil {
		return core.Expense{}, err
	}
	return expenseFromDTO(dto), nil
}

func (s *ExpensesService) Update(ctx context.Context, e core.Expense) (core.Expense, error) {
	var dto expenseDTO
	if err := s.c.do(ctx, http.MethodPatch, "/expenses/"+e.ID, nil, expenseToDTO(e), &dto); err != nil {
		return core.Expense{}, err
	}
	return expenseFromDTO(dto), nil
}

func (s *ExpensesService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/expenses/"+id, nil, nil, nil)
}

// Total returns the server-computed sum over all expenses.
func (s *ExpensesService) Total(ctx context.Context) (core.Money, error) {
	var dto totalDTO
	if err := s.c.do(ctx, http.MethodGet, "/expenses/stats/total", nil, nil, &dto); err != nil {
		return core.Money{}, err
	}
	return core.Money{Cents: centsFromFloat(dto.Total)}, nil
}

// ByCategory returns the server-computed category breakdown.
func (s *ExpensesService) ByCategory(ctx context.Context) ([]CategoryTotal, error) {
	var dtos []categoryTotalDTO
	if err := s.c.do(ctx, http.MethodGet, "/expenses/stats/by-category", nil, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]CategoryTotal, len(dtos))
	for i, d := range dtos {
		out[i] = CategoryTotal{Category: d.Category, Amount: core.Money{Cents: centsFromFloat(d.Total)}}
	}
	return out, nil
}

// ByMonth returns the server-computed monthly totals.
func (s *ExpensesService) ByMonth(ctx context.Context) ([]MonthTotal, error) {
	var dtos []monthTotalDTO
	if err := s.c.do(ctx, http.MethodGet, "/expenses/stats/by-month", nil, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]MonthTotal, len(dtos))
	for i, d := range dtos {
		out[i] = MonthTotal{Month: d.Month, Amount: core.Money{Cents: centsFromFloat(d.Total)}}
	}
	return out, nil
}
