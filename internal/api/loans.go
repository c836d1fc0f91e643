package api

import (
	"context"
	"net/http"

	"focusflow/internal/core"
)

type loanDTO struct {
	ID           string  `json:"id,omitempty"`
	Title        string  `json:"title"`
	Amount       float64 `json:"amount"`
	PaidAmount   float64 `json:"paidAmount"`
	Type         string  `json:"type"`
	PartyName    string  `json:"partyName"`
	Date         string  `json:"date"`
	DueDate      string  `json:"dueDate,omitempty"`
	InterestRate float64 `json:"interestRate"`
	Status       string  `json:"status,omitempty"`
}

func loanFromDTO(d loanDTO) core.Loan {
	day, _ := core.ParseDay(d.Date)
	due, _ := core.ParseDay(d.DueDate)
	return core.Loan{
		ID:           d.ID,
		Title:        d.Title,
		Amount:       core.Money{Cents: centsFromFloat(d.Amount)},
		PaidAmount:   core.Money{Cents: centsFromFloat(d.PaidAmount)},
		Type:         core.LoanType(d.Type),
		PartyName:    d.PartyName,
		Date:         day,
		DueDate:      due,
		InterestRate: d.InterestRate,
		Status:       core.LoanStatus(d.Status),
	}
}

func loanToDTO(l core.Loan) loanDTO {
	dto := loanDTO{
		ID:           l.ID,
		Title:        l.Title,
		Amount:       floatFromCents(l.Amount.Cents),
		PaidAmount:   floatFromCents(l.PaidAmount.Cents),
		Type:         string(l.Type),
		PartyName:    l.PartyName,
		Date:         l.Date.Key(),
		InterestRate: l.InterestRate,
		Status:       string(l.Status),
	}
	if !l.DueDate.IsEmpty() {
		dto.DueDate = l.DueDate.Key()
	}
	return dto
}

// LoansService talks to /loans.
type LoansService struct {
	c *Client
}

func (s *LoansService) List(ctx context.Context) ([]core.Loan, error) {
	var dtos []loanDTO
	if err := s.c.do(ctx, http.MethodGet, "/loans", nil, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]core.Loan, len(dtos))
	for i, d := range dtos {
		out[i] = loanFromDTO(d)
	}
	return out, nil
}

func (s *LoansService) Create(ctx context.Context, l core.Loan) (core.Loan, error) {
	var dto loanDTO
	if err := s.c.do(ctx, http.MethodPost, "/loans", nil, loanToDTO(l), &dto); err != nil {
		return core.Loan{}, err
	}
	return loanFromDTO(dto), nil
}

func (s *LoansService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/loans/"+id, nil, nil, nil)
}

// AddPayment records a repayment server-side. Status transitions (e.g. to
// fully paid) are the server's call; the response carries the new state.
func (s *LoansService) AddPayment(ctx context.Context, id string, amount core.Money) (core.Loan, error) {
	var dto loanDTO
	body := amountRequest{Amount: floatFromCents(amount.Cents)}
	if err := s.c.do(ctx, http.MethodPatch, "/loans/"+id+"/payment", nil, body, &dto); err != nil {
		return core.Loan{}, err
	}
	return loanFromDTO(dto), nil
}

// Outstanding returns the server-computed outstanding total.
func (s *LoansService) Outstanding(ctx context.Context) (core.Money, error) {
	var dto struct {
		Outstanding float64 `json:"outstanding"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/loans/stats/outstanding", nil, nil, &dto); err != nil {
		return core.Money{}, err
	}
	return core.Money{Cents: centsFromFloat(dto.Outstanding)}, nil
}
