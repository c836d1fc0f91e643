package http

import (
	"net/http"
	"strings"

	"focusflow/internal/aggregate"
	"focusflow/internal/api"
	"focusflow/internal/core"
)

type moneyView = string

func moneyOf(m core.Money) moneyView { return m.String() }

type categoryAmountView struct {
	Name   string    `json:"name"`
	Amount moneyView `json:"amount"`
}

type monthPointView struct {
	Month    string    `json:"month"`
	Income   moneyView `json:"income"`
	Expenses moneyView `json:"expenses"`
	Net      moneyView `json:"net"`
}

type balancePointView struct {
	Day     string    `json:"day"`
	Balance moneyView `json:"balance"`
}

type upcomingView struct {
	Title  string    `json:"title"`
	Due    string    `json:"due"`
	Amount moneyView `json:"amount"`
}

type financeOverviewView struct {
	TotalIncome   moneyView            `json:"totalIncome"`
	TotalExpenses moneyView            `json:"totalExpenses"`
	Net           moneyView            `json:"net"`
	ByCategory    []categoryAmountView `json:"byCategory"`
	BySource      []categoryAmountView `json:"bySource"`
	Monthly       []monthPointView     `json:"monthly"`
	Balance       []balancePointView   `json:"balance"`
	Savings       savingsSummaryView   `json:"savings"`
	Loans         loansSummaryView     `json:"loans"`
	Upcoming      []upcomingView       `json:"upcoming"`
	Server        serverStatsView      `json:"server"`
}

// serverStatsView carries the backend-computed totals next to the locally
// aggregated ones, so consumers can spot drift between the two.
type serverStatsView struct {
	ExpenseTotal       moneyView            `json:"expenseTotal"`
	IncomeTotal        moneyView            `json:"incomeTotal"`
	SavingsTotal       moneyView            `json:"savingsTotal"`
	LoansOutstanding   moneyView            `json:"loansOutstanding"`
	ExpensesByCategory []categoryAmountView `json:"expensesByCategory"`
	ExpensesByMonth    []serverMonthView    `json:"expensesByMonth"`
	IncomeByMonth      []serverMonthView    `json:"incomeByMonth"`
}

type serverMonthView struct {
	Month  string    `json:"month"`
	Amount moneyView `json:"amount"`
}

type savingsSummaryView struct {
	TotalSaved      moneyView `json:"totalSaved"`
	TotalTarget     moneyView `json:"totalTarget"`
	ProgressPercent float64   `json:"progressPercent"`
	Count           int       `json:"count"`
}

type loansSummaryView struct {
	TakenOutstanding moneyView `json:"takenOutstanding"`
	GivenOutstanding moneyView `json:"givenOutstanding"`
	ActiveCount      int       `json:"activeCount"`
}

// handleFinanceOverview serves the aggregated dashboard for an optional
// start/end day window (inclusive, each bound optional).
func (s *Server) handleFinanceOverview(w http.ResponseWriter, r *http.Request) {
	window := aggregate.Window{}
	if v := strings.TrimSpace(r.URL.Query().Get("start")); v != "" {
		start, err := core.ParseDay(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start date")
			return
		}
		window.Start = &start
	}
	if v := strings.TrimSpace(r.URL.Query().Get("end")); v != "" {
		end, err := core.ParseDay(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end date")
			return
		}
		window.End = &end
	}

	overview := s.finance.Overview(window)

	view := financeOverviewView{
		TotalIncome:   moneyOf(overview.TotalIncome),
		TotalExpenses: moneyOf(overview.TotalExpenses),
		Net:           moneyOf(overview.Net),
		ByCategory:    categoryViews(overview.ByCategory),
		BySource:      categoryViews(overview.BySource),
		Savings: savingsSummaryView{
			TotalSaved:      moneyOf(overview.Savings.TotalSaved),
			TotalTarget:     moneyOf(overview.Savings.TotalTarget),
			ProgressPercent: aggregate.ClampPercent(overview.Savings.Progress * 100),
			Count:           overview.Savings.Count,
		},
		Loans: loansSummaryView{
			TakenOutstanding: moneyOf(overview.Loans.TakenOutstanding),
			GivenOutstanding: moneyOf(overview.Loans.GivenOutstanding),
			ActiveCount:      overview.Loans.ActiveCount,
		},
		Server: serverStatsView{
			ExpenseTotal:       moneyOf(overview.Server.ExpenseTotal),
			IncomeTotal:        moneyOf(overview.Server.IncomeTotal),
			SavingsTotal:       moneyOf(overview.Server.SavingsTotal),
			LoansOutstanding:   moneyOf(overview.Server.LoansOutstanding),
			ExpensesByCategory: serverCategoryViews(overview.Server.ExpensesByCategory),
			ExpensesByMonth:    serverMonthViews(overview.Server.ExpensesByMonth),
			IncomeByMonth:      serverMonthViews(overview.Server.IncomeByMonth),
		},
	}
	for _, p := range overview.Monthly {
		view.Monthly = append(view.Monthly, monthPointView{
			Month:    p.Month,
			Income:   moneyOf(p.Income),
			Expenses: moneyOf(p.Expenses),
			Net:      moneyOf(p.Net),
		})
	}
	for _, p := range overview.Balance {
		view.Balance = append(view.Balance, balancePointView{
			Day:     p.Day.Key(),
			Balance: moneyOf(p.Balance),
		})
	}
	for _, u := range overview.Upcoming {
		view.Upcoming = append(view.Upcoming, upcomingView{
			Title:  u.Expense.Title,
			Due:    u.Due.Key(),
			Amount: moneyOf(u.Expense.Amount),
		})
	}

	writeJSON(w, http.StatusOK, view)
}

func categoryViews(in []aggregate.CategoryAmount) []categoryAmountView {
	out := make([]categoryAmountView, len(in))
	for i, c := range in {
		out[i] = categoryAmountView{Name: c.Name, Amount: moneyOf(c.Amount)}
	}
	return out
}

func serverCategoryViews(in []api.CategoryTotal) []categoryAmountView {
	out := make([]categoryAmountView, len(in))
	for i, c := range in {
		out[i] = categoryAmountView{Name: c.Category, Amount: moneyOf(c.Amount)}
	}
	return out
}

func serverMonthViews(in []api.MonthTotal) []serverMonthView {
	out := make([]serverMonthView, len(in))
	for i, m := range in {
		out[i] = serverMonthView{Month: m.Month, Amount: moneyOf(m.Amount)}
	}
	return out
}

type expenseRequest struct {
	Title         string `json:"title"`
	Amount        string `json:"amount"`
	Category      string `json:"category"`
	Date          string `json:"date"`
	IsRecurring   bool   `json:"isRecurring"`
	RepeatsEvery  string `json:"repeatsEvery,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	Description   string `json:"description,omitempty"`
}

func (req expenseRequest) toExpense() (core.Expense, error) {
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		return core.Expense{}, err
	}
	day, err := core.ParseDay(req.Date)
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense{
		Title:         sanitizeInput(req.Title),
		Amount:        core.Money{Cents: cents},
		Category:      core.ExpenseCategory(req.Category),
		Date:          day,
		Recurring:     req.IsRecurring,
		RepeatsEvery:  core.Repeat(req.RepeatsEvery),
		PaymentMethod: core.PaymentMethod(req.PaymentMethod),
		Description:   sanitizeInput(req.Description),
	}, nil
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	e, err := req.toExpense()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := s.finance.AddExpense(r.Context(), e)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": created.ID})
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	e, err := req.toExpense()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	e.ID = r.PathValue("id")
	updated, err := s.finance.UpdateExpense(r.Context(), e)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": updated.ID})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.finance.DeleteExpense(r.Context(), r.PathValue("id")); err != nil {
		writeAPIError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type incomeRequest struct {
	Title        string `json:"title"`
	Amount       string `json:"amount"`
	Source       string `json:"source"`
	Date         string `json:"date"`
	IsRecurring  bool   `json:"isRecurring"`
	RepeatsEvery string `json:"repeatsEvery,omitempty"`
	Description  string `json:"description,omitempty"`
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	var req incomeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	day, err := core.ParseDay(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}
	created, err := s.finance.AddIncome(r.Context(), core.Income{
		Title:        sanitizeInput(req.Title),
		Amount:       core.Money{Cents: cents},
		Source:       core.IncomeSource(req.Source),
		Date:         day,
		Recurring:    req.IsRecurring,
		RepeatsEvery: core.Repeat(req.RepeatsEvery),
		Description:  sanitizeInput(req.Description),
	})
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": created.ID})
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	if err := s.finance.DeleteIncome(r.Context(), r.PathValue("id")); err != nil {
		writeAPIError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type savingRequest struct {
	Title               string `json:"title"`
	TargetAmount        string `json:"targetAmount"`
	CurrentAmount       string `json:"currentAmount,omitempty"`
	GoalType            string `json:"goalType,omitempty"`
	TargetDate          string `json:"targetDate,omitempty"`
	MonthlyContribution string `json:"monthlyContribution,omitempty"`
}

func (s *Server) handleCreateSaving(w http.ResponseWriter, r *http.Request) {
	var req savingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	target, err := core.ParseDecimalToCents(req.TargetAmount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	current, err := core.ParseOptionalToCents(req.CurrentAmount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	monthly, err := core.ParseOptionalToCents(req.MonthlyContribution)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sv := core.Saving{
		Title:               sanitizeInput(req.Title),
		TargetAmount:        core.Money{Cents: target},
		CurrentAmount:       core.Money{Cents: current},
		GoalType:            core.SavingGoalType(req.GoalType),
		MonthlyContribution: core.Money{Cents: monthly},
	}
	if req.TargetDate != "" {
		day, err := core.ParseDay(req.TargetDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid target date")
			return
		}
		sv.TargetDate = day
	}
	created, err := s.finance.AddSaving(r.Context(), sv)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": created.ID})
}

type amountOnlyRequest struct {
	Amount string `json:"amount"`
}

func (s *Server) handleContribute(w http.ResponseWriter, r *http.Request) {
	var req amountOnlyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := s.finance.Contribute(r.Context(), r.PathValue("id"), core.Money{Cents: cents})
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":              updated.ID,
		"currentAmount":   moneyOf(updated.CurrentAmount),
		"targetAmount":    moneyOf(updated.TargetAmount),
		"progressPercent": aggregate.ClampPercent(updated.Progress() * 100),
	})
}

func (s *Server) handleDeleteSaving(w http.ResponseWriter, r *http.Request) {
	if err := s.finance.DeleteSaving(r.Context(), r.PathValue("id")); err != nil {
		writeAPIError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type loanRequest struct {
	Title        string  `json:"title"`
	Amount       string  `json:"amount"`
	Type         string  `json:"type"`
	PartyName    string  `json:"partyName"`
	Date         string  `json:"date"`
	DueDate      string  `json:"dueDate,omitempty"`
	InterestRate float64 `json:"interestRate,omitempty"`
}

func (s *Server) handleCreateLoan(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	day, err := core.ParseDay(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}
	l := core.Loan{
		Title:        sanitizeInput(req.Title),
		Amount:       core.Money{Cents: cents},
		Type:         core.LoanType(req.Type),
		PartyName:    sanitizeInput(req.PartyName),
		Date:         day,
		InterestRate: req.InterestRate,
		Status:       core.LoanActive,
	}
	if req.DueDate != "" {
		due, err := core.ParseDay(req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid due date")
			return
		}
		l.DueDate = due
	}
	created, err := s.finance.AddLoan(r.Context(), l)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": created.ID})
}

func (s *Server) handleLoanPayment(w http.ResponseWriter, r *http.Request) {
	var req amountOnlyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := s.finance.AddLoanPayment(r.Context(), r.PathValue("id"), core.Money{Cents: cents})
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":          updated.ID,
		"paidAmount":  moneyOf(updated.PaidAmount),
		"outstanding": moneyOf(updated.Outstanding()),
		"status":      string(updated.Status),
	})
}

func (s *Server) handleDeleteLoan(w http.ResponseWriter, r *http.Request) {
	if err := s.finance.DeleteLoan(r.Context(), r.PathValue("id")); err != nil {
		writeAPIError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
