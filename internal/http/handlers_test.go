package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"focusflow/internal/api"
	"focusflow/internal/core"
	"focusflow/internal/dashboard"
	applog "focusflow/internal/log"
	"focusflow/internal/session"
)

type stubExpenseAPI struct {
	records []core.Expense
}

func (f *stubExpenseAPI) List(context.Context) ([]core.Expense, error) { return f.records, nil }

func (f *stubExpenseAPI) Create(_ context.Context, e core.Expense) (core.Expense, error) {
	e.ID = "e-new"
	f.records = append(f.records, e)
	return e, nil
}

func (f *stubExpenseAPI) Update(_ context.Context, e core.Expense) (core.Expense, error) {
	return e, nil
}

func (f *stubExpenseAPI) Delete(context.Context, string) error { return nil }

func (f *stubExpenseAPI) Total(context.Context) (core.Money, error) {
	var total core.Money
	for _, r := range f.records {
		total = total.Add(r.Amount)
	}
	return total, nil
}

func (f *stubExpenseAPI) ByCategory(context.Context) ([]api.CategoryTotal, error) {
	return []api.CategoryTotal{{Category: "housing", Amount: core.Money{Cents: 90000}}}, nil
}

func (f *stubExpenseAPI) ByMonth(context.Context) ([]api.MonthTotal, error) {
	return []api.MonthTotal{{Month: "2026-03", Amount: core.Money{Cents: 90000}}}, nil
}

type stubIncomeAPI struct{ records []core.Income }

func (f *stubIncomeAPI) List(context.Context) ([]core.Income, error) { return f.records, nil }
func (f *stubIncomeAPI) Create(_ context.Context, i core.Income) (core.Income, error) {
	i.ID = "i-new"
	return i, nil
}
func (f *stubIncomeAPI) Delete(context.Context, string) error { return nil }
func (f *stubIncomeAPI) Total(context.Context) (core.Money, error) {
	var total core.Money
	for _, r := range f.records {
		total = total.Add(r.Amount)
	}
	return total, nil
}
func (f *stubIncomeAPI) ByMonth(context.Context) ([]api.MonthTotal, error) { return nil, nil }

type stubSavingsAPI struct{}

func (stubSavingsAPI) List(context.Context) ([]core.Saving, error) { return nil, nil }
func (stubSavingsAPI) Create(_ context.Context, s core.Saving) (core.Saving, error) {
	s.ID = "s-new"
	return s, nil
}
func (stubSavingsAPI) Delete(context.Context, string) error      { return nil }
func (stubSavingsAPI) Total(context.Context) (core.Money, error) { return core.Money{}, nil }
func (stubSavingsAPI) Contribute(_ context.Context, id string, amount core.Money) (core.Saving, error) {
	return core.Saving{ID: id, CurrentAmount: amount, TargetAmount: core.Money{Cents: 100000}}, nil
}

type stubLoansAPI struct{}

func (stubLoansAPI) List(context.Context) ([]core.Loan, error) { return nil, nil }
func (stubLoansAPI) Create(_ context.Context, l core.Loan) (core.Loan, error) {
	l.ID = "l-new"
	return l, nil
}
func (stubLoansAPI) Delete(context.Context, string) error            { return nil }
func (stubLoansAPI) Outstanding(context.Context) (core.Money, error) { return core.Money{}, nil }
func (stubLoansAPI) AddPayment(_ context.Context, id string, amount core.Money) (core.Loan, error) {
	return core.Loan{ID: id, Amount: core.Money{Cents: 50000}, PaidAmount: amount, Status: core.LoanPartial}, nil
}

type stubAuthAPI struct {
	token string
}

func (f *stubAuthAPI) Login(context.Context, string, string) (api.TokenPair, api.User, error) {
	return api.TokenPair{AccessToken: f.token, RefreshToken: "refresh-1"}, api.User{ID: "u1"}, nil
}

func (f *stubAuthAPI) Register(context.Context, string, string, string) (api.TokenPair, api.User, error) {
	return api.TokenPair{AccessToken: f.token}, api.User{ID: "u1"}, nil
}

type stubJournalAPI struct{}

func (stubJournalAPI) Goals(context.Context) ([]core.Goal, error) {
	return []core.Goal{{ID: "g1", Title: "ship"}}, nil
}
func (stubJournalAPI) CreateGoal(_ context.Context, g core.Goal) (core.Goal, error) {
	g.ID = "g-new"
	return g, nil
}
func (stubJournalAPI) DailyLogs(context.Context) ([]core.DailyLog, error) { return nil, nil }
func (stubJournalAPI) CreateDailyLog(_ context.Context, l core.DailyLog) (core.DailyLog, error) {
	l.ID = "d-new"
	return l, nil
}
func (stubJournalAPI) Roadmaps(context.Context, string, string, int) (api.RoadmapPage, error) {
	return api.RoadmapPage{}, nil
}

type stubFoodStore struct {
	entries []core.FoodEntry
}

func (f *stubFoodStore) AddEntry(_ context.Context, e core.FoodEntry) (core.FoodEntry, error) {
	if err := e.Validate(); err != nil {
		return core.FoodEntry{}, err
	}
	e.ID = "f-new"
	f.entries = append(f.entries, e)
	return e, nil
}
func (f *stubFoodStore) DeleteEntry(context.Context, string) error { return nil }
func (f *stubFoodStore) ListEntries(context.Context) ([]core.FoodEntry, error) {
	return f.entries, nil
}
func (f *stubFoodStore) EntriesOn(_ context.Context, day core.Date) ([]core.FoodEntry, error) {
	var out []core.FoodEntry
	for _, e := range f.entries {
		if e.Date.Key() == day.Key() {
			out = append(out, e)
		}
	}
	return out, nil
}
func (f *stubFoodStore) EntriesBetween(context.Context, core.Date, core.Date) ([]core.FoodEntry, error) {
	return f.entries, nil
}
func (f *stubFoodStore) Settings(context.Context) (core.CalorieSettings, error) {
	return core.CalorieSettings{DailyGoal: 2000}, nil
}
func (f *stubFoodStore) SaveSettings(context.Context, core.CalorieSettings) error { return nil }
func (f *stubFoodStore) UpsertReflection(_ context.Context, r core.DailyReflection) error {
	return r.Validate()
}
func (f *stubFoodStore) ListReflections(context.Context) ([]core.DailyReflection, error) {
	return nil, nil
}

func signTestToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "u1",
		"name":  "Alex",
		"email": "alex@example.com",
		"role":  "user",
		"exp":   expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newTestServer(t *testing.T) (*Server, *stubExpenseAPI) {
	t.Helper()
	logger := applog.New(applog.DefaultConfig())

	expenses := &stubExpenseAPI{records: []core.Expense{
		{ID: "e1", Title: "rent", Amount: core.Money{Cents: 90000},
			Category: core.CategoryHousing, Date: core.NewDate(2026, 3, 1)},
	}}
	finance := dashboard.NewFinanceService(
		expenses, &stubIncomeAPI{}, stubSavingsAPI{}, stubLoansAPI{}, nil, nil, logger)
	if err := finance.Load(context.Background()); err != nil {
		t.Fatalf("load finance: %v", err)
	}

	calories := dashboard.NewCalorieService(&stubFoodStore{}, logger)
	goals := dashboard.NewGoalsService(stubJournalAPI{}, logger)
	sessions := session.NewManager(session.NewMemoryTokenStore(), nil, logger)
	auth := &stubAuthAPI{token: signTestToken(t, time.Now().Add(time.Hour))}

	return NewServer("127.0.0.1:0", finance, calories, goals, sessions, auth, logger), expenses
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndReady(t *testing.T) {
	s, _ := newTestServer(t)

	if rec := doRequest(s, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("healthz = %d, want 200", rec.Code)
	}
	if rec := doRequest(s, http.MethodGet, "/readyz", ""); rec.Code != http.StatusOK {
		t.Errorf("readyz = %d, want 200 after load", rec.Code)
	}
}

func TestFinanceOverviewEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/finance/overview", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("overview = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var view struct {
		TotalExpenses string `json:"totalExpenses"`
		ByCategory    []struct {
			Name   string `json:"name"`
			Amount string `json:"amount"`
		} `json:"byCategory"`
		Server struct {
			ExpenseTotal       string `json:"expenseTotal"`
			ExpensesByCategory []struct {
				Name   string `json:"name"`
				Amount string `json:"amount"`
			} `json:"expensesByCategory"`
		} `json:"server"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.TotalExpenses != "900.00" {
		t.Errorf("totalExpenses = %q, want 900.00", view.TotalExpenses)
	}
	if len(view.ByCategory) != 1 || view.ByCategory[0].Name != "housing" {
		t.Errorf("unexpected byCategory: %+v", view.ByCategory)
	}
	if view.Server.ExpenseTotal != "900.00" {
		t.Errorf("server expenseTotal = %q, want 900.00", view.Server.ExpenseTotal)
	}
	if len(view.Server.ExpensesByCategory) != 1 || view.Server.ExpensesByCategory[0].Name != "housing" {
		t.Errorf("unexpected server byCategory: %+v", view.Server.ExpensesByCategory)
	}
}

func TestFinanceOverviewBadWindow(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/finance/overview?start=March-1", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad start date = %d, want 400", rec.Code)
	}
}

func TestCreateExpenseEndpoint(t *testing.T) {
	s, expenses := newTestServer(t)

	body := `{"title":"coffee","amount":"4.50","category":"food","date":"2026-03-10"}`
	rec := doRequest(s, http.MethodPost, "/api/expenses", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if len(expenses.records) != 2 {
		t.Errorf("expected expense appended, got %d records", len(expenses.records))
	}
}

func TestCreateExpenseInvalidAmount(t *testing.T) {
	s, _ := newTestServer(t)

	body := `{"title":"coffee","amount":"-4.50","category":"food","date":"2026-03-10"}`
	rec := doRequest(s, http.MethodPost, "/api/expenses", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative amount = %d, want 400", rec.Code)
	}
}

func TestContributeEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/savings/s1/contribute", `{"amount":"50.00"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("contribute = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		CurrentAmount string `json:"currentAmount"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.CurrentAmount != "50.00" {
		t.Errorf("currentAmount = %q, want 50.00", resp.CurrentAmount)
	}
}

func TestLoginAndSessionEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	if rec := doRequest(s, http.MethodGet, "/api/auth/session", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("session before login = %d, want 401", rec.Code)
	}

	rec := doRequest(s, http.MethodPost, "/api/auth/login", `{"email":"alex@example.com","password":"pw"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var view sessionView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.UserID != "u1" || view.Email != "alex@example.com" {
		t.Errorf("unexpected session view: %+v", view)
	}

	if rec := doRequest(s, http.MethodGet, "/api/auth/session", ""); rec.Code != http.StatusOK {
		t.Errorf("session after login = %d, want 200", rec.Code)
	}

	if rec := doRequest(s, http.MethodPost, "/api/auth/logout", ""); rec.Code != http.StatusNoContent {
		t.Errorf("logout = %d, want 204", rec.Code)
	}
	if rec := doRequest(s, http.MethodGet, "/api/auth/session", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("session after logout = %d, want 401", rec.Code)
	}
}

func TestCalorieEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	body := `{"name":"oatmeal","calories":350,"meal":"breakfast","date":"2026-03-10"}`
	if rec := doRequest(s, http.MethodPost, "/api/calories/entries", body); rec.Code != http.StatusCreated {
		t.Fatalf("log food = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	rec := doRequest(s, http.MethodGet, "/api/calories/summary?day=2026-03-10", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("summary = %d, want 200", rec.Code)
	}
	var summary daySummaryView
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.Total != 350 || summary.Remaining != 1650 {
		t.Errorf("summary total/remaining = %d/%d, want 350/1650", summary.Total, summary.Remaining)
	}

	if rec := doRequest(s, http.MethodPost, "/api/calories/entries", `{"name":"","calories":100,"meal":"lunch"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid entry = %d, want 400", rec.Code)
	}
}

func TestGoalsOverviewEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/goals/overview", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("goals overview = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var view goalsOverviewView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(view.Goals) != 1 || view.Goals[0].Title != "ship" {
		t.Errorf("unexpected goals: %+v", view.Goals)
	}
}
