package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"focusflow/internal/core"
)

type staticAuth struct {
	header string
}

func (a staticAuth) AuthHeader() (string, bool) {
	if a.header == "" {
		return "", false
	}
	return a.header, true
}

func TestAuthHeaderAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]expenseDTO{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithAuthProvider(staticAuth{header: "Bearer tok-1"}))
	if _, err := c.Expenses.List(context.Background()); err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("authorization header: got %q", gotAuth)
	}
}

func TestAnonymousRequestHasNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]expenseDTO{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithAuthProvider(staticAuth{}))
	if _, err := c.Expenses.List(context.Background()); err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no authorization header, got %q", gotAuth)
	}
}

func TestExpensesListDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/expenses" || r.Method != http.MethodGet {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode([]expenseDTO{
			{ID: "e1", Title: "groceries", Amount: 12.34, Category: "food", Date: "2025-01-02"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.Expenses.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d expenses", len(got))
	}
	e := got[0]
	if e.ID != "e1" || e.Amount.Cents != 1234 || e.Category != core.CategoryFood {
		t.Fatalf("decoded expense wrong: %+v", e)
	}
	if e.Date.Key() != "2025-01-02" {
		t.Fatalf("date: got %s", e.Date.Key())
	}
}

func TestAPIErrorDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "amount must be positive"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Expenses.Create(context.Background(), core.Expense{Title: "x"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity || apiErr.Message != "amount must be positive" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestSavingsContribute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/savings/s1/contribute" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body amountRequest
		json.NewDecoder(r.Body).Decode(&body)
		if body.Amount != 25.00 {
			t.Errorf("amount: got %v", body.Amount)
		}
		json.NewEncoder(w).Encode(savingDTO{ID: "s1", Title: "vacation", TargetAmount: 100, CurrentAmount: 75})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.Savings.Contribute(context.Background(), "s1", core.Money{Cents: 2500})
	if err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	if got.CurrentAmount.Cents != 7500 {
		t.Fatalf("current amount: got %d", got.CurrentAmount.Cents)
	}
}

func TestLoanAddPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/loans/l1/payment" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(loanDTO{ID: "l1", Title: "car", Amount: 500, PaidAmount: 500, Type: "took", PartyName: "bank", Date: "2025-01-01", Status: "fully_paid"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.Loans.AddPayment(context.Background(), "l1", core.Money{Cents: 10000})
	if err != nil {
		t.Fatalf("AddPayment: %v", err)
	}
	if got.Status != core.LoanFullyPaid || got.Outstanding().Cents != 0 {
		t.Fatalf("unexpected loan state: %+v", got)
	}
}

func TestRegisterHasNoRefreshToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(registerResponse{Token: "acc-1", User: User{ID: "u1"}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	pair, user, err := c.Auth.Register(context.Background(), "n", "e@x", "pw")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if pair.AccessToken != "acc-1" || user.ID != "u1" {
		t.Fatalf("unexpected response: %+v %+v", pair, user)
	}
	if pair.RefreshToken != "" {
		t.Fatalf("register must not produce a refresh token")
	}
}

func TestRoadmapPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/technical-roadmaps" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("limit") != "2" {
			t.Errorf("limit: got %q", q.Get("limit"))
		}
		if q.Get("cursor") == "" {
			json.NewEncoder(w).Encode(map[string]any{
				"items":      []roadmapDTO{{ID: "r1", Title: "go"}, {ID: "r2", Title: "sql"}},
				"nextCursor": "c2",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"items":      []roadmapDTO{{ID: "r3", Title: "k8s"}},
			"nextCursor": "",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	page1, err := c.Journal.Roadmaps(context.Background(), "technical", "", 2)
	if err != nil {
		t.Fatalf("page1: %v", err)
	}
	if len(page1.Items) != 2 || page1.NextCursor != "c2" {
		t.Fatalf("page1 wrong: %+v", page1)
	}
	page2, err := c.Journal.Roadmaps(context.Background(), "technical", page1.NextCursor, 2)
	if err != nil {
		t.Fatalf("page2: %v", err)
	}
	if len(page2.Items) != 1 || page2.NextCursor != "" {
		t.Fatalf("page2 wrong: %+v", page2)
	}
}

func TestCentsFromFloat(t *testing.T) {
	cases := []struct {
		in   float64
		want int64
	}{
		{12.34, 1234},
		{0.1, 10},
		{19.99, 1999},
		{0, 0},
		{-5.55, -555},
		// Half-up at the third decimal, including binary float artifacts.
		{2.675, 268},
		{1.005, 101},
		{-2.675, -268},
	}
	for _, tc := range cases {
		if got := centsFromFloat(tc.in); got != tc.want {
			t.Fatalf("%v: got %d want %d", tc.in, got, tc.want)
		}
	}
}
