package aggregate

import (
	"sort"

	"focusflow/internal/core"
)

// CategoryAmount is one slice of a category breakdown.
type CategoryAmount struct {
	Name   string
	Amount core.Money
}

// MonthPoint is one month of the income/expense series.
type MonthPoint struct {
	Month    string // YYYY-MM
	Income   core.Money
	Expenses core.Money
	Net      core.Money
}

// BalancePoint is one day of the running wealth trend.
type BalancePoint struct {
	Day     core.Date
	Balance core.Money
}

// SavingsSummary aggregates all savings pots.
type SavingsSummary struct {
	TotalSaved  core.Money
	TotalTarget core.Money
	Progress    float64 // raw ratio, unclamped
	Count       int
}

// LoansSummary aggregates loans by direction.
type LoansSummary struct {
	TakenOutstanding core.Money
	GivenOutstanding core.Money
	ActiveCount      int
}

// TotalExpenses sums expense amounts. Empty input yields zero.
func TotalExpenses(records []core.Expense) core.Money {
	var total core.Money
	for _, e := range records {
		total = total.Add(e.Amount)
	}
	return total
}

// TotalIncome sums income amounts. Empty input yields zero.
func TotalIncome(records []core.Income) core.Money {
	var total core.Money
	for _, i := range records {
		total = total.Add(i.Amount)
	}
	return total
}

// ExpensesByCategory groups expenses by category and sums per group.
// Output is sorted by amount descending; ties keep first-seen input order.
func ExpensesByCategory(records []core.Expense) []CategoryAmount {
	return breakdown(records,
		func(e core.Expense) string { return string(e.Category) },
		func(e core.Expense) core.Money { return e.Amount })
}

// IncomeBySource groups income by source with the same ordering rules.
func IncomeBySource(records []core.Income) []CategoryAmount {
	return breakdown(records,
		func(i core.Income) string { return string(i.Source) },
		func(i core.Income) core.Money { return i.Amount })
}

func breakdown[T any](records []T, name func(T) string, amount func(T) core.Money) []CategoryAmount {
	sums := make(map[string]int64, len(records))
	order := make([]string, 0, len(records))
	for _, r := range records {
		n := name(r)
		if _, seen := sums[n]; !seen {
			order = append(order, n)
		}
		sums[n] += amount(r).Cents
	}
	out := make([]CategoryAmount, 0, len(order))
	for _, n := range order {
		out = append(out, CategoryAmount{Name: n, Amount: core.Money{Cents: sums[n]}})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Amount.Cents > out[b].Amount.Cents
	})
	return out
}

// MonthlySeries groups both record kinds by YYYY-MM and accumulates income,
// expenses and the signed net per month, sorted ascending by month key.
func MonthlySeries(incomes []core.Income, expenses []core.Expense) []MonthPoint {
	points := make(map[string]*MonthPoint)
	get := func(key string) *MonthPoint {
		p, ok := points[key]
		if !ok {
			p = &MonthPoint{Month: key}
			points[key] = p
		}
		return p
	}
	for _, i := range incomes {
		p := get(i.Date.MonthKey())
		p.Income = p.Income.Add(i.Amount)
		p.Net = p.Net.Add(i.Amount)
	}
	for _, e := range expenses {
		p := get(e.Date.MonthKey())
		p.Expenses = p.Expenses.Add(e.Amount)
		p.Net = p.Net.Sub(e.Amount)
	}
	keys := make([]string, 0, len(points))
	for k := range points {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]MonthPoint, 0, len(keys))
	for _, k := range keys {
		out = append(out, *points[k])
	}
	return out
}

// RunningBalance merges incomes (positive) and expenses (negative) into one
// date-ordered sequence and folds a running sum. It emits one point per
// distinct day, equal to the running sum after the day's last transaction.
// On equal days incomes are applied before expenses; within a kind the input
// order is preserved.
func RunningBalance(incomes []core.Income, expenses []core.Expense) []BalancePoint {
	type txn struct {
		day   core.Date
		cents int64
	}
	txns := make([]txn, 0, len(incomes)+len(expenses))
	for _, i := range incomes {
		txns = append(txns, txn{day: i.Date, cents: i.Amount.Cents})
	}
	for _, e := range expenses {
		txns = append(txns, txn{day: e.Date, cents: -e.Amount.Cents})
	}
	sort.SliceStable(txns, func(a, b int) bool {
		return txns[a].day.Before(txns[b].day.Time)
	})

	var out []BalancePoint
	var running int64
	for _, tx := range txns {
		running += tx.cents
		if n := len(out); n > 0 && out[n-1].Day.Equal(tx.day.Time) {
			out[n-1].Balance = core.Money{Cents: running}
			continue
		}
		out = append(out, BalancePoint{Day: tx.day, Balance: core.Money{Cents: running}})
	}
	return out
}

// SummarizeSavings folds all savings pots into one summary. Progress stays
// raw; callers clamp at presentation time via ClampPercent.
func SummarizeSavings(records []core.Saving) SavingsSummary {
	var s SavingsSummary
	s.Count = len(records)
	for _, r := range records {
		s.TotalSaved = s.TotalSaved.Add(r.CurrentAmount)
		s.TotalTarget = s.TotalTarget.Add(r.TargetAmount)
	}
	if s.TotalTarget.Cents > 0 {
		s.Progress = float64(s.TotalSaved.Cents) / float64(s.TotalTarget.Cents)
	}
	return s
}

// SummarizeLoans totals outstanding amounts per direction and counts loans
// not yet fully paid.
func SummarizeLoans(records []core.Loan) LoansSummary {
	var s LoansSummary
	for _, l := range records {
		out := l.Outstanding()
		switch l.Type {
		case core.LoanTook:
			s.TakenOutstanding = s.TakenOutstanding.Add(out)
		case core.LoanGave:
			s.GivenOutstanding = s.GivenOutstanding.Add(out)
		}
		if l.Status != core.LoanFullyPaid {
			s.ActiveCount++
		}
	}
	return s
}

// ClampPercent clamps a percentage into [0, 100]. Progress values are stored
// raw; this is the single presentation-boundary clamp.
func ClampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
