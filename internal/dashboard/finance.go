package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"focusflow/internal/aggregate"
	"focusflow/internal/amqp"
	"focusflow/internal/api"
	"focusflow/internal/cache"
	"focusflow/internal/core"
	applog "focusflow/internal/log"
)

// API surfaces the finance service depends on. The concrete
// implementations live in internal/api; tests substitute fakes.
type ExpenseAPI interface {
	List(ctx context.Context) ([]core.Expense, error)
	Create(ctx context.Context, e core.Expense) (core.Expense, error)
	Update(ctx context.Context, e core.Expense) (core.Expense, error)
	Delete(ctx context.Context, id string) error
	Total(ctx context.Context) (core.Money, error)
	ByCategory(ctx context.Context) ([]api.CategoryTotal, error)
	ByMonth(ctx context.Context) ([]api.MonthTotal, error)
}

type IncomeAPI interface {
	List(ctx context.Context) ([]core.Income, error)
	Create(ctx context.Context, i core.Income) (core.Income, error)
	Delete(ctx context.Context, id string) error
	Total(ctx context.Context) (core.Money, error)
	ByMonth(ctx context.Context) ([]api.MonthTotal, error)
}

type SavingsAPI interface {
	List(ctx context.Context) ([]core.Saving, error)
	Create(ctx context.Context, s core.Saving) (core.Saving, error)
	Delete(ctx context.Context, id string) error
	Contribute(ctx context.Context, id string, amount core.Money) (core.Saving, error)
	Total(ctx context.Context) (core.Money, error)
}

type LoansAPI interface {
	List(ctx context.Context) ([]core.Loan, error)
	Create(ctx context.Context, l core.Loan) (core.Loan, error)
	Delete(ctx context.Context, id string) error
	AddPayment(ctx context.Context, id string, amount core.Money) (core.Loan, error)
	Outstanding(ctx context.Context) (core.Money, error)
}

// ChangePublisher publishes record change notifications. *amqp.Client
// satisfies it; a nil publisher disables the feed.
type ChangePublisher interface {
	PublishRecordChange(ctx context.Context, domain, id, action string) error
}

// ServerStats holds the backend-computed totals, refreshed on load and
// after each mutation. They cross-check the local aggregation: the server
// sums over everything it stores, the local numbers only over what the
// client fetched.
type ServerStats struct {
	ExpenseTotal       core.Money
	IncomeTotal        core.Money
	SavingsTotal       core.Money
	LoansOutstanding   core.Money
	ExpensesByCategory []api.CategoryTotal
	ExpensesByMonth    []api.MonthTotal
	IncomeByMonth      []api.MonthTotal
}

// FinanceOverview is the computed dashboard state for one date window.
type FinanceOverview struct {
	TotalIncome   core.Money
	TotalExpenses core.Money
	Net           core.Money
	ByCategory    []aggregate.CategoryAmount
	BySource      []aggregate.CategoryAmount
	Monthly       []aggregate.MonthPoint
	Balance       []aggregate.BalancePoint
	Savings       aggregate.SavingsSummary
	Loans         aggregate.LoansSummary
	Upcoming      []aggregate.UpcomingExpense

	// Server is attached fresh on every Overview call; it is not part of
	// the memoized window computation.
	Server ServerStats
}

// FinanceService keeps an in-memory copy of the finance records and
// serves aggregated views over them. All mutations go to the backend
// first; the local copy is refreshed from the server response, never
// computed locally.
type FinanceService struct {
	expensesAPI ExpenseAPI
	incomeAPI   IncomeAPI
	savingsAPI  SavingsAPI
	loansAPI    LoansAPI
	publisher   ChangePublisher
	notifier    Notifier
	logger      *applog.Logger

	overviews *cache.LRUCache[FinanceOverview]

	mu       sync.RWMutex
	loaded   bool
	expenses []core.Expense
	incomes  []core.Income
	savings  []core.Saving
	loans    []core.Loan
	stats    ServerStats
}

func NewFinanceService(
	expenses ExpenseAPI,
	income IncomeAPI,
	savings SavingsAPI,
	loans LoansAPI,
	publisher ChangePublisher,
	notifier Notifier,
	logger *applog.Logger,
) *FinanceService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &FinanceService{
		expensesAPI: expenses,
		incomeAPI:   income,
		savingsAPI:  savings,
		loansAPI:    loans,
		publisher:   publisher,
		notifier:    notifier,
		logger:      logger.WithComponent(applog.ComponentDashboard),
		overviews:   cache.NewLRUCache[FinanceOverview](32, 5*time.Minute),
	}
}

// Load fetches all four record collections concurrently. A failing
// domain keeps its previous records and raises a notification; the other
// domains still refresh. Load only returns an error when every domain
// failed on a cold start.
func (s *FinanceService) Load(ctx context.Context) error {
	var (
		expenses []core.Expense
		incomes  []core.Income
		savings  []core.Saving
		loans    []core.Loan
		failures = make(map[string]error, 4)
		failMu   sync.Mutex
	)

	record := func(domain string, err error) {
		failMu.Lock()
		failures[domain] = err
		failMu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if expenses, err = s.expensesAPI.List(gctx); err != nil {
			record(amqp.DomainExpense, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if incomes, err = s.incomeAPI.List(gctx); err != nil {
			record(amqp.DomainIncome, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if savings, err = s.savingsAPI.List(gctx); err != nil {
			record(amqp.DomainSaving, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if loans, err = s.loansAPI.List(gctx); err != nil {
			record(amqp.DomainLoan, err)
		}
		return nil
	})
	g.Wait()

	s.mu.Lock()
	if _, failed := failures[amqp.DomainExpense]; !failed {
		s.expenses = expenses
	}
	if _, failed := failures[amqp.DomainIncome]; !failed {
		s.incomes = incomes
	}
	if _, failed := failures[amqp.DomainSaving]; !failed {
		s.savings = savings
	}
	if _, failed := failures[amqp.DomainLoan]; !failed {
		s.loans = loans
	}
	coldStart := !s.loaded
	s.loaded = len(failures) < 4 || s.loaded
	s.mu.Unlock()

	sg, sctx := errgroup.WithContext(ctx)
	for _, domain := range []string{amqp.DomainExpense, amqp.DomainIncome, amqp.DomainSaving, amqp.DomainLoan} {
		if _, failed := failures[domain]; failed {
			continue
		}
		sg.Go(func() error {
			s.refreshStats(sctx, domain)
			return nil
		})
	}
	sg.Wait()

	for domain, err := range failures {
		s.logger.ErrorContext(ctx, "Failed to load finance records",
			applog.FieldDomain, domain, applog.FieldError, err)
		s.notifier.Notify(ctx, Notification{
			Level:   LevelError,
			Title:   "Load failed",
			Message: fmt.Sprintf("could not refresh %s records", domain),
		})
	}

	if coldStart && len(failures) == 4 {
		return fmt.Errorf("load finance records: all domains failed")
	}
	return nil
}

// Loaded reports whether at least one successful load happened.
func (s *FinanceService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Overview computes the aggregated dashboard state for the window.
// Results are memoized on the structural identity of the records, so a
// repeated call over unchanged data costs one cache lookup.
func (s *FinanceService) Overview(window aggregate.Window) FinanceOverview {
	s.mu.RLock()
	expenses := s.expenses
	incomes := s.incomes
	savings := s.savings
	loans := s.loans
	s.mu.RUnlock()

	key := s.overviewKey(window, expenses, incomes, savings, loans)
	if cached, ok := s.overviews.Get(key); ok {
		cached.Server = s.ServerStats()
		return cached
	}

	we := aggregate.FilterExpenses(expenses, window)
	wi := aggregate.FilterIncomes(incomes, window)

	overview := FinanceOverview{
		TotalIncome:   aggregate.TotalIncome(wi),
		TotalExpenses: aggregate.TotalExpenses(we),
		ByCategory:    aggregate.ExpensesByCategory(we),
		BySource:      aggregate.IncomeBySource(wi),
		Monthly:       aggregate.MonthlySeries(wi, we),
		Balance:       aggregate.RunningBalance(wi, we),
		Savings:       aggregate.SummarizeSavings(savings),
		Loans:         aggregate.SummarizeLoans(loans),
		Upcoming:      aggregate.UpcomingRecurring(expenses, core.Today(), 30),
	}
	overview.Net = overview.TotalIncome.Sub(overview.TotalExpenses)

	s.overviews.Set(key, overview)
	overview.Server = s.ServerStats()
	return overview
}

func (s *FinanceService) overviewKey(
	window aggregate.Window,
	expenses []core.Expense,
	incomes []core.Income,
	savings []core.Saving,
	loans []core.Loan,
) string {
	parts := make([]string, 0, len(expenses)+len(incomes)+len(savings)+len(loans)+2)
	start, end := "", ""
	if window.Start != nil {
		start = window.Start.Key()
	}
	if window.End != nil {
		end = window.End.Key()
	}
	parts = append(parts, start, end)
	for _, e := range expenses {
		parts = append(parts, e.ID+":"+strconv.FormatInt(e.Amount.Cents, 10)+":"+e.Date.Key())
	}
	for _, i := range incomes {
		parts = append(parts, i.ID+":"+strconv.FormatInt(i.Amount.Cents, 10)+":"+i.Date.Key())
	}
	for _, sv := range savings {
		parts = append(parts, sv.ID+":"+strconv.FormatInt(sv.CurrentAmount.Cents, 10)+":"+strconv.FormatInt(sv.TargetAmount.Cents, 10))
	}
	for _, l := range loans {
		parts = append(parts, l.ID+":"+strconv.FormatInt(l.PaidAmount.Cents, 10)+":"+string(l.Status))
	}
	return cache.Fingerprint(parts...)
}

// Expenses returns the current in-memory expense records.
func (s *FinanceService) Expenses() []core.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expenses
}

func (s *FinanceService) Incomes() []core.Income {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.incomes
}

func (s *FinanceService) Savings() []core.Saving {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.savings
}

func (s *FinanceService) Loans() []core.Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loans
}

// ServerStats returns the last fetched backend-computed totals.
func (s *FinanceService) ServerStats() ServerStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// AddExpense validates, creates the expense on the backend, then
// refetches the expense list so local state matches the server.
func (s *FinanceService) AddExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	created, err := s.expensesAPI.Create(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	s.refetchExpenses(ctx)
	s.publishChange(ctx, amqp.DomainExpense, created.ID, amqp.ActionCreated)
	return created, nil
}

// UpdateExpense patches an existing expense and refetches.
func (s *FinanceService) UpdateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if e.ID == "" {
		return core.Expense{}, fmt.Errorf("update expense: missing id")
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	updated, err := s.expensesAPI.Update(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	s.refetchExpenses(ctx)
	s.publishChange(ctx, amqp.DomainExpense, updated.ID, amqp.ActionUpdated)
	return updated, nil
}

func (s *FinanceService) DeleteExpense(ctx context.Context, id string) error {
	if err := s.expensesAPI.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	s.refetchExpenses(ctx)
	s.publishChange(ctx, amqp.DomainExpense, id, amqp.ActionDeleted)
	return nil
}

func (s *FinanceService) AddIncome(ctx context.Context, in core.Income) (core.Income, error) {
	if err := in.Validate(); err != nil {
		return core.Income{}, err
	}
	created, err := s.incomeAPI.Create(ctx, in)
	if err != nil {
		return core.Income{}, fmt.Errorf("create income: %w", err)
	}
	s.refetchIncomes(ctx)
	s.publishChange(ctx, amqp.DomainIncome, created.ID, amqp.ActionCreated)
	return created, nil
}

func (s *FinanceService) DeleteIncome(ctx context.Context, id string) error {
	if err := s.incomeAPI.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	s.refetchIncomes(ctx)
	s.publishChange(ctx, amqp.DomainIncome, id, amqp.ActionDeleted)
	return nil
}

func (s *FinanceService) AddSaving(ctx context.Context, sv core.Saving) (core.Saving, error) {
	if err := sv.Validate(); err != nil {
		return core.Saving{}, err
	}
	created, err := s.savingsAPI.Create(ctx, sv)
	if err != nil {
		return core.Saving{}, fmt.Errorf("create saving: %w", err)
	}
	s.refetchSavings(ctx)
	s.publishChange(ctx, amqp.DomainSaving, created.ID, amqp.ActionCreated)
	return created, nil
}

// Contribute adds to a savings pot. The server computes the new balance
// and goal state; the refetched list is what the dashboard shows.
func (s *FinanceService) Contribute(ctx context.Context, id string, amount core.Money) (core.Saving, error) {
	if amount.Cents <= 0 {
		return core.Saving{}, core.ErrInvalidAmount
	}
	updated, err := s.savingsAPI.Contribute(ctx, id, amount)
	if err != nil {
		return core.Saving{}, fmt.Errorf("contribute to saving: %w", err)
	}
	s.refetchSavings(ctx)
	s.publishChange(ctx, amqp.DomainSaving, id, amqp.ActionUpdated)
	return updated, nil
}

func (s *FinanceService) DeleteSaving(ctx context.Context, id string) error {
	if err := s.savingsAPI.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete saving: %w", err)
	}
	s.refetchSavings(ctx)
	s.publishChange(ctx, amqp.DomainSaving, id, amqp.ActionDeleted)
	return nil
}

func (s *FinanceService) AddLoan(ctx context.Context, l core.Loan) (core.Loan, error) {
	if err := l.Validate(); err != nil {
		return core.Loan{}, err
	}
	created, err := s.loansAPI.Create(ctx, l)
	if err != nil {
		return core.Loan{}, fmt.Errorf("create loan: %w", err)
	}
	s.refetchLoans(ctx)
	s.publishChange(ctx, amqp.DomainLoan, created.ID, amqp.ActionCreated)
	return created, nil
}

// AddLoanPayment records a repayment. Status transitions to partially or
// fully paid happen server-side.
func (s *FinanceService) AddLoanPayment(ctx context.Context, id string, amount core.Money) (core.Loan, error) {
	if amount.Cents <= 0 {
		return core.Loan{}, core.ErrInvalidAmount
	}
	updated, err := s.loansAPI.AddPayment(ctx, id, amount)
	if err != nil {
		return core.Loan{}, fmt.Errorf("add loan payment: %w", err)
	}
	s.refetchLoans(ctx)
	s.publishChange(ctx, amqp.DomainLoan, id, amqp.ActionUpdated)
	return updated, nil
}

func (s *FinanceService) DeleteLoan(ctx context.Context, id string) error {
	if err := s.loansAPI.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete loan: %w", err)
	}
	s.refetchLoans(ctx)
	s.publishChange(ctx, amqp.DomainLoan, id, amqp.ActionDeleted)
	return nil
}

// refetch helpers replace one domain's records and its server stats from
// the backend. A failed refetch keeps the stale copy and notifies; the
// mutation that triggered it already succeeded server-side.
func (s *FinanceService) refetchExpenses(ctx context.Context) {
	records, err := s.expensesAPI.List(ctx)
	if err != nil {
		s.refetchFailed(ctx, amqp.DomainExpense, err)
	} else {
		s.mu.Lock()
		s.expenses = records
		s.mu.Unlock()
	}
	s.refreshStats(ctx, amqp.DomainExpense)
}

func (s *FinanceService) refetchIncomes(ctx context.Context) {
	records, err := s.incomeAPI.List(ctx)
	if err != nil {
		s.refetchFailed(ctx, amqp.DomainIncome, err)
	} else {
		s.mu.Lock()
		s.incomes = records
		s.mu.Unlock()
	}
	s.refreshStats(ctx, amqp.DomainIncome)
}

func (s *FinanceService) refetchSavings(ctx context.Context) {
	records, err := s.savingsAPI.List(ctx)
	if err != nil {
		s.refetchFailed(ctx, amqp.DomainSaving, err)
	} else {
		s.mu.Lock()
		s.savings = records
		s.mu.Unlock()
	}
	s.refreshStats(ctx, amqp.DomainSaving)
}

func (s *FinanceService) refetchLoans(ctx context.Context) {
	records, err := s.loansAPI.List(ctx)
	if err != nil {
		s.refetchFailed(ctx, amqp.DomainLoan, err)
	} else {
		s.mu.Lock()
		s.loans = records
		s.mu.Unlock()
	}
	s.refreshStats(ctx, amqp.DomainLoan)
}

// refreshStats pulls one domain's server-computed totals. Stats are a
// cross-check, not the primary data; a failure keeps the previous values
// and logs without raising a notification.
func (s *FinanceService) refreshStats(ctx context.Context, domain string) {
	switch domain {
	case amqp.DomainExpense:
		total, err := s.expensesAPI.Total(ctx)
		if err != nil {
			s.statsFailed(ctx, domain, err)
			return
		}
		byCategory, err := s.expensesAPI.ByCategory(ctx)
		if err != nil {
			s.statsFailed(ctx, domain, err)
			return
		}
		byMonth, err := s.expensesAPI.ByMonth(ctx)
		if err != nil {
			s.statsFailed(ctx, domain, err)
			return
		}
		s.mu.Lock()
		s.stats.ExpenseTotal = total
		s.stats.ExpensesByCategory = byCategory
		s.stats.ExpensesByMonth = byMonth
		s.mu.Unlock()
	case amqp.DomainIncome:
		total, err := s.incomeAPI.Total(ctx)
		if err != nil {
			s.statsFailed(ctx, domain, err)
			return
		}
		byMonth, err := s.incomeAPI.ByMonth(ctx)
		if err != nil {
			s.statsFailed(ctx, domain, err)
			return
		}
		s.mu.Lock()
		s.stats.IncomeTotal = total
		s.stats.IncomeByMonth = byMonth
		s.mu.Unlock()
	case amqp.DomainSaving:
		total, err := s.savingsAPI.Total(ctx)
		if err != nil {
			s.statsFailed(ctx, domain, err)
			return
		}
		s.mu.Lock()
		s.stats.SavingsTotal = total
		s.mu.Unlock()
	case amqp.DomainLoan:
		outstanding, err := s.loansAPI.Outstanding(ctx)
		if err != nil {
			s.statsFailed(ctx, domain, err)
			return
		}
		s.mu.Lock()
		s.stats.LoansOutstanding = outstanding
		s.mu.Unlock()
	}
}

func (s *FinanceService) statsFailed(ctx context.Context, domain string, err error) {
	s.logger.WarnContext(ctx, "Failed to refresh server stats",
		applog.FieldDomain, domain,
		applog.FieldError, err)
}

func (s *FinanceService) refetchFailed(ctx context.Context, domain string, err error) {
	s.logger.ErrorContext(ctx, "Failed to refetch records after mutation",
		applog.FieldDomain, domain,
		applog.FieldOperation, applog.OpRefetch,
		applog.FieldError, err)
	s.notifier.Notify(ctx, Notification{
		Level:   LevelError,
		Title:   "Refresh failed",
		Message: fmt.Sprintf("%s records may be stale", domain),
	})
}

func (s *FinanceService) publishChange(ctx context.Context, domain, id, action string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishRecordChange(ctx, domain, id, action); err != nil {
		// The mutation already succeeded; a lost feed message only
		// delays the export worker until the next change.
		s.logger.WarnContext(ctx, "Failed to publish record change",
			applog.FieldDomain, domain,
			applog.FieldRecordID, id,
			applog.FieldError, err)
	}
}
