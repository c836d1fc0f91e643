package core

import (
	"errors"
	"strings"
)

type (
	ExpenseCategory string
	IncomeSource    string
	PaymentMethod   string
	Repeat          string
	SavingGoalType  string
	LoanType        string
	LoanStatus      string
)

const (
	CategoryFood          ExpenseCategory = "food"
	CategoryTransport     ExpenseCategory = "transport"
	CategoryHousing       ExpenseCategory = "housing"
	CategoryUtilities     ExpenseCategory = "utilities"
	CategoryEntertainment ExpenseCategory = "entertainment"
	CategoryShopping      ExpenseCategory = "shopping"
	CategoryHealth        ExpenseCategory = "health"
	CategoryEducation     ExpenseCategory = "education"
	CategoryOther         ExpenseCategory = "other"
)

const (
	SourceSalary     IncomeSource = "salary"
	SourceFreelance  IncomeSource = "freelance"
	SourceBusiness   IncomeSource = "business"
	SourceInvestment IncomeSource = "investment"
	SourceGift       IncomeSource = "gift"
	SourceOther      IncomeSource = "other"
)

const (
	PayCash     PaymentMethod = "cash"
	PayCard     PaymentMethod = "card"
	PayTransfer PaymentMethod = "bank_transfer"
	PayWallet   PaymentMethod = "wallet"
	PayOther    PaymentMethod = "other"
)

const (
	RepeatNone    Repeat = ""
	RepeatDaily   Repeat = "daily"
	RepeatWeekly  Repeat = "weekly"
	RepeatMonthly Repeat = "monthly"
	RepeatYearly  Repeat = "yearly"
)

const (
	LoanTook LoanType = "took"
	LoanGave LoanType = "gave"
)

const (
	LoanActive    LoanStatus = "active"
	LoanPartial   LoanStatus = "partially_paid"
	LoanFullyPaid LoanStatus = "fully_paid"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyTitle      = errors.New("empty title")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidSource   = errors.New("invalid income source")
	ErrInvalidRepeat   = errors.New("invalid repeat interval")
	ErrInvalidLoanType = errors.New("invalid loan type")
)

var expenseCategories = map[ExpenseCategory]struct{}{
	CategoryFood: {}, CategoryTransport: {}, CategoryHousing: {},
	CategoryUtilities: {}, CategoryEntertainment: {}, CategoryShopping: {},
	CategoryHealth: {}, CategoryEducation: {}, CategoryOther: {},
}

var incomeSources = map[IncomeSource]struct{}{
	SourceSalary: {}, SourceFreelance: {}, SourceBusiness: {},
	SourceInvestment: {}, SourceGift: {}, SourceOther: {},
}

// Expense is a single spending record owned by the backend.
type Expense struct {
	ID            string
	Title         string
	Amount        Money
	Category      ExpenseCategory
	Date          Date
	Recurring     bool
	RepeatsEvery  Repeat // set only when Recurring
	PaymentMethod PaymentMethod
	Description   string
}

// Income is a single earning record owned by the backend.
type Income struct {
	ID           string
	Title        string
	Amount       Money
	Source       IncomeSource
	Date         Date
	Recurring    bool
	RepeatsEvery Repeat
	Description  string
}

// Saving is a goal-directed savings pot. Progress is stored raw and may
// exceed 1.0; clamping happens only at presentation boundaries.
type Saving struct {
	ID                  string
	Title               string
	TargetAmount        Money
	CurrentAmount       Money
	GoalType            SavingGoalType
	TargetDate          Date
	MonthlyContribution Money
}

// Progress returns currentAmount/targetAmount as a raw ratio, unclamped.
// A zero target yields 0 rather than a division by zero.
func (s Saving) Progress() float64 {
	if s.TargetAmount.Cents <= 0 {
		return 0
	}
	return float64(s.CurrentAmount.Cents) / float64(s.TargetAmount.Cents)
}

// Loan is money taken from or given to another party. Status transitions
// are server-determined; the client only displays them.
type Loan struct {
	ID           string
	Title        string
	Amount       Money
	PaidAmount   Money
	Type         LoanType
	PartyName    string
	Date         Date
	DueDate      Date // optional
	InterestRate float64
	Status       LoanStatus
}

// Outstanding returns the unpaid remainder, never negative.
func (l Loan) Outstanding() Money {
	rem := l.Amount.Cents - l.PaidAmount.Cents
	if rem < 0 {
		rem = 0
	}
	return Money{Cents: rem}
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := validateTitle(e.Title); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if _, ok := expenseCategories[e.Category]; !ok {
		return ErrInvalidCategory
	}
	if e.Recurring {
		if err := e.RepeatsEvery.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (i Income) Validate() error {
	if err := i.Date.Validate(); err != nil {
		return err
	}
	if err := validateTitle(i.Title); err != nil {
		return err
	}
	if err := i.Amount.Validate(); err != nil {
		return err
	}
	if _, ok := incomeSources[i.Source]; !ok {
		return ErrInvalidSource
	}
	if i.Recurring {
		if err := i.RepeatsEvery.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (s Saving) Validate() error {
	if err := validateTitle(s.Title); err != nil {
		return err
	}
	if err := s.TargetAmount.Validate(); err != nil {
		return err
	}
	if s.CurrentAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (l Loan) Validate() error {
	if err := validateTitle(l.Title); err != nil {
		return err
	}
	if err := l.Amount.Validate(); err != nil {
		return err
	}
	if l.PaidAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	if l.Type != LoanTook && l.Type != LoanGave {
		return ErrInvalidLoanType
	}
	if strings.TrimSpace(l.PartyName) == "" {
		return errors.New("empty party name")
	}
	return nil
}

func (r Repeat) Validate() error {
	switch r {
	case RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly:
		return nil
	default:
		return ErrInvalidRepeat
	}
}

func validateTitle(title string) error {
	if len(strings.TrimSpace(title)) == 0 {
		return ErrEmptyTitle
	}
	if len(title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	return nil
}
