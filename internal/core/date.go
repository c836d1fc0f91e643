package core

import (
	"errors"
	"time"
)

// Date is a calendar day. The time-of-day component is always UTC midnight;
// two Dates compare equal iff they name the same day.
type Date struct {
	time.Time
}

// NewDate creates a new Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar day in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, int(m), d)
}

// Today returns the current calendar day in UTC.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDay parses a date in YYYY-MM-DD form.
func ParseDay(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// Key returns the day key in YYYY-MM-DD form.
func (d Date) Key() string {
	return d.Format("2006-01-02")
}

// MonthKey returns the period key in YYYY-MM form.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as an int in 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// IsEmpty reports whether the date is unset (optional dates).
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}
