package core

import (
	"errors"
	"time"
)

var (
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrInvalidAmount     = errors.New("invalid amount")
)

type (
	// Date is a calendar date with day granularity. Time of day is always
	// midnight UTC; bucketing and range checks never look below the day.
	Date struct {
		time.Time
	}

	// Transaction is a single ledger row as read from the transaction store.
	// Amount is signed: negative amounts are expenses, non-negative income.
	// An empty Category means the transaction is uncategorized.
	Transaction struct {
		ID       string
		Owner    string
		Account  string
		Category string
		Payee    string
		Notes    string
		Amount   Money
		Date     Date
	}
)

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDateFormat
	}
	return DateOf(t), nil
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time.AddDate(0, 0, n))
}

// DaysUntil returns the number of calendar days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time.Sub(d.Time).Hours() / 24)
}

func (d Date) String() string {
	return d.Time.Format(dateLayout)
}

// MarshalJSON emits the date as a bare ISO calendar-date string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON accepts a bare ISO calendar-date string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return ErrInvalidDateFormat
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// IsExpense reports whether the transaction amount is negative.
func (t Transaction) IsExpense() bool {
	return t.Amount.Miliunits < 0
}

// IsCategorized reports whether the transaction carries a category.
func (t Transaction) IsCategorized() bool {
	return t.Category != ""
}
