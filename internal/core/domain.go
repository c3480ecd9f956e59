package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Weekly   Frequency = "weekly"
	BiWeekly Frequency = "bi-weekly"
	Monthly  Frequency = "monthly"
	Annual   Frequency = "annual"
)

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCredit     AccountType = "credit"
	AccountInvestment AccountType = "investment"
)

const (
	ContributionEmployee ContributionType = "employee"
	ContributionEmployer ContributionType = "employer_match"
)

// CategoryUncategorized is the bucket every spending aggregate files a
// transaction under when it carries no category.
const CategoryUncategorized = "Uncategorized"

type (
	Frequency        string
	AccountType      string
	ContributionType string

	Date struct {
		time.Time
	}

	// Account balances are signed. For credit accounts a negative balance
	// means debt owed and a positive one credit in the user's favor.
	Account struct {
		ID      string
		Name    string
		Type    AccountType
		Balance float64
	}

	ActualPayment struct {
		ID     string
		Date   Date
		Amount float64
		Note   string
	}

	// IncomeSource carries three derived fields (AverageMonthly,
	// IncomeVariance, PaymentCount) that are recomputed from Payments after
	// every payment mutation. They are never set directly.
	IncomeSource struct {
		ID             string
		Name           string
		Earner         string
		Amount         float64
		Frequency      Frequency
		NextPayDate    Date
		IsVariable     bool
		AverageMonthly float64
		IncomeVariance float64
		PaymentCount   int
		Payments       []ActualPayment
	}

	// FixedExpense recurs every month on DueDay. PaidMonth holds the "YYYY-MM"
	// the bill was last marked paid, so the flag expires at month rollover
	// without any reset job.
	FixedExpense struct {
		ID        string
		Name      string
		Amount    float64
		DueDay    int
		Category  string
		AutoPay   bool
		PaidMonth string
	}

	// Transaction amounts are positive for spending. Zero and negative
	// amounts (refunds, corrections) are kept but excluded from all
	// spending aggregates.
	Transaction struct {
		ID          string
		Date        Date
		Amount      float64
		Category    string
		Description string
	}

	Contribution struct {
		ID     string
		Date   Date
		Amount float64
		Type   ContributionType
	}

	// RetirementAccount contributions reduce available spending. The
	// ContributionAmount is per pay period of the linked income source
	// (monthly when no source is linked).
	RetirementAccount struct {
		ID                 string
		Name               string
		Balance            float64
		AnnualLimit        float64
		ContributionAmount float64
		IncomeSourceID     string
		Contributions      []Contribution
	}
)

var (
	ErrInvalidDay         = errors.New("invalid day")
	ErrInvalidMonth       = errors.New("invalid month")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidDueDay      = errors.New("invalid due day")
	ErrInvalidFrequency   = errors.New("invalid frequency")
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrEmptyName          = errors.New("empty name")
	ErrEmptyCategory      = errors.New("empty category")
	ErrNotFound           = errors.New("not found")
)

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	_, month, day := d.Date()
	if day < 1 || day > 31 {
		return ErrInvalidDay
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today truncates t to a calendar date in UTC.
func Today(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a "YYYY-MM-DD" string. Records with unparseable dates are
// skipped by the aggregates, so callers treat the error as per-record.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// IsEmpty returns true if the date is zero (optional dates)
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// MonthKey returns the "YYYY-MM" bucket key for the date.
func (d Date) MonthKey() string {
	return fmt.Sprintf("%04d-%02d", d.Year(), d.Month())
}

// WeekOfMonth buckets days into consecutive 7-day spans starting day 1.
// Days 29-31 land in week 5; week 5 only ever matches itself.
func (d Date) WeekOfMonth() int {
	return ((d.Day() - 1) / 7) + 1
}

// DaysInMonth returns the number of days in the date's month.
func (d Date) DaysInMonth() int {
	return time.Date(d.Year(), time.Month(d.Month()), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 1, -1).Day()
}

// MonthKeyOf formats a year+month pair as a "YYYY-MM" bucket key.
func MonthKeyOf(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func (f Frequency) Validate() error {
	switch f {
	case Weekly, BiWeekly, Monthly, Annual:
		return nil
	default:
		return ErrInvalidFrequency
	}
}

func (t AccountType) Validate() error {
	switch t {
	case AccountChecking, AccountSavings, AccountCredit, AccountInvestment:
		return nil
	default:
		return ErrInvalidAccountType
	}
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if len(a.Name) > 100 {
		return errors.New("name too long (max 100 characters)")
	}
	return a.Type.Validate()
}

func (p ActualPayment) Validate() error {
	if err := p.Date.Validate(); err != nil {
		return err
	}
	if p.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (inc IncomeSource) Validate() error {
	if strings.TrimSpace(inc.Name) == "" {
		return ErrEmptyName
	}
	if inc.Amount < 0 {
		return ErrInvalidAmount
	}
	return inc.Frequency.Validate()
}

func (fe FixedExpense) Validate() error {
	if strings.TrimSpace(fe.Name) == "" {
		return ErrEmptyName
	}
	if fe.Amount <= 0 {
		return ErrInvalidAmount
	}
	if fe.DueDay < 1 || fe.DueDay > 31 {
		return ErrInvalidDueDay
	}
	if strings.TrimSpace(fe.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// IsPaidIn reports whether the bill is paid for the given calendar month.
// A PaidMonth from a previous month reads as unpaid.
func (fe FixedExpense) IsPaidIn(year, month int) bool {
	return fe.PaidMonth == MonthKeyOf(year, month)
}

func (tx Transaction) Validate() error {
	if err := tx.Date.Validate(); err != nil {
		return err
	}
	if tx.Amount == 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(tx.Category) == "" {
		return ErrEmptyCategory
	}
	if len(tx.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

func (ra RetirementAccount) Validate() error {
	if strings.TrimSpace(ra.Name) == "" {
		return ErrEmptyName
	}
	if ra.ContributionAmount < 0 {
		return ErrInvalidAmount
	}
	return nil
}
