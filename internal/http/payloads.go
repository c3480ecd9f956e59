package http

import (
	"fmt"

	"fintrack/internal/core"
)

// Payload types decouple the wire format from the domain types: dates travel
// as "YYYY-MM-DD" strings and amounts are rounded to cents on the way out.

type accountPayload struct {
	ID      string  `json:"id,omitempty"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Balance float64 `json:"balance"`
}

func (p accountPayload) toDomain() core.Account {
	return core.Account{
		ID:      p.ID,
		Name:    p.Name,
		Type:    core.AccountType(p.Type),
		Balance: p.Balance,
	}
}

func accountJSON(a core.Account) accountPayload {
	return accountPayload{
		ID:      a.ID,
		Name:    a.Name,
		Type:    string(a.Type),
		Balance: core.Round2(a.Balance),
	}
}

type paymentPayload struct {
	ID     string  `json:"id,omitempty"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Note   string  `json:"note,omitempty"`
}

func (p paymentPayload) toDomain() (core.ActualPayment, error) {
	d, err := parseOptionalDate(p.Date)
	if err != nil {
		return core.ActualPayment{}, err
	}
	return core.ActualPayment{
		ID:     p.ID,
		Date:   d,
		Amount: p.Amount,
		Note:   p.Note,
	}, nil
}

func paymentJSON(p core.ActualPayment) paymentPayload {
	return paymentPayload{
		ID:     p.ID,
		Date:   formatDate(p.Date),
		Amount: core.Round2(p.Amount),
		Note:   p.Note,
	}
}

type incomePayload struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Earner      string  `json:"earner,omitempty"`
	Amount      float64 `json:"amount"`
	Frequency   string  `json:"frequency"`
	NextPayDate string  `json:"next_pay_date,omitempty"`
	IsVariable  bool    `json:"is_variable"`

	// Derived fields, recomputed from payment history. Ignored on input.
	AverageMonthly float64          `json:"average_monthly,omitempty"`
	IncomeVariance float64          `json:"income_variance,omitempty"`
	PaymentCount   int              `json:"payment_count,omitempty"`
	Payments       []paymentPayload `json:"payments,omitempty"`
}

func (p incomePayload) toDomain() (core.IncomeSource, error) {
	d, err := parseOptionalDate(p.NextPayDate)
	if err != nil {
		return core.IncomeSource{}, err
	}
	return core.IncomeSource{
		ID:          p.ID,
		Name:        p.Name,
		Earner:      p.Earner,
		Amount:      p.Amount,
		Frequency:   core.Frequency(p.Frequency),
		NextPayDate: d,
		IsVariable:  p.IsVariable,
	}, nil
}

func incomeJSON(inc core.IncomeSource) incomePayload {
	out := incomePayload{
		ID:             inc.ID,
		Name:           inc.Name,
		Earner:         inc.Earner,
		Amount:         core.Round2(inc.Amount),
		Frequency:      string(inc.Frequency),
		NextPayDate:    formatDate(inc.NextPayDate),
		IsVariable:     inc.IsVariable,
		AverageMonthly: core.Round2(inc.AverageMonthly),
		IncomeVariance: core.Round2(inc.IncomeVariance),
		PaymentCount:   inc.PaymentCount,
	}
	for _, p := range inc.Payments {
		out.Payments = append(out.Payments, paymentJSON(p))
	}
	return out
}

type expensePayload struct {
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	DueDay    int     `json:"due_day"`
	Category  string  `json:"category"`
	AutoPay   bool    `json:"auto_pay"`
	PaidMonth string  `json:"paid_month,omitempty"`
}

func (p expensePayload) toDomain() core.FixedExpense {
	return core.FixedExpense{
		ID:       p.ID,
		Name:     p.Name,
		Amount:   p.Amount,
		DueDay:   p.DueDay,
		Category: p.Category,
		AutoPay:  p.AutoPay,
	}
}

func expenseJSON(fe core.FixedExpense) expensePayload {
	return expensePayload{
		ID:        fe.ID,
		Name:      fe.Name,
		Amount:    core.Round2(fe.Amount),
		DueDay:    fe.DueDay,
		Category:  fe.Category,
		AutoPay:   fe.AutoPay,
		PaidMonth: fe.PaidMonth,
	}
}

type transactionPayload struct {
	ID          string  `json:"id,omitempty"`
	Date        string  `json:"date,omitempty"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
}

func (p transactionPayload) toDomain() (core.Transaction, error) {
	d, err := parseOptionalDate(p.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		ID:          p.ID,
		Date:        d,
		Amount:      p.Amount,
		Category:    p.Category,
		Description: p.Description,
	}, nil
}

func transactionJSON(tx core.Transaction) transactionPayload {
	return transactionPayload{
		ID:          tx.ID,
		Date:        formatDate(tx.Date),
		Amount:      core.Round2(tx.Amount),
		Category:    tx.Category,
		Description: tx.Description,
	}
}

type contributionPayload struct {
	ID     string  `json:"id,omitempty"`
	Date   string  `json:"date,omitempty"`
	Amount float64 `json:"amount"`
	Type   string  `json:"type,omitempty"`
}

func (p contributionPayload) toDomain() (core.Contribution, error) {
	d, err := parseOptionalDate(p.Date)
	if err != nil {
		return core.Contribution{}, err
	}
	typ := core.ContributionType(p.Type)
	if typ == "" {
		typ = core.ContributionEmployee
	}
	return core.Contribution{
		ID:     p.ID,
		Date:   d,
		Amount: p.Amount,
		Type:   typ,
	}, nil
}

func contributionJSON(c core.Contribution) contributionPayload {
	return contributionPayload{
		ID:     c.ID,
		Date:   formatDate(c.Date),
		Amount: core.Round2(c.Amount),
		Type:   string(c.Type),
	}
}

type retirementPayload struct {
	ID                 string                `json:"id,omitempty"`
	Name               string                `json:"name"`
	Balance            float64               `json:"balance"`
	AnnualLimit        float64               `json:"annual_limit,omitempty"`
	ContributionAmount float64               `json:"contribution_amount"`
	IncomeSourceID     string                `json:"income_source_id,omitempty"`
	Contributions      []contributionPayload `json:"contributions,omitempty"`
}

func (p retirementPayload) toDomain() core.RetirementAccount {
	return core.RetirementAccount{
		ID:                 p.ID,
		Name:               p.Name,
		Balance:            p.Balance,
		AnnualLimit:        p.AnnualLimit,
		ContributionAmount: p.ContributionAmount,
		IncomeSourceID:     p.IncomeSourceID,
	}
}

func retirementJSON(ra core.RetirementAccount) retirementPayload {
	out := retirementPayload{
		ID:                 ra.ID,
		Name:               ra.Name,
		Balance:            core.Round2(ra.Balance),
		AnnualLimit:        core.Round2(ra.AnnualLimit),
		ContributionAmount: core.Round2(ra.ContributionAmount),
		IncomeSourceID:     ra.IncomeSourceID,
	}
	for _, c := range ra.Contributions {
		out.Contributions = append(out.Contributions, contributionJSON(c))
	}
	return out
}

// parseOptionalDate parses a "YYYY-MM-DD" string; empty means the zero date.
func parseOptionalDate(s string) (core.Date, error) {
	if s == "" {
		return core.Date{}, nil
	}
	d, err := core.ParseDate(s)
	if err != nil {
		return core.Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return d, nil
}

// formatDate serializes a date; the zero date reads as "".
func formatDate(d core.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}
