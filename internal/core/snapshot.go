package core

// Snapshot is an immutable copy of every collection, taken at call entry.
// The analytics engine only ever reads snapshots; concurrent writers mutate
// the store, never a snapshot in flight.
type Snapshot struct {
	TakenAt      Date
	Accounts     []Account
	Incomes      []IncomeSource
	Expenses     []FixedExpense
	Transactions []Transaction
	Retirement   []RetirementAccount
}

// CheckingBalance sums checking account balances.
func (s Snapshot) CheckingBalance() float64 {
	return s.balanceOf(AccountChecking)
}

// SavingsBalance sums savings account balances.
func (s Snapshot) SavingsBalance() float64 {
	return s.balanceOf(AccountSavings)
}

// CreditBalance sums credit account balances. Negative means debt owed.
func (s Snapshot) CreditBalance() float64 {
	return s.balanceOf(AccountCredit)
}

// LiquidBalance is checking plus savings, excluding credit and investment.
func (s Snapshot) LiquidBalance() float64 {
	return s.CheckingBalance() + s.SavingsBalance()
}

func (s Snapshot) balanceOf(t AccountType) float64 {
	var total float64
	for _, a := range s.Accounts {
		if a.Type == t {
			total += a.Balance
		}
	}
	return total
}

// IncomeByID finds an income source in the snapshot.
func (s Snapshot) IncomeByID(id string) (IncomeSource, bool) {
	for _, inc := range s.Incomes {
		if inc.ID == id {
			return inc, true
		}
	}
	return IncomeSource{}, false
}
