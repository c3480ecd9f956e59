package services

import (
	"context"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// RecordService owns the plain record collections: accounts, fixed expenses,
// transactions, and retirement accounts. Every mutation invalidates the
// analytics cache through onChange.
type RecordService struct {
	repo     *storage.SQLiteRepository
	onChange func()
	now      func() time.Time
}

func NewRecordService(repo *storage.SQLiteRepository, onChange func()) *RecordService {
	return &RecordService{
		repo:     repo,
		onChange: onChange,
		now:      time.Now,
	}
}

func (s *RecordService) notifyChange() {
	if s.onChange != nil {
		s.onChange()
	}
}

// ---- accounts ----

func (s *RecordService) CreateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}
	created, err := s.repo.CreateAccount(ctx, a)
	if err != nil {
		return core.Account{}, err
	}
	s.notifyChange()
	return created, nil
}

func (s *RecordService) GetAccount(ctx context.Context, id string) (core.Account, error) {
	return s.repo.GetAccount(ctx, id)
}

func (s *RecordService) ListAccounts(ctx context.Context) ([]core.Account, error) {
	return s.repo.ListAccounts(ctx)
}

func (s *RecordService) UpdateAccount(ctx context.Context, a core.Account) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdateAccount(ctx, a); err != nil {
		return err
	}
	s.notifyChange()
	return nil
}

func (s *RecordService) DeleteAccount(ctx context.Context, id string) error {
	if err := s.repo.DeleteAccount(ctx, id); err != nil {
		return err
	}
	s.notifyChange()
	return nil
}

// ---- fixed expenses ----

func (s *RecordService) CreateExpense(ctx context.Context, fe core.FixedExpense) (core.FixedExpense, error) {
	if err := fe.Validate(); err != nil {
		return core.FixedExpense{}, err
	}
	created, err := s.repo.CreateExpense(ctx, fe)
	if err != nil {
		return core.FixedExpense{}, err
	}
	s.notifyChange()
	return created, nil
}

func (s *RecordService) GetExpense(ctx context.Context, id string) (core.FixedExpense, error) {
	return s.repo.GetExpense(ctx, id)
}

func (s *RecordService) ListExpenses(ctx context.Context) ([]core.FixedExpense, error) {
	return s.repo.ListExpenses(ctx)
}

func (s *RecordService) UpdateExpense(ctx context.Context, fe core.FixedExpense) error {
	if err := fe.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdateExpense(ctx, fe); err != nil {
		return err
	}
	s.notifyChange()
	return nil
}

// MarkExpensePaid flags a bill paid or unpaid for the current month. The flag
// expires on its own at month rollover.
func (s *RecordService) MarkExpensePaid(ctx context.Context, id string, paid bool) error {
	paidMonth := ""
	if paid {
		t := s.now()
		paidMonth = core.MonthKeyOf(t.Year(), int(t.Month()))
	}
	if err := s.repo.SetExpensePaid(ctx, id, paidMonth); err != nil {
		return err
	}
	s.notifyChange()
	return nil
}

func (s *RecordService) DeleteExpense(ctx context.Context, id string) error {
	if err := s.repo.DeleteExpense(ctx, id); err != nil {
		return err
	}
	s.notifyChange()
	return nil
}

// ---- transactions ----

func (s *RecordService) CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if tx.Date.IsZero() {
		tx.Date = core.Today(s.now())
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	created, err := s.repo.CreateTransaction(ctx, tx)
	if err != nil {
		return core.Transaction{}, err
	}
	s.notifyChange()
	return created, nil
}

func (s *RecordService) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return s.repo.ListTransactions(ctx)
}

func (s *RecordService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.repo.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	s.notifyChange()
	return nil
}

// ---- retirement accounts ----

func (s *RecordService) CreateRetirement(ctx context.Context, ra core.RetirementAccount) (core.RetirementAccount, error) {
	if err := ra.Validate(); err != nil {
		return core.RetirementAccount{}, err
	}
	created, err := s.repo.CreateRetirement(ctx, ra)
	if err != nil {
		return core.RetirementAccount{}, err
	}
	s.notifyChange()
	return created, nil
}

func (s *RecordService) GetRetirement(ctx context.Context, id string) (core.RetirementAccount, error) {
	return s.repo.GetRetirement(ctx, id)
}

func (s *RecordService) ListRetirement(ctx context.Context) ([]core.RetirementAccount, error) {
	return s.repo.ListRetirement(ctx)
}

func (s *RecordService) UpdateRetirement(ctx context.Context, ra core.RetirementAccount) error {
	if err := ra.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdateRetirement(ctx, ra); err != nil {
		return err
	}
	s.notifyChange()
	return nil
}

func (s *RecordService) DeleteRetirement(ctx context.Context, id string) error {
	if err := s.repo.DeleteRetirement(ctx, id); err != nil {
		return err
	}
	s.notifyChange()
	return nil
}

// AddContribution records a retirement contribution, which also rolls the
// amount into the account balance.
func (s *RecordService) AddContribution(ctx context.Context, retirementID string, c core.Contribution) (core.Contribution, error) {
	if c.Date.IsZero() {
		c.Date = core.Today(s.now())
	}
	created, err := s.repo.AddContribution(ctx, retirementID, c)
	if err != nil {
		return core.Contribution{}, err
	}
	s.notifyChange()
	return created, nil
}
