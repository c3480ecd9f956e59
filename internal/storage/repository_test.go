package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"fintrack/internal/core"
)

func newRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSnapshotLoadsEveryCollection(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	if _, err := repo.CreateAccount(ctx, core.Account{Name: "Checking", Type: core.AccountChecking, Balance: 1200}); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	inc, err := repo.CreateIncome(ctx, core.IncomeSource{Name: "Salary", Amount: 3000, Frequency: core.Monthly})
	if err != nil {
		t.Fatalf("CreateIncome: %v", err)
	}
	if _, err := repo.AddPayment(ctx, inc.ID, core.ActualPayment{Date: core.NewDate(2025, 9, 1), Amount: 3000}); err != nil {
		t.Fatalf("AddPayment: %v", err)
	}
	if _, err := repo.CreateExpense(ctx, core.FixedExpense{Name: "Rent", Amount: 900, DueDay: 1, Category: "housing"}); err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if _, err := repo.CreateTransaction(ctx, core.Transaction{Date: core.NewDate(2025, 9, 10), Amount: 40, Category: "groceries"}); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	ra, err := repo.CreateRetirement(ctx, core.RetirementAccount{Name: "401k", Balance: 5000})
	if err != nil {
		t.Fatalf("CreateRetirement: %v", err)
	}
	if _, err := repo.AddContribution(ctx, ra.ID, core.Contribution{Date: core.NewDate(2025, 9, 5), Amount: 250, Type: core.ContributionEmployee}); err != nil {
		t.Fatalf("AddContribution: %v", err)
	}

	snap, err := repo.Snapshot(ctx, core.NewDate(2025, 9, 15))
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Accounts) != 1 || len(snap.Incomes) != 1 || len(snap.Expenses) != 1 ||
		len(snap.Transactions) != 1 || len(snap.Retirement) != 1 {
		t.Fatalf("collection sizes: accounts=%d incomes=%d expenses=%d transactions=%d retirement=%d",
			len(snap.Accounts), len(snap.Incomes), len(snap.Expenses),
			len(snap.Transactions), len(snap.Retirement))
	}
	if len(snap.Incomes[0].Payments) != 1 {
		t.Errorf("payments = %d, want 1", len(snap.Incomes[0].Payments))
	}
	if len(snap.Retirement[0].Contributions) != 1 {
		t.Errorf("contributions = %d, want 1", len(snap.Retirement[0].Contributions))
	}
	if snap.Retirement[0].Balance != 5250 {
		t.Errorf("retirement balance = %v, want 5250", snap.Retirement[0].Balance)
	}
}

func TestSnapshotUnderConcurrentWrites(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	if _, err := repo.CreateAccount(ctx, core.Account{Name: "Checking", Type: core.AccountChecking, Balance: 500}); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	const writes = 25
	var wg sync.WaitGroup
	wg.Add(2)
	errs := make(chan error, writes*2)

	go func() {
		defer wg.Done()
		for i := 0; i < writes; i++ {
			_, err := repo.CreateTransaction(ctx, core.Transaction{
				Date:     core.NewDate(2025, 9, 10),
				Amount:   float64(i + 1),
				Category: fmt.Sprintf("cat-%d", i),
			})
			if err != nil {
				errs <- fmt.Errorf("write %d: %w", i, err)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < writes; i++ {
			if _, err := repo.Snapshot(ctx, core.NewDate(2025, 9, 15)); err != nil {
				errs <- fmt.Errorf("snapshot %d: %w", i, err)
			}
		}
	}()
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}

	snap, err := repo.Snapshot(ctx, core.NewDate(2025, 9, 15))
	if err != nil {
		t.Fatalf("final snapshot: %v", err)
	}
	if len(snap.Transactions) != writes {
		t.Errorf("transactions = %d, want %d", len(snap.Transactions), writes)
	}
}
