// Package storage persists every record collection in SQLite and hands the
// rest of the system immutable snapshots to compute against.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"fintrack/internal/core"
)

type SQLiteRepository struct {
	db *sql.DB
}

// querier is the read surface shared by *sql.DB and *sql.Tx, so the same
// list code serves single reads and the snapshot transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// Pragmas go on the DSN so every pooled connection gets them. WAL lets
	// snapshot reads run alongside a writer; the busy timeout covers
	// writer-writer contention.
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Ping verifies the database connection, used by readiness checks.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// dateString serializes an optional date; the zero date stores as "".
func dateString(d core.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(time.DateOnly)
}

// readDate is the inverse of dateString. Unparseable values degrade to the
// zero date rather than failing the whole read.
func readDate(s string) core.Date {
	if s == "" {
		return core.Date{}
	}
	d, err := core.ParseDate(s)
	if err != nil {
		return core.Date{}
	}
	return d
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func notFound(err error, what, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", what, id, core.ErrNotFound)
	}
	return err
}

// ---- accounts ----

func (r *SQLiteRepository) CreateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	a.ID = newID(a.ID)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (id, name, type, balance) VALUES (?, ?, ?, ?)`,
		a.ID, a.Name, string(a.Type), a.Balance)
	if err != nil {
		return core.Account{}, fmt.Errorf("create account: %w", err)
	}
	slog.InfoContext(ctx, "Account created", "id", a.ID, "name", a.Name, "type", a.Type)
	return a, nil
}

func (r *SQLiteRepository) GetAccount(ctx context.Context, id string) (core.Account, error) {
	var a core.Account
	var typ string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, type, balance FROM accounts WHERE id = ?`, id).
		Scan(&a.ID, &a.Name, &typ, &a.Balance)
	if err != nil {
		return core.Account{}, notFound(err, "account", id)
	}
	a.Type = core.AccountType(typ)
	return a, nil
}

func (r *SQLiteRepository) ListAccounts(ctx context.Context) ([]core.Account, error) {
	return listAccounts(ctx, r.db)
}

func listAccounts(ctx context.Context, q querier) ([]core.Account, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, name, type, balance FROM accounts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []core.Account
	for rows.Next() {
		var a core.Account
		var typ string
		if err := rows.Scan(&a.ID, &a.Name, &typ, &a.Balance); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		a.Type = core.AccountType(typ)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateAccount(ctx context.Context, a core.Account) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET name = ?, type = ?, balance = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		a.Name, string(a.Type), a.Balance, a.ID)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return requireRow(res, "account", a.ID)
}

func (r *SQLiteRepository) DeleteAccount(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return requireRow(res, "account", id)
}

// ---- income sources ----

func (r *SQLiteRepository) CreateIncome(ctx context.Context, inc core.IncomeSource) (core.IncomeSource, error) {
	inc.ID = newID(inc.ID)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO income_sources
		 (id, name, earner, amount, frequency, next_pay_date, is_variable, average_monthly, income_variance, payment_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inc.ID, inc.Name, inc.Earner, inc.Amount, string(inc.Frequency),
		dateString(inc.NextPayDate), inc.IsVariable,
		inc.AverageMonthly, inc.IncomeVariance, inc.PaymentCount)
	if err != nil {
		return core.IncomeSource{}, fmt.Errorf("create income source: %w", err)
	}
	slog.InfoContext(ctx, "Income source created", "id", inc.ID, "name", inc.Name, "frequency", inc.Frequency)
	return inc, nil
}

func (r *SQLiteRepository) GetIncome(ctx context.Context, id string) (core.IncomeSource, error) {
	var inc core.IncomeSource
	var freq, nextPay string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, earner, amount, frequency, next_pay_date, is_variable,
		        average_monthly, income_variance, payment_count
		 FROM income_sources WHERE id = ?`, id).
		Scan(&inc.ID, &inc.Name, &inc.Earner, &inc.Amount, &freq, &nextPay,
			&inc.IsVariable, &inc.AverageMonthly, &inc.IncomeVariance, &inc.PaymentCount)
	if err != nil {
		return core.IncomeSource{}, notFound(err, "income source", id)
	}
	inc.Frequency = core.Frequency(freq)
	inc.NextPayDate = readDate(nextPay)

	payments, err := listPayments(ctx, r.db, id)
	if err != nil {
		return core.IncomeSource{}, err
	}
	inc.Payments = payments
	return inc, nil
}

func (r *SQLiteRepository) ListIncomes(ctx context.Context) ([]core.IncomeSource, error) {
	return listIncomes(ctx, r.db)
}

func listIncomes(ctx context.Context, q querier) ([]core.IncomeSource, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, name, earner, amount, frequency, next_pay_date, is_variable,
		        average_monthly, income_variance, payment_count
		 FROM income_sources ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list income sources: %w", err)
	}
	defer rows.Close()

	var out []core.IncomeSource
	for rows.Next() {
		var inc core.IncomeSource
		var freq, nextPay string
		if err := rows.Scan(&inc.ID, &inc.Name, &inc.Earner, &inc.Amount, &freq, &nextPay,
			&inc.IsVariable, &inc.AverageMonthly, &inc.IncomeVariance, &inc.PaymentCount); err != nil {
			return nil, fmt.Errorf("scan income source: %w", err)
		}
		inc.Frequency = core.Frequency(freq)
		inc.NextPayDate = readDate(nextPay)
		out = append(out, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		payments, err := listPayments(ctx, q, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Payments = payments
	}
	return out, nil
}

func (r *SQLiteRepository) UpdateIncome(ctx context.Context, inc core.IncomeSource) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE income_sources
		 SET name = ?, earner = ?, amount = ?, frequency = ?, next_pay_date = ?, is_variable = ?,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		inc.Name, inc.Earner, inc.Amount, string(inc.Frequency),
		dateString(inc.NextPayDate), inc.IsVariable, inc.ID)
	if err != nil {
		return fmt.Errorf("update income source: %w", err)
	}
	return requireRow(res, "income source", inc.ID)
}

// UpdateIncomeStats writes the derived fields after a payment mutation. Only
// the recompute path may call it.
func (r *SQLiteRepository) UpdateIncomeStats(ctx context.Context, id string, avg, variance float64, count int, isVariable bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE income_sources
		 SET average_monthly = ?, income_variance = ?, payment_count = ?, is_variable = ?,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		avg, variance, count, isVariable, id)
	if err != nil {
		return fmt.Errorf("update income stats: %w", err)
	}
	return requireRow(res, "income source", id)
}

func (r *SQLiteRepository) DeleteIncome(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM income_sources WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete income source: %w", err)
	}
	return requireRow(res, "income source", id)
}

func (r *SQLiteRepository) AddPayment(ctx context.Context, incomeID string, p core.ActualPayment) (core.ActualPayment, error) {
	p.ID = newID(p.ID)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO income_payments (id, income_id, paid_on, amount, note) VALUES (?, ?, ?, ?, ?)`,
		p.ID, incomeID, dateString(p.Date), p.Amount, p.Note)
	if err != nil {
		return core.ActualPayment{}, fmt.Errorf("add payment: %w", err)
	}
	slog.InfoContext(ctx, "Payment recorded", "income_id", incomeID, "payment_id", p.ID, "amount", p.Amount)
	return p, nil
}

func (r *SQLiteRepository) DeletePayment(ctx context.Context, incomeID, paymentID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM income_payments WHERE id = ? AND income_id = ?`, paymentID, incomeID)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return requireRow(res, "payment", paymentID)
}

func listPayments(ctx context.Context, q querier, incomeID string) ([]core.ActualPayment, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, paid_on, amount, note FROM income_payments WHERE income_id = ? ORDER BY paid_on, id`,
		incomeID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []core.ActualPayment
	for rows.Next() {
		var p core.ActualPayment
		var paidOn string
		if err := rows.Scan(&p.ID, &paidOn, &p.Amount, &p.Note); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.Date = readDate(paidOn)
		out = append(out, p)
	}
	return out, rows.Err()
}

// ---- fixed expenses ----

func (r *SQLiteRepository) CreateExpense(ctx context.Context, fe core.FixedExpense) (core.FixedExpense, error) {
	fe.ID = newID(fe.ID)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO fixed_expenses (id, name, amount, due_day, category, auto_pay, paid_month)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		fe.ID, fe.Name, fe.Amount, fe.DueDay, fe.Category, fe.AutoPay, fe.PaidMonth)
	if err != nil {
		return core.FixedExpense{}, fmt.Errorf("create fixed expense: %w", err)
	}
	slog.InfoContext(ctx, "Fixed expense created", "id", fe.ID, "name", fe.Name, "due_day", fe.DueDay)
	return fe, nil
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, id string) (core.FixedExpense, error) {
	var fe core.FixedExpense
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, amount, due_day, category, auto_pay, paid_month FROM fixed_expenses WHERE id = ?`, id).
		Scan(&fe.ID, &fe.Name, &fe.Amount, &fe.DueDay, &fe.Category, &fe.AutoPay, &fe.PaidMonth)
	if err != nil {
		return core.FixedExpense{}, notFound(err, "fixed expense", id)
	}
	return fe, nil
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.FixedExpense, error) {
	return listExpenses(ctx, r.db)
}

func listExpenses(ctx context.Context, q querier) ([]core.FixedExpense, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, name, amount, due_day, category, auto_pay, paid_month
		 FROM fixed_expenses ORDER BY due_day, name`)
	if err != nil {
		return nil, fmt.Errorf("list fixed expenses: %w", err)
	}
	defer rows.Close()

	var out []core.FixedExpense
	for rows.Next() {
		var fe core.FixedExpense
		if err := rows.Scan(&fe.ID, &fe.Name, &fe.Amount, &fe.DueDay, &fe.Category, &fe.AutoPay, &fe.PaidMonth); err != nil {
			return nil, fmt.Errorf("scan fixed expense: %w", err)
		}
		out = append(out, fe)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateExpense(ctx context.Context, fe core.FixedExpense) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE fixed_expenses
		 SET name = ?, amount = ?, due_day = ?, category = ?, auto_pay = ?, paid_month = ?,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		fe.Name, fe.Amount, fe.DueDay, fe.Category, fe.AutoPay, fe.PaidMonth, fe.ID)
	if err != nil {
		return fmt.Errorf("update fixed expense: %w", err)
	}
	return requireRow(res, "fixed expense", fe.ID)
}

// SetExpensePaid marks a bill paid (or unpaid, with an empty month) for the
// given "YYYY-MM" month.
func (r *SQLiteRepository) SetExpensePaid(ctx context.Context, id, paidMonth string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE fixed_expenses SET paid_month = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		paidMonth, id)
	if err != nil {
		return fmt.Errorf("set expense paid: %w", err)
	}
	return requireRow(res, "fixed expense", id)
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM fixed_expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete fixed expense: %w", err)
	}
	return requireRow(res, "fixed expense", id)
}

// ---- transactions ----

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	tx.ID = newID(tx.ID)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, tx_date, amount, category, description) VALUES (?, ?, ?, ?, ?)`,
		tx.ID, dateString(tx.Date), tx.Amount, tx.Category, tx.Description)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return tx, nil
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return listTransactions(ctx, r.db)
}

func listTransactions(ctx context.Context, q querier) ([]core.Transaction, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, tx_date, amount, category, description FROM transactions ORDER BY tx_date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var tx core.Transaction
		var txDate string
		if err := rows.Scan(&tx.ID, &txDate, &tx.Amount, &tx.Category, &tx.Description); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Date = readDate(txDate)
		out = append(out, tx)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireRow(res, "transaction", id)
}

// ---- retirement accounts ----

func (r *SQLiteRepository) CreateRetirement(ctx context.Context, ra core.RetirementAccount) (core.RetirementAccount, error) {
	ra.ID = newID(ra.ID)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO retirement_accounts (id, name, balance, annual_limit, contribution_amount, income_source_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ra.ID, ra.Name, ra.Balance, ra.AnnualLimit, ra.ContributionAmount, ra.IncomeSourceID)
	if err != nil {
		return core.RetirementAccount{}, fmt.Errorf("create retirement account: %w", err)
	}
	slog.InfoContext(ctx, "Retirement account created", "id", ra.ID, "name", ra.Name)
	return ra, nil
}

func (r *SQLiteRepository) GetRetirement(ctx context.Context, id string) (core.RetirementAccount, error) {
	var ra core.RetirementAccount
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, balance, annual_limit, contribution_amount, income_source_id
		 FROM retirement_accounts WHERE id = ?`, id).
		Scan(&ra.ID, &ra.Name, &ra.Balance, &ra.AnnualLimit, &ra.ContributionAmount, &ra.IncomeSourceID)
	if err != nil {
		return core.RetirementAccount{}, notFound(err, "retirement account", id)
	}
	contribs, err := listContributions(ctx, r.db, id)
	if err != nil {
		return core.RetirementAccount{}, err
	}
	ra.Contributions = contribs
	return ra, nil
}

func (r *SQLiteRepository) ListRetirement(ctx context.Context) ([]core.RetirementAccount, error) {
	return listRetirement(ctx, r.db)
}

func listRetirement(ctx context.Context, q querier) ([]core.RetirementAccount, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, name, balance, annual_limit, contribution_amount, income_source_id
		 FROM retirement_accounts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list retirement accounts: %w", err)
	}
	defer rows.Close()

	var out []core.RetirementAccount
	for rows.Next() {
		var ra core.RetirementAccount
		if err := rows.Scan(&ra.ID, &ra.Name, &ra.Balance, &ra.AnnualLimit, &ra.ContributionAmount, &ra.IncomeSourceID); err != nil {
			return nil, fmt.Errorf("scan retirement account: %w", err)
		}
		out = append(out, ra)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		contribs, err := listContributions(ctx, q, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Contributions = contribs
	}
	return out, nil
}

func (r *SQLiteRepository) UpdateRetirement(ctx context.Context, ra core.RetirementAccount) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE retirement_accounts
		 SET name = ?, balance = ?, annual_limit = ?, contribution_amount = ?, income_source_id = ?,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		ra.Name, ra.Balance, ra.AnnualLimit, ra.ContributionAmount, ra.IncomeSourceID, ra.ID)
	if err != nil {
		return fmt.Errorf("update retirement account: %w", err)
	}
	return requireRow(res, "retirement account", ra.ID)
}

func (r *SQLiteRepository) DeleteRetirement(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM retirement_accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete retirement account: %w", err)
	}
	return requireRow(res, "retirement account", id)
}

// AddContribution records a contribution and rolls it into the account
// balance in one transaction.
func (r *SQLiteRepository) AddContribution(ctx context.Context, retirementID string, c core.Contribution) (core.Contribution, error) {
	c.ID = newID(c.ID)
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Contribution{}, fmt.Errorf("begin contribution tx: %w", err)
	}
	defer dbTx.Rollback()

	_, err = dbTx.ExecContext(ctx,
		`INSERT INTO retirement_contributions (id, retirement_id, contributed_on, amount, type)
		 VALUES (?, ?, ?, ?, ?)`,
		c.ID, retirementID, dateString(c.Date), c.Amount, string(c.Type))
	if err != nil {
		return core.Contribution{}, fmt.Errorf("add contribution: %w", err)
	}

	res, err := dbTx.ExecContext(ctx,
		`UPDATE retirement_accounts SET balance = balance + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		c.Amount, retirementID)
	if err != nil {
		return core.Contribution{}, fmt.Errorf("apply contribution to balance: %w", err)
	}
	if err := requireRow(res, "retirement account", retirementID); err != nil {
		return core.Contribution{}, err
	}

	if err := dbTx.Commit(); err != nil {
		return core.Contribution{}, fmt.Errorf("commit contribution: %w", err)
	}
	return c, nil
}

func listContributions(ctx context.Context, q querier, retirementID string) ([]core.Contribution, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, contributed_on, amount, type FROM retirement_contributions
		 WHERE retirement_id = ? ORDER BY contributed_on, id`, retirementID)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer rows.Close()

	var out []core.Contribution
	for rows.Next() {
		var c core.Contribution
		var contributedOn, typ string
		if err := rows.Scan(&c.ID, &contributedOn, &c.Amount, &typ); err != nil {
			return nil, fmt.Errorf("scan contribution: %w", err)
		}
		c.Date = readDate(contributedOn)
		c.Type = core.ContributionType(typ)
		out = append(out, c)
	}
	return out, rows.Err()
}

// ---- snapshot ----

// Snapshot loads every collection as of now. The reads run inside one
// transaction, so a concurrent writer can never tear the snapshot between
// collections, and analytics only ever read the returned copy.
func (r *SQLiteRepository) Snapshot(ctx context.Context, at core.Date) (core.Snapshot, error) {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer dbTx.Rollback()

	snap := core.Snapshot{TakenAt: at}

	accounts, err := listAccounts(ctx, dbTx)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("snapshot accounts: %w", err)
	}
	incomes, err := listIncomes(ctx, dbTx)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("snapshot income sources: %w", err)
	}
	expenses, err := listExpenses(ctx, dbTx)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("snapshot fixed expenses: %w", err)
	}
	transactions, err := listTransactions(ctx, dbTx)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("snapshot transactions: %w", err)
	}
	retirement, err := listRetirement(ctx, dbTx)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("snapshot retirement accounts: %w", err)
	}

	snap.Accounts = accounts
	snap.Incomes = incomes
	snap.Expenses = expenses
	snap.Transactions = transactions
	snap.Retirement = retirement
	return snap, nil
}

func requireRow(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, core.ErrNotFound)
	}
	return nil
}
