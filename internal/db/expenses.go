package db

import (
	"context"

	"academy-ledger/internal/domain"
)

const listExpenseCategories = `SELECT id, name FROM expense_categories ORDER BY name`

func (q *Queries) ListExpenseCategories(ctx context.Context) ([]domain.ExpenseCategory, error) {
	rows, err := q.db.QueryContext(ctx, listExpenseCategories)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row scanner) (domain.ExpenseCategory, error) {
		var c domain.ExpenseCategory
		err := row.Scan(&c.ID, &c.Name)
		return c, err
	})
}

const expenseColumns = `e.id, e.category_id, e.description, e.amount_usd, e.amount_original, e.currency,
	e.exchange_rate, e.date, e.payee, e.recorded_by, e.notes, e.created_at, c.name`

func scanExpense(row scanner) (domain.ExpenseDetail, error) {
	var e domain.ExpenseDetail
	err := row.Scan(
		&e.ID,
		&e.CategoryID,
		&e.Description,
		&e.AmountUSD,
		&e.AmountOriginal,
		&e.Currency,
		&e.ExchangeRate,
		&e.Date,
		&e.Payee,
		&e.RecordedBy,
		&e.Notes,
		&e.CreatedAt,
		&e.CategoryName,
	)
	return e, err
}

const getExpense = `SELECT ` + expenseColumns + `
FROM expenses e
JOIN expense_categories c ON c.id = e.category_id
WHERE e.id = ?`

func (q *Queries) GetExpense(ctx context.Context, id string) (domain.ExpenseDetail, error) {
	return scanExpense(q.db.QueryRowContext(ctx, getExpense, id))
}

const listExpenses = `SELECT ` + expenseColumns + `
FROM expenses e
JOIN expense_categories c ON c.id = e.category_id
WHERE (?1 = '' OR e.category_id = ?1)
  AND (?2 IS NULL OR e.date >= ?2)
  AND (?3 IS NULL OR e.date <= ?3)
ORDER BY e.date DESC, e.created_at DESC`

type ListExpensesParams struct {
	CategoryID string
	From       domain.Date
	To         domain.Date
}

func (q *Queries) ListExpenses(ctx context.Context, arg ListExpensesParams) ([]domain.ExpenseDetail, error) {
	rows, err := q.db.QueryContext(ctx, listExpenses, arg.CategoryID, arg.From, arg.To)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanExpense)
}

const createExpense = `INSERT INTO expenses (
	id, category_id, description, amount_usd, amount_original, currency, exchange_rate,
	date, payee, recorded_by, notes, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateExpense(ctx context.Context, e domain.Expense) error {
	_, err := q.db.ExecContext(ctx, createExpense,
		e.ID,
		e.CategoryID,
		e.Description,
		e.AmountUSD,
		e.AmountOriginal,
		e.Currency,
		e.ExchangeRate,
		e.Date,
		e.Payee,
		e.RecordedBy,
		e.Notes,
		e.CreatedAt,
	)
	return err
}

const instructorPaymentColumns = `p.id, p.instructor_id, p.amount_usd, p.amount_original, p.currency, p.exchange_rate,
	p.period_start, p.period_end, p.payment_date, p.recorded_by, p.notes, p.created_at, u.name`

func scanInstructorPayment(row scanner) (domain.InstructorPaymentDetail, error) {
	var p domain.InstructorPaymentDetail
	err := row.Scan(
		&p.ID,
		&p.InstructorID,
		&p.AmountUSD,
		&p.AmountOriginal,
		&p.Currency,
		&p.ExchangeRate,
		&p.PeriodStart,
		&p.PeriodEnd,
		&p.PaymentDate,
		&p.RecordedBy,
		&p.Notes,
		&p.CreatedAt,
		&p.InstructorName,
	)
	return p, err
}

const getInstructorPayment = `SELECT ` + instructorPaymentColumns + `
FROM instructor_payments p
JOIN users u ON u.id = p.instructor_id
WHERE p.id = ?`

func (q *Queries) GetInstructorPayment(ctx context.Context, id string) (domain.InstructorPaymentDetail, error) {
	return scanInstructorPayment(q.db.QueryRowContext(ctx, getInstructorPayment, id))
}

const listInstructorPayments = `SELECT ` + instructorPaymentColumns + `
FROM instructor_payments p
JOIN users u ON u.id = p.instructor_id
WHERE (?1 = '' OR p.instructor_id = ?1)
  AND (?2 IS NULL OR p.payment_date >= ?2)
  AND (?3 IS NULL OR p.payment_date <= ?3)
ORDER BY p.payment_date DESC, p.created_at DESC`

type ListInstructorPaymentsParams struct {
	InstructorID string
	From         domain.Date
	To           domain.Date
}

func (q *Queries) ListInstructorPayments(ctx context.Context, arg ListInstructorPaymentsParams) ([]domain.InstructorPaymentDetail, error) {
	rows, err := q.db.QueryContext(ctx, listInstructorPayments, arg.InstructorID, arg.From, arg.To)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanInstructorPayment)
}

const createInstructorPayment = `INSERT INTO instructor_payments (
	id, instructor_id, amount_usd, amount_original, currency, exchange_rate,
	period_start, period_end, payment_date, recorded_by, notes, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateInstructorPayment(ctx context.Context, p domain.InstructorPayment) error {
	_, err := q.db.ExecContext(ctx, createInstructorPayment,
		p.ID,
		p.InstructorID,
		p.AmountUSD,
		p.AmountOriginal,
		p.Currency,
		p.ExchangeRate,
		p.PeriodStart,
		p.PeriodEnd,
		p.PaymentDate,
		p.RecordedBy,
		p.Notes,
		p.CreatedAt,
	)
	return err
}
