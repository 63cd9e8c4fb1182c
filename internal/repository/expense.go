package repository

import (
	"context"
	"database/sql"
	"fmt"

	"academy-ledger/internal/db"
	"academy-ledger/internal/domain"

	"github.com/rs/zerolog"
)

type ExpenseRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewExpenseRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *ExpenseRepository {
	return &ExpenseRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *ExpenseRepository) Categories(ctx context.Context) ([]domain.ExpenseCategory, error) {
	categories, err := r.queries.ListExpenseCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense categories: %w", err)
	}
	return categories, nil
}

func (r *ExpenseRepository) List(ctx context.Context, filter domain.ExpenseFilter) ([]domain.ExpenseDetail, error) {
	expenses, err := r.queries.ListExpenses(ctx, db.ListExpensesParams{
		CategoryID: filter.CategoryID,
		From:       filter.Range.From,
		To:         filter.Range.To,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

func (r *ExpenseRepository) ListPlain(ctx context.Context, filter domain.ExpenseFilter) ([]domain.Expense, error) {
	details, err := r.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	expenses := make([]domain.Expense, len(details))
	for i, d := range details {
		expenses[i] = d.Expense
	}
	return expenses, nil
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) (*domain.ExpenseDetail, error) {
	if err := ensureID(&expense.ID); err != nil {
		return nil, err
	}

	if err := r.queries.CreateExpense(ctx, *expense); err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.NewNotFound("expense category", expense.CategoryID)
		}
		r.logger.Error().Err(err).Msg("failed to create expense")
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	detail, err := r.queries.GetExpense(ctx, expense.ID)
	if err != nil {
		return nil, notFound(err, "expense", expense.ID)
	}
	return &detail, nil
}

func (r *ExpenseRepository) ListInstructorPayments(ctx context.Context, filter domain.InstructorPaymentFilter) ([]domain.InstructorPaymentDetail, error) {
	payments, err := r.queries.ListInstructorPayments(ctx, db.ListInstructorPaymentsParams{
		InstructorID: filter.InstructorID,
		From:         filter.Range.From,
		To:           filter.Range.To,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list instructor payments: %w", err)
	}
	return payments, nil
}

func (r *ExpenseRepository) ListInstructorPaymentsPlain(ctx context.Context, filter domain.InstructorPaymentFilter) ([]domain.InstructorPayment, error) {
	details, err := r.ListInstructorPayments(ctx, filter)
	if err != nil {
		return nil, err
	}
	payments := make([]domain.InstructorPayment, len(details))
	for i, d := range details {
		payments[i] = d.InstructorPayment
	}
	return payments, nil
}

func (r *ExpenseRepository) CreateInstructorPayment(ctx context.Context, payment *domain.InstructorPayment) (*domain.InstructorPaymentDetail, error) {
	if err := ensureID(&payment.ID); err != nil {
		return nil, err
	}

	if err := r.queries.CreateInstructorPayment(ctx, *payment); err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.NewNotFound("instructor", payment.InstructorID)
		}
		r.logger.Error().Err(err).Str("instructor_id", payment.InstructorID).Msg("failed to create instructor payment")
		return nil, fmt.Errorf("failed to create instructor payment: %w", err)
	}

	detail, err := r.queries.GetInstructorPayment(ctx, payment.ID)
	if err != nil {
		return nil, notFound(err, "instructor payment", payment.ID)
	}
	return &detail, nil
}
