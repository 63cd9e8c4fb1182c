package repository

import (
	"context"
	"database/sql"
	"fmt"

	"academy-ledger/internal/db"
	"academy-ledger/internal/domain"

	"github.com/rs/zerolog"
)

type PaymentRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewPaymentRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *PaymentRepository {
	return &PaymentRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *PaymentRepository) Get(ctx context.Context, id string) (*domain.PaymentDetail, error) {
	payment, err := r.queries.GetPayment(ctx, id)
	if err != nil {
		return nil, notFound(err, "payment", id)
	}
	return &payment, nil
}

func (r *PaymentRepository) List(ctx context.Context, filter domain.PaymentFilter) ([]domain.PaymentDetail, error) {
	payments, err := r.queries.ListPayments(ctx, db.ListPaymentsParams{
		StudentID: filter.StudentID,
		From:      filter.Range.From,
		To:        filter.Range.To,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// ListPlain returns the payments without the joined student name, the
// shape the accounting core works on.
func (r *PaymentRepository) ListPlain(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	details, err := r.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	payments := make([]domain.Payment, len(details))
	for i, d := range details {
		payments[i] = d.Payment
	}
	return payments, nil
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) (*domain.PaymentDetail, error) {
	if err := ensureID(&payment.ID); err != nil {
		return nil, err
	}

	if err := r.queries.CreatePayment(ctx, *payment); err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.NewNotFound("student", payment.StudentID)
		}
		r.logger.Error().Err(err).Str("student_id", payment.StudentID).Msg("failed to create payment")
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	return r.Get(ctx, payment.ID)
}
