package db

import (
	"context"

	"academy-ledger/internal/domain"
)

const paymentColumns = `p.id, p.student_id, p.amount_usd, p.amount_original, p.currency, p.exchange_rate,
	p.rate_source, p.payment_date, p.payment_method, p.payment_type, p.reference_id,
	p.reference_number, p.recorded_by, p.notes, p.created_at, s.first_name || ' ' || s.last_name`

func scanPayment(row scanner) (domain.PaymentDetail, error) {
	var p domain.PaymentDetail
	err := row.Scan(
		&p.ID,
		&p.StudentID,
		&p.AmountUSD,
		&p.AmountOriginal,
		&p.Currency,
		&p.ExchangeRate,
		&p.RateSource,
		&p.PaymentDate,
		&p.PaymentMethod,
		&p.PaymentType,
		&p.ReferenceID,
		&p.ReferenceNumber,
		&p.RecordedBy,
		&p.Notes,
		&p.CreatedAt,
		&p.StudentName,
	)
	return p, err
}

const getPayment = `SELECT ` + paymentColumns + `
FROM payments p
JOIN students s ON s.id = p.student_id
WHERE p.id = ?`

func (q *Queries) GetPayment(ctx context.Context, id string) (domain.PaymentDetail, error) {
	return scanPayment(q.db.QueryRowContext(ctx, getPayment, id))
}

const listPayments = `SELECT ` + paymentColumns + `
FROM payments p
JOIN students s ON s.id = p.student_id
WHERE (?1 = '' OR p.student_id = ?1)
  AND (?2 IS NULL OR p.payment_date >= ?2)
  AND (?3 IS NULL OR p.payment_date <= ?3)
ORDER BY p.payment_date DESC, p.created_at DESC`

type ListPaymentsParams struct {
	StudentID string
	From      domain.Date
	To        domain.Date
}

func (q *Queries) ListPayments(ctx context.Context, arg ListPaymentsParams) ([]domain.PaymentDetail, error) {
	rows, err := q.db.QueryContext(ctx, listPayments, arg.StudentID, arg.From, arg.To)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPayment)
}

const createPayment = `INSERT INTO payments (
	id, student_id, amount_usd, amount_original, currency, exchange_rate, rate_source,
	payment_date, payment_method, payment_type, reference_id, reference_number,
	recorded_by, notes, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) CreatePayment(ctx context.Context, p domain.Payment) error {
	_, err := q.db.ExecContext(ctx, createPayment,
		p.ID,
		p.StudentID,
		p.AmountUSD,
		p.AmountOriginal,
		p.Currency,
		p.ExchangeRate,
		p.RateSource,
		p.PaymentDate,
		p.PaymentMethod,
		p.PaymentType,
		p.ReferenceID,
		p.ReferenceNumber,
		p.RecordedBy,
		p.Notes,
		p.CreatedAt,
	)
	return err
}

const leagueExists = `SELECT EXISTS (SELECT 1 FROM leagues WHERE id = ?)`

func (q *Queries) LeagueExists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := q.db.QueryRowContext(ctx, leagueExists, id).Scan(&ok)
	return ok, err
}

const gameExists = `SELECT EXISTS (SELECT 1 FROM games WHERE id = ?)`

func (q *Queries) GameExists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := q.db.QueryRowContext(ctx, gameExists, id).Scan(&ok)
	return ok, err
}
