package db

import (
	"context"

	"academy-ledger/internal/domain"
)

const getSettings = `SELECT monthly_fee_usd, default_currency, local_currency_code, updated_at
FROM settings
WHERE id = 'default'`

func (q *Queries) GetSettings(ctx context.Context) (domain.Settings, error) {
	var s domain.Settings
	err := q.db.QueryRowContext(ctx, getSettings).Scan(&s.MonthlyFeeUSD, &s.DefaultCurrency, &s.LocalCurrencyCode, &s.UpdatedAt)
	return s, err
}

const upsertSettings = `INSERT INTO settings (id, monthly_fee_usd, default_currency, local_currency_code, updated_at)
VALUES ('default', ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	monthly_fee_usd = excluded.monthly_fee_usd,
	default_currency = excluded.default_currency,
	local_currency_code = excluded.local_currency_code,
	updated_at = excluded.updated_at`

func (q *Queries) UpsertSettings(ctx context.Context, s domain.Settings) error {
	_, err := q.db.ExecContext(ctx, upsertSettings, s.MonthlyFeeUSD, s.DefaultCurrency, s.LocalCurrencyCode, s.UpdatedAt)
	return err
}

const insertDefaultSettings = `INSERT INTO settings (id, monthly_fee_usd, default_currency, local_currency_code, updated_at)
VALUES ('default', ?, ?, ?, ?)
ON CONFLICT (id) DO NOTHING`

// InsertDefaultSettings creates the row only if no admin has saved one yet.
func (q *Queries) InsertDefaultSettings(ctx context.Context, s domain.Settings) error {
	_, err := q.db.ExecContext(ctx, insertDefaultSettings, s.MonthlyFeeUSD, s.DefaultCurrency, s.LocalCurrencyCode, s.UpdatedAt)
	return err
}
