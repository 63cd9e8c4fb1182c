package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"academy-ledger/internal/db"
	"academy-ledger/internal/domain"

	"github.com/rs/zerolog"
)

type SettingsRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewSettingsRepository(queries *db.Queries, logger zerolog.Logger) *SettingsRepository {
	return &SettingsRepository{queries: queries, logger: logger}
}

// Find returns nil when no settings row has been created yet.
func (r *SettingsRepository) Find(ctx context.Context) (*domain.Settings, error) {
	settings, err := r.queries.GetSettings(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &settings, nil
}

// Ensure creates the row from defaults when it is missing and returns
// whatever is stored afterwards.
func (r *SettingsRepository) Ensure(ctx context.Context, defaults domain.Settings) (*domain.Settings, error) {
	if err := r.queries.InsertDefaultSettings(ctx, defaults); err != nil {
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}
	settings, err := r.queries.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &settings, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings domain.Settings) (*domain.Settings, error) {
	if err := r.queries.UpsertSettings(ctx, settings); err != nil {
		if isCheckViolation(err) {
			return nil, domain.NewValidationError("defaultCurrency", "must be one of USD, LOCAL")
		}
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	saved, err := r.queries.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	r.logger.Debug().Str("monthly_fee_usd", saved.MonthlyFeeUSD.String()).Msg("settings saved")
	return &saved, nil
}
