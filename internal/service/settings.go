package service

import (
	"context"
	"strings"

	"academy-ledger/internal/config"
	"academy-ledger/internal/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type SettingsService struct {
	settings SettingsStore
	defaults domain.Settings
	now      clock
	logger   zerolog.Logger
}

func NewSettingsService(settings SettingsStore, cfg *config.Config, logger zerolog.Logger) *SettingsService {
	return &SettingsService{
		settings: settings,
		defaults: defaultSettings(cfg),
		now:      newClock(cfg),
		logger:   logger,
	}
}

// UpdateSettingsInput changes only the fields that are set.
type UpdateSettingsInput struct {
	MonthlyFeeUSD     *decimal.Decimal `json:"monthlyFeeUsd" validate:"omitempty,gte=0"`
	DefaultCurrency   *domain.Currency `json:"defaultCurrency" validate:"omitempty,enum"`
	LocalCurrencyCode *string          `json:"localCurrencyCode" validate:"omitempty,len=3,alpha"`
}

// Get returns the stored settings, creating the row from defaults the first
// time it is read.
func (s *SettingsService) Get(ctx context.Context) (*domain.Settings, error) {
	defaults := s.defaults
	defaults.UpdatedAt = s.now().UTC()
	return s.settings.Ensure(ctx, defaults)
}

func (s *SettingsService) Update(ctx context.Context, in UpdateSettingsInput) (*domain.Settings, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	next := *current
	if in.MonthlyFeeUSD != nil {
		next.MonthlyFeeUSD = *in.MonthlyFeeUSD
	}
	if in.DefaultCurrency != nil {
		next.DefaultCurrency = *in.DefaultCurrency
	}
	if in.LocalCurrencyCode != nil {
		next.LocalCurrencyCode = strings.ToUpper(*in.LocalCurrencyCode)
	}
	next.UpdatedAt = s.now().UTC()

	saved, err := s.settings.Save(ctx, next)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("monthly_fee_usd", saved.MonthlyFeeUSD.String()).
		Str("default_currency", string(saved.DefaultCurrency)).
		Str("local_currency", saved.LocalCurrencyCode).
		Msg("settings updated")
	return saved, nil
}
