package service

import (
	"context"

	"academy-ledger/internal/config"
	"academy-ledger/internal/constants"
	"academy-ledger/internal/domain"

	"github.com/rs/zerolog"
)

// RateService suggests the current exchange rate for the local currency.
// The secretary can always override it when recording a payment.
type RateService struct {
	fetcher  RateFetcher
	settings SettingsStore
	defaults domain.Settings
	logger   zerolog.Logger
}

func NewRateService(fetcher RateFetcher, settings SettingsStore, cfg *config.Config, logger zerolog.Logger) *RateService {
	return &RateService{
		fetcher:  fetcher,
		settings: settings,
		defaults: defaultSettings(cfg),
		logger:   logger,
	}
}

func (s *RateService) Current(ctx context.Context) (*domain.ExchangeRate, error) {
	settings, err := currentSettings(ctx, s.settings, s.defaults)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	rate, err := s.fetcher.LatestRate(ctx, settings.LocalCurrencyCode)
	if err != nil {
		s.logger.Warn().Err(err).Str("currency", settings.LocalCurrencyCode).Msg("exchange rate lookup failed")
		return nil, err
	}
	return rate, nil
}
