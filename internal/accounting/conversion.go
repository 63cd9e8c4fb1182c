// Package accounting holds the rules that turn raw academy records into
// balances and summaries. Everything here is a pure function of its inputs:
// callers fetch fresh records and pass the current time explicitly.
package accounting

import (
	"academy-ledger/internal/domain"

	"github.com/shopspring/decimal"
)

// Conversion is the normalized form persisted with every monetary record.
type Conversion struct {
	AmountUSD    decimal.Decimal
	ExchangeRate decimal.Decimal
}

// ToUSD converts an amount expressed in currency into USD. exchangeRate is
// LOCAL units per USD and is ignored for USD amounts. No rounding is applied.
func ToUSD(amountOriginal decimal.Decimal, currency domain.Currency, exchangeRate decimal.Decimal) (decimal.Decimal, error) {
	switch currency {
	case domain.CurrencyUSD:
		return amountOriginal, nil
	case domain.CurrencyLocal:
		if exchangeRate.Sign() <= 0 {
			return decimal.Zero, &domain.InvalidRateError{Rate: exchangeRate.String()}
		}
		return amountOriginal.Div(exchangeRate), nil
	}
	return decimal.Zero, domain.NewValidationError("currency", "must be one of USD, LOCAL")
}

// Convert applies ToUSD and normalizes the rate that gets stored alongside
// the amount: always 1 for USD.
func Convert(amountOriginal decimal.Decimal, currency domain.Currency, exchangeRate decimal.Decimal) (Conversion, error) {
	usd, err := ToUSD(amountOriginal, currency, exchangeRate)
	if err != nil {
		return Conversion{}, err
	}
	if currency == domain.CurrencyUSD {
		exchangeRate = decimal.NewFromInt(1)
	}
	return Conversion{AmountUSD: usd, ExchangeRate: exchangeRate}, nil
}
