package service

import (
	"context"

	"academy-ledger/internal/accounting"
	"academy-ledger/internal/config"
	"academy-ledger/internal/constants"
	"academy-ledger/internal/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type PaymentService struct {
	payments PaymentStore
	students StudentStore
	leagues  LeagueStore
	games    GameStore
	now      clock
	logger   zerolog.Logger
}

func NewPaymentService(payments PaymentStore, students StudentStore, leagues LeagueStore, games GameStore, cfg *config.Config, logger zerolog.Logger) *PaymentService {
	return &PaymentService{
		payments: payments,
		students: students,
		leagues:  leagues,
		games:    games,
		now:      newClock(cfg),
		logger:   logger,
	}
}

// CreatePaymentInput carries what the secretary enters. The USD amount is
// never accepted from the caller; it is derived from the original amount.
type CreatePaymentInput struct {
	StudentID       string               `json:"studentId" validate:"required"`
	AmountOriginal  decimal.Decimal      `json:"amountOriginal" validate:"gt=0"`
	Currency        domain.Currency      `json:"currency" validate:"required,enum"`
	ExchangeRate    decimal.Decimal      `json:"exchangeRate"`
	RateSource      string               `json:"rateSource" validate:"omitempty,oneof=manual api"`
	PaymentDate     domain.Date          `json:"paymentDate"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod" validate:"required,enum"`
	PaymentType     domain.PaymentType   `json:"paymentType" validate:"required,enum"`
	ReferenceID     *string              `json:"referenceId"`
	ReferenceNumber string               `json:"referenceNumber" validate:"max=100"`
	RecordedBy      string               `json:"recordedBy" validate:"max=100"`
	Notes           string               `json:"notes" validate:"max=1000"`
}

func (s *PaymentService) List(ctx context.Context, filter domain.PaymentFilter) ([]domain.PaymentDetail, error) {
	return s.payments.List(ctx, filter)
}

func (s *PaymentService) ListByStudent(ctx context.Context, studentID string) ([]domain.PaymentDetail, error) {
	if _, err := s.students.Get(ctx, studentID); err != nil {
		return nil, err
	}
	return s.payments.List(ctx, domain.PaymentFilter{StudentID: studentID})
}

func (s *PaymentService) Get(ctx context.Context, id string) (*domain.PaymentDetail, error) {
	return s.payments.Get(ctx, id)
}

func (s *PaymentService) Create(ctx context.Context, in CreatePaymentInput) (*domain.PaymentDetail, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	conversion, err := accounting.Convert(in.AmountOriginal, in.Currency, in.ExchangeRate)
	if err != nil {
		return nil, err
	}

	if _, err := s.students.Get(ctx, in.StudentID); err != nil {
		return nil, err
	}

	referenceID := optionalID(in.ReferenceID)
	if err := s.checkReference(ctx, in.PaymentType, referenceID); err != nil {
		return nil, err
	}

	now := s.now()
	paymentDate := in.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = domain.DateOf(now)
	}

	payment, err := s.payments.Create(ctx, &domain.Payment{
		StudentID:       in.StudentID,
		AmountUSD:       conversion.AmountUSD,
		AmountOriginal:  in.AmountOriginal,
		Currency:        in.Currency,
		ExchangeRate:    conversion.ExchangeRate,
		RateSource:      orDefault(in.RateSource, constants.RateSourceManual),
		PaymentDate:     paymentDate,
		PaymentMethod:   in.PaymentMethod,
		PaymentType:     in.PaymentType,
		ReferenceID:     referenceID,
		ReferenceNumber: in.ReferenceNumber,
		RecordedBy:      orDefault(in.RecordedBy, constants.DefaultRecordedBy),
		Notes:           in.Notes,
		CreatedAt:       now.UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("payment_id", payment.ID).
		Str("student_id", payment.StudentID).
		Str("payment_type", string(payment.PaymentType)).
		Str("amount_usd", payment.AmountUSD.String()).
		Msg("payment recorded")
	return payment, nil
}

// checkReference makes sure a league or game fee payment points at a league
// or game that exists. Monthly fees settle no specific record.
func (s *PaymentService) checkReference(ctx context.Context, paymentType domain.PaymentType, referenceID *string) error {
	if referenceID == nil {
		return nil
	}

	var (
		ok     bool
		err    error
		entity string
	)
	switch paymentType {
	case domain.PaymentTypeLeagueFee:
		entity = "league"
		ok, err = s.leagues.Exists(ctx, *referenceID)
	case domain.PaymentTypeGameArbitrage:
		entity = "game"
		ok, err = s.games.Exists(ctx, *referenceID)
	default:
		return domain.NewValidationError("referenceId", "only league_fee and game_arbitrage payments reference a record")
	}
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewNotFound(entity, *referenceID)
	}
	return nil
}

func (s *PaymentService) MonthlySummary(ctx context.Context) (map[string]accounting.PaymentMonth, error) {
	payments, err := s.payments.ListPlain(ctx, domain.PaymentFilter{})
	if err != nil {
		return nil, err
	}
	return accounting.SummarizePayments(payments), nil
}
