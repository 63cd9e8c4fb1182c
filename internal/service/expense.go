package service

import (
	"context"
	"fmt"

	"academy-ledger/internal/accounting"
	"academy-ledger/internal/config"
	"academy-ledger/internal/constants"
	"academy-ledger/internal/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ExpenseService records operating expenses and instructor pay.
type ExpenseService struct {
	expenses ExpenseStore
	users    UserStore
	now      clock
	logger   zerolog.Logger
}

func NewExpenseService(expenses ExpenseStore, users UserStore, cfg *config.Config, logger zerolog.Logger) *ExpenseService {
	return &ExpenseService{
		expenses: expenses,
		users:    users,
		now:      newClock(cfg),
		logger:   logger,
	}
}

type CreateExpenseInput struct {
	CategoryID     string          `json:"categoryId" validate:"required"`
	Description    string          `json:"description" validate:"required,max=500"`
	AmountOriginal decimal.Decimal `json:"amountOriginal" validate:"gt=0"`
	Currency       domain.Currency `json:"currency" validate:"required,enum"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	Date           domain.Date     `json:"date"`
	Payee          string          `json:"payee" validate:"max=200"`
	RecordedBy     string          `json:"recordedBy" validate:"max=100"`
	Notes          string          `json:"notes" validate:"max=1000"`
}

type CreateInstructorPaymentInput struct {
	InstructorID   string          `json:"instructorId" validate:"required"`
	AmountOriginal decimal.Decimal `json:"amountOriginal" validate:"gt=0"`
	Currency       domain.Currency `json:"currency" validate:"required,enum"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	PeriodStart    domain.Date     `json:"periodStart" validate:"required"`
	PeriodEnd      domain.Date     `json:"periodEnd" validate:"required"`
	PaymentDate    domain.Date     `json:"paymentDate"`
	RecordedBy     string          `json:"recordedBy" validate:"max=100"`
	Notes          string          `json:"notes" validate:"max=1000"`
}

func (s *ExpenseService) Categories(ctx context.Context) ([]domain.ExpenseCategory, error) {
	return s.expenses.Categories(ctx)
}

func (s *ExpenseService) List(ctx context.Context, filter domain.ExpenseFilter) ([]domain.ExpenseDetail, error) {
	return s.expenses.List(ctx, filter)
}

func (s *ExpenseService) Create(ctx context.Context, in CreateExpenseInput) (*domain.ExpenseDetail, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	conversion, err := accounting.Convert(in.AmountOriginal, in.Currency, in.ExchangeRate)
	if err != nil {
		return nil, err
	}

	now := s.now()
	date := in.Date
	if date.IsZero() {
		date = domain.DateOf(now)
	}

	expense, err := s.expenses.Create(ctx, &domain.Expense{
		CategoryID:     in.CategoryID,
		Description:    in.Description,
		AmountUSD:      conversion.AmountUSD,
		AmountOriginal: in.AmountOriginal,
		Currency:       in.Currency,
		ExchangeRate:   conversion.ExchangeRate,
		Date:           date,
		Payee:          in.Payee,
		RecordedBy:     orDefault(in.RecordedBy, constants.DefaultRecordedBy),
		Notes:          in.Notes,
		CreatedAt:      now.UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("expense_id", expense.ID).
		Str("category_id", expense.CategoryID).
		Str("amount_usd", expense.AmountUSD.String()).
		Msg("expense recorded")
	return expense, nil
}

func (s *ExpenseService) ListInstructorPayments(ctx context.Context, filter domain.InstructorPaymentFilter) ([]domain.InstructorPaymentDetail, error) {
	return s.expenses.ListInstructorPayments(ctx, filter)
}

func (s *ExpenseService) CreateInstructorPayment(ctx context.Context, in CreateInstructorPaymentInput) (*domain.InstructorPaymentDetail, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.PeriodEnd.Before(in.PeriodStart.Time) {
		return nil, domain.NewValidationError("periodEnd", "must not be before periodStart")
	}

	conversion, err := accounting.Convert(in.AmountOriginal, in.Currency, in.ExchangeRate)
	if err != nil {
		return nil, err
	}

	instructor, err := s.users.Get(ctx, in.InstructorID)
	if err != nil {
		return nil, err
	}
	if instructor.Role != domain.RoleInstructor {
		return nil, domain.NewValidationError("instructorId", fmt.Sprintf("user %s is not an instructor", instructor.ID))
	}

	now := s.now()
	paymentDate := in.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = domain.DateOf(now)
	}

	payment, err := s.expenses.CreateInstructorPayment(ctx, &domain.InstructorPayment{
		InstructorID:   in.InstructorID,
		AmountUSD:      conversion.AmountUSD,
		AmountOriginal: in.AmountOriginal,
		Currency:       in.Currency,
		ExchangeRate:   conversion.ExchangeRate,
		PeriodStart:    in.PeriodStart,
		PeriodEnd:      in.PeriodEnd,
		PaymentDate:    paymentDate,
		RecordedBy:     orDefault(in.RecordedBy, constants.DefaultRecordedBy),
		Notes:          in.Notes,
		CreatedAt:      now.UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("instructor_id", payment.InstructorID).
		Str("amount_usd", payment.AmountUSD.String()).
		Msg("instructor payment recorded")
	return payment, nil
}

func (s *ExpenseService) MonthlySummary(ctx context.Context) (map[string]accounting.ExpenseMonth, error) {
	var (
		expenses      []domain.Expense
		instructorPay []domain.InstructorPayment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.expenses.ListPlain(gctx, domain.ExpenseFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		instructorPay, err = s.expenses.ListInstructorPaymentsPlain(gctx, domain.InstructorPaymentFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return accounting.SummarizeExpenses(expenses, instructorPay), nil
}
