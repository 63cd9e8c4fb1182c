package service

import (
	"context"
	"time"

	"academy-ledger/internal/accounting"
	"academy-ledger/internal/config"
	"academy-ledger/internal/constants"
	"academy-ledger/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type DashboardService struct {
	students StudentStore
	payments PaymentStore
	expenses ExpenseStore
	settings SettingsStore
	defaults domain.Settings
	now      clock
	logger   zerolog.Logger
}

func NewDashboardService(students StudentStore, payments PaymentStore, expenses ExpenseStore, settings SettingsStore, cfg *config.Config, logger zerolog.Logger) *DashboardService {
	return &DashboardService{
		students: students,
		payments: payments,
		expenses: expenses,
		settings: settings,
		defaults: defaultSettings(cfg),
		now:      newClock(cfg),
		logger:   logger,
	}
}

// Snapshot summarizes the month the academy's clock is currently in.
func (s *DashboardService) Snapshot(ctx context.Context) (*accounting.DashboardSnapshot, error) {
	start := time.Now()
	now := s.now()
	month := accounting.CurrentMonth(now)

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var in accounting.DashboardInput
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		in.ActiveStudents, err = s.students.CountActive(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		in.Settings, err = currentSettings(gctx, s.settings, s.defaults)
		return err
	})
	g.Go(func() error {
		var err error
		in.Payments, err = s.payments.ListPlain(gctx, domain.PaymentFilter{Range: month})
		return err
	})
	g.Go(func() error {
		var err error
		in.Expenses, err = s.expenses.ListPlain(gctx, domain.ExpenseFilter{Range: month})
		return err
	})
	g.Go(func() error {
		var err error
		in.InstructorPayments, err = s.expenses.ListInstructorPaymentsPlain(gctx, domain.InstructorPaymentFilter{Range: month})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := accounting.Summarize(in, now)

	s.logger.Debug().
		Str("month", month.From.MonthKey()).
		Int("active_students", snapshot.ActiveStudents).
		Dur("duration", time.Since(start)).
		Msg("dashboard computed")
	return &snapshot, nil
}
