package service

import (
	"context"
	"time"

	"academy-ledger/internal/config"
	"academy-ledger/internal/domain"
)

// The interfaces below are what the use cases need from storage. The sqlite
// repositories satisfy them; tests use in-memory fakes.

type StudentStore interface {
	Get(ctx context.Context, id string) (*domain.Student, error)
	List(ctx context.Context, filter domain.StudentFilter) ([]domain.Student, error)
	CountActive(ctx context.Context) (int, error)
	Create(ctx context.Context, student *domain.Student) (*domain.Student, error)
	Update(ctx context.Context, student *domain.Student) (*domain.Student, error)
	Deactivate(ctx context.Context, id string, at time.Time) (*domain.Student, error)
}

type CategoryStore interface {
	List(ctx context.Context) ([]domain.CategoryWithCount, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
}

type LeagueStore interface {
	List(ctx context.Context) ([]domain.LeagueSummary, error)
	Get(ctx context.Context, id string) (*domain.LeagueSummary, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, league *domain.League) (*domain.LeagueSummary, error)
	Enrollments(ctx context.Context, leagueID string) ([]domain.EnrollmentDetail, error)
	EnrollmentsForStudent(ctx context.Context, studentID string) ([]domain.EnrollmentWithLeague, error)
	Enroll(ctx context.Context, enrollment *domain.LeagueEnrollment) error
	Unenroll(ctx context.Context, studentID, leagueID string) error
}

type GameStore interface {
	List(ctx context.Context) ([]domain.GameSummary, error)
	Get(ctx context.Context, id string) (*domain.GameSummary, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, game *domain.Game) (*domain.GameSummary, error)
	Update(ctx context.Context, game *domain.Game, replaceGoals bool) (*domain.GameSummary, error)
	Attendances(ctx context.Context, gameID string) ([]domain.AttendanceDetail, error)
	AttendancesForStudent(ctx context.Context, studentID string) ([]domain.AttendanceWithGame, error)
	EligibleStudents(ctx context.Context, gameID string) ([]domain.EligibleStudent, error)
	RecordAttendance(ctx context.Context, attendance domain.GameAttendance) (*domain.GameAttendance, bool, error)
	RecordAttendanceBatch(ctx context.Context, attendances []domain.GameAttendance) ([]domain.GameAttendance, error)
}

type PaymentStore interface {
	Get(ctx context.Context, id string) (*domain.PaymentDetail, error)
	List(ctx context.Context, filter domain.PaymentFilter) ([]domain.PaymentDetail, error)
	ListPlain(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error)
	Create(ctx context.Context, payment *domain.Payment) (*domain.PaymentDetail, error)
}

type ExpenseStore interface {
	Categories(ctx context.Context) ([]domain.ExpenseCategory, error)
	List(ctx context.Context, filter domain.ExpenseFilter) ([]domain.ExpenseDetail, error)
	ListPlain(ctx context.Context, filter domain.ExpenseFilter) ([]domain.Expense, error)
	Create(ctx context.Context, expense *domain.Expense) (*domain.ExpenseDetail, error)
	ListInstructorPayments(ctx context.Context, filter domain.InstructorPaymentFilter) ([]domain.InstructorPaymentDetail, error)
	ListInstructorPaymentsPlain(ctx context.Context, filter domain.InstructorPaymentFilter) ([]domain.InstructorPayment, error)
	CreateInstructorPayment(ctx context.Context, payment *domain.InstructorPayment) (*domain.InstructorPaymentDetail, error)
}

type SettingsStore interface {
	Find(ctx context.Context) (*domain.Settings, error)
	Ensure(ctx context.Context, defaults domain.Settings) (*domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) (*domain.Settings, error)
}

type UserStore interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, role *domain.UserRole) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type RateFetcher interface {
	LatestRate(ctx context.Context, currency string) (*domain.ExchangeRate, error)
}

type clock func() time.Time

// newClock reads the wall clock in the academy's timezone so "today" and
// "this month" follow local midnight.
func newClock(cfg *config.Config) clock {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return func() time.Time { return time.Now().In(loc) }
}

// defaultSettings are the values used until an admin saves settings. A
// config that was never loaded falls back to the built-in defaults.
func defaultSettings(cfg *config.Config) domain.Settings {
	settings := domain.DefaultSettings()
	currency, err := domain.ParseCurrency(cfg.DefaultCurrency)
	if err != nil {
		return settings
	}
	settings.MonthlyFeeUSD = cfg.DefaultMonthlyFeeUSD
	settings.DefaultCurrency = currency
	if cfg.LocalCurrencyCode != "" {
		settings.LocalCurrencyCode = cfg.LocalCurrencyCode
	}
	return settings
}

// currentSettings returns the stored settings or the defaults without
// creating a row.
func currentSettings(ctx context.Context, store SettingsStore, defaults domain.Settings) (domain.Settings, error) {
	settings, err := store.Find(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	if settings == nil {
		return defaults, nil
	}
	return *settings, nil
}

func optionalID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
