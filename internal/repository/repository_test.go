package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"academy-ledger/internal/database"
	"academy-ledger/internal/db"
	"academy-ledger/internal/domain"

	"github.com/alecthomas/assert/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type repos struct {
	sql        *sql.DB
	students   *StudentRepository
	categories *CategoryRepository
	leagues    *LeagueRepository
	games      *GameRepository
	payments   *PaymentRepository
	expenses   *ExpenseRepository
	settings   *SettingsRepository
	users      *UserRepository
}

func newRepos(t *testing.T) repos {
	t.Helper()
	sqlDB, err := database.Open(context.Background(), ":memory:", zerolog.Nop())
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	q := db.New(sqlDB)
	log := zerolog.Nop()
	return repos{
		sql:        sqlDB,
		students:   NewStudentRepository(sqlDB, q, log),
		categories: NewCategoryRepository(q, log),
		leagues:    NewLeagueRepository(sqlDB, q, log),
		games:      NewGameRepository(sqlDB, q, log),
		payments:   NewPaymentRepository(sqlDB, q, log),
		expenses:   NewExpenseRepository(sqlDB, q, log),
		settings:   NewSettingsRepository(q, log),
		users:      NewUserRepository(q, log),
	}
}

var recordedAt = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func createStudent(t *testing.T, r repos, first string, category string) *domain.Student {
	t.Helper()
	s, err := r.students.Create(context.Background(), &domain.Student{
		FirstName:  first,
		LastName:   "Rojas",
		Birthdate:  domain.NewDate(2014, 5, 2),
		CategoryID: category,
		EnrolledAt: domain.NewDate(2025, 1, 10),
		Status:     domain.StudentActive,
		CreatedAt:  recordedAt,
		UpdatedAt:  recordedAt,
	})
	assert.NoError(t, err)
	return s
}

func createLeague(t *testing.T, r repos, fee string) *domain.LeagueSummary {
	t.Helper()
	l, err := r.leagues.Create(context.Background(), &domain.League{
		Name:         "Liga Metropolitana",
		Year:         2025,
		CategoryID:   "sub-12",
		FeeAmountUSD: decimal.RequireFromString(fee),
	})
	assert.NoError(t, err)
	return l
}

func createGame(t *testing.T, r repos, leagueID *string, fee string) *domain.GameSummary {
	t.Helper()
	g, err := r.games.Create(context.Background(), &domain.Game{
		LeagueID:        leagueID,
		Date:            domain.NewDate(2025, 3, 8),
		Opponent:        "Deportivo Petare",
		Location:        "Cancha 2",
		GameType:        domain.GameTypeLeague,
		ArbitrageFeeUSD: decimal.RequireFromString(fee),
	})
	assert.NoError(t, err)
	return g
}

func TestStudentLifecycle(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	luis := createStudent(t, r, "Luis", "sub-12")
	createStudent(t, r, "Ana", "sub-10")

	assert.NotEqual(t, "", luis.ID)
	assert.Equal(t, "Sub-12", luis.CategoryName)
	assert.Equal(t, "2025-01-10", luis.EnrolledAt.String())

	all, err := r.students.List(ctx, domain.StudentFilter{})
	assert.NoError(t, err)
	assert.Equal(t, 2, len(all))
	assert.Equal(t, "Ana", all[0].FirstName)

	bySub12, err := r.students.List(ctx, domain.StudentFilter{CategoryID: "sub-12"})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(bySub12))

	deactivated, err := r.students.Deactivate(ctx, luis.ID, recordedAt.Add(time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, domain.StudentInactive, deactivated.Status)

	active := domain.StudentActive
	activeOnly, err := r.students.List(ctx, domain.StudentFilter{Status: &active})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(activeOnly))

	count, err := r.students.CountActive(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	// history is preserved
	_, err = r.students.Get(ctx, luis.ID)
	assert.NoError(t, err)
}

func TestStudentNotFound(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	_, err := r.students.Get(ctx, "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = r.students.Deactivate(ctx, "missing", recordedAt)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = r.students.Create(ctx, &domain.Student{
		FirstName:  "Pedro",
		LastName:   "Gil",
		Birthdate:  domain.NewDate(2015, 1, 1),
		CategoryID: "sub-99",
		EnrolledAt: domain.NewDate(2025, 1, 1),
		Status:     domain.StudentActive,
		CreatedAt:  recordedAt,
		UpdatedAt:  recordedAt,
	})
	var nf *domain.NotFoundError
	assert.True(t, errors.As(err, &nf))
	assert.Equal(t, "category", nf.Entity)
}

func TestCategoriesCountActiveStudents(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	createStudent(t, r, "Luis", "sub-12")
	ana := createStudent(t, r, "Ana", "sub-12")
	_, err := r.students.Deactivate(ctx, ana.ID, recordedAt)
	assert.NoError(t, err)

	categories, err := r.categories.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 7, len(categories))
	assert.Equal(t, "Sub-6", categories[0].Name)
	for _, c := range categories {
		if c.ID == "sub-12" {
			assert.Equal(t, 1, c.StudentCount)
		}
	}
}

func TestEnrollIsUniquePerStudentAndLeague(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	student := createStudent(t, r, "Luis", "sub-12")
	league := createLeague(t, r, "100")

	err := r.leagues.Enroll(ctx, &domain.LeagueEnrollment{StudentID: student.ID, LeagueID: league.ID, EnrolledAt: domain.NewDate(2025, 2, 1)})
	assert.NoError(t, err)

	err = r.leagues.Enroll(ctx, &domain.LeagueEnrollment{StudentID: student.ID, LeagueID: league.ID, EnrolledAt: domain.NewDate(2025, 2, 2)})
	assert.True(t, errors.Is(err, domain.ErrDuplicateEnrollment))

	summary, err := r.leagues.Get(ctx, league.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.EnrollmentCount)
	assert.Equal(t, "Sub-12", summary.CategoryName)

	enrollments, err := r.leagues.Enrollments(ctx, league.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Luis Rojas", enrollments[0].StudentName)

	withLeague, err := r.leagues.EnrollmentsForStudent(ctx, student.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(withLeague))
	assert.True(t, withLeague[0].League.FeeAmountUSD.Equal(decimal.NewFromInt(100)))
}

func TestUnenroll(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	student := createStudent(t, r, "Luis", "sub-12")
	league := createLeague(t, r, "100")

	err := r.leagues.Unenroll(ctx, student.ID, league.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	assert.NoError(t, r.leagues.Enroll(ctx, &domain.LeagueEnrollment{StudentID: student.ID, LeagueID: league.ID, EnrolledAt: domain.NewDate(2025, 2, 1)}))
	assert.NoError(t, r.leagues.Unenroll(ctx, student.ID, league.ID))

	enrollments, err := r.leagues.Enrollments(ctx, league.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(enrollments))
}

func TestRecordAttendanceUpdatesInPlace(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	student := createStudent(t, r, "Luis", "sub-12")
	game := createGame(t, r, nil, "5")

	first, created, err := r.games.RecordAttendance(ctx, domain.GameAttendance{
		StudentID: student.ID, GameID: game.ID, Attended: true, RecordedBy: "coach", RecordedAt: recordedAt,
	})
	assert.NoError(t, err)
	assert.True(t, created)
	assert.True(t, first.Attended)

	second, created, err := r.games.RecordAttendance(ctx, domain.GameAttendance{
		StudentID: student.ID, GameID: game.ID, Attended: false, RecordedBy: "secretary", RecordedAt: recordedAt.Add(time.Hour),
	})
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.False(t, second.Attended)
	assert.Equal(t, "secretary", second.RecordedBy)

	attendances, err := r.games.Attendances(ctx, game.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(attendances))
	assert.False(t, attendances[0].Attended)
	assert.Equal(t, "Luis Rojas", attendances[0].StudentName)
}

func TestRecordAttendanceBatchIsAllOrNothing(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	luis := createStudent(t, r, "Luis", "sub-12")
	ana := createStudent(t, r, "Ana", "sub-12")
	game := createGame(t, r, nil, "5")

	_, err := r.games.RecordAttendanceBatch(ctx, []domain.GameAttendance{
		{StudentID: luis.ID, GameID: game.ID, Attended: true, RecordedAt: recordedAt},
		{StudentID: "ghost", GameID: game.ID, Attended: true, RecordedAt: recordedAt},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	attendances, err := r.games.Attendances(ctx, game.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(attendances))

	saved, err := r.games.RecordAttendanceBatch(ctx, []domain.GameAttendance{
		{StudentID: luis.ID, GameID: game.ID, Attended: true, RecordedAt: recordedAt},
		{StudentID: ana.ID, GameID: game.ID, Attended: false, RecordedAt: recordedAt},
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, len(saved))

	eligible, err := r.games.EligibleStudents(ctx, game.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(eligible))
	assert.Equal(t, "Ana", eligible[0].FirstName)
	assert.True(t, eligible[0].AttendanceRecorded)
	assert.False(t, eligible[0].Attended)
	assert.True(t, eligible[1].Attended)

	forLuis, err := r.games.AttendancesForStudent(ctx, luis.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(forLuis))
	assert.True(t, forLuis[0].Game.ArbitrageFeeUSD.Equal(decimal.NewFromInt(5)))
}

func TestGameUpdateReplacesGoals(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	league := createLeague(t, r, "100")
	scorer := createStudent(t, r, "Luis", "sub-12")
	game := createGame(t, r, &league.ID, "5")
	assert.Equal(t, "Liga Metropolitana", game.LeagueName)
	assert.Equal(t, 0, len(game.Goals))

	goalsFor, goalsAgainst := 2, 1
	updated := game.Game
	updated.GoalsFor = &goalsFor
	updated.GoalsAgainst = &goalsAgainst
	updated.Goals = []domain.Goal{
		{StudentID: scorer.ID, Minute: 70},
		{StudentID: scorer.ID, Minute: 12},
	}

	got, err := r.games.Update(ctx, &updated, true)
	assert.NoError(t, err)
	assert.Equal(t, 2, *got.GoalsFor)
	assert.Equal(t, 2, len(got.Goals))
	assert.Equal(t, 12, got.Goals[0].Minute)
	assert.Equal(t, "Luis Rojas", got.Goals[0].StudentName)

	// a bad scorer leaves the previous goals untouched
	updated.Goals = []domain.Goal{{StudentID: "ghost", Minute: 5}}
	_, err = r.games.Update(ctx, &updated, true)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	updated.Goals = []domain.Goal{{StudentID: scorer.ID, Minute: 150}}
	_, err = r.games.Update(ctx, &updated, true)
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "goals", verr.Field)

	again, err := r.games.Get(ctx, game.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(again.Goals))
}

func TestPaymentsFilterByStudentAndRange(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	luis := createStudent(t, r, "Luis", "sub-12")
	ana := createStudent(t, r, "Ana", "sub-12")

	for _, p := range []domain.Payment{
		{StudentID: luis.ID, PaymentDate: domain.NewDate(2025, 2, 28)},
		{StudentID: luis.ID, PaymentDate: domain.NewDate(2025, 3, 1)},
		{StudentID: ana.ID, PaymentDate: domain.NewDate(2025, 3, 31)},
	} {
		p.AmountUSD = decimal.NewFromInt(50)
		p.AmountOriginal = decimal.NewFromInt(1850)
		p.Currency = domain.CurrencyLocal
		p.ExchangeRate = decimal.NewFromInt(37)
		p.RateSource = "manual"
		p.PaymentMethod = domain.PaymentMethodCashLocal
		p.PaymentType = domain.PaymentTypeMonthlyFee
		p.CreatedAt = recordedAt
		created, err := r.payments.Create(ctx, &p)
		assert.NoError(t, err)
		assert.True(t, created.ExchangeRate.Equal(decimal.NewFromInt(37)))
	}

	march, err := r.payments.List(ctx, domain.PaymentFilter{Range: domain.DateRange{
		From: domain.NewDate(2025, 3, 1),
		To:   domain.NewDate(2025, 3, 31),
	}})
	assert.NoError(t, err)
	assert.Equal(t, 2, len(march))
	assert.Equal(t, "Ana Rojas", march[0].StudentName)

	luisPayments, err := r.payments.ListPlain(ctx, domain.PaymentFilter{StudentID: luis.ID})
	assert.NoError(t, err)
	assert.Equal(t, 2, len(luisPayments))

	_, err = r.payments.Create(ctx, &domain.Payment{
		StudentID:     "ghost",
		AmountUSD:     decimal.NewFromInt(1),
		Currency:      domain.CurrencyUSD,
		ExchangeRate:  decimal.NewFromInt(1),
		PaymentDate:   domain.NewDate(2025, 3, 1),
		PaymentMethod: domain.PaymentMethodCashUSD,
		PaymentType:   domain.PaymentTypeMonthlyFee,
		CreatedAt:     recordedAt,
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestExpensesAndInstructorPayments(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	categories, err := r.expenses.Categories(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 5, len(categories))

	expense, err := r.expenses.Create(ctx, &domain.Expense{
		CategoryID:     "equipment",
		Description:    "Balones",
		AmountUSD:      decimal.NewFromInt(200),
		AmountOriginal: decimal.NewFromInt(200),
		Currency:       domain.CurrencyUSD,
		ExchangeRate:   decimal.NewFromInt(1),
		Date:           domain.NewDate(2025, 3, 2),
		CreatedAt:      recordedAt,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Equipment", expense.CategoryName)

	_, err = r.expenses.Create(ctx, &domain.Expense{CategoryID: "catering", Description: "x", Currency: domain.CurrencyUSD, Date: domain.NewDate(2025, 3, 2), CreatedAt: recordedAt})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	coach, err := r.users.Create(ctx, &domain.User{Name: "Carlos", Email: "carlos@academy.test", Role: domain.RoleInstructor, CreatedAt: recordedAt})
	assert.NoError(t, err)

	payment, err := r.expenses.CreateInstructorPayment(ctx, &domain.InstructorPayment{
		InstructorID:   coach.ID,
		AmountUSD:      decimal.NewFromInt(300),
		AmountOriginal: decimal.NewFromInt(300),
		Currency:       domain.CurrencyUSD,
		ExchangeRate:   decimal.NewFromInt(1),
		PeriodStart:    domain.NewDate(2025, 3, 1),
		PeriodEnd:      domain.NewDate(2025, 3, 31),
		PaymentDate:    domain.NewDate(2025, 3, 31),
		CreatedAt:      recordedAt,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Carlos", payment.InstructorName)

	plain, err := r.expenses.ListInstructorPaymentsPlain(ctx, domain.InstructorPaymentFilter{InstructorID: coach.ID})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(plain))
}

func TestSettingsLazyCreation(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	found, err := r.settings.Find(ctx)
	assert.NoError(t, err)
	assert.Zero(t, found)

	defaults := domain.DefaultSettings()
	defaults.UpdatedAt = recordedAt
	created, err := r.settings.Ensure(ctx, defaults)
	assert.NoError(t, err)
	assert.True(t, created.MonthlyFeeUSD.Equal(decimal.NewFromInt(50)))

	created.MonthlyFeeUSD = decimal.NewFromInt(35)
	_, err = r.settings.Save(ctx, *created)
	assert.NoError(t, err)

	// ensuring again must not overwrite the saved fee
	again, err := r.settings.Ensure(ctx, defaults)
	assert.NoError(t, err)
	assert.True(t, again.MonthlyFeeUSD.Equal(decimal.NewFromInt(35)))
}

func TestUserEmailIsUnique(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	_, err := r.users.Create(ctx, &domain.User{Name: "Marta", Email: "marta@academy.test", Role: domain.RoleSecretary, CreatedAt: recordedAt})
	assert.NoError(t, err)

	_, err = r.users.Create(ctx, &domain.User{Name: "Marta B", Email: "marta@academy.test", Role: domain.RoleAdmin, CreatedAt: recordedAt})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	instructor := domain.RoleInstructor
	instructors, err := r.users.List(ctx, &instructor)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(instructors))
}
