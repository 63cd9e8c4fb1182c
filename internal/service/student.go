package service

import (
	"context"

	"academy-ledger/internal/accounting"
	"academy-ledger/internal/config"
	"academy-ledger/internal/constants"
	"academy-ledger/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type StudentService struct {
	students StudentStore
	leagues  LeagueStore
	games    GameStore
	payments PaymentStore
	settings SettingsStore
	defaults domain.Settings
	now      clock
	logger   zerolog.Logger
}

func NewStudentService(
	students StudentStore,
	leagues LeagueStore,
	games GameStore,
	payments PaymentStore,
	settings SettingsStore,
	cfg *config.Config,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		students: students,
		leagues:  leagues,
		games:    games,
		payments: payments,
		settings: settings,
		defaults: defaultSettings(cfg),
		now:      newClock(cfg),
		logger:   logger,
	}
}

type CreateStudentInput struct {
	FirstName     string      `json:"firstName" validate:"required,max=100"`
	LastName      string      `json:"lastName" validate:"required,max=100"`
	Birthdate     domain.Date `json:"birthdate" validate:"required"`
	GuardianName  string      `json:"guardianName" validate:"max=200"`
	GuardianPhone string      `json:"guardianPhone" validate:"max=50"`
	GuardianEmail string      `json:"guardianEmail" validate:"omitempty,email"`
	CategoryID    string      `json:"categoryId" validate:"required"`
	EnrolledAt    domain.Date `json:"enrolledAt"`
}

// UpdateStudentInput changes only the fields that are set.
type UpdateStudentInput struct {
	FirstName     *string               `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName      *string               `json:"lastName" validate:"omitempty,min=1,max=100"`
	Birthdate     *domain.Date          `json:"birthdate"`
	GuardianName  *string               `json:"guardianName" validate:"omitempty,max=200"`
	GuardianPhone *string               `json:"guardianPhone" validate:"omitempty,max=50"`
	GuardianEmail *string               `json:"guardianEmail" validate:"omitempty,email"`
	CategoryID    *string               `json:"categoryId" validate:"omitempty,min=1"`
	EnrolledAt    *domain.Date          `json:"enrolledAt"`
	Status        *domain.StudentStatus `json:"status" validate:"omitempty,enum"`
}

func (s *StudentService) List(ctx context.Context, filter domain.StudentFilter) ([]domain.Student, error) {
	s.logger.Debug().Str("category_id", filter.CategoryID).Msg("listing students")
	return s.students.List(ctx, filter)
}

func (s *StudentService) Get(ctx context.Context, id string) (*domain.Student, error) {
	return s.students.Get(ctx, id)
}

func (s *StudentService) Create(ctx context.Context, in CreateStudentInput) (*domain.Student, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	now := s.now()
	enrolledAt := in.EnrolledAt
	if enrolledAt.IsZero() {
		enrolledAt = domain.DateOf(now)
	}

	student, err := s.students.Create(ctx, &domain.Student{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Birthdate:     in.Birthdate,
		GuardianName:  in.GuardianName,
		GuardianPhone: in.GuardianPhone,
		GuardianEmail: in.GuardianEmail,
		CategoryID:    in.CategoryID,
		EnrolledAt:    enrolledAt,
		Status:        domain.StudentActive,
		CreatedAt:     now.UTC(),
		UpdatedAt:     now.UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("student_id", student.ID).Str("category_id", student.CategoryID).Msg("student created")
	return student, nil
}

func (s *StudentService) Update(ctx context.Context, id string, in UpdateStudentInput) (*domain.Student, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	student, err := s.students.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		student.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		student.LastName = *in.LastName
	}
	if in.Birthdate != nil && !in.Birthdate.IsZero() {
		student.Birthdate = *in.Birthdate
	}
	if in.GuardianName != nil {
		student.GuardianName = *in.GuardianName
	}
	if in.GuardianPhone != nil {
		student.GuardianPhone = *in.GuardianPhone
	}
	if in.GuardianEmail != nil {
		student.GuardianEmail = *in.GuardianEmail
	}
	if in.CategoryID != nil {
		student.CategoryID = *in.CategoryID
	}
	if in.EnrolledAt != nil && !in.EnrolledAt.IsZero() {
		student.EnrolledAt = *in.EnrolledAt
	}
	if in.Status != nil {
		student.Status = *in.Status
	}
	student.UpdatedAt = s.now().UTC()

	updated, err := s.students.Update(ctx, student)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("student_id", id).Msg("student updated")
	return updated, nil
}

// Deactivate is the delete operation. The row stays so payments and
// attendance keep pointing at it.
func (s *StudentService) Deactivate(ctx context.Context, id string) (*domain.Student, error) {
	student, err := s.students.Deactivate(ctx, id, s.now().UTC())
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("student_id", id).Msg("student deactivated")
	return student, nil
}

// Balance loads everything the student owes and has paid and computes the
// balance as of now. Nothing is cached.
func (s *StudentService) Balance(ctx context.Context, id string) (*accounting.StudentBalance, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var (
		in       accounting.BalanceInput
		settings domain.Settings
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		student, err := s.students.Get(gctx, id)
		if err != nil {
			return err
		}
		in.Student = *student
		return nil
	})
	g.Go(func() error {
		var err error
		settings, err = currentSettings(gctx, s.settings, s.defaults)
		return err
	})
	g.Go(func() error {
		var err error
		in.Enrollments, err = s.leagues.EnrollmentsForStudent(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		in.Attendances, err = s.games.AttendancesForStudent(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		in.Payments, err = s.payments.ListPlain(gctx, domain.PaymentFilter{StudentID: id})
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Debug().Err(err).Str("student_id", id).Msg("failed to load balance inputs")
		return nil, err
	}

	in.MonthlyFeeUSD = settings.MonthlyFeeUSD
	balance := accounting.CalculateBalance(in, s.now())
	return &balance, nil
}
