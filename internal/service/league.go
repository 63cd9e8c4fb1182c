package service

import (
	"context"

	"academy-ledger/internal/config"
	"academy-ledger/internal/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LeagueService covers categories, leagues and league enrollment.
type LeagueService struct {
	categories CategoryStore
	leagues    LeagueStore
	students   StudentStore
	now        clock
	logger     zerolog.Logger
}

func NewLeagueService(categories CategoryStore, leagues LeagueStore, students StudentStore, cfg *config.Config, logger zerolog.Logger) *LeagueService {
	return &LeagueService{
		categories: categories,
		leagues:    leagues,
		students:   students,
		now:        newClock(cfg),
		logger:     logger,
	}
}

type CreateLeagueInput struct {
	Name         string          `json:"name" validate:"required,max=100"`
	Year         int             `json:"year" validate:"required,gte=2000,lte=2100"`
	CategoryID   string          `json:"categoryId" validate:"required"`
	FeeAmountUSD decimal.Decimal `json:"feeAmountUsd" validate:"gte=0"`
}

type EnrollInput struct {
	StudentID string `json:"studentId" validate:"required"`
}

func (s *LeagueService) ListCategories(ctx context.Context) ([]domain.CategoryWithCount, error) {
	return s.categories.List(ctx)
}

// GetCategory returns the category with its active students.
func (s *LeagueService) GetCategory(ctx context.Context, id string) (*domain.CategoryDetail, error) {
	category, err := s.categories.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	active := domain.StudentActive
	students, err := s.students.List(ctx, domain.StudentFilter{Status: &active, CategoryID: id})
	if err != nil {
		return nil, err
	}

	return &domain.CategoryDetail{Category: *category, Students: students}, nil
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]domain.LeagueSummary, error) {
	return s.leagues.List(ctx)
}

func (s *LeagueService) GetLeague(ctx context.Context, id string) (*domain.LeagueDetail, error) {
	league, err := s.leagues.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.leagues.Enrollments(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.LeagueDetail{LeagueSummary: *league, Enrollments: enrollments}, nil
}

func (s *LeagueService) CreateLeague(ctx context.Context, in CreateLeagueInput) (*domain.LeagueSummary, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	league, err := s.leagues.Create(ctx, &domain.League{
		Name:         in.Name,
		Year:         in.Year,
		CategoryID:   in.CategoryID,
		FeeAmountUSD: in.FeeAmountUSD,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("league_id", league.ID).Str("fee_usd", league.FeeAmountUSD.String()).Msg("league created")
	return league, nil
}

// Enroll adds the student to the league dated today. Enrolling the same
// pair twice fails with a DuplicateEnrollmentError and leaves the first
// enrollment untouched.
func (s *LeagueService) Enroll(ctx context.Context, leagueID string, in EnrollInput) (*domain.LeagueEnrollment, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	if _, err := s.leagues.Get(ctx, leagueID); err != nil {
		return nil, err
	}
	if _, err := s.students.Get(ctx, in.StudentID); err != nil {
		return nil, err
	}

	enrollment := &domain.LeagueEnrollment{
		StudentID:  in.StudentID,
		LeagueID:   leagueID,
		EnrolledAt: domain.DateOf(s.now()),
	}
	if err := s.leagues.Enroll(ctx, enrollment); err != nil {
		return nil, err
	}

	s.logger.Info().Str("student_id", in.StudentID).Str("league_id", leagueID).Msg("student enrolled")
	return enrollment, nil
}

func (s *LeagueService) Unenroll(ctx context.Context, leagueID, studentID string) error {
	if err := s.leagues.Unenroll(ctx, studentID, leagueID); err != nil {
		return err
	}
	s.logger.Info().Str("student_id", studentID).Str("league_id", leagueID).Msg("student unenrolled")
	return nil
}
