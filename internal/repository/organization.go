package repository

import (
	"context"
	"database/sql"
	"fmt"

	"academy-ledger/internal/db"
	"academy-ledger/internal/domain"

	"github.com/rs/zerolog"
)

type CategoryRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewCategoryRepository(queries *db.Queries, logger zerolog.Logger) *CategoryRepository {
	return &CategoryRepository{queries: queries, logger: logger}
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.CategoryWithCount, error) {
	categories, err := r.queries.ListCategoriesWithCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) Get(ctx context.Context, id string) (*domain.Category, error) {
	category, err := r.queries.GetCategory(ctx, id)
	if err != nil {
		return nil, notFound(err, "category", id)
	}
	return &category, nil
}

type LeagueRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewLeagueRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *LeagueRepository {
	return &LeagueRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *LeagueRepository) List(ctx context.Context) ([]domain.LeagueSummary, error) {
	leagues, err := r.queries.ListLeagueSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leagues: %w", err)
	}
	return leagues, nil
}

func (r *LeagueRepository) Get(ctx context.Context, id string) (*domain.LeagueSummary, error) {
	league, err := r.queries.GetLeagueSummary(ctx, id)
	if err != nil {
		return nil, notFound(err, "league", id)
	}
	return &league, nil
}

func (r *LeagueRepository) Enrollments(ctx context.Context, leagueID string) ([]domain.EnrollmentDetail, error) {
	enrollments, err := r.queries.ListEnrollmentsByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments for league %s: %w", leagueID, err)
	}
	return enrollments, nil
}

func (r *LeagueRepository) EnrollmentsForStudent(ctx context.Context, studentID string) ([]domain.EnrollmentWithLeague, error) {
	enrollments, err := r.queries.ListEnrollmentsWithLeagueByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments for student %s: %w", studentID, err)
	}
	return enrollments, nil
}

func (r *LeagueRepository) Create(ctx context.Context, league *domain.League) (*domain.LeagueSummary, error) {
	if err := ensureID(&league.ID); err != nil {
		return nil, err
	}

	if err := r.queries.CreateLeague(ctx, *league); err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.NewNotFound("category", league.CategoryID)
		}
		r.logger.Error().Err(err).Str("league_id", league.ID).Msg("failed to create league")
		return nil, fmt.Errorf("failed to create league: %w", err)
	}

	return r.Get(ctx, league.ID)
}

// Enroll relies on the UNIQUE (student_id, league_id) constraint so two
// concurrent enrollments of the same pair cannot both succeed.
func (r *LeagueRepository) Enroll(ctx context.Context, enrollment *domain.LeagueEnrollment) error {
	if err := ensureID(&enrollment.ID); err != nil {
		return err
	}

	err := r.queries.CreateEnrollment(ctx, *enrollment)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return &domain.DuplicateEnrollmentError{StudentID: enrollment.StudentID, LeagueID: enrollment.LeagueID}
	case isForeignKeyViolation(err):
		return domain.NewNotFound("student or league", enrollment.StudentID+"/"+enrollment.LeagueID)
	default:
		r.logger.Error().Err(err).
			Str("student_id", enrollment.StudentID).
			Str("league_id", enrollment.LeagueID).
			Msg("failed to enroll student")
		return fmt.Errorf("failed to enroll student: %w", err)
	}
}

func (r *LeagueRepository) Unenroll(ctx context.Context, studentID, leagueID string) error {
	n, err := r.queries.DeleteEnrollment(ctx, studentID, leagueID)
	if err != nil {
		return fmt.Errorf("failed to unenroll student %s from league %s: %w", studentID, leagueID, err)
	}
	if n == 0 {
		return domain.NewNotFound("enrollment", studentID+"/"+leagueID)
	}
	return nil
}

func (r *LeagueRepository) Exists(ctx context.Context, id string) (bool, error) {
	ok, err := r.queries.LeagueExists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to check league %s: %w", id, err)
	}
	return ok, nil
}
