package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"academy-ledger/internal/db"
	"academy-ledger/internal/domain"

	"github.com/rs/zerolog"
)

type StudentRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewStudentRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *StudentRepository {
	return &StudentRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *StudentRepository) Get(ctx context.Context, id string) (*domain.Student, error) {
	student, err := r.queries.GetStudent(ctx, id)
	if err != nil {
		return nil, notFound(err, "student", id)
	}
	return &student, nil
}

func (r *StudentRepository) List(ctx context.Context, filter domain.StudentFilter) ([]domain.Student, error) {
	students, err := r.queries.ListStudents(ctx, db.ListStudentsParams{
		Status:     filter.Status,
		CategoryID: filter.CategoryID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func (r *StudentRepository) CountActive(ctx context.Context) (int, error) {
	count, err := r.queries.CountStudentsByStatus(ctx, domain.StudentActive)
	if err != nil {
		return 0, fmt.Errorf("failed to count active students: %w", err)
	}
	return int(count), nil
}

func (r *StudentRepository) Create(ctx context.Context, student *domain.Student) (*domain.Student, error) {
	if err := ensureID(&student.ID); err != nil {
		return nil, err
	}

	if err := r.queries.CreateStudent(ctx, *student); err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.NewNotFound("category", student.CategoryID)
		}
		r.logger.Error().Err(err).Str("student_id", student.ID).Msg("failed to create student")
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	return r.Get(ctx, student.ID)
}

func (r *StudentRepository) Update(ctx context.Context, student *domain.Student) (*domain.Student, error) {
	n, err := r.queries.UpdateStudent(ctx, *student)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.NewNotFound("category", student.CategoryID)
		}
		return nil, fmt.Errorf("failed to update student %s: %w", student.ID, err)
	}
	if n == 0 {
		return nil, domain.NewNotFound("student", student.ID)
	}
	return r.Get(ctx, student.ID)
}

// Deactivate flips the student to inactive. Students are never removed so
// their payment and attendance history stays intact.
func (r *StudentRepository) Deactivate(ctx context.Context, id string, at time.Time) (*domain.Student, error) {
	n, err := r.queries.SetStudentStatus(ctx, id, domain.StudentInactive, at)
	if err != nil {
		return nil, fmt.Errorf("failed to deactivate student %s: %w", id, err)
	}
	if n == 0 {
		return nil, domain.NewNotFound("student", id)
	}
	r.logger.Debug().Str("student_id", id).Msg("student deactivated")
	return r.Get(ctx, id)
}
