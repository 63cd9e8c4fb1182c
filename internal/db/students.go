package db

import (
	"context"
	"time"

	"academy-ledger/internal/domain"
)

const studentColumns = `s.id, s.first_name, s.last_name, s.birthdate, s.guardian_name, s.guardian_phone,
	s.guardian_email, s.category_id, c.name, s.enrolled_at, s.status, s.created_at, s.updated_at`

func scanStudent(row scanner) (domain.Student, error) {
	var s domain.Student
	err := row.Scan(
		&s.ID,
		&s.FirstName,
		&s.LastName,
		&s.Birthdate,
		&s.GuardianName,
		&s.GuardianPhone,
		&s.GuardianEmail,
		&s.CategoryID,
		&s.CategoryName,
		&s.EnrolledAt,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

const getStudent = `SELECT ` + studentColumns + `
FROM students s
JOIN categories c ON c.id = s.category_id
WHERE s.id = ?`

func (q *Queries) GetStudent(ctx context.Context, id string) (domain.Student, error) {
	return scanStudent(q.db.QueryRowContext(ctx, getStudent, id))
}

const listStudents = `SELECT ` + studentColumns + `
FROM students s
JOIN categories c ON c.id = s.category_id
WHERE (?1 IS NULL OR s.status = ?1)
  AND (?2 = '' OR s.category_id = ?2)
ORDER BY s.first_name, s.last_name`

type ListStudentsParams struct {
	Status     *domain.StudentStatus
	CategoryID string
}

func (q *Queries) ListStudents(ctx context.Context, arg ListStudentsParams) ([]domain.Student, error) {
	rows, err := q.db.QueryContext(ctx, listStudents, arg.Status, arg.CategoryID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanStudent)
}

const countStudentsByStatus = `SELECT COUNT(*) FROM students WHERE status = ?`

func (q *Queries) CountStudentsByStatus(ctx context.Context, status domain.StudentStatus) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countStudentsByStatus, status).Scan(&count)
	return count, err
}

const createStudent = `INSERT INTO students (
	id, first_name, last_name, birthdate, guardian_name, guardian_phone,
	guardian_email, category_id, enrolled_at, status, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateStudent(ctx context.Context, s domain.Student) error {
	_, err := q.db.ExecContext(ctx, createStudent,
		s.ID,
		s.FirstName,
		s.LastName,
		s.Birthdate,
		s.GuardianName,
		s.GuardianPhone,
		s.GuardianEmail,
		s.CategoryID,
		s.EnrolledAt,
		s.Status,
		s.CreatedAt,
		s.UpdatedAt,
	)
	return err
}

const updateStudent = `UPDATE students SET
	first_name = ?, last_name = ?, birthdate = ?, guardian_name = ?, guardian_phone = ?,
	guardian_email = ?, category_id = ?, enrolled_at = ?, status = ?, updated_at = ?
WHERE id = ?`

func (q *Queries) UpdateStudent(ctx context.Context, s domain.Student) (int64, error) {
	return affected(q.db.ExecContext(ctx, updateStudent,
		s.FirstName,
		s.LastName,
		s.Birthdate,
		s.GuardianName,
		s.GuardianPhone,
		s.GuardianEmail,
		s.CategoryID,
		s.EnrolledAt,
		s.Status,
		s.UpdatedAt,
		s.ID,
	))
}

const setStudentStatus = `UPDATE students SET status = ?, updated_at = ? WHERE id = ?`

func (q *Queries) SetStudentStatus(ctx context.Context, id string, status domain.StudentStatus, updatedAt time.Time) (int64, error) {
	return affected(q.db.ExecContext(ctx, setStudentStatus, status, updatedAt, id))
}
