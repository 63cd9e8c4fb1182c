package db

import (
	"context"

	"academy-ledger/internal/domain"
)

const listCategoriesWithCount = `SELECT c.id, c.name, c.min_age, c.max_age,
	(SELECT COUNT(*) FROM students s WHERE s.category_id = c.id AND s.status = 'active')
FROM categories c
ORDER BY c.min_age`

func (q *Queries) ListCategoriesWithCount(ctx context.Context) ([]domain.CategoryWithCount, error) {
	rows, err := q.db.QueryContext(ctx, listCategoriesWithCount)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row scanner) (domain.CategoryWithCount, error) {
		var c domain.CategoryWithCount
		err := row.Scan(&c.ID, &c.Name, &c.MinAge, &c.MaxAge, &c.StudentCount)
		return c, err
	})
}

const getCategory = `SELECT id, name, min_age, max_age FROM categories WHERE id = ?`

func (q *Queries) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	var c domain.Category
	err := q.db.QueryRowContext(ctx, getCategory, id).Scan(&c.ID, &c.Name, &c.MinAge, &c.MaxAge)
	return c, err
}

const leagueSummaryColumns = `l.id, l.name, l.year, l.category_id, l.fee_amount_usd, c.name,
	(SELECT COUNT(*) FROM league_enrollments e WHERE e.league_id = l.id)`

func scanLeagueSummary(row scanner) (domain.LeagueSummary, error) {
	var l domain.LeagueSummary
	err := row.Scan(&l.ID, &l.Name, &l.Year, &l.CategoryID, &l.FeeAmountUSD, &l.CategoryName, &l.EnrollmentCount)
	return l, err
}

const listLeagueSummaries = `SELECT ` + leagueSummaryColumns + `
FROM leagues l
JOIN categories c ON c.id = l.category_id
ORDER BY l.year DESC, l.name`

func (q *Queries) ListLeagueSummaries(ctx context.Context) ([]domain.LeagueSummary, error) {
	rows, err := q.db.QueryContext(ctx, listLeagueSummaries)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanLeagueSummary)
}

const getLeagueSummary = `SELECT ` + leagueSummaryColumns + `
FROM leagues l
JOIN categories c ON c.id = l.category_id
WHERE l.id = ?`

func (q *Queries) GetLeagueSummary(ctx context.Context, id string) (domain.LeagueSummary, error) {
	return scanLeagueSummary(q.db.QueryRowContext(ctx, getLeagueSummary, id))
}

const createLeague = `INSERT INTO leagues (id, name, year, category_id, fee_amount_usd) VALUES (?, ?, ?, ?, ?)`

func (q *Queries) CreateLeague(ctx context.Context, l domain.League) error {
	_, err := q.db.ExecContext(ctx, createLeague, l.ID, l.Name, l.Year, l.CategoryID, l.FeeAmountUSD)
	return err
}

const createEnrollment = `INSERT INTO league_enrollments (id, student_id, league_id, enrolled_at) VALUES (?, ?, ?, ?)`

func (q *Queries) CreateEnrollment(ctx context.Context, e domain.LeagueEnrollment) error {
	_, err := q.db.ExecContext(ctx, createEnrollment, e.ID, e.StudentID, e.LeagueID, e.EnrolledAt)
	return err
}

const deleteEnrollment = `DELETE FROM league_enrollments WHERE student_id = ? AND league_id = ?`

func (q *Queries) DeleteEnrollment(ctx context.Context, studentID, leagueID string) (int64, error) {
	return affected(q.db.ExecContext(ctx, deleteEnrollment, studentID, leagueID))
}

const listEnrollmentsByLeague = `SELECT e.id, e.student_id, e.league_id, e.enrolled_at, s.first_name || ' ' || s.last_name
FROM league_enrollments e
JOIN students s ON s.id = e.student_id
WHERE e.league_id = ?
ORDER BY s.first_name, s.last_name`

func (q *Queries) ListEnrollmentsByLeague(ctx context.Context, leagueID string) ([]domain.EnrollmentDetail, error) {
	rows, err := q.db.QueryContext(ctx, listEnrollmentsByLeague, leagueID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row scanner) (domain.EnrollmentDetail, error) {
		var e domain.EnrollmentDetail
		err := row.Scan(&e.ID, &e.StudentID, &e.LeagueID, &e.EnrolledAt, &e.StudentName)
		return e, err
	})
}

const listEnrollmentsWithLeagueByStudent = `SELECT e.id, e.student_id, e.league_id, e.enrolled_at,
	l.id, l.name, l.year, l.category_id, l.fee_amount_usd
FROM league_enrollments e
JOIN leagues l ON l.id = e.league_id
WHERE e.student_id = ?
ORDER BY e.enrolled_at`

func (q *Queries) ListEnrollmentsWithLeagueByStudent(ctx context.Context, studentID string) ([]domain.EnrollmentWithLeague, error) {
	rows, err := q.db.QueryContext(ctx, listEnrollmentsWithLeagueByStudent, studentID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row scanner) (domain.EnrollmentWithLeague, error) {
		var e domain.EnrollmentWithLeague
		err := row.Scan(
			&e.ID, &e.StudentID, &e.LeagueID, &e.EnrolledAt,
			&e.League.ID, &e.League.Name, &e.League.Year, &e.League.CategoryID, &e.League.FeeAmountUSD,
		)
		return e, err
	})
}
