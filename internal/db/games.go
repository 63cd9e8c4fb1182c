package db

import (
	"context"

	"academy-ledger/internal/domain"
)

const gameSummaryColumns = `g.id, g.league_id, g.date, g.opponent, g.location, g.game_type, g.arbitrage_fee_usd,
	g.goals_for, g.goals_against, COALESCE(l.name, ''), COALESCE(c.name, '')`

func scanGameSummary(row scanner) (domain.GameSummary, error) {
	var g domain.GameSummary
	err := row.Scan(
		&g.ID,
		&g.LeagueID,
		&g.Date,
		&g.Opponent,
		&g.Location,
		&g.GameType,
		&g.ArbitrageFeeUSD,
		&g.GoalsFor,
		&g.GoalsAgainst,
		&g.LeagueName,
		&g.CategoryName,
	)
	return g, err
}

const listGameSummaries = `SELECT ` + gameSummaryColumns + `
FROM games g
LEFT JOIN leagues l ON l.id = g.league_id
LEFT JOIN categories c ON c.id = l.category_id
ORDER BY g.date DESC`

func (q *Queries) ListGameSummaries(ctx context.Context) ([]domain.GameSummary, error) {
	rows, err := q.db.QueryContext(ctx, listGameSummaries)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanGameSummary)
}

const getGameSummary = `SELECT ` + gameSummaryColumns + `
FROM games g
LEFT JOIN leagues l ON l.id = g.league_id
LEFT JOIN categories c ON c.id = l.category_id
WHERE g.id = ?`

func (q *Queries) GetGameSummary(ctx context.Context, id string) (domain.GameSummary, error) {
	return scanGameSummary(q.db.QueryRowContext(ctx, getGameSummary, id))
}

const createGame = `INSERT INTO games (
	id, league_id, date, opponent, location, game_type, arbitrage_fee_usd, goals_for, goals_against
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateGame(ctx context.Context, g domain.Game) error {
	_, err := q.db.ExecContext(ctx, createGame,
		g.ID,
		g.LeagueID,
		g.Date,
		g.Opponent,
		g.Location,
		g.GameType,
		g.ArbitrageFeeUSD,
		g.GoalsFor,
		g.GoalsAgainst,
	)
	return err
}

const updateGame = `UPDATE games SET
	league_id = ?, date = ?, opponent = ?, location = ?, game_type = ?,
	arbitrage_fee_usd = ?, goals_for = ?, goals_against = ?
WHERE id = ?`

func (q *Queries) UpdateGame(ctx context.Context, g domain.Game) (int64, error) {
	return affected(q.db.ExecContext(ctx, updateGame,
		g.LeagueID,
		g.Date,
		g.Opponent,
		g.Location,
		g.GameType,
		g.ArbitrageFeeUSD,
		g.GoalsFor,
		g.GoalsAgainst,
		g.ID,
	))
}

const listGoalsByGame = `SELECT gl.id, gl.game_id, gl.student_id, s.first_name || ' ' || s.last_name, gl.minute
FROM goals gl
JOIN students s ON s.id = gl.student_id
WHERE gl.game_id = ?
ORDER BY gl.minute, gl.id`

func (q *Queries) ListGoalsByGame(ctx context.Context, gameID string) ([]domain.Goal, error) {
	rows, err := q.db.QueryContext(ctx, listGoalsByGame, gameID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row scanner) (domain.Goal, error) {
		var g domain.Goal
		err := row.Scan(&g.ID, &g.GameID, &g.StudentID, &g.StudentName, &g.Minute)
		return g, err
	})
}

const deleteGoalsByGame = `DELETE FROM goals WHERE game_id = ?`

func (q *Queries) DeleteGoalsByGame(ctx context.Context, gameID string) error {
	_, err := q.db.ExecContext(ctx, deleteGoalsByGame, gameID)
	return err
}

const createGoal = `INSERT INTO goals (id, game_id, student_id, minute) VALUES (?, ?, ?, ?)`

func (q *Queries) CreateGoal(ctx context.Context, g domain.Goal) error {
	_, err := q.db.ExecContext(ctx, createGoal, g.ID, g.GameID, g.StudentID, g.Minute)
	return err
}

const attendanceColumns = `a.id, a.student_id, a.game_id, a.attended, a.recorded_by, a.recorded_at`

const upsertAttendance = `INSERT INTO game_attendances (id, student_id, game_id, attended, recorded_by, recorded_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (student_id, game_id) DO UPDATE SET
	attended = excluded.attended,
	recorded_by = excluded.recorded_by,
	recorded_at = excluded.recorded_at`

// UpsertAttendance inserts the record or overwrites the attended flag and
// recorder of the existing (student, game) row, keeping its id.
func (q *Queries) UpsertAttendance(ctx context.Context, a domain.GameAttendance) error {
	_, err := q.db.ExecContext(ctx, upsertAttendance, a.ID, a.StudentID, a.GameID, a.Attended, a.RecordedBy, a.RecordedAt)
	return err
}

const getAttendance = `SELECT ` + attendanceColumns + `
FROM game_attendances a
WHERE a.student_id = ? AND a.game_id = ?`

func (q *Queries) GetAttendance(ctx context.Context, studentID, gameID string) (domain.GameAttendance, error) {
	var a domain.GameAttendance
	err := q.db.QueryRowContext(ctx, getAttendance, studentID, gameID).Scan(
		&a.ID, &a.StudentID, &a.GameID, &a.Attended, &a.RecordedBy, &a.RecordedAt,
	)
	return a, err
}

const listAttendancesByGame = `SELECT ` + attendanceColumns + `, s.first_name || ' ' || s.last_name
FROM game_attendances a
JOIN students s ON s.id = a.student_id
WHERE a.game_id = ?
ORDER BY s.first_name, s.last_name`

func (q *Queries) ListAttendancesByGame(ctx context.Context, gameID string) ([]domain.AttendanceDetail, error) {
	rows, err := q.db.QueryContext(ctx, listAttendancesByGame, gameID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row scanner) (domain.AttendanceDetail, error) {
		var a domain.AttendanceDetail
		err := row.Scan(&a.ID, &a.StudentID, &a.GameID, &a.Attended, &a.RecordedBy, &a.RecordedAt, &a.StudentName)
		return a, err
	})
}

const listAttendancesWithGameByStudent = `SELECT ` + attendanceColumns + `,
	g.id, g.league_id, g.date, g.opponent, g.location, g.game_type, g.arbitrage_fee_usd, g.goals_for, g.goals_against
FROM game_attendances a
JOIN games g ON g.id = a.game_id
WHERE a.student_id = ?
ORDER BY g.date`

func (q *Queries) ListAttendancesWithGameByStudent(ctx context.Context, studentID string) ([]domain.AttendanceWithGame, error) {
	rows, err := q.db.QueryContext(ctx, listAttendancesWithGameByStudent, studentID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row scanner) (domain.AttendanceWithGame, error) {
		var a domain.AttendanceWithGame
		err := row.Scan(
			&a.ID, &a.StudentID, &a.GameID, &a.Attended, &a.RecordedBy, &a.RecordedAt,
			&a.Game.ID, &a.Game.LeagueID, &a.Game.Date, &a.Game.Opponent, &a.Game.Location,
			&a.Game.GameType, &a.Game.ArbitrageFeeUSD, &a.Game.GoalsFor, &a.Game.GoalsAgainst,
		)
		return a, err
	})
}

const listEligibleStudents = `SELECT ` + studentColumns + `, COALESCE(a.attended, 0), a.id IS NOT NULL
FROM students s
JOIN categories c ON c.id = s.category_id
LEFT JOIN game_attendances a ON a.student_id = s.id AND a.game_id = ?
WHERE s.status = 'active'
ORDER BY s.first_name, s.last_name`

func (q *Queries) ListEligibleStudents(ctx context.Context, gameID string) ([]domain.EligibleStudent, error) {
	rows, err := q.db.QueryContext(ctx, listEligibleStudents, gameID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row scanner) (domain.EligibleStudent, error) {
		var e domain.EligibleStudent
		err := row.Scan(
			&e.ID,
			&e.FirstName,
			&e.LastName,
			&e.Birthdate,
			&e.GuardianName,
			&e.GuardianPhone,
			&e.GuardianEmail,
			&e.CategoryID,
			&e.CategoryName,
			&e.EnrolledAt,
			&e.Status,
			&e.CreatedAt,
			&e.UpdatedAt,
			&e.Attended,
			&e.AttendanceRecorded,
		)
		return e, err
	})
}

