package repository

import (
	"context"
	"database/sql"
	"fmt"

	"academy-ledger/internal/constants"
	"academy-ledger/internal/db"
	"academy-ledger/internal/domain"

	"github.com/rs/zerolog"
)

type GameRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewGameRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *GameRepository {
	return &GameRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *GameRepository) List(ctx context.Context) ([]domain.GameSummary, error) {
	games, err := r.queries.ListGameSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

func (r *GameRepository) Get(ctx context.Context, id string) (*domain.GameSummary, error) {
	game, err := r.queries.GetGameSummary(ctx, id)
	if err != nil {
		return nil, notFound(err, "game", id)
	}

	goals, err := r.queries.ListGoalsByGame(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals for game %s: %w", id, err)
	}
	game.Goals = goals

	return &game, nil
}

func (r *GameRepository) Attendances(ctx context.Context, gameID string) ([]domain.AttendanceDetail, error) {
	attendances, err := r.queries.ListAttendancesByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances for game %s: %w", gameID, err)
	}
	return attendances, nil
}

func (r *GameRepository) AttendancesForStudent(ctx context.Context, studentID string) ([]domain.AttendanceWithGame, error) {
	attendances, err := r.queries.ListAttendancesWithGameByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances for student %s: %w", studentID, err)
	}
	return attendances, nil
}

func (r *GameRepository) EligibleStudents(ctx context.Context, gameID string) ([]domain.EligibleStudent, error) {
	students, err := r.queries.ListEligibleStudents(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list eligible students for game %s: %w", gameID, err)
	}
	return students, nil
}

func (r *GameRepository) Exists(ctx context.Context, id string) (bool, error) {
	ok, err := r.queries.GameExists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to check game %s: %w", id, err)
	}
	return ok, nil
}

func (r *GameRepository) Create(ctx context.Context, game *domain.Game) (*domain.GameSummary, error) {
	if err := ensureID(&game.ID); err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	if err := qtx.CreateGame(ctx, *game); err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.NewNotFound("league", deref(game.LeagueID))
		}
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	if err := r.insertGoals(ctx, qtx, game.ID, game.Goals); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit game %s: %w", game.ID, err)
	}
	return r.Get(ctx, game.ID)
}

// Update writes the game row and, when replaceGoals is set, swaps the
// whole goal list in the same transaction.
func (r *GameRepository) Update(ctx context.Context, game *domain.Game, replaceGoals bool) (*domain.GameSummary, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	n, err := qtx.UpdateGame(ctx, *game)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.NewNotFound("league", deref(game.LeagueID))
		}
		return nil, fmt.Errorf("failed to update game %s: %w", game.ID, err)
	}
	if n == 0 {
		return nil, domain.NewNotFound("game", game.ID)
	}

	if replaceGoals {
		if err := qtx.DeleteGoalsByGame(ctx, game.ID); err != nil {
			return nil, fmt.Errorf("failed to clear goals for game %s: %w", game.ID, err)
		}
		if err := r.insertGoals(ctx, qtx, game.ID, game.Goals); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit game %s: %w", game.ID, err)
	}
	return r.Get(ctx, game.ID)
}

func (r *GameRepository) insertGoals(ctx context.Context, qtx *db.Queries, gameID string, goals []domain.Goal) error {
	for _, goal := range goals {
		goal.GameID = gameID
		goal.ID = ""
		if err := ensureID(&goal.ID); err != nil {
			return err
		}
		if err := qtx.CreateGoal(ctx, goal); err != nil {
			if isForeignKeyViolation(err) {
				return domain.NewNotFound("student", goal.StudentID)
			}
			if isCheckViolation(err) {
				return domain.NewValidationError("goals", fmt.Sprintf("minute %d out of range", goal.Minute))
			}
			return fmt.Errorf("failed to create goal for game %s: %w", gameID, err)
		}
	}
	return nil
}

// RecordAttendance upserts the (student, game) record and reports whether a
// new row was inserted.
func (r *GameRepository) RecordAttendance(ctx context.Context, attendance domain.GameAttendance) (*domain.GameAttendance, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	saved, created, err := r.upsertAttendance(ctx, r.queries.WithTx(tx), attendance)
	if err != nil {
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("failed to commit attendance: %w", err)
	}
	return saved, created, nil
}

// RecordAttendanceBatch applies every upsert in one transaction. Either all
// records are written or none are.
func (r *GameRepository) RecordAttendanceBatch(ctx context.Context, attendances []domain.GameAttendance) ([]domain.GameAttendance, error) {
	if len(attendances) == 0 {
		return []domain.GameAttendance{}, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	results := make([]domain.GameAttendance, 0, len(attendances))

	for i := 0; i < len(attendances); i += constants.DBBatchSize {
		end := min(i+constants.DBBatchSize, len(attendances))

		for _, attendance := range attendances[i:end] {
			saved, _, err := r.upsertAttendance(ctx, qtx, attendance)
			if err != nil {
				return nil, err
			}
			results = append(results, *saved)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit attendance batch: %w", err)
	}

	r.logger.Debug().Int("count", len(results)).Msg("attendance batch recorded")
	return results, nil
}

func (r *GameRepository) upsertAttendance(ctx context.Context, qtx *db.Queries, attendance domain.GameAttendance) (*domain.GameAttendance, bool, error) {
	attendance.ID = ""
	if err := ensureID(&attendance.ID); err != nil {
		return nil, false, err
	}

	if err := qtx.UpsertAttendance(ctx, attendance); err != nil {
		if isForeignKeyViolation(err) {
			return nil, false, domain.NewNotFound("student", attendance.StudentID)
		}
		return nil, false, fmt.Errorf("failed to record attendance for student %s: %w", attendance.StudentID, err)
	}

	saved, err := qtx.GetAttendance(ctx, attendance.StudentID, attendance.GameID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read back attendance for student %s: %w", attendance.StudentID, err)
	}

	// an existing row keeps its original id
	return &saved, saved.ID == attendance.ID, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
