package service

import (
	"context"

	"academy-ledger/internal/config"
	"academy-ledger/internal/constants"
	"academy-ledger/internal/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type GameService struct {
	games    GameStore
	leagues  LeagueStore
	students StudentStore
	now      clock
	logger   zerolog.Logger
}

func NewGameService(games GameStore, leagues LeagueStore, students StudentStore, cfg *config.Config, logger zerolog.Logger) *GameService {
	return &GameService{
		games:    games,
		leagues:  leagues,
		students: students,
		now:      newClock(cfg),
		logger:   logger,
	}
}

type GoalInput struct {
	StudentID string `json:"studentId" validate:"required"`
	Minute    int    `json:"minute" validate:"gte=0,lte=120"`
}

type CreateGameInput struct {
	LeagueID        *string         `json:"leagueId"`
	Date            domain.Date     `json:"date" validate:"required"`
	Opponent        string          `json:"opponent" validate:"required,max=100"`
	Location        string          `json:"location" validate:"max=200"`
	GameType        domain.GameType `json:"gameType" validate:"required,enum"`
	ArbitrageFeeUSD decimal.Decimal `json:"arbitrageFeeUsd" validate:"gte=0"`
	GoalsFor        *int            `json:"goalsFor" validate:"omitempty,gte=0"`
	GoalsAgainst    *int            `json:"goalsAgainst" validate:"omitempty,gte=0"`
	Goals           []GoalInput     `json:"goals" validate:"omitempty,dive"`
}

// UpdateGameInput changes only the fields that are set. A non-nil Goals
// replaces the whole goal list.
type UpdateGameInput struct {
	LeagueID        *string          `json:"leagueId"`
	Date            *domain.Date     `json:"date"`
	Opponent        *string          `json:"opponent" validate:"omitempty,min=1,max=100"`
	Location        *string          `json:"location" validate:"omitempty,max=200"`
	GameType        *domain.GameType `json:"gameType" validate:"omitempty,enum"`
	ArbitrageFeeUSD *decimal.Decimal `json:"arbitrageFeeUsd" validate:"omitempty,gte=0"`
	GoalsFor        *int             `json:"goalsFor" validate:"omitempty,gte=0"`
	GoalsAgainst    *int             `json:"goalsAgainst" validate:"omitempty,gte=0"`
	Goals           *[]GoalInput     `json:"goals" validate:"omitempty,dive"`
}

type AttendanceInput struct {
	StudentID  string `json:"studentId" validate:"required"`
	Attended   *bool  `json:"attended" validate:"required"`
	RecordedBy string `json:"recordedBy" validate:"max=100"`
}

type BulkAttendanceEntry struct {
	StudentID string `json:"studentId" validate:"required"`
	Attended  bool   `json:"attended"`
}

type BulkAttendanceInput struct {
	Attendances []BulkAttendanceEntry `json:"attendances" validate:"required,min=1,max=200,dive"`
	RecordedBy  string                `json:"recordedBy" validate:"max=100"`
}

type BulkAttendanceResult struct {
	Updated     int                     `json:"updated"`
	Attendances []domain.GameAttendance `json:"attendances"`
}

func (s *GameService) List(ctx context.Context) ([]domain.GameSummary, error) {
	return s.games.List(ctx)
}

func (s *GameService) Get(ctx context.Context, id string) (*domain.GameDetail, error) {
	game, err := s.games.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	attendances, err := s.games.Attendances(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.GameDetail{GameSummary: *game, Attendances: attendances}, nil
}

func (s *GameService) Create(ctx context.Context, in CreateGameInput) (*domain.GameSummary, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	game := &domain.Game{
		LeagueID:        optionalID(in.LeagueID),
		Date:            in.Date,
		Opponent:        in.Opponent,
		Location:        in.Location,
		GameType:        in.GameType,
		ArbitrageFeeUSD: in.ArbitrageFeeUSD,
		GoalsFor:        in.GoalsFor,
		GoalsAgainst:    in.GoalsAgainst,
		Goals:           toGoals(in.Goals),
	}
	if err := s.checkLeague(ctx, game); err != nil {
		return nil, err
	}

	created, err := s.games.Create(ctx, game)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("game_id", created.ID).Str("game_type", string(created.GameType)).Msg("game created")
	return created, nil
}

func (s *GameService) Update(ctx context.Context, id string, in UpdateGameInput) (*domain.GameSummary, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	current, err := s.games.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	game := current.Game

	if in.LeagueID != nil {
		game.LeagueID = optionalID(in.LeagueID)
	}
	if in.Date != nil && !in.Date.IsZero() {
		game.Date = *in.Date
	}
	if in.Opponent != nil {
		game.Opponent = *in.Opponent
	}
	if in.Location != nil {
		game.Location = *in.Location
	}
	if in.GameType != nil {
		game.GameType = *in.GameType
	}
	if in.ArbitrageFeeUSD != nil {
		game.ArbitrageFeeUSD = *in.ArbitrageFeeUSD
	}
	if in.GoalsFor != nil {
		game.GoalsFor = in.GoalsFor
	}
	if in.GoalsAgainst != nil {
		game.GoalsAgainst = in.GoalsAgainst
	}
	replaceGoals := in.Goals != nil
	if replaceGoals {
		game.Goals = toGoals(*in.Goals)
	}

	if err := s.checkLeague(ctx, &game); err != nil {
		return nil, err
	}

	updated, err := s.games.Update(ctx, &game, replaceGoals)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("game_id", id).Bool("goals_replaced", replaceGoals).Msg("game updated")
	return updated, nil
}

// checkLeague requires league games to name an existing league.
func (s *GameService) checkLeague(ctx context.Context, game *domain.Game) error {
	if game.LeagueID == nil {
		if game.GameType == domain.GameTypeLeague {
			return domain.NewValidationError("leagueId", "is required for league games")
		}
		return nil
	}
	ok, err := s.leagues.Exists(ctx, *game.LeagueID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewNotFound("league", *game.LeagueID)
	}
	return nil
}

// EligibleStudents lists every active student with the attendance already
// recorded for the game, if any.
func (s *GameService) EligibleStudents(ctx context.Context, gameID string) ([]domain.EligibleStudent, error) {
	if err := s.requireGame(ctx, gameID); err != nil {
		return nil, err
	}
	return s.games.EligibleStudents(ctx, gameID)
}

// RecordAttendance upserts the (student, game) record. The bool reports
// whether a new record was created rather than an existing one updated.
func (s *GameService) RecordAttendance(ctx context.Context, gameID string, in AttendanceInput) (*domain.GameAttendance, bool, error) {
	if err := validateInput(in); err != nil {
		return nil, false, err
	}
	if err := s.requireGame(ctx, gameID); err != nil {
		return nil, false, err
	}
	if _, err := s.students.Get(ctx, in.StudentID); err != nil {
		return nil, false, err
	}

	attendance, created, err := s.games.RecordAttendance(ctx, domain.GameAttendance{
		StudentID:  in.StudentID,
		GameID:     gameID,
		Attended:   *in.Attended,
		RecordedBy: orDefault(in.RecordedBy, constants.DefaultRecordedBy),
		RecordedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, false, err
	}

	s.logger.Info().
		Str("game_id", gameID).
		Str("student_id", in.StudentID).
		Bool("attended", attendance.Attended).
		Bool("created", created).
		Msg("attendance recorded")
	return attendance, created, nil
}

// RecordAttendanceBulk applies every entry in one transaction; an unknown
// student aborts the whole batch.
func (s *GameService) RecordAttendanceBulk(ctx context.Context, gameID string, in BulkAttendanceInput) (*BulkAttendanceResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := s.requireGame(ctx, gameID); err != nil {
		return nil, err
	}

	recordedBy := orDefault(in.RecordedBy, constants.DefaultRecordedBy)
	recordedAt := s.now().UTC()

	records := make([]domain.GameAttendance, len(in.Attendances))
	for i, entry := range in.Attendances {
		records[i] = domain.GameAttendance{
			StudentID:  entry.StudentID,
			GameID:     gameID,
			Attended:   entry.Attended,
			RecordedBy: recordedBy,
			RecordedAt: recordedAt,
		}
	}

	saved, err := s.games.RecordAttendanceBatch(ctx, records)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("game_id", gameID).Int("updated", len(saved)).Msg("bulk attendance recorded")
	return &BulkAttendanceResult{Updated: len(saved), Attendances: saved}, nil
}

func (s *GameService) requireGame(ctx context.Context, id string) error {
	ok, err := s.games.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewNotFound("game", id)
	}
	return nil
}

func toGoals(in []GoalInput) []domain.Goal {
	goals := make([]domain.Goal, len(in))
	for i, g := range in {
		goals[i] = domain.Goal{StudentID: g.StudentID, Minute: g.Minute}
	}
	return goals
}
