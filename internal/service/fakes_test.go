package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"academy-ledger/internal/config"
	"academy-ledger/internal/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// In-memory stores for exercising the use cases without sqlite.

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func testConfig() *config.Config {
	return &config.Config{
		Location:             time.UTC,
		DefaultMonthlyFeeUSD: decimal.NewFromInt(50),
		DefaultCurrency:      "LOCAL",
		LocalCurrencyCode:    "VES",
	}
}

var nop = zerolog.Nop()

type memStudents struct {
	mu   sync.Mutex
	rows map[string]domain.Student
	seq  int
}

func newMemStudents(students ...domain.Student) *memStudents {
	m := &memStudents{rows: map[string]domain.Student{}}
	for _, s := range students {
		m.rows[s.ID] = s
	}
	return m
}

func (m *memStudents) Get(_ context.Context, id string) (*domain.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return nil, domain.NewNotFound("student", id)
	}
	return &s, nil
}

func (m *memStudents) List(_ context.Context, filter domain.StudentFilter) ([]domain.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Student{}
	for _, s := range m.rows {
		if filter.Status != nil && s.Status != *filter.Status {
			continue
		}
		if filter.CategoryID != "" && s.CategoryID != filter.CategoryID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *memStudents) CountActive(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.rows {
		if s.Status == domain.StudentActive {
			n++
		}
	}
	return n, nil
}

func (m *memStudents) Create(_ context.Context, s *domain.Student) (*domain.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	s.ID = fmt.Sprintf("stu-%d", m.seq)
	m.rows[s.ID] = *s
	return s, nil
}

func (m *memStudents) Update(_ context.Context, s *domain.Student) (*domain.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[s.ID]; !ok {
		return nil, domain.NewNotFound("student", s.ID)
	}
	m.rows[s.ID] = *s
	return s, nil
}

func (m *memStudents) Deactivate(_ context.Context, id string, at time.Time) (*domain.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return nil, domain.NewNotFound("student", id)
	}
	s.Status = domain.StudentInactive
	s.UpdatedAt = at
	m.rows[id] = s
	return &s, nil
}

type memLeagues struct {
	mu          sync.Mutex
	leagues     map[string]domain.League
	enrollments []domain.LeagueEnrollment
}

func newMemLeagues(leagues ...domain.League) *memLeagues {
	m := &memLeagues{leagues: map[string]domain.League{}}
	for _, l := range leagues {
		m.leagues[l.ID] = l
	}
	return m
}

func (m *memLeagues) List(_ context.Context) ([]domain.LeagueSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.LeagueSummary{}
	for _, l := range m.leagues {
		out = append(out, domain.LeagueSummary{League: l})
	}
	return out, nil
}

func (m *memLeagues) Get(_ context.Context, id string) (*domain.LeagueSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.leagues[id]
	if !ok {
		return nil, domain.NewNotFound("league", id)
	}
	return &domain.LeagueSummary{League: l}, nil
}

func (m *memLeagues) Exists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.leagues[id]
	return ok, nil
}

func (m *memLeagues) Create(_ context.Context, l *domain.League) (*domain.LeagueSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.ID = fmt.Sprintf("lg-%d", len(m.leagues)+1)
	m.leagues[l.ID] = *l
	return &domain.LeagueSummary{League: *l}, nil
}

func (m *memLeagues) Enrollments(_ context.Context, leagueID string) ([]domain.EnrollmentDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.EnrollmentDetail{}
	for _, e := range m.enrollments {
		if e.LeagueID == leagueID {
			out = append(out, domain.EnrollmentDetail{LeagueEnrollment: e})
		}
	}
	return out, nil
}

func (m *memLeagues) EnrollmentsForStudent(_ context.Context, studentID string) ([]domain.EnrollmentWithLeague, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.EnrollmentWithLeague{}
	for _, e := range m.enrollments {
		if e.StudentID == studentID {
			out = append(out, domain.EnrollmentWithLeague{LeagueEnrollment: e, League: m.leagues[e.LeagueID]})
		}
	}
	return out, nil
}

func (m *memLeagues) Enroll(_ context.Context, e *domain.LeagueEnrollment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.enrollments {
		if existing.StudentID == e.StudentID && existing.LeagueID == e.LeagueID {
			return &domain.DuplicateEnrollmentError{StudentID: e.StudentID, LeagueID: e.LeagueID}
		}
	}
	e.ID = fmt.Sprintf("enr-%d", len(m.enrollments)+1)
	m.enrollments = append(m.enrollments, *e)
	return nil
}

func (m *memLeagues) Unenroll(_ context.Context, studentID, leagueID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.enrollments {
		if e.StudentID == studentID && e.LeagueID == leagueID {
			m.enrollments = append(m.enrollments[:i], m.enrollments[i+1:]...)
			return nil
		}
	}
	return domain.NewNotFound("enrollment", studentID+"/"+leagueID)
}

type memGames struct {
	mu          sync.Mutex
	games       map[string]domain.Game
	attendances []domain.GameAttendance
}

func newMemGames(games ...domain.Game) *memGames {
	m := &memGames{games: map[string]domain.Game{}}
	for _, g := range games {
		m.games[g.ID] = g
	}
	return m
}

func (m *memGames) List(_ context.Context) ([]domain.GameSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.GameSummary{}
	for _, g := range m.games {
		out = append(out, domain.GameSummary{Game: g})
	}
	return out, nil
}

func (m *memGames) Get(_ context.Context, id string) (*domain.GameSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return nil, domain.NewNotFound("game", id)
	}
	return &domain.GameSummary{Game: g}, nil
}

func (m *memGames) Exists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.games[id]
	return ok, nil
}

func (m *memGames) Create(_ context.Context, g *domain.Game) (*domain.GameSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g.ID = fmt.Sprintf("gm-%d", len(m.games)+1)
	m.games[g.ID] = *g
	return &domain.GameSummary{Game: *g}, nil
}

func (m *memGames) Update(_ context.Context, g *domain.Game, replaceGoals bool) (*domain.GameSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.games[g.ID]
	if !ok {
		return nil, domain.NewNotFound("game", g.ID)
	}
	next := *g
	if !replaceGoals {
		next.Goals = current.Goals
	}
	m.games[g.ID] = next
	return &domain.GameSummary{Game: next}, nil
}

func (m *memGames) Attendances(_ context.Context, gameID string) ([]domain.AttendanceDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.AttendanceDetail{}
	for _, a := range m.attendances {
		if a.GameID == gameID {
			out = append(out, domain.AttendanceDetail{GameAttendance: a})
		}
	}
	return out, nil
}

func (m *memGames) AttendancesForStudent(_ context.Context, studentID string) ([]domain.AttendanceWithGame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.AttendanceWithGame{}
	for _, a := range m.attendances {
		if a.StudentID == studentID {
			out = append(out, domain.AttendanceWithGame{GameAttendance: a, Game: m.games[a.GameID]})
		}
	}
	return out, nil
}

func (m *memGames) EligibleStudents(_ context.Context, _ string) ([]domain.EligibleStudent, error) {
	return []domain.EligibleStudent{}, nil
}

func (m *memGames) RecordAttendance(_ context.Context, a domain.GameAttendance) (*domain.GameAttendance, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved, created := m.upsert(a)
	return &saved, created, nil
}

func (m *memGames) RecordAttendanceBatch(_ context.Context, records []domain.GameAttendance) ([]domain.GameAttendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.GameAttendance, 0, len(records))
	for _, a := range records {
		saved, _ := m.upsert(a)
		out = append(out, saved)
	}
	return out, nil
}

func (m *memGames) upsert(a domain.GameAttendance) (domain.GameAttendance, bool) {
	for i, existing := range m.attendances {
		if existing.StudentID == a.StudentID && existing.GameID == a.GameID {
			a.ID = existing.ID
			m.attendances[i] = a
			return a, false
		}
	}
	a.ID = fmt.Sprintf("att-%d", len(m.attendances)+1)
	m.attendances = append(m.attendances, a)
	return a, true
}

type memPayments struct {
	mu   sync.Mutex
	rows []domain.Payment
	// listCalls counts ListPlain calls so tests can assert reads are fresh
	listCalls int
}

func (m *memPayments) Get(_ context.Context, id string) (*domain.PaymentDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.rows {
		if p.ID == id {
			return &domain.PaymentDetail{Payment: p}, nil
		}
	}
	return nil, domain.NewNotFound("payment", id)
}

func (m *memPayments) List(ctx context.Context, filter domain.PaymentFilter) ([]domain.PaymentDetail, error) {
	plain, _ := m.ListPlain(ctx, filter)
	out := make([]domain.PaymentDetail, len(plain))
	for i, p := range plain {
		out[i] = domain.PaymentDetail{Payment: p}
	}
	return out, nil
}

func (m *memPayments) ListPlain(_ context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	out := []domain.Payment{}
	for _, p := range m.rows {
		if filter.StudentID != "" && p.StudentID != filter.StudentID {
			continue
		}
		if !filter.Range.Contains(p.PaymentDate) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memPayments) Create(_ context.Context, p *domain.Payment) (*domain.PaymentDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = fmt.Sprintf("pay-%d", len(m.rows)+1)
	m.rows = append(m.rows, *p)
	return &domain.PaymentDetail{Payment: *p}, nil
}

type memExpenses struct {
	mu         sync.Mutex
	expenses   []domain.Expense
	instructor []domain.InstructorPayment
}

func (m *memExpenses) Categories(_ context.Context) ([]domain.ExpenseCategory, error) {
	return []domain.ExpenseCategory{{ID: "equipment", Name: "Equipment"}}, nil
}

func (m *memExpenses) List(ctx context.Context, filter domain.ExpenseFilter) ([]domain.ExpenseDetail, error) {
	plain, _ := m.ListPlain(ctx, filter)
	out := make([]domain.ExpenseDetail, len(plain))
	for i, e := range plain {
		out[i] = domain.ExpenseDetail{Expense: e}
	}
	return out, nil
}

func (m *memExpenses) ListPlain(_ context.Context, filter domain.ExpenseFilter) ([]domain.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Expense{}
	for _, e := range m.expenses {
		if filter.Range.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memExpenses) Create(_ context.Context, e *domain.Expense) (*domain.ExpenseDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = fmt.Sprintf("exp-%d", len(m.expenses)+1)
	m.expenses = append(m.expenses, *e)
	return &domain.ExpenseDetail{Expense: *e}, nil
}

func (m *memExpenses) ListInstructorPayments(ctx context.Context, filter domain.InstructorPaymentFilter) ([]domain.InstructorPaymentDetail, error) {
	plain, _ := m.ListInstructorPaymentsPlain(ctx, filter)
	out := make([]domain.InstructorPaymentDetail, len(plain))
	for i, p := range plain {
		out[i] = domain.InstructorPaymentDetail{InstructorPayment: p}
	}
	return out, nil
}

func (m *memExpenses) ListInstructorPaymentsPlain(_ context.Context, filter domain.InstructorPaymentFilter) ([]domain.InstructorPayment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.InstructorPayment{}
	for _, p := range m.instructor {
		if filter.Range.Contains(p.PaymentDate) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memExpenses) CreateInstructorPayment(_ context.Context, p *domain.InstructorPayment) (*domain.InstructorPaymentDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = fmt.Sprintf("ip-%d", len(m.instructor)+1)
	m.instructor = append(m.instructor, *p)
	return &domain.InstructorPaymentDetail{InstructorPayment: *p}, nil
}

type memSettings struct {
	mu  sync.Mutex
	row *domain.Settings
}

func (m *memSettings) Find(_ context.Context) (*domain.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.row == nil {
		return nil, nil
	}
	s := *m.row
	return &s, nil
}

func (m *memSettings) Ensure(_ context.Context, defaults domain.Settings) (*domain.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.row == nil {
		m.row = &defaults
	}
	s := *m.row
	return &s, nil
}

func (m *memSettings) Save(_ context.Context, settings domain.Settings) (*domain.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.row = &settings
	s := settings
	return &s, nil
}

type memUsers struct {
	mu   sync.Mutex
	rows map[string]domain.User
}

func newMemUsers(users ...domain.User) *memUsers {
	m := &memUsers{rows: map[string]domain.User{}}
	for _, u := range users {
		m.rows[u.ID] = u
	}
	return m
}

func (m *memUsers) Get(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return nil, domain.NewNotFound("user", id)
	}
	return &u, nil
}

func (m *memUsers) List(_ context.Context, role *domain.UserRole) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.User{}
	for _, u := range m.rows {
		if role == nil || u.Role == *role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = fmt.Sprintf("usr-%d", len(m.rows)+1)
	m.rows[u.ID] = *u
	return u, nil
}

type stubRates struct {
	asked string
	rate  *domain.ExchangeRate
	err   error
}

func (s *stubRates) LatestRate(_ context.Context, currency string) (*domain.ExchangeRate, error) {
	s.asked = currency
	return s.rate, s.err
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}
