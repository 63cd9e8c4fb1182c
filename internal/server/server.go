// Package server exposes the academy use cases as a JSON REST API for the
// dashboard.
package server

import (
	"net/http"
	"time"

	"academy-ledger/internal/service"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func init() {
	// the dashboard reads money as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

type Server struct {
	students  *service.StudentService
	leagues   *service.LeagueService
	games     *service.GameService
	payments  *service.PaymentService
	expenses  *service.ExpenseService
	dashboard *service.DashboardService
	settings  *service.SettingsService
	users     *service.UserService
	rates     *service.RateService
	logger    zerolog.Logger
}

func NewServer(
	students *service.StudentService,
	leagues *service.LeagueService,
	games *service.GameService,
	payments *service.PaymentService,
	expenses *service.ExpenseService,
	dashboard *service.DashboardService,
	settings *service.SettingsService,
	users *service.UserService,
	rates *service.RateService,
	logger zerolog.Logger,
) *Server {
	return &Server{
		students:  students,
		leagues:   leagues,
		games:     games,
		payments:  payments,
		expenses:  expenses,
		dashboard: dashboard,
		settings:  settings,
		users:     users,
		rates:     rates,
		logger:    logger,
	}
}

// Routes registers every endpoint on a fresh mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.health)
	mux.HandleFunc("GET /api/dashboard", s.getDashboard)
	mux.HandleFunc("GET /api/settings", s.getSettings)
	mux.HandleFunc("PUT /api/settings", s.updateSettings)
	mux.HandleFunc("GET /api/exchange-rate", s.getExchangeRate)

	mux.HandleFunc("GET /api/users", s.listUsers)
	mux.HandleFunc("POST /api/users", s.createUser)

	mux.HandleFunc("GET /api/students", s.listStudents)
	mux.HandleFunc("POST /api/students", s.createStudent)
	mux.HandleFunc("GET /api/students/{id}", s.getStudent)
	mux.HandleFunc("PUT /api/students/{id}", s.updateStudent)
	mux.HandleFunc("DELETE /api/students/{id}", s.deleteStudent)
	mux.HandleFunc("GET /api/students/{id}/balance", s.getStudentBalance)

	mux.HandleFunc("GET /api/categories", s.listCategories)
	mux.HandleFunc("GET /api/categories/{id}", s.getCategory)

	mux.HandleFunc("GET /api/leagues", s.listLeagues)
	mux.HandleFunc("POST /api/leagues", s.createLeague)
	mux.HandleFunc("GET /api/leagues/{id}", s.getLeague)
	mux.HandleFunc("POST /api/leagues/{id}/enroll", s.enroll)
	mux.HandleFunc("DELETE /api/leagues/{leagueId}/enroll/{studentId}", s.unenroll)

	mux.HandleFunc("GET /api/games", s.listGames)
	mux.HandleFunc("POST /api/games", s.createGame)
	mux.HandleFunc("GET /api/games/{id}", s.getGame)
	mux.HandleFunc("PUT /api/games/{id}", s.updateGame)
	mux.HandleFunc("GET /api/games/{id}/eligible-students", s.eligibleStudents)
	mux.HandleFunc("POST /api/games/{id}/attendance", s.recordAttendance)
	mux.HandleFunc("POST /api/games/{id}/attendance/bulk", s.recordAttendanceBulk)

	mux.HandleFunc("GET /api/payments", s.listPayments)
	mux.HandleFunc("POST /api/payments", s.createPayment)
	mux.HandleFunc("GET /api/payments/summary/monthly", s.paymentsMonthlySummary)
	mux.HandleFunc("GET /api/payments/student/{studentId}", s.listStudentPayments)
	mux.HandleFunc("GET /api/payments/{id}", s.getPayment)

	mux.HandleFunc("GET /api/expenses", s.listExpenses)
	mux.HandleFunc("POST /api/expenses", s.createExpense)
	mux.HandleFunc("GET /api/expenses/categories", s.listExpenseCategories)
	mux.HandleFunc("GET /api/expenses/instructor-payments", s.listInstructorPayments)
	mux.HandleFunc("POST /api/expenses/instructor-payments", s.createInstructorPayment)
	mux.HandleFunc("GET /api/expenses/summary/monthly", s.expensesMonthlySummary)

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "route not found"})
	})

	return mux
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Timestamp: time.Now().UTC()})
}
