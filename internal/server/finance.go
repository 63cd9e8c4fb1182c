package server

import (
	"net/http"

	"academy-ledger/internal/domain"
	"academy-ledger/internal/service"
)

func (s *Server) listPayments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rng, err := dateRange(q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	payments, err := s.payments.List(r.Context(), domain.PaymentFilter{StudentID: q.Get("studentId"), Range: rng})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (s *Server) listStudentPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := s.payments.ListByStudent(r.Context(), r.PathValue("studentId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (s *Server) getPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := s.payments.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (s *Server) createPayment(w http.ResponseWriter, r *http.Request) {
	var in service.CreatePaymentInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	payment, err := s.payments.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (s *Server) paymentsMonthlySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.payments.MonthlySummary(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) listExpenseCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.expenses.Categories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rng, err := dateRange(q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	expenses, err := s.expenses.List(r.Context(), domain.ExpenseFilter{CategoryID: q.Get("categoryId"), Range: rng})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	var in service.CreateExpenseInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	expense, err := s.expenses.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

func (s *Server) listInstructorPayments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rng, err := dateRange(q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	payments, err := s.expenses.ListInstructorPayments(r.Context(), domain.InstructorPaymentFilter{InstructorID: q.Get("instructorId"), Range: rng})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (s *Server) createInstructorPayment(w http.ResponseWriter, r *http.Request) {
	var in service.CreateInstructorPaymentInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	payment, err := s.expenses.CreateInstructorPayment(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (s *Server) expensesMonthlySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.expenses.MonthlySummary(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
